package main

import (
	"context"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"matchcore/internal/feed"
	"matchcore/internal/ingest"
	"matchcore/internal/marketdata"
	"matchcore/internal/metrics"
	"matchcore/internal/registry"
)

func newServeFeedCmd() *cobra.Command {
	var (
		symbol      string
		feedURL     string
		interval    time.Duration
		metricsBind string
	)

	cmd := &cobra.Command{
		Use:   "serve-feed",
		Short: "Poll an exchange-depth feed into a book and expose Prometheus metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServeFeed(cmd.Context(), symbol, feedURL, interval, metricsBind)
		},
	}

	cmd.Flags().StringVar(&symbol, "symbol", "BTCUSDT", "instrument symbol to poll and trade against")
	cmd.Flags().StringVar(&feedURL, "feed-url", "https://api.binance.com", "base URL of the exchange-depth REST feed")
	cmd.Flags().DurationVar(&interval, "interval", 2*time.Second, "polling interval")
	cmd.Flags().StringVar(&metricsBind, "metrics-addr", ":9090", "address to serve /metrics on")
	return cmd
}

func runServeFeed(ctx context.Context, symbol, feedURL string, interval time.Duration, metricsBind string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine := registry.New()
	book := engine.Book(symbol)
	processor := marketdata.NewProcessor(book)
	client := feed.New(feedURL, symbol)

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	var mu sync.Mutex
	supervisor := ingest.New(client, processor, &mu, interval, collector)
	tomb := supervisor.Start(ctx)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: metricsBind, Handler: mux}

	go func() {
		log.Info().Str("addr", metricsBind).Msg("serving metrics")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)

	tomb.Kill(nil)
	return tomb.Wait()
}
