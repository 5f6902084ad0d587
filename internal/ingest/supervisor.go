// Package ingest supervises the one asynchronous surface the core
// tolerates (SPEC_FULL.md §5): a timer-driven poll of an external feed
// that is applied to the book synchronously, under a caller-held
// writer lock released before the next tick. Built on the teacher's
// tomb.Tomb-supervised goroutine pattern (internal/worker.go), adapted
// from a TCP connection pool into a single repeating poll-and-apply.
package ingest

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"

	"matchcore/internal/feed"
	"matchcore/internal/marketdata"
	"matchcore/internal/metrics"
	"matchcore/internal/types"
)

// Supervisor polls feed on a fixed interval and hands each snapshot to
// processor, holding mu for the duration of exactly one Process call.
type Supervisor struct {
	feed      *feed.Client
	processor *marketdata.Processor
	mu        *sync.Mutex
	interval  time.Duration
	collector *metrics.Collector
}

// New returns a Supervisor. mu must be the same mutex every other
// writer of processor's book takes before mutating it — Supervisor
// does not invent its own locking scheme.
func New(feedClient *feed.Client, processor *marketdata.Processor, mu *sync.Mutex, interval time.Duration, collector *metrics.Collector) *Supervisor {
	return &Supervisor{
		feed:      feedClient,
		processor: processor,
		mu:        mu,
		interval:  interval,
		collector: collector,
	}
}

// Start launches the polling loop under a tomb supervised by ctx and
// returns the tomb so the caller can Wait for it or Kill it early.
// Cancelling ctx is a clean stop: Wait then returns nil.
func (s *Supervisor) Start(ctx context.Context) *tomb.Tomb {
	t := &tomb.Tomb{}
	ctx = t.Context(ctx)
	t.Go(func() error {
		return s.run(t, ctx)
	})
	t.Go(func() error {
		<-ctx.Done()
		t.Kill(nil)
		return nil
	})
	return t
}

func (s *Supervisor) run(t *tomb.Tomb, ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", s.interval).Msg("ingest supervisor starting")
	for {
		select {
		case <-t.Dying():
			log.Info().Msg("ingest supervisor stopping")
			return nil
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick fetches exactly one snapshot and applies it, holding the writer
// lock only for the Process call — never across the network fetch.
func (s *Supervisor) tick(ctx context.Context) {
	snapshot, err := s.feed.FetchSnapshot(ctx)
	if err != nil {
		log.Error().Err(err).Msg("fetching market data snapshot")
		if s.collector != nil {
			s.collector.ObserveError()
		}
		return
	}

	msg := types.MarketDataMessage{Type: types.MessageBookSnapshot, BookSnapshot: &snapshot}

	start := time.Now()
	s.mu.Lock()
	err = s.processor.Process(msg)
	s.mu.Unlock()

	if err != nil {
		log.Error().Err(err).Msg("applying market data snapshot")
		if s.collector != nil {
			s.collector.ObserveError()
		}
		return
	}

	log.Debug().
		Int("bids", len(snapshot.Bids)).
		Int("asks", len(snapshot.Asks)).
		Uint64("sequence", snapshot.SequenceNumber).
		Msg("applied market data snapshot")
	if s.collector != nil {
		s.collector.ObserveSuccess("book_snapshot", time.Since(start))
	}
}
