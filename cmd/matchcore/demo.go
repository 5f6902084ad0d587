package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"matchcore/internal/registry"
	"matchcore/internal/render"
	"matchcore/internal/types"
)

func newDemoCmd() *cobra.Command {
	var symbol string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the seed scenarios against a fresh book and print the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			runDemo(cmd.OutOrStdout(), symbol)
			return nil
		},
	}
	cmd.Flags().StringVar(&symbol, "symbol", "DEMO", "instrument symbol to trade against")
	return cmd
}

// runDemo replays each of spec.md §8's six scenarios on its own fresh
// book (registered under a scenario-qualified symbol so they cannot
// interfere with one another) and prints the resulting trades and a
// tabular snapshot after each.
func runDemo(w io.Writer, symbol string) {
	scenarios := []struct {
		name string
		run  func(w io.Writer, m *registry.MatchingEngine, sym string)
	}{
		{"1: resting bid then crossing ask produces maker-price trade", scenarioMakerPrice},
		{"2: market buy consumes front of ask queue", scenarioMarketSweep},
		{"3: FOK rejection on insufficient liquidity", scenarioFOKRejection},
		{"4: IOC partial fill then discard", scenarioIOCPartial},
		{"5: best bid/ask across mixed book", scenarioMixedBook},
		{"6: modify resets priority", scenarioModifyPriority},
	}

	m := registry.New()
	for i, scenario := range scenarios {
		sym := fmt.Sprintf("%s-%d", symbol, i+1)
		fmt.Fprintf(w, "\n### Scenario %s\n", scenario.name)
		scenario.run(w, m, sym)

		snapshot, _ := m.Snapshot(sym, 5)
		render.LiveOrderBook(w, sym, snapshot, 5)
	}
}

func place(w io.Writer, m *registry.MatchingEngine, sym string, side types.Side, orderType types.OrderType, price types.Price, qty types.Quantity) {
	order := types.NewOrder(side, orderType, price, qty, "demo")
	trades, err := m.AddOrder(sym, order)
	if err != nil {
		fmt.Fprintf(w, "  order rejected: %v\n", err)
		return
	}
	fmt.Fprintf(w, "  placed %s %s price=%d qty=%d -> %d trade(s)\n", orderType, side, price/types.Scale, qty/types.Scale, len(trades))
	for _, t := range trades {
		fmt.Fprintf(w, "    trade price=%d qty=%d\n", t.Price/types.Scale, t.Quantity/types.Scale)
	}
}

func scenarioMakerPrice(w io.Writer, m *registry.MatchingEngine, sym string) {
	place(w, m, sym, types.Buy, types.Limit, 100*types.Scale, 1000*types.Scale)
	place(w, m, sym, types.Sell, types.Limit, 99*types.Scale, 500*types.Scale)
}

func scenarioMarketSweep(w io.Writer, m *registry.MatchingEngine, sym string) {
	place(w, m, sym, types.Sell, types.Limit, 100*types.Scale, 500*types.Scale)
	place(w, m, sym, types.Buy, types.Market, 0, 300*types.Scale)
}

func scenarioFOKRejection(w io.Writer, m *registry.MatchingEngine, sym string) {
	place(w, m, sym, types.Sell, types.Limit, 100*types.Scale, 500*types.Scale)
	place(w, m, sym, types.Buy, types.FillOrKill, 100*types.Scale, 1000*types.Scale)
}

func scenarioIOCPartial(w io.Writer, m *registry.MatchingEngine, sym string) {
	place(w, m, sym, types.Sell, types.Limit, 100*types.Scale, 500*types.Scale)
	place(w, m, sym, types.Buy, types.ImmediateOrCancel, 100*types.Scale, 1000*types.Scale)
}

func scenarioMixedBook(w io.Writer, m *registry.MatchingEngine, sym string) {
	place(w, m, sym, types.Buy, types.Limit, 100*types.Scale, 1000*types.Scale)
	place(w, m, sym, types.Buy, types.Limit, 99*types.Scale, 1000*types.Scale)
	place(w, m, sym, types.Sell, types.Limit, 101*types.Scale, 1000*types.Scale)
	place(w, m, sym, types.Sell, types.Limit, 102*types.Scale, 1000*types.Scale)
}

func scenarioModifyPriority(w io.Writer, m *registry.MatchingEngine, sym string) {
	orderA := types.NewOrder(types.Buy, types.Limit, 100*types.Scale, 1000*types.Scale, "alice")
	if _, err := m.AddOrder(sym, orderA); err != nil {
		fmt.Fprintf(w, "  order rejected: %v\n", err)
		return
	}
	place(w, m, sym, types.Buy, types.Limit, 100*types.Scale, 1000*types.Scale)

	newPrice := types.Price(100 * types.Scale)
	newQty := types.Quantity(1000 * types.Scale)
	if _, err := m.ModifyOrder(sym, orderA.ID, &newPrice, &newQty); err != nil {
		fmt.Fprintf(w, "  modify rejected: %v\n", err)
	}
}
