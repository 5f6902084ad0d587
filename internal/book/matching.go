package book

import "matchcore/internal/types"

// crosses reports whether order would cross a resting level at price:
// a Buy crosses when its price is at least the level's; a Sell crosses
// when its price is at most the level's. Market orders are converted
// to an aggressive limit (MaxPrice / 0) before reaching here, so this
// single comparison also covers them.
func crosses(order *types.Order, price types.Price) bool {
	if order.Side == types.Buy {
		return order.Price >= price
	}
	return order.Price <= price
}

// matchMarket converts the order to an aggressive limit at the
// extreme price for its side and sweeps the opposite ladder. A market
// order never rests, whether or not it fully fills.
func (b *OrderBook) matchMarket(order *types.Order) ([]types.Trade, error) {
	aggressive := *order
	if aggressive.Side == types.Buy {
		aggressive.Price = types.MaxPrice
	} else {
		aggressive.Price = 0
	}
	trades := b.cross(&aggressive)
	order.RemainingQuantity = aggressive.RemainingQuantity
	return trades, nil
}

// matchAggressive matches as far as price permits and discards any
// residual quantity — the ImmediateOrCancel policy.
func (b *OrderBook) matchAggressive(order *types.Order) ([]types.Trade, error) {
	return b.cross(order), nil
}

// matchFillOrKill rejects the order with no trades and no book
// mutation unless the opposite side can fill it in full.
func (b *OrderBook) matchFillOrKill(order *types.Order) ([]types.Trade, error) {
	if b.availableOppositeQuantity(order) < order.OriginalQuantity {
		return nil, nil
	}
	return b.cross(order), nil
}

// matchAndRest matches against crossing liquidity first, then rests
// any residual at the order's limit price — the Limit/GTC/GFD policy.
func (b *OrderBook) matchAndRest(order *types.Order) ([]types.Trade, error) {
	trades := b.cross(order)
	if order.RemainingQuantity > 0 {
		b.rest(order)
	}
	return trades, nil
}

// availableOppositeQuantity sums the total resting quantity of every
// opposite-side level that order's price would cross, for the
// FillOrKill fillability check. The opposite ladder's natural
// iteration order is already best-price-first, so once a level fails
// to cross, every level after it fails too and we can stop early.
func (b *OrderBook) availableOppositeQuantity(order *types.Order) types.Quantity {
	var total types.Quantity
	b.opposite(order.Side).ascend(func(level *PriceLevel) bool {
		if !crosses(order, level.Price) {
			return false
		}
		total += level.TotalQuantity
		return true
	})
	return total
}

// cross walks the opposite ladder's best price levels while they cross
// order's price, consuming FIFO heads in price-time priority. Trade
// price is always the resting (maker) order's price, never the
// incoming (taker) order's — price improvement for the taker, and the
// invariant the test suite enforces. order.RemainingQuantity is
// decremented as trades are produced.
func (b *OrderBook) cross(order *types.Order) []types.Trade {
	var trades []types.Trade
	opp := b.opposite(order.Side)

	for order.RemainingQuantity > 0 {
		level, ok := opp.best()
		if !ok || !crosses(order, level.Price) {
			break
		}

		for order.RemainingQuantity > 0 && !level.Empty() {
			maker, _ := level.Front()
			qty := order.RemainingQuantity
			if maker.RemainingQuantity < qty {
				qty = maker.RemainingQuantity
			}

			var trade types.Trade
			if order.Side == types.Buy {
				trade = types.NewTrade(order.ID, maker.ID, level.Price, qty)
			} else {
				trade = types.NewTrade(maker.ID, order.ID, level.Price, qty)
			}
			trades = append(trades, trade)

			order.RemainingQuantity -= qty
			makerID := maker.ID
			level.PopFrontPartial(qty)
			if maker.RemainingQuantity == 0 {
				delete(b.index, makerID)
			}
		}

		opp.deleteIfEmpty(level)
	}

	return trades
}
