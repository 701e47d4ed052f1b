package actions

import (
	"github.com/nathoo/plantation/engine/board"
	"github.com/nathoo/plantation/engine/catalog"
	"github.com/nathoo/plantation/engine/ledger"
	"github.com/nathoo/plantation/engine/rules"
	"github.com/nathoo/plantation/engine/town"
	"github.com/nathoo/plantation/types"
)

func traderPossibilities(b *board.Board, t *town.Town) []Action {
	out := []Action{Refuse(t.Name)}
	if len(b.Market) >= catalog.MaxMarket {
		return out
	}
	for _, g := range catalog.Goods {
		if canTrade(b, t, g) {
			out = append(out, Action{Type: types.TraderAction, Name: t.Name, Good: g})
		}
	}
	return out
}

func canTrade(b *board.Board, t *town.Town, g types.Good) bool {
	if !t.Has(g) {
		return false
	}
	return !inMarket(b, g) || t.Privilege(types.Office)
}

func inMarket(b *board.Board, g types.Good) bool {
	for _, sold := range b.Market {
		if sold == g {
			return true
		}
	}
	return false
}

// TradePrice returns what the trading house pays a town for one unit.
func TradePrice(t *town.Town, g types.Good) int {
	price := catalog.TradePrice(g)
	if t.Role == types.Trader {
		price++
	}
	if t.Privilege(types.SmallMarket) {
		price++
	}
	if t.Privilege(types.LargeMarket) {
		price += 2
	}
	return price
}

func reactTrader(b *board.Board, t *town.Town, a Action) ([]Action, error) {
	if !catalog.IsGood(a.Good) {
		return nil, rules.Violation("%q is not a good", a.Good)
	}
	if len(b.Market) >= catalog.MaxMarket {
		return nil, rules.Violation("there is no more space in the trading house")
	}
	if inMarket(b, a.Good) && !t.Privilege(types.Office) {
		return nil, rules.Violation("there already is %s in the trading house", a.Good)
	}
	price := min(TradePrice(t, a.Good), b.Money)
	if err := b.Sell(a.Good, t); err != nil {
		return nil, err
	}
	if err := ledger.Give(b, t, price, types.Money); err != nil {
		return nil, err
	}
	return nil, nil
}
