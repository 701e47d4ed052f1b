package board

import (
	"github.com/nathoo/plantation/engine/catalog"
	"github.com/nathoo/plantation/engine/ledger"
	"github.com/nathoo/plantation/engine/rules"
	"github.com/nathoo/plantation/engine/town"
	"github.com/nathoo/plantation/types"
)

// ShipAccept reports whether the ship of the given size can take the good.
// A good travels on one ship at a time.
func (b *Board) ShipAccept(size int, g types.Good) bool {
	ship, ok := b.GoodsFleet[size]
	if !ok {
		return false
	}
	for other, data := range b.GoodsFleet {
		if other != size && data.Amount > 0 && data.Cargo == g {
			return false
		}
	}
	if ship.Amount == 0 {
		return true
	}
	if ship.Cargo != g {
		return false
	}
	return ship.Amount < ship.Size
}

// LoadCargo moves as much of the good as fits from a town onto a ship and
// returns the amount loaded.
func (b *Board) LoadCargo(size int, g types.Good, from *town.Town) (int, error) {
	if !b.ShipAccept(size, g) {
		return 0, rules.Violation("ship %d can't accept %s", size, g)
	}
	ship := b.GoodsFleet[size]
	amount := min(ship.Size-ship.Amount, from.Count(g))
	if amount <= 0 {
		return 0, rules.Violation("town of %s has no %s to ship", from.Name, g)
	}
	from.Add(g, -amount)
	ship.Cargo = g
	ship.Amount += amount
	b.GoodsFleet[size] = ship
	return amount, nil
}

// Sell puts one unit of a good from a town in the trading house.
func (b *Board) Sell(g types.Good, from *town.Town) error {
	if len(b.Market) >= catalog.MaxMarket {
		return rules.Violation("the trading house is full")
	}
	if _, err := ledger.Pop(from, g, 1); err != nil {
		return err
	}
	b.Market = append(b.Market, g)
	return nil
}

// EmptyShipsAndMarket returns the cargo of every full ship to the bank, and
// the content of the trading house once it is full.
func (b *Board) EmptyShipsAndMarket() {
	for size, ship := range b.GoodsFleet {
		if ship.Amount < ship.Size {
			continue
		}
		if ship.Cargo != "" {
			b.Add(ship.Cargo, ship.Amount)
		}
		b.GoodsFleet[size] = types.ShipData{Size: ship.Size}
	}
	if len(b.Market) >= catalog.MaxMarket {
		for _, g := range b.Market {
			b.Add(g, 1)
		}
		b.Market = []types.Good{}
	}
}
