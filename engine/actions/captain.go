package actions

import (
	"github.com/nathoo/plantation/engine/board"
	"github.com/nathoo/plantation/engine/catalog"
	"github.com/nathoo/plantation/engine/ledger"
	"github.com/nathoo/plantation/engine/rules"
	"github.com/nathoo/plantation/engine/town"
	"github.com/nathoo/plantation/types"
)

func captainPossibilities(b *board.Board, t *town.Town) []Action {
	out := []Action{Refuse(t.Name)}
	for _, g := range catalog.Goods {
		if !t.Has(g) {
			continue
		}
		if t.Privilege(types.Wharf) && !t.SpentWharf {
			out = append(out, Action{Type: types.CaptainAction, Name: t.Name, Good: g, Ship: catalog.WharfShip})
		}
		for _, size := range b.ShipSizes() {
			if b.ShipAccept(size, g) {
				out = append(out, Action{Type: types.CaptainAction, Name: t.Name, Good: g, Ship: size})
			}
		}
	}
	return out
}

// reactCaptain ships goods for points, either on a cargo ship or through the
// town's own wharf. The captain keeps shipping while it holds goods.
func reactCaptain(b *board.Board, t *town.Town, a Action) ([]Action, error) {
	if !catalog.IsGood(a.Good) || !t.Has(a.Good) {
		return nil, rules.Violation("town of %s has no %s to ship", t.Name, a.Good)
	}

	var points int
	if a.Ship == catalog.WharfShip {
		if !t.Privilege(types.Wharf) || t.SpentWharf {
			return nil, rules.Violation("town of %s has no free wharf", t.Name)
		}
		t.SpentWharf = true
		amount := t.Count(a.Good)
		if err := ledger.GiveAll(t, b, a.Good); err != nil {
			return nil, err
		}
		points = amount
	} else {
		amount, err := b.LoadCargo(a.Ship, a.Good, t)
		if err != nil {
			return nil, err
		}
		points = amount
	}

	if t.Privilege(types.Harbor) {
		points++
	}
	if t.Role == types.Captain && !t.SpentCaptain {
		points++
		t.SpentCaptain = true
	}
	if err := ledger.GiveOrMake(b, t, points, types.Points); err != nil {
		return nil, err
	}

	if t.CountGoods() > 0 {
		return []Action{For(types.CaptainAction, a.Name)}, nil
	}
	return nil, nil
}
