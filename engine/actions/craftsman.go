package actions

import (
	"github.com/nathoo/plantation/engine/board"
	"github.com/nathoo/plantation/engine/catalog"
	"github.com/nathoo/plantation/engine/ledger"
	"github.com/nathoo/plantation/engine/rules"
	"github.com/nathoo/plantation/engine/town"
	"github.com/nathoo/plantation/types"
)

func craftsmanPossibilities(b *board.Board, t *town.Town) []Action {
	out := []Action{Refuse(t.Name)}
	for _, g := range catalog.Goods {
		if t.Production(g) > 0 && b.Count(g) > 0 {
			out = append(out, Action{Type: types.CraftsmanAction, Name: t.Name, Good: g})
		}
	}
	return out
}

// reactCraftsman grants the craftsman one extra unit of a good it produces.
func reactCraftsman(b *board.Board, t *town.Town, a Action) ([]Action, error) {
	if !catalog.IsGood(a.Good) {
		return nil, rules.Violation("%q is not a good", a.Good)
	}
	if t.Production(a.Good) <= 0 {
		return nil, rules.Violation("town of %s doesn't produce %s", t.Name, a.Good)
	}
	if err := ledger.Give(b, t, 1, a.Good); err != nil {
		return nil, err
	}
	return nil, nil
}
