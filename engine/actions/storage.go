package actions

import (
	"github.com/nathoo/plantation/engine/board"
	"github.com/nathoo/plantation/engine/catalog"
	"github.com/nathoo/plantation/engine/ledger"
	"github.com/nathoo/plantation/engine/rules"
	"github.com/nathoo/plantation/engine/town"
	"github.com/nathoo/plantation/types"
)

// storagePossibilities enumerates what a town keeps after shipping: the
// occupied warehouses each protect whole stocks (one good for the small
// warehouse, two for the large one) and one more good keeps a single unit.
func storagePossibilities(t *town.Town) []Action {
	var held []types.Good
	for _, g := range catalog.Goods {
		if t.Has(g) {
			held = append(held, g)
		}
	}

	small := t.Privilege(types.SmallWarehouse)
	large := t.Privilege(types.LargeWarehouse)
	slots := 0
	if small {
		slots++
	}
	if large {
		slots += 2
	}

	out := []Action{Refuse(t.Name)}
	if len(held) == 0 {
		return out
	}
	k := min(slots, len(held))
	for _, protected := range combinations(held, k) {
		a := Action{Type: types.StorageAction, Name: t.Name}
		rest := protected
		if small && len(rest) > 0 {
			a.SmallWarehouseGood, rest = rest[0], rest[1:]
		}
		if large && len(rest) > 0 {
			a.LargeWarehouseFirstGood, rest = rest[0], rest[1:]
		}
		if large && len(rest) > 0 {
			a.LargeWarehouseSecondGood = rest[0]
		}

		left := without(held, protected)
		if len(left) == 0 {
			out = append(out, a)
			continue
		}
		for _, g := range left {
			choice := a
			choice.Good = g
			out = append(out, choice)
		}
	}
	return out
}

func reactStorage(b *board.Board, t *town.Town, a Action) ([]Action, error) {
	protected := make(map[types.Good]bool, 3)
	for _, slot := range []struct {
		good     types.Good
		building types.Building
	}{
		{a.SmallWarehouseGood, types.SmallWarehouse},
		{a.LargeWarehouseFirstGood, types.LargeWarehouse},
		{a.LargeWarehouseSecondGood, types.LargeWarehouse},
	} {
		if slot.good == "" {
			continue
		}
		if !t.Privilege(slot.building) {
			return nil, rules.Violation("town of %s has no occupied %s", t.Name, slot.building)
		}
		if !catalog.IsGood(slot.good) || protected[slot.good] {
			return nil, rules.Violation("can't store %q twice", slot.good)
		}
		protected[slot.good] = true
	}
	if a.Good != "" && !catalog.IsGood(a.Good) {
		return nil, rules.Violation("%q is not a good", a.Good)
	}

	for _, g := range catalog.Goods {
		var err error
		switch {
		case protected[g]:
			continue
		case g == a.Good:
			// One unit stays.
			err = ledger.Give(t, b, max(0, t.Count(g)-1), g)
		default:
			err = ledger.GiveAll(t, b, g)
		}
		if err != nil {
			return nil, err
		}
	}
	return nil, nil
}

// combinations returns every k-subset of list, keeping list order.
func combinations[T any](list []T, k int) [][]T {
	if k == 0 {
		return [][]T{nil}
	}
	var out [][]T
	var walk func(start int, acc []T)
	walk = func(start int, acc []T) {
		if len(acc) == k {
			out = append(out, append([]T(nil), acc...))
			return
		}
		for i := start; i <= len(list)-(k-len(acc)); i++ {
			walk(i+1, append(acc, list[i]))
		}
	}
	walk(0, make([]T, 0, k))
	return out
}

func without(list, drop []types.Good) []types.Good {
	var out []types.Good
	for _, g := range list {
		keep := true
		for _, d := range drop {
			if g == d {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, g)
		}
	}
	return out
}
