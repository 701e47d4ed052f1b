package actions

import (
	"github.com/nathoo/plantation/engine/board"
	"github.com/nathoo/plantation/engine/catalog"
	"github.com/nathoo/plantation/engine/ledger"
	"github.com/nathoo/plantation/engine/rules"
	"github.com/nathoo/plantation/engine/town"
	"github.com/nathoo/plantation/types"
)

func rolePossibilities(b *board.Board, t *town.Town) []Action {
	var out []Action
	for _, role := range catalog.Roles {
		if b.Roles[role].Available {
			out = append(out, Action{Type: types.RoleAction, Name: t.Name, Role: role})
		}
	}
	return out
}

func reactRole(b *board.Board, t *town.Town, a Action) ([]Action, error) {
	if err := b.GiveRole(a.Role, t); err != nil {
		return nil, err
	}
	round := b.RoundFrom(t.Name)

	switch a.Role {
	case types.Settler:
		extra := forEach(types.SettlerAction, round)
		return append(extra, For(types.TidyUpAction, a.Name)), nil

	case types.Mayor:
		if b.People > 0 {
			if err := ledger.Give(b, t, 1, types.People); err != nil {
				return nil, err
			}
		}
		for b.PeopleShip > 0 {
			for _, other := range b.TownRoundFrom(t.Name) {
				if b.PeopleShip == 0 {
					break
				}
				b.PeopleShip--
				other.People++
			}
		}
		extra := forEach(types.MayorAction, round)
		return append(extra, For(types.TidyUpAction, a.Name)), nil

	case types.Builder:
		return forEach(types.BuilderAction, round), nil

	case types.Craftsman:
		for _, other := range b.TownRoundFrom(t.Name) {
			for _, g := range catalog.Goods {
				amount := min(other.Production(g), b.Count(g))
				if err := ledger.Give(b, other, amount, g); err != nil {
					return nil, err
				}
			}
		}
		return []Action{For(types.CraftsmanAction, a.Name)}, nil

	case types.Trader:
		extra := forEach(types.TraderAction, round)
		return append(extra, For(types.TidyUpAction, a.Name)), nil

	case types.Captain:
		extra := forEach(types.CaptainAction, round)
		extra = append(extra, forEach(types.StorageAction, round)...)
		return append(extra, For(types.TidyUpAction, a.Name)), nil

	case types.Prospector, types.SecondProspector:
		if b.Money > 0 {
			if err := ledger.Give(b, t, 1, types.Money); err != nil {
				return nil, err
			}
		}
		if b.Money <= 0 {
			return []Action{Terminate(a.Name, rules.ReasonNoMoney)}, nil
		}
		return nil, nil

	default:
		return nil, rules.Violation("unknown role %q", a.Role)
	}
}
