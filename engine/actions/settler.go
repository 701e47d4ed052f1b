package actions

import (
	"github.com/nathoo/plantation/engine/board"
	"github.com/nathoo/plantation/engine/catalog"
	"github.com/nathoo/plantation/engine/rules"
	"github.com/nathoo/plantation/engine/town"
	"github.com/nathoo/plantation/types"
)

func canTakeQuarry(t *town.Town) bool {
	return t.Role == types.Settler || t.Privilege(types.ConstructionHut)
}

func settlerPossibilities(b *board.Board, t *town.Town) []Action {
	out := []Action{Refuse(t.Name)}
	if t.CountTiles() >= catalog.MaxTiles {
		return out
	}

	hacienda := t.Privilege(types.Hacienda)
	hospice := t.Privilege(types.Hospice)
	for _, tile := range catalog.Tiles {
		if tile == types.QuarryTile {
			if b.UnsettledQuarries == 0 || !canTakeQuarry(t) {
				continue
			}
		} else if !exposed(b, tile) {
			continue
		}

		out = append(out, Action{Type: types.SettlerAction, Name: t.Name, Tile: tile})
		if hacienda && hospice {
			out = append(out, Action{Type: types.SettlerAction, Name: t.Name, Tile: tile, DownTile: true, ExtraPerson: true})
		}
		if hacienda {
			out = append(out, Action{Type: types.SettlerAction, Name: t.Name, Tile: tile, DownTile: true})
		}
		if hospice {
			out = append(out, Action{Type: types.SettlerAction, Name: t.Name, Tile: tile, ExtraPerson: true})
		}
	}
	return out
}

func exposed(b *board.Board, tile types.Tile) bool {
	for _, x := range b.ExposedTiles {
		if x == tile {
			return true
		}
	}
	return false
}

// reactSettler places the chosen tile, then the optional hidden tile and
// colonist.
func reactSettler(b *board.Board, t *town.Town, a Action) ([]Action, error) {
	if a.DownTile && !t.Privilege(types.Hacienda) {
		return nil, rules.Violation("town of %s can't take a face-down tile without an occupied hacienda", t.Name)
	}
	if a.ExtraPerson && !t.Privilege(types.Hospice) {
		return nil, rules.Violation("town of %s can't take a colonist without an occupied hospice", t.Name)
	}
	if a.Tile == types.QuarryTile && !canTakeQuarry(t) {
		return nil, rules.Violation("only the settler can pick a quarry")
	}
	if t.CountTiles() >= catalog.MaxTiles {
		return nil, rules.Violation("town of %s already has %d tiles", t.Name, catalog.MaxTiles)
	}

	if err := b.GiveTile(a.Tile, t); err != nil {
		return nil, err
	}
	if a.ExtraPerson && b.People > 0 {
		b.People--
		data := t.Tiles[a.Tile]
		data.Worked++
		t.Tiles[a.Tile] = data
	}
	if a.DownTile && len(b.UnsettledTiles) > 0 && t.CountTiles() < catalog.MaxTiles {
		if err := b.GiveFacedownTile(t); err != nil {
			return nil, err
		}
	}
	return nil, nil
}
