// Package town holds the per-player state: resources, placed and worked
// tiles and buildings, the role card of the round and the one-shot flags,
// along with the derived queries the actions rely on.
package town

import (
	"github.com/nathoo/plantation/engine/catalog"
	"github.com/nathoo/plantation/engine/ledger"
	"github.com/nathoo/plantation/types"
)

// Town is one player's colony. People counts the colonists at home only;
// workers are counted in the tiles and buildings.
type Town struct {
	Name         string     `json:"name"`
	Governor     bool       `json:"gov"`
	SpentCaptain bool       `json:"spent_captain"`
	SpentWharf   bool       `json:"spent_wharf"`
	Role         types.Role `json:"role,omitempty"`

	ledger.Stock

	Tiles     map[types.Tile]types.WorkplaceData     `json:"tiles"`
	Buildings map[types.Building]types.WorkplaceData `json:"buildings"`
}

// New creates an empty town with every tile and building slot at zero.
func New(name string) *Town {
	t := &Town{
		Name:      name,
		Tiles:     make(map[types.Tile]types.WorkplaceData, len(catalog.Tiles)),
		Buildings: make(map[types.Building]types.WorkplaceData, len(catalog.Buildings)),
	}
	for _, tile := range catalog.Tiles {
		t.Tiles[tile] = types.WorkplaceData{}
	}
	for _, b := range catalog.Buildings {
		t.Buildings[b] = types.WorkplaceData{}
	}
	return t
}

// Clone returns a deep copy.
func (t *Town) Clone() *Town {
	c := *t
	c.Tiles = make(map[types.Tile]types.WorkplaceData, len(t.Tiles))
	for k, v := range t.Tiles {
		c.Tiles[k] = v
	}
	c.Buildings = make(map[types.Building]types.WorkplaceData, len(t.Buildings))
	for k, v := range t.Buildings {
		c.Buildings[k] = v
	}
	return &c
}

// Has reports whether the town holds at least one unit of r.
func (t *Town) Has(r types.Resource) bool {
	return t.Count(r) > 0
}

// HasBuilding reports whether the building is placed in the town.
func (t *Town) HasBuilding(b types.Building) bool {
	return t.Buildings[b].Placed > 0
}

// CountTiles returns the number of placed tiles of all kinds.
func (t *Town) CountTiles() int {
	total := 0
	for _, data := range t.Tiles {
		total += data.Placed
	}
	return total
}

// ActiveQuarries returns the number of worked quarries.
func (t *Town) ActiveQuarries() int {
	return t.Tiles[types.QuarryTile].Worked
}

// Production returns how many units of a good the town produces. Corn needs
// only worked plantations; other goods are limited by the workers of their
// production buildings.
func (t *Town) Production(g types.Good) int {
	raw := t.Tiles[catalog.TileFor(g)].Worked
	if g == types.Corn {
		return raw
	}
	workers := 0
	for _, b := range catalog.Producers(g) {
		workers += t.Buildings[b].Worked
	}
	return min(raw, workers)
}

// AllProduction returns the production of every good.
func (t *Town) AllProduction() map[types.Good]int {
	out := make(map[types.Good]int, len(catalog.Goods))
	for _, g := range catalog.Goods {
		out[g] = t.Production(g)
	}
	return out
}

// Privilege reports whether a building is placed and fully staffed, which
// is what activates its special ability.
func (t *Town) Privilege(b types.Building) bool {
	data := t.Buildings[b]
	return data.Placed > 0 && data.Worked == catalog.Space(b)
}

// CountFreeBuildSpace returns the unused build space; large buildings use two.
func (t *Town) CountFreeBuildSpace() int {
	free := catalog.MaxBuildSpace
	for _, b := range catalog.Buildings {
		free -= t.Buildings[b].Placed * catalog.RequiredSpace(b)
	}
	return free
}

// CountTotalJobs returns the number of worker slots: one per placed tile and
// the space of every placed building.
func (t *Town) CountTotalJobs() int {
	total := t.CountTiles()
	for _, b := range catalog.Buildings {
		total += t.Buildings[b].Placed * catalog.Space(b)
	}
	return total
}

// CountTotalPeople returns the colonists at home plus every worker.
func (t *Town) CountTotalPeople() int {
	total := t.People
	for _, data := range t.Tiles {
		total += data.Worked
	}
	for _, data := range t.Buildings {
		total += data.Worked
	}
	return total
}

// CountVacantBuildingJobs returns the unstaffed building slots.
func (t *Town) CountVacantBuildingJobs() int {
	total := 0
	for _, b := range catalog.Buildings {
		data := t.Buildings[b]
		if data.Placed == 0 {
			continue
		}
		total += max(0, catalog.Space(b)-data.Worked)
	}
	return total
}

// CountGoods returns the total number of goods held.
func (t *Town) CountGoods() int {
	total := 0
	for _, g := range catalog.Goods {
		total += t.Count(g)
	}
	return total
}

// ListTiles returns one entry per placed tile, in tile order.
func (t *Town) ListTiles() []types.Tile {
	var out []types.Tile
	for _, tile := range catalog.Tiles {
		for i := 0; i < t.Tiles[tile].Placed; i++ {
			out = append(out, tile)
		}
	}
	return out
}

// ListBuildings returns the placed buildings, in building order.
func (t *Town) ListBuildings() []types.Building {
	var out []types.Building
	for _, b := range catalog.Buildings {
		if t.Buildings[b].Placed > 0 {
			out = append(out, b)
		}
	}
	return out
}
