// Package board holds the shared game state: the bank, the role cards, the
// tile and building supply, the cargo fleet, the trading house, the colonist
// ship and the towns in turn order.
package board

import (
	"sort"

	"github.com/nathoo/plantation/engine/catalog"
	"github.com/nathoo/plantation/engine/ledger"
	"github.com/nathoo/plantation/engine/rules"
	"github.com/nathoo/plantation/engine/town"
	"github.com/nathoo/plantation/types"
)

// Shuffler permutes a sequence in place. *engine.RNG satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Board is the shared state of one game. The bank's counters come from the
// embedded Stock.
type Board struct {
	Order []string              `json:"order"`
	Towns map[string]*town.Town `json:"towns"`

	ledger.Stock

	Roles             map[types.Role]types.RoleData `json:"roles"`
	GoodsFleet        map[int]types.ShipData        `json:"goods_fleet"`
	Market            []types.Good                  `json:"market"`
	PeopleShip        int                           `json:"people_ship"`
	Unbuilt           map[types.Building]int        `json:"unbuilt"`
	UnsettledQuarries int                           `json:"unsettled_quarries"`
	ExposedTiles      []types.Tile                  `json:"exposed_tiles"`
	UnsettledTiles    []types.Tile                  `json:"unsettled_tiles"`
}

// New sets up a board for 3 to 5 players in the given turn order. The tile
// bag is shuffled when s is not nil.
func New(names []string, s Shuffler) (*Board, error) {
	n := len(names)
	if n < 3 || n > 5 {
		return nil, rules.Violation("players must be between 3 and 5, got %d", n)
	}
	seen := make(map[string]bool, n)
	for _, name := range names {
		if name == "" {
			return nil, rules.Violation("player names must not be empty")
		}
		if seen[name] {
			return nil, rules.Violation("duplicate player name %q", name)
		}
		seen[name] = true
	}

	b := &Board{
		Order:      append([]string(nil), names...),
		Towns:      make(map[string]*town.Town, n),
		Roles:      make(map[types.Role]types.RoleData, len(catalog.Roles)),
		GoodsFleet: make(map[int]types.ShipData, 3),
		Market:     []types.Good{},
		PeopleShip: n,
		Unbuilt:    make(map[types.Building]int, len(catalog.Buildings)),

		UnsettledQuarries: catalog.Quarries,
		UnsettledTiles:    []types.Tile{},
	}
	for _, name := range names {
		b.Towns[name] = town.New(name)
	}

	for r, amount := range catalog.BankStart {
		b.Add(r, amount)
	}
	b.People = catalog.StartPeople(n)

	for size := n + 1; size < n+4; size++ {
		b.GoodsFleet[size] = types.ShipData{Size: size}
	}

	for i, role := range catalog.Roles {
		b.Roles[role] = types.RoleData{Available: i < n+3}
	}

	for _, entry := range catalog.TileBag {
		for i := 0; i < entry.Count; i++ {
			b.ExposedTiles = append(b.ExposedTiles, entry.Tile)
		}
	}
	if s != nil {
		s.Shuffle(len(b.ExposedTiles), func(i, j int) {
			b.ExposedTiles[i], b.ExposedTiles[j] = b.ExposedTiles[j], b.ExposedTiles[i]
		})
	}

	for _, building := range catalog.Buildings {
		info, _ := catalog.Info(building)
		b.Unbuilt[building] = info.Initial
	}

	for _, t := range b.Towns {
		if err := ledger.Give(b, t, n-1, types.Money); err != nil {
			return nil, err
		}
	}

	indigo := catalog.IndigoStarters(n)
	for i, name := range b.Order {
		tile := types.CornTile
		if i < indigo {
			tile = types.IndigoTile
		}
		if err := b.GiveTile(tile, b.Towns[name]); err != nil {
			return nil, err
		}
	}
	b.ExposeTiles()

	return b, nil
}

// Town returns the town of a player.
func (b *Board) Town(name string) (*town.Town, error) {
	t, ok := b.Towns[name]
	if !ok {
		return nil, rules.Violation("unknown player %q", name)
	}
	return t, nil
}

// TownList returns every town in turn order.
func (b *Board) TownList() []*town.Town {
	out := make([]*town.Town, 0, len(b.Order))
	for _, name := range b.Order {
		out = append(out, b.Towns[name])
	}
	return out
}

func (b *Board) indexOf(name string) int {
	for i, n := range b.Order {
		if n == name {
			return i
		}
	}
	return -1
}

// RoundFrom returns every player name once, in turn order, starting at start.
// An unknown start yields the plain turn order.
func (b *Board) RoundFrom(start string) []string {
	n := len(b.Order)
	first := max(0, b.indexOf(start))
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, b.Order[(first+i)%n])
	}
	return out
}

// TownRoundFrom is RoundFrom yielding towns.
func (b *Board) TownRoundFrom(start string) []*town.Town {
	names := b.RoundFrom(start)
	out := make([]*town.Town, 0, len(names))
	for _, name := range names {
		out = append(out, b.Towns[name])
	}
	return out
}

// NextTo returns the player after name in turn order.
func (b *Board) NextTo(name string) string {
	i := b.indexOf(name)
	return b.Order[(i+1)%len(b.Order)]
}

// SetGovernor moves the governor flag to name.
func (b *Board) SetGovernor(name string) {
	for owner, t := range b.Towns {
		t.Governor = owner == name
	}
}

// IsEndOfRound reports whether every town holds a role card.
func (b *Board) IsEndOfRound() bool {
	for _, t := range b.Towns {
		if t.Role == types.NoRole {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the board and its towns.
func (b *Board) Clone() *Board {
	c := *b
	c.Order = append([]string(nil), b.Order...)
	c.Towns = make(map[string]*town.Town, len(b.Towns))
	for name, t := range b.Towns {
		c.Towns[name] = t.Clone()
	}
	c.Roles = make(map[types.Role]types.RoleData, len(b.Roles))
	for k, v := range b.Roles {
		c.Roles[k] = v
	}
	c.GoodsFleet = make(map[int]types.ShipData, len(b.GoodsFleet))
	for k, v := range b.GoodsFleet {
		c.GoodsFleet[k] = v
	}
	c.Unbuilt = make(map[types.Building]int, len(b.Unbuilt))
	for k, v := range b.Unbuilt {
		c.Unbuilt[k] = v
	}
	c.Market = cloneSlice(b.Market)
	c.ExposedTiles = cloneSlice(b.ExposedTiles)
	c.UnsettledTiles = cloneSlice(b.UnsettledTiles)
	return &c
}

// cloneSlice keeps nil and empty slices apart so clones compare equal.
func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}

// ShipSizes returns the cargo ship sizes in ascending order.
func (b *Board) ShipSizes() []int {
	sizes := make([]int, 0, len(b.GoodsFleet))
	for size := range b.GoodsFleet {
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)
	return sizes
}
