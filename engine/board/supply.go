package board

import (
	"github.com/nathoo/plantation/engine/catalog"
	"github.com/nathoo/plantation/engine/ledger"
	"github.com/nathoo/plantation/engine/rules"
	"github.com/nathoo/plantation/engine/town"
	"github.com/nathoo/plantation/types"
)

// ExposeTiles re-deals the face-up plantations: hidden and exposed tiles are
// joined and the first N+1 become exposed.
func (b *Board) ExposeTiles() {
	tiles := make([]types.Tile, 0, len(b.UnsettledTiles)+len(b.ExposedTiles))
	tiles = append(tiles, b.UnsettledTiles...)
	tiles = append(tiles, b.ExposedTiles...)

	k := min(len(b.Towns)+1, len(tiles))
	b.ExposedTiles = append([]types.Tile{}, tiles[:k]...)
	b.UnsettledTiles = append([]types.Tile{}, tiles[k:]...)
}

// GiveTile hands an exposed plantation, or a quarry, to a town.
func (b *Board) GiveTile(tile types.Tile, to *town.Town) error {
	if tile == types.QuarryTile {
		return b.GiveQuarry(to)
	}
	if to.CountTiles() >= catalog.MaxTiles {
		return rules.Violation("town of %s has no more space for a tile", to.Name)
	}
	i := indexOfTile(b.ExposedTiles, tile)
	if i < 0 {
		return rules.Violation("no %s exposed", tile)
	}
	b.ExposedTiles = append(b.ExposedTiles[:i], b.ExposedTiles[i+1:]...)
	placeTile(to, tile)
	return nil
}

// GiveQuarry hands one of the remaining quarries to a town.
func (b *Board) GiveQuarry(to *town.Town) error {
	if b.UnsettledQuarries <= 0 {
		return rules.Violation("no more quarries")
	}
	if to.CountTiles() >= catalog.MaxTiles {
		return rules.Violation("town of %s has no more space for a quarry", to.Name)
	}
	b.UnsettledQuarries--
	placeTile(to, types.QuarryTile)
	return nil
}

// GiveFacedownTile hands the top hidden plantation to a town.
func (b *Board) GiveFacedownTile(to *town.Town) error {
	if len(b.UnsettledTiles) == 0 {
		return rules.Violation("no more face-down tiles")
	}
	if to.CountTiles() >= catalog.MaxTiles {
		return rules.Violation("town of %s has no more space for a tile", to.Name)
	}
	tile := b.UnsettledTiles[0]
	b.UnsettledTiles = b.UnsettledTiles[1:]
	placeTile(to, tile)
	return nil
}

func placeTile(t *town.Town, tile types.Tile) {
	data := t.Tiles[tile]
	data.Placed++
	t.Tiles[tile] = data
}

func indexOfTile(tiles []types.Tile, tile types.Tile) int {
	for i, x := range tiles {
		if x == tile {
			return i
		}
	}
	return -1
}

// BuildingPrice returns what a town pays for a building: the cost less one
// per active quarry (capped by the tier) and one more for the builder.
func BuildingPrice(building types.Building, t *town.Town) int {
	info, _ := catalog.Info(building)
	quarries := min(info.Tier, t.ActiveQuarries())
	builder := 0
	if t.Role == types.Builder {
		builder = 1
	}
	return max(0, info.Cost-quarries-builder)
}

// CanBuild reports whether a town may buy a building right now.
func (b *Board) CanBuild(building types.Building, t *town.Town) bool {
	return b.checkBuild(building, t) == nil
}

func (b *Board) checkBuild(building types.Building, t *town.Town) error {
	if !catalog.IsBuilding(string(building)) {
		return rules.Violation("unknown building %q", building)
	}
	if t.Money < BuildingPrice(building, t) {
		return rules.Violation("town of %s can't afford %s", t.Name, building)
	}
	if b.Unbuilt[building] <= 0 {
		return rules.Violation("there are no more %s to sell", building)
	}
	if t.CountFreeBuildSpace() < catalog.RequiredSpace(building) {
		return rules.Violation("town of %s has no space for %s", t.Name, building)
	}
	if t.HasBuilding(building) {
		return rules.Violation("town of %s already has a %s", t.Name, building)
	}
	return nil
}

// GiveBuilding sells a building to a town. The building arrives empty.
func (b *Board) GiveBuilding(building types.Building, to *town.Town) error {
	if err := b.checkBuild(building, to); err != nil {
		return err
	}
	if err := ledger.Give(to, b, BuildingPrice(building, to), types.Money); err != nil {
		return err
	}
	b.Unbuilt[building]--
	to.Buildings[building] = types.WorkplaceData{Placed: 1, Worked: 0}
	return nil
}

// GiveRole hands an available role card to a town along with the money
// that accrued on it.
func (b *Board) GiveRole(role types.Role, to *town.Town) error {
	if to.Role != types.NoRole {
		return rules.Violation("player %s already has role %s", to.Name, to.Role)
	}
	data, ok := b.Roles[role]
	if !ok || !data.Available {
		return rules.Violation("role %s is not available", role)
	}
	to.Role = role
	to.Money += data.Money
	b.Roles[role] = types.RoleData{Available: false, Money: 0}
	return nil
}

// ResetRoles ends a round: every role card left on the table earns one
// money from the bank, every other card comes back empty, and the towns
// return their cards and one-shot flags. Nothing changes when the bank
// cannot pay every bonus.
func (b *Board) ResetRoles() error {
	bonuses := 0
	for _, role := range catalog.Roles {
		if b.Roles[role].Available {
			bonuses++
		}
	}
	if b.Money < bonuses {
		return rules.Violation("no more money for roles: %d bonuses, bank has %d", bonuses, b.Money)
	}

	for _, role := range catalog.Roles {
		data, ok := b.Roles[role]
		if !ok {
			continue
		}
		if data.Available {
			b.Money--
			b.Roles[role] = types.RoleData{Available: true, Money: data.Money + 1}
		} else {
			b.Roles[role] = types.RoleData{Available: true, Money: 0}
		}
	}
	for _, t := range b.Towns {
		t.Role = types.NoRole
		t.SpentWharf = false
		t.SpentCaptain = false
	}
	return nil
}
