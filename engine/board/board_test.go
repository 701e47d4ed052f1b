package board

import (
	"errors"
	"reflect"
	"testing"

	"github.com/nathoo/plantation/engine/rules"
	"github.com/nathoo/plantation/types"
)

func newTestBoard(t *testing.T, n int) *Board {
	t.Helper()
	names := []string{"Aa", "Bb", "Cc", "Dd", "Ee"}[:n]
	b, err := New(names, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return b
}

func TestNew_ThreePlayers(t *testing.T) {
	b := newTestBoard(t, 3)

	if b.Money != 48 {
		t.Errorf("expected bank money 48, got %d", b.Money)
	}
	if b.People != 55 {
		t.Errorf("expected bank people 55, got %d", b.People)
	}
	if b.Points != 122 {
		t.Errorf("expected bank points 122, got %d", b.Points)
	}
	if b.PeopleShip != 3 {
		t.Errorf("expected 3 people on the ship, got %d", b.PeopleShip)
	}
	if got := b.ShipSizes(); !reflect.DeepEqual(got, []int{4, 5, 6}) {
		t.Errorf("expected ships [4 5 6], got %v", got)
	}
	if len(b.ExposedTiles) != 4 {
		t.Errorf("expected 4 exposed tiles, got %d", len(b.ExposedTiles))
	}
	if got := len(b.ExposedTiles) + len(b.UnsettledTiles); got != 47 {
		t.Errorf("expected 47 tiles left in supply, got %d", got)
	}
	for _, tt := range []struct {
		name string
		tile types.Tile
	}{{"Aa", types.IndigoTile}, {"Bb", types.IndigoTile}, {"Cc", types.CornTile}} {
		town := b.Towns[tt.name]
		if town.Money != 2 {
			t.Errorf("%s: expected 2 money, got %d", tt.name, town.Money)
		}
		if town.Tiles[tt.tile].Placed != 1 || town.CountTiles() != 1 {
			t.Errorf("%s: expected a single %s", tt.name, tt.tile)
		}
	}
	available := 0
	for _, data := range b.Roles {
		if data.Available {
			available++
		}
	}
	if available != 6 {
		t.Errorf("expected 6 available roles, got %d", available)
	}
	if b.Roles[types.SecondProspector].Available {
		t.Error("second prospector is for five players")
	}
}

func TestNew_FivePlayersGetThreeIndigo(t *testing.T) {
	b := newTestBoard(t, 5)
	indigo := 0
	for _, town := range b.Towns {
		indigo += town.Tiles[types.IndigoTile].Placed
	}
	if indigo != 3 {
		t.Errorf("expected 3 indigo starters, got %d", indigo)
	}
	if !b.Roles[types.SecondProspector].Available {
		t.Error("second prospector available with five players")
	}
}

func TestNew_RejectsBadPlayers(t *testing.T) {
	tests := [][]string{
		{"Aa", "Bb"},
		{"Aa", "Bb", "Cc", "Dd", "Ee", "Ff"},
		{"Aa", "Aa", "Bb"},
		{"Aa", "", "Bb"},
	}
	for _, names := range tests {
		if _, err := New(names, nil); !errors.Is(err, rules.ErrViolation) {
			t.Errorf("New(%v): expected violation, got %v", names, err)
		}
	}
}

type reverser struct{}

func (reverser) Shuffle(n int, swap func(i, j int)) {
	for i := 0; i < n/2; i++ {
		swap(i, n-1-i)
	}
}

func TestNew_UsesShuffler(t *testing.T) {
	b, err := New([]string{"Aa", "Bb", "Cc"}, reverser{})
	if err != nil {
		t.Fatal(err)
	}
	for _, tile := range b.ExposedTiles {
		if tile != types.TobaccoTile {
			t.Errorf("expected the reversed bag to expose tobacco, got %v", b.ExposedTiles)
			break
		}
	}
}

func TestRoundFrom(t *testing.T) {
	b := newTestBoard(t, 4)
	got := b.RoundFrom("Cc")
	want := []string{"Cc", "Dd", "Aa", "Bb"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if b.NextTo("Dd") != "Aa" {
		t.Errorf("expected Aa after Dd, got %s", b.NextTo("Dd"))
	}
}

func TestGiveTile(t *testing.T) {
	b := newTestBoard(t, 3)
	aa := b.Towns["Aa"]
	exposed := b.ExposedTiles[0]

	if err := b.GiveTile(exposed, aa); err != nil {
		t.Fatalf("GiveTile: %v", err)
	}
	if aa.Tiles[exposed].Placed != 1 {
		t.Errorf("expected one %s placed", exposed)
	}
	if len(b.ExposedTiles) != 3 {
		t.Errorf("expected 3 exposed tiles left, got %d", len(b.ExposedTiles))
	}
	if err := b.GiveTile(types.TobaccoTile, aa); !errors.Is(err, rules.ErrViolation) {
		t.Errorf("unexposed tile: expected violation, got %v", err)
	}
}

func TestGiveQuarry(t *testing.T) {
	b := newTestBoard(t, 3)
	aa := b.Towns["Aa"]
	if err := b.GiveTile(types.QuarryTile, aa); err != nil {
		t.Fatal(err)
	}
	if b.UnsettledQuarries != 7 || aa.Tiles[types.QuarryTile].Placed != 1 {
		t.Errorf("expected a quarry moved, bank has %d", b.UnsettledQuarries)
	}

	b.UnsettledQuarries = 0
	if err := b.GiveQuarry(aa); !errors.Is(err, rules.ErrViolation) {
		t.Errorf("expected violation, got %v", err)
	}
}

func TestGiveTile_FullTown(t *testing.T) {
	b := newTestBoard(t, 3)
	aa := b.Towns["Aa"]
	aa.Tiles[types.CornTile] = types.WorkplaceData{Placed: 11}
	if err := b.GiveQuarry(aa); !errors.Is(err, rules.ErrViolation) {
		t.Errorf("expected violation, got %v", err)
	}
	if err := b.GiveFacedownTile(aa); !errors.Is(err, rules.ErrViolation) {
		t.Errorf("expected violation, got %v", err)
	}
}

func TestGiveFacedownTile(t *testing.T) {
	b := newTestBoard(t, 3)
	bb := b.Towns["Bb"]
	top := b.UnsettledTiles[0]
	left := len(b.UnsettledTiles)
	if err := b.GiveFacedownTile(bb); err != nil {
		t.Fatal(err)
	}
	if len(b.UnsettledTiles) != left-1 {
		t.Errorf("expected %d hidden tiles, got %d", left-1, len(b.UnsettledTiles))
	}
	if bb.CountTiles() != 2 || bb.Tiles[top].Placed == 0 {
		t.Errorf("expected %s placed", top)
	}
}

func TestExposeTiles_Refills(t *testing.T) {
	b := newTestBoard(t, 4)
	b.ExposedTiles = b.ExposedTiles[:1]
	b.ExposeTiles()
	if len(b.ExposedTiles) != 5 {
		t.Errorf("expected 5 exposed tiles, got %d", len(b.ExposedTiles))
	}
}

func TestBuildingPrice(t *testing.T) {
	b := newTestBoard(t, 3)
	aa := b.Towns["Aa"]

	if got := BuildingPrice(types.Wharf, aa); got != 9 {
		t.Errorf("expected 9, got %d", got)
	}
	aa.Tiles[types.QuarryTile] = types.WorkplaceData{Placed: 4, Worked: 4}
	if got := BuildingPrice(types.Wharf, aa); got != 6 {
		t.Errorf("quarry discount capped by tier 3: expected 6, got %d", got)
	}
	aa.Role = types.Builder
	if got := BuildingPrice(types.Wharf, aa); got != 5 {
		t.Errorf("builder discount: expected 5, got %d", got)
	}
	if got := BuildingPrice(types.SmallMarket, aa); got != 0 {
		t.Errorf("price never negative: got %d", got)
	}
}

func TestGiveBuilding(t *testing.T) {
	b := newTestBoard(t, 3)
	aa := b.Towns["Aa"]
	bank := b.Money

	if err := b.GiveBuilding(types.SmallMarket, aa); err != nil {
		t.Fatalf("GiveBuilding: %v", err)
	}
	if aa.Money != 1 || b.Money != bank+1 {
		t.Errorf("expected one money paid, town %d bank %d", aa.Money, b.Money)
	}
	if got := aa.Buildings[types.SmallMarket]; got != (types.WorkplaceData{Placed: 1}) {
		t.Errorf("expected an empty small market, got %+v", got)
	}
	if b.Unbuilt[types.SmallMarket] != 1 {
		t.Errorf("expected 1 small market left, got %d", b.Unbuilt[types.SmallMarket])
	}

	if err := b.GiveBuilding(types.SmallMarket, aa); !errors.Is(err, rules.ErrViolation) {
		t.Errorf("second small market: expected violation, got %v", err)
	}
	if err := b.GiveBuilding(types.Wharf, aa); !errors.Is(err, rules.ErrViolation) {
		t.Errorf("too expensive: expected violation, got %v", err)
	}
}

func TestGiveBuilding_NoSpace(t *testing.T) {
	b := newTestBoard(t, 3)
	aa := b.Towns["Aa"]
	aa.Money = 30
	aa.Buildings[types.CityHall] = types.WorkplaceData{Placed: 1}
	aa.Buildings[types.Fortress] = types.WorkplaceData{Placed: 1}
	aa.Buildings[types.Residence] = types.WorkplaceData{Placed: 1}
	aa.Buildings[types.GuildHall] = types.WorkplaceData{Placed: 1}
	aa.Buildings[types.Harbor] = types.WorkplaceData{Placed: 1}
	aa.Buildings[types.Office] = types.WorkplaceData{Placed: 1}
	aa.Buildings[types.Hacienda] = types.WorkplaceData{Placed: 1}
	aa.Buildings[types.Hospice] = types.WorkplaceData{Placed: 1}

	if err := b.GiveBuilding(types.CustomHouse, aa); !errors.Is(err, rules.ErrViolation) {
		t.Errorf("expected violation, got %v", err)
	}
	if err := b.GiveBuilding(types.Wharf, aa); !errors.Is(err, rules.ErrViolation) {
		t.Errorf("expected violation, got %v", err)
	}
}

func TestGiveRoleAndReset(t *testing.T) {
	b := newTestBoard(t, 3)
	aa := b.Towns["Aa"]
	b.Roles[types.Settler] = types.RoleData{Available: true, Money: 2}

	if err := b.GiveRole(types.Settler, aa); err != nil {
		t.Fatalf("GiveRole: %v", err)
	}
	if aa.Role != types.Settler || aa.Money != 4 {
		t.Errorf("expected settler with 4 money, got %s with %d", aa.Role, aa.Money)
	}
	if err := b.GiveRole(types.Mayor, aa); !errors.Is(err, rules.ErrViolation) {
		t.Errorf("second role: expected violation, got %v", err)
	}
	if err := b.GiveRole(types.Settler, b.Towns["Bb"]); !errors.Is(err, rules.ErrViolation) {
		t.Errorf("taken role: expected violation, got %v", err)
	}
	if err := b.GiveRole(types.SecondProspector, b.Towns["Bb"]); !errors.Is(err, rules.ErrViolation) {
		t.Errorf("unavailable role: expected violation, got %v", err)
	}

	aa.SpentWharf = true
	bank := b.Money
	if err := b.ResetRoles(); err != nil {
		t.Fatalf("ResetRoles: %v", err)
	}
	if b.Roles[types.Settler] != (types.RoleData{Available: true}) {
		t.Errorf("picked role comes back empty, got %+v", b.Roles[types.Settler])
	}
	if b.Roles[types.Mayor] != (types.RoleData{Available: true, Money: 1}) {
		t.Errorf("unpicked role earns one, got %+v", b.Roles[types.Mayor])
	}
	for _, role := range []types.Role{types.Prospector, types.SecondProspector} {
		if b.Roles[role] != (types.RoleData{Available: true}) {
			t.Errorf("%s comes back to the table empty, got %+v", role, b.Roles[role])
		}
	}
	if b.Money != bank-5 {
		t.Errorf("expected 5 money spent on roles, bank %d -> %d", bank, b.Money)
	}
	if aa.Role != types.NoRole || aa.SpentWharf {
		t.Error("town keeps its role or wharf flag")
	}
}

func TestResetRoles_NoMoney(t *testing.T) {
	b := newTestBoard(t, 3)
	b.Money = 0
	if err := b.ResetRoles(); !errors.Is(err, rules.ErrViolation) {
		t.Errorf("expected violation, got %v", err)
	}
}

func TestResetRoles_SecondRound(t *testing.T) {
	b := newTestBoard(t, 3)
	round := func(roles ...types.Role) {
		t.Helper()
		for i, town := range b.TownList() {
			if err := b.GiveRole(roles[i], town); err != nil {
				t.Fatalf("GiveRole %s: %v", roles[i], err)
			}
		}
		if err := b.ResetRoles(); err != nil {
			t.Fatalf("ResetRoles: %v", err)
		}
	}

	round(types.Builder, types.Mayor, types.Settler)
	round(types.Prospector, types.SecondProspector, types.Captain)
	if b.Roles[types.Prospector] != (types.RoleData{Available: true}) {
		t.Errorf("picked prospector comes back empty, got %+v", b.Roles[types.Prospector])
	}
	if b.Roles[types.Craftsman] != (types.RoleData{Available: true, Money: 2}) {
		t.Errorf("craftsman left twice holds 2, got %+v", b.Roles[types.Craftsman])
	}
}

func TestResetRoles_ShortBankChangesNothing(t *testing.T) {
	b := newTestBoard(t, 3)
	for i, town := range b.TownList() {
		if err := b.GiveRole([]types.Role{types.Builder, types.Mayor, types.Settler}[i], town); err != nil {
			t.Fatal(err)
		}
	}
	b.Money = 2
	before := b.Clone()

	if err := b.ResetRoles(); !errors.Is(err, rules.ErrViolation) {
		t.Fatalf("expected violation, got %v", err)
	}
	if !reflect.DeepEqual(b.Roles, before.Roles) || b.Money != 2 {
		t.Errorf("failed reset changed the board: %+v, bank %d", b.Roles, b.Money)
	}
	for _, town := range b.Towns {
		if town.Role == types.NoRole {
			t.Errorf("%s lost its role on a failed reset", town.Name)
		}
	}
}

func TestShipAccept(t *testing.T) {
	b := newTestBoard(t, 3)

	if !b.ShipAccept(4, types.Corn) {
		t.Error("empty ship accepts anything")
	}
	b.GoodsFleet[4] = types.ShipData{Size: 4, Cargo: types.Corn, Amount: 2}
	if !b.ShipAccept(4, types.Corn) {
		t.Error("ship with room accepts its cargo")
	}
	if b.ShipAccept(4, types.Sugar) {
		t.Error("ship refuses a different good")
	}
	if b.ShipAccept(5, types.Corn) {
		t.Error("a good travels on one ship only")
	}
	if !b.ShipAccept(5, types.Sugar) {
		t.Error("another empty ship accepts another good")
	}
	b.GoodsFleet[4] = types.ShipData{Size: 4, Cargo: types.Corn, Amount: 4}
	if b.ShipAccept(4, types.Corn) {
		t.Error("full ship refuses")
	}
	if b.ShipAccept(7, types.Corn) {
		t.Error("unknown ship refuses")
	}
}

func TestLoadCargo(t *testing.T) {
	b := newTestBoard(t, 3)
	aa := b.Towns["Aa"]
	aa.Coffee = 6

	n, err := b.LoadCargo(4, types.Coffee, aa)
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 || aa.Coffee != 2 {
		t.Errorf("expected 4 loaded and 2 left, got %d and %d", n, aa.Coffee)
	}
	if got := b.GoodsFleet[4]; got != (types.ShipData{Size: 4, Cargo: types.Coffee, Amount: 4}) {
		t.Errorf("unexpected ship %+v", got)
	}
}

func TestEmptyShipsAndMarket(t *testing.T) {
	b := newTestBoard(t, 3)
	corn := b.Corn
	b.GoodsFleet[4] = types.ShipData{Size: 4, Cargo: types.Corn, Amount: 4}
	b.GoodsFleet[5] = types.ShipData{Size: 5, Cargo: types.Sugar, Amount: 3}
	b.Market = []types.Good{types.Corn, types.Indigo, types.Sugar}

	b.EmptyShipsAndMarket()
	if b.GoodsFleet[4] != (types.ShipData{Size: 4}) {
		t.Errorf("full ship not emptied: %+v", b.GoodsFleet[4])
	}
	if b.GoodsFleet[5].Amount != 3 {
		t.Error("partial ship emptied")
	}
	if b.Corn != corn+4 {
		t.Errorf("expected cargo back in the bank, corn %d", b.Corn)
	}
	if len(b.Market) != 3 {
		t.Error("market with room emptied")
	}

	b.Market = append(b.Market, types.Coffee)
	b.EmptyShipsAndMarket()
	if len(b.Market) != 0 || b.Corn != corn+5 {
		t.Errorf("full market not returned: %v, corn %d", b.Market, b.Corn)
	}
}

func TestSell_FullMarket(t *testing.T) {
	b := newTestBoard(t, 3)
	aa := b.Towns["Aa"]
	aa.Corn = 1
	b.Market = []types.Good{types.Indigo, types.Sugar, types.Tobacco, types.Coffee}
	if err := b.Sell(types.Corn, aa); !errors.Is(err, rules.ErrViolation) {
		t.Errorf("expected violation, got %v", err)
	}
}

func TestClone_IsDeep(t *testing.T) {
	b := newTestBoard(t, 3)
	c := b.Clone()
	if !reflect.DeepEqual(b, c) {
		t.Fatal("clone differs")
	}
	c.Towns["Aa"].Money = 99
	c.Roles[types.Mayor] = types.RoleData{}
	c.ExposedTiles[0] = types.QuarryTile
	c.Money = 0

	if b.Towns["Aa"].Money == 99 || !b.Roles[types.Mayor].Available ||
		b.ExposedTiles[0] == types.QuarryTile || b.Money == 0 {
		t.Error("clone shares state with the original")
	}
}

func TestSetGovernorAndEndOfRound(t *testing.T) {
	b := newTestBoard(t, 3)
	b.SetGovernor("Bb")
	if !b.Towns["Bb"].Governor || b.Towns["Aa"].Governor {
		t.Error("governor flag not moved")
	}
	if b.IsEndOfRound() {
		t.Error("no role picked yet")
	}
	for _, town := range b.Towns {
		town.Role = types.Mayor
	}
	if !b.IsEndOfRound() {
		t.Error("every town holds a role")
	}
}
