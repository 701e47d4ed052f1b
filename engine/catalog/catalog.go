// Package catalog holds the fixed rule tables of the game: the ordered lists
// of goods, tiles, buildings and roles, the building table, the tile bag and
// the starting stock of the bank.
package catalog

import "github.com/nathoo/plantation/types"

// MaxTiles and MaxBuildSpace bound what a single town can hold.
const (
	MaxTiles      = 12
	MaxBuildSpace = 12
	MaxMarket     = 4
	Quarries      = 8
)

// WharfShip is the ship number used by captain actions that ship through a
// private wharf instead of a cargo ship.
const WharfShip = 11

var Goods = []types.Good{
	types.Corn,
	types.Indigo,
	types.Sugar,
	types.Tobacco,
	types.Coffee,
}

var Tiles = []types.Tile{
	types.CoffeeTile,
	types.CornTile,
	types.IndigoTile,
	types.QuarryTile,
	types.SugarTile,
	types.TobaccoTile,
}

var ProductionBuildings = []types.Building{
	types.CoffeeRoaster,
	types.IndigoPlant,
	types.SmallIndigoPlant,
	types.SmallSugarMill,
	types.SugarMill,
	types.TobaccoStorage,
}

var SmallBuildings = []types.Building{
	types.ConstructionHut,
	types.Factory,
	types.Hacienda,
	types.Harbor,
	types.Hospice,
	types.LargeMarket,
	types.LargeWarehouse,
	types.Office,
	types.SmallMarket,
	types.SmallWarehouse,
	types.University,
	types.Wharf,
}

var LargeBuildings = []types.Building{
	types.CityHall,
	types.CustomHouse,
	types.Fortress,
	types.GuildHall,
	types.Residence,
}

// Buildings lists every building kind: production, then small, then large.
var Buildings = concat(ProductionBuildings, SmallBuildings, LargeBuildings)

var Roles = []types.Role{
	types.Builder,
	types.Captain,
	types.Craftsman,
	types.Mayor,
	types.Settler,
	types.Trader,
	types.Prospector,
	types.SecondProspector,
}

var buildInfo = map[types.Building]types.BuildInfo{
	types.CityHall:         {Tier: 4, Cost: 10, Space: 1, Initial: 1},
	types.CoffeeRoaster:    {Tier: 3, Cost: 6, Space: 2, Initial: 3},
	types.ConstructionHut:  {Tier: 1, Cost: 2, Space: 1, Initial: 2},
	types.CustomHouse:      {Tier: 4, Cost: 10, Space: 1, Initial: 1},
	types.Factory:          {Tier: 3, Cost: 7, Space: 1, Initial: 2},
	types.Fortress:         {Tier: 4, Cost: 10, Space: 1, Initial: 1},
	types.GuildHall:        {Tier: 4, Cost: 10, Space: 1, Initial: 1},
	types.Hacienda:         {Tier: 1, Cost: 2, Space: 1, Initial: 2},
	types.Harbor:           {Tier: 3, Cost: 8, Space: 1, Initial: 2},
	types.Hospice:          {Tier: 2, Cost: 4, Space: 1, Initial: 2},
	types.IndigoPlant:      {Tier: 2, Cost: 3, Space: 3, Initial: 3},
	types.LargeMarket:      {Tier: 2, Cost: 5, Space: 1, Initial: 2},
	types.LargeWarehouse:   {Tier: 2, Cost: 6, Space: 1, Initial: 2},
	types.Office:           {Tier: 2, Cost: 5, Space: 1, Initial: 2},
	types.Residence:        {Tier: 4, Cost: 10, Space: 1, Initial: 1},
	types.SmallIndigoPlant: {Tier: 1, Cost: 1, Space: 1, Initial: 4},
	types.SmallMarket:      {Tier: 1, Cost: 1, Space: 1, Initial: 2},
	types.SmallSugarMill:   {Tier: 1, Cost: 2, Space: 1, Initial: 4},
	types.SmallWarehouse:   {Tier: 1, Cost: 3, Space: 1, Initial: 2},
	types.SugarMill:        {Tier: 2, Cost: 4, Space: 3, Initial: 3},
	types.TobaccoStorage:   {Tier: 3, Cost: 5, Space: 3, Initial: 3},
	types.University:       {Tier: 3, Cost: 8, Space: 1, Initial: 2},
	types.Wharf:            {Tier: 3, Cost: 9, Space: 1, Initial: 2},
}

// TileBag is the number of each plantation kind in the shuffled bag, in
// bag order. Quarries are kept apart.
var TileBag = []struct {
	Tile  types.Tile
	Count int
}{
	{types.CoffeeTile, 8},
	{types.CornTile, 10},
	{types.IndigoTile, 12},
	{types.SugarTile, 11},
	{types.TobaccoTile, 9},
}

// BankStart is the starting stock of the bank that does not depend on the
// number of players.
var BankStart = map[types.Resource]int{
	types.Money:   54,
	types.Points:  122,
	types.Coffee:  9,
	types.Corn:    10,
	types.Indigo:  11,
	types.Sugar:   11,
	types.Tobacco: 9,
}

// StartPeople is the number of colonists in the bank for n players.
func StartPeople(n int) int {
	return 20*n - 5
}

var tradePrice = map[types.Good]int{
	types.Corn:    0,
	types.Indigo:  1,
	types.Sugar:   2,
	types.Tobacco: 3,
	types.Coffee:  4,
}

var goodTile = map[types.Good]types.Tile{
	types.Corn:    types.CornTile,
	types.Indigo:  types.IndigoTile,
	types.Sugar:   types.SugarTile,
	types.Tobacco: types.TobaccoTile,
	types.Coffee:  types.CoffeeTile,
}

var producers = map[types.Good][]types.Building{
	types.Indigo:  {types.SmallIndigoPlant, types.IndigoPlant},
	types.Sugar:   {types.SmallSugarMill, types.SugarMill},
	types.Tobacco: {types.TobaccoStorage},
	types.Coffee:  {types.CoffeeRoaster},
}

// Info returns the static description of a building.
func Info(b types.Building) (types.BuildInfo, bool) {
	info, ok := buildInfo[b]
	return info, ok
}

// Tier returns the tier of a building, 0 for unknown kinds.
func Tier(b types.Building) int {
	return buildInfo[b].Tier
}

// Space returns the number of workers a building employs.
func Space(b types.Building) int {
	return buildInfo[b].Space
}

// IsLarge reports whether the building takes two build spaces.
func IsLarge(b types.Building) bool {
	return contains(LargeBuildings, b)
}

// IsProduction reports whether the building processes a good.
func IsProduction(b types.Building) bool {
	return contains(ProductionBuildings, b)
}

// IsSmallProduction reports whether the building is one of the single-worker
// production buildings.
func IsSmallProduction(b types.Building) bool {
	return b == types.SmallIndigoPlant || b == types.SmallSugarMill
}

// RequiredSpace returns the build space a building occupies.
func RequiredSpace(b types.Building) int {
	if IsLarge(b) {
		return 2
	}
	return 1
}

// TradePrice returns the base price the trading house pays for a good.
func TradePrice(g types.Good) int {
	return tradePrice[g]
}

// TileFor returns the plantation that grows a good.
func TileFor(g types.Good) types.Tile {
	return goodTile[g]
}

// Producers returns the production buildings processing a good. Corn needs
// none and returns nil.
func Producers(g types.Good) []types.Building {
	return producers[g]
}

// IsGood reports whether the resource is one of the five goods.
func IsGood(r types.Resource) bool {
	return contains(Goods, r)
}

// IsTile reports whether the label names a tile kind.
func IsTile(label string) bool {
	return contains(Tiles, types.Tile(label))
}

// IsBuilding reports whether the label names a building kind.
func IsBuilding(label string) bool {
	_, ok := buildInfo[types.Building(label)]
	return ok
}

// IsRole reports whether the role is one of the eight role cards.
func IsRole(r types.Role) bool {
	return contains(Roles, r)
}

// IndigoStarters returns how many players start with an indigo plantation.
func IndigoStarters(players int) int {
	if players < 5 {
		return 2
	}
	return 3
}

func contains[T comparable](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func concat[T any](lists ...[]T) []T {
	var out []T
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
