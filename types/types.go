// Package types defines the shared vocabulary of the plantation engine.
// It holds type definitions and labels only.
package types

// Resource is a countable quantity held by the bank or by a town.
type Resource string

const (
	Money   Resource = "money"
	People  Resource = "people"
	Points  Resource = "points"
	Corn    Resource = "corn"
	Indigo  Resource = "indigo"
	Sugar   Resource = "sugar"
	Tobacco Resource = "tobacco"
	Coffee  Resource = "coffee"
)

// Good is a tradeable, shippable commodity. Every Good is also a Resource.
type Good = Resource

// Tile is a plantation or quarry tile kind.
type Tile string

const (
	CoffeeTile  Tile = "coffee_tile"
	CornTile    Tile = "corn_tile"
	IndigoTile  Tile = "indigo_tile"
	QuarryTile  Tile = "quarry_tile"
	SugarTile   Tile = "sugar_tile"
	TobaccoTile Tile = "tobacco_tile"
)

// Building is a building kind.
type Building string

const (
	CityHall         Building = "city_hall"
	CoffeeRoaster    Building = "coffee_roaster"
	ConstructionHut  Building = "construction_hut"
	CustomHouse      Building = "custom_house"
	Factory          Building = "factory"
	Fortress         Building = "fortress"
	GuildHall        Building = "guild_hall"
	Hacienda         Building = "hacienda"
	Harbor           Building = "harbor"
	Hospice          Building = "hospice"
	IndigoPlant      Building = "indigo_plant"
	LargeMarket      Building = "large_market"
	LargeWarehouse   Building = "large_warehouse"
	Office           Building = "office"
	Residence        Building = "residence"
	SmallIndigoPlant Building = "small_indigo_plant"
	SmallMarket      Building = "small_market"
	SmallSugarMill   Building = "small_sugar_mill"
	SmallWarehouse   Building = "small_warehouse"
	SugarMill        Building = "sugar_mill"
	TobaccoStorage   Building = "tobacco_storage"
	University       Building = "university"
	Wharf            Building = "wharf"
)

// Role is a role card.
type Role string

const (
	NoRole           Role = ""
	Builder          Role = "builder"
	Captain          Role = "captain"
	Craftsman        Role = "craftsman"
	Mayor            Role = "mayor"
	Settler          Role = "settler"
	Trader           Role = "trader"
	Prospector       Role = "prospector"
	SecondProspector Role = "second_prospector"
)

// ActionType tags each action variant.
type ActionType string

const (
	GovernorAction  ActionType = "governor"
	RoleAction      ActionType = "role"
	BuilderAction   ActionType = "builder"
	CaptainAction   ActionType = "captain"
	CraftsmanAction ActionType = "craftsman"
	MayorAction     ActionType = "mayor"
	SettlerAction   ActionType = "settler"
	StorageAction   ActionType = "storage"
	TidyUpAction    ActionType = "tidyup"
	TraderAction    ActionType = "trader"
	TerminateAction ActionType = "terminate"
	RefuseAction    ActionType = "refuse"
)

// Home is the people-holder label for colonists not assigned to any slot.
const Home = "home"

// WorkplaceData pairs a placed count with the part of it staffed by workers.
type WorkplaceData struct {
	Placed int `json:"placed"`
	Worked int `json:"worked"`
}

// ShipData is one cargo ship. Cargo is empty when the ship carries nothing.
type ShipData struct {
	Size   int  `json:"size"`
	Cargo  Good `json:"cargo,omitempty"`
	Amount int  `json:"amount"`
}

// RoleData is the state of one role card: whether it can be picked and the
// money that accrued on it.
type RoleData struct {
	Available bool `json:"available"`
	Money     int  `json:"money"`
}

// BuildInfo is the static description of a building kind.
type BuildInfo struct {
	Tier    int
	Cost    int
	Space   int
	Initial int
}
