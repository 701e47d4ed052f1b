package town

import (
	"github.com/nathoo/plantation/engine/catalog"
	"github.com/nathoo/plantation/types"
)

// Tally is the breakdown of a town's final score.
type Tally struct {
	Shipped     int `json:"shipped"`
	Buildings   int `json:"buildings"`
	CityHall    int `json:"city_hall"`
	CustomHouse int `json:"custom_house"`
	Fortress    int `json:"fortress"`
	GuildHall   int `json:"guild_hall"`
	Residence   int `json:"residence"`
}

// Total sums every component.
func (s Tally) Total() int {
	return s.Shipped + s.Buildings + s.CityHall + s.CustomHouse +
		s.Fortress + s.GuildHall + s.Residence
}

// TallyDetails computes every score component. The four large-building
// bonuses count only when the building is staffed.
func (t *Town) TallyDetails() Tally {
	s := Tally{Shipped: t.Points}

	for _, b := range t.ListBuildings() {
		s.Buildings += catalog.Tier(b)
	}

	if t.Privilege(types.CityHall) {
		for _, b := range t.ListBuildings() {
			if !catalog.IsProduction(b) {
				s.CityHall++
			}
		}
	}

	if t.Privilege(types.CustomHouse) {
		s.CustomHouse = t.Points / 4
	}

	if t.Privilege(types.Fortress) {
		s.Fortress = t.CountTotalPeople() / 3
	}

	if t.Privilege(types.GuildHall) {
		for _, b := range t.ListBuildings() {
			switch {
			case catalog.IsSmallProduction(b):
				s.GuildHall++
			case catalog.IsProduction(b):
				s.GuildHall += 2
			}
		}
	}

	if t.Privilege(types.Residence) {
		occupied := 0
		for _, data := range t.Tiles {
			occupied += data.Worked
		}
		s.Residence = max(4, occupied-5)
	}

	return s
}

// Tally returns the final score of the town.
func (t *Town) Tally() int {
	return t.TallyDetails().Total()
}
