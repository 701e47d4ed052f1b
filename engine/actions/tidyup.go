package actions

import (
	"github.com/nathoo/plantation/engine/board"
	"github.com/nathoo/plantation/engine/rules"
)

// reactTidyUp closes a role phase: tiles are re-exposed when few are left,
// full ships and a full trading house are emptied, and the colonist ship is
// refilled. It ends the game when the bank runs out of people or points.
func reactTidyUp(b *board.Board, a Action) ([]Action, error) {
	var extra []Action

	if len(b.ExposedTiles) <= len(b.Towns) {
		b.ExposeTiles()
	}
	b.EmptyShipsAndMarket()

	if b.PeopleShip <= 0 {
		jobs := 0
		for _, t := range b.Towns {
			jobs += t.CountVacantBuildingJobs()
		}
		jobs = max(jobs, len(b.Towns))
		if b.People >= jobs {
			b.People -= jobs
			b.PeopleShip = jobs
		} else {
			extra = append(extra, Terminate(a.Name, rules.ReasonNoPeople))
		}
	}

	if b.Points <= 0 {
		extra = append(extra, Terminate(a.Name, rules.ReasonNoPoints))
	}
	return extra, nil
}
