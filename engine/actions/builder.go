package actions

import (
	"github.com/nathoo/plantation/engine/board"
	"github.com/nathoo/plantation/engine/catalog"
	"github.com/nathoo/plantation/engine/rules"
	"github.com/nathoo/plantation/engine/town"
	"github.com/nathoo/plantation/types"
)

func builderPossibilities(b *board.Board, t *town.Town) []Action {
	extras := []bool{false}
	if t.Privilege(types.Hospice) && b.People > 0 {
		extras = append(extras, true)
	}

	out := []Action{Refuse(t.Name)}
	for _, building := range catalog.Buildings {
		if !b.CanBuild(building, t) {
			continue
		}
		for _, extra := range extras {
			out = append(out, Action{
				Type:        types.BuilderAction,
				Name:        t.Name,
				Building:    building,
				ExtraPerson: extra,
			})
		}
	}
	return out
}

func reactBuilder(b *board.Board, t *town.Town, a Action) ([]Action, error) {
	if a.ExtraPerson && !(t.Privilege(types.Hospice) && b.People > 0) {
		return nil, rules.Violation("town of %s can't ask for an extra worker", t.Name)
	}
	if err := b.GiveBuilding(a.Building, t); err != nil {
		return nil, err
	}
	if a.ExtraPerson {
		b.People--
		t.Buildings[a.Building] = types.WorkplaceData{Placed: 1, Worked: 1}
	}

	if t.CountFreeBuildSpace() == 0 {
		return []Action{Terminate(a.Name, rules.ReasonNoRealEstate)}, nil
	}
	return nil, nil
}
