package actions

import (
	"errors"

	"github.com/nathoo/plantation/engine/board"
	"github.com/nathoo/plantation/engine/rules"
	"github.com/nathoo/plantation/types"
)

// reactGovernor opens a round: one role pick per player starting with the
// governor, then the governor passes. When every town already holds a role
// the previous round is closed first.
func reactGovernor(b *board.Board, a Action) ([]Action, error) {
	b.SetGovernor(a.Name)
	extra := forEach(types.RoleAction, b.RoundFrom(a.Name))
	extra = append(extra, For(types.GovernorAction, b.NextTo(a.Name)))

	if !b.IsEndOfRound() {
		return extra, nil
	}
	if b.Money < 3 {
		return []Action{Terminate(a.Name, rules.ReasonNoMoneyForRoles)}, nil
	}
	if err := b.ResetRoles(); errors.Is(err, rules.ErrViolation) {
		// Every card back on the table can need more than the three
		// checked above.
		return []Action{Terminate(a.Name, rules.ReasonNoMoneyForRoles)}, nil
	} else if err != nil {
		return nil, err
	}
	return extra, nil
}
