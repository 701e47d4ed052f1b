// Package rules defines the two ways an action can fail to advance the game:
// a rule violation (an illegal action, a programmer error upstream) and the
// game-over signal raised by a terminate action.
package rules

import (
	"errors"
	"fmt"
)

// ErrViolation is wrapped by every error caused by an illegal action:
// insufficient resources, a missing privilege, the wrong player or an
// incomplete payload.
var ErrViolation = errors.New("rule violation")

// Violation builds an error wrapping ErrViolation.
func Violation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrViolation, fmt.Sprintf(format, args...))
}

// Game-over reasons.
const (
	ReasonNoMoneyForRoles = "No more money for roles."
	ReasonNoRealEstate    = "Game over: no more real estate."
	ReasonNoPeople        = "No more people."
	ReasonNoPoints        = "No more points."
	ReasonNoMoney         = "No more money."
)

// GameOver is returned when a terminate action is applied. It is the normal
// end of a game, not a bug.
type GameOver struct {
	Reason string
}

func (g *GameOver) Error() string {
	return "game over: " + g.Reason
}

// IsGameOver reports whether err carries the game-over signal and returns
// its reason.
func IsGameOver(err error) (string, bool) {
	var over *GameOver
	if errors.As(err, &over) {
		return over.Reason, true
	}
	return "", false
}
