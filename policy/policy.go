// Package policy holds the decision makers that play a seat: uniform random
// choice, sandboxed Lua scripts, and the marker for seats a person plays.
package policy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nathoo/plantation/engine"
	"github.com/nathoo/plantation/engine/actions"
)

// ErrHumanSeat is returned by Human.Decide; the interactive driver answers
// for those seats itself.
var ErrHumanSeat = errors.New("seat is played by a person")

// Policy picks the answer to the expected action of a game.
type Policy interface {
	Decide(g *engine.Game) (actions.Action, error)
}

// Random picks uniformly among the possibilities using the game RNG, so a
// seeded game replays the same choices.
type Random struct {
	Cap int
}

func (r Random) Decide(g *engine.Game) (actions.Action, error) {
	options, err := g.Possibilities(r.Cap)
	if err != nil {
		return actions.Action{}, err
	}
	if len(options) == 0 {
		return actions.Action{}, fmt.Errorf("no possible answer to %s", g.Expected())
	}
	return options[g.RNG().Intn(len(options))], nil
}

// Human marks a seat answered interactively.
type Human struct{}

func (Human) Decide(*engine.Game) (actions.Action, error) {
	return actions.Action{}, ErrHumanSeat
}

// FromSpec builds the policy named by a seat spec: "random", "human" or
// "lua:<path>". Limit bounds the option lists handed to the policy.
func FromSpec(spec string, limit int) (Policy, error) {
	switch {
	case spec == "random":
		return Random{Cap: limit}, nil
	case spec == "human":
		return Human{}, nil
	case strings.HasPrefix(spec, "lua:"):
		return LoadLua(strings.TrimPrefix(spec, "lua:"), limit)
	default:
		return nil, fmt.Errorf("unknown policy %q", spec)
	}
}

// IsHuman reports whether p is answered interactively.
func IsHuman(p Policy) bool {
	_, ok := p.(Human)
	return ok
}
