// Package actions implements the action variants of the game. An Action is a
// single tagged struct: Type selects the variant and only the payload fields
// of that variant are set. Possibilities enumerates the legal, fully
// specified instances answering a pending action and React applies one to a
// board, returning the follow-up actions to merge into the queue.
package actions

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nathoo/plantation/engine/board"
	"github.com/nathoo/plantation/engine/rules"
	"github.com/nathoo/plantation/types"
)

// Action is one step of the game, either pending (payload empty) or chosen.
type Action struct {
	Type types.ActionType `json:"type"`
	Name string           `json:"name"`

	Role        types.Role     `json:"role,omitempty"`
	Building    types.Building `json:"building_type,omitempty"`
	ExtraPerson bool           `json:"extra_person,omitempty"`
	Ship        int            `json:"selected_ship,omitempty"`
	Good        types.Good     `json:"selected_good,omitempty"`
	Tile        types.Tile     `json:"tile,omitempty"`
	DownTile    bool           `json:"down_tile,omitempty"`

	SmallWarehouseGood       types.Good `json:"small_warehouse_good,omitempty"`
	LargeWarehouseFirstGood  types.Good `json:"large_warehouse_first_good,omitempty"`
	LargeWarehouseSecondGood types.Good `json:"large_warehouse_second_good,omitempty"`

	Distribution []Assignment `json:"people_distribution,omitempty"`
	Reason       string       `json:"reason,omitempty"`
}

// Assignment is the number of colonists put on one holder: "home", a tile
// or a building.
type Assignment struct {
	Holder string
	Amount int
}

// MarshalJSON writes an assignment as a [holder, amount] pair.
func (a Assignment) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{a.Holder, a.Amount})
}

// UnmarshalJSON reads a [holder, amount] pair.
func (a *Assignment) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("assignment: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("assignment: expected a pair, got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &a.Holder); err != nil {
		return fmt.Errorf("assignment holder: %w", err)
	}
	if err := json.Unmarshal(pair[1], &a.Amount); err != nil {
		return fmt.Errorf("assignment amount: %w", err)
	}
	return nil
}

// For returns the pending action of a type for a player.
func For(t types.ActionType, name string) Action {
	return Action{Type: t, Name: name}
}

// Terminate returns the action ending the game.
func Terminate(name, reason string) Action {
	return Action{Type: types.TerminateAction, Name: name, Reason: reason}
}

// Refuse returns the refusal of a player.
func Refuse(name string) Action {
	return Action{Type: types.RefuseAction, Name: name}
}

var priorities = map[types.ActionType]int{
	types.GovernorAction:  0,
	types.TerminateAction: 1,
	types.RoleAction:      2,
	types.TidyUpAction:    3,
	types.RefuseAction:    4,
	types.StorageAction:   4,
}

// Priority orders follow-up actions when they are merged into the queue.
// Every variant without an entry has priority 5.
func (a Action) Priority() int {
	if p, ok := priorities[a.Type]; ok {
		return p
	}
	return 5
}

// Complete reports whether every payload field the variant needs is set.
func (a Action) Complete() bool {
	switch a.Type {
	case types.RoleAction:
		return a.Role != types.NoRole
	case types.BuilderAction:
		return a.Building != ""
	case types.CaptainAction:
		return a.Ship != 0 && a.Good != ""
	case types.CraftsmanAction, types.TraderAction:
		return a.Good != ""
	case types.MayorAction:
		return a.Distribution != nil
	case types.SettlerAction:
		return a.Tile != ""
	case types.TerminateAction:
		return a.Reason != ""
	case types.GovernorAction, types.TidyUpAction, types.RefuseAction, types.StorageAction:
		return true
	default:
		return false
	}
}

var refusable = map[types.ActionType]bool{
	types.BuilderAction:   true,
	types.CaptainAction:   true,
	types.CraftsmanAction: true,
	types.SettlerAction:   true,
	types.StorageAction:   true,
	types.TraderAction:    true,
}

// RespondsTo reports whether a may be played where expected is pending.
func (a Action) RespondsTo(expected Action) bool {
	if a.Name != expected.Name {
		return false
	}
	if a.Type == types.RefuseAction {
		return refusable[expected.Type]
	}
	return a.Type == expected.Type && a.Complete()
}

func (a Action) String() string {
	var arg string
	switch a.Type {
	case types.GovernorAction:
		return a.Name + ".governor()"
	case types.RoleAction:
		return fmt.Sprintf("%s.take_role(%s)", a.Name, orUnknown(string(a.Role)))
	case types.BuilderAction:
		arg = orUnknown(string(a.Building))
		if a.ExtraPerson {
			arg += " with worker"
		}
		return fmt.Sprintf("%s.build(%s)", a.Name, arg)
	case types.CaptainAction:
		if !a.Complete() {
			return a.Name + ".captain(?)"
		}
		return fmt.Sprintf("%s.captain(%s in %d)", a.Name, a.Good, a.Ship)
	case types.CraftsmanAction:
		return fmt.Sprintf("%s.supercraft(%s)", a.Name, orUnknown(string(a.Good)))
	case types.MayorAction:
		if len(a.Distribution) == 0 {
			return a.Name + ".mayor(?)"
		}
		parts := make([]string, len(a.Distribution))
		for i, as := range a.Distribution {
			parts[i] = fmt.Sprintf("%s=%d", as.Holder, as.Amount)
		}
		return fmt.Sprintf("%s.mayor(%s)", a.Name, strings.Join(parts, ", "))
	case types.SettlerAction:
		arg = orUnknown(string(a.Tile))
		if a.DownTile {
			arg += " +downtile"
		}
		if a.ExtraPerson {
			arg += " +worker"
		}
		return fmt.Sprintf("%s.settler(%s)", a.Name, arg)
	case types.StorageAction:
		var kept []string
		for _, g := range []types.Good{a.Good, a.SmallWarehouseGood, a.LargeWarehouseFirstGood, a.LargeWarehouseSecondGood} {
			if g != "" {
				kept = append(kept, string(g))
			}
		}
		return fmt.Sprintf("%s.store(%s)", a.Name, strings.Join(kept, ", "))
	case types.TidyUpAction:
		return a.Name + ".tidyup()"
	case types.TraderAction:
		return fmt.Sprintf("%s.trade(%s)", a.Name, orUnknown(string(a.Good)))
	case types.TerminateAction:
		return fmt.Sprintf("%s.terminate(%s)", a.Name, a.Reason)
	case types.RefuseAction:
		return a.Name + ".refuse()"
	default:
		return fmt.Sprintf("%s.%s()", a.Name, a.Type)
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "?"
	}
	return s
}

// Rand is the source used to sample large option sets.
type Rand interface {
	Intn(n int) int
}

// Options tunes the enumeration of possibilities. Cap bounds the number of
// mayor distributions kept per step; 0 keeps them all.
type Options struct {
	Cap  int
	Rand Rand
}

// Possibilities lists the legal, complete actions answering the pending
// action a.
func Possibilities(b *board.Board, a Action, opts Options) ([]Action, error) {
	t, err := b.Town(a.Name)
	if err != nil {
		return nil, err
	}
	switch a.Type {
	case types.GovernorAction, types.TidyUpAction, types.TerminateAction, types.RefuseAction:
		return []Action{a}, nil
	case types.RoleAction:
		return rolePossibilities(b, t), nil
	case types.BuilderAction:
		return builderPossibilities(b, t), nil
	case types.CaptainAction:
		return captainPossibilities(b, t), nil
	case types.CraftsmanAction:
		return craftsmanPossibilities(b, t), nil
	case types.MayorAction:
		return mayorPossibilities(t, opts), nil
	case types.SettlerAction:
		return settlerPossibilities(b, t), nil
	case types.StorageAction:
		return storagePossibilities(t), nil
	case types.TraderAction:
		return traderPossibilities(b, t), nil
	default:
		return nil, rules.Violation("unknown action type %q", a.Type)
	}
}

// React applies a to the board and returns the follow-up actions. A
// terminate action returns a *rules.GameOver error.
func React(b *board.Board, a Action) ([]Action, error) {
	t, err := b.Town(a.Name)
	if err != nil {
		return nil, err
	}
	if !a.Complete() {
		return nil, rules.Violation("action %s is not complete", a)
	}
	switch a.Type {
	case types.GovernorAction:
		return reactGovernor(b, a)
	case types.RoleAction:
		return reactRole(b, t, a)
	case types.BuilderAction:
		return reactBuilder(b, t, a)
	case types.CaptainAction:
		return reactCaptain(b, t, a)
	case types.CraftsmanAction:
		return reactCraftsman(b, t, a)
	case types.MayorAction:
		return reactMayor(t, a)
	case types.SettlerAction:
		return reactSettler(b, t, a)
	case types.StorageAction:
		return reactStorage(b, t, a)
	case types.TidyUpAction:
		return reactTidyUp(b, a)
	case types.TraderAction:
		return reactTrader(b, t, a)
	case types.TerminateAction:
		return nil, &rules.GameOver{Reason: a.Reason}
	case types.RefuseAction:
		return nil, nil
	default:
		return nil, rules.Violation("unknown action type %q", a.Type)
	}
}

func forEach(t types.ActionType, names []string) []Action {
	out := make([]Action, 0, len(names))
	for _, name := range names {
		out = append(out, For(t, name))
	}
	return out
}
