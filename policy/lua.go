package policy

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/plantation/engine"
	"github.com/nathoo/plantation/engine/actions"
)

// DecideTimeout is the default bound on a single call into a script.
const DecideTimeout = 2 * time.Second

// Lua is a seat played by a script defining
//
//	function decide(expected, options, town, board) ... end
//
// which returns the 1-based index of the chosen option. The tables mirror the
// JSON save form; every option also carries its "label". The VM is kept for
// the life of the policy so scripts may keep state in globals. A Lua policy
// is not safe for concurrent use.
type Lua struct {
	Path    string
	Cap     int
	Timeout time.Duration

	L *lua.LState
}

// LoadLua runs the script at path in a sandboxed VM and checks it defines
// decide.
func LoadLua(path string, limit int) (*Lua, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script %s: %w", path, err)
	}
	p, err := NewLua(path, string(src), limit)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// NewLua is LoadLua for an in-memory script; name is used in errors.
func NewLua(name, src string, limit int) (*Lua, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibs(L)
	sandbox(L)

	if err := L.DoString(src); err != nil {
		L.Close()
		return nil, fmt.Errorf("executing %s: %w", name, err)
	}
	if _, ok := L.GetGlobal("decide").(*lua.LFunction); !ok {
		L.Close()
		return nil, fmt.Errorf("%s: no decide function", name)
	}
	return &Lua{Path: name, Cap: limit, Timeout: DecideTimeout, L: L}, nil
}

// Close releases the VM.
func (p *Lua) Close() {
	if p.L != nil {
		p.L.Close()
		p.L = nil
	}
}

func (p *Lua) Decide(g *engine.Game) (actions.Action, error) {
	if p.L == nil {
		return actions.Action{}, fmt.Errorf("%s: policy is closed", p.Path)
	}
	options, err := g.Possibilities(p.Cap)
	if err != nil {
		return actions.Action{}, err
	}
	if len(options) == 0 {
		return actions.Action{}, fmt.Errorf("no possible answer to %s", g.Expected())
	}
	expected := g.Expected()
	t, err := g.Board.Town(expected.Name)
	if err != nil {
		return actions.Action{}, err
	}

	args := make([]lua.LValue, 0, 4)
	for _, v := range []any{expected, options, t, g.Board} {
		lv, err := toLua(p.L, v)
		if err != nil {
			return actions.Action{}, err
		}
		args = append(args, lv)
	}
	labelOptions(args[1].(*lua.LTable), options)
	if tbl, ok := args[0].(*lua.LTable); ok {
		tbl.RawSetString("label", lua.LString(expected.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.Timeout)
	defer cancel()
	p.L.SetContext(ctx)
	defer p.L.RemoveContext()

	err = p.L.CallByParam(lua.P{
		Fn:      p.L.GetGlobal("decide"),
		NRet:    1,
		Protect: true,
	}, args...)
	if err != nil {
		return actions.Action{}, fmt.Errorf("%s: decide: %w", p.Path, err)
	}
	ret := p.L.Get(-1)
	p.L.Pop(1)

	n, ok := ret.(lua.LNumber)
	if !ok {
		return actions.Action{}, fmt.Errorf("%s: decide returned %s, want a number", p.Path, ret.Type())
	}
	i := int(n)
	if float64(i) != float64(n) || i < 1 || i > len(options) {
		return actions.Action{}, fmt.Errorf("%s: decide returned %v, want 1..%d", p.Path, n, len(options))
	}
	return options[i-1], nil
}

func labelOptions(tbl *lua.LTable, options []actions.Action) {
	for i, a := range options {
		if row, ok := tbl.RawGetInt(i + 1).(*lua.LTable); ok {
			row.RawSetString("label", lua.LString(a.String()))
		}
	}
}

// toLua converts a value to Lua through its JSON form.
func toLua(L *lua.LState, v any) (lua.LValue, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return lua.LNil, err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return lua.LNil, err
	}
	return toLuaValue(L, doc), nil
}

func toLuaValue(L *lua.LState, v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(val)
	case float64:
		return lua.LNumber(val)
	case string:
		return lua.LString(val)
	case []any:
		t := L.CreateTable(len(val), 0)
		for _, item := range val {
			t.Append(toLuaValue(L, item))
		}
		return t
	case map[string]any:
		t := L.CreateTable(0, len(val))
		for k, item := range val {
			t.RawSetString(k, toLuaValue(L, item))
		}
		return t
	default:
		return lua.LNil
	}
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	for _, name := range []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	} {
		L.SetGlobal(name, lua.LNil)
	}

	// Scripts share the game's determinism: no reseeding.
	if tbl, ok := L.GetGlobal("math").(*lua.LTable); ok {
		tbl.RawSetString("randomseed", lua.LNil)
		tbl.RawSetString("random", lua.LNil)
	}
}
