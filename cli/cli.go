// Package cli provides terminal I/O, output formatting, and meta-command
// dispatch for a plantation game played at the table.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/nathoo/plantation/engine"
	"github.com/nathoo/plantation/engine/actions"
	"github.com/nathoo/plantation/engine/rules"
	"github.com/nathoo/plantation/engine/save"
	"github.com/nathoo/plantation/policy"
)

// CLI handles terminal interaction with the people at the table. Seats whose
// policy is not human are played automatically.
type CLI struct {
	Game      *engine.Game
	Seats     map[string]policy.Policy
	In        io.Reader
	Out       io.Writer
	SaveDir   string
	Cap       int
	Trace     bool
	EchoInput bool // echo each input line after the prompt (for script playback)

	// Moves holds the labels of the actions taken since the game was
	// started or loaded.
	Moves []string

	options  []actions.Action // options shown to the current human seat
	lastPick string           // for "again"/"g" repeat
}

// New creates a CLI for the given game and seats.
func New(g *engine.Game, seats map[string]policy.Policy) *CLI {
	home, _ := os.UserHomeDir()
	return &CLI{
		Game:    g,
		Seats:   seats,
		In:      os.Stdin,
		Out:     os.Stdout,
		SaveDir: filepath.Join(home, ".plantation", "saves"),
		Cap:     20,
	}
}

// Run plays until the game ends, input runs out or /quit.
func (c *CLI) Run() {
	c.printLine(styleHeader.Render("Plantation: " + strings.Join(c.Game.PlayOrder, ", ")))

	scanner := bufio.NewScanner(c.In)
	for {
		if c.Game.Over() {
			c.printGameOver()
			return
		}

		expected := c.Game.Expected()
		p, ok := c.Seats[expected.Name]
		if !ok {
			c.printSystem(fmt.Sprintf("No seat for %s.", expected.Name))
			return
		}
		if !policy.IsHuman(p) {
			if !c.autoPlay(p) {
				return
			}
			continue
		}

		if c.options == nil && !c.showOptions() {
			return
		}

		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastPick == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastPick
		}
		c.pick(input)
	}
}

// autoPlay lets a policy answer for its seat. It reports false when the
// session cannot go on.
func (c *CLI) autoPlay(p policy.Policy) bool {
	a, err := p.Decide(c.Game)
	if err != nil {
		c.printSystem(fmt.Sprintf("%s can't decide: %v", c.Game.Expected().Name, err))
		return false
	}
	if err := c.take(a); err != nil {
		c.printSystem(fmt.Sprintf("%s played %s: %v", a.Name, a, err))
		return false
	}
	return true
}

func (c *CLI) showOptions() bool {
	options, err := c.Game.Possibilities(c.Cap)
	if err != nil || len(options) == 0 {
		c.printSystem(fmt.Sprintf("No options for %s: %v", c.Game.Expected(), err))
		return false
	}
	c.options = options
	c.printLine(styleHeader.Render(fmt.Sprintf("%s, answer %s:", c.Game.Expected().Name, c.Game.Expected())))
	c.printLine(renderOptions(options))
	return true
}

func (c *CLI) pick(input string) {
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > len(c.options) {
		c.printSystem(fmt.Sprintf("Pick an option between 1 and %d.", len(c.options)))
		return
	}
	if err := c.take(c.options[n-1]); err != nil {
		c.printSystem(err.Error())
		return
	}
	c.lastPick = input
}

// take applies a and prints it. Game over is not an error here.
func (c *CLI) take(a actions.Action) error {
	err := c.Game.TakeAction(a)
	if _, over := rules.IsGameOver(err); err != nil && !over {
		return err
	}
	c.options = nil
	c.Moves = append(c.Moves, a.String())
	c.printLine(styleMove.Render(a.String()))
	if c.Trace {
		c.printTrace()
	}
	return nil
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/save":
		c.cmdSave(arg)

	case "/load":
		c.cmdLoad(arg)

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/score":
		c.printLine(renderScores(c.Game.Scores()))

	case "/options":
		c.options = nil

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) savePath(name string) string {
	if name == "" {
		name = "quicksave"
	}
	if !strings.HasSuffix(name, ".json") && !strings.HasSuffix(name, ".zst") {
		name += ".json"
	}
	return filepath.Join(c.SaveDir, name)
}

func (c *CLI) cmdSave(name string) {
	if name == "" {
		name = "quicksave"
	}
	if err := save.WriteFile(c.savePath(name), c.Game); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Game saved to %s.", name))
}

func (c *CLI) cmdLoad(name string) {
	if name == "" {
		name = "quicksave"
	}
	g, err := save.ReadFile(c.savePath(name))
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}
	for _, seat := range g.PlayOrder {
		if _, ok := c.Seats[seat]; !ok {
			c.printSystem(fmt.Sprintf("Load failed: no seat for %s", seat))
			return
		}
	}
	c.Game = g
	c.options = nil
	c.Moves = nil
	c.printSystem(fmt.Sprintf("Game loaded from %s (turn %d).", name, g.Turn))
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /save [name]  Save game (default: quicksave, .zst compresses)",
		"  /load [name]  Load game (default: quicksave)",
		"  /quit         Exit game",
		"  /help         Show this help",
		"  /state        Show the board",
		"  /score        Show the current tally",
		"  /options      List the options again",
		"  /trace        Toggle the action queue trace",
		"",
		"Playing:",
		"  <n>           Take option n",
		"  again (g)     Take the same option number as last time",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	g := c.Game
	b := g.Board
	c.printSystem(fmt.Sprintf("Turn: %d", g.Turn))
	c.printSystem(fmt.Sprintf("Expected: %s", g.Expected()))
	c.printSystem(fmt.Sprintf("Bank: money %d, people %d, points %d, colonist ship %d",
		b.Money, b.People, b.Points, b.PeopleShip))
	c.printSystem(fmt.Sprintf("Goods: corn %d, indigo %d, sugar %d, tobacco %d, coffee %d",
		b.Corn, b.Indigo, b.Sugar, b.Tobacco, b.Coffee))

	var ships []string
	for _, size := range b.ShipSizes() {
		s := b.GoodsFleet[size]
		cargo := "empty"
		if s.Amount > 0 {
			cargo = fmt.Sprintf("%d %s", s.Amount, s.Cargo)
		}
		ships = append(ships, fmt.Sprintf("%d: %s", size, cargo))
	}
	c.printSystem("Ships: " + strings.Join(ships, ", "))
	c.printSystem(fmt.Sprintf("Market: %v", b.Market))
	c.printSystem(fmt.Sprintf("Exposed tiles: %v", b.ExposedTiles))

	var roles []string
	for role, data := range b.Roles {
		if data.Available {
			roles = append(roles, fmt.Sprintf("%s(+%d)", role, data.Money))
		}
	}
	sort.Strings(roles)
	c.printSystem("Roles: " + strings.Join(roles, ", "))

	for _, t := range b.TownList() {
		c.printSystem(fmt.Sprintf("%s: money %d, people %d/%d, points %d, goods %d, role %q",
			t.Name, t.Money, t.CountTotalPeople(), t.CountTotalJobs(), t.Points, t.CountGoods(), t.Role))
	}
}

func (c *CLI) printGameOver() {
	c.printSystem("Game over: " + c.Game.EndReason)
	c.printLine(renderScores(c.Game.Scores()))
}

func (c *CLI) printTrace() {
	labels := make([]string, len(c.Game.Actions))
	for i, a := range c.Game.Actions {
		labels[i] = a.String()
	}
	c.printLine(styleTrace.Render(fmt.Sprintf("[trace] turn %d, queue: %s", c.Game.Turn, strings.Join(labels, " "))))
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintln(c.Out, styleSystem.Render("["+text+"]"))
}
