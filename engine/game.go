// Package engine runs a game: it owns the board and the queue of pending
// actions, checks each submitted action against the head of the queue,
// applies it, and merges the follow-up actions back in by priority.
package engine

import (
	"go.uber.org/zap"

	"github.com/nathoo/plantation/engine/actions"
	"github.com/nathoo/plantation/engine/board"
	"github.com/nathoo/plantation/engine/rules"
	"github.com/nathoo/plantation/engine/town"
	"github.com/nathoo/plantation/types"
)

// Game is the full state of one game. The caller of TakeAction is the only
// mutator; a Game is not safe for concurrent use.
type Game struct {
	PlayOrder []string
	Actions   []actions.Action
	Board     *board.Board
	Turn      int
	EndReason string

	rng *RNG
	log *zap.Logger
}

// StartOptions configures a new game.
type StartOptions struct {
	// Shuffle randomizes the play order and the tile bag.
	Shuffle bool
	Seed    int64
	Logger  *zap.Logger
}

// Start sets up a game for 3 to 5 players. The first player in play order
// is the first governor.
func Start(names []string, opts StartOptions) (*Game, error) {
	if len(names) < 3 || len(names) > 5 {
		return nil, rules.Violation("games are for three to five players, got %d", len(names))
	}

	rng := NewRNG(opts.Seed)
	order := append([]string(nil), names...)
	var shuffler board.Shuffler
	if opts.Shuffle {
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		shuffler = rng
	}

	b, err := board.New(order, shuffler)
	if err != nil {
		return nil, err
	}

	g := &Game{
		PlayOrder: order,
		Actions:   []actions.Action{actions.For(types.GovernorAction, order[0])},
		Board:     b,
		rng:       rng,
		log:       opts.Logger,
	}
	g.logger().Info("game started",
		zap.Strings("play_order", order),
		zap.Int64("seed", opts.Seed),
		zap.Bool("shuffle", opts.Shuffle),
	)
	return g, nil
}

func (g *Game) logger() *zap.Logger {
	if g.log == nil {
		g.log = zap.NewNop()
	}
	return g.log
}

// SetLogger replaces the game logger. A nil logger discards output.
func (g *Game) SetLogger(l *zap.Logger) {
	g.log = l
}

// RNG returns the game's random source, creating a zero-seeded one if the
// game was built by hand.
func (g *Game) RNG() *RNG {
	if g.rng == nil {
		g.rng = NewRNG(0)
	}
	return g.rng
}

// RestoreRNG re-creates the RNG from seed and advances to the saved position.
func (g *Game) RestoreRNG(seed int64, position int64) {
	g.rng = RestoreRNG(seed, position)
}

// Expected returns the action at the head of the queue.
func (g *Game) Expected() actions.Action {
	if len(g.Actions) == 0 {
		return actions.Action{}
	}
	return g.Actions[0]
}

// Over reports whether a terminate action has been applied.
func (g *Game) Over() bool {
	return g.EndReason != ""
}

// Possibilities lists the legal answers to the expected action. Mayor
// enumerations larger than limit are sampled with the game RNG; 0 keeps all.
func (g *Game) Possibilities(limit int) ([]actions.Action, error) {
	if g.Over() {
		return nil, rules.Violation("game is over: %s", g.EndReason)
	}
	return actions.Possibilities(g.Board, g.Expected(), actions.Options{Cap: limit, Rand: g.RNG()})
}

// TakeAction applies a to the game. The action must answer the expected
// one. Rule violations leave the game unchanged. When a terminate action is
// applied the game ends and the *rules.GameOver error is returned.
func (g *Game) TakeAction(a actions.Action) error {
	if g.Over() {
		return rules.Violation("game is over: %s", g.EndReason)
	}
	expected := g.Expected()
	if !a.RespondsTo(expected) {
		return rules.Violation("%s doesn't answer %s", a, expected)
	}

	backup := g.Board.Clone()
	extra, err := actions.React(g.Board, a)
	if reason, over := rules.IsGameOver(err); over {
		g.EndReason = reason
		g.Turn++
		g.logger().Info("game over",
			zap.Int("turn", g.Turn),
			zap.String("reason", reason),
		)
		return err
	}
	if err != nil {
		g.Board = backup
		return err
	}

	g.Actions = mergeByPriority(g.Actions[1:], extra)
	g.Turn++
	g.logger().Debug("action applied",
		zap.Int("turn", g.Turn),
		zap.String("player", a.Name),
		zap.String("type", string(a.Type)),
		zap.Stringer("action", a),
		zap.Int("queued", len(g.Actions)),
	)
	return nil
}

// Project returns a copy of the game with a applied; g is left untouched.
func (g *Game) Project(a actions.Action) (*Game, error) {
	c := g.Clone()
	c.log = zap.NewNop()
	err := c.TakeAction(a)
	return c, err
}

// Clone returns a deep copy of the game, including its RNG state.
func (g *Game) Clone() *Game {
	c := *g
	c.PlayOrder = append([]string(nil), g.PlayOrder...)
	c.Actions = cloneActions(g.Actions)
	c.Board = g.Board.Clone()
	if g.rng != nil {
		c.rng = RestoreRNG(g.rng.Seed(), g.rng.Position())
	}
	return &c
}

func cloneActions(list []actions.Action) []actions.Action {
	if list == nil {
		return nil
	}
	out := make([]actions.Action, len(list))
	for i, a := range list {
		if a.Distribution != nil {
			a.Distribution = append([]actions.Assignment(nil), a.Distribution...)
		}
		out[i] = a
	}
	return out
}

// mergeByPriority interleaves the follow-up actions into the queue. Walking
// the queue, the next extra is placed ahead of a queued action when its
// priority is higher; ties keep the queued action first. Extras keep their
// relative order and the rest go at the end.
func mergeByPriority(queue, extra []actions.Action) []actions.Action {
	merged := make([]actions.Action, 0, len(queue)+len(extra))
	i, j := 0, 0
	for i < len(queue) {
		if j < len(extra) && extra[j].Priority() > queue[i].Priority() {
			merged = append(merged, extra[j])
			j++
			continue
		}
		merged = append(merged, queue[i])
		i++
	}
	return append(merged, extra[j:]...)
}

// Score is the final tally of one player.
type Score struct {
	Name    string     `json:"name"`
	Details town.Tally `json:"details"`
	Total   int        `json:"total"`
}

// Scores returns the tally of every player in play order.
func (g *Game) Scores() []Score {
	out := make([]Score, 0, len(g.PlayOrder))
	for _, name := range g.PlayOrder {
		details := g.Board.Towns[name].TallyDetails()
		out = append(out, Score{Name: name, Details: details, Total: details.Total()})
	}
	return out
}
