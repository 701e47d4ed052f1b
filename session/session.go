// Package session plays whole games: it asks each seat's policy for the
// expected action until the game ends, then reports and records the result.
package session

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nathoo/plantation/engine"
	"github.com/nathoo/plantation/engine/rules"
	"github.com/nathoo/plantation/policy"
)

// DefaultMaxTurns stops a game that does not end on its own.
const DefaultMaxTurns = 100000

// Result is the outcome of one finished game.
type Result struct {
	ID         uuid.UUID      `json:"id"`
	Seed       int64          `json:"seed"`
	PlayOrder  []string       `json:"play_order"`
	Reason     string         `json:"reason"`
	Turns      int            `json:"turns"`
	Scores     []engine.Score `json:"scores"`
	Moves      []string       `json:"moves"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
}

// Winner returns the name with the highest total; ties go to the earlier
// seat in play order.
func (r Result) Winner() string {
	best, name := -1, ""
	for _, s := range r.Scores {
		if s.Total > best {
			best, name = s.Total, s.Name
		}
	}
	return name
}

// Finish copies the outcome of the finished game g into r.
func (r *Result) Finish(g *engine.Game) {
	r.Reason = g.EndReason
	r.Turns = g.Turn
	r.Scores = g.Scores()
	r.FinishedAt = time.Now().UTC()
}

// Recorder archives finished games.
type Recorder interface {
	RecordGame(ctx context.Context, r Result) error
}

// Runner plays games between seats. Names gives the seats in setup order and
// Seats maps each of them to its policy.
type Runner struct {
	Names    []string
	Seats    map[string]policy.Policy
	Seed     int64
	Shuffle  bool
	MaxTurns int
	Log      *zap.Logger
	Recorder Recorder
}

func (r *Runner) logger() *zap.Logger {
	if r.Log == nil {
		return zap.NewNop()
	}
	return r.Log
}

// Run plays one game seeded with r.Seed.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	return r.run(ctx, r.Seed)
}

func (r *Runner) run(ctx context.Context, seed int64) (Result, error) {
	for _, name := range r.Names {
		p, ok := r.Seats[name]
		if !ok {
			return Result{}, fmt.Errorf("no policy for seat %s", name)
		}
		if policy.IsHuman(p) {
			return Result{}, fmt.Errorf("seat %s: %w", name, policy.ErrHumanSeat)
		}
	}

	g, err := engine.Start(r.Names, engine.StartOptions{
		Shuffle: r.Shuffle,
		Seed:    seed,
		Logger:  r.logger(),
	})
	if err != nil {
		return Result{}, err
	}

	res := Result{
		ID:        uuid.New(),
		Seed:      seed,
		PlayOrder: g.PlayOrder,
		StartedAt: time.Now().UTC(),
	}
	log := r.logger().With(zap.String("game_id", res.ID.String()))
	log.Info("session started",
		zap.Strings("players", g.PlayOrder),
		zap.Int64("seed", seed),
	)

	if err := r.Play(ctx, g, &res); err != nil {
		return res, err
	}

	res.Finish(g)
	log.Info("game over",
		zap.String("reason", res.Reason),
		zap.Int("turns", res.Turns),
		zap.String("winner", res.Winner()),
	)

	if r.Recorder != nil {
		if err := r.Recorder.RecordGame(ctx, res); err != nil {
			return res, fmt.Errorf("record game %s: %w", res.ID, err)
		}
		log.Info("game recorded")
	}
	return res, nil
}

// Play drives g until it is over, appending each applied action label to
// res.Moves when res is not nil.
func (r *Runner) Play(ctx context.Context, g *engine.Game, res *Result) error {
	limit := r.MaxTurns
	if limit <= 0 {
		limit = DefaultMaxTurns
	}
	for !g.Over() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if g.Turn >= limit {
			return fmt.Errorf("game not over after %d turns", limit)
		}

		expected := g.Expected()
		p, ok := r.Seats[expected.Name]
		if !ok {
			return fmt.Errorf("no policy for seat %s", expected.Name)
		}
		a, err := p.Decide(g)
		if err != nil {
			return fmt.Errorf("seat %s on %s: %w", expected.Name, expected, err)
		}

		err = g.TakeAction(a)
		if _, over := rules.IsGameOver(err); err != nil && !over {
			return fmt.Errorf("seat %s played %s: %w", expected.Name, a, err)
		}
		if res != nil {
			res.Moves = append(res.Moves, a.String())
		}
	}
	return nil
}

// Summary aggregates a batch of games.
type Summary struct {
	Games   int                `json:"games"`
	Wins    map[string]int     `json:"wins"`
	Mean    map[string]float64 `json:"mean"`
	Reasons map[string]int     `json:"reasons"`
	Results []Result           `json:"-"`
}

// Ranking returns the seat names by mean total, best first.
func (s Summary) Ranking() []string {
	names := make([]string, 0, len(s.Mean))
	for name := range s.Mean {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if s.Mean[names[i]] != s.Mean[names[j]] {
			return s.Mean[names[i]] > s.Mean[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

// Simulate plays n games seeded r.Seed, r.Seed+1, ... and averages the
// totals per seat. A cancelled context stops the batch and returns what
// was played so far along with the context error.
func (r *Runner) Simulate(ctx context.Context, n int) (Summary, error) {
	sum := Summary{
		Wins:    make(map[string]int, len(r.Names)),
		Mean:    make(map[string]float64, len(r.Names)),
		Reasons: make(map[string]int),
	}
	totals := make(map[string]int, len(r.Names))
	var runErr error
	for i := 0; i < n; i++ {
		res, err := r.run(ctx, r.Seed+int64(i))
		if err != nil {
			runErr = err
			break
		}
		sum.Games++
		sum.Results = append(sum.Results, res)
		sum.Wins[res.Winner()]++
		sum.Reasons[res.Reason]++
		for _, s := range res.Scores {
			totals[s.Name] += s.Total
		}
	}
	for _, name := range r.Names {
		if sum.Games > 0 {
			sum.Mean[name] = float64(totals[name]) / float64(sum.Games)
		}
	}
	return sum, runErr
}
