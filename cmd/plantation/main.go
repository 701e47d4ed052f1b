// Plantation plays the colonization board game between scripted, random and
// human seats.
// Usage: plantation [--version] [--config <file>] [--seed <n>] [--games <n>] [--script <file>] [--moves <game id>] [--trace]
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nathoo/plantation/cli"
	"github.com/nathoo/plantation/config"
	"github.com/nathoo/plantation/engine"
	"github.com/nathoo/plantation/logging"
	"github.com/nathoo/plantation/policy"
	"github.com/nathoo/plantation/session"
	"github.com/nathoo/plantation/store"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: plantation [--version] [--config <file>] [--seed <n>] [--games <n>] [--script <file>] [--moves <game id>] [--trace]\n"

type flags struct {
	config string
	script string
	moves  string
	trace  bool
	seed   *int64
	games  int
}

func main() {
	f, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n%s", err, usage)
		os.Exit(1)
	}
	if f == nil {
		fmt.Printf("plantation %s (commit %s, built %s)\n", version, commit, date)
		return
	}
	if err := run(f); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags returns nil flags for --version.
func parseFlags(args []string) (*flags, error) {
	f := &flags{}
	value := func(i *int, name string) (string, error) {
		if *i+1 >= len(args) {
			return "", fmt.Errorf("%s requires a value", name)
		}
		*i++
		return args[*i], nil
	}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			return nil, nil
		case "--trace":
			f.trace = true
		case "--config":
			v, err := value(&i, "--config")
			if err != nil {
				return nil, err
			}
			f.config = v
		case "--script":
			v, err := value(&i, "--script")
			if err != nil {
				return nil, err
			}
			f.script = v
		case "--moves":
			v, err := value(&i, "--moves")
			if err != nil {
				return nil, err
			}
			f.moves = v
		case "--seed":
			v, err := value(&i, "--seed")
			if err != nil {
				return nil, err
			}
			seed, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("--seed: %w", err)
			}
			f.seed = &seed
		case "--games":
			v, err := value(&i, "--games")
			if err != nil {
				return nil, err
			}
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("--games needs a positive number, got %q", v)
			}
			f.games = n
		default:
			return nil, fmt.Errorf("unknown argument %q", args[i])
		}
	}
	return f, nil
}

func run(f *flags) error {
	cfg, err := config.Load(f.config)
	if err != nil {
		return err
	}
	if f.seed != nil {
		cfg.Seed = *f.seed
	}
	if f.games > 0 {
		cfg.Games = f.games
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if f.moves != "" {
		return showMoves(ctx, cfg, f.moves)
	}

	seats, human, err := buildSeats(cfg)
	if err != nil {
		return err
	}
	defer closeSeats(seats)

	if human || f.script != "" {
		return playInteractive(ctx, cfg, seats, f, log)
	}
	return playSession(ctx, cfg, seats, log)
}

func buildSeats(cfg config.Config) (map[string]policy.Policy, bool, error) {
	seats := make(map[string]policy.Policy, len(cfg.Players))
	human := false
	for _, p := range cfg.Players {
		pol, err := policy.FromSpec(p.Policy, cfg.Cap)
		if err != nil {
			closeSeats(seats)
			return nil, false, fmt.Errorf("seat %s: %w", p.Name, err)
		}
		seats[p.Name] = pol
		human = human || policy.IsHuman(pol)
	}
	return seats, human, nil
}

func closeSeats(seats map[string]policy.Policy) {
	for _, p := range seats {
		if l, ok := p.(*policy.Lua); ok {
			l.Close()
		}
	}
}

func playInteractive(ctx context.Context, cfg config.Config, seats map[string]policy.Policy, f *flags, log *zap.Logger) error {
	g, err := engine.Start(cfg.Names(), engine.StartOptions{
		Shuffle: cfg.Shuffle,
		Seed:    cfg.Seed,
		Logger:  log,
	})
	if err != nil {
		return err
	}

	c := cli.New(g, seats)
	c.SaveDir = cfg.SaveDir
	c.Cap = cfg.Cap
	c.Trace = f.trace

	// Script mode: read picks from the file and echo them.
	if f.script != "" {
		file, err := os.Open(f.script)
		if err != nil {
			return fmt.Errorf("opening script: %w", err)
		}
		defer file.Close()
		c.In = file
		c.EchoInput = true
	}
	started := time.Now().UTC()
	c.Run()

	if cfg.DBPath == "" || !c.Game.Over() {
		return nil
	}
	db, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open results db: %w", err)
	}
	defer db.Close()
	return recordInteractive(ctx, db, c, started)
}

// recordInteractive archives the finished game played through c.
func recordInteractive(ctx context.Context, rec session.Recorder, c *cli.CLI, started time.Time) error {
	res := session.Result{
		ID:        uuid.New(),
		Seed:      c.Game.RNG().Seed(),
		PlayOrder: c.Game.PlayOrder,
		Moves:     c.Moves,
		StartedAt: started,
	}
	res.Finish(c.Game)
	if err := rec.RecordGame(ctx, res); err != nil {
		return fmt.Errorf("record game %s: %w", res.ID, err)
	}
	fmt.Fprintf(c.Out, "Game recorded as %s.\n", res.ID)
	return nil
}

func playSession(ctx context.Context, cfg config.Config, seats map[string]policy.Policy, log *zap.Logger) error {
	r := &session.Runner{
		Names:   cfg.Names(),
		Seats:   seats,
		Seed:    cfg.Seed,
		Shuffle: cfg.Shuffle,
		Log:     log,
	}

	var db *store.SQLite
	if cfg.DBPath != "" {
		var err error
		if db, err = store.OpenSQLite(cfg.DBPath); err != nil {
			return fmt.Errorf("open results db: %w", err)
		}
		defer db.Close()
		r.Recorder = db
	}

	if cfg.Games == 1 {
		res, err := r.Run(ctx)
		if err != nil {
			return err
		}
		printResult(os.Stdout, res)
	} else {
		sum, err := r.Simulate(ctx, cfg.Games)
		printSummary(os.Stdout, sum)
		if err != nil {
			return err
		}
	}

	if db != nil {
		standings, err := db.Leaderboard(ctx)
		if err != nil {
			return err
		}
		printLeaderboard(os.Stdout, standings)

		recent, err := db.RecentGames(ctx, recentGames)
		if err != nil {
			return err
		}
		printRecent(os.Stdout, recent)
	}
	return nil
}

// recentGames is how many archived games a session lists.
const recentGames = 5

// showMoves prints the archived moves of one game.
func showMoves(ctx context.Context, cfg config.Config, arg string) error {
	if cfg.DBPath == "" {
		return fmt.Errorf("--moves needs a results db (db_path)")
	}
	id, err := uuid.Parse(arg)
	if err != nil {
		return fmt.Errorf("--moves: %w", err)
	}
	db, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open results db: %w", err)
	}
	defer db.Close()

	moves, err := db.Moves(ctx, id)
	if err != nil {
		return err
	}
	if len(moves) == 0 {
		return fmt.Errorf("no moves archived for game %s", id)
	}
	printMoves(os.Stdout, moves)
	return nil
}

func printResult(w io.Writer, res session.Result) {
	fmt.Fprintf(w, "Game %s (seed %d): %s after %d turns\n", res.ID, res.Seed, res.Reason, res.Turns)
	for _, s := range res.Scores {
		fmt.Fprintf(w, "  %-10s %4d\n", s.Name, s.Total)
	}
	fmt.Fprintf(w, "Winner: %s\n", res.Winner())
}

func printSummary(w io.Writer, sum session.Summary) {
	fmt.Fprintf(w, "%d games\n", sum.Games)
	for _, name := range sum.Ranking() {
		fmt.Fprintf(w, "  %-10s mean %6.2f  wins %d\n", name, sum.Mean[name], sum.Wins[name])
	}
	for reason, n := range sum.Reasons {
		fmt.Fprintf(w, "  ended %d times: %s\n", n, reason)
	}
}

func printLeaderboard(w io.Writer, standings []store.Standing) {
	fmt.Fprintln(w, "All-time:")
	for _, st := range standings {
		fmt.Fprintf(w, "  %-10s games %d  wins %d  mean %6.2f  best %d\n", st.Name, st.Games, st.Wins, st.Mean, st.Best)
	}
}

func printRecent(w io.Writer, games []store.GameRow) {
	fmt.Fprintln(w, "Recent games:")
	for _, g := range games {
		fmt.Fprintf(w, "  %s  %s  winner %-10s %5d turns  %s\n",
			g.ID, g.FinishedAt.Format(time.DateTime), g.Winner, g.Turns, g.Reason)
	}
}

func printMoves(w io.Writer, moves []string) {
	for i, m := range moves {
		fmt.Fprintf(w, "%5d  %s\n", i+1, m)
	}
}
