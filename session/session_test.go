package session

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nathoo/plantation/engine"
	"github.com/nathoo/plantation/policy"
)

type memRecorder struct {
	results []Result
	err     error
}

func (m *memRecorder) RecordGame(_ context.Context, r Result) error {
	if m.err != nil {
		return m.err
	}
	m.results = append(m.results, r)
	return nil
}

func newRunner(seed int64) *Runner {
	names := []string{"Aa", "Ba", "Ca"}
	seats := make(map[string]policy.Policy, len(names))
	for _, name := range names {
		seats[name] = policy.Random{Cap: 20}
	}
	return &Runner{Names: names, Seats: seats, Seed: seed, Shuffle: true}
}

func TestRun_PlaysToTheEnd(t *testing.T) {
	rec := &memRecorder{}
	r := newRunner(3)
	r.Recorder = rec

	res, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Reason == "" || res.Turns == 0 {
		t.Errorf("expected a finished game, got %+v", res)
	}
	if len(res.Scores) != 3 || len(res.Moves) != res.Turns {
		t.Errorf("expected 3 scores and one move per turn, got %d scores, %d moves, %d turns",
			len(res.Scores), len(res.Moves), res.Turns)
	}
	if !strings.Contains(res.Moves[len(res.Moves)-1], "terminate") {
		t.Errorf("expected the last move to end the game, got %s", res.Moves[len(res.Moves)-1])
	}
	if len(rec.results) != 1 || rec.results[0].ID != res.ID {
		t.Error("expected the result to be recorded")
	}
	if res.Winner() == "" {
		t.Error("expected a winner")
	}
}

func TestRun_Deterministic(t *testing.T) {
	a, err := newRunner(11).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	b, err := newRunner(11).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if a.ID == b.ID {
		t.Error("expected distinct game ids")
	}
	if strings.Join(a.Moves, ";") != strings.Join(b.Moves, ";") {
		t.Error("same seed produced different games")
	}
}

func TestRun_HumanSeat(t *testing.T) {
	r := newRunner(1)
	r.Seats["Ba"] = policy.Human{}
	if _, err := r.Run(context.Background()); !errors.Is(err, policy.ErrHumanSeat) {
		t.Errorf("expected ErrHumanSeat, got %v", err)
	}
}

func TestRun_MissingSeat(t *testing.T) {
	r := newRunner(1)
	delete(r.Seats, "Ca")
	if _, err := r.Run(context.Background()); err == nil {
		t.Error("expected an error for a seat without policy")
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newRunner(1).Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRun_MaxTurns(t *testing.T) {
	r := newRunner(1)
	r.MaxTurns = 10
	if _, err := r.Run(context.Background()); err == nil || !strings.Contains(err.Error(), "10 turns") {
		t.Errorf("expected a turn limit error, got %v", err)
	}
}

func TestRun_RecorderError(t *testing.T) {
	r := newRunner(1)
	r.Recorder = &memRecorder{err: errors.New("disk full")}
	if _, err := r.Run(context.Background()); err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("expected the recorder error, got %v", err)
	}
}

func TestPlay_ContinuesGame(t *testing.T) {
	r := newRunner(1)
	g, err := engine.Start(r.Names, engine.StartOptions{Seed: 5})
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Play(context.Background(), g, nil); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if !g.Over() {
		t.Error("expected the game to be over")
	}
}

func TestSimulate(t *testing.T) {
	r := newRunner(20)
	sum, err := r.Simulate(context.Background(), 3)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if sum.Games != 3 || len(sum.Results) != 3 {
		t.Fatalf("expected 3 games, got %d", sum.Games)
	}
	wins := 0
	for _, n := range sum.Wins {
		wins += n
	}
	if wins != 3 {
		t.Errorf("expected 3 wins in total, got %d", wins)
	}
	if got := sum.Ranking(); len(got) != 3 {
		t.Errorf("expected 3 ranked seats, got %v", got)
	}
	if sum.Results[1].Seed != 21 {
		t.Errorf("expected consecutive seeds, got %d", sum.Results[1].Seed)
	}
}

func TestSummary_Ranking(t *testing.T) {
	s := Summary{Mean: map[string]float64{"Aa": 10, "Ba": 30, "Ca": 10}}
	got := strings.Join(s.Ranking(), ",")
	if got != "Ba,Aa,Ca" {
		t.Errorf("expected Ba,Aa,Ca, got %s", got)
	}
}

func TestResult_WinnerTies(t *testing.T) {
	r := Result{Scores: []engine.Score{{Name: "Ca", Total: 5}, {Name: "Aa", Total: 5}}}
	if r.Winner() != "Ca" {
		t.Errorf("expected the earlier seat to win the tie, got %s", r.Winner())
	}
}
