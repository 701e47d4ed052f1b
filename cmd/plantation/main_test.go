package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/nathoo/plantation/cli"
	"github.com/nathoo/plantation/config"
	"github.com/nathoo/plantation/engine"
	"github.com/nathoo/plantation/policy"
	"github.com/nathoo/plantation/session"
	"github.com/nathoo/plantation/store"
)

func TestParseFlags(t *testing.T) {
	f, err := parseFlags([]string{"--config", "p.yaml", "--seed", "-4", "--games", "3", "--trace"})
	if err != nil {
		t.Fatal(err)
	}
	if f.config != "p.yaml" || f.seed == nil || *f.seed != -4 || f.games != 3 || !f.trace {
		t.Errorf("unexpected flags %+v", f)
	}

	f, err = parseFlags([]string{"--moves", "abc"})
	if err != nil || f.moves != "abc" {
		t.Errorf("expected --moves abc, got %+v, %v", f, err)
	}

	f, err = parseFlags([]string{"--version"})
	if err != nil || f != nil {
		t.Errorf("expected nil flags for --version, got %+v, %v", f, err)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	for _, args := range [][]string{
		{"--seed"},
		{"--seed", "x"},
		{"--games", "0"},
		{"--script"},
		{"--moves"},
		{"game_dir"},
	} {
		if _, err := parseFlags(args); err == nil {
			t.Errorf("%v: expected an error", args)
		}
	}
}

func TestBuildSeats(t *testing.T) {
	cfg := config.Default()
	seats, human, err := buildSeats(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if human || len(seats) != 3 {
		t.Errorf("expected three bot seats, got %d (human %v)", len(seats), human)
	}

	cfg.Players[2].Policy = "human"
	if _, human, _ = buildSeats(cfg); !human {
		t.Error("expected a human seat")
	}

	cfg.Players[1].Policy = "lua:missing.lua"
	if _, _, err := buildSeats(cfg); err == nil {
		t.Error("expected an error for a missing script")
	}
}

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	printResult(&buf, session.Result{
		Reason: "No more points.",
		Turns:  12,
		Scores: []engine.Score{{Name: "Aa", Total: 3}, {Name: "Ba", Total: 9}},
	})
	if !strings.Contains(buf.String(), "Winner: Ba") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

type memRecorder struct {
	results []session.Result
}

func (m *memRecorder) RecordGame(_ context.Context, r session.Result) error {
	m.results = append(m.results, r)
	return nil
}

func TestRecordInteractive(t *testing.T) {
	g, err := engine.Start([]string{"Aa", "Ba", "Ca"}, engine.StartOptions{Seed: 11})
	if err != nil {
		t.Fatal(err)
	}
	seats := map[string]policy.Policy{}
	for _, name := range g.PlayOrder {
		seats[name] = policy.Random{Cap: 20}
	}
	var out bytes.Buffer
	c := cli.New(g, seats)
	c.In = strings.NewReader("")
	c.Out = &out
	c.Run()
	if !c.Game.Over() {
		t.Fatal("expected the bots to finish the game")
	}

	rec := &memRecorder{}
	if err := recordInteractive(context.Background(), rec, c, time.Now().UTC()); err != nil {
		t.Fatalf("recordInteractive: %v", err)
	}
	if len(rec.results) != 1 {
		t.Fatalf("expected one recorded game, got %d", len(rec.results))
	}
	res := rec.results[0]
	if res.Reason != c.Game.EndReason || res.Turns != c.Game.Turn || res.Seed != 11 {
		t.Errorf("unexpected result %+v", res)
	}
	if len(res.Moves) != res.Turns || len(res.Scores) != 3 {
		t.Errorf("expected %d moves and 3 scores, got %d and %d", res.Turns, len(res.Moves), len(res.Scores))
	}
	if !strings.Contains(out.String(), "Game recorded as "+res.ID.String()) {
		t.Error("expected the record confirmation")
	}
}

func TestShowMoves(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.DBPath = filepath.Join(t.TempDir(), "results.db")

	db, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		t.Fatal(err)
	}
	id := uuid.New()
	err = db.RecordGame(ctx, session.Result{
		ID:        id,
		PlayOrder: []string{"Aa", "Ba", "Ca"},
		Reason:    "No more points.",
		Turns:     2,
		Scores:    []engine.Score{{Name: "Aa"}, {Name: "Ba"}, {Name: "Ca"}},
		Moves:     []string{"Aa.governor()", "Aa.take_role(settler)"},
	})
	db.Close()
	if err != nil {
		t.Fatal(err)
	}

	if err := showMoves(ctx, cfg, id.String()); err != nil {
		t.Errorf("showMoves: %v", err)
	}
	if err := showMoves(ctx, cfg, uuid.New().String()); err == nil {
		t.Error("expected an error for an unknown game")
	}
	if err := showMoves(ctx, cfg, "not-a-uuid"); err == nil {
		t.Error("expected an error for a bad id")
	}
	cfg.DBPath = ""
	if err := showMoves(ctx, cfg, id.String()); err == nil {
		t.Error("expected an error without a results db")
	}
}

func TestPrintRecentAndMoves(t *testing.T) {
	var buf bytes.Buffer
	id := uuid.New()
	printRecent(&buf, []store.GameRow{{ID: id, Winner: "Ba", Turns: 40, Reason: "No more people."}})
	printMoves(&buf, []string{"Aa.governor()"})

	out := buf.String()
	for _, want := range []string{id.String(), "winner Ba", "No more people.", "    1  Aa.governor()"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}
