package save

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/nathoo/plantation/engine"
	"github.com/nathoo/plantation/engine/rules"
)

// playedGame starts a seeded game and plays n turns picking options with a
// separate RNG.
func playedGame(t *testing.T, n int) *engine.Game {
	t.Helper()
	g, err := engine.Start([]string{"Aa", "Ba", "Ca", "Da"}, engine.StartOptions{Shuffle: true, Seed: 42})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	picker := engine.NewRNG(9)
	for i := 0; i < n && !g.Over(); i++ {
		options, err := g.Possibilities(20)
		if err != nil {
			t.Fatalf("Possibilities: %v", err)
		}
		err = g.TakeAction(options[picker.Intn(len(options))])
		if _, over := rules.IsGameOver(err); over {
			break
		}
		if err != nil {
			t.Fatalf("TakeAction: %v", err)
		}
	}
	return g
}

func TestRoundTrip(t *testing.T) {
	g := playedGame(t, 60)

	data, err := Dumps(g)
	if err != nil {
		t.Fatalf("Dumps failed: %v", err)
	}
	g2, err := Loads(data)
	if err != nil {
		t.Fatalf("Loads failed: %v", err)
	}

	again, err := Dumps(g2)
	if err != nil {
		t.Fatal(err)
	}
	if again != data {
		t.Error("second dump differs from the first")
	}
	if g2.Turn != g.Turn {
		t.Errorf("expected turn %d, got %d", g.Turn, g2.Turn)
	}
	if !reflect.DeepEqual(g2.PlayOrder, g.PlayOrder) {
		t.Errorf("expected play order %v, got %v", g.PlayOrder, g2.PlayOrder)
	}
	if g2.RNG().Seed() != 42 || g2.RNG().Position() != g.RNG().Position() {
		t.Errorf("RNG not restored: seed %d position %d", g2.RNG().Seed(), g2.RNG().Position())
	}
	if g2.Expected().String() != g.Expected().String() {
		t.Errorf("expected %s next, got %s", g.Expected(), g2.Expected())
	}
}

func TestRoundTrip_SameFuture(t *testing.T) {
	g := playedGame(t, 25)
	data, err := Dumps(g)
	if err != nil {
		t.Fatal(err)
	}
	g2, err := Loads(data)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 20 && !g.Over(); i++ {
		o1, err1 := g.Possibilities(20)
		o2, err2 := g2.Possibilities(20)
		if err1 != nil || err2 != nil {
			t.Fatalf("Possibilities: %v / %v", err1, err2)
		}
		if !reflect.DeepEqual(o1, o2) {
			t.Fatalf("turn %d: options diverged", g.Turn)
		}
		err1 = g.TakeAction(o1[0])
		err2 = g2.TakeAction(o2[0])
		if (err1 == nil) != (err2 == nil) {
			t.Fatalf("turn %d: %v / %v", g.Turn, err1, err2)
		}
	}
}

func TestLoad_NormalizesEmptyCollections(t *testing.T) {
	g := playedGame(t, 0)
	g.Board.Market = nil
	g.Board.ExposedTiles = nil

	data, err := Save(g)
	if err != nil {
		t.Fatal(err)
	}
	sd, err := Load(data)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if sd.Board.Market == nil || sd.Board.ExposedTiles == nil || sd.Board.UnsettledTiles == nil {
		t.Error("expected non-nil slices after load")
	}
	if sd.Actions == nil {
		t.Error("expected non-nil actions")
	}
}

func TestLoad_Invalid(t *testing.T) {
	g := playedGame(t, 3)
	good, err := Dumps(g)
	if err != nil {
		t.Fatal(err)
	}

	tests := map[string]string{
		"not json":        "{",
		"missing board":   `{"version":"1","play_order":["Aa","Ba","Ca"],"actions":[],"turn":0,"rng_seed":0,"rng_position":0}`,
		"two players":     strings.Replace(good, `"play_order": [`, `"play_order": ["Aa","Ba"], "x": [`, 1),
		"unknown action":  strings.Replace(good, `"type": "`, `"type": "dance`, 1),
		"wrong version":   strings.Replace(good, `"version": "1"`, `"version": "0"`, 1),
		"negative turn":   strings.Replace(good, `"turn": 3`, `"turn": -1`, 1),
		"bad distribution": `{"version":"1","play_order":["Aa","Ba","Ca"],"turn":0,"rng_seed":0,"rng_position":0,
			"actions":[{"type":"mayor","name":"Aa","people_distribution":[["home"]]}],"board":{}}`,
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Load([]byte(data)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestWriteReadFile(t *testing.T) {
	g := playedGame(t, 40)
	want, err := Dumps(g)
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"game.json", "game.json.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "saves", name)
			if err := WriteFile(path, g); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			loaded, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			got, err := Dumps(loaded)
			if err != nil {
				t.Fatal(err)
			}
			if got != want {
				t.Error("file round trip changed the game")
			}
		})
	}
}

func TestWriteFile_Compresses(t *testing.T) {
	g := playedGame(t, 40)
	dir := t.TempDir()
	plain := filepath.Join(dir, "a.json")
	packed := filepath.Join(dir, "a.json.zst")
	if err := WriteFile(plain, g); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(packed, g); err != nil {
		t.Fatal(err)
	}

	p, err := os.Stat(plain)
	if err != nil {
		t.Fatal(err)
	}
	z, err := os.Stat(packed)
	if err != nil {
		t.Fatal(err)
	}
	if z.Size() >= p.Size() {
		t.Errorf("expected compressed file smaller: %d >= %d", z.Size(), p.Size())
	}
}

func TestReadFile_Missing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
