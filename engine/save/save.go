// Package save implements JSON serialization and deserialization of game state.
package save

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nathoo/plantation/engine"
	"github.com/nathoo/plantation/engine/actions"
	"github.com/nathoo/plantation/engine/board"
	"github.com/nathoo/plantation/types"
)

// Version is written into every save.
const Version = "1"

//go:embed schema.json
var schemaJSON string

var schema = jsonschema.MustCompileString("schema.json", schemaJSON)

// SaveData is the JSON-serializable save format.
type SaveData struct {
	Version     string           `json:"version"`
	PlayOrder   []string         `json:"play_order"`
	Actions     []actions.Action `json:"actions"`
	Board       *board.Board     `json:"board"`
	Turn        int              `json:"turn"`
	EndReason   string           `json:"end_reason,omitempty"`
	RNGSeed     int64            `json:"rng_seed"`
	RNGPosition int64            `json:"rng_position"`
}

// Save serializes game state to JSON bytes.
func Save(g *engine.Game) ([]byte, error) {
	rng := g.RNG()
	data := SaveData{
		Version:     Version,
		PlayOrder:   g.PlayOrder,
		Actions:     g.Actions,
		Board:       g.Board,
		Turn:        g.Turn,
		EndReason:   g.EndReason,
		RNGSeed:     rng.Seed(),
		RNGPosition: rng.Position(),
	}
	if data.Actions == nil {
		data.Actions = []actions.Action{}
	}
	return json.MarshalIndent(data, "", "  ")
}

// Load validates JSON bytes against the save schema and deserializes them.
func Load(data []byte) (*SaveData, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse save: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("invalid save: %w", err)
	}

	var sd SaveData
	if err := json.Unmarshal(data, &sd); err != nil {
		return nil, fmt.Errorf("decode save: %w", err)
	}
	if sd.Version != Version {
		return nil, fmt.Errorf("unsupported save version %q", sd.Version)
	}
	normalize(&sd)
	return &sd, nil
}

// normalize makes sure maps and slices are never nil after load.
func normalize(sd *SaveData) {
	if sd.Actions == nil {
		sd.Actions = []actions.Action{}
	}
	b := sd.Board
	if b.Roles == nil {
		b.Roles = map[types.Role]types.RoleData{}
	}
	if b.GoodsFleet == nil {
		b.GoodsFleet = map[int]types.ShipData{}
	}
	if b.Unbuilt == nil {
		b.Unbuilt = map[types.Building]int{}
	}
	if b.Market == nil {
		b.Market = []types.Good{}
	}
	if b.ExposedTiles == nil {
		b.ExposedTiles = []types.Tile{}
	}
	if b.UnsettledTiles == nil {
		b.UnsettledTiles = []types.Tile{}
	}
	for _, t := range b.Towns {
		if t.Tiles == nil {
			t.Tiles = map[types.Tile]types.WorkplaceData{}
		}
		if t.Buildings == nil {
			t.Buildings = map[types.Building]types.WorkplaceData{}
		}
	}
}

// Restore rebuilds a game from loaded save data, RNG position included.
func Restore(sd *SaveData) *engine.Game {
	g := &engine.Game{
		PlayOrder: sd.PlayOrder,
		Actions:   sd.Actions,
		Board:     sd.Board,
		Turn:      sd.Turn,
		EndReason: sd.EndReason,
	}
	g.RestoreRNG(sd.RNGSeed, sd.RNGPosition)
	return g
}

// Dumps returns the save of g as a string.
func Dumps(g *engine.Game) (string, error) {
	data, err := Save(g)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Loads restores a game from a string produced by Dumps.
func Loads(s string) (*engine.Game, error) {
	sd, err := Load([]byte(s))
	if err != nil {
		return nil, err
	}
	return Restore(sd), nil
}

// WriteFile saves g to path. Paths ending in .zst are zstd-compressed.
func WriteFile(path string, g *engine.Game) error {
	data, err := Save(g)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if !compressed(path) {
		_, err = f.Write(data)
		return err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	if _, err := enc.Write(data); err != nil {
		enc.Close()
		return fmt.Errorf("zstd write: %w", err)
	}
	return enc.Close()
}

// ReadFile loads a game written by WriteFile.
func ReadFile(path string) (*engine.Game, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if compressed(path) {
		dec, err := zstd.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		if raw, err = io.ReadAll(dec); err != nil {
			return nil, fmt.Errorf("zstd read: %w", err)
		}
	}
	sd, err := Load(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return Restore(sd), nil
}

func compressed(path string) bool {
	return strings.HasSuffix(path, ".zst")
}
