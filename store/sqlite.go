// Package store archives finished games in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/nathoo/plantation/session"
)

// timeLayout keeps a fixed width so stored times sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLite is the results archive. It satisfies session.Recorder.
type SQLite struct {
	db *sql.DB
}

var _ session.Recorder = (*SQLite)(nil)

// OpenSQLite opens or creates the archive at path.
func OpenSQLite(path string) (*SQLite, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			play_order TEXT NOT NULL,
			reason TEXT NOT NULL,
			turns INTEGER NOT NULL,
			winner TEXT NOT NULL,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS scores (
			game_id TEXT NOT NULL REFERENCES games(id) ON DELETE CASCADE,
			seat INTEGER NOT NULL,
			name TEXT NOT NULL,
			shipped INTEGER NOT NULL,
			buildings INTEGER NOT NULL,
			bonus INTEGER NOT NULL,
			total INTEGER NOT NULL,
			PRIMARY KEY (game_id, seat)
		);`,
		`CREATE TABLE IF NOT EXISTS moves (
			game_id TEXT NOT NULL REFERENCES games(id) ON DELETE CASCADE,
			turn INTEGER NOT NULL,
			label TEXT NOT NULL,
			PRIMARY KEY (game_id, turn)
		);`,
		`CREATE INDEX IF NOT EXISTS scores_name ON scores(name);`,
		`CREATE INDEX IF NOT EXISTS games_finished ON games(finished_at);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// RecordGame stores a finished game, its scores and its moves in one
// transaction.
func (s *SQLite) RecordGame(ctx context.Context, r session.Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO games (id, seed, play_order, reason, turns, winner, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID.String(), r.Seed, strings.Join(r.PlayOrder, ","), r.Reason, r.Turns, r.Winner(),
		r.StartedAt.UTC().Format(timeLayout), r.FinishedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert game: %w", err)
	}

	for seat, sc := range r.Scores {
		d := sc.Details
		bonus := d.CityHall + d.CustomHouse + d.Fortress + d.GuildHall + d.Residence
		_, err = tx.ExecContext(ctx,
			`INSERT INTO scores (game_id, seat, name, shipped, buildings, bonus, total)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.ID.String(), seat, sc.Name, d.Shipped, d.Buildings, bonus, sc.Total,
		)
		if err != nil {
			return fmt.Errorf("insert score: %w", err)
		}
	}

	for turn, label := range r.Moves {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO moves (game_id, turn, label) VALUES (?, ?, ?)`,
			r.ID.String(), turn+1, label,
		); err != nil {
			return fmt.Errorf("insert move: %w", err)
		}
	}
	return tx.Commit()
}

// GameRow is one archived game.
type GameRow struct {
	ID         uuid.UUID
	Seed       int64
	PlayOrder  []string
	Reason     string
	Turns      int
	Winner     string
	FinishedAt time.Time
}

// RecentGames returns the last limit games, newest first.
func (s *SQLite) RecentGames(ctx context.Context, limit int) ([]GameRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, seed, play_order, reason, turns, winner, finished_at
		 FROM games ORDER BY finished_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GameRow
	for rows.Next() {
		var (
			row            GameRow
			id, order, fin string
		)
		if err := rows.Scan(&id, &row.Seed, &order, &row.Reason, &row.Turns, &row.Winner, &fin); err != nil {
			return nil, err
		}
		if row.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("game id %q: %w", id, err)
		}
		if row.FinishedAt, err = time.Parse(timeLayout, fin); err != nil {
			return nil, fmt.Errorf("game %s finished_at: %w", id, err)
		}
		row.PlayOrder = strings.Split(order, ",")
		out = append(out, row)
	}
	return out, rows.Err()
}

// Standing is one line of the leaderboard.
type Standing struct {
	Name  string
	Games int
	Wins  int
	Mean  float64
	Best  int
}

// Leaderboard ranks every name by wins, then by mean total.
func (s *SQLite) Leaderboard(ctx context.Context) ([]Standing, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.name,
		       COUNT(*),
		       SUM(CASE WHEN g.winner = s.name THEN 1 ELSE 0 END),
		       AVG(s.total),
		       MAX(s.total)
		FROM scores s JOIN games g ON g.id = s.game_id
		GROUP BY s.name
		ORDER BY 3 DESC, 4 DESC, s.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Standing
	for rows.Next() {
		var st Standing
		if err := rows.Scan(&st.Name, &st.Games, &st.Wins, &st.Mean, &st.Best); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// Moves returns the action labels of a game in turn order.
func (s *SQLite) Moves(ctx context.Context, id uuid.UUID) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT label FROM moves WHERE game_id = ? ORDER BY turn`, id.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, err
		}
		out = append(out, label)
	}
	return out, rows.Err()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
