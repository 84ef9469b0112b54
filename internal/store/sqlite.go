package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/benhickson/goroom-poker-njs/game"
)

// SQLite stores game records in a local database file, one row per
// room.
type SQLite struct {
	db *sql.DB
}

func OpenSQLite(dbPath string) (*SQLite, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, fmt.Errorf("store: empty sqlite database path")
	}
	if dbPath != ":memory:" {
		parent := filepath.Dir(dbPath)
		if parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, pragma := range []string{
		`PRAGMA busy_timeout = 5000;`,
		`PRAGMA journal_mode = WAL;`,
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS games (
    id            TEXT PRIMARY KEY,
    room_id       TEXT NOT NULL UNIQUE,
    version       INTEGER NOT NULL,
    doc           TEXT NOT NULL,
    updated_at_ms INTEGER NOT NULL
);`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) FetchByRoom(ctx context.Context, roomID string) (*game.Game, uint64, error) {
	var (
		doc     string
		version uint64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT doc, version FROM games WHERE room_id = ?`, roomID,
	).Scan(&doc, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, ErrGameNotFound
	}
	if err != nil {
		return nil, 0, err
	}
	var g game.Game
	if err := json.Unmarshal([]byte(doc), &g); err != nil {
		return nil, 0, err
	}
	return &g, version, nil
}

func (s *SQLite) Create(ctx context.Context, g *game.Game) (uint64, error) {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	doc, err := json.Marshal(g)
	if err != nil {
		return 0, err
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO games (id, room_id, version, doc, updated_at_ms)
VALUES (?, ?, 1, ?, ?)`,
		g.ID, g.RoomID, string(doc), time.Now().UnixMilli())
	if err != nil {
		if isSQLiteUniqueViolation(err) {
			return 0, ErrGameAlreadyExists
		}
		return 0, err
	}
	return 1, nil
}

func (s *SQLite) Save(ctx context.Context, g *game.Game, expected uint64) (uint64, error) {
	doc, err := json.Marshal(g)
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, `
UPDATE games SET version = version + 1, doc = ?, updated_at_ms = ?
WHERE room_id = ? AND version = ?`,
		string(doc), time.Now().UnixMilli(), g.RoomID, expected)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		var exists int
		err := s.db.QueryRowContext(ctx,
			`SELECT 1 FROM games WHERE room_id = ?`, g.RoomID,
		).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrGameNotFound
		}
		if err != nil {
			return 0, err
		}
		return 0, ErrVersionConflict
	}
	return expected + 1, nil
}

func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func isSQLiteUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
