package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/benhickson/goroom-poker-njs/game"
)

// Postgres stores game records in a shared database, one row per room.
type Postgres struct {
	db *sql.DB
}

func OpenPostgres(dsn string) (*Postgres, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("store: empty postgres dsn")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS games (
    id            TEXT PRIMARY KEY,
    room_id       TEXT NOT NULL UNIQUE,
    version       BIGINT NOT NULL,
    doc           JSONB NOT NULL,
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Postgres{db: db}, nil
}

func (s *Postgres) FetchByRoom(ctx context.Context, roomID string) (*game.Game, uint64, error) {
	var (
		doc     []byte
		version uint64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT doc, version FROM games WHERE room_id = $1`, roomID,
	).Scan(&doc, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, ErrGameNotFound
	}
	if err != nil {
		return nil, 0, err
	}
	var g game.Game
	if err := json.Unmarshal(doc, &g); err != nil {
		return nil, 0, err
	}
	return &g, version, nil
}

func (s *Postgres) Create(ctx context.Context, g *game.Game) (uint64, error) {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	doc, err := json.Marshal(g)
	if err != nil {
		return 0, err
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO games (id, room_id, version, doc, updated_at)
VALUES ($1, $2, 1, $3, now())`,
		g.ID, g.RoomID, doc)
	if err != nil {
		if isPostgresUniqueViolation(err) {
			return 0, ErrGameAlreadyExists
		}
		return 0, err
	}
	return 1, nil
}

func (s *Postgres) Save(ctx context.Context, g *game.Game, expected uint64) (uint64, error) {
	doc, err := json.Marshal(g)
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, `
UPDATE games SET version = version + 1, doc = $1, updated_at = now()
WHERE room_id = $2 AND version = $3`,
		doc, g.RoomID, expected)
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
			`SELECT 1 FROM games WHERE room_id = $1`, g.RoomID,
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

func (s *Postgres) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func isPostgresUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
