package summary

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lox/pokeradvisor/internal/strategy"
)

//go:embed schema.sql
var schema embed.FS

// PostgresSink stores entries in the advisor_runs table.
type PostgresSink struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects a pool to dsn and verifies the connection.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresSink, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresSink{pool: pool}, nil
}

// Close releases the pool.
func (s *PostgresSink) Close() {
	s.pool.Close()
}

// Migrate applies the embedded schema. It is idempotent.
func (s *PostgresSink) Migrate(ctx context.Context) error {
	sqlBytes, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, string(sqlBytes)); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Append inserts the entry. Re-appending the same ID is a no-op.
func (s *PostgresSink) Append(ctx context.Context, e Entry) error {
	flop, err := encodeStrategy(e.FlopStrategy)
	if err != nil {
		return err
	}
	turn, err := encodeStrategy(e.TurnStrategy)
	if err != nil {
		return err
	}
	river, err := encodeStrategy(e.RiverStrategy)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO advisor_runs(id, created_at, hero, flop, turn, river,
		                         flop_strategy, turn_strategy, river_strategy)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING
	`, e.ID.String(), e.Time, e.Hero, e.Flop, e.Turn, e.River, flop, turn, river)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *PostgresSink) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id::text, created_at, hero, flop, turn, river,
		       flop_strategy, turn_strategy, river_strategy
		  FROM advisor_runs
		 ORDER BY created_at DESC
		 LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}

	entries, err := pgx.CollectRows(rows, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("scan runs: %w", err)
	}
	return entries, nil
}

func scanEntry(row pgx.CollectableRow) (Entry, error) {
	var (
		e                 Entry
		id                string
		flop, turn, river []byte
	)
	if err := row.Scan(&id, &e.Time, &e.Hero, &e.Flop, &e.Turn, &e.River, &flop, &turn, &river); err != nil {
		return Entry{}, err
	}

	var err error
	if e.ID, err = uuid.Parse(id); err != nil {
		return Entry{}, err
	}
	if e.FlopStrategy, err = decodeStrategy(flop); err != nil {
		return Entry{}, err
	}
	if e.TurnStrategy, err = decodeStrategy(turn); err != nil {
		return Entry{}, err
	}
	if e.RiverStrategy, err = decodeStrategy(river); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// encodeStrategy returns nil for a missing strategy so the column is NULL.
func encodeStrategy(h *strategy.HeroStrategy) ([]byte, error) {
	if h == nil {
		return nil, nil
	}
	data, err := json.Marshal(h)
	if err != nil {
		return nil, fmt.Errorf("encode strategy: %w", err)
	}
	return data, nil
}

func decodeStrategy(data []byte) (*strategy.HeroStrategy, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var h strategy.HeroStrategy
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("decode strategy: %w", err)
	}
	return &h, nil
}
