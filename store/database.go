package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"cricket-scout/models"
)

// ErrNotFound is returned when a requested batter does not exist.
var ErrNotFound = errors.New("batter not found")

// DB is the subset of pgxpool.Pool the store needs.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store reads scouting data from Postgres.
type Store struct {
	db DB
}

func New(db DB) *Store {
	return &Store{db: db}
}

// LoadPopulation reads every batter row and resolves the metrics JSONB into
// typed records.
func (s *Store) LoadPopulation(ctx context.Context) (*models.StatPopulation, error) {
	query := `
		SELECT batter_id, name, team, team_runs_rank, batting_hand, metrics
		FROM batters
		ORDER BY batter_id`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query batters: %w", err)
	}
	defer rows.Close()

	var records []models.BatterRecord
	for rows.Next() {
		var (
			id      int64
			name    string
			team    string
			rank    *int
			hand    string
			metrics map[string]float64
		)
		if err := rows.Scan(&id, &name, &team, &rank, &hand, &metrics); err != nil {
			return nil, fmt.Errorf("failed to scan batter row: %w", err)
		}
		records = append(records, models.NewBatterRecord(id, name, team, rank, models.ParseHand(hand), metrics))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batter rows: %w", err)
	}

	return models.NewStatPopulation(records), nil
}

// ZoneCounts reads the boundary counts per wagon zone for one batter.
func (s *Store) ZoneCounts(ctx context.Context, batterID int64) (models.ZoneCounts, error) {
	query := `
		SELECT b.name, z.counts
		FROM batters b
		JOIN boundary_zones z ON z.batter_id = b.batter_id
		WHERE b.batter_id = $1`

	var (
		name   string
		counts map[string]float64
	)
	err := s.db.QueryRow(ctx, query, batterID).Scan(&name, &counts)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ZoneCounts{}, ErrNotFound
	}
	if err != nil {
		return models.ZoneCounts{}, fmt.Errorf("failed to query zone counts: %w", err)
	}

	return models.ResolveZoneCounts(batterID, name, counts), nil
}

// BowlerTypeStats reads per bowler type aggregates for one batter, most
// faced first.
func (s *Store) BowlerTypeStats(ctx context.Context, batterID int64) ([]models.BowlerTypeStat, error) {
	query := `
		SELECT bowler_type, balls_faced, runs, average, dot_pct, boundary_pct
		FROM bowler_types
		WHERE batter_id = $1
		ORDER BY balls_faced DESC, bowler_type`

	rows, err := s.db.Query(ctx, query, batterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bowler types: %w", err)
	}
	defer rows.Close()

	var stats []models.BowlerTypeStat
	for rows.Next() {
		var st models.BowlerTypeStat
		if err := rows.Scan(&st.BowlerType, &st.BallsFaced, &st.Runs, &st.Average, &st.DotPct, &st.BoundaryPct); err != nil {
			return nil, fmt.Errorf("failed to scan bowler type row: %w", err)
		}
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bowler type rows: %w", err)
	}

	return stats, nil
}

// BatterExists reports whether a batter row exists.
func (s *Store) BatterExists(ctx context.Context, batterID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM batters WHERE batter_id = $1)`, batterID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check batter: %w", err)
	}
	return exists, nil
}
