package store

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"cricket-scout/models"
)

func newMockStore(t *testing.T) (pgxmock.PgxPoolIface, *Store) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock, New(mock)
}

func TestLoadPopulation(t *testing.T) {
	mock, s := newMockStore(t)

	rank := 3
	rows := pgxmock.NewRows([]string{"batter_id", "name", "team", "team_runs_rank", "batting_hand", "metrics"}).
		AddRow(int64(1), "V Kohli", "RCB", &rank, "RHB", map[string]float64{
			"avg_runs_per_dismissal_vs_pitch_length_full": 42,
		}).
		AddRow(int64(2), "Q de Kock", "LSG", (*int)(nil), "LHB", map[string]float64(nil))

	mock.ExpectQuery("SELECT batter_id, name, team, team_runs_rank, batting_hand, metrics").
		WillReturnRows(rows)

	pop, err := s.LoadPopulation(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 2, pop.Size())

	rec, found := pop.ByID(1)
	assert.True(t, found)
	assert.Equal(t, "V Kohli", rec.Name)
	assert.Equal(t, models.RightHand, rec.Hand)
	assert.NotNil(t, rec.TeamRank)
	assert.Equal(t, 3, *rec.TeamRank)
	assert.NotNil(t, rec.Lengths[models.LengthFull].Avg)

	rec, found = pop.ByID(2)
	assert.True(t, found)
	assert.Equal(t, models.LeftHand, rec.Hand)
	assert.Nil(t, rec.TeamRank)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadPopulationQueryError(t *testing.T) {
	mock, s := newMockStore(t)

	mock.ExpectQuery("SELECT batter_id, name, team").
		WillReturnError(errors.New("connection refused"))

	_, err := s.LoadPopulation(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to query batters")
}

func TestZoneCounts(t *testing.T) {
	mock, s := newMockStore(t)

	rows := pgxmock.NewRows([]string{"name", "counts"}).
		AddRow("MS Dhoni", map[string]float64{
			"fours_wagonZone1": 5,
			"sixes_wagonZone3": 8,
		})

	mock.ExpectQuery("SELECT b.name, z.counts").
		WithArgs(int64(7)).
		WillReturnRows(rows)

	zc, err := s.ZoneCounts(context.Background(), 7)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), zc.BatterID)
	assert.Equal(t, "MS Dhoni", zc.Name)
	assert.Equal(t, 5, zc.Fours[0])
	assert.Equal(t, 8, zc.Sixes[2])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestZoneCountsNotFound(t *testing.T) {
	mock, s := newMockStore(t)

	mock.ExpectQuery("SELECT b.name, z.counts").
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	_, err := s.ZoneCounts(context.Background(), 99)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestBowlerTypeStats(t *testing.T) {
	mock, s := newMockStore(t)

	avg := 38.5
	rows := pgxmock.NewRows([]string{"bowler_type", "balls_faced", "runs", "average", "dot_pct", "boundary_pct"}).
		AddRow("Right arm pace", 120, 150, &avg, (*float64)(nil), (*float64)(nil)).
		AddRow("Leg spin", 40, 45, (*float64)(nil), (*float64)(nil), (*float64)(nil))

	mock.ExpectQuery("SELECT bowler_type, balls_faced, runs").
		WithArgs(int64(7)).
		WillReturnRows(rows)

	stats, err := s.BowlerTypeStats(context.Background(), 7)
	assert.NoError(t, err)
	assert.Len(t, stats, 2)
	assert.Equal(t, "Right arm pace", stats[0].BowlerType)
	assert.Equal(t, 120, stats[0].BallsFaced)
	assert.NotNil(t, stats[0].Average)
	assert.Equal(t, 38.5, *stats[0].Average)
	assert.Nil(t, stats[1].Average)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBatterExists(t *testing.T) {
	mock, s := newMockStore(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := s.BatterExists(context.Background(), 7)
	assert.NoError(t, err)
	assert.True(t, exists)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(99)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err = s.BatterExists(context.Background(), 99)
	assert.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, mock.ExpectationsWereMet())
}
