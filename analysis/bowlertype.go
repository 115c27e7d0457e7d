package analysis

import (
	"math"
	"sort"

	"cricket-scout/models"
)

// Rating classifies one metric cell against cricket benchmarks.
type Rating string

const (
	RatingGood   Rating = "good"
	RatingMedium Rating = "medium"
	RatingPoor   Rating = "poor"
	RatingNone   Rating = "none"
)

// Benchmark thresholds. For dot-ball percentage lower is better, so its
// comparison runs reversed.
const (
	strikeRateGood   = 140.0
	strikeRateMedium = 120.0
	averageGood      = 40.0
	averageMedium    = 25.0
	boundaryPctGood  = 20.0
	boundaryPctMed   = 15.0
	dotPctGood       = 30.0
	dotPctMedium     = 40.0
)

// BowlerTypeRow is one display row of the performance-vs-bowler-type table,
// with per-metric ratings the presentation layer turns into colors.
type BowlerTypeRow struct {
	BowlerType  string   `json:"bowler_type"`
	BallsFaced  int      `json:"balls_faced"`
	StrikeRate  *float64 `json:"strike_rate,omitempty"`
	Average     *float64 `json:"average,omitempty"`
	DotPct      *float64 `json:"dot_pct,omitempty"`
	BoundaryPct *float64 `json:"boundary_pct,omitempty"`

	StrikeRateRating  Rating `json:"strike_rate_rating"`
	AverageRating     Rating `json:"average_rating"`
	DotPctRating      Rating `json:"dot_pct_rating"`
	BoundaryPctRating Rating `json:"boundary_pct_rating"`
}

func rate(value *float64, good, medium float64) Rating {
	if value == nil || *value == 0 || math.IsNaN(*value) {
		return RatingNone
	}
	if *value >= good {
		return RatingGood
	}
	if *value >= medium {
		return RatingMedium
	}
	return RatingPoor
}

func rateReversed(value *float64, good, medium float64) Rating {
	if value == nil || *value == 0 || math.IsNaN(*value) {
		return RatingNone
	}
	if *value <= good {
		return RatingGood
	}
	if *value <= medium {
		return RatingMedium
	}
	return RatingPoor
}

// BuildBowlerTypeTable computes strike rates and metric ratings for a
// batter's raw bowler-type stats, sorted by balls faced descending so the
// most sampled matchups lead.
func BuildBowlerTypeTable(stats []models.BowlerTypeStat) []BowlerTypeRow {
	rows := make([]BowlerTypeRow, 0, len(stats))
	for _, s := range stats {
		row := BowlerTypeRow{
			BowlerType:  s.BowlerType,
			BallsFaced:  s.BallsFaced,
			Average:     s.Average,
			DotPct:      s.DotPct,
			BoundaryPct: s.BoundaryPct,
		}

		if s.BallsFaced > 0 {
			sr := math.Round(float64(s.Runs)/float64(s.BallsFaced)*100*10) / 10
			row.StrikeRate = &sr
		}

		row.StrikeRateRating = rate(row.StrikeRate, strikeRateGood, strikeRateMedium)
		row.AverageRating = rate(row.Average, averageGood, averageMedium)
		row.BoundaryPctRating = rate(row.BoundaryPct, boundaryPctGood, boundaryPctMed)
		row.DotPctRating = rateReversed(row.DotPct, dotPctGood, dotPctMedium)

		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].BallsFaced > rows[j].BallsFaced })
	return rows
}
