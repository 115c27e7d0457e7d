package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"cricket-scout/models"
)

// writeupPopulation builds a five-batter population where the target batter
// is a strong outlier on full, a weak outlier on short and on outside
// offstump, and has shot and zone data for every generator.
func writeupPopulation() (*models.StatPopulation, models.BatterRecord) {
	records := []models.BatterRecord{
		models.NewBatterRecord(1, "R Sharma", "MI", nil, models.RightHand, map[string]float64{
			"avg_runs_per_dismissal_vs_pitch_length_full":           50,
			"strike_rate_vs_pitch_length_full":                      150,
			"avg_runs_per_dismissal_vs_pitch_length_short":          2,
			"strike_rate_vs_pitch_length_short":                     80,
			"avg_runs_per_dismissal_vs_pitch_line_outside_offstump": 3,
			"strike_rate_vs_pitch_line_outside_offstump":            90,
			"pct_shots_by_shot_type_vs_pace_cover_drive":            40,
			"pct_shots_by_shot_type_vs_pace_pull":                   30,
			"pct_shots_by_shot_type_vs_pace_cut":                    10,
			"pct_shots_by_shot_type_vs_spin_sweep":                  50,
			"pct_boundaries_in_wagon_zone_3":                        40,
			"pct_boundaries_in_wagon_zone_4":                        30,
			"pct_boundaries_in_wagon_zone_6":                        20,
			"pct_boundaries_in_wagon_zone_1":                        10,
			"pct_caught_dismissals_in_wagon_zone_7":                 60,
			"pct_caught_dismissals_in_wagon_zone_8":                 20,
		}),
	}
	for i := 0; i < 4; i++ {
		records = append(records, models.NewBatterRecord(int64(i+2), "Other", "MI", nil, models.RightHand, map[string]float64{
			"avg_runs_per_dismissal_vs_pitch_length_full":           10,
			"avg_runs_per_dismissal_vs_pitch_length_short":          30,
			"avg_runs_per_dismissal_vs_pitch_line_outside_offstump": 40,
		}))
	}
	pop := models.NewStatPopulation(records)
	rec, _ := pop.ByID(1)
	return pop, rec
}

func TestGenerateWriteupAllInsights(t *testing.T) {
	pop, rec := writeupPopulation()

	w := GenerateWriteup(pop, rec, DefaultOutlierThreshold)

	assert.Equal(t, int64(1), w.BatterID)
	assert.Equal(t, "R Sharma", w.Name)
	assert.Equal(t, 5, w.NumInsights)
	assert.False(t, w.LowConfidence)

	categories := make([]InsightCategory, 0, len(w.Insights))
	for _, ins := range w.Insights {
		categories = append(categories, ins.Category)
	}
	assert.Equal(t, []InsightCategory{
		CategoryLength, CategoryLine, CategoryShots, CategoryBoundaries, CategoryDismissals,
	}, categories)
}

func TestGenerateWriteupInsightTexts(t *testing.T) {
	pop, rec := writeupPopulation()

	w := GenerateWriteup(pop, rec, DefaultOutlierThreshold)

	assert.Equal(t,
		"**Length:** Strong vs full 50 avg; 150 SR. weak vs short (2; 80). Target short.",
		w.Insights[0].Text)
	assert.Equal(t,
		"**Line:** struggles outside offstump (3; 90). Bowl outside offstump.",
		w.Insights[1].Text)
	assert.Equal(t,
		"**Shots:** vs Pace: cover drive (40%), pull (30%); vs Spin: sweep (50%).",
		w.Insights[2].Text)
	assert.Equal(t,
		"**Boundaries:** Top zones: Mid Wicket (40%), Mid On (30%), Covers (20%). Protect Mid Wicket and Mid On.",
		w.Insights[3].Text)
	assert.Equal(t,
		"**Dismissals:** Catch zones: Point (60%), Third Man (20%). Place catchers at Point and Third Man.",
		w.Insights[4].Text)
}

func TestGenerateWriteupFirstMetricPairLabeledOnce(t *testing.T) {
	pop, rec := writeupPopulation()

	w := GenerateWriteup(pop, rec, DefaultOutlierThreshold)

	// The labeled format appears exactly once across all insights; every
	// later pair is compact.
	assert.Equal(t, 1, strings.Count(w.Text, " avg; "))
	assert.Contains(t, w.Text, "(2; 80)")
	assert.Contains(t, w.Text, "(3; 90)")
}

func TestGenerateWriteupTextAssembly(t *testing.T) {
	pop, rec := writeupPopulation()

	w := GenerateWriteup(pop, rec, DefaultOutlierThreshold)

	assert.Equal(t, 5, w.LineCount)
	assert.Equal(t, len(strings.Fields(w.Text)), w.WordCount)
	parts := strings.Split(w.Text, "\n\n")
	assert.Len(t, parts, 5)
}

func TestGenerateWriteupLowConfidence(t *testing.T) {
	// A batter with no usable metrics yields an empty, low-confidence brief
	records := []models.BatterRecord{
		models.NewBatterRecord(1, "Empty", "", nil, models.RightHand, nil),
		models.NewBatterRecord(2, "Other", "", nil, models.RightHand, nil),
	}
	pop := models.NewStatPopulation(records)
	rec, _ := pop.ByID(1)

	w := GenerateWriteup(pop, rec, DefaultOutlierThreshold)

	assert.Equal(t, 0, w.NumInsights)
	assert.Empty(t, w.Text)
	assert.Equal(t, 0, w.WordCount)
	assert.Equal(t, 0, w.LineCount)
	assert.True(t, w.LowConfidence)
}

func TestGenerateWriteupLeftHanderZoneNames(t *testing.T) {
	// A left-hander's straight zones resolve to the mirrored positions
	records := []models.BatterRecord{
		models.NewBatterRecord(1, "Lefty", "", nil, models.LeftHand, map[string]float64{
			"pct_boundaries_in_wagon_zone_4": 60,
			"pct_boundaries_in_wagon_zone_5": 30,
		}),
		models.NewBatterRecord(2, "Other", "", nil, models.RightHand, nil),
	}
	pop := models.NewStatPopulation(records)
	rec, _ := pop.ByID(1)

	w := GenerateWriteup(pop, rec, DefaultOutlierThreshold)

	assert.Equal(t, 1, w.NumInsights)
	assert.Equal(t,
		"**Boundaries:** Top zones: Mid Off (60%), Mid On (30%). Protect Mid Off and Mid On.",
		w.Insights[0].Text)
	assert.True(t, w.LowConfidence)
}

func TestGenerateWriteupSingleCatchZone(t *testing.T) {
	records := []models.BatterRecord{
		models.NewBatterRecord(1, "One", "", nil, models.RightHand, map[string]float64{
			"pct_caught_dismissals_in_wagon_zone_2": 80,
		}),
		models.NewBatterRecord(2, "Other", "", nil, models.RightHand, nil),
	}
	pop := models.NewStatPopulation(records)
	rec, _ := pop.ByID(1)

	w := GenerateWriteup(pop, rec, DefaultOutlierThreshold)

	assert.Equal(t, 1, w.NumInsights)
	assert.Equal(t,
		"**Dismissals:** Catch zones: Square Leg (80%). Place catcher at Square Leg.",
		w.Insights[0].Text)
}

func TestTopShotsStableTieBreak(t *testing.T) {
	shots := []models.ShotUsage{
		{Shot: "cut", Pct: 25},
		{Shot: "drive", Pct: 25},
		{Shot: "pull", Pct: 10},
	}

	top := topShots(shots, 2)

	// Equal percentages keep their resolved order
	assert.Equal(t, []models.ShotUsage{
		{Shot: "cut", Pct: 25},
		{Shot: "drive", Pct: 25},
	}, top)
}

func TestTopShotsSkipsZeroUsage(t *testing.T) {
	shots := []models.ShotUsage{
		{Shot: "cut", Pct: 0},
		{Shot: "pull", Pct: 5},
	}

	top := topShots(shots, 2)
	assert.Equal(t, []models.ShotUsage{{Shot: "pull", Pct: 5}}, top)
}
