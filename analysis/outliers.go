package analysis

import (
	"math"
	"sort"

	"cricket-scout/models"
)

// DefaultOutlierThreshold is the |z| cutoff above which a category counts as
// an outlier.
const DefaultOutlierThreshold = 1.5

// OutlierEntry is one outlying category for a batter. ZScore holds the
// magnitude for weaknesses and the signed (positive) score for strengths, so
// both lists sort descending on it.
type OutlierEntry struct {
	Category string  `json:"category"`
	Avg      float64 `json:"avg"`
	SR       float64 `json:"sr"`
	ZScore   float64 `json:"z_score"`
}

// OutlierResult holds a batter's outlying categories for one dimension.
// A category appears in at most one of the two lists.
type OutlierResult struct {
	Strengths  []OutlierEntry `json:"strengths"`
	Weaknesses []OutlierEntry `json:"weaknesses"`
}

// BatterOutliers pairs the length and line outlier results for one batter.
type BatterOutliers struct {
	Length OutlierResult `json:"length"`
	Line   OutlierResult `json:"line"`
}

// zScore computes the z-score of x against the population column values
// (which include x itself). It reports ok=false when fewer than 2 values
// exist; a zero-spread column yields z=0 for everyone.
func zScore(x float64, values []float64) (float64, bool) {
	if len(values) < 2 {
		return 0, false
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	// Sample standard deviation, matching how the population spread is
	// reported in the source dataset tooling.
	std := math.Sqrt(sq / float64(len(values)-1))

	if std == 0 {
		return 0, true
	}
	return (x - mean) / std, true
}

func classify(result *OutlierResult, category string, avg, sr, z, threshold float64) {
	if math.Abs(z) <= threshold {
		return
	}
	if z > 0 {
		result.Strengths = append(result.Strengths, OutlierEntry{Category: category, Avg: avg, SR: sr, ZScore: z})
	} else {
		result.Weaknesses = append(result.Weaknesses, OutlierEntry{Category: category, Avg: avg, SR: sr, ZScore: math.Abs(z)})
	}
}

func sortByMagnitude(entries []OutlierEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ZScore > entries[j].ZScore
	})
}

// DetectLengthOutliers classifies a batter's per-length performance against
// the population. Categories with missing batter metrics or an undefined
// population column are skipped.
func DetectLengthOutliers(pop *models.StatPopulation, rec models.BatterRecord, threshold float64) OutlierResult {
	var result OutlierResult
	for _, cat := range models.Lengths() {
		ps := rec.Lengths[cat]
		if ps.Avg == nil || ps.SR == nil {
			continue
		}
		z, ok := zScore(*ps.Avg, pop.LengthAvgs(cat))
		if !ok {
			continue
		}
		classify(&result, cat.Display(), *ps.Avg, *ps.SR, z, threshold)
	}
	sortByMagnitude(result.Strengths)
	sortByMagnitude(result.Weaknesses)
	return result
}

// DetectLineOutliers classifies a batter's per-line performance against the
// population.
func DetectLineOutliers(pop *models.StatPopulation, rec models.BatterRecord, threshold float64) OutlierResult {
	var result OutlierResult
	for _, cat := range models.Lines() {
		ps := rec.Lines[cat]
		if ps.Avg == nil || ps.SR == nil {
			continue
		}
		z, ok := zScore(*ps.Avg, pop.LineAvgs(cat))
		if !ok {
			continue
		}
		classify(&result, cat.Display(), *ps.Avg, *ps.SR, z, threshold)
	}
	sortByMagnitude(result.Strengths)
	sortByMagnitude(result.Weaknesses)
	return result
}

// DetectOutliers runs both dimensions for one batter.
func DetectOutliers(pop *models.StatPopulation, rec models.BatterRecord, threshold float64) BatterOutliers {
	return BatterOutliers{
		Length: DetectLengthOutliers(pop, rec, threshold),
		Line:   DetectLineOutliers(pop, rec, threshold),
	}
}
