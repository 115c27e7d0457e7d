package models

import (
	"fmt"
	"sort"
	"strings"
)

// Hand is a batter's batting hand.
type Hand string

const (
	RightHand Hand = "RHB"
	LeftHand  Hand = "LHB"
)

// ParseHand maps a dataset hand flag to a Hand. Unknown or empty values
// default to right-handed, matching the source data's convention.
func ParseHand(s string) Hand {
	if strings.EqualFold(strings.TrimSpace(s), string(LeftHand)) {
		return LeftHand
	}
	return RightHand
}

// Length is a pitch-length category.
type Length string

const (
	LengthFull        Length = "full"
	LengthGood        Length = "good_length"
	LengthShort       Length = "short"
	LengthShortOfGood Length = "short_of_a_good_length"
	LengthYorker      Length = "yorker"
	LengthFullToss    Length = "full_toss"
)

// Line is a pitch-line category.
type Line string

const (
	LineDownLeg        Line = "down_leg"
	LineOnStumps       Line = "on_the_stumps"
	LineOutsideOff     Line = "outside_offstump"
	LineWideOutsideOff Line = "wide_outside_offstump"
	LineWideDownLeg    Line = "wide_down_leg"
)

// Lengths returns all pitch-length categories in dataset column order.
func Lengths() []Length {
	return []Length{LengthFull, LengthGood, LengthShort, LengthShortOfGood, LengthYorker, LengthFullToss}
}

// Lines returns all pitch-line categories in dataset column order.
func Lines() []Line {
	return []Line{LineDownLeg, LineOnStumps, LineOutsideOff, LineWideOutsideOff, LineWideDownLeg}
}

// Display returns the human-readable category name.
func (l Length) Display() string { return strings.ReplaceAll(string(l), "_", " ") }

// Display returns the human-readable category name.
func (l Line) Display() string { return strings.ReplaceAll(string(l), "_", " ") }

// PitchStats holds a batter's performance against one pitch category.
// Nil fields mean the metric is missing for this batter.
type PitchStats struct {
	Avg *float64 `json:"avg,omitempty"`
	SR  *float64 `json:"sr,omitempty"`
}

// ShotUsage is one shot type with its usage percentage against a bowling type.
type ShotUsage struct {
	Shot string  `json:"shot"`
	Pct  float64 `json:"pct"`
}

// BowlerTypeStat is one raw row of a batter's record against a bowler type.
type BowlerTypeStat struct {
	BowlerType  string   `json:"bowler_type"`
	BallsFaced  int      `json:"balls_faced"`
	Runs        int      `json:"runs"`
	Average     *float64 `json:"average,omitempty"`
	DotPct      *float64 `json:"dot_pct,omitempty"`
	BoundaryPct *float64 `json:"boundary_pct,omitempty"`
}

// ZoneCounts holds a batter's boundary counts per wagon zone. Index i holds
// the count for zone i+1.
type ZoneCounts struct {
	BatterID int64  `json:"batter_id"`
	Name     string `json:"name"`
	Fours    [8]int `json:"fours"`
	Sixes    [8]int `json:"sixes"`
}

// BatterRecord is one batter's full statistical row. Records are immutable
// once loaded; metric columns named by the dataset's conventions are resolved
// into the typed fields at construction time.
type BatterRecord struct {
	BatterID int64  `json:"batter_id"`
	Name     string `json:"name"`
	Team     string `json:"team,omitempty"`
	TeamRank *int   `json:"team_runs_rank,omitempty"`
	Hand     Hand   `json:"batting_hand"`

	Lengths map[Length]PitchStats `json:"lengths"`
	Lines   map[Line]PitchStats   `json:"lines"`

	// Shot usage per bowling type, resolved in sorted column order so that
	// downstream stable sorts are deterministic.
	PaceShots []ShotUsage `json:"pace_shots,omitempty"`
	SpinShots []ShotUsage `json:"spin_shots,omitempty"`

	// Percentage of boundaries / caught dismissals per wagon zone.
	// Index i holds zone i+1; nil means missing.
	BoundaryZonePct  [8]*float64 `json:"boundary_zone_pct"`
	DismissalZonePct [8]*float64 `json:"dismissal_zone_pct"`

	// Metrics is the raw flat column map the record was resolved from.
	Metrics map[string]float64 `json:"-"`
}

const (
	shotPacePrefix = "pct_shots_by_shot_type_vs_pace_"
	shotSpinPrefix = "pct_shots_by_shot_type_vs_spin_"
)

func avgColumn(dimension, category string) string {
	return "avg_runs_per_dismissal_vs_pitch_" + dimension + "_" + category
}

func srColumn(dimension, category string) string {
	return "strike_rate_vs_pitch_" + dimension + "_" + category
}

func lookup(metrics map[string]float64, column string) *float64 {
	if v, ok := metrics[column]; ok {
		val := v
		return &val
	}
	return nil
}

// NewBatterRecord resolves a flat convention-named metric map into a typed
// record. Missing columns stay nil and are skipped by the analysis layer.
func NewBatterRecord(id int64, name, team string, rank *int, hand Hand, metrics map[string]float64) BatterRecord {
	rec := BatterRecord{
		BatterID: id,
		Name:     name,
		Team:     team,
		TeamRank: rank,
		Hand:     hand,
		Lengths:  make(map[Length]PitchStats, len(Lengths())),
		Lines:    make(map[Line]PitchStats, len(Lines())),
		Metrics:  metrics,
	}

	for _, l := range Lengths() {
		rec.Lengths[l] = PitchStats{
			Avg: lookup(metrics, avgColumn("length", string(l))),
			SR:  lookup(metrics, srColumn("length", string(l))),
		}
	}
	for _, l := range Lines() {
		rec.Lines[l] = PitchStats{
			Avg: lookup(metrics, avgColumn("line", string(l))),
			SR:  lookup(metrics, srColumn("line", string(l))),
		}
	}

	rec.PaceShots = resolveShots(metrics, shotPacePrefix)
	rec.SpinShots = resolveShots(metrics, shotSpinPrefix)

	for zone := 1; zone <= 8; zone++ {
		rec.BoundaryZonePct[zone-1] = lookup(metrics, fmt.Sprintf("pct_boundaries_in_wagon_zone_%d", zone))
		rec.DismissalZonePct[zone-1] = lookup(metrics, fmt.Sprintf("pct_caught_dismissals_in_wagon_zone_%d", zone))
	}

	return rec
}

func resolveShots(metrics map[string]float64, prefix string) []ShotUsage {
	var cols []string
	for col := range metrics {
		if strings.HasPrefix(col, prefix) {
			cols = append(cols, col)
		}
	}
	sort.Strings(cols)

	var shots []ShotUsage
	for _, col := range cols {
		shots = append(shots, ShotUsage{
			Shot: strings.ReplaceAll(strings.TrimPrefix(col, prefix), "_", " "),
			Pct:  metrics[col],
		})
	}
	return shots
}

// ResolveZoneCounts builds ZoneCounts from a flat count map using the
// fours_wagonZone<n> / sixes_wagonZone<n> column convention. Absent columns
// count as zero.
func ResolveZoneCounts(id int64, name string, counts map[string]float64) ZoneCounts {
	zc := ZoneCounts{BatterID: id, Name: name}
	for zone := 1; zone <= 8; zone++ {
		zc.Fours[zone-1] = int(counts[fmt.Sprintf("fours_wagonZone%d", zone)])
		zc.Sixes[zone-1] = int(counts[fmt.Sprintf("sixes_wagonZone%d", zone)])
	}
	return zc
}

// StatPopulation is the complete set of batter records for a dataset load.
// It exists to give the outlier detector a comparison set; read-only after
// construction.
type StatPopulation struct {
	Records []BatterRecord
	byID    map[int64]int
}

// NewStatPopulation builds the population index over the given records.
func NewStatPopulation(records []BatterRecord) *StatPopulation {
	p := &StatPopulation{
		Records: records,
		byID:    make(map[int64]int, len(records)),
	}
	for i, rec := range records {
		p.byID[rec.BatterID] = i
	}
	return p
}

// Size returns the number of batters in the population.
func (p *StatPopulation) Size() int { return len(p.Records) }

// ByID looks a batter up by identifier.
func (p *StatPopulation) ByID(id int64) (BatterRecord, bool) {
	if i, ok := p.byID[id]; ok {
		return p.Records[i], true
	}
	return BatterRecord{}, false
}

// LengthAvgs returns all non-missing population values of the average-runs
// metric for a length category.
func (p *StatPopulation) LengthAvgs(cat Length) []float64 {
	var vals []float64
	for _, rec := range p.Records {
		if ps, ok := rec.Lengths[cat]; ok && ps.Avg != nil {
			vals = append(vals, *ps.Avg)
		}
	}
	return vals
}

// LineAvgs returns all non-missing population values of the average-runs
// metric for a line category.
func (p *StatPopulation) LineAvgs(cat Line) []float64 {
	var vals []float64
	for _, rec := range p.Records {
		if ps, ok := rec.Lines[cat]; ok && ps.Avg != nil {
			vals = append(vals, *ps.Avg)
		}
	}
	return vals
}

// Teams returns the distinct team names in the population, sorted.
func (p *StatPopulation) Teams() []string {
	seen := make(map[string]bool)
	var teams []string
	for _, rec := range p.Records {
		if rec.Team != "" && !seen[rec.Team] {
			seen[rec.Team] = true
			teams = append(teams, rec.Team)
		}
	}
	sort.Strings(teams)
	return teams
}

// TeamBatters returns a team's batters ordered by team-runs rank; batters
// without a rank sort last, ties break on name.
func (p *StatPopulation) TeamBatters(team string) []BatterRecord {
	var batters []BatterRecord
	for _, rec := range p.Records {
		if rec.Team == team {
			batters = append(batters, rec)
		}
	}
	sort.SliceStable(batters, func(i, j int) bool {
		ri, rj := batters[i].TeamRank, batters[j].TeamRank
		switch {
		case ri == nil && rj == nil:
			return batters[i].Name < batters[j].Name
		case ri == nil:
			return false
		case rj == nil:
			return true
		case *ri != *rj:
			return *ri < *rj
		}
		return batters[i].Name < batters[j].Name
	})
	return batters
}

// DataSummary describes the loaded dataset.
type DataSummary struct {
	TotalBatters    int `json:"total_batters"`
	MetricColumns   int `json:"metric_columns"`
	MissingValues   int `json:"missing_values"`
	CompleteBatters int `json:"complete_batters"`
}

// Summary computes dataset-level statistics: the metric column universe is
// the union of every batter's columns, and a value is missing when a batter
// lacks a column another batter has.
func (p *StatPopulation) Summary() DataSummary {
	columns := make(map[string]bool)
	for _, rec := range p.Records {
		for col := range rec.Metrics {
			columns[col] = true
		}
	}

	summary := DataSummary{
		TotalBatters:  len(p.Records),
		MetricColumns: len(columns),
	}
	for _, rec := range p.Records {
		missing := 0
		for col := range columns {
			if _, ok := rec.Metrics[col]; !ok {
				missing++
			}
		}
		summary.MissingValues += missing
		if missing == 0 {
			summary.CompleteBatters++
		}
	}
	return summary
}
