package analysis

import (
	"fmt"
	"sort"
	"strings"

	"cricket-scout/models"
)

// InsightCategory labels the kind of tactical insight.
type InsightCategory string

const (
	CategoryLength     InsightCategory = "Length"
	CategoryLine       InsightCategory = "Line"
	CategoryShots      InsightCategory = "Shots"
	CategoryBoundaries InsightCategory = "Boundaries"
	CategoryDismissals InsightCategory = "Dismissals"
)

// Insight is one formatted tactical sentence tagged with its category.
type Insight struct {
	Category InsightCategory `json:"category"`
	Text     string          `json:"text"`
}

// Writeup is the complete tactical brief for one batter. Built fresh on
// every generation request; never persisted.
type Writeup struct {
	BatterID      int64       `json:"batter_id"`
	Name          string      `json:"name"`
	Hand          models.Hand `json:"batting_hand"`
	Insights      []Insight   `json:"insights"`
	Text          string      `json:"text"`
	WordCount     int         `json:"word_count"`
	LineCount     int         `json:"line_count"`
	NumInsights   int         `json:"num_insights"`
	LowConfidence bool        `json:"low_confidence"`
}

// metricFormatter threads the first-use formatting rule through the Length
// and Line generators: the first metric pair anywhere prints with labels,
// every later pair prints compact.
type metricFormatter struct {
	used bool
}

func (f *metricFormatter) format(avg, sr float64) string {
	if !f.used {
		f.used = true
		return fmt.Sprintf("%.0f avg; %.0f SR", avg, sr)
	}
	return fmt.Sprintf("(%.0f; %.0f)", avg, sr)
}

func outlierClause(entries []OutlierEntry, f *metricFormatter) string {
	limit := len(entries)
	if limit > 2 {
		limit = 2
	}
	parts := make([]string, 0, limit)
	for _, e := range entries[:limit] {
		parts = append(parts, e.Category+" "+f.format(e.Avg, e.SR))
	}
	return strings.Join(parts, " and ")
}

func lengthInsight(result OutlierResult, f *metricFormatter) (Insight, bool) {
	if len(result.Strengths) == 0 && len(result.Weaknesses) == 0 {
		return Insight{}, false
	}

	var parts []string
	if len(result.Strengths) > 0 {
		parts = append(parts, "Strong vs "+outlierClause(result.Strengths, f))
	}
	if len(result.Weaknesses) > 0 {
		parts = append(parts, "weak vs "+outlierClause(result.Weaknesses, f))
		// Advice cites only the worst category even when two weaknesses
		// are listed.
		parts = append(parts, "Target "+result.Weaknesses[0].Category)
	}

	return Insight{
		Category: CategoryLength,
		Text:     "**Length:** " + strings.Join(parts, ". ") + ".",
	}, true
}

func lineInsight(result OutlierResult, f *metricFormatter) (Insight, bool) {
	if len(result.Strengths) == 0 && len(result.Weaknesses) == 0 {
		return Insight{}, false
	}

	var parts []string
	if len(result.Strengths) > 0 {
		parts = append(parts, "Excels "+outlierClause(result.Strengths, f))
	}
	if len(result.Weaknesses) > 0 {
		parts = append(parts, "struggles "+outlierClause(result.Weaknesses, f))
		parts = append(parts, "Bowl "+result.Weaknesses[0].Category)
	}

	return Insight{
		Category: CategoryLine,
		Text:     "**Line:** " + strings.Join(parts, ". ") + ".",
	}, true
}

// topShots selects the n most used shots with positive usage. The descending
// sort is stable, so ties keep the resolved column order.
func topShots(shots []models.ShotUsage, n int) []models.ShotUsage {
	var used []models.ShotUsage
	for _, s := range shots {
		if s.Pct > 0 {
			used = append(used, s)
		}
	}
	sort.SliceStable(used, func(i, j int) bool { return used[i].Pct > used[j].Pct })
	if len(used) > n {
		used = used[:n]
	}
	return used
}

func shotClause(label string, shots []models.ShotUsage) string {
	parts := make([]string, 0, len(shots))
	for _, s := range shots {
		parts = append(parts, fmt.Sprintf("%s (%.0f%%)", s.Shot, s.Pct))
	}
	return label + ": " + strings.Join(parts, ", ")
}

func shotInsight(rec models.BatterRecord) (Insight, bool) {
	paceShots := topShots(rec.PaceShots, 2)
	spinShots := topShots(rec.SpinShots, 2)
	if len(paceShots) == 0 && len(spinShots) == 0 {
		return Insight{}, false
	}

	var parts []string
	if len(paceShots) > 0 {
		parts = append(parts, shotClause("vs Pace", paceShots))
	}
	if len(spinShots) > 0 {
		parts = append(parts, shotClause("vs Spin", spinShots))
	}

	return Insight{
		Category: CategoryShots,
		Text:     "**Shots:** " + strings.Join(parts, "; ") + ".",
	}, true
}

type zoneShare struct {
	name string
	pct  float64
}

// topZones selects the n zones with the highest positive percentage, names
// resolved through the hand-aware zone mapper. Ties keep zone-number order.
func topZones(pcts [8]*float64, hand models.Hand, n int) []zoneShare {
	var zones []zoneShare
	for zone := 1; zone <= 8; zone++ {
		pct := pcts[zone-1]
		if pct == nil || *pct <= 0 {
			continue
		}
		name, err := models.ZoneName(zone, hand)
		if err != nil {
			continue
		}
		zones = append(zones, zoneShare{name: name, pct: *pct})
	}
	sort.SliceStable(zones, func(i, j int) bool { return zones[i].pct > zones[j].pct })
	if len(zones) > n {
		zones = zones[:n]
	}
	return zones
}

func zoneList(zones []zoneShare) string {
	parts := make([]string, 0, len(zones))
	for _, z := range zones {
		parts = append(parts, fmt.Sprintf("%s (%.0f%%)", z.name, z.pct))
	}
	return strings.Join(parts, ", ")
}

func boundaryInsight(rec models.BatterRecord) (Insight, bool) {
	zones := topZones(rec.BoundaryZonePct, rec.Hand, 3)
	if len(zones) == 0 {
		return Insight{}, false
	}

	advice := "Protect " + zones[0].name
	if len(zones) >= 2 {
		advice = "Protect " + zones[0].name + " and " + zones[1].name
	}

	return Insight{
		Category: CategoryBoundaries,
		Text:     fmt.Sprintf("**Boundaries:** Top zones: %s. %s.", zoneList(zones), advice),
	}, true
}

func dismissalInsight(rec models.BatterRecord) (Insight, bool) {
	zones := topZones(rec.DismissalZonePct, rec.Hand, 3)
	if len(zones) == 0 {
		return Insight{}, false
	}

	advice := "Place catcher at " + zones[0].name
	if len(zones) >= 2 {
		advice = "Place catchers at " + zones[0].name + " and " + zones[1].name
	}

	return Insight{
		Category: CategoryDismissals,
		Text:     fmt.Sprintf("**Dismissals:** Catch zones: %s. %s.", zoneList(zones), advice),
	}, true
}

func countWords(text string) int {
	return len(strings.Fields(text))
}

func countLines(text string) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}

// GenerateWriteup assembles the tactical brief for one batter: the five
// insight generators run in fixed order and each may be omitted when its
// underlying data is insufficient.
func GenerateWriteup(pop *models.StatPopulation, rec models.BatterRecord, threshold float64) Writeup {
	outliers := DetectOutliers(pop, rec, threshold)

	formatter := &metricFormatter{}
	var insights []Insight

	if insight, ok := lengthInsight(outliers.Length, formatter); ok {
		insights = append(insights, insight)
	}
	if insight, ok := lineInsight(outliers.Line, formatter); ok {
		insights = append(insights, insight)
	}
	if insight, ok := shotInsight(rec); ok {
		insights = append(insights, insight)
	}
	if insight, ok := boundaryInsight(rec); ok {
		insights = append(insights, insight)
	}
	if insight, ok := dismissalInsight(rec); ok {
		insights = append(insights, insight)
	}

	texts := make([]string, 0, len(insights))
	for _, insight := range insights {
		texts = append(texts, insight.Text)
	}
	text := strings.Join(texts, "\n\n")

	return Writeup{
		BatterID:      rec.BatterID,
		Name:          rec.Name,
		Hand:          rec.Hand,
		Insights:      insights,
		Text:          text,
		WordCount:     countWords(text),
		LineCount:     countLines(text),
		NumInsights:   len(insights),
		LowConfidence: len(insights) < 3,
	}
}
