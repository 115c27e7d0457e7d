package analysis

import (
	"fmt"
	"math"

	"cricket-scout/models"
)

// Wagon wheel rendering constants. The geometry always uses the canonical
// RHB zone layout; field-position mapping for the text pipeline is the only
// hand-aware piece.
const (
	// BoundaryRadius is the rope distance every spoke reaches. Spokes are
	// never scaled by count; only markers encode magnitude.
	BoundaryRadius = 2.5

	// sixesAngleOffset separates sixes spokes from fours spokes sharing a
	// zone.
	sixesAngleOffset = 8.0

	markerBase     = 8.0
	markerPerCount = 1.5
	markerMax      = 40.0
)

// Center angle in degrees for each zone, clockwise from north, canonical RHB
// layout. Index i holds zone i+1.
var zoneAngles = [8]float64{67.5, 22.5, 337.5, 292.5, 247.5, 202.5, 157.5, 112.5}

// Spoke is one rendered wagon-wheel ray: a line from the origin to the rope
// with a count-sized marker at the tip.
type Spoke struct {
	Zone       int     `json:"zone"`
	Label      string  `json:"label"`
	AngleDeg   float64 `json:"angle_deg"`
	Radius     float64 `json:"radius"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Count      int     `json:"count"`
	MarkerSize float64 `json:"marker_size"`
	Hover      string  `json:"hover"`
}

// WagonWheel is the renderable geometry for one batter's boundary map.
type WagonWheel struct {
	BatterID       int64   `json:"batter_id"`
	Name           string  `json:"name"`
	BoundaryRadius float64 `json:"boundary_radius"`
	Fours          []Spoke `json:"fours"`
	Sixes          []Spoke `json:"sixes"`
}

func markerSize(count int) float64 {
	size := markerBase + float64(count)*markerPerCount
	if size > markerMax {
		return markerMax
	}
	return size
}

func buildSpokes(counts [8]int, kind string, angleOffset float64) []Spoke {
	var spokes []Spoke
	for zone := 1; zone <= 8; zone++ {
		count := counts[zone-1]
		if count <= 0 {
			continue
		}

		label, _ := models.ZoneName(zone, models.RightHand)
		angle := zoneAngles[zone-1] + angleOffset
		rad := angle * math.Pi / 180

		spokes = append(spokes, Spoke{
			Zone:       zone,
			Label:      label,
			AngleDeg:   angle,
			Radius:     BoundaryRadius,
			X:          BoundaryRadius * math.Sin(rad),
			Y:          BoundaryRadius * math.Cos(rad),
			Count:      count,
			MarkerSize: markerSize(count),
			Hover:      fmt.Sprintf("%s: %d %s", label, count, kind),
		})
	}
	return spokes
}

// BuildWagonWheel converts a batter's per-zone boundary counts into polar
// spoke geometry. Zones with zero count produce no spoke.
func BuildWagonWheel(zc models.ZoneCounts) WagonWheel {
	return WagonWheel{
		BatterID:       zc.BatterID,
		Name:           zc.Name,
		BoundaryRadius: BoundaryRadius,
		Fours:          buildSpokes(zc.Fours, "fours", 0),
		Sixes:          buildSpokes(zc.Sixes, "sixes", sixesAngleOffset),
	}
}
