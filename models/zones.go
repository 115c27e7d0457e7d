package models

import (
	"errors"
	"fmt"
)

// ErrInvalidZone is returned when a wagon zone id falls outside 1-8.
var ErrInvalidZone = errors.New("invalid wagon zone")

// Field position names for a right-handed batter, indexed by zone-1.
// This is the canonical layout; the left-handed layout mirrors the field
// across the pitch axis, which only swaps Mid On and Mid Off.
var rhbZones = [8]string{
	"Fine Leg",
	"Square Leg",
	"Mid Wicket",
	"Mid On",
	"Mid Off",
	"Covers",
	"Point",
	"Third Man",
}

// ZoneName maps a wagon zone id (1-8) and batting hand to a field position
// name. Zone ids outside 1-8 are a caller bug and return ErrInvalidZone.
func ZoneName(zone int, hand Hand) (string, error) {
	if zone < 1 || zone > 8 {
		return "", fmt.Errorf("%w: %d", ErrInvalidZone, zone)
	}
	if hand == LeftHand {
		switch zone {
		case 4:
			return rhbZones[4], nil // Mid Off
		case 5:
			return rhbZones[3], nil // Mid On
		}
	}
	return rhbZones[zone-1], nil
}

// ZoneMapping returns the full zone-to-position mapping for a batting hand.
func ZoneMapping(hand Hand) map[int]string {
	mapping := make(map[int]string, 8)
	for zone := 1; zone <= 8; zone++ {
		name, _ := ZoneName(zone, hand)
		mapping[zone] = name
	}
	return mapping
}
