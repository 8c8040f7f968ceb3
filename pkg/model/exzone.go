package model

import (
	"strings"
)

// ExZone is an ATEX explosion protection zone of a space.
// Zones 0, 1 and 2 are gas zones, 20, 21 and 22 are dust zones.
type ExZone string

const (
	ZoneNone ExZone = "none"
	Zone0    ExZone = "zone_0"
	Zone1    ExZone = "zone_1"
	Zone2    ExZone = "zone_2"
	Zone20   ExZone = "zone_20"
	Zone21   ExZone = "zone_21"
	Zone22   ExZone = "zone_22"
)

// ExZoneAliases are property names that carry a hazard zone.
var ExZoneAliases = []string{"ExZone", "Ex-Zone", "ExplosionZone", "ATEXZone"}

var zoneByNumber = map[string]ExZone{
	"0":  Zone0,
	"1":  Zone1,
	"2":  Zone2,
	"20": Zone20,
	"21": Zone21,
	"22": Zone22,
}

var zonePrefixes = []string{"zone ", "zone_", "ex-zone ", "ex zone "}

// ParseExZone normalizes zone notations like "Zone 1", "2", "zone_20" or
// "Ex-Zone: 1". Values that carry no known zone number give ZoneNone.
func ParseExZone(s string) ExZone {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ZoneNone
	}

	if z, ok := zoneByNumber[s]; ok {
		return z
	}
	for _, p := range zonePrefixes {
		if num, ok := strings.CutPrefix(s, p); ok {
			if z, ok := zoneByNumber[num]; ok {
				return z
			}
		}
	}

	if z, ok := zoneByNumber[firstNumber(s)]; ok {
		return z
	}
	return ZoneNone
}

// firstNumber returns the first run of one or two digits in s.
func firstNumber(s string) string {
	start := strings.IndexAny(s, "0123456789")
	if start < 0 {
		return ""
	}
	end := start + 1
	if end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return s[start:end]
}

// IsHazardous is true for every zone except ZoneNone.
func (z ExZone) IsHazardous() bool {
	return z != ZoneNone && z != ""
}

// IsGas is true for zones 0, 1 and 2.
func (z ExZone) IsGas() bool {
	return z == Zone0 || z == Zone1 || z == Zone2
}

// IsDust is true for zones 20, 21 and 22.
func (z ExZone) IsDust() bool {
	return z == Zone20 || z == Zone21 || z == Zone22
}
