package services

import (
	"testing"
)

func f64(v float64) *float64 { return &v }

func str(v string) *string { return &v }

func TestExpectedLimit(t *testing.T) {
	tests := []struct {
		roadType string
		want     float64
	}{
		{"MOTORWAY", 120},
		{"RESIDENTIAL", 30},
		{"UNKNOWN", 50},
		{"SOMETHING_NEW", 50},
	}
	for _, tt := range tests {
		t.Run(tt.roadType, func(t *testing.T) {
			if got := expectedLimit(tt.roadType); got != tt.want {
				t.Errorf("expectedLimit(%q) = %v, want %v", tt.roadType, got, tt.want)
			}
		})
	}
}

func TestNormalizeFlowClampsSpeed(t *testing.T) {
	// Providers sometimes report highway speeds on residential streets.
	report := normalizeFlow(&flowSegment{
		CurrentSpeed: f64(100),
		RoadType:     str("residential"),
		JamFactor:    f64(0),
	})

	if report.RoadType != "RESIDENTIAL" {
		t.Errorf("RoadType = %q, want RESIDENTIAL", report.RoadType)
	}
	if report.Speed == nil || *report.Speed != 30 {
		t.Errorf("Speed = %v, want clamped to 30", report.Speed)
	}
	if report.FreeSpeed == nil || *report.FreeSpeed != 30 {
		t.Errorf("FreeSpeed = %v, want 30", report.FreeSpeed)
	}
}

func TestNormalizeFlowApproximatesJamFactor(t *testing.T) {
	// 25 km/h on a 50 km/h road: jam = (1 - 25/50) * 10 = 5
	report := normalizeFlow(&flowSegment{
		CurrentSpeed: f64(25),
		RoadType:     str("TERTIARY"),
	})

	if report.JamFactor == nil || *report.JamFactor != 5 {
		t.Errorf("JamFactor = %v, want 5", report.JamFactor)
	}
}

func TestNormalizeFlowKeepsProviderJamFactor(t *testing.T) {
	report := normalizeFlow(&flowSegment{
		CurrentSpeed: f64(25),
		RoadType:     str("TERTIARY"),
		JamFactor:    f64(2.3),
	})

	if report.JamFactor == nil || *report.JamFactor != 2.3 {
		t.Errorf("JamFactor = %v, want provider value 2.3", report.JamFactor)
	}
}

func TestNormalizeFlowMissingSpeed(t *testing.T) {
	report := normalizeFlow(&flowSegment{RoadType: str("PRIMARY")})

	if report.Speed != nil {
		t.Errorf("Speed = %v, want nil", *report.Speed)
	}
	if report.JamFactor != nil {
		t.Errorf("JamFactor = %v, want nil without a speed reading", *report.JamFactor)
	}
	if report.FreeSpeed == nil || *report.FreeSpeed != 80 {
		t.Errorf("FreeSpeed = %v, want 80", report.FreeSpeed)
	}
}

func TestNormalizeFlowDefaultsRoadType(t *testing.T) {
	report := normalizeFlow(&flowSegment{CurrentSpeed: f64(40)})

	if report.RoadType != "UNKNOWN" {
		t.Errorf("RoadType = %q, want UNKNOWN", report.RoadType)
	}
	if report.FreeSpeed == nil || *report.FreeSpeed != 50 {
		t.Errorf("FreeSpeed = %v, want 50", report.FreeSpeed)
	}
}

func TestFlowStatus(t *testing.T) {
	tests := []struct {
		name string
		jam  *float64
		want string
	}{
		{"severe", f64(8), "heavy congestion"},
		{"moderate", f64(5), "moderate traffic"},
		{"free", f64(2), "free flow"},
		{"missing", nil, "free flow"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := flowStatus(tt.jam); got != tt.want {
				t.Errorf("flowStatus = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProviderKeyRoundsCoordinates(t *testing.T) {
	a := ProviderKey("weather", 4.651234, -74.054321)
	b := ProviderKey("weather", 4.651499, -74.054299)
	if a != b {
		t.Errorf("nearby coordinates should share a key: %q vs %q", a, b)
	}

	c := ProviderKey("weather", 4.66, -74.05)
	if a == c {
		t.Error("distinct coordinates should not share a key")
	}
}
