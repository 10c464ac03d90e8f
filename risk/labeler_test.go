package risk

import "testing"

func vec(visibility, wind, trafficSpeed float64) FeatureVector {
	return FeatureVector{Visibility: visibility, WindSpeed: wind, TrafficSpeed: trafficSpeed}
}

func TestHeuristicLabel(t *testing.T) {
	tests := []struct {
		name string
		v    FeatureVector
		want string
	}{
		{"clear fast road", vec(10000, 2, 80), LabelLow},
		{"low visibility", vec(3000, 2, 80), LabelHigh},
		{"strong wind", vec(10000, 13, 80), LabelHigh},
		{"crawling traffic", vec(10000, 2, 10), LabelHigh},
		{"moderate traffic", vec(5000, 3, 45), LabelMedium},
		{"moderate wind", vec(10000, 9, 80), LabelMedium},

		// Boundary values resolve by first-match-wins order.
		{"visibility exactly 4000 is not high", vec(4000, 2, 80), LabelLow},
		{"wind exactly 12 is not high", vec(10000, 12, 80), LabelMedium},
		{"traffic exactly 20 is not high", vec(10000, 2, 20), LabelMedium},
		{"traffic exactly 50 is not medium", vec(10000, 2, 50), LabelLow},
		{"wind exactly 8 is not medium", vec(10000, 8, 80), LabelLow},

		// High wins even when medium conditions also hold.
		{"high beats medium", vec(3000, 9, 45), LabelHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HeuristicLabel(tt.v); got != tt.want {
				t.Errorf("HeuristicLabel(%+v) = %q, want %q", tt.v, got, tt.want)
			}
		})
	}
}

func TestHeuristicLabelTotal(t *testing.T) {
	// Every vector maps to exactly one of the three labels.
	for _, visibility := range []float64{0, 3999, 4000, 10000} {
		for _, wind := range []float64{0, 8, 8.1, 12, 12.1} {
			for _, speed := range []float64{0, 19.9, 20, 49.9, 50, 120} {
				got := HeuristicLabel(vec(visibility, wind, speed))
				if got != LabelLow && got != LabelMedium && got != LabelHigh {
					t.Fatalf("HeuristicLabel returned unknown label %q", got)
				}
			}
		}
	}
}

func TestFallbackLabel(t *testing.T) {
	tests := []struct {
		name string
		v    FeatureVector
		want string
	}{
		{"low visibility", vec(3000, 2, 80), LabelHigh},
		{"strong wind", vec(10000, 13, 80), LabelHigh},
		{"slow traffic", vec(10000, 2, 45), LabelMedium},
		{"slow traffic is not high here", vec(10000, 2, 10), LabelMedium},
		{"clear and fast", vec(10000, 2, 80), LabelLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FallbackLabel(tt.v); got != tt.want {
				t.Errorf("FallbackLabel(%+v) = %q, want %q", tt.v, got, tt.want)
			}
		})
	}
}
