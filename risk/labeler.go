package risk

// Risk labels, as stored and as returned by the classifier.
const (
	LabelLow    = "Bajo"
	LabelMedium = "Medio"
	LabelHigh   = "Alto"
)

// HeuristicLabel derives a risk label from a feature vector. First match
// wins. Used to backfill training records that never got a real label; a
// present label is never overridden.
func HeuristicLabel(v FeatureVector) string {
	if v.Visibility < 4000 || v.WindSpeed > 12 || v.TrafficSpeed < 20 {
		return LabelHigh
	}
	if v.TrafficSpeed < 50 || v.WindSpeed > 8 {
		return LabelMedium
	}
	return LabelLow
}

// FallbackLabel is the live-scoring fallback used when a user has no trained
// model yet. Slightly coarser than HeuristicLabel: traffic speed alone
// decides the medium tier.
func FallbackLabel(v FeatureVector) string {
	if v.Visibility < 4000 || v.WindSpeed > 12 {
		return LabelHigh
	}
	if v.TrafficSpeed < 50 {
		return LabelMedium
	}
	return LabelLow
}
