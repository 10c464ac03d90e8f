package risk

import (
	"errors"

	"github.com/Techmo404/SafeRoad-Backend/models"
)

const (
	// DefaultVisibility is assumed when the weather provider omits the field.
	DefaultVisibility = 10000.0

	// FeatureCount is the width of the numeric vector fed to the classifier.
	FeatureCount = 5
)

var ErrInvalidCoordinates = errors.New("valid lat/lng coordinates are required")

// FeatureVector is the canonical numeric representation of one risk
// instance. Temperature stays nil when the provider never reported it; every
// other field is defaulted here so nothing downstream has to handle absence.
type FeatureVector struct {
	Temperature  *float64 `json:"temperature"`
	Visibility   float64  `json:"visibility"`
	WindSpeed    float64  `json:"wind_speed"`
	TrafficSpeed float64  `json:"traffic_speed"`
	JamFactor    float64  `json:"jam_factor"`
}

// ExtractFeatures normalizes raw provider payloads into a FeatureVector.
// Either report may be nil; missing optional fields take their defaults.
func ExtractFeatures(weather *models.WeatherReport, traffic *models.TrafficReport) FeatureVector {
	v := FeatureVector{Visibility: DefaultVisibility}

	if weather != nil {
		if weather.Main != nil && weather.Main.Temp != nil {
			t := *weather.Main.Temp
			v.Temperature = &t
		}
		if weather.Visibility != nil {
			v.Visibility = *weather.Visibility
		}
		if weather.Wind != nil && weather.Wind.Speed != nil {
			v.WindSpeed = *weather.Wind.Speed
		}
	}

	if traffic != nil {
		if traffic.Speed != nil {
			v.TrafficSpeed = *traffic.Speed
		}
		if traffic.JamFactor != nil {
			v.JamFactor = *traffic.JamFactor
		}
	}

	return v
}

// FromRecord rebuilds the vector stored on a training record.
func FromRecord(r models.RiskRecord) FeatureVector {
	return FeatureVector{
		Temperature:  r.Temperature,
		Visibility:   r.Visibility,
		WindSpeed:    r.WindSpeed,
		TrafficSpeed: r.TrafficSpeed,
		JamFactor:    r.JamFactor,
	}
}

// Values materializes the vector for the classifier. An unknown temperature
// becomes 0 only here, at the model boundary.
func (v FeatureVector) Values() []float64 {
	temp := 0.0
	if v.Temperature != nil {
		temp = *v.Temperature
	}
	return []float64{temp, v.Visibility, v.WindSpeed, v.TrafficSpeed, v.JamFactor}
}

// ValidateCoordinates rejects malformed lat/lng before any provider call.
func ValidateCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return ErrInvalidCoordinates
	}
	return nil
}
