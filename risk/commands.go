package risk

import (
	"fmt"
	"strings"

	"github.com/Techmo404/SafeRoad-Backend/models"
)

const (
	// WeatherScoreCap bounds the weather rule's contribution.
	WeatherScoreCap = 30
	// TrafficScoreCap bounds the traffic rule's contribution.
	TrafficScoreCap = 50
)

// Assessment is the output of one scoring rule: a bounded score and the
// alerts that fired, in evaluation order.
type Assessment struct {
	Score  int      `json:"score"`
	Alerts []string `json:"alerts"`
}

// Context carries the raw provider payloads the rules evaluate. Rules read
// the payloads directly because they also need categorical fields (weather
// condition, data confidence) that the numeric FeatureVector drops.
type Context struct {
	Weather *models.WeatherReport
	Traffic *models.TrafficReport
}

// Rule is the common signature shared by the fixed set of scoring rules.
// Rules are pure: same context in, same assessment out.
type Rule func(Context) Assessment

// WeatherRisk scores weather-related road risk on a 0-30 scale. Conditions
// are independent and additive; alert order matches evaluation order.
func WeatherRisk(ctx Context) Assessment {
	condition := strings.ToLower(ctx.Weather.Condition())

	var temp *float64
	visibility := DefaultVisibility
	windSpeed := 0.0

	if ctx.Weather != nil {
		if ctx.Weather.Main != nil {
			temp = ctx.Weather.Main.Temp
		}
		if ctx.Weather.Visibility != nil {
			visibility = *ctx.Weather.Visibility
		}
		if ctx.Weather.Wind != nil && ctx.Weather.Wind.Speed != nil {
			windSpeed = *ctx.Weather.Wind.Speed
		}
	}

	alerts := []string{}
	score := 0

	switch condition {
	case "rain", "snow", "thunderstorm":
		alerts = append(alerts, fmt.Sprintf("dangerous weather: %s", condition))
		score += 12
	}

	if visibility < 3000 {
		alerts = append(alerts, "low visibility")
		score += 8
	}

	if temp != nil && *temp < 5 {
		alerts = append(alerts, "ice risk")
		score += 5
	}

	if temp != nil && *temp > 33 {
		alerts = append(alerts, "extreme heat — fatigue risk")
		score += 5
	}

	if windSpeed > 30 {
		alerts = append(alerts, "strong wind — risk for motorcycles/cyclists")
		score += 8
	}

	if score > WeatherScoreCap {
		score = WeatherScoreCap
	}

	return Assessment{Score: score, Alerts: alerts}
}

// TrafficRisk scores congestion-related risk on a 0-50 scale. Without both a
// current and a free-flow speed there is nothing trustworthy to score, so it
// short-circuits to a single no-data alert.
func TrafficRisk(ctx Context) Assessment {
	if ctx.Traffic == nil || ctx.Traffic.Speed == nil || ctx.Traffic.FreeSpeed == nil {
		return Assessment{Score: 0, Alerts: []string{"no reliable traffic data"}}
	}

	jam := ctx.Traffic.JamFactor
	confidence := 1.0
	if ctx.Traffic.Confidence != nil {
		confidence = *ctx.Traffic.Confidence
	}

	alerts := []string{}

	jamValue := 0.0
	if jam != nil {
		jamValue = *jam
	}
	if jamValue > 10 {
		jamValue = 10
	}
	score := int(jamValue * 5)

	if jam != nil {
		switch {
		case *jam >= 8:
			alerts = append(alerts, "severe congestion")
		case *jam >= 5:
			alerts = append(alerts, "heavy traffic")
		case *jam >= 3:
			alerts = append(alerts, "slow circulation")
		}
	}

	if confidence < 0.50 {
		alerts = append(alerts, "unreliable data — verify real traffic conditions")
		score += 5
	}

	if score > TrafficScoreCap {
		score = TrafficScoreCap
	}

	return Assessment{Score: score, Alerts: alerts}
}

// Rules is the closed set of scoring rules, in the order their scores and
// alerts are combined.
var Rules = []Rule{WeatherRisk, TrafficRisk}

// Evaluate runs every rule and sums their bounded scores. The combined score
// tops out at WeatherScoreCap+TrafficScoreCap.
func Evaluate(ctx Context) (int, []string) {
	total := 0
	var alerts []string
	for _, rule := range Rules {
		a := rule(ctx)
		total += a.Score
		alerts = append(alerts, a.Alerts...)
	}
	return total, alerts
}
