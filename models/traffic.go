package models

// TrafficReport is the normalized flow reading produced by the TomTom
// adapter. Speed is clamped to the expected limit for the road type and
// JamFactor is approximated from speed/limit when the provider omits it.
type TrafficReport struct {
	Speed      *float64 `json:"speed"`
	FreeSpeed  *float64 `json:"free_speed"`
	RoadType   string   `json:"road_type"`
	JamFactor  *float64 `json:"jam_factor"`
	Confidence *float64 `json:"confidence"`
	Status     string   `json:"status"`
	Source     string   `json:"source"`
}
