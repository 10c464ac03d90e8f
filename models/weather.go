package models

// WeatherReport mirrors the OpenWeather current-weather payload for the
// fields this system reads. Optional fields are pointers so absence is
// distinguishable from zero.
type WeatherReport struct {
	Weather    []WeatherCondition `json:"weather"`
	Main       *WeatherMain       `json:"main"`
	Visibility *float64           `json:"visibility"`
	Wind       *WeatherWind       `json:"wind"`
}

type WeatherCondition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

type WeatherMain struct {
	Temp     *float64 `json:"temp"`
	Humidity *float64 `json:"humidity"`
}

type WeatherWind struct {
	Speed *float64 `json:"speed"`
}

// Condition returns the primary weather category (e.g. "Rain"), or "" when
// the provider sent none.
func (w *WeatherReport) Condition() string {
	if w == nil || len(w.Weather) == 0 {
		return ""
	}
	return w.Weather[0].Main
}
