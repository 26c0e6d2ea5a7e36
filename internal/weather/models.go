package weather

import (
	"github.com/golang-sql/civil"
)

// DayPart buckets a forecast period as daytime or nighttime.
type DayPart string

const (
	DayPartDay   DayPart = "day"
	DayPartNight DayPart = "night"
)

// Coordinate is a geographic point. Range checks happen at the HTTP boundary.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Period is a provider period after tolerant parsing and classification.
// Temperature and WindSpeed are only meaningful when their *OK flag is set.
type Period struct {
	Name          string
	Part          DayPart
	Temperature   int
	TemperatureOK bool
	WindSpeed     int
	WindSpeedOK   bool
	ShortForecast string
}

// TemperatureRange holds the daytime high/low.
type TemperatureRange struct {
	High int `json:"high"`
	Low  int `json:"low"`
}

// WindRange holds the daytime wind speed bounds.
type WindRange struct {
	Max       int    `json:"max"`
	Min       int    `json:"min"`
	Direction string `json:"direction"`
}

// ForecastSummary is the normalized result returned to callers.
// Field names are consumed by existing clients and must not change.
type ForecastSummary struct {
	Latitude                 float64          `json:"latitude"`
	Longitude                float64          `json:"longitude"`
	Date                     civil.Date       `json:"date"`
	Forecast                 string           `json:"forecast"`
	Temperature              TemperatureRange `json:"temperature"`
	Wind                     WindRange        `json:"wind"`
	PrecipitationProbability int              `json:"pop"`
}
