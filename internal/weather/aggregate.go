package weather

import (
	"math"
	"strings"

	"github.com/golang-sql/civil"
)

// Fallback ranges used when no daytime period carried a parseable value (imperial units).
const (
	FallbackHighF      = 75
	FallbackLowF       = 65
	FallbackWindMaxMph = 10
	FallbackWindMinMph = 5
)

const (
	NoDayForecast   = "No day forecast available"
	NoNightForecast = "No night forecast available"

	narrativeSeparator = " – "
	fragmentJoiner     = "; "
)

// DefaultWindDirection is reported for every summary. Provider periods carry a
// direction, but it is not aggregated yet.
const DefaultWindDirection = "NW"

// DefaultPrecipitationProbability is reported until a real probability field is sourced.
const DefaultPrecipitationProbability = 80

const kphPerMph = 1.60934

// AggregateOptions controls the final assembly step.
type AggregateOptions struct {
	Metric                   bool
	WindDirection            string
	PrecipitationProbability int
}

// Aggregate reduces an extraction into a summary: fallback ranges, narrative,
// then unit conversion as the last step.
func Aggregate(ex Extraction, coord Coordinate, date civil.Date, opts AggregateOptions) ForecastSummary {
	temp := TemperatureRange{High: FallbackHighF, Low: FallbackLowF}
	if lo, hi, ok := ex.Temperature.Bounds(); ok {
		temp = TemperatureRange{High: hi, Low: lo}
	}

	wind := WindRange{Max: FallbackWindMaxMph, Min: FallbackWindMinMph}
	if lo, hi, ok := ex.Wind.Bounds(); ok {
		wind = WindRange{Max: hi, Min: lo}
	}

	if opts.Metric {
		temp.High = FahrenheitToCelsius(temp.High)
		temp.Low = FahrenheitToCelsius(temp.Low)
		wind.Max = MphToKph(wind.Max)
		wind.Min = MphToKph(wind.Min)
	}

	wind.Direction = opts.WindDirection
	if wind.Direction == "" {
		wind.Direction = DefaultWindDirection
	}

	return ForecastSummary{
		Latitude:                 coord.Latitude,
		Longitude:                coord.Longitude,
		Date:                     date,
		Forecast:                 Narrative(ex.DayNarrative, ex.NightNarrative),
		Temperature:              temp,
		Wind:                     wind,
		PrecipitationProbability: opts.PrecipitationProbability,
	}
}

// Narrative renders "Day: ... – Night: ..." with placeholders for empty buckets.
func Narrative(day, night []string) string {
	dayText := strings.Join(day, fragmentJoiner)
	if dayText == "" {
		dayText = NoDayForecast
	}
	nightText := strings.Join(night, fragmentJoiner)
	if nightText == "" {
		nightText = NoNightForecast
	}
	return "Day: " + dayText + narrativeSeparator + "Night: " + nightText
}

// FahrenheitToCelsius rounds to the nearest degree, halves away from zero.
func FahrenheitToCelsius(f int) int {
	return int(math.Round(float64(f-32) * 5 / 9))
}

// MphToKph rounds to the nearest whole kph.
func MphToKph(mph int) int {
	return int(math.Round(float64(mph) * kphPerMph))
}
