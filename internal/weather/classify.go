package weather

import (
	"strings"

	"go.uber.org/zap"

	"github.com/i474232898/forecast-normalizer/internal/common"
	"github.com/i474232898/forecast-normalizer/internal/metrics"
)

// Per-period fallbacks used when a field is absent from the provider feed.
const (
	DefaultTemperatureF  = 70
	DefaultWindSpeedMph  = 5
	DefaultShortForecast = "No forecast available"
)

// Extraction is the result of walking a period list: the classified periods,
// running daytime ranges, per-bucket narrative fragments and any non-fatal
// parse failures.
type Extraction struct {
	Day   []Period
	Night []Period

	Temperature RangeAccumulator
	Wind        RangeAccumulator

	DayNarrative   []string
	NightNarrative []string

	ParseFailures []FieldParseFailure
	Dropped       int
}

// Classified is the number of periods that made it into either bucket.
func (e Extraction) Classified() int {
	return len(e.Day) + len(e.Night)
}

// ClassifyDayPart buckets a period by name. Anything that is not clearly a
// night period counts as day.
func ClassifyDayPart(name string) DayPart {
	if common.HasAnyFold(name, "night") || strings.EqualFold(strings.TrimSpace(name), "tonight") {
		return DayPartNight
	}
	return DayPartDay
}

// ExtractPeriods parses and classifies raw periods in order. Only day periods
// feed the numeric ranges; night periods only contribute narrative.
func ExtractPeriods(raw []map[string]any, logger *zap.Logger) Extraction {
	if logger == nil {
		logger = zap.NewNop()
	}

	var ex Extraction
	for i, m := range raw {
		if m == nil {
			logger.Warn("period is not an object, skipping", zap.Int("index", i))
			ex.Dropped++
			continue
		}

		p, failures, ok := parsePeriod(m, logger)
		if !ok {
			logger.Warn("period name is missing, skipping", zap.Int("index", i))
			ex.Dropped++
			continue
		}

		for _, f := range failures {
			logger.Warn("could not parse period field",
				zap.String("period", f.Period),
				zap.String("field", f.Field),
				zap.Any("value", f.Value),
				zap.Error(f.Err),
			)
			metrics.FieldParseFailuresTotal.WithLabelValues(f.Field).Inc()
		}
		ex.ParseFailures = append(ex.ParseFailures, failures...)

		switch p.Part {
		case DayPartNight:
			ex.Night = append(ex.Night, p)
			ex.NightNarrative = append(ex.NightNarrative, p.ShortForecast)
		default:
			ex.Day = append(ex.Day, p)
			ex.DayNarrative = append(ex.DayNarrative, p.ShortForecast)
			if p.TemperatureOK {
				ex.Temperature.Add(p.Temperature)
			}
			if p.WindSpeedOK {
				ex.Wind.Add(p.WindSpeed)
			}
		}
	}

	return ex
}

// parsePeriod applies the per-field defaults and tolerant parsing. ok is false
// when the period has no usable name.
func parsePeriod(m map[string]any, logger *zap.Logger) (Period, []FieldParseFailure, bool) {
	name, ok := stringField(m, "name")
	if !ok {
		return Period{}, nil, false
	}

	p := Period{Name: name, Part: ClassifyDayPart(name)}
	var failures []FieldParseFailure

	if v, present := m["temperature"]; !present || v == nil {
		logger.Warn("temperature is missing, using default",
			zap.String("period", name), zap.Int("default", DefaultTemperatureF))
		p.Temperature, p.TemperatureOK = DefaultTemperatureF, true
	} else if t, err := parseWholeNumber(v); err != nil {
		failures = append(failures, FieldParseFailure{Period: name, Field: "temperature", Value: v, Err: err})
	} else {
		p.Temperature, p.TemperatureOK = t, true
	}

	if v, present := m["windSpeed"]; !present || v == nil {
		logger.Warn("wind speed is missing, using default",
			zap.String("period", name), zap.Int("default", DefaultWindSpeedMph))
		p.WindSpeed, p.WindSpeedOK = DefaultWindSpeedMph, true
	} else if w, err := parseWindSpeed(v); err != nil {
		failures = append(failures, FieldParseFailure{Period: name, Field: "windSpeed", Value: v, Err: err})
	} else {
		p.WindSpeed, p.WindSpeedOK = w, true
	}

	if text, ok := stringField(m, "shortForecast"); ok {
		p.ShortForecast = text
	} else {
		p.ShortForecast = DefaultShortForecast
	}

	return p, failures, true
}
