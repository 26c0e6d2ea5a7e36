package weather

import (
	"strings"
	"testing"

	"github.com/golang-sql/civil"
)

var testDate = civil.Date{Year: 2024, Month: 5, Day: 1}

func extractionWith(temps, winds []int) Extraction {
	var ex Extraction
	for _, v := range temps {
		ex.Temperature.Add(v)
	}
	for _, v := range winds {
		ex.Wind.Add(v)
	}
	return ex
}

func TestConversions(t *testing.T) {
	celsius := map[int]int{
		86:  30,
		75:  24,
		68:  20,
		32:  0,
		212: 100,
		-40: -40,
		0:   -18,
	}
	for f, want := range celsius {
		if got := FahrenheitToCelsius(f); got != want {
			t.Errorf("FahrenheitToCelsius(%d) = %d, want %d", f, got, want)
		}
	}

	kph := map[int]int{
		10: 16,
		5:  8,
		0:  0,
		25: 40,
	}
	for mph, want := range kph {
		if got := MphToKph(mph); got != want {
			t.Errorf("MphToKph(%d) = %d, want %d", mph, got, want)
		}
	}
}

func TestAggregateUsesTrueRanges(t *testing.T) {
	ex := extractionWith([]int{71, 84, 77}, []int{12, 4})

	got := Aggregate(ex, Coordinate{}, testDate, AggregateOptions{PrecipitationProbability: 80})

	if got.Temperature != (TemperatureRange{High: 84, Low: 71}) {
		t.Fatalf("unexpected temperature: %+v", got.Temperature)
	}
	if got.Wind.Max != 12 || got.Wind.Min != 4 {
		t.Fatalf("unexpected wind: %+v", got.Wind)
	}
}

func TestAggregateFallbacks(t *testing.T) {
	got := Aggregate(Extraction{}, Coordinate{}, testDate, AggregateOptions{})

	if got.Temperature != (TemperatureRange{High: FallbackHighF, Low: FallbackLowF}) {
		t.Fatalf("expected fallback temperature, got %+v", got.Temperature)
	}
	if got.Wind.Max != FallbackWindMaxMph || got.Wind.Min != FallbackWindMinMph {
		t.Fatalf("expected fallback wind, got %+v", got.Wind)
	}
	if got.Wind.Direction != DefaultWindDirection {
		t.Fatalf("expected default direction, got %q", got.Wind.Direction)
	}
	want := "Day: " + NoDayForecast + " – Night: " + NoNightForecast
	if got.Forecast != want {
		t.Fatalf("expected %q, got %q", want, got.Forecast)
	}
}

func TestAggregateMetricConvertsAfterDefaulting(t *testing.T) {
	got := Aggregate(Extraction{}, Coordinate{}, testDate, AggregateOptions{Metric: true})

	if got.Temperature != (TemperatureRange{High: 24, Low: 18}) {
		t.Fatalf("expected converted fallback temperature 24/18, got %+v", got.Temperature)
	}
	if got.Wind.Max != 16 || got.Wind.Min != 8 {
		t.Fatalf("expected converted fallback wind 16/8, got %+v", got.Wind)
	}
}

func TestAggregateCopiesInputs(t *testing.T) {
	ex := extractionWith([]int{60}, []int{3})
	ex.DayNarrative = []string{"Sunny", "Mostly Sunny"}
	ex.NightNarrative = []string{"Clear"}
	coord := Coordinate{Latitude: 40.7128, Longitude: -74.006}

	got := Aggregate(ex, coord, testDate, AggregateOptions{WindDirection: "SE", PrecipitationProbability: 35})

	if got.Latitude != coord.Latitude || got.Longitude != coord.Longitude {
		t.Fatalf("unexpected coordinate: %v,%v", got.Latitude, got.Longitude)
	}
	if got.Date != testDate {
		t.Fatalf("unexpected date: %v", got.Date)
	}
	if got.Wind.Direction != "SE" || got.PrecipitationProbability != 35 {
		t.Fatalf("options not applied: %+v pop=%d", got.Wind, got.PrecipitationProbability)
	}
	if got.Forecast != "Day: Sunny; Mostly Sunny – Night: Clear" {
		t.Fatalf("unexpected narrative: %q", got.Forecast)
	}
}

func TestNarrativeSeparator(t *testing.T) {
	got := Narrative([]string{"Sunny"}, nil)
	if !strings.HasPrefix(got, "Day: Sunny") || !strings.Contains(got, " – Night: ") {
		t.Fatalf("unexpected narrative: %q", got)
	}
}
