package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-sql/civil"
	"go.uber.org/zap/zaptest"

	"github.com/i474232898/forecast-normalizer/internal/weather"
)

type stubNormalizer struct {
	err   error
	calls int
	last  weather.Coordinate
}

func (s *stubNormalizer) NormalizeForecast(_ context.Context, coord weather.Coordinate, _ *civil.Date, _ bool) (weather.ForecastSummary, error) {
	s.calls++
	s.last = coord
	if s.err != nil {
		return weather.ForecastSummary{}, s.err
	}
	return weather.ForecastSummary{Latitude: coord.Latitude, Longitude: coord.Longitude}, nil
}

var topeka = &weather.Coordinate{Latitude: 39.0473, Longitude: -95.6752}

func TestRunOnceRecordsSuccess(t *testing.T) {
	stub := &stubNormalizer{}
	s := New(topeka, time.Minute, stub, zaptest.NewLogger(t))

	if _, ok := s.Status(); ok {
		t.Fatal("expected no status before the first run")
	}

	if err := s.RunOnce(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	status, ok := s.Status()
	if !ok {
		t.Fatal("expected status after a run")
	}
	if !status.Healthy || status.LastSuccess == nil || status.LastError != "" {
		t.Fatalf("unexpected status: %+v", status)
	}
	if status.RunID == "" {
		t.Fatal("expected a run id")
	}
	if stub.last != *topeka {
		t.Fatalf("expected probe coordinate to be used, got %+v", stub.last)
	}
}

func TestRunOnceKeepsLastSuccessOnFailure(t *testing.T) {
	stub := &stubNormalizer{}
	s := New(topeka, time.Minute, stub, zaptest.NewLogger(t))

	if err := s.RunOnce(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first, _ := s.Status()

	stub.err = errors.New("upstream down")
	if err := s.RunOnce(context.Background()); err == nil {
		t.Fatal("expected the probe error to be returned")
	}

	second, _ := s.Status()
	if second.Healthy {
		t.Fatal("expected unhealthy status after a failed run")
	}
	if second.LastError != "upstream down" {
		t.Fatalf("unexpected last error %q", second.LastError)
	}
	if second.LastSuccess == nil || !second.LastSuccess.Equal(*first.LastSuccess) {
		t.Fatalf("expected last success to carry over, got %v", second.LastSuccess)
	}
	if second.RunID == first.RunID {
		t.Fatal("expected a new run id per run")
	}
}

func TestDisabledWithoutLocation(t *testing.T) {
	stub := &stubNormalizer{}
	s := New(nil, time.Minute, stub, nil)

	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Stop()

	if err := s.RunOnce(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.calls != 0 {
		t.Fatalf("expected no probe calls, got %d", stub.calls)
	}
	if _, ok := s.Status(); ok {
		t.Fatal("expected no status when disabled")
	}
}
