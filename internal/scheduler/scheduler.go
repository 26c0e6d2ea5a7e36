package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/golang-sql/civil"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/i474232898/forecast-normalizer/internal/metrics"
	"github.com/i474232898/forecast-normalizer/internal/weather"
)

const probeTimeout = 30 * time.Second

// Normalizer is the part of the engine the probe exercises.
type Normalizer interface {
	NormalizeForecast(ctx context.Context, coord weather.Coordinate, date *civil.Date, metric bool) (weather.ForecastSummary, error)
}

// ProbeStatus is the outcome of the most recent probe run.
type ProbeStatus struct {
	RunID       string             `json:"runId"`
	Location    weather.Coordinate `json:"location"`
	LastRun     time.Time          `json:"lastRun"`
	LastSuccess *time.Time         `json:"lastSuccess,omitempty"`
	LastError   string             `json:"lastError,omitempty"`
	Healthy     bool               `json:"healthy"`
}

// Scheduler periodically normalizes a forecast for one configured coordinate.
// The outcome of the last run is reported on /health.
type Scheduler struct {
	scheduler  *gocron.Scheduler
	normalizer Normalizer
	location   *weather.Coordinate
	interval   time.Duration
	logger     *zap.Logger

	mu     sync.RWMutex
	status *ProbeStatus
}

// New creates a new Scheduler. A nil location disables probing.
func New(location *weather.Coordinate, interval time.Duration, normalizer Normalizer, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		scheduler:  gocron.NewScheduler(time.UTC),
		normalizer: normalizer,
		location:   location,
		interval:   interval,
		logger:     logger,
	}
}

// Start schedules the probe job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.location == nil {
		s.logger.Info("scheduler: no probe location configured; nothing to schedule")
		return nil
	}

	interval := s.interval
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	_, err := s.scheduler.Every(interval).SingletonMode().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		defer cancel()
		_ = s.RunOnce(ctx)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce runs a single probe and records its outcome.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	if s.location == nil {
		return nil
	}

	runID := uuid.NewString()
	logger := s.logger.With(zap.String("run_id", runID))
	logger.Info("scheduler: running upstream probe",
		zap.Float64("latitude", s.location.Latitude),
		zap.Float64("longitude", s.location.Longitude),
	)

	_, err := s.normalizer.NormalizeForecast(ctx, *s.location, nil, false)
	now := time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	next := ProbeStatus{
		RunID:    runID,
		Location: *s.location,
		LastRun:  now,
	}
	if s.status != nil {
		next.LastSuccess = s.status.LastSuccess
	}

	if err != nil {
		logger.Warn("scheduler: upstream probe failed", zap.Error(err))
		metrics.ProbeRunsTotal.WithLabelValues("error").Inc()
		next.LastError = err.Error()
	} else {
		logger.Info("scheduler: upstream probe succeeded")
		metrics.ProbeRunsTotal.WithLabelValues("ok").Inc()
		next.LastSuccess = &now
		next.Healthy = true
	}

	s.status = &next
	return err
}

// Status returns the last probe outcome; ok is false before the first run.
func (s *Scheduler) Status() (ProbeStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.status == nil {
		return ProbeStatus{}, false
	}
	return *s.status, true
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
