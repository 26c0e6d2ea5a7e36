package weather

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-sql/civil"
	"go.uber.org/zap"

	"github.com/i474232898/forecast-normalizer/internal/metrics"
)

// DefaultBaseURL is the National Weather Service API root.
const DefaultBaseURL = "https://api.weather.gov"

// Config is the immutable engine configuration.
type Config struct {
	// BaseURL is the provider root used to build points URLs.
	BaseURL string

	// WindDirection overrides DefaultWindDirection when set.
	WindDirection string

	// PrecipitationProbability overrides DefaultPrecipitationProbability when non-nil.
	PrecipitationProbability *int
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces time.Now for resolving the default date.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// Service is the forecast normalization engine. It holds only read-only state
// and is safe for concurrent use.
type Service struct {
	cfg     Config
	fetcher Fetcher
	logger  *zap.Logger
	now     func() time.Time
}

// NewService creates a new Service.
func NewService(cfg Config, fetcher Fetcher, logger *zap.Logger, opts ...Option) *Service {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Service{
		cfg:     cfg,
		fetcher: fetcher,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PointsURL builds the provider points URL for a coordinate.
func (s *Service) PointsURL(coord Coordinate) string {
	return fmt.Sprintf("%s/points/%s,%s", s.cfg.BaseURL, formatFloat(coord.Latitude), formatFloat(coord.Longitude))
}

// ResolveForecastSource fetches the points document and returns its forecast URL.
func (s *Service) ResolveForecastSource(ctx context.Context, coord Coordinate) (string, error) {
	pointsURL := s.PointsURL(coord)
	s.logger.Info("fetching points document", zap.String("url", pointsURL))

	doc, err := s.fetcher.Fetch(ctx, pointsURL)
	if err != nil {
		return "", s.fail(newNormalizationError(ErrTransport, "fetching points document", err))
	}
	if doc == nil {
		return "", s.fail(newNormalizationError(ErrSourceUnavailable, "the weather data response is null", nil))
	}

	props, ok := doc.Properties()
	if !ok {
		return "", s.fail(newNormalizationError(ErrSourceUnavailable, "properties not found in the response", nil))
	}

	forecastURL, ok := stringField(props, "forecast")
	if !ok || forecastURL == "" {
		return "", s.fail(newNormalizationError(ErrSourceUnavailable, "forecast URL not found in the response", nil))
	}
	return forecastURL, nil
}

// FetchForecastDocument fetches the forecast document and checks that it carries periods.
func (s *Service) FetchForecastDocument(ctx context.Context, url string) (RawDocument, error) {
	doc, _, err := s.fetchPeriods(ctx, url)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *Service) fetchPeriods(ctx context.Context, url string) (RawDocument, []map[string]any, error) {
	s.logger.Info("fetching forecast document", zap.String("url", url))

	doc, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, nil, s.fail(newNormalizationError(ErrTransport, "fetching forecast document", err))
	}
	if doc == nil {
		return nil, nil, s.fail(newNormalizationError(ErrDocumentUnavailable, "the forecast data response is null", nil))
	}

	props, ok := doc.Properties()
	if !ok {
		return nil, nil, s.fail(newNormalizationError(ErrDocumentUnavailable, "forecast properties not found in the response", nil))
	}

	periods, ok := periodList(props["periods"])
	if !ok || len(periods) == 0 {
		return nil, nil, s.fail(newNormalizationError(ErrEmptyPeriods, "the forecast periods data is missing or empty", nil))
	}
	return doc, periods, nil
}

// NormalizeForecast resolves, fetches, classifies and aggregates a forecast for
// one coordinate. A nil date means today according to the engine clock.
func (s *Service) NormalizeForecast(ctx context.Context, coord Coordinate, date *civil.Date, metric bool) (summary ForecastSummary, err error) {
	defer func() {
		metrics.NormalizationsTotal.WithLabelValues(reasonLabel(err)).Inc()
	}()

	forecastURL, err := s.ResolveForecastSource(ctx, coord)
	if err != nil {
		return ForecastSummary{}, err
	}

	_, periods, err := s.fetchPeriods(ctx, forecastURL)
	if err != nil {
		return ForecastSummary{}, err
	}

	ex := ExtractPeriods(periods, s.logger)
	if ex.Classified() == 0 {
		return ForecastSummary{}, s.fail(newNormalizationError(ErrEmptyPeriods, "no named forecast periods in the response", nil))
	}
	if ex.Temperature.Empty() {
		s.logger.Warn("no valid temperature data found, using defaults")
	}
	if ex.Wind.Empty() {
		s.logger.Warn("no valid wind speed data found, using defaults")
	}

	resolved := civil.DateOf(s.now())
	if date != nil {
		resolved = *date
	}

	summary = Aggregate(ex, coord, resolved, s.aggregateOptions(metric))

	s.logger.Info("generated forecast",
		zap.Float64("latitude", coord.Latitude),
		zap.Float64("longitude", coord.Longitude),
		zap.String("date", resolved.String()),
		zap.Bool("metric", metric),
		zap.Int("day_periods", len(ex.Day)),
		zap.Int("night_periods", len(ex.Night)),
		zap.Int("parse_failures", len(ex.ParseFailures)),
	)
	return summary, nil
}

func (s *Service) aggregateOptions(metric bool) AggregateOptions {
	pop := DefaultPrecipitationProbability
	if s.cfg.PrecipitationProbability != nil {
		pop = *s.cfg.PrecipitationProbability
	}
	return AggregateOptions{
		Metric:                   metric,
		WindDirection:            s.cfg.WindDirection,
		PrecipitationProbability: pop,
	}
}

func (s *Service) fail(err *NormalizationError) error {
	s.logger.Error("forecast normalization failed", zap.Error(err))
	return err
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
