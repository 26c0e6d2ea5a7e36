package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/i474232898/forecast-normalizer/internal/weather"
)

// DefaultUserAgent identifies the service to api.weather.gov, which rejects
// requests without one.
const DefaultUserAgent = "forecast-normalizer (ops@example.com)"

const nwsName = "nws"

var errNotAnObject = errors.New("document is not a JSON object")

// NWSOptions configures an NWSClient.
type NWSOptions struct {
	UserAgent string
	Backoff   BackoffConfig
}

// NWSClient fetches National Weather Service documents. It implements weather.Fetcher.
type NWSClient struct {
	name    string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

func NewNWSClient(client *http.Client, opts NWSOptions, logger *zap.Logger) *NWSClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Backoff.InitialInterval <= 0 {
		opts.Backoff = BackoffConfig{
			MaxRetries:      2,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		}
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        nwsName,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	rc := resty.NewWithClient(client).
		SetHeader("User-Agent", opts.UserAgent).
		SetHeader("Accept", "application/geo+json")

	return &NWSClient{
		name: nwsName,
		httpCfg: HTTPClientConfig{
			Client:  rc,
			Backoff: opts.Backoff,
		},
		circuit: cb,
		logger:  logger,
	}
}

// Fetch retrieves url and decodes it as a generic JSON object. A JSON null
// body yields a nil document.
func (c *NWSClient) Fetch(ctx context.Context, url string) (weather.RawDocument, error) {
	resp, err := doRequestWithResilience(ctx, c.httpCfg, c.circuit, c.logger, url)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.name, err)
	}

	doc, err := decodeDocument(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("%s: decoding %s: %w", c.name, url, err)
	}
	return doc, nil
}

func decodeDocument(body []byte) (weather.RawDocument, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	switch doc := v.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return weather.RawDocument(doc), nil
	default:
		return nil, fmt.Errorf("%w: got %T", errNotAnObject, v)
	}
}
