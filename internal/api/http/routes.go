package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/golang-sql/civil"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/i474232898/forecast-normalizer/internal/geocode"
	"github.com/i474232898/forecast-normalizer/internal/scheduler"
	"github.com/i474232898/forecast-normalizer/internal/weather"
)

var validate = validator.New()

// Forecaster produces normalized summaries; *weather.Service implements it.
type Forecaster interface {
	NormalizeForecast(ctx context.Context, coord weather.Coordinate, date *civil.Date, metric bool) (weather.ForecastSummary, error)
}

// ProbeReporter exposes the last upstream probe outcome.
type ProbeReporter interface {
	Status() (scheduler.ProbeStatus, bool)
}

// Deps are the collaborators the routes need. Geocoder and Probe are optional.
type Deps struct {
	Forecaster Forecaster
	Geocoder   geocode.Geocoder
	Probe      ProbeReporter
}

// ErrorHandler renders every error as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		resp := fiber.Map{
			"status":  "ok",
			"service": "forecast-normalizer",
		}
		if deps.Probe != nil {
			if st, ok := deps.Probe.Status(); ok {
				resp["upstream"] = st
				if !st.Healthy {
					resp["status"] = "degraded"
				}
			}
		}
		return c.JSON(resp)
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Path form kept for existing clients: /weather/forecast/37.7749,-122.4194
	app.Get("/weather/forecast/:coords", func(c *fiber.Ctx) error {
		q, err := parsePathQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return respondForecast(c, deps.Forecaster, q)
	})

	v1 := app.Group("/api/v1")

	v1.Get("/weather/forecast", func(c *fiber.Ctx) error {
		q, err := parseQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return respondForecast(c, deps.Forecaster, q)
	})

	v1.Get("/weather/forecast/address", func(c *fiber.Ctx) error {
		if deps.Geocoder == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "address lookup is not configured")
		}

		addr, err := parseAddress(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		opts, err := parseOptions(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		coord, err := deps.Geocoder.Locate(c.UserContext(), addr)
		if err != nil {
			switch {
			case errors.Is(err, geocode.ErrEmptyAddress):
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			case errors.Is(err, geocode.ErrNotFound):
				return fiber.NewError(fiber.StatusNotFound, "no coordinates found for requested address")
			default:
				return fiber.NewError(fiber.StatusBadGateway, "failed to geocode address")
			}
		}

		opts.Latitude, opts.Longitude = coord.Latitude, coord.Longitude
		if err := validateQuery(opts); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return respondForecast(c, deps.Forecaster, opts)
	})
}

func respondForecast(c *fiber.Ctx, f Forecaster, q forecastQuery) error {
	summary, err := f.NormalizeForecast(c.UserContext(), q.coordinate(), q.Date, q.Metric)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error fetching weather data: "+err.Error())
	}
	return c.JSON(summary)
}

// forecastQuery holds the parameters for a forecast request.
type forecastQuery struct {
	Latitude  float64 `validate:"gte=-90,lte=90"`
	Longitude float64 `validate:"gte=-180,lte=180"`
	Date      *civil.Date
	Metric    bool
}

func (q forecastQuery) coordinate() weather.Coordinate {
	return weather.Coordinate{Latitude: q.Latitude, Longitude: q.Longitude}
}

func parsePathQuery(c *fiber.Ctx) (forecastQuery, error) {
	raw, err := url.PathUnescape(c.Params("coords"))
	if err != nil {
		return forecastQuery{}, errors.New("invalid coordinates; use lat,lon")
	}
	latStr, lonStr, ok := strings.Cut(raw, ",")
	if !ok {
		return forecastQuery{}, errors.New("invalid coordinates; use lat,lon")
	}
	return buildQuery(c, latStr, lonStr)
}

func parseQuery(c *fiber.Ctx) (forecastQuery, error) {
	latStr, lonStr := c.Query("lat"), c.Query("lon")
	if latStr == "" || lonStr == "" {
		return forecastQuery{}, errors.New("lat and lon query parameters are required")
	}
	return buildQuery(c, latStr, lonStr)
}

func buildQuery(c *fiber.Ctx, latStr, lonStr string) (forecastQuery, error) {
	q, err := parseOptions(c)
	if err != nil {
		return q, err
	}

	if q.Latitude, err = strconv.ParseFloat(strings.TrimSpace(latStr), 64); err != nil {
		return q, fmt.Errorf("invalid latitude %q", latStr)
	}
	if q.Longitude, err = strconv.ParseFloat(strings.TrimSpace(lonStr), 64); err != nil {
		return q, fmt.Errorf("invalid longitude %q", lonStr)
	}

	return q, validateQuery(q)
}

// parseOptions reads the optional date and metric parameters.
func parseOptions(c *fiber.Ctx) (forecastQuery, error) {
	var q forecastQuery

	if s := c.Query("date"); s != "" {
		d, err := civil.ParseDate(s)
		if err != nil {
			return q, errors.New("invalid date format; use YYYY-MM-DD")
		}
		q.Date = &d
	}

	if s := c.Query("metric"); s != "" {
		metric, err := strconv.ParseBool(s)
		if err != nil {
			return q, errors.New("invalid metric value; use true or false")
		}
		q.Metric = metric
	}

	return q, nil
}

func validateQuery(q forecastQuery) error {
	err := validate.Struct(q)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Field() {
		case "Latitude":
			return errors.New("Latitude must be between -90 and 90 degrees")
		case "Longitude":
			return errors.New("Longitude must be between -180 and 180 degrees")
		}
	}
	return err
}

func parseAddress(c *fiber.Ctx) (geocode.Address, error) {
	addr := geocode.Address{
		Street:     c.Query("street"),
		City:       c.Query("city"),
		State:      c.Query("state"),
		Country:    c.Query("country"),
		PostalCode: c.Query("postalCode"),
	}
	if s := c.Query("number"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return addr, fmt.Errorf("invalid street number %q", s)
		}
		addr.Number = n
	}
	return addr, nil
}
