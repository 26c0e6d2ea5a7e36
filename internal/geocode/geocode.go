// Package geocode turns postal addresses into coordinates for the forecast engine.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/forecast-normalizer/internal/weather"
)

var (
	// ErrNotFound is returned when the geocoder has no match for an address.
	ErrNotFound = errors.New("address not found")
	// ErrEmptyAddress is returned when no address component was supplied.
	ErrEmptyAddress = errors.New("address is empty")
)

// Address is the subset of a postal address accepted by the lookup endpoint.
type Address struct {
	Street     string `json:"street,omitempty"`
	Number     int    `json:"number,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	Country    string `json:"country,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
}

func (a Address) empty() bool {
	return a.Street == "" && a.City == "" && a.State == "" && a.Country == "" && a.PostalCode == ""
}

// Geocoder resolves an address to a coordinate.
type Geocoder interface {
	Locate(ctx context.Context, addr Address) (weather.Coordinate, error)
}

// GoogleGeocoder uses the Google Maps geocoding API.
type GoogleGeocoder struct {
	lookup func(geocoder.Address) (geocoder.Location, error)
}

// NewGoogleGeocoder configures the geocoding client with apiKey. The
// underlying library keeps the key in package state, so create one per process.
func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	geocoder.ApiKey = apiKey
	return &GoogleGeocoder{lookup: geocoder.Geocoding}
}

func (g *GoogleGeocoder) Locate(ctx context.Context, addr Address) (weather.Coordinate, error) {
	if addr.empty() {
		return weather.Coordinate{}, ErrEmptyAddress
	}
	if err := ctx.Err(); err != nil {
		return weather.Coordinate{}, err
	}

	loc, err := g.lookup(geocoder.Address{
		Street:     addr.Street,
		Number:     addr.Number,
		City:       addr.City,
		State:      addr.State,
		Country:    addr.Country,
		PostalCode: addr.PostalCode,
	})
	if err != nil {
		if strings.Contains(err.Error(), "ZERO_RESULTS") {
			return weather.Coordinate{}, ErrNotFound
		}
		return weather.Coordinate{}, fmt.Errorf("geocoding address: %w", err)
	}
	if loc.Latitude == 0 && loc.Longitude == 0 {
		return weather.Coordinate{}, ErrNotFound
	}

	return weather.Coordinate{Latitude: loc.Latitude, Longitude: loc.Longitude}, nil
}
