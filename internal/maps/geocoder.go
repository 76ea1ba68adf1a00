// README: Destination resolution through the Google Geocoding API.
package maps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"
)

// ErrNoResult is returned when geocoding finds nothing for a place.
var ErrNoResult = errors.New("maps: no geocoding result")

// Geocoder resolves free-text place names to formatted addresses.
type Geocoder struct {
	client *maps.Client
}

// NewGeocoder creates a Geocoder with the given API key. Extra client options
// are applied after the key (tests use maps.WithBaseURL).
func NewGeocoder(apiKey string, opts ...maps.ClientOption) (*Geocoder, error) {
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &Geocoder{client: client}, nil
}

// Resolve returns the formatted address of the first geocoding result.
func (g *Geocoder) Resolve(ctx context.Context, place string) (string, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return "", ErrNoResult
	}

	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		Address:  place,
		Language: "en",
	})
	if err != nil {
		if strings.Contains(err.Error(), "ZERO_RESULTS") {
			return "", ErrNoResult
		}
		return "", fmt.Errorf("maps api error: %w", err)
	}
	if len(results) == 0 || results[0].FormattedAddress == "" {
		return "", ErrNoResult
	}
	return results[0].FormattedAddress, nil
}
