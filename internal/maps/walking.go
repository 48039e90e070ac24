// README: Google Maps helpers: walking estimate to a stop and directions links.
package maps

import (
	"context"
	"fmt"
	"time"

	"googlemaps.github.io/maps"

	"github.com/PyDenTech/setrae-bot/internal/types"
)

// WalkingService estimates the walking trip from a residence to a stop.
// A nil *WalkingService is valid and reports nothing, so flows work without
// an API key.
type WalkingService struct {
	client *maps.Client
}

func NewWalkingService(apiKey string) (*WalkingService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}
	return &WalkingService{client: client}, nil
}

// Estimate returns the walking duration and human-readable distance between
// the two points. ok is false when the service is absent or no route exists.
func (s *WalkingService) Estimate(ctx context.Context, from, to types.Point) (time.Duration, string, bool) {
	if s == nil {
		return 0, "", false
	}
	r := &maps.DirectionsRequest{
		Origin:      fmt.Sprintf("%f,%f", from.Lat, from.Lng),
		Destination: fmt.Sprintf("%f,%f", to.Lat, to.Lng),
		Mode:        maps.TravelModeWalking,
		Language:    "pt-BR",
		Region:      "BR",
	}
	routes, _, err := s.client.Directions(ctx, r)
	if err != nil || len(routes) == 0 || len(routes[0].Legs) == 0 {
		return 0, "", false
	}
	leg := routes[0].Legs[0]
	return leg.Duration, leg.Distance.HumanReadable, true
}

// DirectionsURL builds the public Google Maps walking-directions link sent to
// the guardian alongside the nearest stop.
func DirectionsURL(from types.Point, toLat, toLng string) string {
	return fmt.Sprintf(
		"https://www.google.com/maps/dir/?api=1&origin=%f,%f&destination=%s,%s&travelmode=walking",
		from.Lat, from.Lng, toLat, toLng,
	)
}
