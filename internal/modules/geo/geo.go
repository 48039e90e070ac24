// README: Pure geographic computation: haversine distance and nearest-stop selection.
package geo

import (
	"math"
	"strconv"

	"github.com/PyDenTech/setrae-bot/internal/types"
)

const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance in kilometres between two
// points specified in decimal degrees.
func DistanceKm(a, b types.Point) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	rLat1 := degreesToRadians(a.Lat)
	rLat2 := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// StopCandidate is a named stop location scoped to the routes of one school.
// Coordinates arrive as text from the reference tables and are parsed on use.
type StopCandidate struct {
	ID        types.ID
	Name      string
	Latitude  string
	Longitude string
}

// Position parses the candidate's coordinates. ok is false when either
// coordinate is not a valid decimal number.
func (c StopCandidate) Position() (types.Point, bool) {
	lat, err := strconv.ParseFloat(c.Latitude, 64)
	if err != nil {
		return types.Point{}, false
	}
	lng, err := strconv.ParseFloat(c.Longitude, 64)
	if err != nil {
		return types.Point{}, false
	}
	return types.Point{Lat: lat, Lng: lng}, true
}

// NearestStop returns the candidate closest to origin and its distance in km.
// Candidates with unparsable coordinates are skipped. Ties keep the first
// candidate encountered. ok is false when no candidate could be measured.
func NearestStop(origin types.Point, candidates []StopCandidate) (nearest StopCandidate, distKm float64, ok bool) {
	best := math.Inf(1)
	for _, c := range candidates {
		pos, valid := c.Position()
		if !valid {
			continue
		}
		d := DistanceKm(origin, pos)
		if d < best {
			best = d
			nearest = c
			ok = true
		}
	}
	return nearest, best, ok
}
