// README: Common identifier and coordinate value objects used across modules.
package types

// ID is an opaque record identifier (student, school, route, zone).
type ID string

// Point is a WGS84 coordinate pair in decimal degrees.
type Point struct {
	Lat float64
	Lng float64
}
