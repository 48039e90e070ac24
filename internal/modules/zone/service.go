// README: Zone membership decision logic with degrade-to-false fallbacks.
package zone

import (
	"context"
	"log/slog"

	"github.com/PyDenTech/setrae-bot/internal/types"
)

// Oracle answers point-in-polygon and school-link questions. The PostGIS
// Store is the production implementation.
type Oracle interface {
	ContainingZone(ctx context.Context, p types.Point) (types.ID, bool, error)
	IsLinked(ctx context.Context, schoolID, zoneID types.ID) (bool, error)
}

// Membership is the outcome of testing a coordinate against the registered
// geofences on behalf of one school.
type Membership struct {
	InZone     bool
	SameSchool bool
	ZoneID     types.ID
}

type Service struct {
	oracle Oracle
	logger *slog.Logger
}

func NewService(oracle Oracle, logger *slog.Logger) *Service {
	return &Service{oracle: oracle, logger: logger}
}

// Resolve tests the coordinate against the registered geofences. Oracle
// failures and missing links degrade to "not in any zone"; they never block
// a flow. Only the first containing geofence is considered.
func (s *Service) Resolve(ctx context.Context, p types.Point, schoolID types.ID) Membership {
	zoneID, found, err := s.oracle.ContainingZone(ctx, p)
	if err != nil {
		s.logger.Error("zone lookup failed", "err", err)
		return Membership{}
	}
	if !found {
		return Membership{}
	}

	m := Membership{InZone: true, ZoneID: zoneID}
	if schoolID == "" {
		return m
	}
	linked, err := s.oracle.IsLinked(ctx, schoolID, zoneID)
	if err != nil {
		s.logger.Error("zone-school link lookup failed", "err", err, "zone", zoneID, "school", schoolID)
		return m
	}
	m.SameSchool = linked
	return m
}
