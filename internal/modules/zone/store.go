// README: Geofence oracle backed by PostGIS (zoneamentos, escolas_zoneamentos).
package zone

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PyDenTech/setrae-bot/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// ContainingZone returns the first registered geofence containing the point.
// found is false when no geofence contains it.
func (s *Store) ContainingZone(ctx context.Context, p types.Point) (types.ID, bool, error) {
	row := s.db.QueryRow(ctx, `
		SELECT CAST(id AS TEXT)
		FROM zoneamentos
		WHERE ST_Contains(
			geom,
			ST_SetSRID(ST_Point($1, $2), 4326)
		)
		LIMIT 1`, p.Lng, p.Lat,
	)
	var id string
	err := row.Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return types.ID(id), true, nil
}

// IsLinked reports whether the geofence is registered as belonging to the school.
func (s *Store) IsLinked(ctx context.Context, schoolID, zoneID types.ID) (bool, error) {
	row := s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM escolas_zoneamentos
			WHERE CAST(escola_id AS TEXT) = $1
			  AND CAST(zoneamento_id AS TEXT) = $2
		)`, string(schoolID), string(zoneID),
	)
	var linked bool
	if err := row.Scan(&linked); err != nil {
		return false, err
	}
	return linked, nil
}
