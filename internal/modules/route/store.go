// README: School route and stop index backed by PostgreSQL.
package route

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PyDenTech/setrae-bot/internal/modules/geo"
	"github.com/PyDenTech/setrae-bot/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// RoutesForSchool returns the ids of every route serving the school.
func (s *Store) RoutesForSchool(ctx context.Context, schoolID types.ID) ([]types.ID, error) {
	rows, err := s.db.Query(ctx, `
		SELECT CAST(rota_id AS TEXT)
		FROM rotas_escolas
		WHERE CAST(escola_id AS TEXT) = $1`, string(schoolID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []types.ID
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, types.ID(id))
	}
	return ids, rows.Err()
}

// StopsForRoutes returns every stop attached to any of the given routes.
// Coordinates are kept as text; parsing is the resolver's concern.
func (s *Store) StopsForRoutes(ctx context.Context, routeIDs []types.ID) ([]geo.StopCandidate, error) {
	if len(routeIDs) == 0 {
		return nil, nil
	}
	raw := make([]string, len(routeIDs))
	for i, id := range routeIDs {
		raw[i] = string(id)
	}
	rows, err := s.db.Query(ctx, `
		SELECT CAST(p.id AS TEXT), p.nome_ponto,
		       CAST(p.latitude AS TEXT), CAST(p.longitude AS TEXT)
		FROM rotas_pontos rp
		JOIN pontos p ON p.id = rp.ponto_id
		WHERE CAST(rp.rota_id AS TEXT) = ANY($1)`, raw,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stops []geo.StopCandidate
	for rows.Next() {
		var c geo.StopCandidate
		var id string
		if err := rows.Scan(&id, &c.Name, &c.Latitude, &c.Longitude); err != nil {
			return nil, err
		}
		c.ID = types.ID(id)
		stops = append(stops, c)
	}
	return stops, rows.Err()
}
