// README: Student directory backed by PostgreSQL (alunos_ativos).
package student

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PyDenTech/setrae-bot/internal/types"
)

var ErrNotFound = errors.New("student not found")

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// FindByIDOrCPF looks a student up by enrollment id or CPF, whichever
// matches first.
func (s *Store) FindByIDOrCPF(ctx context.Context, idOrCPF string) (*Record, error) {
	row := s.db.QueryRow(ctx, `
		SELECT CAST(a.id_matricula AS TEXT), a.cpf, a.pessoa_nome,
		       CAST(a.escola_id AS TEXT), e.nome, a.transporte_escolar_poder_publico
		FROM alunos_ativos a
		LEFT JOIN escolas e ON a.escola_id = e.id
		WHERE CAST(a.id_matricula AS TEXT) = $1
		   OR a.cpf = $1
		LIMIT 1`, idOrCPF,
	)

	var r Record
	var cpf, nomeEscola, transporte sql.NullString
	var escolaID sql.NullString
	err := row.Scan(&r.IDMatricula, &cpf, &r.Nome, &escolaID, &nomeEscola, &transporte)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if cpf.Valid {
		r.CPF = cpf.String
	}
	if escolaID.Valid {
		r.EscolaID = types.ID(escolaID.String)
	}
	if nomeEscola.Valid {
		r.NomeEscola = nomeEscola.String
	}
	if transporte.Valid {
		r.TransporteLabel = transporte.String
	}
	return &r, nil
}
