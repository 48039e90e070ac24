// README: Submission persistence backed by PostgreSQL (minimal inserts).
package submission

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) SaveRouteRequest(ctx context.Context, r RouteRequest) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO cocessao_rota (
			nome_responsavel,
			cpf_responsavel,
			celular_responsavel,
			id_matricula_aluno,
			escola_id,
			cep,
			numero,
			endereco,
			zoneamento,
			deficiencia,
			laudo_deficiencia_path,
			comprovante_residencia_path,
			latitude,
			longitude,
			observacoes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		r.NomeResponsavel,
		r.CPFResponsavel,
		r.CelularResponsavel,
		r.IDMatriculaAluno,
		string(r.EscolaID),
		r.CEP,
		r.Numero,
		r.Endereco,
		r.Zoneamento,
		r.Deficiencia,
		nullIfEmpty(r.LaudoDeficienciaID),
		nullIfEmpty(r.ComprovanteResidenciaID),
		r.Latitude,
		r.Longitude,
		nullIfEmpty(r.Observacoes),
	)
	return err
}

func (s *Store) SaveDriverRequest(ctx context.Context, r DriverRequest) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO solicitacao_carros_administrativos (
			nome_requerente,
			setor_requerente,
			qtd_pessoas,
			destino,
			lat_origem,
			lng_origem,
			has_carga,
			tipo_carro_necessario,
			hora_necessidade,
			observacoes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		r.Nome,
		r.Setor,
		r.QtdPessoas,
		r.Destino,
		r.LatOrigem,
		r.LngOrigem,
		r.HasCarga,
		r.TipoCarro,
		r.HoraNecessidade,
		nullIfEmpty(r.Observacoes),
	)
	return err
}

func (s *Store) SaveSchoolCarRequest(ctx context.Context, r SchoolCarRequest) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO solicitacao_carro_escola (
			nome_escola,
			qtd_passageiros,
			descricao_demanda,
			zona,
			tempo_estimado,
			data_agendamento,
			hora_agendamento
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		r.NomeEscola,
		r.QtdPassageiros,
		r.DescricaoDemanda,
		r.Zona,
		r.TempoEstimado,
		r.DataAgendamento,
		r.HoraAgendamento,
	)
	return err
}

func (s *Store) SaveInforme(ctx context.Context, inf Informe) error {
	table, err := informeTable(inf.Audience)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx,
		fmt.Sprintf(`INSERT INTO %s (tipo, descricao) VALUES ($1, $2)`, table),
		inf.Tipo, inf.Descricao,
	)
	return err
}

func informeTable(a InformeAudience) (string, error) {
	switch a {
	case AudienceParents:
		return "informes_parents", nil
	case AudienceSchool:
		return "informes_escola", nil
	default:
		return "", fmt.Errorf("unknown informe audience %q", a)
	}
}

func nullIfEmpty(v string) any {
	if v == "" {
		return nil
	}
	return v
}
