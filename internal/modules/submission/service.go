// README: Submission orchestration: persist, notify the operator, publish.
package submission

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/PyDenTech/setrae-bot/internal/metrics"
)

// Saver is the persistence surface the service writes through.
type Saver interface {
	SaveRouteRequest(ctx context.Context, r RouteRequest) error
	SaveDriverRequest(ctx context.Context, r DriverRequest) error
	SaveSchoolCarRequest(ctx context.Context, r SchoolCarRequest) error
	SaveInforme(ctx context.Context, inf Informe) error
}

// OperatorNotifier alerts the transport-department operator about a new
// submission.
type OperatorNotifier interface {
	NotifyOperator(ctx context.Context, message string) error
}

// Service persists submissions and fans out the operator notification and
// the NATS event. Persistence failure is logged and swallowed: the flow's
// success message must not be blocked (at-most-once, best-effort).
type Service struct {
	store     Saver
	notifier  OperatorNotifier
	publisher *Publisher
	collector *metrics.Collector
	logger    *slog.Logger
}

func NewService(store Saver, notifier OperatorNotifier, publisher *Publisher, collector *metrics.Collector, logger *slog.Logger) *Service {
	return &Service{
		store:     store,
		notifier:  notifier,
		publisher: publisher,
		collector: collector,
		logger:    logger,
	}
}

func (s *Service) SubmitRoute(ctx context.Context, sender string, r RouteRequest) {
	obs := r.Observacoes
	if obs == "" {
		obs = "Nenhuma"
	}
	msg := fmt.Sprintf(`🚌 *Nova solicitação de ROTA!* 🚌
**Responsável:** %s
**CPF:** %s
**Endereço:** %s, CEP: %s
Observações: %s
(_Outros detalhes no sistema_)`,
		r.NomeResponsavel, r.CPFResponsavel, r.Endereco, r.CEP, obs)
	s.finish(ctx, KindRoute, sender, msg, s.store.SaveRouteRequest(ctx, r))
}

func (s *Service) SubmitDriver(ctx context.Context, sender string, r DriverRequest) {
	carga := "Não (qualquer carro)"
	if r.HasCarga {
		carga = "Sim (caminhonete necessária)"
	}
	obs := r.Observacoes
	if obs == "" {
		obs = "Nenhuma"
	}
	msg := fmt.Sprintf(`🚨 *NOVA SOLICITAÇÃO DE MOTORISTA!* 🚨

*Requerente:* %s
*Setor:* %s
*Quantidade de pessoas:* %s
*Destino:* %s
*Horário:* %s
*Carga Especial:* %s
*Observações:* %s

Por favor, verifique e providencie um motorista.`,
		r.Nome, r.Setor, r.QtdPessoas, r.Destino, r.HoraNecessidade, carga, obs)
	s.finish(ctx, KindDriver, sender, msg, s.store.SaveDriverRequest(ctx, r))
}

func (s *Service) SubmitSchoolCar(ctx context.Context, sender string, r SchoolCarRequest) {
	msg := fmt.Sprintf(`🚐 *NOVA SOLICITAÇÃO DE CARRO (Escola)* 🚐

*Escola:* %s
*Passageiros:* %s
*Demanda:* %s
*Zona:* %s
*Tempo Estimado:* %s
*Data:* %s
*Hora:* %s

Por favor, verifique e providencie um carro.`,
		r.NomeEscola, r.QtdPassageiros, r.DescricaoDemanda, r.Zona,
		r.TempoEstimado, r.DataAgendamento, r.HoraAgendamento)
	s.finish(ctx, KindSchoolCar, sender, msg, s.store.SaveSchoolCarRequest(ctx, r))
}

func (s *Service) SubmitInforme(ctx context.Context, sender string, inf Informe) {
	kind := KindInformeParents
	header := "✉️ *NOVO INFORME (Pais/Responsáveis)* ✉️"
	if inf.Audience == AudienceSchool {
		kind = KindInformeSchool
		header = "✉️ *NOVO INFORME DA ESCOLA* ✉️"
	}
	msg := fmt.Sprintf(`%s

*Tipo:* %s
*Descrição:* %s

Verifique no sistema para mais detalhes.`, header, inf.Tipo, inf.Descricao)
	s.finish(ctx, kind, sender, msg, s.store.SaveInforme(ctx, inf))
}

func (s *Service) finish(ctx context.Context, kind Kind, sender, operatorMsg string, saveErr error) {
	if saveErr != nil {
		s.logger.Error("submission save failed", "kind", kind, "err", saveErr)
		if s.collector != nil {
			s.collector.Submissions.WithLabelValues(string(kind), "save_error").Inc()
		}
		return
	}
	if s.collector != nil {
		s.collector.Submissions.WithLabelValues(string(kind), "saved").Inc()
	}
	if err := s.notifier.NotifyOperator(ctx, operatorMsg); err != nil {
		s.logger.Error("operator notification failed", "kind", kind, "err", err)
	}
	if err := s.publisher.Publish(kind, sender); err != nil {
		s.logger.Error("submission event publish failed", "kind", kind, "err", err)
	}
}
