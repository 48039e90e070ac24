// README: Student lookup and nearest-stop resolution for the parents flow.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PyDenTech/setrae-bot/internal/maps"
	"github.com/PyDenTech/setrae-bot/internal/modules/geo"
	"github.com/PyDenTech/setrae-bot/internal/modules/student"
	"github.com/PyDenTech/setrae-bot/internal/whatsapp"
)

const lookupPrompt = "Para encontrarmos o ponto de parada mais próximo, precisamos do ID de matrícula ou CPF do(a) aluno(a). Poderia enviar?"

// lookupStudent resolves the text sent while the session awaits an
// enrollment id or CPF. A record that cannot exist ends the conversation; a
// lookup that merely failed keeps the session so the user can retry.
func (s *Service) lookupStudent(ctx context.Context, sess *Session, ev Event) {
	if ev.Kind != EventText {
		s.sendText(ctx, sess.UserID, lookupPrompt)
		return
	}
	query := strings.TrimSpace(ev.Text)
	if !digitsOnly(query) {
		s.sendText(ctx, sess.UserID,
			"Por favor, envie apenas números: o ID de matrícula ou CPF do(a) aluno(a).")
		return
	}

	rec, err := s.directory.FindByIDOrCPF(ctx, query)
	if errors.Is(err, student.ErrNotFound) {
		s.endConversation(ctx, sess.UserID,
			"Não encontramos nenhum aluno com este ID de matrícula ou CPF. Atendimento encerrado, mas estamos à disposição se precisar tentar novamente.")
		return
	}
	if err != nil {
		s.logger.Error("student lookup failed", "user", sess.UserID, "err", err)
		s.sendText(ctx, sess.UserID,
			"No momento não conseguimos consultar o cadastro. Poderia enviar o ID de matrícula ou CPF novamente em instantes?")
		return
	}

	sess.Student = rec
	sess.Step = StepConfirmStudent
	s.sendButtons(ctx, sess.UserID, studentCard(rec),
		"Essas informações estão corretas?",
		whatsapp.Button{ID: "confirm_yes", Title: "Sim"},
		whatsapp.Button{ID: "confirm_no", Title: "Não"})
}

func studentCard(rec *student.Record) string {
	transporte := rec.TransporteLabel
	if transporte == "" {
		transporte = "Não informado (provavelmente não usuário)"
	}
	return fmt.Sprintf(`*Dados do(a) Aluno(a) Encontrado(a)*:
Nome: %s
CPF: %s
Escola: %s
Matrícula: %s
Transporte Público: %s`,
		rec.Nome,
		orFallback(rec.CPF, "Não informado"),
		orFallback(rec.NomeEscola, "Não vinculada"),
		orFallback(rec.IDMatricula, "N/A"),
		transporte)
}

func orFallback(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// checkStudentTransport is the single resolution path for the nearest-stop
// flow. Both the immediate case (coordinates already shared) and the
// deferred case (session parked at the share-location step) run through it,
// always reading the session's current coordinates.
func (s *Service) checkStudentTransport(ctx context.Context, sess *Session) {
	rec := sess.Student
	if rec == nil {
		s.endConversation(ctx, sess.UserID,
			"Desculpe, não encontramos dados do(a) aluno(a). Encerrando o atendimento.")
		return
	}
	if !rec.HasTransport() {
		sess.Step = StepTransportOffer
		s.sendButtons(ctx, sess.UserID,
			"Verificamos que este(a) aluno(a) não faz uso do transporte escolar público. Gostaria de solicitar este serviço?", "",
			whatsapp.Button{ID: "request_transport_yes", Title: "Sim"},
			whatsapp.Button{ID: "request_transport_no", Title: "Não"})
		return
	}
	if rec.EscolaID == "" {
		s.endConversation(ctx, sess.UserID,
			"Não foi possível identificar a escola do(a) aluno(a). Encerrando o atendimento. Por favor, tente novamente ou entre em contato com o suporte.")
		return
	}

	routeIDs, err := s.routes.RoutesForSchool(ctx, rec.EscolaID)
	if err != nil {
		s.logger.Error("route lookup failed", "school", rec.EscolaID, "err", err)
		s.endConversation(ctx, sess.UserID,
			"Não foi possível consultar as rotas neste momento. Por favor, tente novamente mais tarde.")
		return
	}
	if len(routeIDs) == 0 {
		s.endConversation(ctx, sess.UserID,
			"Não encontramos rotas cadastradas para a escola desse(a) aluno(a). Por favor, tente novamente mais tarde ou entre em contato com o suporte.")
		return
	}

	stops, err := s.routes.StopsForRoutes(ctx, routeIDs)
	if err != nil {
		s.logger.Error("stop lookup failed", "school", rec.EscolaID, "err", err)
		s.endConversation(ctx, sess.UserID,
			"Não foi possível consultar os pontos de parada neste momento. Por favor, tente novamente mais tarde.")
		return
	}
	if len(stops) == 0 {
		s.endConversation(ctx, sess.UserID,
			"Não localizamos pontos de parada nessas rotas. Recomendamos verificar diretamente com a secretaria.")
		return
	}

	if sess.Location == nil {
		sess.Step = StepShareLocation
		s.sendText(ctx, sess.UserID,
			"Não foi possível identificar sua localização. Por favor, envie a localização atual da residência do(a) aluno(a).")
		return
	}

	origin := *sess.Location
	nearest, distKm, ok := geo.NearestStop(origin, stops)
	if !ok {
		s.endConversation(ctx, sess.UserID,
			"Não encontramos um ponto de parada próximo. Por favor, tente novamente mais tarde ou entre em contato com o suporte.")
		return
	}
	s.logger.Info("nearest stop resolved",
		"user", sess.UserID, "stop", nearest.ID, "distance_km", distKm)

	url := maps.DirectionsURL(origin, nearest.Latitude, nearest.Longitude)
	msg := fmt.Sprintf(
		"Ponto de parada mais próximo vinculado à rota da escola: *%s*.\nCoordenadas: %s, %s.\nAcesse o [Google Maps](%s) para ver o trajeto sugerido.",
		nearest.Name, nearest.Latitude, nearest.Longitude, url)
	if pos, posOK := nearest.Position(); posOK && s.walker != nil {
		if dur, dist, estOK := s.walker.Estimate(ctx, origin, pos); estOK {
			msg += fmt.Sprintf("\nTrajeto a pé: %s, cerca de %d minutos.",
				dist, int(dur.Minutes()))
		}
	}
	s.sendText(ctx, sess.UserID, msg)
	s.endConversation(ctx, sess.UserID,
		"Esperamos que isso ajude! Seu atendimento foi finalizado, mas estamos sempre aqui caso precise de mais alguma informação.")
}
