// README: Interactive-list option handling when no wizard is in progress.
package conversation

import (
	"context"

	"github.com/PyDenTech/setrae-bot/internal/modules/submission"
	"github.com/PyDenTech/setrae-bot/internal/whatsapp"
)

// menuTable maps list option ids to their actions. Any id outside the table
// re-displays the main menu.
var menuTable = map[string]func(*Service, context.Context, string){
	"option_1": func(s *Service, ctx context.Context, userID string) {
		s.sendMenu(ctx, userID, s.messenger.SendParentsMenu)
	},
	"option_2": func(s *Service, ctx context.Context, userID string) {
		s.sendMenu(ctx, userID, s.messenger.SendSemedMenu)
	},
	"option_3": func(s *Service, ctx context.Context, userID string) {
		s.sendMenu(ctx, userID, s.messenger.SendSchoolMenu)
	},
	"option_4": (*Service).underConstruction,
	"option_5": (*Service).underConstruction,
	"option_6": func(s *Service, ctx context.Context, userID string) {
		s.endConversation(ctx, userID,
			"Atendimento encerrado. Sempre que precisar de algo, é só nos chamar!")
	},

	"parents_option_1": func(s *Service, ctx context.Context, userID string) {
		s.startSession(userID, StepAwaitingLookup, nil)
		s.sendText(ctx, userID,
			"Para encontrarmos o ponto de parada mais próximo, precisamos do ID de matrícula ou CPF do(a) aluno(a). Poderia enviar?")
	},
	"parents_option_2": func(s *Service, ctx context.Context, userID string) {
		s.startSession(userID, StepTerms, &RouteForm{})
		s.sendText(ctx, userID,
			"Para solicitar a concessão de rota, precisamos que esteja ciente dos termos (distância mínima, idade etc.).")
		s.sendTermsButtons(ctx, userID,
			"Você confirma a aceitação dos termos de uso do transporte?")
	},
	"parents_option_3": func(s *Service, ctx context.Context, userID string) {
		s.startSession(userID, StepParentsInformeType,
			&InformeForm{Informe: submission.Informe{Audience: submission.AudienceParents}})
		s.sendButtons(ctx, userID,
			"Por favor, selecione o tipo de informe:", "",
			whatsapp.Button{ID: "denuncia", Title: "Denúncia"},
			whatsapp.Button{ID: "elogio_parents", Title: "Elogio"})
	},
	"parents_option_4": func(s *Service, ctx context.Context, userID string) {
		s.handoff(ctx, userID, "transporte_escolar")
	},
	"parents_option_5": func(s *Service, ctx context.Context, userID string) {
		s.sendMainMenu(ctx, userID)
	},
	"parents_option_6": func(s *Service, ctx context.Context, userID string) {
		s.endConversation(ctx, userID,
			"Atendimento encerrado. Obrigado pelo contato, e sempre que precisar, estamos por aqui!")
	},

	"request_driver": func(s *Service, ctx context.Context, userID string) {
		s.startSession(userID, StepDriverName, &DriverForm{})
		s.sendText(ctx, userID,
			"Para solicitar um motorista, poderia informar seu nome completo, por favor?")
	},
	"speak_to_agent": func(s *Service, ctx context.Context, userID string) {
		s.handoff(ctx, userID, "transporte_administrativo")
	},
	"end_service": func(s *Service, ctx context.Context, userID string) {
		s.endConversation(ctx, userID,
			"Atendimento encerrado. Se precisar de algo no futuro, basta nos enviar uma mensagem.")
	},
	"back_to_menu": func(s *Service, ctx context.Context, userID string) {
		s.sendMainMenu(ctx, userID)
	},

	"school_option_1": func(s *Service, ctx context.Context, userID string) {
		s.startSession(userID, StepSchoolCarName, &SchoolCarForm{})
		s.sendText(ctx, userID,
			"Para solicitar um carro, por favor informe o nome da escola.")
	},
	"school_option_2": func(s *Service, ctx context.Context, userID string) {
		s.startSession(userID, StepSchoolInformeType,
			&InformeForm{Informe: submission.Informe{Audience: submission.AudienceSchool}})
		s.sendButtons(ctx, userID,
			"Qual o tipo de informe deseja registrar?", "",
			whatsapp.Button{ID: "elogio_escola", Title: "Elogio"},
			whatsapp.Button{ID: "reclamacao_escola", Title: "Reclamação"})
	},
	"school_option_3": func(s *Service, ctx context.Context, userID string) {
		s.handoff(ctx, userID, "transporte_administrativo")
	},
	"school_option_5": func(s *Service, ctx context.Context, userID string) {
		s.endConversation(ctx, userID,
			"Atendimento encerrado. Caso precise de algo, estaremos aqui para ajudar.")
	},
}

func (s *Service) dispatchMenu(ctx context.Context, userID, optionID string) {
	if handle, ok := menuTable[optionID]; ok {
		handle(s, ctx, userID)
		return
	}
	s.sendMainMenu(ctx, userID)
}

func (s *Service) sendMenu(ctx context.Context, userID string, send func(context.Context, string) error) {
	if err := send(ctx, userID); err != nil {
		s.logger.Error("send menu failed", "to", userID, "err", err)
		if s.collector != nil {
			s.collector.OutboundErrs.Inc()
		}
	}
}

func (s *Service) underConstruction(ctx context.Context, userID string) {
	s.sendText(ctx, userID,
		"Esta seção ainda está em desenvolvimento, mas logo estará disponível.")
	s.endConversation(ctx, userID,
		"Agradecemos a sua compreensão. O atendimento foi encerrado.")
}

func (s *Service) handoff(ctx context.Context, userID, subject string) {
	if err := s.notifier.NotifyHandoff(ctx, subject, userID); err != nil {
		s.logger.Error("handoff notification failed", "to", userID, "subject", subject, "err", err)
	}
	s.endConversation(ctx, userID,
		"Um atendente foi acionado e entrará em contato em breve. Obrigado!")
}

func (s *Service) sendTermsButtons(ctx context.Context, userID, body string) {
	s.sendButtons(ctx, userID, body, "",
		whatsapp.Button{ID: "aceito_termos", Title: "Sim"},
		whatsapp.Button{ID: "recuso_termos", Title: "Não"})
}
