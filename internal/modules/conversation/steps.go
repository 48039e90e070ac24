// README: Wizard step table: accepted event kinds, re-prompts and transition
// handlers for every in-progress step.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/PyDenTech/setrae-bot/internal/modules/student"
	"github.com/PyDenTech/setrae-bot/internal/types"
	"github.com/PyDenTech/setrae-bot/internal/whatsapp"
)

type stepSpec struct {
	kinds    []EventKind
	reprompt string
	handle   func(*Service, context.Context, *Session, Event)
}

func (sp stepSpec) accepts(k EventKind) bool {
	for _, allowed := range sp.kinds {
		if k == allowed {
			return true
		}
	}
	return false
}

func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

var stepTable = map[Step]stepSpec{

	// ------------------------------------------------------------------
	// Nearest-stop flow.
	// ------------------------------------------------------------------

	StepConfirmStudent: {
		kinds:    []EventKind{EventButtonSelection},
		reprompt: "Essas informações estão corretas? Por favor, responda usando os botões Sim ou Não.",
		handle: func(s *Service, ctx context.Context, sess *Session, ev Event) {
			switch ev.OptionID {
			case "confirm_yes":
				s.checkStudentTransport(ctx, sess)
			case "confirm_no":
				sess.Student = nil
				sess.Step = StepAwaitingLookup
				s.sendText(ctx, sess.UserID,
					"Sem problemas. Por favor, verifique o ID de matrícula ou CPF e tente novamente.")
			default:
				s.sendText(ctx, sess.UserID,
					"Essas informações estão corretas? Por favor, responda usando os botões Sim ou Não.")
			}
		},
	},

	StepTransportOffer: {
		kinds:    []EventKind{EventButtonSelection},
		reprompt: "Gostaria de solicitar o transporte escolar? Por favor, responda usando os botões Sim ou Não.",
		handle: func(s *Service, ctx context.Context, sess *Session, ev Event) {
			switch ev.OptionID {
			case "request_transport_yes":
				sess.Step = StepTerms
				sess.Form = &RouteForm{}
				s.sendText(ctx, sess.UserID,
					"Para solicitar o transporte escolar, é necessário atender aos critérios oficiais (distância, idade etc.). Você confirma estar ciente dessas condições?")
				s.sendTermsButtons(ctx, sess.UserID,
					"Confirma a aceitação dos termos de uso do transporte?")
			case "request_transport_no":
				s.endConversation(ctx, sess.UserID,
					"Tudo bem, não se preocupe. Se precisar de algo no futuro, estamos sempre aqui!")
			default:
				s.sendText(ctx, sess.UserID,
					"Gostaria de solicitar o transporte escolar? Por favor, responda usando os botões Sim ou Não.")
			}
		},
	},

	StepShareLocation: {
		kinds:    []EventKind{EventLocation},
		reprompt: "Não conseguimos identificar sua localização. Poderia tentar novamente, por favor?",
		handle: func(s *Service, ctx context.Context, sess *Session, ev Event) {
			loc := ev.Location
			sess.Location = &loc
			s.checkStudentTransport(ctx, sess)
		},
	},

	// ------------------------------------------------------------------
	// Route-concession wizard.
	// ------------------------------------------------------------------

	StepTerms: {
		kinds:    []EventKind{EventButtonSelection},
		reprompt: "Confirma a aceitação dos termos de uso do transporte? Por favor, responda usando os botões Sim ou Não.",
		handle: func(s *Service, ctx context.Context, sess *Session, ev Event) {
			if ev.OptionID == "aceito_termos" {
				sess.Step = StepGuardianName
				s.sendText(ctx, sess.UserID,
					"Ótimo! Por gentileza, informe o nome completo do(a) responsável pela solicitação:")
				return
			}
			s.endConversation(ctx, sess.UserID,
				"Sem problemas. Como você não concordou com os termos, não podemos prosseguir com o serviço. Atendimento encerrado.")
		},
	},

	StepGuardianName: {
		kinds:    []EventKind{EventText},
		reprompt: "Por gentileza, informe o nome completo do(a) responsável pela solicitação:",
		handle: func(s *Service, ctx context.Context, sess *Session, ev Event) {
			sess.Form.(*RouteForm).NomeResponsavel = ev.Text
			sess.Step = StepGuardianCPF
			s.sendText(ctx, sess.UserID,
				"Poderia, por favor, informar o CPF do(a) responsável?")
		},
	},

	StepGuardianCPF: {
		kinds:    []EventKind{EventText},
		reprompt: "Poderia, por favor, informar o CPF do(a) responsável?",
		handle: func(s *Service, ctx context.Context, sess *Session, ev Event) {
			sess.Form.(*RouteForm).CPFResponsavel = ev.Text
			sess.Step = StepCEP
			s.sendText(ctx, sess.UserID,
				"Poderia me informar o CEP do endereço, por favor?")
		},
	},

	StepCEP: {
		kinds:    []EventKind{EventText},
		reprompt: "Poderia me informar o CEP do endereço, por favor?",
		handle: func(s *Service, ctx context.Context, sess *Session, ev Event) {
			sess.Form.(*RouteForm).CEP = ev.Text
			sess.Step = StepHouseNumber
			s.sendText(ctx, sess.UserID,
				"Qual é o número da residência, por gentileza?")
		},
	},

	StepHouseNumber: {
		kinds:    []EventKind{EventText},
		reprompt: "Qual é o número da residência, por gentileza?",
		handle: func(s *Service, ctx context.Context, sess *Session, ev Event) {
			sess.Form.(*RouteForm).Numero = ev.Text
			sess.Step = StepAddress
			s.sendText(ctx, sess.UserID,
				`Certo! Agora, informe o nome da rua e o bairro (por exemplo: "Rua X, Bairro Y"):`)
		},
	},

	StepAddress: {
		kinds:    []EventKind{EventText},
		reprompt: `Informe o nome da rua e o bairro (por exemplo: "Rua X, Bairro Y"):`,
		handle: func(s *Service, ctx context.Context, sess *Session, ev Event) {
			sess.Form.(*RouteForm).Endereco = ev.Text
			sess.Step = StepResidenceLocation
			s.sendText(ctx, sess.UserID,
				"Por favor, compartilhe a localização (latitude/longitude) da residência do(a) aluno(a). Isso nos ajudará a verificar a rota.")
		},
	},

	StepResidenceLocation: {
		kinds:    []EventKind{EventLocation},
		reprompt: "Não detectamos uma localização válida. Poderia enviar novamente, por favor?",
		handle: func(s *Service, ctx context.Context, sess *Session, ev Event) {
			loc := ev.Location
			sess.Location = &loc
			form := sess.Form.(*RouteForm)
			form.Latitude = loc.Lat
			form.Longitude = loc.Lng
			sess.Step = StepProofOfResidence
			s.sendText(ctx, sess.UserID,
				"Localização recebida com sucesso! Agora, envie uma foto ou PDF do comprovante de residência, por favor.")
		},
	},

	StepProofOfResidence: {
		kinds:    []EventKind{EventMedia},
		reprompt: "Não conseguimos identificar seu arquivo. Por gentileza, envie o comprovante de residência em formato de imagem ou PDF.",
		handle: func(s *Service, ctx context.Context, sess *Session, ev Event) {
			sess.Form.(*RouteForm).ComprovanteResidenciaID = ev.MediaID
			sess.Step = StepStudentID
			s.sendText(ctx, sess.UserID,
				"Comprovante recebido! Agora, insira o ID de matrícula ou CPF do(a) aluno(a) (somente números), por favor.")
		},
	},

	StepStudentID: {
		kinds:    []EventKind{EventText},
		reprompt: "Insira o ID de matrícula ou CPF do(a) aluno(a) (somente números), por favor.",
		handle: func(s *Service, ctx context.Context, sess *Session, ev Event) {
			if !digitsOnly(ev.Text) {
				s.sendText(ctx, sess.UserID,
					"Por favor, informe apenas números: o ID de matrícula ou CPF do(a) aluno(a).")
				return
			}
			rec, err := s.directory.FindByIDOrCPF(ctx, ev.Text)
			if errors.Is(err, student.ErrNotFound) {
				s.endConversation(ctx, sess.UserID,
					"Não foi possível localizar esse ID de matrícula ou CPF. Encerrando o atendimento, mas estamos à disposição se precisar tentar novamente.")
				return
			}
			if err != nil {
				s.logger.Error("student lookup failed", "user", sess.UserID, "err", err)
				s.sendText(ctx, sess.UserID,
					"No momento não conseguimos consultar o cadastro. Poderia enviar o ID de matrícula ou CPF novamente em instantes?")
				return
			}
			form := sess.Form.(*RouteForm)
			form.IDMatriculaAluno = ev.Text
			form.EscolaID = rec.EscolaID
			sess.Student = rec
			sess.Step = StepDisability
			s.sendText(ctx, sess.UserID, fmt.Sprintf(
				`Aluno encontrado: %s. Ele(a) possui alguma deficiência? Responda "Sim" ou "Não".`, rec.Nome))
		},
	},

	StepDisability: {
		kinds:    []EventKind{EventText},
		reprompt: `Ele(a) possui alguma deficiência? Responda "Sim" ou "Não".`,
		handle: func(s *Service, ctx context.Context, sess *Session, ev Event) {
			form := sess.Form.(*RouteForm)
			if strings.EqualFold(strings.TrimSpace(ev.Text), "sim") {
				form.Deficiencia = true
				sess.Step = StepDisabilityReport
				s.sendText(ctx, sess.UserID,
					"Entendido. Por favor, envie o laudo médico que comprove a deficiência (imagem ou PDF).")
				return
			}
			form.Deficiencia = false
			form.LaudoDeficienciaID = ""
			sess.Step = StepGuardianPhone
			s.sendText(ctx, sess.UserID,
				"Tudo bem. Agora, por favor, informe o telefone do(a) responsável.")
		},
	},

	StepDisabilityReport: {
		kinds:    []EventKind{EventMedia},
		reprompt: "Não conseguimos identificar seu arquivo. Poderia, por gentileza, enviar o laudo em imagem ou PDF?",
		handle: func(s *Service, ctx context.Context, sess *Session, ev Event) {
			sess.Form.(*RouteForm).LaudoDeficienciaID = ev.MediaID
			sess.Step = StepGuardianPhone
			s.sendText(ctx, sess.UserID,
				"Laudo médico recebido. Agora, por favor, informe o telefone do(a) responsável.")
		},
	},

	StepGuardianPhone: {
		kinds:    []EventKind{EventText},
		reprompt: "Por favor, informe o telefone do(a) responsável.",
		handle: func(s *Service, ctx context.Context, sess *Session, ev Event) {
			form := sess.Form.(*RouteForm)
			form.CelularResponsavel = ev.Text

			residence := types.Point{Lat: form.Latitude, Lng: form.Longitude}
			if sess.Location != nil {
				residence = *sess.Location
			}
			membership := s.zones.Resolve(ctx, residence, form.EscolaID)
			form.Zoneamento = membership.InZone && membership.SameSchool
			switch {
			case membership.InZone && membership.SameSchool:
				s.sendText(ctx, sess.UserID,
					"Parece que sua localização está dentro de um zoneamento cadastrado.")
				s.sendText(ctx, sess.UserID,
					"Este zoneamento está vinculado à mesma escola do(a) aluno(a).")
			case membership.InZone:
				s.sendText(ctx, sess.UserID,
					"Parece que sua localização está dentro de um zoneamento cadastrado.")
				s.sendText(ctx, sess.UserID,
					"Este zoneamento não está diretamente vinculado à escola do(a) aluno(a). Continuaremos com a solicitação, mas fique atento(a) a possíveis divergências.")
			default:
				s.sendText(ctx, sess.UserID,
					"Aparentemente sua localização está fora dos zoneamentos conhecidos. Prosseguiremos mesmo assim.")
			}

			sess.Step = StepObservations
			s.sendText(ctx, sess.UserID,
				`Poderia inserir alguma observação adicional? Se não houver, digite "nenhuma".`)
		},
	},

	StepObservations: {
		kinds:    []EventKind{EventText},
		reprompt: `Poderia inserir alguma observação adicional? Se não houver, digite "nenhuma".`,
		handle: func(s *Service, ctx context.Context, sess *Session, ev Event) {
			form := sess.Form.(*RouteForm)
			form.Observacoes = normalizeObservation(ev.Text)
			s.submissions.SubmitRoute(ctx, sess.UserID, form.RouteRequest)
			s.endConversation(ctx, sess.UserID,
				"Sua solicitação de rota foi enviada com sucesso! Muito obrigado pelo seu contato. Se precisar de qualquer ajuda no futuro, é só nos procurar.")
		},
	},

	// ------------------------------------------------------------------
	// Driver-request wizard.
	// ------------------------------------------------------------------

	StepDriverName: {
		kinds:    []EventKind{EventText},
		reprompt: "Poderia informar seu nome completo, por favor?",
		handle: func(s *Service, ctx context.Context, sess *Session, ev Event) {
			sess.Form.(*DriverForm).Nome = ev.Text
			sess.Step = StepDriverSector
			s.sendText(ctx, sess.UserID,
				"Por favor, informe o setor/departamento (ex: Gabinete, RH etc.):")
		},
	},

	StepDriverSector: {
		kinds:    []EventKind{EventText},
		reprompt: "Por favor, informe o setor/departamento (ex: Gabinete, RH etc.):",
		handle: func(s *Service, ctx context.Context, sess *Session, ev Event) {
			sess.Form.(*DriverForm).Setor = ev.Text
			sess.Step = StepDriverHeadcount
			s.sendText(ctx, sess.UserID,
				"Quantas pessoas irão utilizar este transporte?")
		},
	},

	StepDriverHeadcount: {
		kinds:    []EventKind{EventText},
		reprompt: "Quantas pessoas irão utilizar este transporte?",
		handle: func(s *Service, ctx context.Context, sess *Session, ev Event) {
			if !digitsOnly(strings.TrimSpace(ev.Text)) {
				s.sendText(ctx, sess.UserID,
					"Por favor, informe apenas números. Quantas pessoas irão utilizar este transporte?")
				return
			}
			sess.Form.(*DriverForm).QtdPessoas = strings.TrimSpace(ev.Text)
			sess.Step = StepDriverDestination
			s.sendText(ctx, sess.UserID,
				"Entendi. Qual será o destino da viagem?")
		},
	},

	StepDriverDestination: {
		kinds:    []EventKind{EventText},
		reprompt: "Qual será o destino da viagem?",
		handle: func(s *Service, ctx context.Context, sess *Session, ev Event) {
			sess.Form.(*DriverForm).Destino = ev.Text
			sess.Step = StepDriverPickup
			s.sendText(ctx, sess.UserID,
				"Poderia, por favor, compartilhar a localização de origem (onde o motorista deve buscar)?")
		},
	},

	StepDriverPickup: {
		kinds:    []EventKind{EventLocation},
		reprompt: "Não detectamos uma localização válida. Poderia reenviar a localização de origem, por gentileza?",
		handle: func(s *Service, ctx context.Context, sess *Session, ev Event) {
			loc := ev.Location
			sess.Location = &loc
			form := sess.Form.(*DriverForm)
			form.LatOrigem = loc.Lat
			form.LngOrigem = loc.Lng
			sess.Step = StepDriverCargo
			s.sendButtons(ctx, sess.UserID,
				"Há alguma carga que exija um veículo com carroceria?", "",
				whatsapp.Button{ID: "driver_has_carga_yes", Title: "Sim"},
				whatsapp.Button{ID: "driver_has_carga_no", Title: "Não"})
		},
	},

	StepDriverCargo: {
		kinds:    []EventKind{EventButtonSelection},
		reprompt: "Há alguma carga que exija um veículo com carroceria? Por favor, responda usando os botões Sim ou Não.",
		handle: func(s *Service, ctx context.Context, sess *Session, ev Event) {
			form := sess.Form.(*DriverForm)
			if ev.OptionID == "driver_has_carga_yes" {
				form.HasCarga = true
				form.TipoCarro = "caminhonete"
				sess.Step = StepDriverTime
				s.sendText(ctx, sess.UserID,
					"Entendi. Precisaremos de um veículo com carroceria. Qual o horário em que o veículo será necessário (ex: 08:00)?")
				return
			}
			form.HasCarga = false
			form.TipoCarro = "qualquer"
			sess.Step = StepDriverTime
			s.sendText(ctx, sess.UserID,
				"Perfeito, qualquer veículo disponível será adequado. Poderia informar o horário em que o carro será necessário (ex: 08:00)?")
		},
	},

	StepDriverTime: {
		kinds:    []EventKind{EventText},
		reprompt: "Qual o horário em que o veículo será necessário (ex: 08:00)?",
		handle: func(s *Service, ctx context.Context, sess *Session, ev Event) {
			sess.Form.(*DriverForm).HoraNecessidade = ev.Text
			sess.Step = StepDriverObservations
			s.sendText(ctx, sess.UserID,
				`Deseja registrar alguma observação extra? (Se não houver, digite "nenhuma")`)
		},
	},

	StepDriverObservations: {
		kinds:    []EventKind{EventText},
		reprompt: `Deseja registrar alguma observação extra? (Se não houver, digite "nenhuma")`,
		handle: func(s *Service, ctx context.Context, sess *Session, ev Event) {
			form := sess.Form.(*DriverForm)
			form.Observacoes = normalizeObservation(ev.Text)
			s.submissions.SubmitDriver(ctx, sess.UserID, form.DriverRequest)
			s.sendText(ctx, sess.UserID,
				"Sua solicitação foi registrada. Lembre-se de que o motorista poderá aguardar até 15 minutos na zona urbana e 2 horas na zona rural.")
			s.endConversation(ctx, sess.UserID,
				"Agradecemos o seu contato! Sua solicitação de motorista foi enviada com sucesso.")
		},
	},

	// ------------------------------------------------------------------
	// School-car wizard.
	// ------------------------------------------------------------------

	StepSchoolCarName: {
		kinds:    []EventKind{EventText},
		reprompt: "Por favor, informe o nome da escola.",
		handle: func(s *Service, ctx context.Context, sess *Session, ev Event) {
			sess.Form.(*SchoolCarForm).NomeEscola = ev.Text
			sess.Step = StepSchoolCarHeadcount
			s.sendText(ctx, sess.UserID,
				"Quantos passageiros vão necessitar do veículo?")
		},
	},

	StepSchoolCarHeadcount: {
		kinds:    []EventKind{EventText},
		reprompt: "Quantos passageiros vão necessitar do veículo?",
		handle: func(s *Service, ctx context.Context, sess *Session, ev Event) {
			if !digitsOnly(strings.TrimSpace(ev.Text)) {
				s.sendText(ctx, sess.UserID,
					"Por favor, informe apenas números. Quantos passageiros vão necessitar do veículo?")
				return
			}
			sess.Form.(*SchoolCarForm).QtdPassageiros = strings.TrimSpace(ev.Text)
			sess.Step = StepSchoolCarDemand
			s.sendText(ctx, sess.UserID,
				"Poderia descrever a demanda (motivo da solicitação)?")
		},
	},

	StepSchoolCarDemand: {
		kinds:    []EventKind{EventText},
		reprompt: "Poderia descrever a demanda (motivo da solicitação)?",
		handle: func(s *Service, ctx context.Context, sess *Session, ev Event) {
			sess.Form.(*SchoolCarForm).DescricaoDemanda = ev.Text
			sess.Step = StepSchoolCarZone
			s.sendButtons(ctx, sess.UserID,
				"Por favor, informe se é zona urbana ou rural?", "",
				whatsapp.Button{ID: "zona_urbana", Title: "Urbana"},
				whatsapp.Button{ID: "zona_rural", Title: "Rural"})
		},
	},

	StepSchoolCarZone: {
		kinds:    []EventKind{EventButtonSelection},
		reprompt: "Por favor, informe se é zona urbana ou rural usando os botões.",
		handle: func(s *Service, ctx context.Context, sess *Session, ev Event) {
			form := sess.Form.(*SchoolCarForm)
			if ev.OptionID == "zona_urbana" {
				form.Zona = "Urbana"
			} else {
				form.Zona = "Rural"
			}
			sess.Step = StepSchoolCarDuration
			s.sendText(ctx, sess.UserID,
				"Qual o tempo estimado de uso do veículo? (Ex: 2 horas)")
		},
	},

	StepSchoolCarDuration: {
		kinds:    []EventKind{EventText},
		reprompt: "Qual o tempo estimado de uso do veículo? (Ex: 2 horas)",
		handle: func(s *Service, ctx context.Context, sess *Session, ev Event) {
			sess.Form.(*SchoolCarForm).TempoEstimado = ev.Text
			sess.Step = StepSchoolCarDate
			s.sendText(ctx, sess.UserID,
				"Poderia me informar a data do agendamento? (Ex: 12/02/2025)")
		},
	},

	StepSchoolCarDate: {
		kinds:    []EventKind{EventText},
		reprompt: "Poderia me informar a data do agendamento? (Ex: 12/02/2025)",
		handle: func(s *Service, ctx context.Context, sess *Session, ev Event) {
			sess.Form.(*SchoolCarForm).DataAgendamento = ev.Text
			sess.Step = StepSchoolCarTime
			s.sendText(ctx, sess.UserID,
				"Agora, qual será o horário? (Ex: 08:00)")
		},
	},

	StepSchoolCarTime: {
		kinds:    []EventKind{EventText},
		reprompt: "Qual será o horário? (Ex: 08:00)",
		handle: func(s *Service, ctx context.Context, sess *Session, ev Event) {
			form := sess.Form.(*SchoolCarForm)
			form.HoraAgendamento = ev.Text
			s.submissions.SubmitSchoolCar(ctx, sess.UserID, form.SchoolCarRequest)
			s.endConversation(ctx, sess.UserID,
				"Pronto! Sua solicitação de carro para a escola foi registrada com sucesso. Agradecemos o contato!")
		},
	},

	// ------------------------------------------------------------------
	// Informe wizards.
	// ------------------------------------------------------------------

	StepParentsInformeType: {
		kinds:    []EventKind{EventButtonSelection},
		reprompt: "Por favor, selecione o tipo de informe usando os botões.",
		handle: func(s *Service, ctx context.Context, sess *Session, ev Event) {
			sess.Form.(*InformeForm).Tipo = ev.OptionID
			sess.Step = StepParentsInformeDesc
			s.sendText(ctx, sess.UserID,
				"Poderia, por favor, descrever o informe (denúncia, elogio ou sugestão)?")
		},
	},

	StepParentsInformeDesc: {
		kinds:    []EventKind{EventText},
		reprompt: "Poderia, por favor, descrever o informe (denúncia, elogio ou sugestão)?",
		handle: func(s *Service, ctx context.Context, sess *Session, ev Event) {
			form := sess.Form.(*InformeForm)
			form.Descricao = ev.Text
			s.submissions.SubmitInforme(ctx, sess.UserID, form.Informe)
			s.endConversation(ctx, sess.UserID,
				"Seu informe foi registrado com sucesso! Agradecemos a sua contribuição. Caso necessite de mais assistência, ficamos à disposição.")
		},
	},

	StepSchoolInformeType: {
		kinds:    []EventKind{EventButtonSelection},
		reprompt: "Qual o tipo de informe deseja registrar? Por favor, use os botões.",
		handle: func(s *Service, ctx context.Context, sess *Session, ev Event) {
			sess.Form.(*InformeForm).Tipo = ev.OptionID
			sess.Step = StepSchoolInformeDesc
			s.sendText(ctx, sess.UserID,
				"Certo! Poderia descrever o informe com mais detalhes?")
		},
	},

	StepSchoolInformeDesc: {
		kinds:    []EventKind{EventText},
		reprompt: "Poderia descrever o informe com mais detalhes?",
		handle: func(s *Service, ctx context.Context, sess *Session, ev Event) {
			form := sess.Form.(*InformeForm)
			form.Descricao = ev.Text
			s.submissions.SubmitInforme(ctx, sess.UserID, form.Informe)
			s.endConversation(ctx, sess.UserID,
				"Informe registrado com sucesso. Agradecemos a sua colaboração!")
		},
	},
}

// normalizeObservation treats "nenhuma" in any casing as no observation.
func normalizeObservation(text string) string {
	if strings.EqualFold(strings.TrimSpace(text), "nenhuma") {
		return ""
	}
	return text
}
