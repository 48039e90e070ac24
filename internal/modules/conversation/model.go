// README: Session aggregate, step vocabulary and wizard form definitions.
package conversation

import (
	"time"

	"github.com/PyDenTech/setrae-bot/internal/modules/student"
	"github.com/PyDenTech/setrae-bot/internal/modules/submission"
	"github.com/PyDenTech/setrae-bot/internal/types"
)

// Step names one position in a wizard's sequence. Every value below appears
// in the step table except the two sentinels.
type Step string

const (
	// Sentinels: no wizard form exists yet.
	StepAwaitingMenu   Step = "awaiting_menu"
	StepAwaitingLookup Step = "awaiting_aluno_id_or_cpf"

	// Nearest-stop flow.
	StepConfirmStudent Step = "confirm_aluno_await"
	StepTransportOffer Step = "transport_offer_await"
	StepShareLocation  Step = "enviar_localizacao"

	// Route-request wizard.
	StepTerms             Step = "termos_uso"
	StepGuardianName      Step = "nome_responsavel"
	StepGuardianCPF       Step = "cpf_responsavel"
	StepCEP               Step = "cep"
	StepHouseNumber       Step = "numero"
	StepAddress           Step = "endereco"
	StepResidenceLocation Step = "localizacao_atual"
	StepProofOfResidence  Step = "comprovante_residencia"
	StepStudentID         Step = "id_matricula_aluno"
	StepDisability        Step = "deficiencia"
	StepDisabilityReport  Step = "laudo_deficiencia"
	StepGuardianPhone     Step = "celular_responsavel"
	StepObservations      Step = "observacoes"

	// Driver-request wizard.
	StepDriverName         Step = "driver_name"
	StepDriverSector       Step = "driver_setor"
	StepDriverHeadcount    Step = "driver_qtd"
	StepDriverDestination  Step = "driver_destino"
	StepDriverPickup       Step = "driver_local_origem"
	StepDriverCargo        Step = "driver_carga_await"
	StepDriverTime         Step = "driver_hora_necessidade"
	StepDriverObservations Step = "driver_observacoes"

	// School-car wizard.
	StepSchoolCarName      Step = "school_car_nome_escola"
	StepSchoolCarHeadcount Step = "school_car_qtd_passageiros"
	StepSchoolCarDemand    Step = "school_car_descricao_demanda"
	StepSchoolCarZone      Step = "school_car_zona_await"
	StepSchoolCarDuration  Step = "school_car_tempo_est"
	StepSchoolCarDate      Step = "school_car_data"
	StepSchoolCarTime      Step = "school_car_hora"

	// Informe wizards.
	StepParentsInformeType Step = "parents_informe_type"
	StepParentsInformeDesc Step = "parents_informe_desc"
	StepSchoolInformeType  Step = "school_informe_tipo"
	StepSchoolInformeDesc  Step = "school_informe_desc"
)

// Form is the closed union of wizard working forms. A session outside a
// wizard carries no form, so steps can only read fields their own wizard
// has collected.
type Form interface {
	formKind() submission.Kind
}

type RouteForm struct {
	submission.RouteRequest
}

type DriverForm struct {
	submission.DriverRequest
}

type SchoolCarForm struct {
	submission.SchoolCarRequest
}

type InformeForm struct {
	submission.Informe
}

func (*RouteForm) formKind() submission.Kind     { return submission.KindRoute }
func (*DriverForm) formKind() submission.Kind    { return submission.KindDriver }
func (*SchoolCarForm) formKind() submission.Kind { return submission.KindSchoolCar }
func (*InformeForm) formKind() submission.Kind   { return submission.KindInformeParents }

// Session is the per-user conversational state, keyed by phone number. The
// engine receives it for the duration of one event while holding that user's
// lock and must not retain it afterwards.
type Session struct {
	UserID string
	Step   Step
	Form   Form

	// Student is authoritative once resolved; flows never re-fetch it.
	Student *student.Record
	// Location is the most recently shared coordinate. Zoning and
	// nearest-stop resolution always read it, never a stale copy.
	Location *types.Point

	CreatedAt      time.Time
	LastActivityAt time.Time
}
