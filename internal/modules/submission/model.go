// README: Form submission payloads produced by the conversation wizards.
package submission

import "github.com/PyDenTech/setrae-bot/internal/types"

type Kind string

const (
	KindRoute         Kind = "route_request"
	KindDriver        Kind = "driver_request"
	KindSchoolCar     Kind = "school_car_request"
	KindInformeParents Kind = "informe_parents"
	KindInformeSchool  Kind = "informe_school"
)

// RouteRequest is a school-transport route concession request filled in by a
// guardian.
type RouteRequest struct {
	NomeResponsavel    string
	CPFResponsavel     string
	CelularResponsavel string

	CEP      string
	Numero   string
	Endereco string

	Latitude  float64
	Longitude float64

	IDMatriculaAluno string
	EscolaID         types.ID

	Deficiencia             bool
	LaudoDeficienciaID      string
	ComprovanteResidenciaID string

	// Zoneamento records whether the residence fell inside a geofence
	// linked to the student's own school.
	Zoneamento  bool
	Observacoes string
}

// DriverRequest is an administrative vehicle-with-driver request from a
// SEMED server.
type DriverRequest struct {
	Nome            string
	Setor           string
	QtdPessoas      string
	Destino         string
	LatOrigem       float64
	LngOrigem       float64
	HasCarga        bool
	TipoCarro       string
	HoraNecessidade string
	Observacoes     string
}

// SchoolCarRequest is a scheduled vehicle request from school staff.
type SchoolCarRequest struct {
	NomeEscola       string
	QtdPassageiros   string
	DescricaoDemanda string
	Zona             string
	TempoEstimado    string
	DataAgendamento  string
	HoraAgendamento  string
}

// InformeAudience distinguishes the two feedback tables.
type InformeAudience string

const (
	AudienceParents InformeAudience = "parents"
	AudienceSchool  InformeAudience = "school"
)

// Informe is a complaint, praise or suggestion.
type Informe struct {
	Audience  InformeAudience
	Tipo      string
	Descricao string
}
