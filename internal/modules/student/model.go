// README: Active-student record as exposed to the conversation flows.
package student

import "github.com/PyDenTech/setrae-bot/internal/types"

// Record is one row of the active-students view joined with the school name.
type Record struct {
	IDMatricula string
	CPF         string
	Nome        string
	EscolaID    types.ID
	NomeEscola  string
	// TransporteLabel is the free-text public-transport entitlement label
	// from the enrollment system; empty means not a transport user.
	TransporteLabel string
}

// HasTransport reports whether the student is registered as a public
// school-transport user.
func (r Record) HasTransport() bool {
	return r.TransporteLabel != ""
}
