package submission

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PyDenTech/setrae-bot/internal/logging"
)

type fakeSaver struct {
	err    error
	routes []RouteRequest
	cars   []SchoolCarRequest
	infs   []Informe
}

func (f *fakeSaver) SaveRouteRequest(_ context.Context, r RouteRequest) error {
	f.routes = append(f.routes, r)
	return f.err
}

func (f *fakeSaver) SaveDriverRequest(context.Context, DriverRequest) error {
	return f.err
}

func (f *fakeSaver) SaveSchoolCarRequest(_ context.Context, r SchoolCarRequest) error {
	f.cars = append(f.cars, r)
	return f.err
}

func (f *fakeSaver) SaveInforme(_ context.Context, inf Informe) error {
	f.infs = append(f.infs, inf)
	return f.err
}

type fakeOperator struct {
	messages []string
}

func (f *fakeOperator) NotifyOperator(_ context.Context, msg string) error {
	f.messages = append(f.messages, msg)
	return nil
}

func TestSubmitRouteNotifiesOperator(t *testing.T) {
	saver := &fakeSaver{}
	operator := &fakeOperator{}
	svc := NewService(saver, operator, nil, nil, logging.NewNop())

	svc.SubmitRoute(context.Background(), "5594999990000", RouteRequest{
		NomeResponsavel: "João Pereira",
		CPFResponsavel:  "55566677788",
		Endereco:        "Rua das Flores, Bairro Novo",
		CEP:             "68500-000",
	})

	require.Len(t, saver.routes, 1)
	require.Len(t, operator.messages, 1)
	assert.Contains(t, operator.messages[0], "João Pereira")
	assert.Contains(t, operator.messages[0], "Nenhuma", "empty observations read as Nenhuma")
}

func TestSaveFailureSkipsNotification(t *testing.T) {
	saver := &fakeSaver{err: errors.New("connection reset")}
	operator := &fakeOperator{}
	svc := NewService(saver, operator, nil, nil, logging.NewNop())

	svc.SubmitSchoolCar(context.Background(), "5594999990000", SchoolCarRequest{NomeEscola: "EMEF Central"})

	assert.Empty(t, operator.messages, "operator must not hear about unsaved submissions")
}

func TestInformeHeaderFollowsAudience(t *testing.T) {
	saver := &fakeSaver{}
	operator := &fakeOperator{}
	svc := NewService(saver, operator, nil, nil, logging.NewNop())

	svc.SubmitInforme(context.Background(), "5594999990000", Informe{
		Audience: AudienceSchool, Tipo: "reclamacao_escola", Descricao: "atraso recorrente",
	})
	svc.SubmitInforme(context.Background(), "5594999990000", Informe{
		Audience: AudienceParents, Tipo: "denuncia", Descricao: "excesso de velocidade",
	})

	require.Len(t, operator.messages, 2)
	assert.Contains(t, operator.messages[0], "INFORME DA ESCOLA")
	assert.Contains(t, operator.messages[1], "Pais/Responsáveis")
}
