package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PyDenTech/setrae-bot/internal/logging"
	"github.com/PyDenTech/setrae-bot/internal/modules/conversation"
)

type recordingEngine struct {
	users  []string
	events []conversation.Event
}

func (r *recordingEngine) HandleInboundEvent(_ context.Context, userID string, ev conversation.Event) {
	r.users = append(r.users, userID)
	r.events = append(r.events, ev)
}

func newTestServer() (*Server, *recordingEngine) {
	engine := &recordingEngine{}
	srv := NewServer(":0", ServerDeps{
		Engine:      engine,
		VerifyToken: "secret-token",
		Logger:      logging.NewNop(),
	})
	return srv, engine
}

func TestVerifyHandshake(t *testing.T) {
	srv, _ := newTestServer()
	router := srv.Router()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/webhook?hub.mode=subscribe&hub.verify_token=secret-token&hub.challenge=12345", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "12345", rec.Body.String())
}

func TestVerifyRejectsWrongToken(t *testing.T) {
	srv, _ := newTestServer()
	router := srv.Router()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/webhook?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=12345", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestInboundTextIsDispatched(t *testing.T) {
	srv, engine := newTestServer()
	router := srv.Router()

	body := `{
		"object": "whatsapp_business_account",
		"entry": [{"changes": [{"value": {"messages": [
			{"id": "wamid.1", "from": "5594999990000", "type": "text", "text": {"body": "12345"}}
		]}}]}]
	}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, engine.events, 1)
	assert.Equal(t, "5594999990000", engine.users[0])
	assert.Equal(t, conversation.EventText, engine.events[0].Kind)
	assert.Equal(t, "12345", engine.events[0].Text)
}

func TestInboundListReplyIsDispatched(t *testing.T) {
	srv, engine := newTestServer()
	router := srv.Router()

	body := `{
		"object": "whatsapp_business_account",
		"entry": [{"changes": [{"value": {"messages": [
			{"id": "wamid.2", "from": "5594999990000", "type": "interactive",
			 "interactive": {"type": "list_reply", "list_reply": {"id": "parents_option_1"}}}
		]}}]}]
	}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, engine.events, 1)
	assert.Equal(t, conversation.EventListSelection, engine.events[0].Kind)
	assert.Equal(t, "parents_option_1", engine.events[0].OptionID)
}

func TestStatusCallbackIsAckedSilently(t *testing.T) {
	srv, engine := newTestServer()
	router := srv.Router()

	body := `{"object": "whatsapp_business_account", "entry": [{"changes": [{"value": {}}]}]}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, engine.events)
}

func TestMessageWithoutSenderIsRejected(t *testing.T) {
	srv, engine := newTestServer()
	router := srv.Router()

	body := `{
		"object": "whatsapp_business_account",
		"entry": [{"changes": [{"value": {"messages": [
			{"id": "wamid.3", "type": "text", "text": {"body": "oi"}}
		]}}]}]
	}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, engine.events)
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer()
	router := srv.Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
