// README: Conversation engine: per-user serialized event processing, menu
// dispatch, lookups and session lifecycle.
package conversation

import (
	"context"
	"log/slog"
	"time"

	"github.com/PyDenTech/setrae-bot/internal/metrics"
	"github.com/PyDenTech/setrae-bot/internal/modules/geo"
	"github.com/PyDenTech/setrae-bot/internal/modules/student"
	"github.com/PyDenTech/setrae-bot/internal/modules/submission"
	"github.com/PyDenTech/setrae-bot/internal/modules/zone"
	"github.com/PyDenTech/setrae-bot/internal/types"
	"github.com/PyDenTech/setrae-bot/internal/whatsapp"
)

// Directory resolves students by enrollment id or CPF.
type Directory interface {
	FindByIDOrCPF(ctx context.Context, idOrCPF string) (*student.Record, error)
}

// RouteIndex scopes stop candidates by school membership.
type RouteIndex interface {
	RoutesForSchool(ctx context.Context, schoolID types.ID) ([]types.ID, error)
	StopsForRoutes(ctx context.Context, routeIDs []types.ID) ([]geo.StopCandidate, error)
}

// ZoneChecker tests a coordinate against the registered geofences.
type ZoneChecker interface {
	Resolve(ctx context.Context, p types.Point, schoolID types.ID) zone.Membership
}

// Submitter persists finished wizard forms, best-effort.
type Submitter interface {
	SubmitRoute(ctx context.Context, sender string, r submission.RouteRequest)
	SubmitDriver(ctx context.Context, sender string, r submission.DriverRequest)
	SubmitSchoolCar(ctx context.Context, sender string, r submission.SchoolCarRequest)
	SubmitInforme(ctx context.Context, sender string, inf submission.Informe)
}

// HandoffNotifier alerts a human agent that a user requested contact.
type HandoffNotifier interface {
	NotifyHandoff(ctx context.Context, subject, userNumber string) error
}

// Messenger is the outbound chat surface.
type Messenger interface {
	SendText(ctx context.Context, to, text string) error
	SendButtons(ctx context.Context, to, body, footer string, buttons ...whatsapp.Button) error
	whatsapp.MenuSender
}

// Walker estimates the walking trip to a stop; implementations may report
// nothing (ok=false) when unavailable.
type Walker interface {
	Estimate(ctx context.Context, from, to types.Point) (time.Duration, string, bool)
}

type Deps struct {
	Store       Store
	Directory   Directory
	Routes      RouteIndex
	Zones       ZoneChecker
	Submissions Submitter
	Messenger   Messenger
	Notifier    HandoffNotifier
	Walker      Walker
	Collector   *metrics.Collector
	Logger      *slog.Logger

	InactivityTimeout time.Duration
}

type Service struct {
	store       Store
	directory   Directory
	routes      RouteIndex
	zones       ZoneChecker
	submissions Submitter
	messenger   Messenger
	notifier    HandoffNotifier
	walker      Walker
	collector   *metrics.Collector
	logger      *slog.Logger

	timeout time.Duration
	locks   *userLocks
	timers  *scheduler
}

func NewService(d Deps) *Service {
	if d.Store == nil {
		d.Store = NewMemoryStore()
	}
	if d.InactivityTimeout <= 0 {
		d.InactivityTimeout = 10 * time.Minute
	}
	s := &Service{
		store:       d.Store,
		directory:   d.Directory,
		routes:      d.Routes,
		zones:       d.Zones,
		submissions: d.Submissions,
		messenger:   d.Messenger,
		notifier:    d.Notifier,
		walker:      d.Walker,
		collector:   d.Collector,
		logger:      d.Logger,
		timeout:     d.InactivityTimeout,
		locks:       newUserLocks(),
	}
	s.timers = newScheduler(d.InactivityTimeout, s.expire)
	return s
}

// HandleInboundEvent is the single entry point for classified events, real
// and synthetic. Processing for one user id is mutually exclusive and in
// arrival order; the inactivity countdown is reset after every real event,
// even one that errored mid-transition.
func (s *Service) HandleInboundEvent(ctx context.Context, userID string, ev Event) {
	unlock := s.locks.lock(userID)
	defer unlock()

	if s.collector != nil {
		s.collector.InboundEvents.WithLabelValues(ev.Kind.String()).Inc()
	}
	s.process(ctx, userID, ev)
	if ev.Kind != EventTimeout {
		s.timers.Touch(userID)
	}
}

func (s *Service) process(ctx context.Context, userID string, ev Event) {
	if ev.Kind == EventTimeout {
		s.expireLocked(ctx, userID)
		return
	}

	sess, ok := s.store.Get(userID)
	if ok {
		sess.LastActivityAt = time.Now()
	}

	switch {
	case ok && sess.Step == StepAwaitingLookup:
		s.lookupStudent(ctx, sess, ev)
	case ok:
		s.dispatchStep(ctx, sess, ev)
	case ev.Kind == EventListSelection:
		s.dispatchMenu(ctx, userID, ev.OptionID)
	default:
		s.sendMainMenu(ctx, userID)
	}
}

func (s *Service) dispatchStep(ctx context.Context, sess *Session, ev Event) {
	spec, ok := stepTable[sess.Step]
	if !ok {
		// Unknown step: fall back to the main menu rather than trap the user.
		s.sendMainMenu(ctx, sess.UserID)
		return
	}
	if s.collector != nil {
		s.collector.Transitions.WithLabelValues(string(sess.Step)).Inc()
	}
	if !spec.accepts(ev.Kind) {
		s.sendText(ctx, sess.UserID, spec.reprompt)
		return
	}
	spec.handle(s, ctx, sess, ev)
}

// expire is the timer callback. It routes a synthetic Timeout event through
// the same entry point real events use.
func (s *Service) expire(userID string) {
	s.HandleInboundEvent(context.Background(), userID, Event{Kind: EventTimeout})
}

func (s *Service) expireLocked(ctx context.Context, userID string) {
	sess, ok := s.store.Get(userID)
	if !ok {
		s.timers.Cancel(userID)
		return
	}
	// A real event that raced the timer already refreshed the session and
	// rescheduled the countdown; expiring now would terminate twice.
	if time.Since(sess.LastActivityAt) < s.timeout {
		return
	}
	if s.collector != nil {
		s.collector.SessionsExpired.Inc()
	}
	s.endConversation(ctx, userID,
		"Percebemos que você está ocupado(a). Se precisar de mais ajuda, é só nos chamar a qualquer momento.")
}

// endConversation sends the farewell and atomically destroys the session
// and its timer.
func (s *Service) endConversation(ctx context.Context, userID, farewell string) {
	s.sendText(ctx, userID, farewell)
	s.store.Destroy(userID)
	s.timers.Cancel(userID)
	s.updateSessionGauge()
}

func (s *Service) startSession(userID string, step Step, form Form) *Session {
	sess := s.store.Create(userID, step)
	sess.Form = form
	s.updateSessionGauge()
	return sess
}

func (s *Service) updateSessionGauge() {
	if s.collector != nil {
		s.collector.ActiveSessions.Set(float64(s.store.Count()))
	}
}

func (s *Service) sendText(ctx context.Context, to, text string) {
	if err := s.messenger.SendText(ctx, to, text); err != nil {
		s.logger.Error("send text failed", "to", to, "err", err)
		if s.collector != nil {
			s.collector.OutboundErrs.Inc()
		}
	}
}

func (s *Service) sendButtons(ctx context.Context, to, body, footer string, buttons ...whatsapp.Button) {
	if err := s.messenger.SendButtons(ctx, to, body, footer, buttons...); err != nil {
		s.logger.Error("send buttons failed", "to", to, "err", err)
		if s.collector != nil {
			s.collector.OutboundErrs.Inc()
		}
	}
}

func (s *Service) sendMainMenu(ctx context.Context, to string) {
	if err := s.messenger.SendMainMenu(ctx, to); err != nil {
		s.logger.Error("send main menu failed", "to", to, "err", err)
		if s.collector != nil {
			s.collector.OutboundErrs.Inc()
		}
	}
}
