// README: Webhook gateway; verification handshake, inbound message intake
// and operational endpoints.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PyDenTech/setrae-bot/internal/dedup"
	"github.com/PyDenTech/setrae-bot/internal/http/middleware"
	"github.com/PyDenTech/setrae-bot/internal/metrics"
	"github.com/PyDenTech/setrae-bot/internal/modules/conversation"
	"github.com/PyDenTech/setrae-bot/internal/whatsapp"
)

// EventHandler consumes classified inbound events.
type EventHandler interface {
	HandleInboundEvent(ctx context.Context, userID string, ev conversation.Event)
}

type ServerDeps struct {
	Engine      EventHandler
	Dedup       *dedup.Store
	Collector   *metrics.Collector
	VerifyToken string
	Logger      *slog.Logger
}

type Server struct {
	engine    EventHandler
	dedup     *dedup.Store
	collector *metrics.Collector
	verify    string
	logger    *slog.Logger

	srv *http.Server
}

func NewServer(addr string, deps ServerDeps) *Server {
	s := &Server{
		engine:    deps.Engine,
		dedup:     deps.Dedup,
		collector: deps.Collector,
		verify:    deps.VerifyToken,
		logger:    deps.Logger,
	}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Router() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Logging(s.logger), middleware.Recovery(s.logger))

	r.GET("/webhook", s.handleVerify)
	r.POST("/webhook", s.handleInbound)
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	if s.collector != nil {
		r.GET("/metrics", gin.WrapH(s.collector.Handler()))
	}
	return r
}

// Run serves until the context is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}

// handleVerify answers the platform's subscription handshake by echoing the
// challenge when the verify token matches.
func (s *Server) handleVerify(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token == s.verify {
		s.logger.Info("webhook verified")
		c.String(http.StatusOK, challenge)
		return
	}
	c.AbortWithStatus(http.StatusForbidden)
}

func (s *Server) handleInbound(c *gin.Context) {
	var env whatsapp.Envelope
	if err := c.ShouldBindJSON(&env); err != nil {
		// Malformed payloads are acked so the platform does not retry them.
		c.Status(http.StatusOK)
		return
	}

	msg, err := env.FirstMessage()
	if err != nil {
		c.Status(http.StatusOK)
		return
	}

	ev, err := conversation.Classify(msg)
	if err != nil {
		s.logger.Error("unroutable message", "err", err)
		c.Status(http.StatusBadRequest)
		return
	}

	if !s.dedup.FirstDelivery(c.Request.Context(), msg.MessageID) {
		s.logger.Info("duplicate delivery dropped", "message_id", msg.MessageID)
		c.Status(http.StatusOK)
		return
	}

	s.engine.HandleInboundEvent(c.Request.Context(), msg.From, ev)
	c.Status(http.StatusOK)
}
