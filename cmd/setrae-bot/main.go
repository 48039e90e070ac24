// README: Entry point; loads config, wires the conversation engine and
// starts the webhook server.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/PyDenTech/setrae-bot/internal/config"
	"github.com/PyDenTech/setrae-bot/internal/dedup"
	httptransport "github.com/PyDenTech/setrae-bot/internal/http"
	"github.com/PyDenTech/setrae-bot/internal/infra"
	"github.com/PyDenTech/setrae-bot/internal/logging"
	botmaps "github.com/PyDenTech/setrae-bot/internal/maps"
	"github.com/PyDenTech/setrae-bot/internal/metrics"
	"github.com/PyDenTech/setrae-bot/internal/modules/conversation"
	"github.com/PyDenTech/setrae-bot/internal/modules/route"
	"github.com/PyDenTech/setrae-bot/internal/modules/student"
	"github.com/PyDenTech/setrae-bot/internal/modules/submission"
	"github.com/PyDenTech/setrae-bot/internal/modules/zone"
	"github.com/PyDenTech/setrae-bot/internal/whatsapp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(slog.LevelInfo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer dbPool.Close()

	var dedupStore *dedup.Store
	if cfg.Redis.Addr != "" {
		dedupStore = dedup.NewStore(infra.NewRedis(cfg.Redis.Addr))
	} else {
		logger.Warn("redis not configured, webhook deduplication disabled")
	}

	var publisher *submission.Publisher
	if cfg.NATS.URL != "" {
		nc, err := infra.NewNATS(cfg.NATS.URL)
		if err != nil {
			log.Fatalf("nats connect: %v", err)
		}
		defer nc.Drain()
		publisher = submission.NewPublisher(nc)
	}

	var walker conversation.Walker
	if cfg.Maps.APIKey != "" {
		ws, err := botmaps.NewWalkingService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("maps client: %v", err)
		}
		walker = ws
	}

	collector := metrics.NewCollector()

	client := whatsapp.NewClient(cfg.WhatsApp, logger)
	notifier := whatsapp.NewNotifier(client, cfg.Bot)

	submissionSvc := submission.NewService(
		submission.NewStore(dbPool), notifier, publisher, collector, logger)

	zoneSvc := zone.NewService(zone.NewStore(dbPool), logger)

	engine := conversation.NewService(conversation.Deps{
		Directory:         student.NewStore(dbPool),
		Routes:            route.NewStore(dbPool),
		Zones:             zoneSvc,
		Submissions:       submissionSvc,
		Messenger:         client,
		Notifier:          notifier,
		Walker:            walker,
		Collector:         collector,
		Logger:            logger,
		InactivityTimeout: cfg.Bot.InactivityTimeout,
	})

	server := httptransport.NewServer(cfg.HTTP.Addr, httptransport.ServerDeps{
		Engine:      engine,
		Dedup:       dedupStore,
		Collector:   collector,
		VerifyToken: cfg.WhatsApp.VerifyToken,
		Logger:      logger,
	})

	logger.Info("listening", "addr", cfg.HTTP.Addr)
	if err := server.Run(ctx); err != nil {
		log.Fatal(err)
	}
}
