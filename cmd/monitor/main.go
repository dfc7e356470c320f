package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/begbajrami/begdar/internal/adapter/httpapi"
	kafkaadapter "github.com/begbajrami/begdar/internal/adapter/kafka"
	"github.com/begbajrami/begdar/internal/config"
	"github.com/begbajrami/begdar/internal/feed"
	"github.com/begbajrami/begdar/internal/observability"
	"github.com/begbajrami/begdar/internal/poller"
	"github.com/begbajrami/begdar/internal/report"
	"github.com/begbajrami/begdar/internal/source"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		observability.NewLogger("info", "json").Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	engine := feed.NewEngine(cfg.PushedEventCap, logger, metrics)
	store := report.NewStore(clockwork.NewRealClock())

	// The community stream has no poller; it is live as soon as the push
	// path exists, and its event count tracks the held push list.
	engine.Register(source.NameCommunity)
	engine.SetStatus(source.NameCommunity, feed.StatusLive, time.Now())

	sources := []source.Source{
		source.NewUSGS(cfg.USGSInterval, cfg.FetchTimeout, logger),
		source.NewGDELT(cfg.GDELTInterval, cfg.FetchTimeout, logger),
		source.NewACLED(cfg.ACLEDKey, cfg.ACLEDEmail, cfg.ACLEDInterval, cfg.FetchTimeout, logger),
		source.NewReliefWeb(cfg.ReliefWebAppName, cfg.ReliefWebInterval, cfg.FetchTimeout, logger),
	}

	p := poller.New(engine, clockwork.NewRealClock(), logger, metrics, sources...)

	srv := httpapi.NewServer(cfg.HTTPAddr, engine, store, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start the source poller.
	go p.Run(ctx)

	// Locally approved reports feed straight into the live view.
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event := <-store.Approved():
				engine.Push(event)
				metrics.ReportsApproved.Inc()
			}
		}
	}()

	// The Kafka consumer ingests reports approved by an external moderation
	// service; it is optional and only runs when brokers are configured.
	var consumer *kafkaadapter.ReportConsumer
	if cfg.KafkaEnabled() {
		consumer = kafkaadapter.NewReportConsumer(cfg, engine, logger, metrics)
		go func() {
			if err := consumer.Run(ctx); err != nil {
				logger.Error("report consumer error", "error", err)
			}
		}()
	} else {
		logger.Info("kafka report consumer disabled")
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			logger.Error("report consumer close error", "error", err)
		}
	}
	engine.Close()

	logger.Info("shutdown complete")
}
