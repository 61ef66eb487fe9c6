// Command uploadrelay runs the upload relay: a small HTTP service that
// authenticates uploads against an identity provider and forwards them to a
// bot-style document API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skillsenselab/uploadrelay/auth"
	"github.com/skillsenselab/uploadrelay/config"
	"github.com/skillsenselab/uploadrelay/docstore"
	"github.com/skillsenselab/uploadrelay/logger"
	"github.com/skillsenselab/uploadrelay/observability"
	"github.com/skillsenselab/uploadrelay/relay"
	"github.com/skillsenselab/uploadrelay/server"
)

const serviceName = "uploadrelay"

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		logger.NewDefault(serviceName).WithError(err).Fatal("invalid configuration")
	}

	logger.Init(cfg.Logging)
	log := logger.New(&cfg.Logging, serviceName)
	logger.SetGlobalLogger(log)

	log.Info("configuration loaded", cfg.Summary())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownObservability := setupObservability(ctx, cfg, log)
	defer shutdownObservability()

	verifier, err := auth.NewVerifier(ctx, auth.VerifierConfig{
		Issuer:   cfg.IdentityIssuer,
		Audience: cfg.IdentityAudience,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to create token verifier")
	}

	store, err := docstore.New(docstore.Config{
		BaseURL:  cfg.APIBaseURL,
		BotToken: cfg.BotToken,
		ChatID:   cfg.ChatID,
		Timeout:  cfg.ForwardTimeout,
	}, log)
	if err != nil {
		log.WithError(err).Fatal("failed to create document store client")
	}

	srv := server.New(server.Config{
		Host:          cfg.Host,
		Port:          cfg.Port,
		MaxBodySize:   cfg.MaxUploadSize,
		AllowedOrigin: cfg.AllowedOrigin,
	}, log)

	handler := relay.NewHandler(verifier, store, relay.Config{
		ForwardTimeout: cfg.ForwardTimeout,
	}, log)
	handler.RegisterRoutes(srv.GinEngine(), serviceName)

	if err := srv.Start(ctx); err != nil {
		log.WithError(err).Fatal("failed to start server")
	}
	log.Info("upload relay ready", logger.Fields("addr", cfg.Addr()))

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown error")
		os.Exit(1)
	}
}

// setupObservability initializes OTLP export when an endpoint is configured.
// Returns a shutdown function; with no endpoint it is a no-op.
func setupObservability(ctx context.Context, cfg *config.Config, log *logger.Logger) func() {
	if cfg.OTELEndpoint == "" {
		return func() {}
	}

	obsCfg := observability.Config{
		ServiceName: serviceName,
		Endpoint:    cfg.OTELEndpoint,
		Insecure:    true,
	}

	tp, err := observability.InitTracer(ctx, obsCfg)
	if err != nil {
		log.WithError(err).Warn("tracing disabled")
		tp = nil
	}
	mp, err := observability.InitMeter(ctx, obsCfg)
	if err != nil {
		log.WithError(err).Warn("metrics disabled")
		mp = nil
	}

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if tp != nil {
			if err := tp.Shutdown(shutdownCtx); err != nil {
				log.WithError(err).Warn("tracer shutdown error")
			}
		}
		if mp != nil {
			if err := mp.Shutdown(shutdownCtx); err != nil {
				log.WithError(err).Warn("meter shutdown error")
			}
		}
	}
}
