// Command aura runs the aura client: it restores the last session, keeps it
// in step with the booking API and serves the guarded views on a local
// address.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/aura-home/aura-client/internal/api"
	"github.com/aura-home/aura-client/internal/core/credential"
	"github.com/aura-home/aura-client/internal/core/domain"
	"github.com/aura-home/aura-client/internal/core/guard"
	"github.com/aura-home/aura-client/internal/core/ports"
	"github.com/aura-home/aura-client/internal/core/service"
	"github.com/aura-home/aura-client/internal/core/session"
	"github.com/aura-home/aura-client/internal/infrastructure/apiclient"
	"github.com/aura-home/aura-client/internal/infrastructure/db/redis"
	"github.com/aura-home/aura-client/internal/infrastructure/queue"
	"github.com/aura-home/aura-client/internal/infrastructure/sessionfile"
	"github.com/aura-home/aura-client/internal/pkg/config"
	"github.com/aura-home/aura-client/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg := config.Load()

	flagSet := pflag.NewFlagSet("aura", pflag.ContinueOnError)
	flagSet.StringVar(&cfg.Shell.Addr, "addr", cfg.Shell.Addr, "address the view shell listens on")
	flagSet.StringVar(&cfg.Shell.RoutesFile, "routes", cfg.Shell.RoutesFile, "access rules file (built-in table when empty)")
	flagSet.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "trace, debug, info, warn or error")
	flagSet.BoolVar(&cfg.LogPretty, "pretty", cfg.LogPretty, "human-friendly console logs")
	flagSet.StringVar(&cfg.Credential.Backend, "credential-backend", cfg.Credential.Backend, "where the credential is kept: file, memory or redis")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty, Env: cfg.Env})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Credential store ---
	backend, rdb, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}
	creds := credential.NewStore(backend, logger.For(log, "credential"))

	// --- Request pipeline and typed services ---
	client, err := apiclient.New(cfg.API.BaseURL, cfg.API.Timeout, creds, logger.For(log, "apiclient"))
	if err != nil {
		return err
	}

	// --- Session store and its events ---
	events := queue.NewDispatcher(logger.For(log, "events"))
	store := session.NewStore(service.NewAuthService(client), creds, events, logger.For(log, "session"))
	client.OnUnauthorized(store.HandleUnauthorized)

	shellLog := logger.For(log, "shell")
	events.Subscribe("shell-log", func(_ context.Context, ev domain.SessionEvent) {
		switch ev.Kind {
		case domain.EventLoginRequired:
			path := ""
			if ev.Cause != nil {
				path = ev.Cause.Path
			}
			shellLog.Info().Str("path", path).Msg("login required")
		default:
			shellLog.Debug().Str("status", string(ev.State.Status)).Msg("session changed")
		}
	})
	events.Start(ctx)

	// Loading is entered before the shell serves anything, so views asked
	// for while the credential is still being read get a pending answer.
	store.BeginRestore()
	go func() {
		if err := store.Restore(ctx); err != nil {
			log.Info().Err(err).Msg("no session restored")
		}
	}()

	// --- View shell ---
	rules, err := guard.LoadRules(cfg.Shell.RoutesFile)
	if err != nil {
		return err
	}

	deps := api.Deps{
		Session:      store,
		Catalog:      service.NewCatalogService(client),
		Technicians:  service.NewTechnicianService(client),
		Reservations: service.NewReservationService(client),
		Reviews:      service.NewReviewService(client),
		Payments:     service.NewPaymentService(client),
		Users:        service.NewUserService(client),
		Rules:        rules,
		Paths:        guard.Paths{Login: cfg.Shell.LoginPath, Fallback: cfg.Shell.FallbackPath},
		PhoneRegion:  cfg.Shell.PhoneRegion,
		APIBaseURL:   client.BaseURL(),
		Log:          logger.For(log, "http"),
	}
	if rdb != nil {
		deps.Redis = rdb
	}
	e := api.NewRouter(deps)

	serveErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", cfg.Shell.Addr).
			Str("api", client.BaseURL()).
			Str("credential_backend", cfg.Credential.Backend).
			Msg("aura shell listening")
		if err := e.Start(cfg.Shell.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("view shell: %w", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	stop()
	events.Wait()

	log.Info().Msg("aura shell stopped")
	return nil
}

// openBackend picks where the credential is persisted. The Redis client is
// returned so the readiness probe can ping it.
func openBackend(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.CredentialBackend, *goredis.Client, error) {
	switch cfg.Credential.Backend {
	case config.BackendMemory:
		return credential.NewMemoryBackend(), nil, nil

	case config.BackendRedis:
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, nil, err
		}
		return redis.NewCredentialBackend(rdb, cfg.Redis.Session, cfg.Redis.TTL), rdb, nil

	default:
		path := cfg.Credential.File
		if path == "" {
			path = sessionfile.DefaultPath()
		}
		b, err := sessionfile.New(path, cfg.Credential.Key)
		if err != nil {
			return nil, nil, err
		}
		log.Debug().Str("path", b.Path()).Bool("encrypted", b.Encrypted()).Msg("credential file")
		return b, nil, nil
	}
}
