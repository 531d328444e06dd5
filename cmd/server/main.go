package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"entryledger/internal/audit"
	"entryledger/internal/eventstore"
	"entryledger/internal/identity"
	"entryledger/internal/platform/config"
	"entryledger/internal/platform/httpserver"
	"entryledger/internal/platform/kafka"
	"entryledger/internal/platform/logger"
	"entryledger/internal/platform/metrics"
	"entryledger/internal/platform/postgres"
	"entryledger/internal/platform/redis"
	"entryledger/internal/policy"
	"entryledger/internal/projection"
	httptransport "entryledger/internal/transport/http"
	"entryledger/internal/workflow"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal packages.
func main() {
	log := logger.New()
	if err := run(log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	// Durable stores when Postgres is configured, in-memory otherwise.
	var (
		events     eventstore.Store = eventstore.NewMemoryStore()
		auditStore audit.Store      = audit.NewMemoryStore()
		health                      = map[string]httptransport.HealthChecker{}
	)
	db, err := postgres.Open(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		events = eventstore.NewPostgres(db)
		auditStore = audit.NewPostgres(db)
		health["postgres"] = db.PingContext
	}

	// Projection cache: Redis when configured, in-memory otherwise. The
	// cache is rebuildable, so losing it is never fatal.
	var projStore projection.Store = projection.NewMemoryStore()
	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		projStore = projection.NewRedisStore(redisClient.Client)
		health["redis"] = redisClient.Health
	}

	// Audit fan-out through Kafka when brokers are configured. The primary
	// store append stays the source of truth either way.
	var (
		publisher audit.Publisher
		group     *errgroup.Group
	)
	group, ctx = errgroup.WithContext(ctx)
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := kafka.NewProducer(cfg.Kafka.Brokers, log)
		if err != nil {
			return err
		}
		defer producer.Close()
		if err := producer.EnsureTopic(ctx, audit.Topic, 3); err != nil {
			return err
		}
		publisher = audit.NewKafkaPublisher(producer)

		consumer, err := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.ConsumerGroup,
			[]string{audit.Topic}, audit.NewMaterializeHandler(auditStore, log), log)
		if err != nil {
			return err
		}
		group.Go(func() error {
			defer consumer.Close()
			err := consumer.Run(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}

	auditLog := audit.NewLogger(auditStore, publisher, log, m)
	projector := projection.NewProjector(projStore, log)
	workflowSvc := workflow.NewService(events, projector, log, m)
	engine := policy.NewEngine(log)
	tokens := identity.NewTokenService(cfg.JWTSigningKey, "entryledger")
	authz := httptransport.NewAuthorizer(engine, auditLog, workflowSvc, log, m)

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Tokens:     tokens,
		Authorizer: authz,
		Operator:   httptransport.NewOperatorHandler(workflowSvc, projector, log),
		Supervisor: httptransport.NewSupervisorHandler(workflowSvc, projector, log),
		Auditor:    httptransport.NewAuditorHandler(workflowSvc, projector, auditLog, log),
		Admin:      httptransport.NewAdminHandler(projector, events, log),
		Logger:     log,
		Health:     health,
	})

	srv := httpserver.New(cfg.Addr, router)
	group.Go(func() error {
		log.Info("starting entryledger", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return group.Wait()
}
