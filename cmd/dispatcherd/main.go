// Command dispatcherd runs the job scheduling service: a JSON-over-HTTP
// API for managing jobs, a durable timezone-aware scheduling engine, and
// a worker pool publishing tenant records to the message bus.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"github.com/valkey-io/valkey-go"

	"github.com/fluxcron/dispatcher"
	"github.com/fluxcron/dispatcher/eventbus"
	"github.com/fluxcron/dispatcher/executor"
	"github.com/fluxcron/dispatcher/health"
	pgxcheck "github.com/fluxcron/dispatcher/health/checks/pgx"
	valkeycheck "github.com/fluxcron/dispatcher/health/checks/valkey"
	"github.com/fluxcron/dispatcher/httpapi"
	"github.com/fluxcron/dispatcher/jobservice"
	"github.com/fluxcron/dispatcher/jobstore"
	"github.com/fluxcron/dispatcher/logger"
	"github.com/fluxcron/dispatcher/publisher"
	"github.com/fluxcron/dispatcher/records"
	"github.com/fluxcron/dispatcher/scheduler"
	"github.com/fluxcron/dispatcher/server"
	"github.com/fluxcron/dispatcher/server/otel"
	"github.com/fluxcron/dispatcher/timezone"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "dispatcherd",
		Short: "Timezone-aware job scheduler dispatching tenant records to the message bus",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := &Config{}
			mgr := gaz.NewConfigManager(cfg,
				gaz.WithName("dispatcher"),
				gaz.WithEnvPrefix("DISPATCHER"),
			)
			if err := mgr.Load(); err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			return newApp(cfg).Run(cmd.Context())
		},
	}
	return rootCmd.Execute()
}

// newApp wires the full service graph.
func newApp(cfg *Config) *gaz.App {
	healthCfg := health.DefaultConfig()
	healthCfg.Port = cfg.HealthPort

	logLevel := slog.LevelInfo
	app := gaz.New(
		gaz.WithLoggerConfig(&logger.Config{Level: logLevel, Format: cfg.LogFormat}),
		health.WithHealthChecks(healthCfg),
	)

	app.ProvideInstance(cfg)

	// Postgres pool, closed on shutdown.
	gaz.For[*pgxpool.Pool](app.Container()).
		OnStop(func(_ context.Context, pool *pgxpool.Pool) error {
			pool.Close()
			return nil
		}).
		Provider(func(_ *gaz.Container) (*pgxpool.Pool, error) {
			pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
			if err != nil {
				return nil, fmt.Errorf("connect postgres: %w", err)
			}
			return pool, nil
		})

	// Valkey client for the message bus, closed on shutdown.
	gaz.For[valkey.Client](app.Container()).
		OnStop(func(_ context.Context, client valkey.Client) error {
			client.Close()
			return nil
		}).
		Provider(func(_ *gaz.Container) (valkey.Client, error) {
			client, err := valkey.NewClient(valkey.ClientOption{InitAddress: cfg.ValkeyAddrs})
			if err != nil {
				return nil, fmt.Errorf("connect valkey: %w", err)
			}
			return client, nil
		})

	app.UseDI(timezone.NewModule(timezone.WithDefaultZone(cfg.DefaultZone))).
		UseDI(jobstore.NewModule()).
		UseDI(records.NewModule()).
		UseDI(publisher.NewModule(
			publisher.WithTopic(cfg.BusTopic),
			publisher.WithPartitions(cfg.BusPartitions),
		)).
		UseDI(scheduler.NewModule(
			scheduler.WithWorkers(cfg.WorkerPoolSize),
			scheduler.WithQueueCapacity(cfg.FireQueueCapacity),
		)).
		UseDI(executor.NewModule()).
		UseDI(jobservice.NewModule()).
		UseDI(httpapi.NewModule()).
		UseDI(server.NewModule(server.WithHTTPPort(cfg.HTTPPort))).
		Use(otel.NewModule())

	// Readiness checks for the two external dependencies.
	app.ProvideEager(func(c *gaz.Container) (*readinessChecks, error) {
		manager, err := gaz.Resolve[*health.Manager](c)
		if err != nil {
			return nil, err
		}
		pool, err := gaz.Resolve[*pgxpool.Pool](c)
		if err != nil {
			return nil, err
		}
		client, err := gaz.Resolve[valkey.Client](c)
		if err != nil {
			return nil, err
		}

		manager.AddReadinessCheck("postgres", pgxcheck.New(pgxcheck.Config{Pool: pool}))
		manager.AddReadinessCheck("valkey", valkeycheck.New(valkeycheck.Config{Client: client}))
		return &readinessChecks{}, nil
	})

	// Audit log for completed fires via the in-process event bus.
	app.ProvideEager(func(c *gaz.Container) (*fireAudit, error) {
		bus, err := gaz.Resolve[*eventbus.EventBus](c)
		if err != nil {
			return nil, err
		}
		log, err := gaz.Resolve[*slog.Logger](c)
		if err != nil {
			log = slog.Default()
		}

		sub := eventbus.Subscribe(bus, func(_ context.Context, e executor.FireCompleted) {
			log.Info("fire completed",
				"job_id", e.JobID, "tenant_id", e.TenantID,
				"succeeded", e.Succeeded, "records", e.Records, "published", e.Published)
		})
		return &fireAudit{sub: sub}, nil
	})

	return app
}

// readinessChecks is a marker service whose construction attaches the
// dependency health checks.
type readinessChecks struct{}

// fireAudit holds the audit-log subscription for the app lifetime.
type fireAudit struct {
	sub *eventbus.Subscription
}
