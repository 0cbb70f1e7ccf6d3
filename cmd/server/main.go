package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrymomot/newsletter/migrations"
	"github.com/dmitrymomot/newsletter/pkg/config"
	"github.com/dmitrymomot/newsletter/pkg/email"
	"github.com/dmitrymomot/newsletter/pkg/httpserver"
	"github.com/dmitrymomot/newsletter/pkg/logger"
	"github.com/dmitrymomot/newsletter/pkg/pg"
	"github.com/dmitrymomot/newsletter/pkg/requestid"
	"github.com/dmitrymomot/newsletter/svc/newsletter"
	"github.com/dmitrymomot/newsletter/svc/newsletter/postgres"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("server exited", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if err := config.LoadEnv(); err != nil {
		return err
	}

	var appCfg appConfig
	if err := config.Load(&appCfg); err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(appCfg.Env, appCfg.Name),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	store, checks, closeStore, err := openStore(ctx, appCfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	var emailCfg email.Config
	if err := config.Load(&emailCfg); err != nil {
		return err
	}
	sender, err := email.NewSender(ctx, emailCfg)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	service := newsletter.New(store, sender,
		newsletter.WithLogger(log),
		newsletter.WithMetrics(newsletter.NewMetrics(reg)),
		newsletter.WithBaseURL(appCfg.BaseURL),
		newsletter.WithPublishConcurrency(appCfg.PublishConcurrency),
	)

	var httpCfg httpserver.Config
	if err := config.Load(&httpCfg); err != nil {
		return err
	}
	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))

	log.InfoContext(ctx, "starting newsletter service",
		slog.String("store", appCfg.StoreDriver),
		slog.String("email_provider", emailCfg.Provider),
		slog.String("base_url", appCfg.BaseURL),
	)

	return srv.Run(ctx, newRouter(routerDeps{
		service:  service,
		logger:   log,
		gatherer: reg,
		checks:   checks,
	}))
}

// openStore returns the store selected by STORE_DRIVER, its readiness checks
// and a cleanup func.
func openStore(ctx context.Context, appCfg appConfig, log *slog.Logger) (newsletter.Store, []httpserver.Check, func(), error) {
	switch appCfg.StoreDriver {
	case storeDriverMemory:
		log.WarnContext(ctx, "using in-memory store, data is lost on restart")
		return newsletter.NewMemoryStore(), nil, func() {}, nil

	case storeDriverPostgres:
		var pgCfg pg.Config
		if err := config.Load(&pgCfg); err != nil {
			return nil, nil, nil, err
		}

		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return nil, nil, nil, err
		}
		db := pg.OpenDB(pool)
		closeFn := func() {
			_ = db.Close()
			pool.Close()
		}

		if pgCfg.AutoMigrate {
			if err := pg.Migrate(ctx, db, migrations.FS, ".", pgCfg, log); err != nil {
				closeFn()
				return nil, nil, nil, err
			}
		}

		return postgres.New(db), []httpserver.Check{pg.Healthcheck(pool)}, closeFn, nil

	default:
		return nil, nil, nil, errors.Join(errUnknownStoreDriver, fmt.Errorf("STORE_DRIVER=%q", appCfg.StoreDriver))
	}
}
