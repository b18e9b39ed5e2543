package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/minimono-api/internal/config"
	"github.com/phrazzld/minimono-api/internal/events"
	"github.com/phrazzld/minimono-api/internal/mapping"
	"github.com/phrazzld/minimono-api/internal/mediator"
	"github.com/phrazzld/minimono-api/internal/platform/logger"
	"github.com/phrazzld/minimono-api/internal/platform/metrics"
	"github.com/phrazzld/minimono-api/internal/platform/postgres"
	"github.com/phrazzld/minimono-api/internal/polymorph"
	"github.com/phrazzld/minimono-api/internal/service"
	"github.com/phrazzld/minimono-api/internal/service/auth"
	"github.com/phrazzld/minimono-api/internal/store"
	"github.com/phrazzld/minimono-api/internal/validation"
)

// application holds the wired dependencies of the server.
type application struct {
	config     *config.Config
	logger     *slog.Logger
	db         *sql.DB
	metrics    *metrics.Metrics
	mediator   *mediator.Mediator
	content    *service.ContentConverter
	jwtService auth.JWTService
}

// runServe loads configuration, connects to the database and serves HTTP
// until ctx is cancelled or a termination signal arrives.
func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	l.Info("starting minimono API",
		slog.Int("port", cfg.Server.Port),
		slog.String("environment", cfg.Server.Environment))

	db, err := openDatabase(ctx, cfg.Database, l)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, l, db)
	if err != nil {
		_ = db.Close()
		return err
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}

// newApplication wires stores, registries and the request pipeline around
// an open database.
func newApplication(cfg *config.Config, l *slog.Logger, db *sql.DB) (*application, error) {
	if cfg == nil || l == nil || db == nil {
		return nil, fmt.Errorf("config, logger and database are required")
	}

	registry := service.NewContentRegistry()
	if err := registry.Verify(); err != nil {
		return nil, fmt.Errorf("lesson content registry is incomplete: %w", err)
	}

	var converterOpts []polymorph.Option
	if cfg.Pipeline.CaseInsensitiveDiscriminator {
		converterOpts = append(converterOpts, polymorph.CaseInsensitive())
	}
	content := service.NewContentConverter(registry, converterOpts...)

	mappings := mapping.NewRegistry()
	if err := service.RegisterMappings(mappings); err != nil {
		return nil, fmt.Errorf("failed to register mappings: %w", err)
	}

	validators := validation.NewRegistry()
	service.RegisterValidators(validators)

	stamper := store.NewStamper(time.Now, auth.ActorFromContext)
	courses := postgres.NewPostgresCourseStore(db, stamper, l)
	lessons := postgres.NewPostgresLessonStore(db, content, stamper, l)

	m := metrics.New()

	emitter := events.NewInMemoryEventEmitter(l)
	emitter.RegisterHandler(events.NewLoggingHandler(l))
	emitter.RegisterHandler(m)

	med := mediator.New(
		mediator.WithBehaviors(
			mediator.ExceptionCapture(l, m),
			mediator.Validation(validators),
			mediator.Performance(l,
				mediator.WithThreshold(time.Duration(cfg.Pipeline.SlowRequestThresholdMS)*time.Millisecond),
				mediator.WithRecorder(m),
				mediator.WithCaller(callerIdentity),
			),
		),
		mediator.WithPublisher(emitter),
		mediator.WithLogger(l),
	)

	handlers, err := service.NewHandlers(service.Deps{
		DB:         db,
		Courses:    courses,
		Lessons:    lessons,
		Mappings:   mappings,
		Validators: validators,
		Logger:     l,
	})
	if err != nil {
		return nil, err
	}
	service.Register(med, handlers)

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	return &application{
		config:     cfg,
		logger:     l,
		db:         db,
		metrics:    m,
		mediator:   med,
		content:    content,
		jwtService: jwtService,
	}, nil
}

// callerIdentity reports the caller for slow request logs.
func callerIdentity(ctx context.Context) (string, string) {
	c, ok := auth.CallerFromContext(ctx)
	if !ok {
		return "", ""
	}
	return c.ID.String(), c.Name
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db == nil {
		return
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database connection", slog.String("error", err.Error()))
		return
	}
	app.logger.Info("database connection closed")
}
