// Package main is the entry point for the StudyHall backend server.
//
// The architecture follows Clean Architecture and DDD:
// - Domain: scheduling, deadlines, tasks and syllabus logic with no external dependencies
// - Application: command/query services and event handlers
// - Infrastructure: Postgres persistence, Redis caching, cron jobs
// - Interface: the REST API
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/studyhall/studyhall/config"
	"github.com/studyhall/studyhall/internal/application/command"
	"github.com/studyhall/studyhall/internal/application/eventhandler"
	"github.com/studyhall/studyhall/internal/application/query"
	"github.com/studyhall/studyhall/internal/domain/deadline"
	"github.com/studyhall/studyhall/internal/domain/schedule"
	"github.com/studyhall/studyhall/internal/domain/syllabus"
	"github.com/studyhall/studyhall/internal/domain/task"
	"github.com/studyhall/studyhall/internal/infrastructure/messaging"
	"github.com/studyhall/studyhall/internal/infrastructure/notify"
	"github.com/studyhall/studyhall/internal/infrastructure/persistence/memory"
	"github.com/studyhall/studyhall/internal/infrastructure/persistence/postgres"
	rediscache "github.com/studyhall/studyhall/internal/infrastructure/persistence/redis"
	"github.com/studyhall/studyhall/internal/infrastructure/scheduler"
	"github.com/studyhall/studyhall/internal/infrastructure/scheduler/jobs"
	httpserver "github.com/studyhall/studyhall/internal/interface/http"
	"github.com/studyhall/studyhall/pkg/logger"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

// repositories groups the five collection repositories behind their domain
// interfaces, so the rest of the wiring does not care which backend serves
// them.
type repositories struct {
	Blocks      schedule.Repository
	Assignments deadline.AssignmentRepository
	Exams       deadline.ExamRepository
	Todos       task.Repository
	Modules     syllabus.Repository
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. Configuration
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. Logging
	// ─────────────────────────────────────────────────────────────────────────
	slogger := setupSlog(cfg)
	log := logger.New(logger.Options{
		Level:     logger.ParseLevel(cfg.App.LogLevel),
		AddCaller: cfg.App.Debug,
	})
	log.Info("starting StudyHall server",
		logger.String("env", string(cfg.App.Environment)),
		logger.String("version", cfg.App.Version),
		logger.Bool("debug", cfg.App.Debug),
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. Persistence
	// ─────────────────────────────────────────────────────────────────────────
	var repos repositories
	var pingDB func(ctx context.Context) error

	if cfg.Database.URL != "" {
		log.Info("connecting to database")
		conn, err := postgres.NewConnectionFromURL(ctx, cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer conn.Close()

		log.Info("running database migrations")
		if err := postgres.NewMigrator(conn).Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		repos = repositories{
			Blocks:      postgres.NewScheduleRepository(conn),
			Assignments: postgres.NewAssignmentRepository(conn),
			Exams:       postgres.NewExamRepository(conn),
			Todos:       postgres.NewTodoRepository(conn),
			Modules:     postgres.NewSyllabusRepository(conn),
		}
		pingDB = conn.Ping
	} else {
		// Development fallback. Data lives only as long as the process.
		log.Warn("DATABASE_URL not set, using in-memory repositories")
		repos = repositories{
			Blocks:      memory.NewScheduleRepository(),
			Assignments: memory.NewAssignmentRepository(),
			Exams:       memory.NewExamRepository(),
			Todos:       memory.NewTodoRepository(),
			Modules:     memory.NewSyllabusRepository(),
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 4. Redis cache (optional)
	// ─────────────────────────────────────────────────────────────────────────
	var indexCache query.AgendaIndexCache
	var pingCache func(ctx context.Context) error

	if !cfg.Redis.Disabled {
		log.Info("connecting to Redis", logger.String("addr", cfg.Redis.Addr()))
		cache, err := rediscache.NewCache(ctx, rediscache.Config{
			Addr:         cfg.Redis.Addr(),
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		}, cfg.App.Name)
		if err != nil {
			log.Warn("failed to connect to Redis, agenda caching disabled", logger.Err(err))
		} else {
			defer cache.Close()
			indexCache = rediscache.NewAgendaCache(cache, cfg.Agenda.IndexTTL)
			pingCache = cache.Ping
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 5. Event bus and handlers
	// ─────────────────────────────────────────────────────────────────────────
	eventBus := messaging.NewEventBus(messaging.EventBusConfig{Logger: slogger})
	defer func() { _ = eventBus.Close() }()

	if indexCache != nil {
		invalidator := eventhandler.NewAgendaInvalidator(indexCache, log)
		for _, et := range eventhandler.EventTypes() {
			if err := eventBus.Subscribe(et, invalidator); err != nil {
				return fmt.Errorf("failed to subscribe invalidator: %w", err)
			}
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 6. Application layer
	// ─────────────────────────────────────────────────────────────────────────
	scheduleCmds := command.NewScheduleCommands(repos.Blocks, eventBus, log)
	deadlineCmds := command.NewDeadlineCommands(repos.Assignments, repos.Exams, eventBus, log)
	todoCmds := command.NewTodoCommands(repos.Todos, eventBus, log)
	syllabusCmds := command.NewSyllabusCommands(repos.Modules, eventBus, log)

	agendaQueries := query.NewAgendaQueries(repos.Blocks, repos.Assignments, repos.Exams, repos.Todos, indexCache, log)
	syllabusQueries := query.NewSyllabusQueries(repos.Modules)
	deadlineQueries := query.NewDeadlineQueries(repos.Assignments, repos.Exams)

	// ─────────────────────────────────────────────────────────────────────────
	// 7. Background jobs
	// ─────────────────────────────────────────────────────────────────────────
	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched = scheduler.New(scheduler.Config{
			Logger:     slogger,
			JobTimeout: cfg.Scheduler.JobTimeout,
		})

		channel := notify.NewConsoleChannel()
		digest := jobs.NewAgendaDigestJob(agendaQueries, repos.Assignments, channel, log)
		revision := jobs.NewRevisionScanJob(syllabusQueries, repos.Modules, channel, log)

		if err := sched.AddJob(cfg.Scheduler.AgendaDigestSpec, digest); err != nil {
			return fmt.Errorf("failed to schedule agenda digest: %w", err)
		}
		if err := sched.AddJob(cfg.Scheduler.RevisionScanSpec, revision); err != nil {
			return fmt.Errorf("failed to schedule revision scan: %w", err)
		}

		sched.Start()
		defer sched.Stop()
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 8. HTTP server
	// ─────────────────────────────────────────────────────────────────────────
	httpConfig := httpserver.DefaultConfig()
	httpConfig.Host = cfg.HTTP.Host
	httpConfig.Port = cfg.HTTP.Port
	httpConfig.ReadTimeout = cfg.HTTP.ReadTimeout
	httpConfig.WriteTimeout = cfg.HTTP.WriteTimeout
	httpConfig.IdleTimeout = cfg.HTTP.IdleTimeout
	httpConfig.EnableCORS = cfg.HTTP.EnableCORS
	httpConfig.AllowedOrigins = cfg.HTTP.AllowedOrigins
	httpConfig.RateLimitPerMinute = cfg.HTTP.RateLimitPerMinute

	server := httpserver.NewServer(httpConfig, httpserver.Dependencies{
		ScheduleCommands: scheduleCmds,
		DeadlineCommands: deadlineCmds,
		TodoCommands:     todoCmds,
		SyllabusCommands: syllabusCmds,
		AgendaQueries:    agendaQueries,
		SyllabusQueries:  syllabusQueries,
		DeadlineQueries:  deadlineQueries,
		Lists: httpserver.ListProviders{
			Blocks:      repos.Blocks,
			Assignments: repos.Assignments,
			Exams:       repos.Exams,
			Todos:       repos.Todos,
		},
		PingDB:    pingDB,
		PingCache: pingCache,
		Logger:    log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting HTTP server", logger.String("address", server.Address()))
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// ─────────────────────────────────────────────────────────────────────────
	// 9. Graceful shutdown
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("StudyHall server is running", logger.String("address", server.Address()))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", logger.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("service error", logger.Err(err))
		return err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to stop HTTP server gracefully", logger.Err(err))
		return err
	}

	log.Info("shutdown completed")
	return nil
}

// setupSlog configures the slog logger used by the infrastructure packages.
func setupSlog(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if cfg.App.Debug {
		opts.Level = slog.LevelDebug
	}

	var handler slog.Handler
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)
	return log
}
