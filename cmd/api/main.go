package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"
	_ "time/tzdata"

	analyticsSource "kb-analytics-service/internal/analytics/adapters/eventsource"
	analyticsHttp "kb-analytics-service/internal/analytics/adapters/http/fiber"
	analyticsXlsx "kb-analytics-service/internal/analytics/adapters/xlsx"
	"kb-analytics-service/internal/analytics/core/domain"
	"kb-analytics-service/internal/analytics/core/engine"
	analyticsUsecase "kb-analytics-service/internal/analytics/core/usecase"
	"kb-analytics-service/internal/config"
	"kb-analytics-service/internal/jobs"
	"kb-analytics-service/internal/logger"
	"kb-analytics-service/internal/platform/sqldb"

	eventsHttp "kb-analytics-service/internal/events/adapters/http/fiber"
	eventsRepoPg "kb-analytics-service/internal/events/adapters/postgres"
	eventsUsecase "kb-analytics-service/internal/events/core/usecase"

	metricsHttp "kb-analytics-service/internal/metrics/adapters/http/fiber"
	metricsRepoPg "kb-analytics-service/internal/metrics/adapters/postgres"
	metricsUsecase "kb-analytics-service/internal/metrics/core/usecase"

	qalogsHttp "kb-analytics-service/internal/qalogs/adapters/http/fiber"
	qalogsRepoPg "kb-analytics-service/internal/qalogs/adapters/postgres"
	qalogsUsecase "kb-analytics-service/internal/qalogs/core/usecase"

	"github.com/gofiber/fiber/v2"
	_ "github.com/lib/pq"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	_ "kb-analytics-service/docs"
)

// Route is implemented by every HTTP handler that mounts its own routes.
type Route interface {
	Register(r fiber.Router)
}

func asRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

func NewDatabase(lc fx.Lifecycle, cfg *config.Config) (*sql.DB, error) {
	db, err := sqldb.Open(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := db.PingContext(ctx); err != nil {
				return fmt.Errorf("ping postgres: %w", err)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return db.Close()
		},
	})
	return db, nil
}

func NewEngineOptions(cfg *config.Config) (engine.Options, error) {
	return cfg.EngineOptions()
}

func NewFiberServer() *fiber.App {
	return fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
}

func NewEventRepository(db sqldb.DB) *eventsRepoPg.EventRepository {
	return eventsRepoPg.NewEventRepository(db)
}

func NewMetricsRepository(db sqldb.DB) *metricsRepoPg.MetricsRepository {
	return metricsRepoPg.NewMetricsRepository(db)
}

func NewQaLogRepository(db sqldb.DB) *qalogsRepoPg.QaLogRepository {
	return qalogsRepoPg.NewQaLogRepository(db)
}

func NewGetDashboardUseCase(repo *eventsRepoPg.EventRepository, opts engine.Options, log *zap.Logger) *analyticsUsecase.GetDashboardUseCase {
	return analyticsUsecase.NewGetDashboardUseCase(analyticsSource.NewEventsRepositorySource(repo), opts, log)
}

func NewDashboardSession(uc *analyticsUsecase.GetDashboardUseCase, cfg *config.Config, log *zap.Logger) *analyticsUsecase.DashboardSession {
	return analyticsUsecase.NewDashboardSession(uc, domain.TimeFrame(cfg.DefaultTimeFrame), log)
}

func NewExportFeedbackUseCase(uc *analyticsUsecase.GetDashboardUseCase, opts engine.Options) *analyticsUsecase.ExportFeedbackUseCase {
	return analyticsUsecase.NewExportFeedbackUseCase(uc, analyticsXlsx.NewFeedbackExporter(), opts.Locale.Tag())
}

func NewGetLimitsUseCase(cfg *config.Config) *analyticsUsecase.GetLimitsUseCase {
	return analyticsUsecase.NewGetLimitsUseCase(cfg.Limits())
}

func NewPurgeEventsUseCase(repo *eventsRepoPg.EventRepository, cfg *config.Config, log *zap.Logger) *eventsUsecase.PurgeEventsUseCase {
	return eventsUsecase.NewPurgeEventsUseCase(repo, cfg.EventRetentionDays, log)
}

func NewPurgeQaLogsUseCase(repo *qalogsRepoPg.QaLogRepository, cfg *config.Config, log *zap.Logger) *qalogsUsecase.PurgeQaLogsUseCase {
	return qalogsUsecase.NewPurgeQaLogsUseCase(repo, cfg.QaRetentionDays, log)
}

func NewListQaLogsUseCase(repo *qalogsRepoPg.QaLogRepository, opts engine.Options) *qalogsUsecase.ListQaLogsUseCase {
	return qalogsUsecase.NewListQaLogsUseCase(repo, opts.Location, opts.Locale)
}

func NewEventHandler(repo *eventsRepoPg.EventRepository) *eventsHttp.EventHandler {
	return eventsHttp.NewEventHandler(eventsUsecase.NewStoreEventUseCase(repo), eventsUsecase.NewListEventsUseCase(repo))
}

func NewMetricsHandler(repo *metricsRepoPg.MetricsRepository) *metricsHttp.MetricsHandler {
	return metricsHttp.NewMetricsHandler(metricsUsecase.NewGetMetricsUseCase(repo))
}

func NewDashboardHandler(
	dashboardUC *analyticsUsecase.GetDashboardUseCase,
	exportUC *analyticsUsecase.ExportFeedbackUseCase,
	limitsUC *analyticsUsecase.GetLimitsUseCase,
	session *analyticsUsecase.DashboardSession,
	opts engine.Options,
	cfg *config.Config,
) *analyticsHttp.DashboardHandler {
	return analyticsHttp.NewDashboardHandler(
		dashboardUC,
		analyticsUsecase.NewAggregateEventsUseCase(opts),
		exportUC,
		limitsUC,
		session,
		domain.TimeFrame(cfg.DefaultTimeFrame),
	)
}

func NewQaLogHandler(repo *qalogsRepoPg.QaLogRepository, listUC *qalogsUsecase.ListQaLogsUseCase) *qalogsHttp.QaLogHandler {
	return qalogsHttp.NewQaLogHandler(qalogsUsecase.NewRecordQaLogUseCase(repo), listUC)
}

func RegisterRoutes(app *fiber.App, routes []Route, log *zap.Logger) {
	for _, r := range routes {
		r.Register(app)
	}
	app.Get("/docs/*", fiberSwagger.WrapHandler)
	log.Info("routes registered", zap.Int("handlers", len(routes)))
}

var registerRoutes = fx.Annotate(
	RegisterRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

func ScheduleJobs(
	s *jobs.Scheduler,
	cfg *config.Config,
	purgeEvents *eventsUsecase.PurgeEventsUseCase,
	purgeQaLogs *qalogsUsecase.PurgeQaLogsUseCase,
	session *analyticsUsecase.DashboardSession,
) error {
	for _, j := range []jobs.Job{
		jobs.PurgeJob("event-cleanup", cfg.EventCleanupSchedule, purgeEvents),
		jobs.PurgeJob("qa-log-cleanup", cfg.QaCleanupSchedule, purgeQaLogs),
		jobs.RefreshDashboardJob(cfg.DashboardRefreshSchedule, session),
	} {
		if err := s.Add(j); err != nil {
			return err
		}
	}
	return nil
}

func NewScheduler(cfg *config.Config, log *zap.Logger) *jobs.Scheduler {
	return jobs.NewScheduler(cfg.Location, log)
}

// LoadInitialDashboard fills the session once the database is reachable.
func LoadInitialDashboard(lc fx.Lifecycle, session *analyticsUsecase.DashboardSession, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				if _, err := session.Refresh(ctx); err != nil {
					log.Warn("initial dashboard load failed", zap.Error(err))
				}
			}()
			return nil
		},
	})
}

func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				addr := ":" + cfg.Port
				log.Info("server starting", zap.String("addr", addr))
				if err := app.Listen(addr); err != nil {
					log.Error("fiber stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down")
			return app.ShutdownWithContext(ctx)
		},
	})
}

// @title           KB Analytics Service API
// @version         1.0
// @description     Event ingest and dashboard aggregation for the knowledge base admin dashboard.
// @BasePath        /
func main() {
	fx.New(
		fx.Provide(
			config.Load,
			logger.NewLogger,
			NewDatabase,
			sqldb.New,
			NewEngineOptions,
			NewFiberServer,

			NewEventRepository,
			NewMetricsRepository,
			NewQaLogRepository,

			NewGetDashboardUseCase,
			NewDashboardSession,
			NewExportFeedbackUseCase,
			NewGetLimitsUseCase,
			NewPurgeEventsUseCase,
			NewPurgeQaLogsUseCase,
			NewListQaLogsUseCase,
			NewScheduler,

			asRoute(NewEventHandler),
			asRoute(NewMetricsHandler),
			asRoute(NewDashboardHandler),
			asRoute(NewQaLogHandler),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			registerRoutes,
			ScheduleJobs,
			jobs.Register,
			LoadInitialDashboard,
			StartServer,
		),
	).Run()
}
