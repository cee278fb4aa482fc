package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	hhttp "newsbrief/internal/handler/http"
	hnews "newsbrief/internal/handler/http/news"
	"newsbrief/internal/handler/http/requestid"
	mongoRepo "newsbrief/internal/infra/adapter/persistence/mongo"
	pgRepo "newsbrief/internal/infra/adapter/persistence/postgres"
	"newsbrief/internal/infra/collaborator"
	"newsbrief/internal/infra/db"
	"newsbrief/internal/observability/logging"
	"newsbrief/internal/observability/tracing"
	"newsbrief/internal/repository"
	newsUC "newsbrief/internal/usecase/news"
	"newsbrief/pkg/config"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	shutdownTracing := initTracing(logger)

	repo, pinger, closeStore := initStore(logger)
	defer closeStore()

	collab := initCollaborator(logger)
	svc := newsUC.NewService(repo, collab)

	version := config.GetEnvString("VERSION", "dev")
	handler := setupRoutes(logger, svc, pinger, version)

	runServer(logger, handler, version, shutdownTracing)
}

// initTracing installs a tracer provider so HTTP spans get real trace IDs
// for log correlation. Returns the provider's shutdown function.
func initTracing(logger *slog.Logger) func(context.Context) error {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", "newsbrief-api"),
		)),
	)
	otel.SetTracerProvider(tp)
	logger.Info("tracing initialized")
	return tp.Shutdown
}

// sqlPinger adapts *sql.DB to the health check interface.
type sqlPinger struct{ db *sql.DB }

func (p sqlPinger) Ping(ctx context.Context) error { return p.db.PingContext(ctx) }

// mongoPinger adapts *mongo.Client to the health check interface.
type mongoPinger struct{ client *mongodriver.Client }

func (p mongoPinger) Ping(ctx context.Context) error { return p.client.Ping(ctx, nil) }

// initStore opens the store selected by NEWS_DB_DRIVER (postgres|mongo,
// default postgres) and returns the repository, a connectivity pinger for
// health checks, and a close function.
func initStore(logger *slog.Logger) (repository.NewsRepository, hhttp.Pinger, func()) {
	driver := config.GetEnvString("NEWS_DB_DRIVER", "postgres")

	switch driver {
	case "postgres":
		database := db.Open()
		if err := db.MigrateUp(database); err != nil {
			logger.Error("failed to migrate database", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("store initialized", slog.String("driver", "postgres"))
		return pgRepo.NewNewsRepo(database), sqlPinger{db: database}, func() {
			if err := database.Close(); err != nil {
				logger.Error("failed to close database", slog.Any("error", err))
			}
		}

	case "mongo":
		uri := config.GetEnvString("MONGO_URI", "mongodb://localhost:27017")
		dbName := config.GetEnvString("MONGO_DB", "newsbrief")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		client, err := mongoRepo.Connect(ctx, uri, dbName)
		if err != nil {
			logger.Error("failed to connect to mongodb", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("store initialized", slog.String("driver", "mongo"), slog.String("db", dbName))
		return mongoRepo.NewNewsRepo(client, dbName), mongoPinger{client: client}, func() {
			disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer disconnectCancel()
			if err := client.Disconnect(disconnectCtx); err != nil {
				logger.Error("failed to disconnect mongodb", slog.Any("error", err))
			}
		}

	default:
		logger.Error("unknown NEWS_DB_DRIVER",
			slog.String("driver", driver),
			slog.String("expected", "postgres or mongo"))
		os.Exit(1)
		return nil, nil, nil
	}
}

// initCollaborator builds the summarization collaborator from environment
// configuration. A misconfigured provider is fatal: the fetch endpoint
// cannot degrade to a different provider silently.
func initCollaborator(logger *slog.Logger) newsUC.Collaborator {
	cfg := collaborator.LoadConfig()
	collab, err := collaborator.New(cfg)
	if err != nil {
		logger.Error("failed to initialize collaborator", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("collaborator initialized",
		slog.String("provider", cfg.Provider),
		slog.Int("char_limit", cfg.SummaryCharLimit),
		slog.Duration("timeout", cfg.Timeout))
	return collab
}

// setupRoutes registers all routes and wraps them in the middleware chain.
func setupRoutes(logger *slog.Logger, svc *newsUC.Service, pinger hhttp.Pinger, version string) http.Handler {
	mux := http.NewServeMux()

	// 取り込みはコストが高いのでグローバルに間隔を空けさせる
	ingestInterval := config.GetEnvDuration("INGEST_MIN_INTERVAL", 10*time.Second)
	ingestBurst := config.GetEnvInt("INGEST_BURST", 3)
	ingestLimiter := hhttp.NewIngestLimiter(ingestInterval, ingestBurst)

	hnews.Register(mux, svc, logger, ingestLimiter.Limit)

	mux.Handle("GET  /health", &hhttp.HealthHandler{Store: pinger, Version: version})
	mux.Handle("GET  /ready", &hhttp.ReadyHandler{Store: pinger})
	mux.Handle("GET  /live", &hhttp.LiveHandler{})
	mux.Handle("GET  /metrics", hhttp.MetricsHandler())

	// Apply in reverse order (innermost to outermost)
	var handler http.Handler = mux
	handler = hhttp.MetricsMiddleware(handler)
	handler = hhttp.LimitRequestBody(1 << 20)(handler) // 1MB
	handler = tracing.Middleware(handler)
	handler = hhttp.Logging(logger)(handler)
	handler = hhttp.Recover(logger)(handler)
	handler = requestid.Middleware(handler)
	handler = hhttp.CORS()(handler)

	return handler
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, handler http.Handler, version string, shutdownTracing func(context.Context) error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := ":" + config.GetEnvString("PORT", "8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracer shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
