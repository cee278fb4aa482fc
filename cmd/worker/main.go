// The worker runs scheduled ingest jobs so the feed stays warm without
// anyone pressing fetch. It shares the api's store and collaborator wiring
// and exposes its own health and metrics port.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/robfig/cron/v3"

	"newsbrief/internal/handler/http/respond"
	mongoRepo "newsbrief/internal/infra/adapter/persistence/mongo"
	pgRepo "newsbrief/internal/infra/adapter/persistence/postgres"
	"newsbrief/internal/infra/collaborator"
	"newsbrief/internal/infra/db"
	"newsbrief/internal/infra/worker"
	"newsbrief/internal/observability/logging"
	"newsbrief/internal/repository"
	newsUC "newsbrief/internal/usecase/news"
	"newsbrief/pkg/config"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	metrics := worker.NewIngestMetrics()
	cfg := worker.LoadConfig(logger, metrics)
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone),
		slog.Any("topics", cfg.Topics),
		slog.Int("count", cfg.Count),
		slog.Duration("ingest_timeout", cfg.IngestTimeout),
		slog.Int("health_port", cfg.HealthPort))

	repo, closeStore := initStore(logger)
	defer closeStore()

	collab := initCollaborator(logger)
	svc := newsUC.NewService(repo, collab)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	healthServer := worker.NewHealthServer(fmt.Sprintf(":%d", cfg.HealthPort), logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	startCron(logger, svc, cfg, metrics, healthServer)
}

// initStore opens the store selected by NEWS_DB_DRIVER (postgres|mongo).
func initStore(logger *slog.Logger) (repository.NewsRepository, func()) {
	driver := config.GetEnvString("NEWS_DB_DRIVER", "postgres")

	switch driver {
	case "postgres":
		database := db.Open()
		if err := db.MigrateUp(database); err != nil {
			logger.Error("failed to migrate database", slog.Any("error", err))
			os.Exit(1)
		}
		return pgRepo.NewNewsRepo(database), func() {
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
		return mongoRepo.NewNewsRepo(client, dbName), func() {
			disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer disconnectCancel()
			if err := client.Disconnect(disconnectCtx); err != nil {
				logger.Error("failed to disconnect mongodb", slog.Any("error", err))
			}
		}

	default:
		logger.Error("unknown NEWS_DB_DRIVER", slog.String("driver", driver))
		os.Exit(1)
		return nil, nil
	}
}

func initCollaborator(logger *slog.Logger) newsUC.Collaborator {
	cfg := collaborator.LoadConfig()
	collab, err := collaborator.New(cfg)
	if err != nil {
		logger.Error("failed to initialize collaborator", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("collaborator initialized", slog.String("provider", cfg.Provider))
	return collab
}

// startCron schedules the ingest job and blocks forever.
func startCron(logger *slog.Logger, svc *newsUC.Service, cfg worker.Config, metrics *worker.IngestMetrics, healthServer *worker.HealthServer) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}

	c := cron.New(cron.WithLocation(loc))
	_, err = c.AddFunc(cfg.CronSchedule, func() {
		runIngestJob(logger, svc, cfg, metrics)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("worker started",
		slog.String("schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone))
	select {}
}

// runIngestJob executes one scheduled ingest with timeout and metrics.
func runIngestJob(logger *slog.Logger, svc *newsUC.Service, cfg worker.Config, metrics *worker.IngestMetrics) {
	start := time.Now()
	logger.Info("scheduled ingest started",
		slog.Any("topics", cfg.Topics),
		slog.Int("count", cfg.Count))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.IngestTimeout)
	defer cancel()

	items, err := svc.Ingest(ctx, cfg.Topics, cfg.Count)
	metrics.RecordRunDuration(time.Since(start).Seconds())
	if err != nil {
		// 機密情報をマスクしてログ出力
		logger.Error("scheduled ingest failed", slog.String("error", respond.SanitizeError(err)))
		metrics.RecordRun("failure")
		return
	}

	metrics.RecordRun("success")
	metrics.RecordItems(len(items))
	metrics.RecordLastSuccess()

	logger.Info("scheduled ingest completed",
		slog.Int("items", len(items)),
		slog.Duration("duration", time.Since(start)))
}
