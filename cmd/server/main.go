package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/medtrack/hms-inventory/internal/alerts"
	"github.com/medtrack/hms-inventory/internal/config"
	"github.com/medtrack/hms-inventory/internal/domain/inventory"
	"github.com/medtrack/hms-inventory/internal/domain/ledger"
	"github.com/medtrack/hms-inventory/internal/domain/projects"
	"github.com/medtrack/hms-inventory/internal/domain/tickets"
	"github.com/medtrack/hms-inventory/internal/infra/db"
	httpx "github.com/medtrack/hms-inventory/internal/infra/http"
	"github.com/medtrack/hms-inventory/internal/infra/logger"
	"github.com/medtrack/hms-inventory/internal/infra/notify"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/subosito/gotenv"
)

func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("postgres", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	_ = gotenv.Load()

	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	if err := runMigrations(cfg.Postgres.DSN); err != nil {
		log.Error("migrations failed", "err", err)
		return
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	invRepo := inventory.NewRepo(pool)
	svc := ledger.New(invRepo, invRepo, projects.NewRepo(pool), tickets.NewRepo(pool), log)

	if cfg.Alerts.Enabled && cfg.Telegram.Token != "" {
		interval, err := time.ParseDuration(cfg.Alerts.Interval)
		if err != nil || interval <= 0 {
			interval = 10 * time.Minute
		}
		tg, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.AdminChatID)
		if err != nil {
			log.Error("telegram init failed", "err", err)
		} else {
			mon := alerts.NewMonitor(svc, tg, log, interval, cfg.Alerts.SnapshotEvery)
			go mon.Run(ctx)
			log.Info("critical stock monitor started", "interval", interval)
		}
	}

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled)
	go func() {
		if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
