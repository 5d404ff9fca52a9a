package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"jobboard-engine/internal/config"
	"jobboard-engine/internal/domain"
	"jobboard-engine/internal/events"
	"jobboard-engine/internal/httpapi"
	"jobboard-engine/internal/scheduler"
	"jobboard-engine/internal/scrape"
	"jobboard-engine/internal/scrape/workday"
	"jobboard-engine/internal/secrets"
	"jobboard-engine/internal/store"
)

// engineStore is what main needs from either backend.
type engineStore interface {
	store.JobStore
	store.ScrapeLog
}

func newLogger() *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return logger.Sugar()
}

func main() {
	_ = godotenv.Load()

	logger := newLogger()
	defer logger.Sync()

	if err := run(logger); err != nil {
		logger.Fatalw("engine exited", "err", err)
	}
}

func run(logger *zap.SugaredLogger) error {
	dataDir := os.Getenv("JOBBOARD_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	// One engine per data dir; two processes racing the same SQLite file
	// corrupt the scrape bookkeeping.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire instance lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another engine instance already holds %s", lock.Path())
	}
	defer lock.Unlock()

	cfgPath, err := config.EnsureUserFile(dataDir, "config.yml", filepath.Join("config", "config.yml"))
	if err != nil {
		return fmt.Errorf("bootstrap config: %w", err)
	}
	companiesPath, err := config.EnsureUserFile(dataDir, "companies.yml", filepath.Join("config", "companies.yml"))
	if err != nil {
		return fmt.Errorf("bootstrap companies file: %w", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config %s: %w", cfgPath, err)
	}
	cfg, v := config.NormalizeAndValidate(cfg)
	for _, w := range v.Warnings {
		logger.Warnw("config warning", "warn", w)
	}
	if !v.OK() {
		return fmt.Errorf("invalid config %s: %v", cfgPath, v.Errors)
	}

	directory := config.FileDirectory{Path: companiesPath}
	companies, err := directory.Companies(context.Background())
	if err != nil {
		return fmt.Errorf("load companies %s: %w", companiesPath, err)
	}
	cv := config.ValidateCompanies(companies)
	for _, w := range cv.Warnings {
		logger.Warnw("companies warning", "warn", w)
	}
	if !cv.OK() {
		return fmt.Errorf("invalid companies file %s: %v", companiesPath, cv.Errors)
	}
	logger.Infow("companies loaded", "count", len(companies))

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		st     engineStore
		closer func()
	)
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		pg, err := store.OpenPostgres(rootCtx, dsn)
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		st, closer = pg, pg.Close
		logger.Info("store: postgres")
	} else {
		dbPath := filepath.Join(dataDir, "jobboard.db")
		sq, err := store.OpenSQLite(dbPath)
		if err != nil {
			return fmt.Errorf("open sqlite %s: %w", dbPath, err)
		}
		st, closer = sq, func() { _ = sq.Close() }
		logger.Infow("store: sqlite", "path", dbPath)
	}
	defer closer()

	hub := events.NewHub()

	agg := scrape.New(directory, st, st, logger)
	agg.CompanyInterval = time.Duration(cfg.Scrape.CompanyDelayMS) * time.Millisecond
	agg.StaleAfter = time.Duration(cfg.Scrape.StaleAfterHours) * time.Hour
	wd := workday.New()
	wd.PageInterval = time.Duration(cfg.Scrape.PageDelayMS) * time.Millisecond
	agg.Scrapers[domain.ATSWorkday] = wd

	status := &httpapi.Status{}

	var running atomic.Bool
	triggerRun := func() bool {
		if !running.CompareAndSwap(false, true) {
			return false
		}
		go func() {
			defer running.Store(false)

			status.SetRunning(true)
			hub.Publish(events.Make(events.TypeRunStarted, nil))

			report, err := agg.Run(rootCtx)
			status.Record(report, err)
			if err != nil {
				logger.Errorw("run failed", "err", err)
				hub.Publish(events.Make(events.TypeRunFinished, map[string]any{"error": err.Error()}))
				return
			}
			for _, out := range report.Outcomes {
				hub.Publish(events.Make(events.TypeCompanyDone, out))
			}
			hub.Publish(events.Make(events.TypeRunFinished, report))
		}()
		return true
	}

	token := os.Getenv("JOBBOARD_API_TOKEN")
	if token == "" {
		token = secrets.GetAPIToken()
	}

	deps := httpapi.Deps{
		Logger:     logger,
		Hub:        hub,
		Status:     status,
		TriggerRun: triggerRun,
		APIToken:   token,
	}
	handler := httpapi.Chain(httpapi.NewMux(deps),
		httpapi.RequestID,
		httpapi.AccessLog(logger),
		httpapi.Recover(logger),
		httpapi.Cors,
		httpapi.Auth(token),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sched := scheduler.New(cfg.Scrape.IntervalHours, func(ctx context.Context) {
		if !triggerRun() {
			logger.Info("scheduled run skipped, previous run still in progress")
		}
	}, logger)

	g, ctx := errgroup.WithContext(rootCtx)

	g.Go(func() error {
		logger.Infow("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := sched.Start(ctx); err != nil {
			return err
		}
		<-ctx.Done()
		sched.Stop()

		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})

	return g.Wait()
}
