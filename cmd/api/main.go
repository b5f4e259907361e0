package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/staffperf-backend-go/internal/config"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/catalog"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/performance"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/record"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/staff"
	appHTTP "github.com/cmlabs-hris/staffperf-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/pkg/logger"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/pkg/redis"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/repository/postgresql"
	authService "github.com/cmlabs-hris/staffperf-backend-go/internal/service/auth"
	catalogService "github.com/cmlabs-hris/staffperf-backend-go/internal/service/catalog"
	performanceService "github.com/cmlabs-hris/staffperf-backend-go/internal/service/performance"
	recordService "github.com/cmlabs-hris/staffperf-backend-go/internal/service/record"
	reportService "github.com/cmlabs-hris/staffperf-backend-go/internal/service/report"
	shiftService "github.com/cmlabs-hris/staffperf-backend-go/internal/service/shift"
	staffService "github.com/cmlabs-hris/staffperf-backend-go/internal/service/staff"
	"go.uber.org/zap"
)

const version = "v1.0.0"

type repositories struct {
	staff     staff.StaffRepository
	services  catalog.ServiceRepository
	records   record.RecordRepository
	shifts    shift.ShiftRepository
	snapshots performance.SnapshotRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.App.LogLevel, cfg.App.Env)
	if err != nil {
		fmt.Println("Error creating logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("server exited with error", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	// Stored check-in and service timestamps carry no offset; they are written in this zone.
	time.Local = loc

	repos, closeDB, err := openRepositories(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeDB()

	var blacklist jwt.Blacklist
	if cfg.Redis.Addr != "" {
		rdb, err := redis.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger.Named(log, "redis"))
		if err != nil {
			log.Warn("redis unavailable, revoked tokens kept in memory", zap.Error(err))
		} else {
			defer rdb.Close()
			blacklist = rdb
		}
	}

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, blacklist)
	if err != nil {
		return err
	}

	engine, err := performanceService.NewEngine(cfg.MetricsPolicy())
	if err != nil {
		return err
	}
	engine = engine.WithLocation(loc)

	authSvc := authService.NewAuthService(JWTService, cfg.Auth.ManagerPasscodeHash, logger.Named(log, "auth"))
	staffSvc := staffService.NewStaffService(repos.staff, logger.Named(log, "staff"))
	catalogSvc := catalogService.NewCatalogService(repos.services, repos.records)
	shiftSvc := shiftService.NewShiftService(repos.shifts, repos.staff, logger.Named(log, "shift"))
	recordSvc := recordService.NewRecordService(repos.records, repos.staff, repos.services, repos.shifts, logger.Named(log, "record"))
	performanceSvc := performanceService.NewPerformanceService(
		repos.staff,
		repos.records,
		repos.shifts,
		repos.services,
		repos.snapshots,
		engine,
		logger.Named(log, "performance"),
	)
	reportSvc := reportService.NewReportService(performanceSvc, engine, logger.Named(log, "report"))

	if cfg.Cron.Enabled {
		scheduler := cron.NewScheduler(loc, logger.Named(log, "cron"))
		jobs := cron.NewPerformanceJobs(shiftSvc, performanceSvc, cron.JobsConfig{
			StaleShiftSchedule:  cfg.Cron.StaleShiftSchedule,
			StaleShiftHours: cfg.Cron.StaleShiftHours,
			SnapshotSchedule:    cfg.Cron.SnapshotSchedule,
		}, logger.Named(log, "cron"))
		if err := jobs.RegisterJobs(scheduler); err != nil {
			return err
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		AllowedOrigins: cfg.App.AllowedOrigins,
		Env:            cfg.App.Env,
		Version:        version,
	}, JWTService, appHTTP.Handlers{
		Auth:        appHTTP.NewAuthHandler(authSvc),
		Staff:       appHTTP.NewStaffHandler(staffSvc),
		Catalog:     appHTTP.NewCatalogHandler(catalogSvc),
		Shift:       appHTTP.NewShiftHandler(shiftSvc),
		Record:      appHTTP.NewRecordHandler(recordSvc),
		Performance: appHTTP.NewPerformanceHandler(performanceSvc),
		Report:      appHTTP.NewReportHandler(reportSvc),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server running", zap.String("addr", srv.Addr), zap.String("db_driver", cfg.Database.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("server stopped")
	return nil
}

func openRepositories(ctx context.Context, cfg *config.Config, log *zap.Logger) (repositories, func(), error) {
	if cfg.Database.Driver == config.DriverMemory {
		log.Warn("using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		return repositories{
			staff:     store.Staff(),
			services:  store.Services(),
			records:   store.Records(),
			shifts:    store.Shifts(),
			snapshots: store.Snapshots(),
		}, func() {}, nil
	}

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return repositories{}, nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := postgresql.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return repositories{}, nil, err
		}
		log.Info("database schema ensured")
	}

	return repositories{
		staff:     postgresql.NewStaffRepository(db),
		services:  postgresql.NewServiceRepository(db),
		records:   postgresql.NewRecordRepository(db),
		shifts:    postgresql.NewShiftRepository(db),
		snapshots: postgresql.NewSnapshotRepository(db),
	}, db.Close, nil
}
