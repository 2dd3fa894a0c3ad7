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
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/config"
	appHTTP "github.com/cmlabs-hris/hris-payroll-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/lock"
	"github.com/cmlabs-hris/hris-payroll-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hris-payroll-go/internal/service/attendance"
	holidayService "github.com/cmlabs-hris/hris-payroll-go/internal/service/holiday"
	leaveService "github.com/cmlabs-hris/hris-payroll-go/internal/service/leave"
	salaryService "github.com/cmlabs-hris/hris-payroll-go/internal/service/salary"
	workSettingsService "github.com/cmlabs-hris/hris-payroll-go/internal/service/worksettings"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := appHTTP.NewLogger(cfg.App.Env, cfg.SlogLevel())
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := postgresql.Migrate(ctx, db); err != nil {
		return err
	}

	var locker lock.Locker
	if cfg.Redis.Addr != "" {
		rdb, err := lock.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer rdb.Close()
		locker = lock.NewRedisLocker(rdb)
		slog.Info("Salary generation lock backed by Redis", "addr", cfg.Redis.Addr)
	} else {
		locker = lock.NewLocalLocker()
		slog.Warn("REDIS_ADDR not set, salary generation lock is local to this process")
	}

	// Repositories
	tx := postgresql.NewTransactor(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	workSettingsRepo := postgresql.NewWorkSettingsRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	profileRepo := postgresql.NewSalaryProfileRepository(db)
	monthlySalaryRepo := postgresql.NewMonthlySalaryRepository(db)

	// Services
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	workSettingsSvc := workSettingsService.NewWorkSettingsService(workSettingsRepo)
	holidaySvc := holidayService.NewHolidayService(tx, holidayRepo)
	attendanceSvc := attendanceService.NewAttendanceService(tx, attendanceRepo, cfg.App.Timezone)
	leaveSvc := leaveService.NewLeaveService(tx, leaveRequestRepo, attendanceRepo)
	salarySvc := salaryService.NewSalaryService(
		profileRepo,
		monthlySalaryRepo,
		employeeRepo,
		workSettingsSvc,
		holidaySvc,
		salaryService.NewEngine(attendanceRepo, leaveRequestRepo),
		locker,
		salaryService.Config{
			GenerationDay: cfg.Payroll.GenerationDay,
			Location:      cfg.App.Timezone,
			LockTTL:       cfg.Payroll.LockTTL,
		},
	)

	// Scheduled generation
	if cfg.Payroll.AutoGenerate {
		scheduler := cron.NewScheduler(cfg.App.Timezone)
		salaryJobs := cron.NewSalaryJobs(salarySvc, profileRepo, cfg.App.Timezone)
		if err := salaryJobs.RegisterJobs(scheduler, cfg.Payroll.AutoGenerateSchedule); err != nil {
			return err
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			Logger:         logger,
			LogLevel:       cfg.SlogLevel(),
		},
		JWTService,
		appHTTP.Handlers{
			Salary:       appHTTP.NewSalaryHandler(salarySvc),
			Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
			Leave:        appHTTP.NewLeaveHandler(leaveSvc),
			Holiday:      appHTTP.NewHolidayHandler(holidaySvc),
			WorkSettings: appHTTP.NewWorkSettingsHandler(workSettingsSvc),
		},
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}
