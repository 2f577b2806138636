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

	"github.com/greenpasture/payroll-backend-go/internal/config"
	appHTTP "github.com/greenpasture/payroll-backend-go/internal/handler/http"
	"github.com/greenpasture/payroll-backend-go/internal/pkg/cron"
	"github.com/greenpasture/payroll-backend-go/internal/pkg/database"
	"github.com/greenpasture/payroll-backend-go/internal/pkg/jwt"
	"github.com/greenpasture/payroll-backend-go/internal/pkg/rolecache"
	"github.com/greenpasture/payroll-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/greenpasture/payroll-backend-go/internal/service/auth"
	payrollService "github.com/greenpasture/payroll-backend-go/internal/service/payroll"
	timesheetService "github.com/greenpasture/payroll-backend-go/internal/service/timesheet"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("load timezone: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{MaxConns: cfg.Database.MaxConns})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	scheduler := cron.NewScheduler(ctx)

	var roleCache rolecache.Cache
	if cfg.RoleCache.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RoleCache.RedisAddr,
			Password: cfg.RoleCache.RedisPassword,
			DB:       cfg.RoleCache.RedisDB,
		})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			slog.Warn("Redis unreachable, role lookups will hit the database until it recovers", "addr", cfg.RoleCache.RedisAddr, "error", err)
		}
		roleCache = rolecache.NewRedisCache(client, cfg.RoleCache.TTL)
	} else {
		memCache := rolecache.NewMemoryCache(cfg.RoleCache.TTL, nil)
		scheduler.AddJob("sweep_role_cache", cfg.RoleCache.TTL, func(ctx context.Context) error {
			if n := memCache.Sweep(); n > 0 {
				slog.Debug("Cron: Swept expired role cache entries", "count", n)
			}
			return nil
		})
		roleCache = memCache
	}

	// Repositories
	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db, loc)
	clockEntryRepo := postgresql.NewClockEntryRepository(db)
	attendanceRepo := postgresql.NewDailyAttendanceRepository(db, loc)
	overrideRepo := postgresql.NewRestDayOverrideRepository(db, loc)
	holidayRepo := postgresql.NewHolidayRepository(db, loc)

	// Services
	jwtService := jwt.NewJWTService(cfg.JWT.Secret)
	authService := serviceAuth.NewAuthService(userRepo, jwtService, roleCache)
	timesheetSvc := timesheetService.NewTimesheetService(
		timesheetService.NewGenerator(loc),
		clockEntryRepo,
		attendanceRepo,
		overrideRepo,
		holidayRepo,
		employeeRepo,
	)
	payrollSvc := payrollService.NewPayrollService(
		payrollService.NewDeductionCalculator(cfg.Payroll.WorkingDaysPerMonth, cfg.Payroll.WithholdingMode),
		timesheetSvc,
		employeeRepo,
		loc,
	)

	if cfg.Cron.Enabled {
		cron.NewTimesheetJobs(timesheetSvc, loc, nil).RegisterJobs(scheduler)
	}
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Env:            cfg.App.Env,
			AllowedOrigins: cfg.AllowedOrigins(),
			LogLevel:       cfg.SlogLevel(),
		},
		jwtService,
		authService,
		appHTTP.NewAuthHandler(authService),
		appHTTP.NewTimesheetHandler(timesheetSvc, loc, nil),
		appHTTP.NewPayrollHandler(payrollSvc, loc, nil),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
