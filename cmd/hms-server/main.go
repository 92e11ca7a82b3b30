package main

import (
	"context"
	crypto_rand "crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hms/hms/internal/config"
	"github.com/hms/hms/internal/domain/account"
	"github.com/hms/hms/internal/domain/appointment"
	"github.com/hms/hms/internal/domain/billing"
	"github.com/hms/hms/internal/domain/dashboard"
	"github.com/hms/hms/internal/domain/department"
	"github.com/hms/hms/internal/domain/doctor"
	"github.com/hms/hms/internal/domain/medicalrecord"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/platform/auth"
	"github.com/hms/hms/internal/platform/db"
	"github.com/hms/hms/internal/platform/middleware"
	"github.com/hms/hms/internal/platform/seed"
)

// AppointmentDirectoryAdapter adapts the appointment service to the
// billing.AppointmentDirectory interface, avoiding a direct import between
// the billing and appointment packages.
type AppointmentDirectoryAdapter struct {
	svc *appointment.Service
}

// NewAppointmentDirectoryAdapter creates a new adapter.
func NewAppointmentDirectoryAdapter(svc *appointment.Service) *AppointmentDirectoryAdapter {
	return &AppointmentDirectoryAdapter{svc: svc}
}

// Find implements billing.AppointmentDirectory.
func (a *AppointmentDirectoryAdapter) Find(ctx context.Context, id uuid.UUID) (*billing.AppointmentRef, error) {
	appt, err := a.svc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &billing.AppointmentRef{ID: appt.ID, PatientID: appt.PatientID}, nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "hms-server",
		Short: "Hospital Management API Server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the hospital management API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	// migrate up
	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	// migrate status
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert baseline data into empty tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			stores := seed.Stores{
				Users:        account.NewRepoPG(pool),
				Departments:  department.NewRepoPG(pool),
				Doctors:      doctor.NewRepoPG(pool),
				Patients:     patient.NewRepoPG(pool),
				Appointments: appointment.NewRepoPG(pool),
				Bills:        billing.NewRepoPG(pool),
			}
			return seed.Run(ctx, logger, stores)
		},
	}
}

// resolveSessionSecret returns the configured signing secret, or generates a
// random one for development. The second return reports whether the secret is
// ephemeral.
func resolveSessionSecret(configured string) (string, bool, error) {
	if configured != "" {
		return configured, false, nil
	}
	buf := make([]byte, 32)
	if _, err := crypto_rand.Read(buf); err != nil {
		return "", false, err
	}
	return hex.EncodeToString(buf), true, nil
}

func newLogger() zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" || os.Getenv("ENV") == "" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return logger
}

func runServer() error {
	logger := newLogger()

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	sessionSecret, ephemeral, err := resolveSessionSecret(cfg.SessionSecret)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to generate session secret")
	}
	if ephemeral {
		logger.Warn().Msg("SESSION_SECRET not set; sessions will not survive a restart")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Repositories
	userRepo := account.NewRepoPG(pool)
	deptRepo := department.NewRepoPG(pool)
	doctorRepo := doctor.NewRepoPG(pool)
	patientRepo := patient.NewRepoPG(pool)
	apptRepo := appointment.NewRepoPG(pool)
	billRepo := billing.NewRepoPG(pool)
	recordRepo := medicalrecord.NewRepoPG(pool)
	dashRepo := dashboard.NewRepoPG(pool)

	// Services
	sessions := auth.NewSessions(auth.SessionConfig{
		Secret:      []byte(sessionSecret),
		TTL:         time.Duration(cfg.SessionTTLHours) * time.Hour,
		RememberTTL: time.Duration(cfg.RememberTTLHours) * time.Hour,
	})
	accountSvc := account.NewService(userRepo)
	deptSvc := department.NewService(deptRepo)
	doctorSvc := doctor.NewService(doctorRepo)
	patientSvc := patient.NewService(patientRepo)
	apptSvc := appointment.NewService(apptRepo)
	billSvc := billing.NewService(billRepo, NewAppointmentDirectoryAdapter(apptSvc))
	recordSvc := medicalrecord.NewService(recordRepo)
	dashSvc := dashboard.NewService(dashRepo, cfg.DashboardUpcomingLimit)

	// Optional startup seeding for fresh environments.
	if cfg.SeedOnStart {
		stores := seed.Stores{
			Users:        userRepo,
			Departments:  deptRepo,
			Doctors:      doctorRepo,
			Patients:     patientRepo,
			Appointments: apptRepo,
			Bills:        billRepo,
		}
		if err := seed.Run(ctx, logger, stores); err != nil {
			logger.Fatal().Err(err).Msg("seeding failed")
		}
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	apiV1 := e.Group("/api/v1")

	// Auth endpoints and the dashboard summary stay public; everything else
	// requires a session.
	accountHandler := account.NewHandler(accountSvc, sessions)
	accountHandler.RegisterRoutes(apiV1)
	dashboard.NewHandler(dashSvc).RegisterRoutes(apiV1)

	protected := apiV1.Group("", auth.RequireSession(sessions))

	department.NewHandler(deptSvc).RegisterRoutes(protected)
	doctor.NewHandler(doctorSvc).RegisterRoutes(protected)
	patient.NewHandler(patientSvc).RegisterRoutes(protected)
	appointment.NewHandler(apptSvc).RegisterRoutes(protected)
	billing.NewHandler(billSvc).RegisterRoutes(protected)
	medicalrecord.NewHandler(recordSvc).RegisterRoutes(protected)

	// Start server with graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}
