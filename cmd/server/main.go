package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"companyevents/config"
	_ "companyevents/docs"
	"companyevents/internal/adapters/auth"
	"companyevents/internal/adapters/email"
	delivery "companyevents/internal/delivery/http"
	"companyevents/internal/delivery/http/controllers"
	"companyevents/internal/delivery/http/middleware"
	"companyevents/internal/repository/postgres"
	"companyevents/internal/services"
)

// @title Company Events API
// @version 1.0
// @description Multi-tenant event management API: companies, employees, events, and event registrations.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config error: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := config.NewLogger()
	logger.Info("starting server", "environment", cfg.Environment, "port", cfg.Port)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.PingContext(pingCtx); err != nil {
		cancelPing()
		logger.Error("failed to reach database", "error", err)
		os.Exit(1)
	}
	cancelPing()

	if cfg.MigrateOnStart {
		if err := postgres.MigrateUp(cfg.DBUrl, cfg.MigrationsPath); err != nil {
			logger.Error("database migration failed", "error", err)
			os.Exit(1)
		}
		logger.Info("database migrations applied")
	}

	// Repositories
	companyRepo := postgres.NewCompanyRepository(db)
	employeeRepo := postgres.NewEmployeeRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	registrationRepo := postgres.NewEventRegistrationRepository(db)

	// Adapters
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	issuer, verifier := auth.NewJWTCodec(cfg.JWTSecret)
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mailer.Driver,
		FromAddress: cfg.Mailer.FromAddress,
		FromName:    cfg.Mailer.FromName,
		SES: email.SESConfig{
			Region:          cfg.Mailer.SESRegion,
			AccessKeyID:     cfg.Mailer.SESKey,
			SecretAccessKey: cfg.Mailer.SESSecret,
		},
	})
	if err != nil {
		logger.Error("failed to initialize mailer", "error", err)
		os.Exit(1)
	}

	// Services
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	authService := services.NewAuthService(employeeRepo, companyRepo, hasher, issuer, verifier, cfg.JWTExpiry, emailService, logger)
	companyService := services.NewCompanyService(companyRepo, employeeRepo, eventRepo)
	employeeService := services.NewEmployeeService(employeeRepo, companyRepo, hasher)
	eventService := services.NewEventService(eventRepo, companyRepo)
	registrationService := services.NewRegistrationService(registrationRepo, eventRepo, employeeRepo, emailService, logger)

	// HTTP
	mux := delivery.NewRouter(delivery.RouterDeps{
		Logger:        logger,
		DB:            db,
		TokenVerifier: verifier,
		Auth:          controllers.NewAuthController(logger, authService),
		Companies:     controllers.NewCompanyController(logger, companyService),
		Employees:     controllers.NewEmployeeController(logger, employeeService),
		Events:        controllers.NewEventController(logger, eventService),
		Registrations: controllers.NewRegistrationController(logger, registrationService),
	})

	var handler http.Handler = mux
	handler = middleware.CORS(cfg.AllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(logger, handler)
	handler = middleware.RequestID(handler)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logger.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	waitForShutdown(server, logger)
}

func waitForShutdown(server *http.Server, logger *slog.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
