package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/careflow/workstation-api/internal/backend"
	"github.com/careflow/workstation-api/internal/config"
	"github.com/careflow/workstation-api/internal/handler"
	authHandler "github.com/careflow/workstation-api/internal/handler/auth"
	doctorHandler "github.com/careflow/workstation-api/internal/handler/doctor"
	nurseHandler "github.com/careflow/workstation-api/internal/handler/nurse"
	pharmacyHandler "github.com/careflow/workstation-api/internal/handler/pharmacy"
	receptionistHandler "github.com/careflow/workstation-api/internal/handler/receptionist"
	"github.com/careflow/workstation-api/internal/middleware"
	"github.com/careflow/workstation-api/internal/router"
	doctorService "github.com/careflow/workstation-api/internal/service/doctor"
	nurseService "github.com/careflow/workstation-api/internal/service/nurse"
	pharmacyService "github.com/careflow/workstation-api/internal/service/pharmacy"
	receptionistService "github.com/careflow/workstation-api/internal/service/receptionist"
	referenceService "github.com/careflow/workstation-api/internal/service/reference"
	sessionService "github.com/careflow/workstation-api/internal/service/session"
	"github.com/careflow/workstation-api/pkg/auth"
	"github.com/careflow/workstation-api/pkg/logger"
	"github.com/careflow/workstation-api/pkg/metrics"
	"github.com/careflow/workstation-api/pkg/validator"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if err := validator.RegisterCustom(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validations")
	}

	appLogger := logger.NewLogger(nil)
	appMetrics := metrics.NewMetrics("workstation")

	// Hospital backend client
	backendClient := backend.NewClient(cfg.Backend, appMetrics, appLogger)

	// Session tokens
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Services
	sessionSvc := sessionService.NewService(backendClient, jwtSvc)
	referenceSvc := referenceService.NewService(backendClient, cfg.Cache.ReferenceTTL)
	receptionistSvc := receptionistService.NewService(backendClient)
	nurseSvc := nurseService.NewService(backendClient)
	doctorSvc := doctorService.NewService(backendClient, cfg.Cache.QueueTTL, appMetrics)
	pharmacySvc := pharmacyService.NewService(backendClient)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtSvc)

	// Handlers
	h := handler.NewHandler(backendClient)
	authH := authHandler.NewHandler(sessionSvc)
	receptionistH := receptionistHandler.NewHandler(receptionistSvc, referenceSvc)
	nurseH := nurseHandler.NewHandler(nurseSvc, referenceSvc)
	doctorH := doctorHandler.NewHandler(doctorSvc)
	pharmacyH := pharmacyHandler.NewHandler(pharmacySvc)

	// Setup router
	r := router.NewRouter(
		authMiddleware,
		authH,
		receptionistH,
		nurseH,
		doctorH,
		pharmacyH,
		h,
		router.Config{
			RateLimit:     rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:     cfg.RateLimit.Burst,
			CORSConfig:    middleware.DefaultCORSConfig(),
			MetricsPrefix: "workstation",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Str("backend", cfg.Backend.BaseURL).Msg("starting workstation gateway")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
