// Driver Fatigue API
//
// REST API for driving pattern analysis and rest recommendations.
//
//	@title			Driver Fatigue API
//	@version		1.0
//	@description	Analyse trip history for fatigue risk and get rule-based or generative rest advice.
//
//	@BasePath	/v1
//
//	@tag.name			driving-analysis
//	@tag.description	Driving patterns, fatigue assessment and rest recommendations
//
//	@tag.name			trips
//	@tag.description	Trip history endpoints
//
//	@tag.name			drivers
//	@tag.description	Driver profile endpoints
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blaisecz/driver-fatigue/internal/alert"
	"github.com/blaisecz/driver-fatigue/internal/api"
	"github.com/blaisecz/driver-fatigue/internal/api/handler"
	"github.com/blaisecz/driver-fatigue/internal/api/middleware"
	"github.com/blaisecz/driver-fatigue/internal/config"
	"github.com/blaisecz/driver-fatigue/internal/domain"
	"github.com/blaisecz/driver-fatigue/internal/langfuse"
	"github.com/blaisecz/driver-fatigue/internal/llm"
	"github.com/blaisecz/driver-fatigue/internal/metrics"
	"github.com/blaisecz/driver-fatigue/internal/repository"
	"github.com/blaisecz/driver-fatigue/internal/seed"
	"github.com/blaisecz/driver-fatigue/internal/service"
	"github.com/blaisecz/driver-fatigue/internal/telemetry"
	"github.com/sirupsen/logrus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg := config.Load()
	log := config.NewLogger(cfg)

	policy, err := config.LoadPolicy(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to load fatigue policy")
	}
	config.LogPolicy(log, policy)

	// Connect to database
	db, err := config.NewDatabase(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	if err := db.AutoMigrate(&domain.Trip{}, &domain.DriverProfile{}); err != nil {
		log.WithError(err).Fatal("Failed to migrate database")
	}
	log.Info("Database migration completed")

	if cfg.Seed {
		log.Info("Seeding database with sample data (SEED=true)")
		if err := seed.Run(db, log); err != nil {
			log.WithError(err).Fatal("Failed to seed database")
		}
	}

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg, "driver-fatigue-api", log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize tracing")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(sctx); err != nil {
			log.WithError(err).Warn("Tracer shutdown failed")
		}
	}()

	metrics.RegisterDefault()

	lf := langfuse.NewClient(langfuse.Config{
		BaseURL:     cfg.LangfuseBaseURL,
		PublicKey:   cfg.LangfusePublicKey,
		SecretKey:   cfg.LangfuseSecretKey,
		Environment: cfg.LangfuseEnv,
		Logger:      log,
	})

	// Managed prompt, falling back to the local copy and then the built-in one
	systemPrompt := llm.DefaultSystemPrompt
	if cfg.LangfusePromptName != "" || cfg.PromptPath != "" {
		pctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		prompt, err := langfuse.LoadPrompt(pctx, langfuse.PromptLoaderConfig{
			BaseURL:     cfg.LangfuseBaseURL,
			PublicKey:   cfg.LangfusePublicKey,
			SecretKey:   cfg.LangfuseSecretKey,
			PromptName:  cfg.LangfusePromptName,
			PromptLabel: cfg.LangfusePromptLabel,
			SavePath:    cfg.PromptPath,
			Logger:      log,
		})
		cancel()
		if err != nil {
			log.WithError(err).Warn("No managed prompt available, using built-in prompt")
		} else {
			systemPrompt = prompt.Text
			log.WithFields(logrus.Fields{"source": prompt.Source, "version": prompt.Version}).Info("System prompt loaded")
		}
	}

	// Generative provider (nil when no key is configured)
	var llmClient llm.RecommendationLLM
	if c := llm.NewOpenAIClient(llm.Config{
		APIKey:       cfg.LLMAPIKey,
		BaseURL:      cfg.LLMBaseURL,
		Model:        cfg.LLMModel,
		SystemPrompt: systemPrompt,
	}); c != nil {
		llmClient = c
	} else {
		log.Warn("LLM API key not configured, generative mode will be unavailable")
	}

	// Fatigue alerts
	var publisher alert.Publisher = alert.NopPublisher{}
	if cfg.RedisAddr != "" {
		rctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		rdb, err := alert.NewRedisClient(rctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		cancel()
		if err != nil {
			log.WithError(err).Warn("Redis unavailable, fatigue alerts disabled")
		} else {
			defer rdb.Close()
			publisher = alert.NewRedisPublisher(rdb, cfg.AlertDedupTTL, log)
			log.WithField("addr", cfg.RedisAddr).Info("Fatigue alerts enabled")
		}
	}

	// Initialize repositories
	tripRepo := repository.NewTripRepository(db)
	driverRepo := repository.NewDriverRepository(db)

	// Initialize services
	driverService := service.NewDriverService(driverRepo, cfg.Location())
	tripService := service.NewTripService(tripRepo, driverService, cfg.DBQueryTimeout)
	analysisService := service.NewAnalysisService(tripRepo, driverService, policy, publisher, cfg.DBQueryTimeout, log)
	recommendationService := service.NewRecommendationService(analysisService, llmClient, lf, policy, cfg.LLMTimeout, log)

	// Initialize handlers
	analysisHandler := handler.NewAnalysisHandler(analysisService, recommendationService, log)
	tripHandler := handler.NewTripHandler(tripService, log)
	driverHandler := handler.NewDriverHandler(driverService, log)

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	// Setup router
	router := api.NewRouter(analysisHandler, tripHandler, driverHandler, limiter, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
	if err := lf.Flush(sctx); err != nil {
		log.WithError(err).Warn("Langfuse flush incomplete")
	}
}
