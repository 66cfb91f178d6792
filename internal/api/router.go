package api

import (
	"encoding/json"
	"net/http"

	_ "github.com/blaisecz/driver-fatigue/docs"
	"github.com/blaisecz/driver-fatigue/internal/api/handler"
	"github.com/blaisecz/driver-fatigue/internal/api/middleware"
	"github.com/blaisecz/driver-fatigue/internal/metrics"
	"github.com/blaisecz/driver-fatigue/pkg/problem"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	analysisHandler *handler.AnalysisHandler
	tripHandler     *handler.TripHandler
	driverHandler   *handler.DriverHandler
	limiter         *middleware.RateLimiter
	log             *logrus.Logger
}

func NewRouter(
	analysisHandler *handler.AnalysisHandler,
	tripHandler *handler.TripHandler,
	driverHandler *handler.DriverHandler,
	limiter *middleware.RateLimiter,
	log *logrus.Logger,
) *Router {
	return &Router{
		analysisHandler: analysisHandler,
		tripHandler:     tripHandler,
		driverHandler:   driverHandler,
		limiter:         limiter,
		log:             log,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recovery(rt.log))
	r.Use(middleware.Tracing)
	r.Use(middleware.Logger(rt.log))
	r.Use(middleware.Metrics)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		problem.NotFound("No route for "+r.URL.Path).WithInstance(r.URL.Path).Write(w)
	})

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// API v1 routes
	r.Route("/v1/drivers/{driverId}", func(r chi.Router) {
		r.Get("/driving-patterns", rt.analysisHandler.GetDrivingPatterns)
		r.Get("/trips", rt.tripHandler.List)

		r.Get("/profile", rt.driverHandler.GetProfile)
		r.Put("/profile", rt.driverHandler.PutProfile)

		// Recommendation routes may call the generative provider
		r.Group(func(r chi.Router) {
			r.Use(rt.limiter.Handler)
			r.Get("/rest-recommendation", rt.analysisHandler.GetRestRecommendation)
			r.Get("/analysis", rt.analysisHandler.GetAnalysis)
		})
		r.Post("/rest-recommendation/feedback", rt.analysisHandler.PostFeedback)
	})

	return r
}
