package handler

import (
	"encoding/json"
	"fmt"
	"iter"
	"net/http"

	"github.com/blaisecz/driver-fatigue/internal/api/validation"
	"github.com/blaisecz/driver-fatigue/internal/domain"
	"github.com/blaisecz/driver-fatigue/internal/service"
	"github.com/blaisecz/driver-fatigue/pkg/problem"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// AnalysisHandler serves driving patterns and rest recommendations.
type AnalysisHandler struct {
	analysis        service.AnalysisService
	recommendations service.RecommendationService
	log             *logrus.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(
	analysis service.AnalysisService,
	recommendations service.RecommendationService,
	log *logrus.Logger,
) *AnalysisHandler {
	return &AnalysisHandler{
		analysis:        analysis,
		recommendations: recommendations,
		log:             log,
	}
}

// GetDrivingPatterns handles GET /v1/drivers/{driverId}/driving-patterns
// @Summary Get driving patterns
// @Description Summarize a driver's trips over the lookback window: totals, night share, continuous driving incidents, the last 24 hours and the fatigue verdict.
// @Tags driving-analysis
// @Produce json
// @Param driverId path string true "Driver device ID" example(dev-00042)
// @Param simulated_time query integer false "Evaluation instant (Unix seconds); defaults to now" example(1705320000)
// @Param days_back query integer false "Lookback window in days" default(7) minimum(1) maximum(90)
// @Success 200 {object} domain.DrivingPatternResponse "Driving pattern summary"
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 404 {object} problem.Problem "No trips in the window"
// @Failure 422 {object} problem.Problem "Invalid trip data"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /drivers/{driverId}/driving-patterns [get]
func (h *AnalysisHandler) GetDrivingPatterns(w http.ResponseWriter, r *http.Request) {
	driverID := chi.URLParam(r, "driverId")

	q, fieldErrors := parseAnalysisQuery(r)
	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).WithInstance(r.URL.Path).Write(w)
		return
	}

	analysis, err := h.analysis.Analyze(r.Context(), q.analysisRequest(driverID))
	if err != nil {
		writeError(w, r, h.log, err, "Failed to analyze driving patterns")
		return
	}

	writeJSON(w, http.StatusOK, analysis.ToPatternResponse())
}

// GetRestRecommendation handles GET /v1/drivers/{driverId}/rest-recommendation
// @Summary Get rest recommendation
// @Description Recommend whether the driver should rest, using the rule engine or the generative provider. With streaming=true the response is a text/event-stream of fragments ending with one finished fragment.
// @Tags driving-analysis
// @Produce json
// @Produce text/event-stream
// @Param driverId path string true "Driver device ID" example(dev-00042)
// @Param mode query string false "Recommendation strategy" Enums(rule, generative) default(rule)
// @Param use_llm query boolean false "Shorthand for mode=generative"
// @Param streaming query boolean false "Stream the recommendation as server-sent events"
// @Param simulated_time query integer false "Evaluation instant (Unix seconds); defaults to now" example(1705320000)
// @Param days_back query integer false "Lookback window in days" default(7) minimum(1) maximum(90)
// @Success 200 {object} domain.RestRecommendation "Rest recommendation"
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 404 {object} problem.Problem "No trips in the window"
// @Failure 422 {object} problem.Problem "Invalid trip data"
// @Failure 429 {object} problem.Problem "Rate limited"
// @Failure 500 {object} problem.Problem "Provider or server error"
// @Failure 503 {object} problem.Problem "Generative provider not configured"
// @Router /drivers/{driverId}/rest-recommendation [get]
func (h *AnalysisHandler) GetRestRecommendation(w http.ResponseWriter, r *http.Request) {
	driverID := chi.URLParam(r, "driverId")

	q, fieldErrors := parseAnalysisQuery(r)
	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).WithInstance(r.URL.Path).Write(w)
		return
	}

	req := service.RecommendationRequest{
		AnalysisRequest: q.analysisRequest(driverID),
		Mode:            q.Mode,
	}

	if q.Streaming {
		seq, err := h.recommendations.Stream(r.Context(), req)
		if err != nil {
			writeError(w, r, h.log, err, "Failed to generate rest recommendation")
			return
		}
		h.writeStream(w, r, seq)
		return
	}

	rec, err := h.recommendations.Recommend(r.Context(), req)
	if err != nil {
		writeError(w, r, h.log, err, "Failed to generate rest recommendation")
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// GetAnalysis handles GET /v1/drivers/{driverId}/analysis
// @Summary Get combined driver analysis
// @Description Driving patterns, continuous segments, fatigue verdict and rest recommendation in one response.
// @Tags driving-analysis
// @Produce json
// @Param driverId path string true "Driver device ID" example(dev-00042)
// @Param mode query string false "Recommendation strategy" Enums(rule, generative) default(rule)
// @Param use_llm query boolean false "Shorthand for mode=generative"
// @Param simulated_time query integer false "Evaluation instant (Unix seconds); defaults to now" example(1705320000)
// @Param days_back query integer false "Lookback window in days" default(7) minimum(1) maximum(90)
// @Success 200 {object} domain.DriverAnalysisResponse "Combined analysis"
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 404 {object} problem.Problem "No trips in the window"
// @Failure 422 {object} problem.Problem "Invalid trip data"
// @Failure 429 {object} problem.Problem "Rate limited"
// @Failure 500 {object} problem.Problem "Provider or server error"
// @Failure 503 {object} problem.Problem "Generative provider not configured"
// @Router /drivers/{driverId}/analysis [get]
func (h *AnalysisHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	driverID := chi.URLParam(r, "driverId")

	q, fieldErrors := parseAnalysisQuery(r)
	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).WithInstance(r.URL.Path).Write(w)
		return
	}

	result, err := h.recommendations.Analyze(r.Context(), service.RecommendationRequest{
		AnalysisRequest: q.analysisRequest(driverID),
		Mode:            q.Mode,
	})
	if err != nil {
		writeError(w, r, h.log, err, "Failed to analyze driver")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// PostFeedback handles POST /v1/drivers/{driverId}/rest-recommendation/feedback
// @Summary Rate a rest recommendation
// @Description Submit a 1-5 rating and optional comment for a previous recommendation, identified by its trace_id.
// @Tags driving-analysis
// @Accept json
// @Param driverId path string true "Driver device ID" example(dev-00042)
// @Param body body domain.FeedbackRequest true "Feedback"
// @Success 204 "Feedback accepted"
// @Failure 400 {object} problem.Problem "Invalid request"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /drivers/{driverId}/rest-recommendation/feedback [post]
func (h *AnalysisHandler) PostFeedback(w http.ResponseWriter, r *http.Request) {
	driverID := chi.URLParam(r, "driverId")

	var req domain.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").WithInstance(r.URL.Path).Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).WithInstance(r.URL.Path).Write(w)
		return
	}

	if err := h.recommendations.SubmitFeedback(r.Context(), driverID, req); err != nil {
		writeError(w, r, h.log, err, "Failed to submit feedback")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeStream frames fragments as server-sent events. Errors after the
// first byte cannot change the status, so they are sent as an error event.
func (h *AnalysisHandler) writeStream(w http.ResponseWriter, r *http.Request, seq iter.Seq2[domain.StreamFragment, error]) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		problem.InternalError("Streaming unsupported").WithInstance(r.URL.Path).Write(w)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for fragment, err := range seq {
		if err != nil {
			p := problemFor(err, "Recommendation stream failed").WithInstance(r.URL.Path)
			h.log.WithError(err).WithField("path", r.URL.Path).Error("Recommendation stream failed")
			writeEvent(w, "error", p)
			flusher.Flush()
			return
		}
		if err := writeEvent(w, "", fragment); err != nil {
			// Client went away; breaking stops the upstream stream
			h.log.WithError(err).Debug("Stream client disconnected")
			return
		}
		flusher.Flush()
	}
}

func writeEvent(w http.ResponseWriter, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if event != "" {
		if _, err := fmt.Fprintf(w, "event: %s\n", event); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", data)
	return err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
