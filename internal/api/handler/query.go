package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/blaisecz/driver-fatigue/internal/domain"
	"github.com/blaisecz/driver-fatigue/pkg/problem"
)

// analysisQuery holds the query parameters shared by the analysis routes.
type analysisQuery struct {
	Now       time.Time
	DaysBack  int
	Mode      domain.RecommendationMode
	Streaming bool
}

func parseAnalysisQuery(r *http.Request) (analysisQuery, []problem.FieldError) {
	var q analysisQuery
	var fieldErrors []problem.FieldError
	values := r.URL.Query()

	if v := values.Get("simulated_time"); v != "" {
		sec, err := strconv.ParseInt(v, 10, 64)
		if err != nil || sec <= 0 {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "simulated_time",
				Message: "must be a positive Unix timestamp in seconds",
			})
		} else {
			q.Now = time.Unix(sec, 0).UTC()
		}
	}

	q.DaysBack = domain.DefaultDaysBack
	if v := values.Get("days_back"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days < 1 || days > domain.MaxDaysBack {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "days_back",
				Message: "must be an integer between 1 and " + strconv.Itoa(domain.MaxDaysBack),
			})
		} else {
			q.DaysBack = days
		}
	}

	mode, ok := domain.ParseRecommendationMode(values.Get("mode"))
	if !ok {
		fieldErrors = append(fieldErrors, problem.FieldError{
			Field:   "mode",
			Message: "must be one of: rule generative",
		})
	}
	q.Mode = mode

	// use_llm is the older spelling of mode=generative
	if v := values.Get("use_llm"); v != "" {
		useLLM, err := strconv.ParseBool(v)
		if err != nil {
			fieldErrors = append(fieldErrors, problem.FieldError{Field: "use_llm", Message: "must be a boolean"})
		} else if useLLM && values.Get("mode") == "" {
			q.Mode = domain.ModeGenerative
		}
	}

	if v := values.Get("streaming"); v != "" {
		streaming, err := strconv.ParseBool(v)
		if err != nil {
			fieldErrors = append(fieldErrors, problem.FieldError{Field: "streaming", Message: "must be a boolean"})
		}
		q.Streaming = streaming
	}

	return q, fieldErrors
}

func (q analysisQuery) analysisRequest(driverID string) domain.AnalysisRequest {
	return domain.AnalysisRequest{
		DriverID: driverID,
		Now:      q.Now,
		DaysBack: q.DaysBack,
	}
}
