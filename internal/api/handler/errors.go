package handler

import (
	"errors"
	"net/http"

	"github.com/blaisecz/driver-fatigue/internal/domain"
	"github.com/blaisecz/driver-fatigue/internal/llm"
	"github.com/blaisecz/driver-fatigue/pkg/problem"
	"github.com/sirupsen/logrus"
)

// problemFor maps a service error onto its HTTP problem. Unknown errors
// become a 500 with the given fallback detail.
func problemFor(err error, fallback string) *problem.Problem {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return problem.NotFound(err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return problem.BadRequest(err.Error())
	case errors.Is(err, domain.ErrInvalidTrip):
		return problem.InvalidTripData(err.Error())
	case errors.Is(err, llm.ErrProviderUnavailable):
		return problem.ServiceUnavailable("Generative recommendations are not configured")
	case errors.Is(err, llm.ErrProviderRequest), errors.Is(err, llm.ErrProviderResponse):
		return problem.ProviderError("Failed to generate a recommendation from the provider")
	default:
		return problem.InternalError(fallback)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, log *logrus.Logger, err error, fallback string) {
	p := problemFor(err, fallback)
	if p.Status >= http.StatusInternalServerError {
		log.WithError(err).WithField("path", r.URL.Path).Error(fallback)
	}
	p.WithInstance(r.URL.Path).Write(w)
}
