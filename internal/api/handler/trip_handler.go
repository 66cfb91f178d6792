package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/blaisecz/driver-fatigue/internal/domain"
	"github.com/blaisecz/driver-fatigue/internal/service"
	"github.com/blaisecz/driver-fatigue/pkg/pagination"
	"github.com/blaisecz/driver-fatigue/pkg/problem"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type TripHandler struct {
	service service.TripService
	log     *logrus.Logger
}

func NewTripHandler(service service.TripService, log *logrus.Logger) *TripHandler {
	return &TripHandler{service: service, log: log}
}

// List handles GET /v1/drivers/{driverId}/trips
// @Summary List trips
// @Description Fetch a driver's trips newest first with cursor pagination. Times are returned in UTC and in the driver's timezone.
// @Tags trips
// @Produce json
// @Param driverId path string true "Driver device ID" example(dev-00042)
// @Param from query string false "Only trips starting at or after (RFC3339)" format(date-time) example(2024-01-01T00:00:00Z)
// @Param to query string false "Only trips starting at or before (RFC3339)" format(date-time) example(2024-01-31T23:59:59Z)
// @Param limit query integer false "Results per page (1-100)" default(20) minimum(1) maximum(100)
// @Param cursor query string false "Cursor from previous response's next_cursor"
// @Success 200 {object} domain.TripListResponse "Trips with pagination"
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /drivers/{driverId}/trips [get]
func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	driverID := chi.URLParam(r, "driverId")

	filter, fieldErrors := parseTripFilter(r)
	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).WithInstance(r.URL.Path).Write(w)
		return
	}

	response, err := h.service.List(r.Context(), driverID, filter)
	if err != nil {
		writeError(w, r, h.log, err, "Failed to list trips")
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func parseTripFilter(r *http.Request) (domain.TripFilter, []problem.FieldError) {
	var filter domain.TripFilter
	var fieldErrors []problem.FieldError

	for _, name := range []string{"from", "to"} {
		v := r.URL.Query().Get(name)
		if v == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   name,
				Message: "must be a valid RFC3339 timestamp",
			})
			continue
		}
		if name == "from" {
			filter.From = &t
		} else {
			filter.To = &t
		}
	}

	if filter.From != nil && filter.To != nil && !filter.To.After(*filter.From) {
		fieldErrors = append(fieldErrors, problem.FieldError{
			Field:   "to",
			Message: "must be after from",
		})
	}

	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 || limit > pagination.MaxLimit {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "limit",
				Message: "must be an integer between 1 and " + strconv.Itoa(pagination.MaxLimit),
			})
		} else {
			filter.Limit = limit
		}
	}

	filter.Cursor = r.URL.Query().Get("cursor")

	return filter, fieldErrors
}
