package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/blaisecz/driver-fatigue/internal/api/validation"
	"github.com/blaisecz/driver-fatigue/internal/domain"
	"github.com/blaisecz/driver-fatigue/internal/service"
	"github.com/blaisecz/driver-fatigue/pkg/problem"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type DriverHandler struct {
	service service.DriverService
	log     *logrus.Logger
}

func NewDriverHandler(service service.DriverService, log *logrus.Logger) *DriverHandler {
	return &DriverHandler{service: service, log: log}
}

// PutProfile handles PUT /v1/drivers/{driverId}/profile
// @Summary Set driver profile
// @Description Create or replace the driver's profile. The timezone drives night-window calculations.
// @Tags drivers
// @Accept json
// @Produce json
// @Param driverId path string true "Driver device ID" example(dev-00042)
// @Param request body domain.UpsertDriverProfileRequest true "Profile"
// @Success 200 {object} domain.DriverProfileResponse
// @Failure 400 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /drivers/{driverId}/profile [put]
func (h *DriverHandler) PutProfile(w http.ResponseWriter, r *http.Request) {
	driverID := chi.URLParam(r, "driverId")

	var req domain.UpsertDriverProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").WithInstance(r.URL.Path).Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).WithInstance(r.URL.Path).Write(w)
		return
	}

	profile, err := h.service.UpsertProfile(r.Context(), driverID, &req)
	if err != nil {
		writeError(w, r, h.log, err, "Failed to save driver profile")
		return
	}

	writeJSON(w, http.StatusOK, profile.ToResponse())
}

// GetProfile handles GET /v1/drivers/{driverId}/profile
// @Summary Get driver profile
// @Tags drivers
// @Produce json
// @Param driverId path string true "Driver device ID" example(dev-00042)
// @Success 200 {object} domain.DriverProfileResponse
// @Failure 404 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /drivers/{driverId}/profile [get]
func (h *DriverHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.GetProfile(r.Context(), chi.URLParam(r, "driverId"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("Driver profile not found").WithInstance(r.URL.Path).Write(w)
			return
		}
		writeError(w, r, h.log, err, "Failed to get driver profile")
		return
	}

	writeJSON(w, http.StatusOK, profile.ToResponse())
}
