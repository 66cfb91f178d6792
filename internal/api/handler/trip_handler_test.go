package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blaisecz/driver-fatigue/internal/domain"
	"github.com/go-chi/chi/v5"
)

func TestTripHandler_List(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		serviceErr     error
		wantStatusCode int
		check          func(t *testing.T, f domain.TripFilter)
	}{
		{
			name:           "no filters",
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "range, limit and cursor",
			query:          "?from=2024-01-01T00:00:00Z&to=2024-01-31T00:00:00Z&limit=5&cursor=abc",
			wantStatusCode: http.StatusOK,
			check: func(t *testing.T, f domain.TripFilter) {
				if f.From == nil || f.To == nil || f.Limit != 5 || f.Cursor != "abc" {
					t.Errorf("filter = %+v", f)
				}
			},
		},
		{
			name:           "invalid from",
			query:          "?from=yesterday",
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "to before from",
			query:          "?from=2024-01-31T00:00:00Z&to=2024-01-01T00:00:00Z",
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "limit too large",
			query:          "?limit=500",
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "invalid cursor",
			query:          "?cursor=!!",
			serviceErr:     fmt.Errorf("%w: invalid cursor", domain.ErrInvalidInput),
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockTripService{
				listFunc: func(ctx context.Context, driverID string, filter domain.TripFilter) (*domain.TripListResponse, error) {
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					if tt.check != nil {
						tt.check(t, filter)
					}
					return &domain.TripListResponse{Data: []domain.TripResponse{}}, nil
				},
			}
			h := NewTripHandler(svc, quietLogger())

			r := chi.NewRouter()
			r.Get("/v1/drivers/{driverId}/trips", h.List)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/drivers/dev-1/trips"+tt.query, nil))

			if rec.Code != tt.wantStatusCode {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}
		})
	}
}
