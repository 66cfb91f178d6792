package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blaisecz/driver-fatigue/internal/domain"
)

func TestDriverService_UpsertProfile(t *testing.T) {
	repo := NewMockDriverRepository()
	svc := NewDriverService(repo, time.UTC)
	ctx := context.Background()

	first, err := svc.UpsertProfile(ctx, "dev-1", &domain.UpsertDriverProfileRequest{Timezone: "Asia/Shanghai"})
	if err != nil {
		t.Fatalf("UpsertProfile() error = %v", err)
	}
	if first.Timezone != "Asia/Shanghai" {
		t.Errorf("Timezone = %s", first.Timezone)
	}

	second, err := svc.UpsertProfile(ctx, "dev-1", &domain.UpsertDriverProfileRequest{Timezone: "Europe/Berlin"})
	if err != nil {
		t.Fatalf("UpsertProfile() error = %v", err)
	}
	if second.Timezone != "Europe/Berlin" {
		t.Errorf("Timezone = %s", second.Timezone)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("CreatedAt changed on update: %v -> %v", first.CreatedAt, second.CreatedAt)
	}

	if _, err := svc.UpsertProfile(ctx, "", &domain.UpsertDriverProfileRequest{Timezone: "UTC"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty driver id, got %v", err)
	}
}

func TestDriverService_Location(t *testing.T) {
	shanghai, _ := time.LoadLocation("Asia/Shanghai")
	repoErr := errors.New("db down")

	tests := []struct {
		name     string
		profiles map[string]*domain.DriverProfile
		err      error
		want     string
		wantErr  error
	}{
		{
			name: "no profile uses default",
			want: "Asia/Shanghai",
		},
		{
			name:     "profile timezone",
			profiles: map[string]*domain.DriverProfile{"dev-1": {DriverID: "dev-1", Timezone: "America/New_York"}},
			want:     "America/New_York",
		},
		{
			name:     "unloadable timezone falls back",
			profiles: map[string]*domain.DriverProfile{"dev-1": {DriverID: "dev-1", Timezone: "Mars/Olympus"}},
			want:     "Asia/Shanghai",
		},
		{
			name:    "repository error",
			err:     repoErr,
			wantErr: repoErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewMockDriverRepository()
			for k, v := range tt.profiles {
				repo.profiles[k] = v
			}
			repo.err = tt.err
			svc := NewDriverService(repo, shanghai)

			loc, err := svc.Location(context.Background(), "dev-1")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Location() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Location() error = %v", err)
			}
			if loc.String() != tt.want {
				t.Errorf("Location() = %s, want %s", loc, tt.want)
			}
		})
	}
}
