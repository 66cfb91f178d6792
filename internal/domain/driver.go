package domain

import "time"

// DriverProfile holds per-driver settings. Drivers without a profile are
// analysed in the service's default timezone.
type DriverProfile struct {
	DriverID  string    `gorm:"column:devid;type:varchar(64);primaryKey" json:"driver_id"`
	Timezone  string    `gorm:"type:varchar(64);not null;default:'UTC'" json:"timezone"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (DriverProfile) TableName() string {
	return "driver_profiles"
}

// Location resolves the profile timezone, falling back to fallback when
// the name cannot be loaded.
func (p *DriverProfile) Location(fallback *time.Location) *time.Location {
	if p == nil || p.Timezone == "" {
		return fallback
	}
	if loc, err := time.LoadLocation(p.Timezone); err == nil {
		return loc
	}
	return fallback
}

// UpsertDriverProfileRequest is the request body for setting a driver profile
type UpsertDriverProfileRequest struct {
	Timezone string `json:"timezone" validate:"required,timezone" example:"Asia/Shanghai"`
}

// DriverProfileResponse is the response body for driver profile endpoints
type DriverProfileResponse struct {
	DriverID  string    `json:"driver_id"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *DriverProfile) ToResponse() DriverProfileResponse {
	return DriverProfileResponse{
		DriverID:  p.DriverID,
		Timezone:  p.Timezone,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
