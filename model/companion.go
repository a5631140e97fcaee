package model

import "time"

// DayAvailability is one row of a companion's weekly availability grid.
type DayAvailability struct {
	Enabled bool   `bson:"enabled" json:"enabled"`
	Start   string `bson:"start,omitempty" json:"start,omitempty"` // "09:00"
	End     string `bson:"end,omitempty" json:"end,omitempty"`     // "18:00"
}

// CompanionEntity represents a service-provider profile.
// Email and mobile are globally unique (enforced by index).
type CompanionEntity struct {
	ID           string                     `bson:"_id" json:"id"`
	Name         string                     `bson:"name" json:"name"`
	Email        string                     `bson:"email" json:"email"`
	Mobile       string                     `bson:"mobile" json:"mobile"`
	Specialties  []string                   `bson:"specialties" json:"specialties"`
	HourlyRate   float64                    `bson:"hourly_rate" json:"hourly_rate"`
	Availability map[string]DayAvailability `bson:"availability,omitempty" json:"availability,omitempty"` // keyed mon..sun
	IsActive     bool                       `bson:"is_active" json:"is_active"`
	IsVerified   bool                       `bson:"is_verified" json:"is_verified"`
	RatingAvg    float64                    `bson:"rating_avg" json:"rating_avg"`
	RatingCount  int64                      `bson:"rating_count" json:"rating_count"`
	CreatedAt    time.Time                  `bson:"created_at" json:"created_at"`
	UpdatedAt    *time.Time                 `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// Assignable reports whether the companion can take new bookings.
func (c *CompanionEntity) Assignable() bool {
	return c.IsActive && c.IsVerified
}

type CompanionFilter struct {
	ID     string
	Email  string
	Mobile string
}

// CreateCompanionRequest for admin onboarding of a companion
type CreateCompanionRequest struct {
	Name         string                     `json:"name" validate:"required"`
	Email        string                     `json:"email" validate:"required,email"`
	Mobile       string                     `json:"mobile" validate:"required"`
	Specialties  []string                   `json:"specialties" validate:"required,min=1,dive,required"`
	HourlyRate   float64                    `json:"hourly_rate" validate:"required,gt=0"`
	Availability map[string]DayAvailability `json:"availability,omitempty"`
}

// UpdateCompanionRequest for admin edits; nil pointers leave fields untouched
type UpdateCompanionRequest struct {
	Name         *string                    `json:"name,omitempty"`
	Specialties  []string                   `json:"specialties,omitempty" validate:"omitempty,min=1,dive,required"`
	HourlyRate   *float64                   `json:"hourly_rate,omitempty" validate:"omitempty,gt=0"`
	Availability map[string]DayAvailability `json:"availability,omitempty"`
	IsActive     *bool                      `json:"is_active,omitempty"`
	IsVerified   *bool                      `json:"is_verified,omitempty"`
}
