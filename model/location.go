package model

import "time"

// SavedAddress is one saved address with geocoordinates.
type SavedAddress struct {
	Label     string  `bson:"label" json:"label"`
	Address   string  `bson:"address" json:"address"`
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
	IsDefault bool    `bson:"is_default" json:"is_default"`
}

// UserLocations holds a user's saved addresses, at most three with at most
// one default. The document id is the owning user's id.
type UserLocations struct {
	ID        string         `bson:"_id" json:"user_id"`
	Locations []SavedAddress `bson:"locations" json:"locations"`
	UpdatedAt time.Time      `bson:"updated_at" json:"updated_at"`
}

// MaxSavedAddresses bounds the saved list per user.
const MaxSavedAddresses = 3

// Valid checks the saved-address invariants before persisting.
func (u *UserLocations) Valid() bool {
	if len(u.Locations) > MaxSavedAddresses {
		return false
	}
	defaults := 0
	for _, l := range u.Locations {
		if l.IsDefault {
			defaults++
		}
	}
	return defaults <= 1
}

// AddLocationRequest for saving an address
type AddLocationRequest struct {
	Label     string  `json:"label" validate:"required"`
	Address   string  `json:"address" validate:"required"`
	Latitude  float64 `json:"latitude" validate:"required"`
	Longitude float64 `json:"longitude" validate:"required"`
	IsDefault bool    `json:"is_default"`
}
