package model

import (
	"time"

	"github.com/bondyapp/bondy/constant"
)

// UserContact is a point-in-time snapshot of the requester's contact info,
// decoupling historical bookings from later profile edits.
type UserContact struct {
	Name  string `bson:"name" json:"name"`
	Phone string `bson:"phone" json:"phone"`
}

// PaymentInfo is the payment sub-document embedded in a booking.
type PaymentInfo struct {
	Method    string `bson:"method,omitempty" json:"method,omitempty"`
	Status    string `bson:"status,omitempty" json:"status,omitempty"`
	Amount    int    `bson:"amount,omitempty" json:"amount,omitempty"`
	OrderID   string `bson:"order_id,omitempty" json:"order_id,omitempty"`
	PaymentID string `bson:"payment_id,omitempty" json:"payment_id,omitempty"`
	Signature string `bson:"signature,omitempty" json:"signature,omitempty"`
}

// BookingEntity is the central transaction record of the marketplace.
type BookingEntity struct {
	ID                  string                 `bson:"_id" json:"id"`
	UserID              string                 `bson:"user_id" json:"user_id"`
	UserContact         UserContact            `bson:"user_contact" json:"user_contact"`
	ServiceType         string                 `bson:"service_type" json:"service_type"`
	TaskDescription     string                 `bson:"task_description" json:"task_description"`
	Duration            string                 `bson:"duration" json:"duration"`
	Hours               int                    `bson:"hours" json:"hours"`
	Date                string                 `bson:"date" json:"date"` // "2006-01-02"
	Time                string                 `bson:"time" json:"time"` // "15:04"
	Location            string                 `bson:"location" json:"location"`
	Status              constant.BookingStatus `bson:"status" json:"status"`
	Amount              int                    `bson:"amount" json:"amount"`
	AssignedCompanionID string                 `bson:"assigned_companion_id,omitempty" json:"assigned_companion_id,omitempty"`
	AssignedAt          *time.Time             `bson:"assigned_at,omitempty" json:"assigned_at,omitempty"`
	AssignedBy          string                 `bson:"assigned_by,omitempty" json:"assigned_by,omitempty"`
	Rating              int                    `bson:"rating,omitempty" json:"rating,omitempty"`
	Review              string                 `bson:"review,omitempty" json:"review,omitempty"`
	Payment             PaymentInfo            `bson:"payment,omitempty" json:"payment,omitempty"`
	CreatedAt           time.Time              `bson:"created_at" json:"created_at"`
	UpdatedAt           *time.Time             `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// StartsAt combines the date and time fields in the given location.
func (b *BookingEntity) StartsAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", b.Date+" "+b.Time, loc)
}

// CreateBookingRequest for booking creation
type CreateBookingRequest struct {
	ServiceType     string `json:"service_type" validate:"required"`
	TaskDescription string `json:"task_description" validate:"required"`
	Duration        string `json:"duration" validate:"required"`
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	Time            string `json:"time" validate:"required,datetime=15:04"`
	Location        string `json:"location" validate:"required"`
}

type CreateBookingResponse struct {
	Booking          *BookingEntity `json:"booking"`
	CalculatedAmount int            `json:"calculated_amount"`
	Hours            int            `json:"hours"`
}

// UpdateBookingRequest for owner-scoped edits of a pending booking
type UpdateBookingRequest struct {
	TaskDescription *string `json:"task_description,omitempty"`
	Date            *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Time            *string `json:"time,omitempty" validate:"omitempty,datetime=15:04"`
	Location        *string `json:"location,omitempty"`
}

// RateBookingRequest for post-completion rating
type RateBookingRequest struct {
	Rating int    `json:"rating" validate:"required"`
	Review string `json:"review,omitempty"`
}

// BookingFilter for listings
type BookingFilter struct {
	UserID string
	Status constant.BookingStatus
	Page   int
	Limit  int
}

// BookingListItem is a booking annotated with its assigned companion.
type BookingListItem struct {
	BookingEntity `bson:",inline"`
	Companion     *CompanionEntity `bson:"companion,omitempty" json:"companion,omitempty"`
}

type BookingListResponse struct {
	Items      []*BookingListItem `json:"items"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	PerPage    int                `json:"per_page"`
}

// BookingStats aggregates one user's bookings.
type BookingStats struct {
	StatusCounts  map[string]int64 `json:"status_counts"`
	AverageRating float64          `json:"average_rating"`
}
