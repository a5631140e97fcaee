package constant

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in-progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// Cancellable reports whether a booking in this status may still be cancelled.
func (s BookingStatus) Cancellable() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

// Service types offered on the platform.
const (
	ServiceElderlyCare    = "elderly-care"
	ServiceErrands        = "errands"
	ServiceMedicalSupport = "medical-support"
	ServiceCompanionship  = "companionship"
	ServiceHouseholdHelp  = "household-help"
)

var ServiceTypes = map[string]bool{
	ServiceElderlyCare:    true,
	ServiceErrands:        true,
	ServiceMedicalSupport: true,
	ServiceCompanionship:  true,
	ServiceHouseholdHelp:  true,
}

// DurationFullDay is priced the same as the 8 hour slot.
const DurationFullDay = "full-day"

// DurationHours maps the booking duration selector to billable hours.
var DurationHours = map[string]int{
	"1":             1,
	"2":             2,
	"3":             3,
	"4":             4,
	"6":             6,
	"8":             8,
	DurationFullDay: 8,
}

// DefaultDurationHours is assumed when the duration value is not recognized.
const DefaultDurationHours = 2

// HourlyRate is the flat platform rate per billable hour.
const HourlyRate = 100

// MinBookingLeadTime: bookings must start at least this far in the future.
const MinBookingLeadTimeMinutes = 10
