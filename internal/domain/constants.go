package domain

// Working day layout. Slots run from DayStart to DayEnd in fixed
// SlotDurationMinutes steps, with the lunch gap excluded.
const (
	DayStart   = "09:00"
	LunchStart = "12:00"
	LunchEnd   = "14:00"
	DayEnd     = "18:00"

	SlotDurationMinutes = 15
)

// Date window defaults
const (
	DefaultWindowDays = 3
)

// Display name validation constants
const (
	MaxDisplayNameLength = 32
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Audit reasons written alongside booking events
const (
	ReasonBooked    = "booked"
	ReasonCancelled = "cancelled"
	ReasonCompleted = "completed"
)
