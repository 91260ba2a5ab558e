package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TimeslotService/pkg/types"
)

// Booking represents a committed reservation of a single slot.
// A booking is never mutated in place: cancelling and rebooking a slot
// replaces the record entirely.
type Booking struct {
	ID        string
	Date      time.Time
	StartTime types.TimeString
	Username  string // sanitized display name
	DeviceID  string
	Kiosk     bool // kiosk bookings can only be cancelled by an admin
	CreatedAt time.Time
}

// Key returns the unique storage key for the booking's slot.
func (b *Booking) Key() string {
	return SlotKey(b.Date, b.StartTime)
}

// OwnedBy reports whether the booking was made from the given device.
func (b *Booking) OwnedBy(deviceID string) bool {
	return b.DeviceID == deviceID
}

// SlotKey builds the canonical "YYYY-MM-DD_HH:MM" key for a slot.
// At most one active booking may exist per key.
func SlotKey(date time.Time, start types.TimeString) string {
	return fmt.Sprintf("%s_%s", date.Format(DateFormat), start)
}
