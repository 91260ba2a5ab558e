package domain

import (
	"time"

	"github.com/m04kA/SMC-TimeslotService/pkg/types"
)

// SlotStatus is the temporal status of a slot relative to the server clock.
type SlotStatus string

const (
	StatusPast    SlotStatus = "past"
	StatusCurrent SlotStatus = "current"
	StatusFuture  SlotStatus = "future"
)

// Section identifies which part of the working day a slot belongs to.
type Section string

const (
	SectionMorning   Section = "morning"
	SectionAfternoon Section = "afternoon"
)

// Slot represents a single bookable 15-minute interval on a given date.
type Slot struct {
	Date      time.Time
	StartTime types.TimeString
	Section   Section
	Status    SlotStatus
}

// IsPast returns true if the slot has fully elapsed.
func (s *Slot) IsPast() bool {
	return s.Status == StatusPast
}

// BookableBy reports whether the slot may be claimed by the caller,
// ignoring occupancy. Past slots are admin-only; current and future
// slots are open to everyone.
func (s *Slot) BookableBy(isAdmin bool) bool {
	return !s.IsPast() || isAdmin
}

// StatusAt derives the temporal status of a slot starting at start on date,
// evaluated against now. The interval is closed at the start and open at
// the end: start <= now < start+duration means CURRENT. The slot is
// anchored in now's location: date carries only the calendar day, and a
// date parsed in UTC must not shift statuses on a non-UTC server.
func StatusAt(date time.Time, start types.TimeString, now time.Time) SlotStatus {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())

	slotStart, err := start.At(day)
	if err != nil {
		// Malformed starts are rejected at the boundary; treat as future
		// so nothing becomes silently bookable-by-admin-only.
		return StatusFuture
	}
	slotEnd := slotStart.Add(SlotDurationMinutes * time.Minute)

	switch {
	case !now.Before(slotEnd):
		return StatusPast
	case !now.Before(slotStart):
		return StatusCurrent
	default:
		return StatusFuture
	}
}

// SectionOf returns the working-day section for a slot start time.
// Anything before the lunch gap is morning, the rest is afternoon.
func SectionOf(start types.TimeString) Section {
	if start.IsBefore(types.TimeString(LunchStart)) {
		return SectionMorning
	}
	return SectionAfternoon
}
