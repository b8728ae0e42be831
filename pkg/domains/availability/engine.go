// Package availability computes which dinner slots can still take bookings.
//
// Slots start every 30 minutes from 17:00 up to and including 21:30. A
// reservation occupies every slot within 89 minutes of it in either
// direction, so a booking bleeds into its neighbours to account for table
// turnover. A reservation exactly 90 minutes away does not count.
package availability

import (
	"time"
)

const (
	FirstSlotHour  = 17
	ClosingHour    = 22
	SlotInterval   = 30 * time.Minute
	ConflictWindow = 89 * time.Minute

	// SlotLabelLayout renders slots as en-US two-digit 12-hour clock times.
	SlotLabelLayout = "03:04 PM"
)

// CandidateSlots lists the bookable slot start times on the calendar day of
// date in loc.
func CandidateSlots(date time.Time, loc *time.Location) []time.Time {
	date = date.In(loc)
	first := time.Date(date.Year(), date.Month(), date.Day(), FirstSlotHour, 0, 0, 0, loc)
	closing := time.Date(date.Year(), date.Month(), date.Day(), ClosingHour, 0, 0, 0, loc)

	var slots []time.Time
	for slot := first; slot.Before(closing); slot = slot.Add(SlotInterval) {
		slots = append(slots, slot)
	}
	return slots
}

// ConflictCount counts reservations whose start lies within ConflictWindow
// of slot, bounds inclusive.
func ConflictCount(slot time.Time, reservations []time.Time) int {
	count := 0
	for _, r := range reservations {
		if diff := slot.Sub(r); diff >= -ConflictWindow && diff <= ConflictWindow {
			count++
		}
	}
	return count
}

// AvailableSlots returns, in chronological order, the candidate slots whose
// conflict count is strictly below maxPerSlot.
func AvailableSlots(date time.Time, loc *time.Location, reservations []time.Time, maxPerSlot int) []time.Time {
	available := []time.Time{}
	for _, slot := range CandidateSlots(date, loc) {
		if ConflictCount(slot, reservations) < maxPerSlot {
			available = append(available, slot)
		}
	}
	return available
}

// ComputeAvailableSlots is AvailableSlots formatted as clock labels.
func ComputeAvailableSlots(date time.Time, loc *time.Location, reservations []time.Time, maxPerSlot int) []string {
	slots := AvailableSlots(date, loc, reservations, maxPerSlot)
	labels := make([]string, len(slots))
	for i, slot := range slots {
		labels[i] = slot.In(loc).Format(SlotLabelLayout)
	}
	return labels
}
