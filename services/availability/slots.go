package availability

import (
	"sort"
	"time"

	"skillswap/models"
)

const (
	// SlotMinutes is the width of one schedulable slot.
	SlotMinutes = 30
	// WindowDays is the rolling window slots are generated over.
	WindowDays = 7
	// SlotLabelFormat renders a slot start for display and for the literal
	// slot-set intersection used by the matcher.
	SlotLabelFormat = "Mon, 02/01/2006, 03:04 pm"
)

// Reconciler turns declared preferences, external busy times and existing
// bookings into concrete open slots.
type Reconciler struct {
	Location      *time.Location
	WorkStartHour int
	WorkEndHour   int
	Now           func() time.Time
}

// NewReconciler builds a reconciler for the given timezone and default
// working hours.
func NewReconciler(loc *time.Location, workStart, workEnd int) *Reconciler {
	return &Reconciler{
		Location:      loc,
		WorkStartHour: workStart,
		WorkEndHour:   workEnd,
		Now:           time.Now,
	}
}

// GenerateSlots produces the open 30-minute slots for the next WindowDays
// calendar days, chronologically ordered and labelled in the target timezone.
//
// A day is considered iff the user declared it (or declared no days at all —
// default inclusion). Candidate ranges are the declared times, falling back to
// working hours. A slot survives iff it overlaps no busy interval and no
// existing session the user participates in.
func (r *Reconciler) GenerateSlots(avail models.Availability, busy []models.BusyInterval, booked []models.Session) []string {
	now := r.Now().In(r.Location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, r.Location)

	dayRanges := r.candidateRanges(avail)
	declaredDays := make(map[string]bool, len(avail.Days))
	for _, d := range avail.Days {
		declaredDays[d] = true
	}

	slots := []string{}
	for i := 0; i < WindowDays; i++ {
		date := today.AddDate(0, 0, i)
		dayName := date.Format("Mon")

		if len(avail.Days) > 0 && !declaredDays[dayName] {
			continue
		}

		for _, tr := range dayRanges {
			for start := tr.Start; start < tr.End; start += SlotMinutes {
				slotStart := date.Add(time.Duration(start) * time.Minute)
				slotEnd := slotStart.Add(SlotMinutes * time.Minute)

				if conflictsBusy(slotStart, slotEnd, busy) || conflictsBooked(slotStart, slotEnd, booked) {
					continue
				}
				slots = append(slots, slotStart.Format(SlotLabelFormat))
			}
		}
	}
	return slots
}

// candidateRanges returns the declared time ranges sorted by start, or the
// working-hours default when none were declared.
func (r *Reconciler) candidateRanges(avail models.Availability) []TimeRange {
	ranges, err := ParseRanges(avail.Times)
	if err != nil || len(ranges) == 0 {
		return []TimeRange{{Start: r.WorkStartHour * 60, End: r.WorkEndHour * 60}}
	}
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Start < ranges[j].Start })
	return ranges
}

func conflictsBusy(slotStart, slotEnd time.Time, busy []models.BusyInterval) bool {
	for _, b := range busy {
		if slotStart.Before(b.End) && b.Start.Before(slotEnd) {
			return true
		}
	}
	return false
}

func conflictsBooked(slotStart, slotEnd time.Time, booked []models.Session) bool {
	for _, s := range booked {
		if slotStart.Before(s.EndTime) && s.StartTime.Before(slotEnd) {
			return true
		}
	}
	return false
}
