package models

import "time"

// BusyInterval is one busy block from the external calendar's freebusy query.
type BusyInterval struct {
	Start time.Time `bson:"start" json:"start"`
	End   time.Time `bson:"end" json:"end"`
}

// EventRef identifies a created external calendar event.
type EventRef struct {
	ID          string `json:"eventId"`
	Link        string `json:"eventLink,omitempty"`
	HangoutLink string `json:"hangoutLink,omitempty"`
}

// EventSpec describes an event to create in a participant's calendar.
type EventSpec struct {
	Summary       string
	Description   string
	StartTime     time.Time
	EndTime       time.Time
	AttendeeEmail string
}

// SyncCalendarRequest carries the OAuth access token for a sync run.
type SyncCalendarRequest struct {
	AccessToken string `json:"accessToken"`
}

// SyncCalendarResult summarizes a completed sync.
type SyncCalendarResult struct {
	AvailableSlots   []string     `json:"available_slots"`
	BusyTimesCount   int          `json:"busy_times_count"`
	UserAvailability Availability `json:"user_availability"`
	SlotsGenerated   int          `json:"slots_generated"`
}
