package models

import "time"

// Weekday abbreviations accepted in manual availability.
var ValidDays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Availability holds a user's manually declared day/time preferences.
// Times are "HH:MM-HH:MM" ranges; they must be valid and pairwise disjoint.
type Availability struct {
	Days  []string `bson:"days" json:"days"`
	Times []string `bson:"times" json:"times"`
}

// UserProfile is the persisted profile document.
type UserProfile struct {
	UID           string       `bson:"uid" json:"uid"`
	Name          string       `bson:"name" json:"name"`
	Email         string       `bson:"email" json:"email"`
	AvatarURL     string       `bson:"avatarUrl,omitempty" json:"avatar_url,omitempty"`
	Role          string       `bson:"role" json:"role"` // "student", "mentor" or "admin"
	SkillsOffered []string     `bson:"skillsOffered" json:"skills_offered"`
	SkillsWanted  []string     `bson:"skillsWanted" json:"skills_wanted"`
	Availability  Availability `bson:"availability" json:"availability"`

	// Running mean of 1-5 ratings received as a mentor, and its sample count.
	BadgeScore       float64 `bson:"badgeScore" json:"badge_score"`
	BadgeCount       int     `bson:"badgeCount" json:"badge_count"`
	TotalBadgePoints int     `bson:"totalBadgePoints" json:"total_badge_points"`

	// Calendar sync state. AvailableSlots is only meaningful when synced.
	CalendarSynced      bool           `bson:"calendarSynced" json:"calendar_synced"`
	CalendarAccessToken string         `bson:"calendarAccessToken,omitempty" json:"-"`
	CalendarBusyTimes   []BusyInterval `bson:"calendarBusyTimes,omitempty" json:"calendar_busy_times,omitempty"`
	AvailableSlots      []string       `bson:"availableSlots" json:"available_slots"`
	CalendarLastSync    time.Time      `bson:"calendarLastSync,omitempty" json:"calendar_last_sync,omitzero"`

	FCMToken  string    `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updated_at"`
}

// Normalize fills fields that older or hand-edited documents may omit, so the
// rest of the code never sees nil slices.
func (u *UserProfile) Normalize() {
	if u.SkillsOffered == nil {
		u.SkillsOffered = []string{}
	}
	if u.SkillsWanted == nil {
		u.SkillsWanted = []string{}
	}
	if u.Availability.Days == nil {
		u.Availability.Days = []string{}
	}
	if u.Availability.Times == nil {
		u.Availability.Times = []string{}
	}
	if u.AvailableSlots == nil {
		u.AvailableSlots = []string{}
	}
	if u.Role == "" {
		u.Role = "student"
	}
}

// PublicProfile is the reduced view returned for other users.
type PublicProfile struct {
	UID           string       `json:"uid"`
	Name          string       `json:"name"`
	AvatarURL     string       `json:"avatar_url,omitempty"`
	Role          string       `json:"role"`
	SkillsOffered []string     `json:"skills_offered"`
	BadgeScore    float64      `json:"badge_score"`
	BadgeCount    int          `json:"badge_count"`
	Availability  Availability `json:"availability"`
}

// Public projects the profile into its shareable subset.
func (u *UserProfile) Public() PublicProfile {
	return PublicProfile{
		UID:           u.UID,
		Name:          u.Name,
		AvatarURL:     u.AvatarURL,
		Role:          u.Role,
		SkillsOffered: u.SkillsOffered,
		BadgeScore:    u.BadgeScore,
		BadgeCount:    u.BadgeCount,
		Availability:  u.Availability,
	}
}

// UpdateProfileRequest carries the mutable profile fields. Pointer fields
// distinguish "absent" from "set to empty".
type UpdateProfileRequest struct {
	Name          *string       `json:"name,omitempty"`
	AvatarURL     *string       `json:"avatar_url,omitempty"`
	SkillsOffered *[]string     `json:"skills_offered,omitempty"`
	SkillsWanted  *[]string     `json:"skills_wanted,omitempty"`
	Availability  *Availability `json:"availability,omitempty"`
	FCMToken      *string       `json:"fcm_token,omitempty"`
}

// IsEmpty reports whether no field was provided.
func (r *UpdateProfileRequest) IsEmpty() bool {
	return r.Name == nil && r.AvatarURL == nil && r.SkillsOffered == nil &&
		r.SkillsWanted == nil && r.Availability == nil && r.FCMToken == nil
}
