package models

// MatchCandidate is a scored mentor produced by a match query. Transient:
// recomputed per request, never persisted.
type MatchCandidate struct {
	UID                string       `json:"uid"`
	Name               string       `json:"name"`
	AvatarURL          string       `json:"avatar_url,omitempty"`
	SkillsOffered      []string     `json:"skills_offered"`
	BadgeScore         float64      `json:"badge_score"`
	Availability       Availability `json:"availability"`
	AvailableSlots     []string     `json:"available_slots,omitempty"`
	CalendarSynced     bool         `json:"calendar_synced"`
	MatchScore         float64      `json:"match_score"`
	SkillMatchPoints   float64      `json:"skill_match_points"`
	AvailabilityPoints float64      `json:"availability_points"`
}
