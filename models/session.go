package models

import "time"

// Session statuses.
const (
	SessionConfirmed = "confirmed"
	SessionCompleted = "completed"
	SessionCancelled = "cancelled"
)

// Session types, named from the organizer's point of view.
const (
	SessionTypeLearning = "learning"
	SessionTypeTeaching = "teaching"
)

// Session is a confirmed two-way booking between an organizer and a participant.
type Session struct {
	ID             string    `bson:"id" json:"id"`
	OrganizerUID   string    `bson:"organizerUid" json:"organizer_uid"`
	ParticipantUID string    `bson:"participantUid" json:"participant_uid"`
	Participants   []string  `bson:"participants" json:"participants"` // always exactly two uids
	StartTime      time.Time `bson:"startTime" json:"start_time"`
	EndTime        time.Time `bson:"endTime" json:"end_time"`
	Summary        string    `bson:"summary" json:"summary"`
	SkillTopic     string    `bson:"skillTopic" json:"skill_topic"`
	SessionType    string    `bson:"sessionType" json:"session_type"`
	Status         string    `bson:"status" json:"status"`

	// External calendar event references, one per participant.
	OrganizerEventID     string `bson:"organizerEventId,omitempty" json:"organizer_event_id,omitempty"`
	ParticipantEventID   string `bson:"participantEventId,omitempty" json:"participant_event_id,omitempty"`
	OrganizerEventLink   string `bson:"organizerEventLink,omitempty" json:"organizer_event_link,omitempty"`
	ParticipantEventLink string `bson:"participantEventLink,omitempty" json:"participant_event_link,omitempty"`
	HangoutLink          string `bson:"hangoutLink,omitempty" json:"hangout_link,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updated_at"`
}

// HasParticipant reports whether uid is one of the two session members.
func (s *Session) HasParticipant(uid string) bool {
	for _, p := range s.Participants {
		if p == uid {
			return true
		}
	}
	return false
}

// BookSessionRequest is the payload for the two-way booking endpoint.
type BookSessionRequest struct {
	OrganizerAccessToken   string `json:"organizerAccessToken"`
	ParticipantAccessToken string `json:"participantAccessToken"`
	ParticipantUID         string `json:"participantUid"`
	Summary                string `json:"summary"`
	StartTime              string `json:"startTime"` // RFC3339
	EndTime                string `json:"endTime"`   // RFC3339
	SkillTopic             string `json:"skillTopic"`
	SessionType            string `json:"sessionType,omitempty"`
	Description            string `json:"description,omitempty"`
}

// BookingResult is returned to the client after a successful booking.
type BookingResult struct {
	SessionID   string   `json:"sessionId"`
	Organizer   EventRef `json:"organizer"`
	Participant EventRef `json:"participant"`
	Summary     string   `json:"summary"`
	StartTime   string   `json:"startTime"`
	EndTime     string   `json:"endTime"`
	SkillTopic  string   `json:"skillTopic"`
}
