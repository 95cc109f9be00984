package models

// ReminderPayload is the asynq task body for a scheduled session reminder.
type ReminderPayload struct {
	SessionID string `json:"sessionId"`
	UID       string `json:"uid"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	FireDate  string `json:"fireDate"`
}
