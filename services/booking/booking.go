package booking

import (
	"context"
	"fmt"
	"time"

	sessionRepo "skillswap/database/repository/session"
	userRepo "skillswap/database/repository/user"
	"skillswap/models"
	"skillswap/services/calendar"
	"skillswap/services/tasks"
	"skillswap/utils"

	"go.uber.org/zap"
)

// reminderLead is how long before session start the reminder fires.
const reminderLead = 30 * time.Minute

// BookingService coordinates two-way session bookings: one calendar event per
// participant plus the internal session record, all-or-nothing from the
// caller's perspective.
type BookingService interface {
	BookTwoWaySession(ctx context.Context, organizerUID string, req models.BookSessionRequest) (*models.BookingResult, error)
	ListSessions(uid, status string) ([]models.Session, error)
	CancelSession(ctx context.Context, uid, sessionID string) error
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	UserRepo    userRepo.UserRepository
	SessionRepo sessionRepo.SessionRepository
	Calendar    calendar.Provider
	Reminders   tasks.ReminderScheduler
}

// BookTwoWaySession validates the request, creates the organizer's event,
// then the participant's, and only then persists the session record. A
// participant-side failure rolls back the organizer's event; no session
// record survives any failure.
func (s *DefaultBookingService) BookTwoWaySession(ctx context.Context, organizerUID string, req models.BookSessionRequest) (*models.BookingResult, error) {
	logger := utils.GetLogger()

	start, end, err := validateBookingRequest(req)
	if err != nil {
		return nil, err
	}

	organizer, err := s.UserRepo.GetByUID(organizerUID)
	if err != nil {
		return nil, fmt.Errorf("failed to load organizer: %w", err)
	}
	participant, err := s.UserRepo.GetByUID(req.ParticipantUID)
	if err != nil {
		return nil, fmt.Errorf("failed to load participant: %w", err)
	}
	if organizer == nil || participant == nil {
		return nil, utils.NewNotFound("one or both users not found")
	}

	description := req.Description
	if description == "" {
		description = "SkillSwap Session: " + req.SkillTopic
	}

	organizerEvent, err := s.Calendar.CreateEvent(ctx, req.OrganizerAccessToken, models.EventSpec{
		Summary:       req.Summary,
		Description:   description,
		StartTime:     start,
		EndTime:       end,
		AttendeeEmail: participant.Email,
	})
	if err != nil {
		return nil, err
	}

	participantEvent, err := s.Calendar.CreateEvent(ctx, req.ParticipantAccessToken, models.EventSpec{
		Summary:       req.Summary,
		Description:   description,
		StartTime:     start,
		EndTime:       end,
		AttendeeEmail: organizer.Email,
	})
	if err != nil {
		// Roll back the organizer's event so neither side keeps a dangling
		// half-booking. If even the rollback fails, log both identifiers for
		// manual reconciliation.
		if rbErr := s.Calendar.DeleteEvent(ctx, req.OrganizerAccessToken, organizerEvent.ID); rbErr != nil {
			logger.Error("booking rollback failed; organizer event orphaned",
				zap.String("organizerUid", organizerUID),
				zap.String("organizerEventId", organizerEvent.ID),
				zap.Error(rbErr))
			return nil, utils.NewExternalFailure(
				fmt.Sprintf("participant event failed and rollback of organizer event %s also failed", organizerEvent.ID), err)
		}
		return nil, utils.NewPartialBookingFailure("participant calendar event creation failed, organizer event rolled back", err)
	}

	sessionType := req.SessionType
	if sessionType == "" {
		sessionType = models.SessionTypeLearning
	}

	session := &models.Session{
		OrganizerUID:         organizerUID,
		ParticipantUID:       req.ParticipantUID,
		Participants:         []string{organizerUID, req.ParticipantUID},
		StartTime:            start,
		EndTime:              end,
		Summary:              req.Summary,
		SkillTopic:           req.SkillTopic,
		SessionType:          sessionType,
		Status:               models.SessionConfirmed,
		OrganizerEventID:     organizerEvent.ID,
		ParticipantEventID:   participantEvent.ID,
		OrganizerEventLink:   organizerEvent.Link,
		ParticipantEventLink: participantEvent.Link,
		HangoutLink:          organizerEvent.HangoutLink,
	}

	sessionID, err := s.SessionRepo.Create(session)
	if err != nil {
		// Both external events exist but the record does not; undo both.
		if rbErr := s.Calendar.DeleteEvent(ctx, req.OrganizerAccessToken, organizerEvent.ID); rbErr != nil {
			logger.Error("session persist rollback failed for organizer event",
				zap.String("eventId", organizerEvent.ID), zap.Error(rbErr))
		}
		if rbErr := s.Calendar.DeleteEvent(ctx, req.ParticipantAccessToken, participantEvent.ID); rbErr != nil {
			logger.Error("session persist rollback failed for participant event",
				zap.String("eventId", participantEvent.ID), zap.Error(rbErr))
		}
		return nil, fmt.Errorf("failed to persist session record: %w", err)
	}

	s.scheduleReminders(session, sessionID)

	logger.Info("two-way session booked",
		zap.String("sessionId", sessionID),
		zap.String("organizer", organizerUID),
		zap.String("participant", req.ParticipantUID))

	return &models.BookingResult{
		SessionID:   sessionID,
		Organizer:   *organizerEvent,
		Participant: *participantEvent,
		Summary:     req.Summary,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		SkillTopic:  req.SkillTopic,
	}, nil
}

func validateBookingRequest(req models.BookSessionRequest) (time.Time, time.Time, error) {
	if req.OrganizerAccessToken == "" || req.ParticipantAccessToken == "" ||
		req.ParticipantUID == "" || req.Summary == "" ||
		req.StartTime == "" || req.EndTime == "" || req.SkillTopic == "" {
		return time.Time{}, time.Time{}, utils.NewInvalidInput(
			"missing required fields: organizerAccessToken, participantAccessToken, participantUid, summary, startTime, endTime, skillTopic")
	}
	if req.SessionType != "" && req.SessionType != models.SessionTypeLearning && req.SessionType != models.SessionTypeTeaching {
		return time.Time{}, time.Time{}, utils.NewInvalidInput("sessionType must be \"learning\" or \"teaching\"")
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, utils.NewInvalidInput("invalid startTime, use RFC3339 like 2025-06-12T10:00:00+05:30")
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, utils.NewInvalidInput("invalid endTime, use RFC3339 like 2025-06-12T10:00:00+05:30")
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, utils.NewInvalidInput("start time must be before end time")
	}
	return start, end, nil
}

// scheduleReminders enqueues a pre-session reminder for both participants.
// Reminder delivery is best effort and never fails the booking.
func (s *DefaultBookingService) scheduleReminders(session *models.Session, sessionID string) {
	if s.Reminders == nil {
		return
	}
	fireAt := session.StartTime.Add(-reminderLead)
	if fireAt.Before(time.Now()) {
		return
	}
	for _, uid := range session.Participants {
		payload := models.ReminderPayload{
			SessionID: sessionID,
			UID:       uid,
			Title:     "Upcoming SkillSwap session",
			Body:      fmt.Sprintf("%s starts at %s", session.SkillTopic, session.StartTime.Format(time.Kitchen)),
			FireDate:  fireAt.Format(time.RFC3339),
		}
		if err := s.Reminders.ScheduleSessionReminder(payload, fireAt); err != nil {
			utils.GetLogger().Warn("failed to schedule session reminder",
				zap.String("sessionId", sessionID), zap.String("uid", uid), zap.Error(err))
		}
	}
}

// ListSessions returns the sessions a user participates in.
func (s *DefaultBookingService) ListSessions(uid, status string) ([]models.Session, error) {
	sessions, err := s.SessionRepo.ListByParticipant(uid, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

// CancelSession marks a session cancelled. Only a participant may cancel.
func (s *DefaultBookingService) CancelSession(ctx context.Context, uid, sessionID string) error {
	session, err := s.SessionRepo.GetByID(sessionID)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return utils.NewNotFound("session does not exist")
	}
	if !session.HasParticipant(uid) {
		return utils.NewUnauthorized("you are not a participant in this session")
	}
	if session.Status == models.SessionCancelled {
		return utils.NewConflict("session already cancelled")
	}

	if err := s.SessionRepo.UpdateStatus(sessionID, models.SessionCancelled); err != nil {
		return fmt.Errorf("failed to cancel session: %w", err)
	}
	utils.GetLogger().Info("session cancelled", zap.String("sessionId", sessionID), zap.String("uid", uid))
	return nil
}
