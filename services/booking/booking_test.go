package booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"skillswap/models"
	"skillswap/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeUserRepo struct {
	users map[string]*models.UserProfile
}

func (f *fakeUserRepo) GetByUID(uid string) (*models.UserProfile, error) { return f.users[uid], nil }
func (f *fakeUserRepo) GetAll() ([]models.UserProfile, error)           { return nil, nil }
func (f *fakeUserRepo) Create(u *models.UserProfile) error              { f.users[u.UID] = u; return nil }
func (f *fakeUserRepo) Update(u *models.UserProfile) error              { f.users[u.UID] = u; return nil }
func (f *fakeUserRepo) UpdateFields(uid string, fields bson.M) error    { return nil }
func (f *fakeUserRepo) Delete(uid string) error                         { delete(f.users, uid); return nil }

type fakeSessionRepo struct {
	sessions map[string]*models.Session
	statuses map[string]string
	nextID   int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*models.Session{}, statuses: map[string]string{}}
}

func (f *fakeSessionRepo) Create(s *models.Session) (string, error) {
	f.nextID++
	id := fmt.Sprintf("session-%d", f.nextID)
	s.ID = id
	f.sessions[id] = s
	return id, nil
}

func (f *fakeSessionRepo) GetByID(id string) (*models.Session, error) { return f.sessions[id], nil }

func (f *fakeSessionRepo) ListByParticipant(uid, status string) ([]models.Session, error) {
	var out []models.Session
	for _, s := range f.sessions {
		if s.HasParticipant(uid) && (status == "" || s.Status == status) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) UpdateStatus(id, status string) error {
	f.statuses[id] = status
	if s, ok := f.sessions[id]; ok {
		s.Status = status
	}
	return nil
}

func (f *fakeSessionRepo) DeleteByParticipant(uid string) error { return nil }

type fakeCalendar struct {
	created      []string // tokens in creation order
	deleted      []string // event ids deleted
	failOnCreate int      // 1-based call number that fails, 0 = never
	failDelete   bool
}

func (f *fakeCalendar) QueryBusy(ctx context.Context, token string, days int) ([]models.BusyInterval, error) {
	return nil, nil
}

func (f *fakeCalendar) CreateEvent(ctx context.Context, token string, spec models.EventSpec) (*models.EventRef, error) {
	call := len(f.created) + 1
	if f.failOnCreate == call {
		return nil, utils.NewExternalFailure("calendar event creation failed", errors.New("boom"))
	}
	f.created = append(f.created, token)
	return &models.EventRef{ID: fmt.Sprintf("event-%d", call), Link: fmt.Sprintf("https://cal/event-%d", call)}, nil
}

func (f *fakeCalendar) DeleteEvent(ctx context.Context, token, eventID string) error {
	if f.failDelete {
		return utils.NewExternalFailure("calendar event deletion failed", errors.New("boom"))
	}
	f.deleted = append(f.deleted, eventID)
	return nil
}

func validRequest() models.BookSessionRequest {
	start := time.Now().Add(48 * time.Hour).Truncate(time.Hour)
	return models.BookSessionRequest{
		OrganizerAccessToken:   "org-token",
		ParticipantAccessToken: "part-token",
		ParticipantUID:         "mentor",
		Summary:                "Excel basics",
		StartTime:              start.Format(time.RFC3339),
		EndTime:                start.Add(30 * time.Minute).Format(time.RFC3339),
		SkillTopic:             "Excel",
	}
}

func newService(cal *fakeCalendar) (*DefaultBookingService, *fakeSessionRepo) {
	users := &fakeUserRepo{users: map[string]*models.UserProfile{
		"learner": {UID: "learner", Email: "learner@example.com"},
		"mentor":  {UID: "mentor", Email: "mentor@example.com"},
	}}
	sessions := newFakeSessionRepo()
	return &DefaultBookingService{
		UserRepo:    users,
		SessionRepo: sessions,
		Calendar:    cal,
	}, sessions
}

func TestBookTwoWaySessionSuccess(t *testing.T) {
	cal := &fakeCalendar{}
	svc, sessions := newService(cal)

	result, err := svc.BookTwoWaySession(context.Background(), "learner", validRequest())
	require.NoError(t, err)

	assert.Equal(t, "event-1", result.Organizer.ID)
	assert.Equal(t, "event-2", result.Participant.ID)
	assert.Equal(t, []string{"org-token", "part-token"}, cal.created)

	stored := sessions.sessions[result.SessionID]
	require.NotNil(t, stored)
	assert.Equal(t, models.SessionConfirmed, stored.Status)
	assert.Equal(t, []string{"learner", "mentor"}, stored.Participants)
	assert.Equal(t, "event-1", stored.OrganizerEventID)
	assert.Equal(t, "event-2", stored.ParticipantEventID)
}

func TestBookTwoWaySessionParticipantFailureRollsBack(t *testing.T) {
	cal := &fakeCalendar{failOnCreate: 2}
	svc, sessions := newService(cal)

	_, err := svc.BookTwoWaySession(context.Background(), "learner", validRequest())
	require.Error(t, err)
	assert.Equal(t, utils.KindPartialBooking, utils.Kind(err))

	// Organizer event was rolled back and no session record survives.
	assert.Equal(t, []string{"event-1"}, cal.deleted)
	assert.Empty(t, sessions.sessions)
}

func TestBookTwoWaySessionRollbackFailureIsExternal(t *testing.T) {
	cal := &fakeCalendar{failOnCreate: 2, failDelete: true}
	svc, sessions := newService(cal)

	_, err := svc.BookTwoWaySession(context.Background(), "learner", validRequest())
	require.Error(t, err)
	assert.Equal(t, utils.KindExternalService, utils.Kind(err))
	assert.Empty(t, sessions.sessions)
}

func TestBookTwoWaySessionValidation(t *testing.T) {
	svc, _ := newService(&fakeCalendar{})

	missing := validRequest()
	missing.ParticipantAccessToken = ""
	_, err := svc.BookTwoWaySession(context.Background(), "learner", missing)
	assert.Equal(t, utils.KindInvalidInput, utils.Kind(err))

	badTime := validRequest()
	badTime.StartTime = "tomorrow at noon"
	_, err = svc.BookTwoWaySession(context.Background(), "learner", badTime)
	assert.Equal(t, utils.KindInvalidInput, utils.Kind(err))

	inverted := validRequest()
	inverted.StartTime, inverted.EndTime = inverted.EndTime, inverted.StartTime
	_, err = svc.BookTwoWaySession(context.Background(), "learner", inverted)
	assert.Equal(t, utils.KindInvalidInput, utils.Kind(err))

	badType := validRequest()
	badType.SessionType = "mentoring"
	_, err = svc.BookTwoWaySession(context.Background(), "learner", badType)
	assert.Equal(t, utils.KindInvalidInput, utils.Kind(err))
}

func TestBookTwoWaySessionUnknownParticipant(t *testing.T) {
	svc, _ := newService(&fakeCalendar{})

	req := validRequest()
	req.ParticipantUID = "ghost"
	_, err := svc.BookTwoWaySession(context.Background(), "learner", req)
	assert.Equal(t, utils.KindNotFound, utils.Kind(err))
}

func TestCancelSession(t *testing.T) {
	cal := &fakeCalendar{}
	svc, sessions := newService(cal)

	result, err := svc.BookTwoWaySession(context.Background(), "learner", validRequest())
	require.NoError(t, err)

	err = svc.CancelSession(context.Background(), "stranger", result.SessionID)
	assert.Equal(t, utils.KindUnauthorized, utils.Kind(err))

	require.NoError(t, svc.CancelSession(context.Background(), "mentor", result.SessionID))
	assert.Equal(t, models.SessionCancelled, sessions.sessions[result.SessionID].Status)

	err = svc.CancelSession(context.Background(), "mentor", result.SessionID)
	assert.Equal(t, utils.KindConflict, utils.Kind(err))
}
