package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"skillswap/models"
	"skillswap/services/availability"
	"skillswap/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeUserRepo struct {
	users   map[string]*models.UserProfile
	updates []bson.M
}

func (f *fakeUserRepo) GetByUID(uid string) (*models.UserProfile, error) {
	u, ok := f.users[uid]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}
func (f *fakeUserRepo) GetAll() ([]models.UserProfile, error) {
	var out []models.UserProfile
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}
func (f *fakeUserRepo) Create(u *models.UserProfile) error { f.users[u.UID] = u; return nil }
func (f *fakeUserRepo) Update(u *models.UserProfile) error { f.users[u.UID] = u; return nil }
func (f *fakeUserRepo) UpdateFields(uid string, fields bson.M) error {
	f.updates = append(f.updates, fields)
	u := f.users[uid]
	if name, ok := fields["name"].(string); ok {
		u.Name = name
	}
	if skills, ok := fields["skillsOffered"].([]string); ok {
		u.SkillsOffered = skills
	}
	if avail, ok := fields["availability"].(models.Availability); ok {
		u.Availability = avail
	}
	if synced, ok := fields["calendarSynced"].(bool); ok {
		u.CalendarSynced = synced
	}
	if slots, ok := fields["availableSlots"].([]string); ok {
		u.AvailableSlots = slots
	}
	return nil
}
func (f *fakeUserRepo) Delete(uid string) error { delete(f.users, uid); return nil }

type fakeSessionRepo struct {
	deletedFor []string
}

func (f *fakeSessionRepo) Create(s *models.Session) (string, error)   { return "", nil }
func (f *fakeSessionRepo) GetByID(id string) (*models.Session, error) { return nil, nil }
func (f *fakeSessionRepo) ListByParticipant(uid, status string) ([]models.Session, error) {
	return nil, nil
}
func (f *fakeSessionRepo) UpdateStatus(id, status string) error { return nil }
func (f *fakeSessionRepo) DeleteByParticipant(uid string) error {
	f.deletedFor = append(f.deletedFor, uid)
	return nil
}

type fakeRatingRepo struct{ deletedFor []string }

func (f *fakeRatingRepo) FindBySession(sessionID, mentorUID string) (*models.SessionRating, error) {
	return nil, nil
}
func (f *fakeRatingRepo) RecordRating(ctx context.Context, r *models.SessionRating, newScore float64, newCount, newTotalPoints int) error {
	return nil
}
func (f *fakeRatingRepo) DeleteByUser(uid string) error {
	f.deletedFor = append(f.deletedFor, uid)
	return nil
}

type fakeDenialRepo struct{ deletedFor []string }

func (f *fakeDenialRepo) Add(learnerUID, mentorUID, reason string) error { return nil }
func (f *fakeDenialRepo) ListDenied(learnerUID string) ([]string, error) { return nil, nil }
func (f *fakeDenialRepo) DeleteByUser(uid string) error {
	f.deletedFor = append(f.deletedFor, uid)
	return nil
}

type fakeSkillRepo struct{ counts map[string]int }

func (f *fakeSkillRepo) Increment(name string, delta int) error {
	f.counts[name] += delta
	return nil
}
func (f *fakeSkillRepo) TopSkills(limit int) ([]models.SkillPopularity, error) { return nil, nil }

type fakeCalendarProvider struct {
	busy []models.BusyInterval
	err  error
}

func (f *fakeCalendarProvider) QueryBusy(ctx context.Context, token string, days int) ([]models.BusyInterval, error) {
	return f.busy, f.err
}
func (f *fakeCalendarProvider) CreateEvent(ctx context.Context, token string, spec models.EventSpec) (*models.EventRef, error) {
	return nil, nil
}
func (f *fakeCalendarProvider) DeleteEvent(ctx context.Context, token, eventID string) error {
	return nil
}

type fakeInvalidator struct{ invalidated []string }

func (f *fakeInvalidator) InvalidateCache(uid string) { f.invalidated = append(f.invalidated, uid) }

func fixture() (*DefaultProfileService, *fakeUserRepo, *fakeSkillRepo, *fakeInvalidator) {
	users := &fakeUserRepo{users: map[string]*models.UserProfile{}}
	u := &models.UserProfile{UID: "u1", Name: "Asha", Email: "asha@example.com"}
	u.Normalize()
	users.users["u1"] = u

	skills := &fakeSkillRepo{counts: map[string]int{}}
	inval := &fakeInvalidator{}

	reconciler := availability.NewReconciler(time.UTC, 9, 20)
	reconciler.Now = func() time.Time {
		return time.Date(2025, 6, 11, 8, 0, 0, 0, time.UTC)
	}

	svc := &DefaultProfileService{
		UserRepo:    users,
		SessionRepo: &fakeSessionRepo{},
		RatingRepo:  &fakeRatingRepo{},
		DenialRepo:  &fakeDenialRepo{},
		SkillRepo:   skills,
		Calendar:    &fakeCalendarProvider{},
		Reconciler:  reconciler,
		MatchCache:  inval,
	}
	return svc, users, skills, inval
}

func TestEnsureProfileCreatesOnce(t *testing.T) {
	svc, users, _, _ := fixture()

	created, err := svc.EnsureProfile("u2", "Ben", "ben@example.com")
	require.NoError(t, err)
	assert.Equal(t, "student", created.Role)
	assert.NotNil(t, created.SkillsOffered)

	again, err := svc.EnsureProfile("u2", "Different Name", "other@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ben", again.Name)
	assert.Len(t, users.users, 2)
}

func TestUpdateProfileRejectsBadAvailability(t *testing.T) {
	svc, users, _, _ := fixture()

	_, err := svc.UpdateProfile("u1", models.UpdateProfileRequest{
		Availability: &models.Availability{Days: []string{"Funday"}},
	})
	require.Error(t, err)
	assert.Equal(t, utils.KindInvalidInput, utils.Kind(err))
	// Nothing was written.
	assert.Empty(t, users.updates)

	_, err = svc.UpdateProfile("u1", models.UpdateProfileRequest{
		Availability: &models.Availability{Times: []string{"09:00-11:00", "10:00-12:00"}},
	})
	assert.Equal(t, utils.KindConflict, utils.Kind(err))
}

func TestUpdateProfileEmptyRequest(t *testing.T) {
	svc, _, _, _ := fixture()

	_, err := svc.UpdateProfile("u1", models.UpdateProfileRequest{})
	assert.Equal(t, utils.KindInvalidInput, utils.Kind(err))
}

func TestUpdateProfileAdjustsSkillCountersAndCache(t *testing.T) {
	svc, users, skills, inval := fixture()
	users.users["u1"].SkillsOffered = []string{"Excel", "Guitar"}

	offered := []string{"Excel", "Pottery"}
	_, err := svc.UpdateProfile("u1", models.UpdateProfileRequest{SkillsOffered: &offered})
	require.NoError(t, err)

	assert.Equal(t, 1, skills.counts["pottery"])
	assert.Equal(t, -1, skills.counts["guitar"])
	assert.Equal(t, 0, skills.counts["excel"])
	assert.Contains(t, inval.invalidated, "u1")
}

func TestDeleteProfileCascades(t *testing.T) {
	svc, users, skills, _ := fixture()
	users.users["u1"].SkillsOffered = []string{"Excel"}

	require.NoError(t, svc.DeleteProfile("u1"))
	assert.NotContains(t, users.users, "u1")
	assert.Equal(t, -1, skills.counts["excel"])
	assert.Equal(t, []string{"u1"}, svc.SessionRepo.(*fakeSessionRepo).deletedFor)
	assert.Equal(t, []string{"u1"}, svc.RatingRepo.(*fakeRatingRepo).deletedFor)
	assert.Equal(t, []string{"u1"}, svc.DenialRepo.(*fakeDenialRepo).deletedFor)
}

func TestSyncCalendarFailureLeavesProfileUntouched(t *testing.T) {
	svc, users, _, _ := fixture()
	svc.Calendar = &fakeCalendarProvider{err: utils.NewExternalFailure("freebusy query failed", errors.New("boom"))}
	users.users["u1"].CalendarAccessToken = "token"
	users.users["u1"].AvailableSlots = []string{"Mon, 16/06/2025, 09:00 am"}

	_, err := svc.SyncCalendar(context.Background(), "u1", "")
	require.Error(t, err)
	assert.Equal(t, utils.KindExternalService, utils.Kind(err))

	// Stale slots survive a failed sync.
	assert.Equal(t, []string{"Mon, 16/06/2025, 09:00 am"}, users.users["u1"].AvailableSlots)
	assert.False(t, users.users["u1"].CalendarSynced)
}

func TestSyncCalendarRequiresToken(t *testing.T) {
	svc, _, _, _ := fixture()

	_, err := svc.SyncCalendar(context.Background(), "u1", "")
	assert.Equal(t, utils.KindInvalidInput, utils.Kind(err))
}

func TestSyncCalendarGeneratesSlots(t *testing.T) {
	svc, users, _, inval := fixture()
	users.users["u1"].Availability = models.Availability{
		Days:  []string{"Mon"},
		Times: []string{"09:00-10:00"},
	}

	result, err := svc.SyncCalendar(context.Background(), "u1", "fresh-token")
	require.NoError(t, err)
	assert.Equal(t, 2, result.SlotsGenerated)
	assert.Equal(t, []string{"Mon, 16/06/2025, 09:00 am", "Mon, 16/06/2025, 09:30 am"}, result.AvailableSlots)
	assert.True(t, users.users["u1"].CalendarSynced)
	assert.Contains(t, inval.invalidated, "u1")
}

func TestGetStats(t *testing.T) {
	svc, users, _, _ := fixture()
	users.users["u1"].SkillsOffered = []string{"Excel"}
	m := &models.UserProfile{UID: "u2", Role: "mentor", SkillsOffered: []string{"excel", "Guitar"}}
	users.users["u2"] = m

	stats, err := svc.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalUsers)
	assert.Equal(t, 1, stats.UsersByRole["mentor"])
	assert.Equal(t, 2, stats.TotalUniqueSkills)
}
