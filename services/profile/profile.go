package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	denialRepo "skillswap/database/repository/denial"
	ratingRepo "skillswap/database/repository/rating"
	sessionRepo "skillswap/database/repository/session"
	skillRepo "skillswap/database/repository/skill"
	userRepo "skillswap/database/repository/user"
	"skillswap/models"
	"skillswap/services/availability"
	"skillswap/services/calendar"
	"skillswap/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// topSkillsLimit caps the popular-skills list in the admin stats snapshot.
const topSkillsLimit = 10

// MatchCacheInvalidator drops cached match results after a profile change.
type MatchCacheInvalidator interface {
	InvalidateCache(uid string)
}

// ProfileService manages user profiles, their calendar sync state and the
// admin analytics derived from them.
type ProfileService interface {
	EnsureProfile(uid, name, email string) (*models.UserProfile, error)
	GetProfile(uid string) (*models.UserProfile, error)
	GetPublicProfile(uid string) (*models.PublicProfile, error)
	UpdateProfile(uid string, req models.UpdateProfileRequest) (*models.UserProfile, error)
	DeleteProfile(uid string) error
	StoreCalendarToken(uid, accessToken string) error
	SyncCalendar(ctx context.Context, uid, accessToken string) (*models.SyncCalendarResult, error)
	GetStats() (*models.PlatformStats, error)
}

// DefaultProfileService implements ProfileService.
type DefaultProfileService struct {
	UserRepo    userRepo.UserRepository
	SessionRepo sessionRepo.SessionRepository
	RatingRepo  ratingRepo.RatingRepository
	DenialRepo  denialRepo.DenialRepository
	SkillRepo   skillRepo.SkillRepository
	Calendar    calendar.Provider
	Reconciler  *availability.Reconciler
	MatchCache  MatchCacheInvalidator
}

// EnsureProfile returns the existing profile for uid, creating a fresh one
// from the identity token's claims on first login.
func (s *DefaultProfileService) EnsureProfile(uid, name, email string) (*models.UserProfile, error) {
	existing, err := s.UserRepo.GetByUID(uid)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	now := time.Now()
	user := &models.UserProfile{
		UID:       uid,
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	user.Normalize()

	if err := s.UserRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	utils.GetLogger().Info("created profile", zap.String("uid", uid))
	return user, nil
}

// GetProfile returns the caller's own full profile.
func (s *DefaultProfileService) GetProfile(uid string) (*models.UserProfile, error) {
	user, err := s.UserRepo.GetByUID(uid)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if user == nil {
		return nil, utils.NewNotFound("profile does not exist")
	}
	return user, nil
}

// GetPublicProfile returns the shareable subset of another user's profile.
func (s *DefaultProfileService) GetPublicProfile(uid string) (*models.PublicProfile, error) {
	user, err := s.GetProfile(uid)
	if err != nil {
		return nil, err
	}
	pub := user.Public()
	return &pub, nil
}

// UpdateProfile applies a partial profile update. Declared availability is
// validated before anything is written, offered-skill popularity counters are
// kept in step, and cached match results for the user are invalidated.
func (s *DefaultProfileService) UpdateProfile(uid string, req models.UpdateProfileRequest) (*models.UserProfile, error) {
	if req.IsEmpty() {
		return nil, utils.NewInvalidInput("no fields to update")
	}
	if req.Availability != nil {
		if err := availability.ValidateDeclared(*req.Availability); err != nil {
			return nil, err
		}
	}

	user, err := s.GetProfile(uid)
	if err != nil {
		return nil, err
	}

	fields := bson.M{"updatedAt": time.Now()}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.AvatarURL != nil {
		fields["avatarUrl"] = *req.AvatarURL
	}
	if req.SkillsWanted != nil {
		fields["skillsWanted"] = *req.SkillsWanted
	}
	if req.Availability != nil {
		fields["availability"] = *req.Availability
	}
	if req.FCMToken != nil {
		fields["fcmToken"] = *req.FCMToken
	}
	if req.SkillsOffered != nil {
		fields["skillsOffered"] = *req.SkillsOffered
	}

	if err := s.UserRepo.UpdateFields(uid, fields); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	if req.SkillsOffered != nil {
		s.adjustSkillCounters(user.SkillsOffered, *req.SkillsOffered)
	}
	if s.MatchCache != nil {
		s.MatchCache.InvalidateCache(uid)
	}

	return s.GetProfile(uid)
}

// adjustSkillCounters reconciles the popularity counters with a change in a
// user's offered skills. Counter failures are logged, not surfaced; the
// counters are advisory.
func (s *DefaultProfileService) adjustSkillCounters(before, after []string) {
	if s.SkillRepo == nil {
		return
	}
	old := make(map[string]bool, len(before))
	for _, skill := range before {
		old[strings.ToLower(skill)] = true
	}
	cur := make(map[string]bool, len(after))
	for _, skill := range after {
		cur[strings.ToLower(skill)] = true
	}

	for skill := range cur {
		if !old[skill] {
			if err := s.SkillRepo.Increment(skill, 1); err != nil {
				utils.GetLogger().Warn("failed to bump skill counter", zap.String("skill", skill), zap.Error(err))
			}
		}
	}
	for skill := range old {
		if !cur[skill] {
			if err := s.SkillRepo.Increment(skill, -1); err != nil {
				utils.GetLogger().Warn("failed to drop skill counter", zap.String("skill", skill), zap.Error(err))
			}
		}
	}
}

// DeleteProfile removes a user and everything attached to them: sessions,
// ratings, denials, skill counters and cached matches.
func (s *DefaultProfileService) DeleteProfile(uid string) error {
	user, err := s.GetProfile(uid)
	if err != nil {
		return err
	}

	if err := s.SessionRepo.DeleteByParticipant(uid); err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}
	if err := s.RatingRepo.DeleteByUser(uid); err != nil {
		return fmt.Errorf("failed to delete ratings: %w", err)
	}
	if err := s.DenialRepo.DeleteByUser(uid); err != nil {
		return fmt.Errorf("failed to delete denials: %w", err)
	}
	s.adjustSkillCounters(user.SkillsOffered, nil)

	if err := s.UserRepo.Delete(uid); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if s.MatchCache != nil {
		s.MatchCache.InvalidateCache(uid)
	}

	utils.GetLogger().Info("deleted profile and cascade", zap.String("uid", uid))
	return nil
}

// StoreCalendarToken persists the user's calendar OAuth token for later syncs.
func (s *DefaultProfileService) StoreCalendarToken(uid, accessToken string) error {
	if accessToken == "" {
		return utils.NewInvalidInput("accessToken is required")
	}
	if _, err := s.GetProfile(uid); err != nil {
		return err
	}
	return s.UserRepo.UpdateFields(uid, bson.M{
		"calendarAccessToken": accessToken,
		"updatedAt":           time.Now(),
	})
}

// SyncCalendar pulls the user's busy intervals from their external calendar,
// reconciles them with declared preferences and confirmed sessions, and
// persists the resulting open slots. A failed busy query aborts the sync;
// stale slots are never silently replaced with an empty set.
func (s *DefaultProfileService) SyncCalendar(ctx context.Context, uid, accessToken string) (*models.SyncCalendarResult, error) {
	user, err := s.GetProfile(uid)
	if err != nil {
		return nil, err
	}

	token := accessToken
	if token == "" {
		token = user.CalendarAccessToken
	}
	if token == "" {
		return nil, utils.NewInvalidInput("no calendar access token available, connect a calendar first")
	}

	if err := availability.ValidateDeclared(user.Availability); err != nil {
		return nil, err
	}

	busy, err := s.Calendar.QueryBusy(ctx, token, availability.WindowDays)
	if err != nil {
		return nil, err
	}

	booked, err := s.SessionRepo.ListByParticipant(uid, models.SessionConfirmed)
	if err != nil {
		return nil, fmt.Errorf("failed to load booked sessions: %w", err)
	}

	slots := s.Reconciler.GenerateSlots(user.Availability, busy, booked)

	now := time.Now()
	err = s.UserRepo.UpdateFields(uid, bson.M{
		"calendarSynced":    true,
		"calendarBusyTimes": busy,
		"availableSlots":    slots,
		"calendarLastSync":  now,
		"updatedAt":         now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist sync result: %w", err)
	}

	if s.MatchCache != nil {
		s.MatchCache.InvalidateCache(uid)
	}

	utils.GetLogger().Info("calendar synced",
		zap.String("uid", uid),
		zap.Int("busyIntervals", len(busy)),
		zap.Int("slots", len(slots)))

	return &models.SyncCalendarResult{
		AvailableSlots:   slots,
		BusyTimesCount:   len(busy),
		UserAvailability: user.Availability,
		SlotsGenerated:   len(slots),
	}, nil
}

// GetStats builds the admin analytics snapshot.
func (s *DefaultProfileService) GetStats() (*models.PlatformStats, error) {
	users, err := s.UserRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate users: %w", err)
	}

	byRole := map[string]int{}
	unique := map[string]bool{}
	for i := range users {
		byRole[users[i].Role]++
		for _, skill := range users[i].SkillsOffered {
			unique[strings.ToLower(skill)] = true
		}
	}

	var popular []models.SkillPopularity
	if s.SkillRepo != nil {
		popular, err = s.SkillRepo.TopSkills(topSkillsLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to load popular skills: %w", err)
		}
	}

	return &models.PlatformStats{
		TotalUsers:        len(users),
		UsersByRole:       byRole,
		PopularSkills:     popular,
		TotalUniqueSkills: len(unique),
	}, nil
}
