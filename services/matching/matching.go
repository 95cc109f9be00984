package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	denialRepo "skillswap/database/repository/denial"
	userRepo "skillswap/database/repository/user"
	"skillswap/models"
	"skillswap/services/availability"
	"skillswap/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Scoring constants.
const (
	// SkillMatchWeight is granted once when any wanted skill matches any
	// offered skill, regardless of how many match.
	SkillMatchWeight = 5.0
	// AvailabilityWeight is granted when the two users' schedules overlap.
	AvailabilityWeight = 2.0
	// ReputationScale maps a 0-5 badge score onto a 0-3 point contribution.
	// Applied unconditionally, so a well-rated mentor scores above zero even
	// without a skill match.
	ReputationScale = 3.0 / 5.0
)

// MatchingService defines methods for ranking mentors against a learner.
type MatchingService interface {
	FindMatches(uid string, limit int) ([]models.MatchCandidate, error)
	DenyMentor(learnerUID, mentorUID string) error
	GetMentorProfile(mentorUID string) (*models.PublicProfile, error)
	InvalidateCache(uid string)
}

// DefaultMatchingService implements MatchingService.
type DefaultMatchingService struct {
	UserRepo     userRepo.UserRepository
	DenialRepo   denialRepo.DenialRepository
	CacheClient  *redis.Client
	CacheTTL     time.Duration
	DefaultLimit int
}

// FindMatches retrieves a ranked, capped list of mentors for the given
// learner. Results are cached briefly; a cache miss triggers a full candidate
// scan and score computation.
func (s *DefaultMatchingService) FindMatches(uid string, limit int) ([]models.MatchCandidate, error) {
	logger := utils.GetLogger()
	if limit <= 0 {
		limit = s.DefaultLimit
	}

	ctx := context.Background()
	cacheKey := fmt.Sprintf("match:%s:%d", uid, limit)

	if s.CacheClient != nil {
		cached, err := s.CacheClient.Get(ctx, cacheKey).Result()
		if err == nil && cached != "" {
			var candidates []models.MatchCandidate
			if err := json.Unmarshal([]byte(cached), &candidates); err == nil {
				return candidates, nil
			}
			// Corrupt cache entries fall through to recomputation.
		}
	}

	learner, err := s.UserRepo.GetByUID(uid)
	if err != nil {
		return nil, fmt.Errorf("failed to load learner profile: %w", err)
	}
	if learner == nil {
		return nil, utils.NewNotFound("user not found")
	}

	denied, err := s.DenialRepo.ListDenied(uid)
	if err != nil {
		return nil, fmt.Errorf("failed to load denials: %w", err)
	}
	deniedSet := make(map[string]bool, len(denied))
	for _, d := range denied {
		deniedSet[d] = true
	}

	pool, err := s.UserRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate candidates: %w", err)
	}

	candidates := RankCandidates(learner, pool, deniedSet, limit)

	logger.Info("computed matches",
		zap.String("uid", uid),
		zap.Int("candidates", len(candidates)))

	if s.CacheClient != nil {
		if payload, err := json.Marshal(candidates); err == nil {
			s.CacheClient.Set(ctx, cacheKey, payload, s.CacheTTL)
		}
	}

	return candidates, nil
}

// RankCandidates scores the pool against the learner and returns the top
// nonzero-scored mentors. Exported separately from the service so it can run
// against any candidate source.
func RankCandidates(learner *models.UserProfile, pool []models.UserProfile, denied map[string]bool, limit int) []models.MatchCandidate {
	candidates := []models.MatchCandidate{}

	for i := range pool {
		mentor := &pool[i]
		if mentor.UID == learner.UID || denied[mentor.UID] {
			continue
		}
		if len(mentor.SkillsOffered) == 0 {
			continue
		}

		c := ScoreCandidate(learner, mentor)
		if c.MatchScore > 0 {
			candidates = append(candidates, c)
		}
	}

	// Stable: ties keep enumeration order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].MatchScore > candidates[j].MatchScore
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// ScoreCandidate computes the weighted compatibility score of one mentor.
func ScoreCandidate(learner *models.UserProfile, mentor *models.UserProfile) models.MatchCandidate {
	var total, skillPoints, availPoints float64

	if anySkillMatch(learner.SkillsWanted, mentor.SkillsOffered) {
		skillPoints = SkillMatchWeight
		total += skillPoints
	}

	total += mentor.BadgeScore * ReputationScale

	if schedulesOverlap(learner, mentor) {
		availPoints = AvailabilityWeight
		total += availPoints
	}

	return models.MatchCandidate{
		UID:                mentor.UID,
		Name:               mentor.Name,
		AvatarURL:          mentor.AvatarURL,
		SkillsOffered:      mentor.SkillsOffered,
		BadgeScore:         mentor.BadgeScore,
		Availability:       mentor.Availability,
		AvailableSlots:     mentor.AvailableSlots,
		CalendarSynced:     mentor.CalendarSynced,
		MatchScore:         math.Round(total*10) / 10,
		SkillMatchPoints:   skillPoints,
		AvailabilityPoints: availPoints,
	}
}

// anySkillMatch reports whether any wanted skill case-insensitively equals
// any offered skill.
func anySkillMatch(wanted, offered []string) bool {
	for _, w := range wanted {
		for _, o := range offered {
			if strings.EqualFold(w, o) {
				return true
			}
		}
	}
	return false
}

// schedulesOverlap checks availability compatibility. With both calendars
// synced it is a literal intersection of the precomputed slot labels;
// otherwise it falls back to the declared day/time preferences.
func schedulesOverlap(learner, mentor *models.UserProfile) bool {
	if learner.CalendarSynced && mentor.CalendarSynced {
		mentorSlots := make(map[string]bool, len(mentor.AvailableSlots))
		for _, slot := range mentor.AvailableSlots {
			mentorSlots[slot] = true
		}
		for _, slot := range learner.AvailableSlots {
			if mentorSlots[slot] {
				return true
			}
		}
		return false
	}

	commonDay := false
	for _, ld := range learner.Availability.Days {
		for _, md := range mentor.Availability.Days {
			if ld == md {
				commonDay = true
				break
			}
		}
	}
	if !commonDay {
		return false
	}
	return availability.AnyRangeOverlap(learner.Availability.Times, mentor.Availability.Times)
}

// DenyMentor records a learner's rejection of a mentor; the mentor is excluded
// from all of that learner's future match results.
func (s *DefaultMatchingService) DenyMentor(learnerUID, mentorUID string) error {
	mentor, err := s.UserRepo.GetByUID(mentorUID)
	if err != nil {
		return fmt.Errorf("failed to load mentor: %w", err)
	}
	if mentor == nil {
		return utils.NewNotFound("mentor not found")
	}

	if err := s.DenialRepo.Add(learnerUID, mentorUID, "user_rejection"); err != nil {
		return fmt.Errorf("failed to store denial: %w", err)
	}

	s.InvalidateCache(learnerUID)
	utils.GetLogger().Info("stored denial",
		zap.String("learner", learnerUID),
		zap.String("mentor", mentorUID))
	return nil
}

// GetMentorProfile retrieves a mentor's public profile.
func (s *DefaultMatchingService) GetMentorProfile(mentorUID string) (*models.PublicProfile, error) {
	mentor, err := s.UserRepo.GetByUID(mentorUID)
	if err != nil {
		return nil, fmt.Errorf("failed to load mentor: %w", err)
	}
	if mentor == nil {
		return nil, utils.NewNotFound("mentor not found")
	}
	pub := mentor.Public()
	return &pub, nil
}

// InvalidateCache drops all cached match lists for a user. Called whenever a
// profile or denial changes.
func (s *DefaultMatchingService) InvalidateCache(uid string) {
	if s.CacheClient == nil {
		return
	}
	ctx := context.Background()
	iter := s.CacheClient.Scan(ctx, 0, fmt.Sprintf("match:%s:*", uid), 0).Iterator()
	for iter.Next(ctx) {
		s.CacheClient.Del(ctx, iter.Val())
	}
}
