package rating

import (
	"context"
	"fmt"
	"math"
	"time"

	ratingRepo "skillswap/database/repository/rating"
	sessionRepo "skillswap/database/repository/session"
	userRepo "skillswap/database/repository/user"
	"skillswap/models"
	"skillswap/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RatingService handles post-session mentor ratings and the mentor's derived
// reputation aggregates.
type RatingService interface {
	RateSession(ctx context.Context, raterUID string, req models.RateSessionRequest) (*models.RatingResult, error)
}

// DefaultRatingService implements RatingService.
type DefaultRatingService struct {
	SessionRepo sessionRepo.SessionRepository
	RatingRepo  ratingRepo.RatingRepository
	UserRepo    userRepo.UserRepository
}

// RateSession records a 1-5 rating of a mentor for a finished session and
// folds it into the mentor's running badge score. Ratings are immutable: a
// second submission for the same (session, mentor) pair is rejected with no
// effect on the mentor's aggregates.
func (s *DefaultRatingService) RateSession(ctx context.Context, raterUID string, req models.RateSessionRequest) (*models.RatingResult, error) {
	logger := utils.GetLogger()

	if req.SessionID == "" || req.MentorUID == "" {
		return nil, utils.NewInvalidInput("sessionId and mentorUid are required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, utils.NewInvalidInput("rating must be an integer between 1 and 5")
	}

	session, err := s.SessionRepo.GetByID(req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return nil, utils.NewNotFound("session does not exist")
	}
	if !session.HasParticipant(req.MentorUID) {
		return nil, utils.NewUnauthorized("mentor is not a participant in this session")
	}
	if !session.HasParticipant(raterUID) {
		return nil, utils.NewUnauthorized("only session participants may rate")
	}
	if raterUID == req.MentorUID {
		return nil, utils.NewUnauthorized("you cannot rate yourself")
	}
	if session.Status == models.SessionCancelled {
		return nil, utils.NewConflict("cancelled sessions cannot be rated")
	}

	existing, err := s.RatingRepo.FindBySession(req.SessionID, req.MentorUID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing rating: %w", err)
	}
	if existing != nil {
		return nil, utils.NewConflict("this session has already been rated")
	}

	mentor, err := s.UserRepo.GetByUID(req.MentorUID)
	if err != nil {
		return nil, fmt.Errorf("failed to load mentor: %w", err)
	}
	if mentor == nil {
		return nil, utils.NewNotFound("mentor profile does not exist")
	}

	newCount := mentor.BadgeCount + 1
	newTotalPoints := mentor.TotalBadgePoints + req.Rating
	newScore := math.Round(((mentor.BadgeScore*float64(mentor.BadgeCount))+float64(req.Rating))/float64(newCount)*100) / 100

	record := &models.SessionRating{
		ID:        uuid.New().String(),
		SessionID: req.SessionID,
		MentorUID: req.MentorUID,
		RaterUID:  raterUID,
		Rating:    req.Rating,
		CreatedAt: time.Now(),
	}

	if err := s.RatingRepo.RecordRating(ctx, record, newScore, newCount, newTotalPoints); err != nil {
		return nil, err
	}

	// First rating marks the session done.
	if session.Status == models.SessionConfirmed {
		if err := s.SessionRepo.UpdateStatus(req.SessionID, models.SessionCompleted); err != nil {
			logger.Warn("failed to mark session completed after rating",
				zap.String("sessionId", req.SessionID), zap.Error(err))
		}
	}

	logger.Info("session rated",
		zap.String("sessionId", req.SessionID),
		zap.String("mentor", req.MentorUID),
		zap.Int("rating", req.Rating),
		zap.Float64("newBadgeScore", newScore))

	return &models.RatingResult{
		RatingID:            record.ID,
		MentorNewBadgeScore: newScore,
		MentorTotalRatings:  newCount,
		RatingGiven:         req.Rating,
	}, nil
}
