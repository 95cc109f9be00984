package handlers

import (
	userRepoPkg "skillswap/database/repository/user"
	"skillswap/services/booking"
	"skillswap/services/matching"
	"skillswap/services/profile"
	"skillswap/services/rating"
)

// HandlerBundle groups the endpoint handlers and their service dependencies.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	ProfileSvc  profile.ProfileService
	MatchingSvc matching.MatchingService
	BookingSvc  booking.BookingService
	RatingSvc   rating.RatingService
}
