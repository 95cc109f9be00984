package matching

import (
	"fmt"
	"testing"

	"skillswap/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func learnerProfile() *models.UserProfile {
	return &models.UserProfile{
		UID:          "learner",
		SkillsWanted: []string{"Excel", "Guitar"},
		Availability: models.Availability{
			Days:  []string{"Mon"},
			Times: []string{"09:00-11:00"},
		},
	}
}

func TestScoreCandidateSkillMatchIsCaseInsensitiveAndBinary(t *testing.T) {
	mentor := &models.UserProfile{
		UID: "mentor",
		// Two matching skills still earn the weight only once.
		SkillsOffered: []string{"excel", "guitar"},
	}

	c := ScoreCandidate(learnerProfile(), mentor)
	assert.Equal(t, SkillMatchWeight, c.SkillMatchPoints)
	assert.Equal(t, 5.0, c.MatchScore)
}

func TestScoreCandidateReputationCountsWithoutSkillMatch(t *testing.T) {
	mentor := &models.UserProfile{
		UID:           "mentor",
		SkillsOffered: []string{"Pottery"},
		BadgeScore:    4.0,
	}

	c := ScoreCandidate(learnerProfile(), mentor)
	assert.Equal(t, 0.0, c.SkillMatchPoints)
	// 4.0 on a 0-5 scale maps to 2.4 of the 3 reputation points.
	assert.Equal(t, 2.4, c.MatchScore)
}

func TestScoreCandidateAvailabilityOverlapDeclared(t *testing.T) {
	mentor := &models.UserProfile{
		UID:           "mentor",
		SkillsOffered: []string{"Excel"},
		Availability: models.Availability{
			Days:  []string{"Mon", "Fri"},
			Times: []string{"10:00-12:00"},
		},
	}

	c := ScoreCandidate(learnerProfile(), mentor)
	assert.Equal(t, AvailabilityWeight, c.AvailabilityPoints)
	assert.Equal(t, 7.0, c.MatchScore)
}

func TestScoreCandidateNoCommonDayNoAvailabilityPoints(t *testing.T) {
	mentor := &models.UserProfile{
		UID:           "mentor",
		SkillsOffered: []string{"Excel"},
		Availability: models.Availability{
			Days:  []string{"Fri"},
			Times: []string{"09:00-11:00"},
		},
	}

	c := ScoreCandidate(learnerProfile(), mentor)
	assert.Equal(t, 0.0, c.AvailabilityPoints)
	assert.Equal(t, 5.0, c.MatchScore)
}

func TestScoreCandidateSyncedCalendarsUseSlotIntersection(t *testing.T) {
	learner := learnerProfile()
	learner.CalendarSynced = true
	learner.AvailableSlots = []string{"Mon, 16/06/2025, 09:00 am"}

	mentor := &models.UserProfile{
		UID:            "mentor",
		SkillsOffered:  []string{"Excel"},
		CalendarSynced: true,
		AvailableSlots: []string{"Mon, 16/06/2025, 09:00 am", "Mon, 16/06/2025, 09:30 am"},
	}
	c := ScoreCandidate(learner, mentor)
	assert.Equal(t, AvailabilityWeight, c.AvailabilityPoints)

	mentor.AvailableSlots = []string{"Tue, 17/06/2025, 09:00 am"}
	c = ScoreCandidate(learner, mentor)
	assert.Equal(t, 0.0, c.AvailabilityPoints)
}

func TestRankCandidatesFiltersAndSorts(t *testing.T) {
	learner := learnerProfile()
	pool := []models.UserProfile{
		*learner, // self, excluded
		{UID: "denied", SkillsOffered: []string{"Excel"}},
		{UID: "no-skills"},
		{UID: "zero-score", SkillsOffered: []string{"Pottery"}},
		{UID: "low", SkillsOffered: []string{"Pottery"}, BadgeScore: 2.0},
		{UID: "high", SkillsOffered: []string{"Excel"}, BadgeScore: 5.0},
	}

	out := RankCandidates(learner, pool, map[string]bool{"denied": true}, 10)
	require.Len(t, out, 2)
	assert.Equal(t, "high", out[0].UID)
	assert.Equal(t, "low", out[1].UID)
}

func TestRankCandidatesCapAndStableTies(t *testing.T) {
	learner := learnerProfile()
	var pool []models.UserProfile
	for i := 0; i < 5; i++ {
		pool = append(pool, models.UserProfile{
			UID:           fmt.Sprintf("mentor-%d", i),
			SkillsOffered: []string{"Excel"},
		})
	}

	out := RankCandidates(learner, pool, nil, 3)
	require.Len(t, out, 3)
	// Equal scores keep enumeration order.
	assert.Equal(t, "mentor-0", out[0].UID)
	assert.Equal(t, "mentor-1", out[1].UID)
	assert.Equal(t, "mentor-2", out[2].UID)
}

func TestScoreCandidateRoundsToOneDecimal(t *testing.T) {
	mentor := &models.UserProfile{
		UID:           "mentor",
		SkillsOffered: []string{"Pottery"},
		BadgeScore:    4.33,
	}
	c := ScoreCandidate(learnerProfile(), mentor)
	// 4.33 * 0.6 = 2.598, rounded to 2.6.
	assert.Equal(t, 2.6, c.MatchScore)
}
