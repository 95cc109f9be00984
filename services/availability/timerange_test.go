package availability

import (
	"testing"

	"skillswap/models"
	"skillswap/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRangeRoundTrip(t *testing.T) {
	tr, err := ParseRange("09:00-17:30")
	require.NoError(t, err)
	assert.Equal(t, 9*60, tr.Start)
	assert.Equal(t, 17*60+30, tr.End)
	assert.Equal(t, "09:00-17:30", tr.String())
}

func TestParseRangeRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"9:00-10:00",
		"09:00",
		"09:00 - 10:00",
		"25:00-26:00",
		"09:61-10:00",
		"10:00-09:00",
		"09:00-09:00",
	}
	for _, c := range cases {
		_, err := ParseRange(c)
		require.Error(t, err, "expected %q to be rejected", c)
		assert.Equal(t, utils.KindInvalidInput, utils.Kind(err))
	}
}

func TestOverlapsHalfOpen(t *testing.T) {
	a, err := ParseRange("09:00-10:00")
	require.NoError(t, err)
	b, err := ParseRange("10:00-11:00")
	require.NoError(t, err)
	// Touching endpoints do not overlap.
	assert.False(t, Overlaps(a, b))
	assert.False(t, Overlaps(b, a))

	c, err := ParseRange("09:00-10:30")
	require.NoError(t, err)
	assert.True(t, Overlaps(c, b))
	assert.True(t, Overlaps(b, c))
}

func TestPairwiseDisjoint(t *testing.T) {
	ranges, err := ParseRanges([]string{"09:00-10:00", "10:00-11:00", "14:00-15:00"})
	require.NoError(t, err)
	assert.True(t, PairwiseDisjoint(ranges))

	ranges, err = ParseRanges([]string{"09:00-10:30", "10:00-11:00"})
	require.NoError(t, err)
	assert.False(t, PairwiseDisjoint(ranges))
}

func TestAnyRangeOverlapSkipsJunk(t *testing.T) {
	assert.True(t, AnyRangeOverlap([]string{"garbage", "09:00-10:30"}, []string{"10:00-11:00"}))
	assert.False(t, AnyRangeOverlap([]string{"garbage"}, []string{"10:00-11:00"}))
}

func TestValidateDeclared(t *testing.T) {
	err := ValidateDeclared(models.Availability{
		Days:  []string{"Mon", "Wed"},
		Times: []string{"09:00-10:00", "14:00-16:00"},
	})
	assert.NoError(t, err)

	err = ValidateDeclared(models.Availability{Days: []string{"Monday"}})
	require.Error(t, err)
	assert.Equal(t, utils.KindInvalidInput, utils.Kind(err))

	err = ValidateDeclared(models.Availability{Times: []string{"09:00-11:00", "10:00-12:00"}})
	require.Error(t, err)
	assert.Equal(t, utils.KindConflict, utils.Kind(err))
}
