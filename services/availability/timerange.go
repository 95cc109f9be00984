package availability

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"skillswap/models"
	"skillswap/utils"
)

// TimeRange is a half-open [Start, End) interval in minutes from midnight.
type TimeRange struct {
	Start int
	End   int
}

var rangePattern = regexp.MustCompile(`^(\d{2}):(\d{2})-(\d{2}):(\d{2})$`)

// ParseRange parses "HH:MM-HH:MM" into a TimeRange. Both components must be
// valid 24-hour times and start must precede end.
func ParseRange(s string) (TimeRange, error) {
	m := rangePattern.FindStringSubmatch(s)
	if m == nil {
		return TimeRange{}, utils.NewInvalidInput(fmt.Sprintf("invalid time range format %q, expected HH:MM-HH:MM", s))
	}

	startHour, _ := strconv.Atoi(m[1])
	startMin, _ := strconv.Atoi(m[2])
	endHour, _ := strconv.Atoi(m[3])
	endMin, _ := strconv.Atoi(m[4])

	if startHour > 23 || endHour > 23 || startMin > 59 || endMin > 59 {
		return TimeRange{}, utils.NewInvalidInput(fmt.Sprintf("invalid time range %q: out-of-range clock values", s))
	}

	tr := TimeRange{Start: startHour*60 + startMin, End: endHour*60 + endMin}
	if tr.Start >= tr.End {
		return TimeRange{}, utils.NewInvalidInput(fmt.Sprintf("invalid time range %q: start must precede end", s))
	}
	return tr, nil
}

// String renders the range back into "HH:MM-HH:MM".
func (tr TimeRange) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", tr.Start/60, tr.Start%60, tr.End/60, tr.End%60)
}

// Overlaps reports whether two ranges share any time. Touching endpoints do
// not overlap.
func Overlaps(a, b TimeRange) bool {
	return a.Start < b.End && b.Start < a.End
}

// PairwiseDisjoint reports whether no two ranges in the set overlap.
func PairwiseDisjoint(ranges []TimeRange) bool {
	for i := 0; i < len(ranges); i++ {
		for j := i + 1; j < len(ranges); j++ {
			if Overlaps(ranges[i], ranges[j]) {
				return false
			}
		}
	}
	return true
}

// ParseRanges parses a list of "HH:MM-HH:MM" strings, rejecting the whole set
// on the first malformed entry.
func ParseRanges(raw []string) ([]TimeRange, error) {
	ranges := make([]TimeRange, 0, len(raw))
	for _, s := range raw {
		tr, err := ParseRange(s)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, tr)
	}
	return ranges, nil
}

// AnyRangeOverlap reports whether any declared range in a overlaps any in b.
// Unparseable entries are skipped; profiles are validated on write, but old
// documents may still carry junk.
func AnyRangeOverlap(a, b []string) bool {
	for _, ra := range a {
		tra, err := ParseRange(ra)
		if err != nil {
			continue
		}
		for _, rb := range b {
			trb, err := ParseRange(rb)
			if err != nil {
				continue
			}
			if Overlaps(tra, trb) {
				return true
			}
		}
	}
	return false
}

// ValidateDeclared checks a manually declared availability: days must be
// known 3-letter abbreviations, times must parse, and the declared ranges
// must be pairwise disjoint. Overlapping ranges are rejected outright rather
// than merged.
func ValidateDeclared(a models.Availability) error {
	for _, day := range a.Days {
		if !isValidDay(day) {
			return utils.NewInvalidInput(fmt.Sprintf("invalid day %q, expected one of %s", day, strings.Join(models.ValidDays, ", ")))
		}
	}
	ranges, err := ParseRanges(a.Times)
	if err != nil {
		return err
	}
	if !PairwiseDisjoint(ranges) {
		return utils.NewConflict("declared time ranges overlap")
	}
	return nil
}

func isValidDay(day string) bool {
	for _, d := range models.ValidDays {
		if d == day {
			return true
		}
	}
	return false
}
