package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchBest_PicksSingleBestUnderQuota(t *testing.T) {
	candidates := []CandidateSegment{
		newCandidateSegment(0, 2, 2), // len 3, cto 2
		newCandidateSegment(0, 4, 3), // len 5, cto 3, better if quota allows
	}
	result := searchBest(candidates, 3, 0)
	assert.Equal(t, 5, result.totalDaysOff)
	assert.Equal(t, 3, result.quotaSpent)
	assert.Len(t, result.segments, 1)
	assert.Equal(t, 4, result.segments[0].EndIdx)
}

func TestSearchBest_RespectsQuota(t *testing.T) {
	candidates := []CandidateSegment{
		newCandidateSegment(0, 4, 5), // cto 5, unaffordable
		newCandidateSegment(0, 2, 2), // cto 2, affordable
	}
	result := searchBest(candidates, 2, 0)
	assert.Equal(t, 3, result.totalDaysOff)
	assert.Equal(t, 2, result.quotaSpent)
}

func TestSearchBest_EnforcesSpacingBetweenChosenCandidates(t *testing.T) {
	// Two adjacent candidates back to back; with spacing 5 they cannot both
	// be picked; they are worth the same, so the earlier one (a) is kept.
	a := newCandidateSegment(0, 2, 1)  // ends at idx 2, len 3
	b := newCandidateSegment(3, 5, 1)  // starts at idx 3: adjacent, violates spacing 5
	c := newCandidateSegment(10, 12, 1) // starts at idx 10: satisfies spacing from a

	result := searchBest([]CandidateSegment{a, b, c}, 10, 5)
	assert.Equal(t, 6, result.totalDaysOff) // a (3) + c (3)
	assert.Len(t, result.segments, 2)
}

func TestSearchBest_TiesPreferEarliestStart(t *testing.T) {
	// Two disjoint, non-overlapping, equally valuable candidates that cannot
	// both be picked because quota only covers one.
	early := newCandidateSegment(0, 2, 1) // len 3
	late := newCandidateSegment(20, 22, 1) // len 3, identical value

	result := searchBest([]CandidateSegment{early, late}, 1, 0)
	assert.Equal(t, 3, result.totalDaysOff)
	assert.Len(t, result.segments, 1)
	assert.Equal(t, 0, result.segments[0].StartIdx)
}

func TestSearchBest_EmptyCandidatesYieldsZero(t *testing.T) {
	result := searchBest(nil, 5, 0)
	assert.Equal(t, 0, result.totalDaysOff)
	assert.Empty(t, result.segments)
	assert.Equal(t, 0, result.quotaSpent)
}

func TestLowerBoundStart_FindsFirstAtOrAfterTarget(t *testing.T) {
	candidates := []CandidateSegment{
		newCandidateSegment(0, 1, 1),
		newCandidateSegment(5, 6, 1),
		newCandidateSegment(9, 10, 1),
	}
	assert.Equal(t, 1, lowerBoundStart(candidates, 0, 5))
	assert.Equal(t, 2, lowerBoundStart(candidates, 0, 6))
	assert.Equal(t, 0, lowerBoundStart(candidates, 0, 0))
	assert.Equal(t, 3, lowerBoundStart(candidates, 0, 100))
}
