package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sgpulse/pkg/contracts/domain"
)

func TestBracketContains(t *testing.T) {
	entry := ExperienceBrackets[0]  // (0, 2]
	expert := ExperienceBrackets[4] // (20, ∞)

	// Lower bound is exclusive: zero years falls outside every bracket.
	assert.False(t, entry.contains(0))
	assert.True(t, entry.contains(1))
	assert.True(t, entry.contains(2))
	assert.False(t, entry.contains(3))

	assert.False(t, expert.contains(20))
	assert.True(t, expert.contains(21))
	assert.True(t, expert.contains(40))
}

func TestMedianByBracket(t *testing.T) {
	postings := []domain.JobPosting{
		posting("Engineering", "Junior", 1, 3000),
		posting("Engineering", "Junior", 2, 4000),
		posting("Engineering", "Mid", 4, 6000),
		posting("Engineering", "Senior", 15, 12000),
		posting("Engineering", "Entry", 0, 2500), // outside all brackets
	}

	stats := MedianByBracket(postings)

	require.Len(t, stats, 3, "empty brackets are omitted")
	assert.Equal(t, "Entry (0-2y)", stats[0].Label)
	assert.Equal(t, 2, stats[0].Count)
	assert.InDelta(t, 3500, stats[0].MedianSalary, 1e-9)
	assert.Equal(t, "Junior (3-5y)", stats[1].Label)
	assert.Equal(t, "Senior (11-20y)", stats[2].Label)
}

func TestTrendByYears(t *testing.T) {
	postings := []domain.JobPosting{
		posting("Engineering", "Junior", 1, 3000),
		posting("Engineering", "Junior", 1, 5000),
		posting("Engineering", "Mid", 5, 7000),
		posting("Engineering", "Veteran", 30, 20000), // beyond maxYears
	}

	trend := TrendByYears(postings, 20)

	require.Len(t, trend, 2)
	assert.Equal(t, 1, trend[0].Years)
	assert.Equal(t, 2, trend[0].Count)
	assert.InDelta(t, 4000, trend[0].Mean, 1e-9)
	assert.InDelta(t, 4000, trend[0].Median, 1e-9)
	assert.Equal(t, 5, trend[1].Years)
}

func TestExperienceSalaryCorrelation(t *testing.T) {
	postings := []domain.JobPosting{
		posting("Engineering", "Junior", 1, 3000),
		posting("Engineering", "Mid", 5, 7000),
		posting("Engineering", "Senior", 10, 12000),
	}

	corr := ExperienceSalaryCorrelation(postings)

	assert.Greater(t, corr, 0.9)
}
