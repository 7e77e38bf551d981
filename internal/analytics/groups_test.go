package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sgpulse/pkg/contracts/domain"
)

func posting(category, position string, years int, average float64) domain.JobPosting {
	return domain.JobPosting{
		PrimaryCategory:        category,
		PositionLevel:          position,
		MinimumYearsExperience: years,
		SalaryAverage:          average,
	}
}

func TestSalaryByGroup(t *testing.T) {
	postings := []domain.JobPosting{
		posting("Engineering", "Senior", 5, 8000),
		posting("Engineering", "Junior", 1, 4000),
		posting("Engineering", "Mid", 3, 6000),
		posting("Admin", "Junior", 0, 3000),
		posting("Admin", "Junior", 1, 3500),
		posting("Finance", "Senior", 8, 12000),
	}

	stats := SalaryByGroup(postings, ByCategory, 2)

	require.Len(t, stats, 2, "groups below the minimum count are dropped")
	// Sorted by median descending.
	assert.Equal(t, "Engineering", stats[0].Key)
	assert.Equal(t, 3, stats[0].Count)
	assert.InDelta(t, 6000, stats[0].Median, 1e-9)
	assert.InDelta(t, 6000, stats[0].Mean, 1e-9)
	assert.Equal(t, "Admin", stats[1].Key)
	assert.InDelta(t, 3250, stats[1].Median, 1e-9)
}

func TestSalaryByGroup_ByPositionLevel(t *testing.T) {
	postings := []domain.JobPosting{
		posting("Engineering", "Senior", 5, 8000),
		posting("Finance", "Senior", 8, 12000),
	}

	stats := SalaryByGroup(postings, ByPositionLevel, 1)

	require.Len(t, stats, 1)
	assert.Equal(t, "Senior", stats[0].Key)
	assert.Equal(t, 2, stats[0].Count)
}

func TestCountByGroup(t *testing.T) {
	postings := []domain.JobPosting{
		posting("Engineering", "Senior", 5, 8000),
		posting("Engineering", "Junior", 1, 4000),
		posting("Admin", "Junior", 0, 3000),
		posting("Banking", "Junior", 0, 3000),
	}

	counts := CountByGroup(postings, ByCategory)

	require.Len(t, counts, 3)
	assert.Equal(t, GroupCount{Key: "Engineering", Count: 2}, counts[0])
	// Ties broken by key ascending.
	assert.Equal(t, "Admin", counts[1].Key)
	assert.Equal(t, "Banking", counts[2].Key)
}

func TestTopN(t *testing.T) {
	items := []int{1, 2, 3}

	assert.Equal(t, []int{1, 2}, TopN(items, 2))
	assert.Equal(t, items, TopN(items, 10))
	assert.Empty(t, TopN(items, 0))
	assert.Empty(t, TopN(items, -1))
}
