package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func samplePostings() []JobPosting {
	return []JobPosting{
		{Title: "Engineer", PrimaryCategory: "Engineering", PositionLevel: "Senior", MinimumYearsExperience: 5, SalaryAverage: 8000},
		{Title: "Analyst", PrimaryCategory: "Finance", PositionLevel: "Junior", MinimumYearsExperience: 1, SalaryAverage: 4000},
		{Title: "Clerk", PrimaryCategory: "Admin", PositionLevel: "Junior", MinimumYearsExperience: 0, SalaryAverage: 2500},
	}
}

func TestNewTable(t *testing.T) {
	table := NewTable(samplePostings(), LoadStats{Source: "test.csv", RowsParsed: 5})

	stats := table.Stats()
	assert.Equal(t, "test.csv", stats.Source)
	assert.Equal(t, 5, stats.RowsParsed)
	assert.Equal(t, 3, stats.RowsLoaded)
	assert.False(t, stats.LoadedAt.IsZero())
	assert.Equal(t, 3, table.Len())
}

func TestFilterIsZero(t *testing.T) {
	assert.True(t, Filter{}.IsZero())
	assert.False(t, Filter{Category: "Engineering"}.IsZero())
	assert.False(t, Filter{MinSalary: floatPtr(1000)}.IsZero())
}

func TestFilterMatches(t *testing.T) {
	p := JobPosting{
		PrimaryCategory:        "Engineering",
		PositionLevel:          "Senior",
		MinimumYearsExperience: 5,
		SalaryAverage:          8000,
	}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty filter", Filter{}, true},
		{"category match", Filter{Category: "Engineering"}, true},
		{"category mismatch", Filter{Category: "Admin"}, false},
		{"position match", Filter{PositionLevel: "Senior"}, true},
		{"position mismatch", Filter{PositionLevel: "Junior"}, false},
		{"experience inside range", Filter{MinExperience: intPtr(3), MaxExperience: intPtr(10)}, true},
		{"experience below min", Filter{MinExperience: intPtr(6)}, false},
		{"experience above max", Filter{MaxExperience: intPtr(4)}, false},
		{"salary inside range", Filter{MinSalary: floatPtr(5000), MaxSalary: floatPtr(9000)}, true},
		{"salary below min", Filter{MinSalary: floatPtr(9000)}, false},
		{"salary above max", Filter{MaxSalary: floatPtr(7000)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(p))
		})
	}
}

func TestTableApply(t *testing.T) {
	table := NewTable(samplePostings(), LoadStats{})

	t.Run("zero filter returns the shared slice", func(t *testing.T) {
		out := table.Apply(Filter{})
		assert.Len(t, out, 3)
		assert.Equal(t, &table.Postings()[0], &out[0])
	})

	t.Run("filter selects matching postings", func(t *testing.T) {
		out := table.Apply(Filter{PositionLevel: "Junior"})
		require.Len(t, out, 2)
		assert.Equal(t, "Analyst", out[0].Title)
		assert.Equal(t, "Clerk", out[1].Title)
	})

	t.Run("no matches yields empty", func(t *testing.T) {
		out := table.Apply(Filter{Category: "Hospitality"})
		assert.Empty(t, out)
	})
}
