package services

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sgpulse/internal/dataprocessing"
	"sgpulse/pkg/contracts/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeDataset(t *testing.T) string {
	t.Helper()
	records := [][]string{
		{"title", "salary_minimum", "salary_maximum", "categories", "salary_type", "positionLevels", "minimumYearsExperience"},
		{"Software Engineer", "4000", "6000", `[{"category":"Engineering"}]`, "Monthly", "Senior", "5"},
		{"Backend Engineer", "3000", "5000", `[{"category":"Engineering"}]`, "Monthly", "Junior", "2"},
		{"Frontend Engineer", "3000", "6000", `[{"category":"Engineering"}]`, "Monthly", "Mid", "3"},
		{"DevOps Engineer", "4000", "7000", `[{"category":"Engineering"}]`, "Monthly", "Mid", "4"},
		{"Platform Engineer", "5000", "7000", `[{"category":"Engineering"}]`, "Monthly", "Senior", "6"},
		{"Admin Assistant", "2000", "3000", `[{"category":"Admin"}]`, "Monthly", "Junior", "1"},
		{"Accountant", "4000", "8000", `[{"category":"Finance"}]`, "Monthly", "Mid", "4"},
	}

	path := filepath.Join(t.TempDir(), "jobs.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := csv.NewWriter(f)
	require.NoError(t, w.WriteAll(records))
	require.NoError(t, f.Close())
	return path
}

func newLoadedService(t *testing.T) *JobDataService {
	t.Helper()
	logger := testLogger()
	store := dataprocessing.NewStore(dataprocessing.NewPipeline(logger), logger)
	svc := NewJobDataService(store, writeDataset(t), nil, logger)
	_, err := svc.Load(context.Background())
	require.NoError(t, err)
	return svc
}

func TestJobDataService_SummaryBeforeLoad(t *testing.T) {
	logger := testLogger()
	store := dataprocessing.NewStore(dataprocessing.NewPipeline(logger), logger)
	svc := NewJobDataService(store, "whatever.csv", nil, logger)

	_, err := svc.Summary(context.Background(), domain.Filter{})

	assert.ErrorIs(t, err, ErrDataNotLoaded)
}

func TestJobDataService_Summary(t *testing.T) {
	svc := newLoadedService(t)

	resp, err := svc.Summary(context.Background(), domain.Filter{})

	require.NoError(t, err)
	assert.Equal(t, 7, resp.TotalPostings)
	assert.Equal(t, 7, resp.Salary.Count)
	assert.InDelta(t, 2500, resp.Salary.Min, 1e-9)
	assert.InDelta(t, 6000, resp.Salary.Max, 1e-9)
	assert.Equal(t, 7, resp.LoadStats.RowsLoaded)
	assert.True(t, resp.LoadStats.MonthlyFiltered)
}

func TestJobDataService_SummaryFiltered(t *testing.T) {
	svc := newLoadedService(t)

	resp, err := svc.Summary(context.Background(), domain.Filter{Category: "Engineering"})

	require.NoError(t, err)
	assert.Equal(t, 5, resp.TotalPostings)
	assert.InDelta(t, 5000, resp.Salary.Median, 1e-9)
}

func TestJobDataService_SummaryNoMatches(t *testing.T) {
	svc := newLoadedService(t)

	_, err := svc.Summary(context.Background(), domain.Filter{Category: "Hospitality"})

	assert.ErrorIs(t, err, ErrNoPostings)
}

func TestJobDataService_Categories(t *testing.T) {
	svc := newLoadedService(t)

	resp, err := svc.Categories(context.Background(), domain.Filter{})

	require.NoError(t, err)
	// Only Engineering reaches the minimum group size for salary stats.
	require.Len(t, resp.Salaries, 1)
	assert.Equal(t, "Engineering", resp.Salaries[0].Key)
	assert.Equal(t, 5, resp.Salaries[0].Count)

	require.Len(t, resp.Counts, 3)
	assert.Equal(t, "Engineering", resp.Counts[0].Key)
	assert.Equal(t, 5, resp.Counts[0].Count)
}

func TestJobDataService_Positions(t *testing.T) {
	svc := newLoadedService(t)

	resp, err := svc.Positions(context.Background(), domain.Filter{})

	require.NoError(t, err)
	assert.Empty(t, resp.Salaries, "no position level reaches the minimum group size")
	require.Len(t, resp.Counts, 3)
	assert.Equal(t, "Mid", resp.Counts[0].Key)
	assert.Equal(t, 3, resp.Counts[0].Count)
}

func TestJobDataService_Experience(t *testing.T) {
	svc := newLoadedService(t)

	resp, err := svc.Experience(context.Background(), domain.Filter{})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Brackets)
	assert.NotEmpty(t, resp.Trend)
	assert.Greater(t, resp.Correlation, 0.0)
	assert.Contains(t, []string{"weak", "moderate", "strong"}, resp.CorrelationStrength)
}

func TestJobDataService_Insights(t *testing.T) {
	svc := newLoadedService(t)

	resp, err := svc.Insights(context.Background(), domain.Filter{})

	require.NoError(t, err)
	require.NotEmpty(t, resp.TopPaying)
	assert.InDelta(t, 6000, resp.TopPaying[0].SalaryAverage, 1e-9)
	assert.NotEmpty(t, resp.DemandVsCompensation)
	assert.Equal(t, "Engineering", resp.DemandVsCompensation[0].Category)
}

func TestJobDataService_Distribution(t *testing.T) {
	svc := newLoadedService(t)

	resp, err := svc.Distribution(context.Background(), domain.Filter{}, 0)

	require.NoError(t, err)
	assert.Equal(t, 20, resp.Bins, "invalid bins fall back to the default")
	assert.Len(t, resp.Buckets, 20)
	assert.Equal(t, 7, resp.Summary.Count)

	resp, err = svc.Distribution(context.Background(), domain.Filter{}, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Bins)
}

func TestJobDataService_FilterOptions(t *testing.T) {
	svc := newLoadedService(t)

	resp, err := svc.FilterOptions(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"Admin", "Engineering", "Finance"}, resp.Categories)
	assert.Equal(t, []string{"Junior", "Mid", "Senior"}, resp.PositionLevels)
	assert.Equal(t, 1, resp.ExperienceMin)
	assert.Equal(t, 6, resp.ExperienceMax)
	assert.InDelta(t, 2500, resp.SalaryMin, 1e-9)
	assert.InDelta(t, 6000, resp.SalaryMax, 1e-9)
}

func TestJobDataService_Postings(t *testing.T) {
	svc := newLoadedService(t)

	postings, err := svc.Postings(context.Background(), domain.Filter{PositionLevel: "Senior"})

	require.NoError(t, err)
	assert.Len(t, postings, 2)
}

func TestJobDataService_Reload(t *testing.T) {
	svc := newLoadedService(t)
	assert.True(t, svc.Loaded())

	table, err := svc.Reload(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 7, table.Len())
	assert.True(t, svc.Loaded())
}
