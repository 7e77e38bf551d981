package services

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"sgpulse/internal/analytics"
	"sgpulse/internal/dataprocessing"
	"sgpulse/internal/infrastructure"
	"sgpulse/pkg/contracts/domain"
)

// Aggregation thresholds and display limits used across endpoints.
const (
	minGroupSize     = 5
	defaultTopN      = 10
	trendMaxYears    = 20
	histogramBins    = 20
	maxHistogramBins = 100
)

// JobDataService owns the cleaned postings table and answers analytics
// queries against it.
type JobDataService struct {
	store   *dataprocessing.Store
	source  string
	metrics *infrastructure.Metrics
	logger  *slog.Logger
}

// NewJobDataService creates a job data service for one dataset source.
func NewJobDataService(store *dataprocessing.Store, source string, metrics *infrastructure.Metrics, logger *slog.Logger) *JobDataService {
	if logger == nil {
		logger = slog.Default()
	}
	return &JobDataService{
		store:   store,
		source:  source,
		metrics: metrics,
		logger:  logger,
	}
}

// Load builds the table for the configured source, or returns it from
// cache. Pipeline failures pass through unchanged so callers can map them.
func (s *JobDataService) Load(ctx context.Context) (*domain.Table, error) {
	start := time.Now()
	table, cached, err := s.store.Load(ctx, s.source)
	if s.metrics != nil {
		if cached {
			s.metrics.CacheHits.Inc()
		} else {
			s.metrics.ObserveLoad(err, time.Since(start))
			if err == nil {
				stats := table.Stats()
				s.metrics.RowsLoaded.Add(float64(stats.RowsLoaded))
				s.metrics.InvalidRangesDropped.Add(float64(stats.InvalidRanges))
				s.metrics.OutliersRemoved.Add(float64(stats.OutliersRemoved))
			}
		}
	}
	return table, err
}

// Reload drops the cached table and rebuilds it from disk.
func (s *JobDataService) Reload(ctx context.Context) (*domain.Table, error) {
	s.logger.InfoContext(ctx, "reloading dataset", slog.String("source", s.source))
	s.store.Invalidate(s.source)
	return s.Load(ctx)
}

// Loaded reports whether a table is available without triggering a load.
func (s *JobDataService) Loaded() bool {
	_, ok := s.store.Get(s.source)
	return ok
}

// snapshot returns the filtered postings plus the table's load stats.
// ErrDataNotLoaded when no table exists yet; ErrNoPostings when the filter
// matches nothing.
func (s *JobDataService) snapshot(filter domain.Filter) ([]domain.JobPosting, domain.LoadStats, error) {
	table, ok := s.store.Get(s.source)
	if !ok {
		return nil, domain.LoadStats{}, ErrDataNotLoaded
	}
	postings := table.Apply(filter)
	if len(postings) == 0 {
		return nil, table.Stats(), ErrNoPostings
	}
	return postings, table.Stats(), nil
}

// SummaryResponse is the headline view of the filtered dataset.
type SummaryResponse struct {
	TotalPostings int               `json:"total_postings"`
	Salary        analytics.Summary `json:"salary"`
	SalaryRange   analytics.RangeStats `json:"salary_range"`
	LoadStats     domain.LoadStats  `json:"load_stats"`
}

// Summary computes descriptive statistics of salary_average for the
// filtered postings.
func (s *JobDataService) Summary(ctx context.Context, filter domain.Filter) (*SummaryResponse, error) {
	postings, stats, err := s.snapshot(filter)
	if err != nil {
		return nil, err
	}
	return &SummaryResponse{
		TotalPostings: len(postings),
		Salary:        analytics.Describe(salaries(postings)),
		SalaryRange:   analytics.SalaryRangeStats(postings),
		LoadStats:     stats,
	}, nil
}

// CategoriesResponse pairs salary stats with posting volume per category.
type CategoriesResponse struct {
	Salaries []analytics.GroupStat  `json:"salaries"`
	Counts   []analytics.GroupCount `json:"counts"`
}

// Categories computes per-category salary statistics for groups with at
// least minGroupSize postings, plus raw counts for every category.
func (s *JobDataService) Categories(ctx context.Context, filter domain.Filter) (*CategoriesResponse, error) {
	postings, _, err := s.snapshot(filter)
	if err != nil {
		return nil, err
	}
	return &CategoriesResponse{
		Salaries: analytics.SalaryByGroup(postings, analytics.ByCategory, minGroupSize),
		Counts:   analytics.CountByGroup(postings, analytics.ByCategory),
	}, nil
}

// PositionsResponse pairs salary stats with posting volume per position
// level.
type PositionsResponse struct {
	Salaries []analytics.GroupStat  `json:"salaries"`
	Counts   []analytics.GroupCount `json:"counts"`
}

// Positions computes per-position-level salary statistics.
func (s *JobDataService) Positions(ctx context.Context, filter domain.Filter) (*PositionsResponse, error) {
	postings, _, err := s.snapshot(filter)
	if err != nil {
		return nil, err
	}
	return &PositionsResponse{
		Salaries: analytics.SalaryByGroup(postings, analytics.ByPositionLevel, minGroupSize),
		Counts:   analytics.CountByGroup(postings, analytics.ByPositionLevel),
	}, nil
}

// ExperienceResponse relates required experience to compensation.
type ExperienceResponse struct {
	Brackets            []analytics.BracketStat `json:"brackets"`
	Trend               []analytics.YearStat    `json:"trend"`
	Correlation         float64                 `json:"correlation"`
	CorrelationStrength string                  `json:"correlation_strength"`
}

// Experience computes bracket medians, the per-year salary trend and the
// experience/salary correlation.
func (s *JobDataService) Experience(ctx context.Context, filter domain.Filter) (*ExperienceResponse, error) {
	postings, _, err := s.snapshot(filter)
	if err != nil {
		return nil, err
	}
	corr := analytics.ExperienceSalaryCorrelation(postings)
	return &ExperienceResponse{
		Brackets:            analytics.MedianByBracket(postings),
		Trend:               analytics.TrendByYears(postings, trendMaxYears),
		Correlation:         corr,
		CorrelationStrength: analytics.CorrelationStrength(corr),
	}, nil
}

// InsightsResponse is the market insight view: top paying roles, salary
// range spread and demand versus compensation per category.
type InsightsResponse struct {
	TopPaying            []domain.JobPosting     `json:"top_paying"`
	SalaryRange          analytics.RangeStats    `json:"salary_range"`
	DemandVsCompensation []analytics.DemandPoint `json:"demand_vs_compensation"`
}

// Insights computes the market insight aggregates.
func (s *JobDataService) Insights(ctx context.Context, filter domain.Filter) (*InsightsResponse, error) {
	postings, _, err := s.snapshot(filter)
	if err != nil {
		return nil, err
	}
	return &InsightsResponse{
		TopPaying:            analytics.TopPaying(postings, defaultTopN),
		SalaryRange:          analytics.SalaryRangeStats(postings),
		DemandVsCompensation: analytics.DemandVsCompensation(postings, minGroupSize, defaultTopN),
	}, nil
}

// DistributionResponse is an equal-width histogram of salary_average.
type DistributionResponse struct {
	Bins    int                         `json:"bins"`
	Buckets []analytics.HistogramBucket `json:"buckets"`
	Summary analytics.Summary           `json:"summary"`
}

// Distribution computes the salary histogram. bins outside [1, 100] falls
// back to the default of 20.
func (s *JobDataService) Distribution(ctx context.Context, filter domain.Filter, bins int) (*DistributionResponse, error) {
	postings, _, err := s.snapshot(filter)
	if err != nil {
		return nil, err
	}
	if bins <= 0 || bins > maxHistogramBins {
		bins = histogramBins
	}
	values := salaries(postings)
	return &DistributionResponse{
		Bins:    bins,
		Buckets: analytics.Histogram(values, bins),
		Summary: analytics.Describe(values),
	}, nil
}

// Postings returns the filtered postings for export.
func (s *JobDataService) Postings(ctx context.Context, filter domain.Filter) ([]domain.JobPosting, error) {
	postings, _, err := s.snapshot(filter)
	if err != nil {
		return nil, err
	}
	return postings, nil
}

// FilterOptionsResponse lists the distinct values and ranges a client can
// filter on.
type FilterOptionsResponse struct {
	Categories     []string `json:"categories"`
	PositionLevels []string `json:"position_levels"`
	ExperienceMin  int      `json:"experience_min"`
	ExperienceMax  int      `json:"experience_max"`
	SalaryMin      float64  `json:"salary_min"`
	SalaryMax      float64  `json:"salary_max"`
}

// FilterOptions derives the available filter values from the full table,
// ignoring any active filter.
func (s *JobDataService) FilterOptions(ctx context.Context) (*FilterOptionsResponse, error) {
	table, ok := s.store.Get(s.source)
	if !ok {
		return nil, ErrDataNotLoaded
	}
	postings := table.Postings()
	if len(postings) == 0 {
		return nil, ErrNoPostings
	}

	categories := make(map[string]struct{})
	positions := make(map[string]struct{})
	resp := &FilterOptionsResponse{
		ExperienceMin: postings[0].MinimumYearsExperience,
		ExperienceMax: postings[0].MinimumYearsExperience,
		SalaryMin:     postings[0].SalaryAverage,
		SalaryMax:     postings[0].SalaryAverage,
	}
	for _, p := range postings {
		categories[p.PrimaryCategory] = struct{}{}
		positions[p.PositionLevel] = struct{}{}
		if p.MinimumYearsExperience < resp.ExperienceMin {
			resp.ExperienceMin = p.MinimumYearsExperience
		}
		if p.MinimumYearsExperience > resp.ExperienceMax {
			resp.ExperienceMax = p.MinimumYearsExperience
		}
		if p.SalaryAverage < resp.SalaryMin {
			resp.SalaryMin = p.SalaryAverage
		}
		if p.SalaryAverage > resp.SalaryMax {
			resp.SalaryMax = p.SalaryAverage
		}
	}
	resp.Categories = sortedKeys(categories)
	resp.PositionLevels = sortedKeys(positions)
	return resp, nil
}

func salaries(postings []domain.JobPosting) []float64 {
	values := make([]float64, len(postings))
	for i, p := range postings {
		values[i] = p.SalaryAverage
	}
	return values
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
