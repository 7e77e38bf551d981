package analytics

import (
	"sort"

	"sgpulse/pkg/contracts/domain"
)

// Bracket is a half-open experience interval (Min, Max] in years. Max < 0
// marks an unbounded upper edge.
type Bracket struct {
	Label string
	Min   int
	Max   int
}

// ExperienceBrackets are the dashboard's fixed experience groupings.
// Intervals are exclusive of the lower bound, so zero-experience postings
// fall outside every bracket.
var ExperienceBrackets = []Bracket{
	{Label: "Entry (0-2y)", Min: 0, Max: 2},
	{Label: "Junior (3-5y)", Min: 2, Max: 5},
	{Label: "Mid (6-10y)", Min: 5, Max: 10},
	{Label: "Senior (11-20y)", Min: 10, Max: 20},
	{Label: "Expert (20+y)", Min: 20, Max: -1},
}

// contains reports whether years falls inside the bracket.
func (b Bracket) contains(years int) bool {
	if years <= b.Min {
		return false
	}
	return b.Max < 0 || years <= b.Max
}

// BracketStat is the median salary for one experience bracket.
type BracketStat struct {
	Label        string  `json:"label"`
	Count        int     `json:"count"`
	MedianSalary float64 `json:"median_salary"`
}

// MedianByBracket computes the median salary_average per experience
// bracket, in bracket order. Empty brackets are omitted.
func MedianByBracket(postings []domain.JobPosting) []BracketStat {
	var stats []BracketStat
	for _, b := range ExperienceBrackets {
		var values []float64
		for _, p := range postings {
			if b.contains(p.MinimumYearsExperience) {
				values = append(values, p.SalaryAverage)
			}
		}
		if len(values) == 0 {
			continue
		}
		stats = append(stats, BracketStat{
			Label:        b.Label,
			Count:        len(values),
			MedianSalary: Median(values),
		})
	}
	return stats
}

// YearStat summarizes salaries for one exact experience level.
type YearStat struct {
	Years  int     `json:"years"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// TrendByYears computes per-year salary statistics up to maxYears
// inclusive, sorted by years ascending.
func TrendByYears(postings []domain.JobPosting, maxYears int) []YearStat {
	grouped := make(map[int][]float64)
	for _, p := range postings {
		if p.MinimumYearsExperience > maxYears {
			continue
		}
		grouped[p.MinimumYearsExperience] = append(grouped[p.MinimumYearsExperience], p.SalaryAverage)
	}

	stats := make([]YearStat, 0, len(grouped))
	for years, values := range grouped {
		stats = append(stats, YearStat{
			Years:  years,
			Count:  len(values),
			Mean:   Mean(values),
			Median: Median(values),
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Years < stats[j].Years })
	return stats
}

// ExperienceSalaryCorrelation returns the Pearson correlation between
// minimum years of experience and salary_average.
func ExperienceSalaryCorrelation(postings []domain.JobPosting) float64 {
	x := make([]float64, len(postings))
	y := make([]float64, len(postings))
	for i, p := range postings {
		x[i] = float64(p.MinimumYearsExperience)
		y[i] = p.SalaryAverage
	}
	return Correlation(x, y)
}
