package analytics

import (
	"sort"

	"sgpulse/pkg/contracts/domain"
)

// TopPaying returns the n postings with the highest salary_average,
// descending. Ties are broken by title for deterministic output.
func TopPaying(postings []domain.JobPosting, n int) []domain.JobPosting {
	sorted := make([]domain.JobPosting, len(postings))
	copy(sorted, postings)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].SalaryAverage != sorted[j].SalaryAverage {
			return sorted[i].SalaryAverage > sorted[j].SalaryAverage
		}
		return sorted[i].Title < sorted[j].Title
	})
	return TopN(sorted, n)
}

// RangeStats summarizes salary_range across postings. The spread between a
// posting's bounds is read as negotiation flexibility within the role.
type RangeStats struct {
	MeanRange   float64 `json:"mean_range"`
	MedianRange float64 `json:"median_range"`
}

// SalaryRangeStats computes mean and median salary_range.
func SalaryRangeStats(postings []domain.JobPosting) RangeStats {
	values := make([]float64, len(postings))
	for i, p := range postings {
		values[i] = p.SalaryRange
	}
	return RangeStats{
		MeanRange:   Mean(values),
		MedianRange: Median(values),
	}
}

// DemandPoint relates a category's posting volume to its median salary.
type DemandPoint struct {
	Category     string  `json:"category"`
	JobCount     int     `json:"job_count"`
	MedianSalary float64 `json:"median_salary"`
}

// DemandVsCompensation computes demand points for categories with at least
// minCount postings, keeping the topN by volume.
func DemandVsCompensation(postings []domain.JobPosting, minCount, topN int) []DemandPoint {
	grouped := make(map[string][]float64)
	for _, p := range postings {
		grouped[p.PrimaryCategory] = append(grouped[p.PrimaryCategory], p.SalaryAverage)
	}

	points := make([]DemandPoint, 0, len(grouped))
	for category, values := range grouped {
		if len(values) < minCount {
			continue
		}
		points = append(points, DemandPoint{
			Category:     category,
			JobCount:     len(values),
			MedianSalary: Median(values),
		})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].JobCount != points[j].JobCount {
			return points[i].JobCount > points[j].JobCount
		}
		return points[i].Category < points[j].Category
	})
	return TopN(points, topN)
}
