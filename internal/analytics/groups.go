package analytics

import (
	"sort"

	"sgpulse/pkg/contracts/domain"
)

// GroupStat summarizes salary_average for one group of postings.
type GroupStat struct {
	Key    string  `json:"key"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
}

// GroupCount is a plain volume count for one group.
type GroupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// KeyFunc extracts the grouping key from a posting.
type KeyFunc func(domain.JobPosting) string

// ByCategory groups postings by their primary category.
func ByCategory(p domain.JobPosting) string { return p.PrimaryCategory }

// ByPositionLevel groups postings by position level.
func ByPositionLevel(p domain.JobPosting) string { return p.PositionLevel }

// SalaryByGroup computes salary_average statistics per group, dropping
// groups smaller than minCount, sorted by median descending. Equal medians
// are broken by key for deterministic output.
func SalaryByGroup(postings []domain.JobPosting, key KeyFunc, minCount int) []GroupStat {
	grouped := make(map[string][]float64)
	for _, p := range postings {
		k := key(p)
		grouped[k] = append(grouped[k], p.SalaryAverage)
	}

	stats := make([]GroupStat, 0, len(grouped))
	for k, values := range grouped {
		if len(values) < minCount {
			continue
		}
		stats = append(stats, GroupStat{
			Key:    k,
			Count:  len(values),
			Mean:   Mean(values),
			Median: Median(values),
			StdDev: StdDev(values),
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Median != stats[j].Median {
			return stats[i].Median > stats[j].Median
		}
		return stats[i].Key < stats[j].Key
	})
	return stats
}

// CountByGroup counts postings per group, sorted by count descending with
// key as tiebreaker.
func CountByGroup(postings []domain.JobPosting, key KeyFunc) []GroupCount {
	grouped := make(map[string]int)
	for _, p := range postings {
		grouped[key(p)]++
	}

	counts := make([]GroupCount, 0, len(grouped))
	for k, n := range grouped {
		counts = append(counts, GroupCount{Key: k, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Key < counts[j].Key
	})
	return counts
}

// TopN returns at most n leading entries of a slice without mutating it.
func TopN[T any](items []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(items) > n {
		return items[:n]
	}
	return items
}
