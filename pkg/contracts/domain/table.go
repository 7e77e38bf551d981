package domain

import "time"

// LoadStats records what happened while a table was built. Counters cover
// the non-fatal anomalies the pipeline absorbs instead of failing on.
type LoadStats struct {
	Source            string    `json:"source"`
	RowsParsed        int       `json:"rows_parsed"`
	RowsLoaded        int       `json:"rows_loaded"`
	InvalidRanges     int       `json:"invalid_ranges_dropped"`
	NonMonthly        int       `json:"non_monthly_dropped"`
	OutliersRemoved   int       `json:"outliers_removed"`
	UnknownCategories int       `json:"unknown_categories"`
	UnparsableDates   int       `json:"unparsable_dates"`
	MonthlyFiltered   bool      `json:"monthly_filter_applied"`
	LoadedAt          time.Time `json:"loaded_at"`
}

// Table is an immutable cleaned dataset. It is built once per load and
// shared by reference afterwards; downstream filtering returns derived
// slices and never mutates the backing postings.
type Table struct {
	postings []JobPosting
	stats    LoadStats
}

// NewTable builds a table around the given postings. The caller must not
// retain or modify the slice after handing it over.
func NewTable(postings []JobPosting, stats LoadStats) *Table {
	stats.RowsLoaded = len(postings)
	if stats.LoadedAt.IsZero() {
		stats.LoadedAt = time.Now()
	}
	return &Table{postings: postings, stats: stats}
}

// Len returns the number of postings in the table.
func (t *Table) Len() int { return len(t.postings) }

// Stats returns the load statistics captured when the table was built.
func (t *Table) Stats() LoadStats { return t.stats }

// Postings returns the cleaned rows. The returned slice is shared; callers
// must treat it as read-only.
func (t *Table) Postings() []JobPosting { return t.postings }

// Filter selects a subset of a table. Zero values mean "no constraint",
// mirroring the dashboard's "All" filter options.
type Filter struct {
	Category      string   `json:"category,omitempty"`
	PositionLevel string   `json:"position,omitempty"`
	MinExperience *int     `json:"min_exp,omitempty"`
	MaxExperience *int     `json:"max_exp,omitempty"`
	MinSalary     *float64 `json:"min_salary,omitempty"`
	MaxSalary     *float64 `json:"max_salary,omitempty"`
}

// IsZero reports whether the filter places no constraints at all.
func (f Filter) IsZero() bool {
	return f.Category == "" && f.PositionLevel == "" &&
		f.MinExperience == nil && f.MaxExperience == nil &&
		f.MinSalary == nil && f.MaxSalary == nil
}

// Matches reports whether a posting satisfies the filter. Salary bounds
// apply to the derived SalaryAverage, matching the dashboard slider.
func (f Filter) Matches(p JobPosting) bool {
	if f.Category != "" && p.PrimaryCategory != f.Category {
		return false
	}
	if f.PositionLevel != "" && p.PositionLevel != f.PositionLevel {
		return false
	}
	if f.MinExperience != nil && p.MinimumYearsExperience < *f.MinExperience {
		return false
	}
	if f.MaxExperience != nil && p.MinimumYearsExperience > *f.MaxExperience {
		return false
	}
	if f.MinSalary != nil && p.SalaryAverage < *f.MinSalary {
		return false
	}
	if f.MaxSalary != nil && p.SalaryAverage > *f.MaxSalary {
		return false
	}
	return true
}

// Apply returns the postings that satisfy the filter. The base table is
// never modified; an unconstrained filter returns the shared slice as-is.
func (t *Table) Apply(f Filter) []JobPosting {
	if f.IsZero() {
		return t.postings
	}
	var out []JobPosting
	for _, p := range t.postings {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}
