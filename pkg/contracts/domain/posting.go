package domain

import "time"

// JobPosting is one row of the cleaned job postings table. Salary figures
// are monthly SGD after the pipeline's cadence and outlier filters.
type JobPosting struct {
	Title       string `json:"title" csv:"title"`
	CompanyName string `json:"company_name" csv:"postedCompany_name"`

	SalaryMinimum float64 `json:"salary_minimum" csv:"salary_minimum"`
	SalaryMaximum float64 `json:"salary_maximum" csv:"salary_maximum"`
	// SalaryAverage and SalaryRange are derived by the pipeline and are
	// always consistent with SalaryMinimum/SalaryMaximum.
	SalaryAverage float64 `json:"salary_average" csv:"salary_average"`
	SalaryRange   float64 `json:"salary_range" csv:"salary_range"`
	SalaryType    string  `json:"salary_type,omitempty" csv:"salary_type"`

	// RawCategories keeps the serialized category list as found in the
	// source; PrimaryCategory is the first category label or "Unknown".
	RawCategories   string `json:"categories,omitempty" csv:"categories"`
	PrimaryCategory string `json:"primary_category" csv:"primary_category"`

	PositionLevel          string `json:"position_level" csv:"positionLevels"`
	MinimumYearsExperience int    `json:"minimum_years_experience" csv:"minimumYearsExperience"`

	ExpiryDate          *time.Time `json:"metadata_expiry_date,omitempty" csv:"metadata_expiryDate"`
	NewPostingDate      *time.Time `json:"metadata_new_posting_date,omitempty" csv:"metadata_newPostingDate"`
	OriginalPostingDate *time.Time `json:"metadata_original_posting_date,omitempty" csv:"metadata_originalPostingDate"`
}
