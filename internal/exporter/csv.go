package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"sgpulse/pkg/contracts/domain"
)

// Header is the column layout of exported postings. Source column names
// are kept where they exist so round-trips stay recognizable.
var Header = []string{
	"title", "companyName", "primary_category", "positionLevels",
	"minimumYearsExperience", "salary_minimum", "salary_maximum",
	"salary_average", "salary_range",
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// Write streams postings as CSV to w.
func Write(w io.Writer, postings []domain.JobPosting, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, p := range postings {
		if err := cw.Write(record(p)); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes postings to a CSV file, creating parent directories as
// needed.
func WriteFile(path string, postings []domain.JobPosting, options WriteOptions) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()
	return Write(file, postings, options)
}

func record(p domain.JobPosting) []string {
	return []string{
		p.Title,
		p.CompanyName,
		p.PrimaryCategory,
		p.PositionLevel,
		strconv.Itoa(p.MinimumYearsExperience),
		formatFloat(p.SalaryMinimum),
		formatFloat(p.SalaryMaximum),
		formatFloat(p.SalaryAverage),
		formatFloat(p.SalaryRange),
	}
}

// formatFloat formats a salary value with exactly 2 decimal places so
// values like 13.4 appear as 13.40 in the output.
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}
