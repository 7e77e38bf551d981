package dataprocessing

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"sgpulse/pkg/contracts/domain"
)

// Outlier band for plausible monthly salaries in SGD. Postings outside the
// band are removed, not failed.
const (
	MinPlausibleSalary = 1000
	MaxPlausibleSalary = 50000
)

// monthlySalaryType is the pay cadence the dashboard benchmarks against.
const monthlySalaryType = "Monthly"

// dateFormats tried in order when parsing the metadata date columns.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Pipeline loads, validates and cleans job posting CSV files. It holds no
// per-load state; a single instance can serve the whole process.
type Pipeline struct {
	schema Schema
	logger *slog.Logger
}

// NewPipeline creates a pipeline with the default job postings schema.
func NewPipeline(logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{schema: DefaultSchema(), logger: logger}
}

// Load reads a job postings CSV from disk and runs the full cleaning
// pipeline. Structural problems return an error; per-row anomalies are
// absorbed and counted in the returned table's LoadStats.
func (p *Pipeline) Load(ctx context.Context, source string) (*domain.Table, error) {
	file, err := os.Open(source)
	if err != nil {
		p.logger.ErrorContext(ctx, "data source not found",
			slog.String("source", source),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, source)
	}
	defer file.Close()

	p.logger.InfoContext(ctx, "loading job postings", slog.String("source", source))
	return p.run(ctx, source, file)
}

// parsedRow carries a raw record together with its salary bounds. derr is
// set when a bound was not numeric; that only becomes fatal at the
// derivation stage, after invalid-range rows have been dropped.
type parsedRow struct {
	record []string
	min    float64
	max    float64
	derr   *DerivationError
}

func (p *Pipeline) run(ctx context.Context, source string, r io.Reader) (*domain.Table, error) {
	reader := csv.NewReader(stripBOM(r))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: %w", source, ErrEmptySource)
	}
	if err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", source, ErrEmptySource)
	}

	if err := p.schema.Validate(header); err != nil {
		p.logger.ErrorContext(ctx, "schema validation failed",
			slog.String("source", source),
			slog.String("error", err.Error()))
		return nil, err
	}
	idx := indexOf(header)

	stats := domain.LoadStats{Source: source, RowsParsed: len(records)}

	// Parse salary bounds once; rows where a bound is non-numeric stay in
	// until the derivation stage, which fails on them.
	rows := make([]parsedRow, 0, len(records))
	for i, record := range records {
		row := parsedRow{record: record}
		row.min, row.derr = parseSalary(record, idx, colSalaryMin, i+1)
		if row.derr == nil {
			row.max, row.derr = parseSalary(record, idx, colSalaryMax, i+1)
		}
		rows = append(rows, row)
	}

	// Invalid salary ranges are a data quality issue, not a load failure.
	kept := rows[:0]
	for _, row := range rows {
		if row.derr == nil && row.min > row.max {
			stats.InvalidRanges++
			continue
		}
		kept = append(kept, row)
	}
	rows = kept
	if stats.InvalidRanges > 0 {
		p.logger.WarnContext(ctx, "dropped rows with invalid salary ranges",
			slog.Int("count", stats.InvalidRanges))
	}
	p.logger.InfoContext(ctx, "data validation passed", slog.Int("rows", len(rows)))

	// Derivation failures are fatal: every downstream aggregate depends on
	// salary_average and salary_range being complete.
	for _, row := range rows {
		if row.derr != nil {
			p.logger.ErrorContext(ctx, "failed to derive salary metrics",
				slog.String("error", row.derr.Error()))
			return nil, row.derr
		}
	}

	hasSalaryType := false
	if _, ok := idx[colSalaryType]; ok {
		hasSalaryType = true
		stats.MonthlyFiltered = true
	} else {
		p.logger.WarnContext(ctx, "salary_type column not found, using all data")
	}
	hasDates := hasDateColumns(idx)

	postings := make([]domain.JobPosting, 0, len(rows))
	for _, row := range rows {
		if hasSalaryType {
			salaryType, _ := cell(row.record, idx, colSalaryType)
			if strings.TrimSpace(salaryType) != monthlySalaryType {
				stats.NonMonthly++
				continue
			}
		}
		if row.min < MinPlausibleSalary || row.max > MaxPlausibleSalary {
			stats.OutliersRemoved++
			continue
		}

		posting := p.buildPosting(row, idx, &stats)
		postings = append(postings, posting)
	}

	if hasDates {
		if stats.UnparsableDates > 0 {
			p.logger.WarnContext(ctx, "some metadata dates could not be parsed",
				slog.Int("count", stats.UnparsableDates))
		}
		p.logger.InfoContext(ctx, "date conversion completed")
	}
	p.logger.InfoContext(ctx, "salary metrics calculated")
	p.logger.InfoContext(ctx, "data loaded successfully",
		slog.String("source", source),
		slog.Int("rows", len(postings)),
		slog.Int("outliers_removed", stats.OutliersRemoved))

	return domain.NewTable(postings, stats), nil
}

// buildPosting converts one surviving record into a cleaned JobPosting,
// deriving and defaulting fields along the way.
func (p *Pipeline) buildPosting(row parsedRow, idx map[string]int, stats *domain.LoadStats) domain.JobPosting {
	record := row.record

	title, _ := cell(record, idx, colTitle)
	company, _ := cell(record, idx, colCompanyName)
	salaryType, _ := cell(record, idx, colSalaryType)
	rawCategories, _ := cell(record, idx, colCategories)

	result := ExtractPrimaryCategory(rawCategories)
	if !result.Ok {
		stats.UnknownCategories++
	}

	position, _ := cell(record, idx, colPositionLevel)
	position = strings.TrimSpace(position)
	if position == "" {
		position = "Not Specified"
	}

	years := 0
	if raw, ok := cell(record, idx, colMinExperience); ok {
		if v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil && v > 0 {
			years = int(math.Floor(v))
		}
	}

	return domain.JobPosting{
		Title:                  strings.TrimSpace(title),
		CompanyName:            strings.TrimSpace(company),
		SalaryMinimum:          row.min,
		SalaryMaximum:          row.max,
		SalaryAverage:          (row.min + row.max) / 2,
		SalaryRange:            row.max - row.min,
		SalaryType:             strings.TrimSpace(salaryType),
		RawCategories:          rawCategories,
		PrimaryCategory:        result.Category,
		PositionLevel:          position,
		MinimumYearsExperience: years,
		ExpiryDate:             p.parseDate(record, idx, colExpiryDate, stats),
		NewPostingDate:         p.parseDate(record, idx, colNewPosting, stats),
		OriginalPostingDate:    p.parseDate(record, idx, colOrigPosting, stats),
	}
}

// parseDate parses one metadata date cell. Absent columns and blank cells
// are silently nil; present but unparsable values are nil and counted.
func (p *Pipeline) parseDate(record []string, idx map[string]int, name string, stats *domain.LoadStats) *time.Time {
	raw, ok := cell(record, idx, name)
	if !ok {
		return nil
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	stats.UnparsableDates++
	return nil
}

// parseSalary parses a required salary bound. Thousands separators are
// tolerated; anything else non-numeric produces a DerivationError.
func parseSalary(record []string, idx map[string]int, name string, rowNum int) (float64, *DerivationError) {
	raw, _ := cell(record, idx, name)
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, &DerivationError{Row: rowNum, Column: name, Value: raw}
	}
	return v, nil
}

func hasDateColumns(idx map[string]int) bool {
	for _, name := range []string{colExpiryDate, colNewPosting, colOrigPosting} {
		if _, ok := idx[name]; ok {
			return true
		}
	}
	return false
}

// stripBOM removes a UTF-8 byte-order marker so the first header column is
// matched by name even in files exported with a BOM.
func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if lead, err := br.Peek(3); err == nil && bytes.Equal(lead, []byte{0xEF, 0xBB, 0xBF}) {
		br.Discard(3)
	}
	return br
}
