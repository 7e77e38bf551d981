// Package dataprocessing implements the job postings loading pipeline.
// It takes a raw MyCareersFuture CSV extract and produces an immutable,
// validated table of monthly-salary postings.
//
// # Pipeline stages
//
// Load runs the stages in a fixed order:
//
//  1. Existence check on the source file
//  2. CSV parse (UTF-8, BOM tolerant)
//  3. Schema validation against an explicit column schema
//  4. Drop rows whose salary_minimum exceeds salary_maximum
//  5. Derive primary_category from the serialized category list
//  6. Best-effort parsing of the metadata date columns
//  7. Derive salary_average and salary_range
//  8. Fill defaults for positionLevels and minimumYearsExperience
//  9. Keep only Monthly postings when salary_type is present
//  10. Remove salary outliers outside the plausible monthly band
//
// Structural failures (missing file, empty source, missing required
// columns, non-numeric salary bounds) abort the load; per-row data quality
// issues are absorbed with a safe default and surface only as counters in
// the resulting table's LoadStats.
//
// # Caching
//
// Store memoizes Load results by source identity so repeated requests for
// the same file never re-read or re-parse it. Concurrent first loads of the
// same source are coalesced through singleflight.
package dataprocessing
