package dataprocessing

// Column names the pipeline knows about.
const (
	colTitle         = "title"
	colSalaryMin     = "salary_minimum"
	colSalaryMax     = "salary_maximum"
	colCategories    = "categories"
	colSalaryType    = "salary_type"
	colPositionLevel = "positionLevels"
	colMinExperience = "minimumYearsExperience"
	colCompanyName   = "postedCompany_name"
	colExpiryDate    = "metadata_expiryDate"
	colNewPosting    = "metadata_newPostingDate"
	colOrigPosting   = "metadata_originalPostingDate"
)

// Column describes one field of the source table: whether it must be
// present and, for optional string columns, the default used when absent.
type Column struct {
	Name     string
	Required bool
	Default  string
}

// Schema is the explicit record layout the pipeline validates against.
// The source may carry extra columns; they are ignored.
type Schema struct {
	Columns []Column
}

// DefaultSchema returns the job postings schema. Required columns mirror
// what the salary dashboard cannot function without; everything else is
// tolerated if absent.
func DefaultSchema() Schema {
	return Schema{Columns: []Column{
		{Name: colSalaryMin, Required: true},
		{Name: colSalaryMax, Required: true},
		{Name: colCategories, Required: true},
		{Name: colTitle, Required: true},
		{Name: colSalaryType},
		{Name: colPositionLevel, Default: "Not Specified"},
		{Name: colMinExperience, Default: "0"},
		{Name: colCompanyName},
		{Name: colExpiryDate},
		{Name: colNewPosting},
		{Name: colOrigPosting},
	}}
}

// Validate checks the header row for required columns and returns a
// SchemaError naming all of the missing ones.
func (s Schema) Validate(header []string) error {
	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[name] = true
	}

	var missing []string
	for _, col := range s.Columns {
		if col.Required && !present[col.Name] {
			missing = append(missing, col.Name)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}

// indexOf maps column names to their position in the header, or -1 when
// the column is absent.
func indexOf(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	return idx
}

// cell returns the value of the named column in a record, or the empty
// string when the column is absent or the record is short.
func cell(record []string, idx map[string]int, name string) (string, bool) {
	i, ok := idx[name]
	if !ok || i >= len(record) {
		return "", false
	}
	return record[i], true
}
