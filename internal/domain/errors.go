package domain

import (
	"errors"
	"fmt"
)

// ErrMissingTable is wrapped by every ConfigurationError.
var ErrMissingTable = errors.New("required table missing")

// ConfigurationError reports that a calculation cannot run because a table it depends on is absent.
type ConfigurationError struct {
	Table       string
	Calculation string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s table is required", e.Calculation, e.Table)
}

func (e *ConfigurationError) Unwrap() error { return ErrMissingTable }

// Table names used in errors and warnings.
const (
	TablePersonnel      = "personnel"
	TableEquipment      = "equipment"
	TableExams          = "exams"
	TableRevenueSources = "revenue_sources"
	TableOtherItems     = "other_items"
)

// Warning is a recoverable, row-scoped data quality problem.
type Warning struct {
	Table   string `json:"table"`
	Record  string `json:"record"`
	Year    int    `json:"year,omitempty"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	if w.Year != 0 {
		return fmt.Sprintf("%s[%s] %d: %s", w.Table, w.Record, w.Year, w.Message)
	}
	return fmt.Sprintf("%s[%s]: %s", w.Table, w.Record, w.Message)
}

// Warnings is an ordered collection of data quality warnings.
type Warnings []Warning

// Add appends a warning.
func (ws *Warnings) Add(table, record string, year int, format string, args ...any) {
	*ws = append(*ws, Warning{Table: table, Record: record, Year: year, Message: fmt.Sprintf(format, args...)})
}

// Strings renders each warning on its own line.
func (ws Warnings) Strings() []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.String()
	}
	return out
}
