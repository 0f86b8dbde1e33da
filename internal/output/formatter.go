package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/carescan/proforma/internal/domain"
)

// ErrUnknownFormat is returned by Lookup for names that match no formatter or alias.
var ErrUnknownFormat = errors.New("unknown output format")

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(results *domain.ProformaResult) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
	// Extension is the file extension used when the output is written to disk.
	Extension() string
}

// FormatterFunc adapter to allow ordinary functions to act as a Formatter.
type FormatterFunc struct {
	ID  string
	Ext string
	F   func(*domain.ProformaResult) ([]byte, error)
}

func (ff FormatterFunc) Format(r *domain.ProformaResult) ([]byte, error) { return ff.F(r) }
func (ff FormatterFunc) Name() string                                    { return ff.ID }
func (ff FormatterFunc) Extension() string                               { return ff.Ext }

// WriteFormatted runs a formatter and writes output to a timestamped file in dir.
// The formatter name is part of the file name so "all" never overwrites itself.
func WriteFormatted(f Formatter, results *domain.ProformaResult, dir string) (string, error) {
	data, err := f.Format(results)
	if err != nil {
		return "", err
	}
	filename := filepath.Join(dir, fmt.Sprintf("proforma_report_%s_%s.%s", time.Now().Format("20060102_150405"), f.Name(), f.Extension()))
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}

// builtInFormatters stores available formatters.
var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	CSVSummarizer{},
	CSVDetailedExporter{},
	JSONFormatter{},
	YAMLFormatter{},
}

// GetFormatterByName fetches a registered formatter, or nil.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// Lookup is GetFormatterByName with an error for unknown names.
func Lookup(name string) (Formatter, error) {
	if f := GetFormatterByName(name); f != nil {
		return f, nil
	}
	return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownFormat, name, strings.Join(AvailableFormatterNames(), ", "))
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"text":         "console",
	"summary":      "console",
	"csv-summary":  "csv",
	"annual-csv":   "csv",
	"csv-detailed": "detailed-csv",
	"monthly-csv":  "detailed-csv",
	"json-pretty":  "json",
	"yml":          "yaml",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
