package output

import (
	"fmt"
	"strings"

	"github.com/carescan/proforma/internal/domain"
)

// GenerateReport writes results to dir in the named format and returns the
// files written. "all" writes the console summary plus both CSV exports and JSON.
func GenerateReport(results *domain.ProformaResult, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var files []string
		for _, f := range []Formatter{ConsoleFormatter{}, CSVSummarizer{}, CSVDetailedExporter{}, JSONFormatter{}} {
			name, err := WriteFormatted(f, results, dir)
			if err != nil {
				return files, fmt.Errorf("%s report: %w", f.Name(), err)
			}
			files = append(files, name)
		}
		return files, nil
	}
	f := GetFormatterByName(format)
	if f == nil {
		return nil, fmt.Errorf("%w: %q. Try one of: all, %s (aliases: %s)", ErrUnknownFormat, format,
			strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	name, err := WriteFormatted(f, results, dir)
	if err != nil {
		return nil, err
	}
	return []string{name}, nil
}
