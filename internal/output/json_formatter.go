package output

import (
	json "github.com/goccy/go-json"

	"github.com/carescan/proforma/internal/domain"
)

// JSONFormatter serializes the full proforma result as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string      { return "json" }
func (j JSONFormatter) Extension() string { return "json" }

func (j JSONFormatter) Format(results *domain.ProformaResult) ([]byte, error) {
	return json.MarshalIndent(results, "", "  ")
}
