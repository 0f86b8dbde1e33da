package output

import (
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/carescan/proforma/internal/domain"
)

// YAMLFormatter renders the run metadata, annual summary and metrics as YAML.
// Values go through the JSON encoding first so keys match the JSON output.
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string      { return "yaml" }
func (y YAMLFormatter) Extension() string { return "yaml" }

func (y YAMLFormatter) Format(results *domain.ProformaResult) ([]byte, error) {
	doc := struct {
		Metadata      domain.RunMetadata        `json:"metadata"`
		AnnualSummary []domain.AnnualSummaryRow `json:"annual_summary"`
		Metrics       domain.FinancialMetrics   `json:"financial_metrics"`
		Warnings      []string                  `json:"warnings,omitempty"`
	}{results.Metadata, results.AnnualSummary, results.Metrics, results.Warnings.Strings()}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("yaml: encode: %w", err)
	}
	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("yaml: decode: %w", err)
	}
	return yaml.Marshal(generic)
}
