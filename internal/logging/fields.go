package logging

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldRunID     = "run_id"
	FieldOperation = "operation"
	FieldFile      = "file"
	FieldFormat    = "format"
	FieldYears     = "years"
	FieldWarnings  = "warnings"
	FieldDuration  = "duration_ms"
	FieldError     = "error"
)

// Components
const (
	ComponentApp         = "app"
	ComponentCalculation = "calculation"
	ComponentConfig      = "config"
	ComponentOutput      = "output"
	ComponentStore       = "store"
)
