package calculation

import (
	"time"

	"github.com/carescan/proforma/internal/domain"
)

// Options are engine-wide knobs that do not change between calls.
type Options struct {
	// MovingDayCadence makes every Nth day since projection start a moving day. Zero disables moving days.
	MovingDayCadence int
	// RepresentativeMonth and RepresentativeDay pick the day of each year used for capacity sampling.
	RepresentativeMonth time.Month
	RepresentativeDay   int
	// YearParallelism bounds how many projection years are computed at once.
	YearParallelism int
}

// DefaultOptions returns the standard engine configuration.
func DefaultOptions() Options {
	return Options{
		MovingDayCadence:    5,
		RepresentativeMonth: time.July,
		RepresentativeDay:   1,
		YearParallelism:     4,
	}
}

// Engine runs proforma calculations. All inputs are passed per call, so a
// single Engine can serve concurrent callers.
type Engine struct {
	Options Options
	Logger  Logger
}

// NewEngine creates an engine with default options.
func NewEngine() *Engine {
	return NewEngineWithOptions(DefaultOptions())
}

// NewEngineWithOptions creates an engine with the given options.
func NewEngineWithOptions(opts Options) *Engine {
	if opts.RepresentativeMonth == 0 {
		opts.RepresentativeMonth = time.July
	}
	if opts.RepresentativeDay == 0 {
		opts.RepresentativeDay = 1
	}
	if opts.YearParallelism <= 0 {
		opts.YearParallelism = 1
	}
	return &Engine{Options: opts, Logger: NopLogger{}}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

func (e *Engine) logger() Logger {
	if e.Logger == nil {
		return NopLogger{}
	}
	return e.Logger
}

// warn records a data quality warning and logs it.
func (e *Engine) warn(ws *domain.Warnings, table, record string, year int, format string, args ...any) {
	ws.Add(table, record, year, format, args...)
	w := (*ws)[len(*ws)-1]
	e.logger().Warnf("%s", w.String())
}

// representativeDate is the capacity sampling day of a year.
func (e *Engine) representativeDate(year int) time.Time {
	return time.Date(year, e.Options.RepresentativeMonth, e.Options.RepresentativeDay, 0, 0, 0, 0, time.UTC)
}

func requireTable[T any](rows []T, table, calculation string) error {
	if rows == nil {
		return &domain.ConfigurationError{Table: table, Calculation: calculation}
	}
	return nil
}
