package logging

import (
	"fmt"

	"github.com/carescan/proforma/internal/calculation"
)

// EngineLogger adapts a Logger to the calculation engine's printf-style interface.
type EngineLogger struct {
	l *Logger
}

var _ calculation.Logger = EngineLogger{}

// ForEngine returns an engine logger scoped to the calculation component.
func ForEngine(l *Logger) EngineLogger {
	return EngineLogger{l: l.WithComponent(ComponentCalculation)}
}

func (e EngineLogger) Debugf(format string, args ...any) { e.l.Debug(fmt.Sprintf(format, args...)) }
func (e EngineLogger) Infof(format string, args ...any)  { e.l.Info(fmt.Sprintf(format, args...)) }
func (e EngineLogger) Warnf(format string, args ...any)  { e.l.Warn(fmt.Sprintf(format, args...)) }
func (e EngineLogger) Errorf(format string, args ...any) { e.l.Error(fmt.Sprintf(format, args...)) }
