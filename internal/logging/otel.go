package logging

import (
	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// WithOTEL returns a logger that also emits every entry through the otel
// zap bridge. A nil provider returns l unchanged.
func (l *Logger) WithOTEL(name string, provider log.LoggerProvider) *Logger {
	if provider == nil {
		return l
	}
	otelCore := otelzap.NewCore(name, otelzap.WithLoggerProvider(provider))
	z := l.zap.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, otelCore)
	}))
	return l.derive(z)
}
