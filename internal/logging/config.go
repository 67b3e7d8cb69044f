package logging

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

// TraceLevel sits one step below Debug and carries request and response
// detail from the remote client.
const TraceLevel = zapcore.DebugLevel - 1

// Output targets.
const (
	OutputStderr = "stderr"
	OutputStdout = "stdout"
)

// Config holds logging configuration.
type Config struct {
	Level  string            `koanf:"level"`
	Format string            `koanf:"format"`
	Output string            `koanf:"output"` // stderr, stdout or a file path
	Caller bool              `koanf:"caller"`
	OTEL   bool              `koanf:"otel"` // also emit through the otel log bridge
	Fields map[string]string `koanf:"fields"`
}

// NewDefaultConfig returns config with defaults suited to an interactive client.
func NewDefaultConfig() *Config {
	return &Config{
		Level:  "info",
		Format: "console",
		Output: OutputStderr,
		Caller: false,
		Fields: map[string]string{
			"service": "projectdeck",
		},
	}
}

// Validate checks config for errors.
func (c *Config) Validate() error {
	if c.Format != "json" && c.Format != "console" {
		return fmt.Errorf("format must be 'json' or 'console', got %q", c.Format)
	}
	if c.Output == "" {
		return fmt.Errorf("output cannot be empty")
	}
	if _, err := LevelFromString(c.Level); err != nil {
		return fmt.Errorf("invalid level %q: %w", c.Level, err)
	}
	for k, v := range c.Fields {
		if k == "" {
			return fmt.Errorf("field key cannot be empty")
		}
		if v == "" {
			return fmt.Errorf("field %q has empty value", k)
		}
	}
	return nil
}

// LevelFromString parses a zap level name, accepting "trace" as well.
func LevelFromString(name string) (zapcore.Level, error) {
	if name == "trace" {
		return TraceLevel, nil
	}
	level, err := zapcore.ParseLevel(name)
	if err != nil {
		return zapcore.InfoLevel, err
	}
	return level, nil
}
