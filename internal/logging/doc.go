// Package logging provides structured logging for projectdeck.
//
// # Overview
//
// Logging package wraps Zap with:
//   - Custom Trace level (-2, below Debug)
//   - JSON or console encoding
//   - Output to stderr, stdout or a file (the terminal view owns stdout)
//   - Automatic request ID injection from context
//
// # Usage
//
//	cfg := logging.NewDefaultConfig()
//	logger, err := logging.NewLogger(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer logger.Sync()
//
//	ctx = logging.WithRequestID(ctx, "0b6e1c1e-6b7f-4f0e-9f0a-3f1c2d4e5f60")
//	logger.Info(ctx, "projects loaded", zap.Int("count", 3))
//
// # Testing
//
// NewTestLogger records entries in memory:
//
//	logger := logging.NewTestLogger()
//	svc := NewThing(logger.Logger)
//	logger.AssertLogged(t, zapcore.ErrorLevel, "request failed")
package logging
