// Package logging wraps Zap with the small amount of policy recall needs:
// a trace level below debug, context-aware log methods that pick up trace
// and session correlation fields, config-driven outputs, and an observer-
// backed TestLogger for assertions in tests.
//
// Interactive commands own stdout, so logs go to stderr and/or a file.
// Typical wiring:
//
//	logger, err := logging.NewLogger(cfg)
//	defer logger.Sync()
//	ctx = logging.WithLogger(ctx, logger)
//
// Components deeper down retrieve the logger with FromContext, which falls
// back to a nop logger so call sites never have to nil-check.
package logging
