// Package logging provides structured logging for projkit using slog.
//
// Text output goes through [Handler], which colorizes level and keys when
// the writer is a terminal and masks values of secret-looking keys. JSON
// output uses the standard library handler. [MultiHandler] fans a record out
// to several handlers, which the CLI uses for --log-file.
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(verbosity),
//		Format: logging.ParseFormat(format),
//	})
//	ctx = logging.NewContext(ctx, logger)
//
// Tests should use [ForTest] so log output lands in the test log.
package logging
