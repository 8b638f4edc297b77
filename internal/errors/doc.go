// Package errors provides error handling conventions for the projkit CLI and
// libraries.
//
// It re-exports the wrapping helpers of github.com/cockroachdb/errors so that
// every package wraps errors the same way, defines a few shared sentinel
// errors, and carries the [ExitError] type used by the CLI to map failures
// onto process exit codes.
//
// # Wrapping
//
//	if err := os.MkdirAll(dir, 0o700); err != nil {
//	    return errors.Wrapf(err, "creating %s", dir)
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, configuration, etc.)
//   - ExitSystem (2): System-related error (I/O, permissions, etc.)
//
// [Code] resolves the exit code for any error, looking through wrapping:
//
//	err := errors.NewUserError(errors.ErrInvalidConfig, "Run: projkit config edit")
//	os.Exit(errors.Code(err))
package errors
