// Package apperrors provides chainable application errors. Every error can be
// derived from a sentinel so callers can match it with errors.Is, while still
// carrying a short message that is safe to show in a dialog.
package apperrors

// Error extends the standard error interface with derivation and wrapping
// helpers. All methods return a new Error and never mutate the receiver.
type Error interface {
	error
	Unwrap() error

	New(msg string) Error                  // new error derived from this one
	Msg(msg string) Error                  // new message, wraps this error
	MsgErr(msg string, err ...error) Error // new message, wraps this error and errs
	Err(err ...error) Error                // same message, attaches errs
	WithTitle(title string) Error          // dialog title shown to the user
	Title() string
	Detail() string // message followed by every wrapped cause
	Causes() []error
}
