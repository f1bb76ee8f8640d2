package apperrors

import (
	"errors"
	"strings"
)

type appError struct {
	msg    string
	title  string
	base   error
	causes []error
}

func (e *appError) Error() string {
	return e.msg
}

func (e *appError) Unwrap() error {
	return e.base
}

func (e *appError) Causes() []error {
	return e.causes
}

func (e *appError) New(msg string) Error {
	return &appError{
		msg:   msg,
		title: e.title,
		base:  e,
	}
}

func (e *appError) Msg(msg string) Error {
	return &appError{
		msg:    msg,
		title:  e.title,
		base:   e,
		causes: append([]error{e}, e.causes...),
	}
}

func (e *appError) MsgErr(msg string, errs ...error) Error {
	return &appError{
		msg:    msg,
		title:  e.title,
		base:   e,
		causes: append([]error{e}, errs...),
	}
}

func (e *appError) Err(errs ...error) Error {
	return &appError{
		msg:    e.msg,
		title:  e.title,
		base:   e,
		causes: append([]error{e}, errs...),
	}
}

func (e *appError) WithTitle(title string) Error {
	cp := *e
	cp.title = title
	return &cp
}

// Title falls back to "Error" so dialogs always have a heading.
func (e *appError) Title() string {
	if e.title == "" {
		return "Error"
	}
	return e.title
}

// Detail skips causes whose text repeats the message already printed.
func (e *appError) Detail() string {
	var b strings.Builder
	b.WriteString(e.msg)
	seen := map[string]bool{e.msg: true}
	for _, err := range e.causes {
		if err == nil {
			continue
		}
		text := err.Error()
		if seen[text] {
			continue
		}
		seen[text] = true
		b.WriteString(": ")
		b.WriteString(text)
	}
	return b.String()
}

// Is reports a match against the base chain or any attached cause.
func (e *appError) Is(target error) bool {
	if target == nil {
		return false
	}
	if errors.Is(e.base, target) {
		return true
	}
	for _, err := range e.causes {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// As lets errors.As reach typed causes such as ValidationErrors.
func (e *appError) As(target any) bool {
	for _, err := range e.causes {
		if err != nil && errors.As(err, target) {
			return true
		}
	}
	return false
}

// New creates a root error.
func New(msg string) Error {
	return &appError{msg: msg}
}

// Detail returns the expanded message for any error, using Error.Detail when
// available.
func Detail(err error) string {
	if err == nil {
		return ""
	}
	var appErr Error
	if errors.As(err, &appErr) {
		return appErr.Detail()
	}
	return err.Error()
}

// Title returns the dialog title carried by err, or "Error".
func Title(err error) string {
	var appErr Error
	if errors.As(err, &appErr) {
		return appErr.Title()
	}
	return "Error"
}
