package apperrors

import "strings"

// ValidationError describes one rejected form field.
type ValidationError struct {
	Field  string
	Value  any
	ErrStr string
}

func (ve ValidationError) Error() string {
	if len(ve.Field) > 0 {
		return ve.Field + ": " + ve.ErrStr
	}
	return ve.ErrStr
}

// ValidationErrors collects every rejected field of a form submission.
type ValidationErrors []ValidationError

func (ves ValidationErrors) Error() string {
	parts := make([]string, 0, len(ves))
	for _, ve := range ves {
		parts = append(parts, ve.Error())
	}
	return strings.Join(parts, "; ")
}

// Fields returns the names of the rejected fields in order.
func (ves ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(ves))
	for _, ve := range ves {
		fields = append(fields, ve.Field)
	}
	return fields
}
