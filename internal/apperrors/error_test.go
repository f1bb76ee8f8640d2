package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorChain(t *testing.T) {
	ErrBase := New("base error")
	assert.Equal(t, "base error", ErrBase.Error())
	assert.ErrorIs(t, ErrBase, ErrBase)

	ErrChild := ErrBase.New("child")
	assert.Equal(t, "child", ErrChild.Error())
	assert.ErrorIs(t, ErrChild, ErrBase)

	cause := fmt.Errorf("disk full")
	wrapped := ErrChild.Err(cause)
	assert.Equal(t, "child", wrapped.Error())
	assert.ErrorIs(t, wrapped, ErrBase)
	assert.ErrorIs(t, wrapped, ErrChild)
	assert.ErrorIs(t, wrapped, cause)

	msg := ErrChild.MsgErr("could not save", cause)
	assert.Equal(t, "could not save", msg.Error())
	assert.ErrorIs(t, msg, ErrBase)
	assert.ErrorIs(t, msg, cause)
	assert.Equal(t, "could not save: child: disk full", msg.Detail())

	other := New("unrelated")
	assert.False(t, errors.Is(msg, other))
}

func TestTitle(t *testing.T) {
	err := New("tenant not found")
	assert.Equal(t, "Error", err.Title())

	titled := err.WithTitle("Tenant Details")
	assert.Equal(t, "Tenant Details", titled.Title())
	assert.Equal(t, "Error", err.Title())

	derived := titled.Msg("no such tenant")
	assert.Equal(t, "Tenant Details", derived.Title())
	assert.Equal(t, "Tenant Details", Title(fmt.Errorf("wrap: %w", derived)))
	assert.Equal(t, "Error", Title(errors.New("plain")))
}

func TestDetail(t *testing.T) {
	assert.Equal(t, "", Detail(nil))
	assert.Equal(t, "plain", Detail(errors.New("plain")))

	err := New("save failed").Err(errors.New("permission denied"))
	assert.Equal(t, "save failed: permission denied", Detail(err))
}

func TestValidationErrors(t *testing.T) {
	ves := ValidationErrors{
		{Field: "phone", Value: "123", ErrStr: "must have at least 10 digits"},
		{Field: "rent", Value: 0, ErrStr: "must be greater than zero"},
	}
	assert.Equal(t, "phone: must have at least 10 digits; rent: must be greater than zero", ves.Error())
	assert.Equal(t, []string{"phone", "rent"}, ves.Fields())

	err := New("invalid tenant").Err(ves)
	var target ValidationErrors
	assert.True(t, errors.As(err.Causes()[1], &target))
	assert.Len(t, target, 2)
}

func TestAsReachesCauses(t *testing.T) {
	base := New("invalid input").WithTitle("Validation Error")
	err := base.Err(ValidationErrors{{Field: "Phone", ErrStr: "is required"}})

	var ves ValidationErrors
	require.True(t, errors.As(err, &ves))
	assert.Equal(t, []string{"Phone"}, ves.Fields())
	assert.True(t, errors.Is(err, base))

	var none ValidationErrors
	assert.False(t, errors.As(New("plain"), &none))
}
