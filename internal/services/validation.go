package services

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"tenant-ledger/internal/apperrors"
	"tenant-ledger/internal/models"
)

const minPhoneDigits = 10

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// V returns the shared validator with the ledger rules registered.
func V() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			if label := f.Tag.Get("label"); label != "" {
				return label
			}
			return f.Name
		})
		_ = validate.RegisterValidation("phone", phoneValidator)
		_ = validate.RegisterValidation("monthyear", monthYearValidator)
		_ = validate.RegisterValidation("paymentmethod", paymentMethodValidator)
		_ = validate.RegisterValidation("doctype", docTypeValidator)
	})
	return validate
}

// phoneValidator accepts at least ten characters, all of them digits.
func phoneValidator(fl validator.FieldLevel) bool {
	phone := fl.Field().String()
	if len(phone) < minPhoneDigits {
		return false
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func monthYearValidator(fl validator.FieldLevel) bool {
	_, err := models.ParseMonthYear(fl.Field().String())
	return err == nil
}

func paymentMethodValidator(fl validator.FieldLevel) bool {
	return models.IsPaymentMethod(fl.Field().String())
}

func docTypeValidator(fl validator.FieldLevel) bool {
	return models.IsDocumentType(fl.Field().String())
}

// Validate checks v against its validate tags and reports every failing field.
func Validate(v any) error {
	err := V().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return ErrValidation.Err(err)
	}

	ves := make(apperrors.ValidationErrors, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		ves = append(ves, apperrors.ValidationError{
			Field:  fe.Field(),
			Value:  fe.Value(),
			ErrStr: describe(fe),
		})
	}
	return ErrValidation.Err(ves)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if _, ok := fe.Value().(time.Time); ok {
			return "is required (YYYY-MM-DD)"
		}
		return "is required"
	case "phone":
		return "must be at least 10 digits with no spaces or symbols"
	case "email":
		return "is not a valid e-mail address"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "cannot be negative"
	case "monthyear":
		return "must be in MM-YYYY format"
	case "paymentmethod":
		return "must be one of " + strings.Join(models.PaymentMethods, ", ")
	case "doctype":
		return "must be one of " + strings.Join(models.DocumentTypes, ", ")
	case "max":
		return "is too long"
	default:
		return "is invalid"
	}
}

// FieldErrors extracts the per-field failures from an error returned by Validate.
func FieldErrors(err error) apperrors.ValidationErrors {
	var ves apperrors.ValidationErrors
	if errors.As(err, &ves) {
		return ves
	}
	return nil
}
