package services

import "tenant-ledger/internal/apperrors"

var (
	ErrValidation     apperrors.Error = apperrors.New("please correct the form").WithTitle("Invalid Input")
	ErrTenantInactive apperrors.Error = apperrors.New("tenant is inactive").WithTitle("Inactive Tenant")
	ErrReceipt        apperrors.Error = apperrors.New("could not produce receipt").WithTitle("Receipt Error")
	ErrExport         apperrors.Error = apperrors.New("could not export ledger").WithTitle("Export Error")
)
