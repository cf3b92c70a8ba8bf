package common

import "errors"

var (
	ErrEntityNotFound              = errors.New("entity not found")
	ErrUnrecognizedCustomerType    = errors.New("unrecognized customer type")
	ErrUnrecognizedTransactionType = errors.New("unrecognized transaction type")
	ErrClassificationUnavailable   = errors.New("redemption classification unavailable")
	ErrBackendUnavailable          = errors.New("backend unavailable")
	ErrMissingIdentityDocument     = errors.New("customer has no identity document")
	ErrValidation                  = errors.New("validation failed")
	ErrInvalidSelection            = errors.New("invalid transaction selection")
	ErrNoReportOutput              = errors.New("no report output selected")
	ErrFilePathEmpty               = errors.New("file path is empty")
	ErrRender                      = errors.New("notice render failed")
	ErrStorageNotConfigured        = errors.New("cloud storage not configured")
)
