package schema

import (
	"errors"
)

var (
	ErrNotExist = errors.New("not_exist_record")

	ErrInsufficientBalance = errors.New("insufficient_balance")
	ErrSuffixNotFound      = errors.New("suffix_not_found")
	ErrAlreadyRegistered   = errors.New("already_registered")
	ErrNotFound            = errors.New("not_found")
	ErrUnpricedLength      = errors.New("unpriced_length")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrOverflow            = errors.New("overflow")
	ErrMaintenanceMode     = errors.New("maintenance_mode")

	ErrInvalidArgument = errors.New("invalid_argument")
	ErrLedgerCall      = errors.New("ledger_call_failed")
)

// ErrKinds lists the errors an action may be rejected with.
var ErrKinds = []error{
	ErrInsufficientBalance,
	ErrSuffixNotFound,
	ErrAlreadyRegistered,
	ErrNotFound,
	ErrUnpricedLength,
	ErrUnauthorized,
	ErrOverflow,
	ErrMaintenanceMode,
	ErrInvalidArgument,
	ErrLedgerCall,
}

// ErrorKind returns the kind an action error was raised with, or "internal_error".
func ErrorKind(err error) string {
	for _, kind := range ErrKinds {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return "internal_error"
}
