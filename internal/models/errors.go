package models

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the ledger wraps exactly one of these,
// callers classify errors with errors.Is.
var (
	ErrGeneral            = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound   = errors.New("there is no")
	ErrValidation         = errors.New("invalid input")
	ErrConflict           = errors.New("conflict")
	ErrInvariantViolation = errors.New("ledger invariant violated")
)

var (
	ErrAmountNotPositive    = fmt.Errorf("%w: amounts must be larger than zero", ErrValidation)
	ErrTransactionType      = fmt.Errorf("%w: the transaction type is not valid", ErrValidation)
	ErrTransactionImmutable = fmt.Errorf("%w: transactions cannot be changed after creation, record a correcting transaction instead", ErrValidation)
	ErrAuditLogImmutable    = fmt.Errorf("%w: audit log entries cannot be changed", ErrValidation)
	ErrFundNameEmpty        = fmt.Errorf("%w: the fund name must not be empty", ErrValidation)
	ErrAccountIDEmpty       = fmt.Errorf("%w: the account id must not be empty", ErrValidation)
	ErrRuleModeInvalid      = fmt.Errorf("%w: the allocation rule mode must be FIXED or PERCENT", ErrValidation)
	ErrRuleFixedCents       = fmt.Errorf("%w: FIXED allocation rules need a positive fixed amount and no percentage", ErrValidation)
	ErrRulePercent          = fmt.Errorf("%w: PERCENT allocation rules need between 1 and 10000 basis points and no fixed amount", ErrValidation)
	ErrPeriodMonthInvalid   = fmt.Errorf("%w: the month of a period must be between 1 and 12", ErrValidation)
	ErrPeriodStatusInvalid  = fmt.Errorf("%w: the period status must be OPEN or CLOSED", ErrValidation)
	ErrCurrencyInvalid      = fmt.Errorf("%w: the currency must be a valid ISO 4217 currency code", ErrValidation)

	ErrPeriodNotUnique  = fmt.Errorf("%w: a period for this month already exists", ErrConflict)
	ErrSettingNotUnique = fmt.Errorf("%w: settings for this account already exist", ErrConflict)
	ErrIDNotUnique      = fmt.Errorf("%w: a resource with this id already exists", ErrConflict)
)
