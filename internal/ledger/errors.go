package ledger

import (
	"fmt"

	"github.com/fundledger/backend/internal/models"
)

var (
	ErrNegativeDeposit   = fmt.Errorf("%w: the deposit must not be negative", models.ErrValidation)
	ErrTransferSameFund  = fmt.Errorf("%w: source and destination fund of a transfer must be different", models.ErrValidation)
	ErrTransactionKind   = fmt.Errorf("%w: only EXPENSE and INCOME transactions can be recorded directly", models.ErrValidation)
	ErrPercentTotal      = fmt.Errorf("%w: active PERCENT allocation rules must not claim more than 100%%", models.ErrValidation)
	ErrFundNotZero       = fmt.Errorf("%w: a fund can only be archived when its balance is zero", models.ErrConflict)
	ErrInsufficientFunds = fmt.Errorf("%w: the fund balance is too low and overspend prevention is active", models.ErrConflict)
	ErrAllocationExceeds = fmt.Errorf("%w: allocations exceed the deposit", models.ErrInvariantViolation)
	ErrBackupVersion     = fmt.Errorf("%w: the backup version is not supported", models.ErrValidation)
)
