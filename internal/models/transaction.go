package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionType determines in which direction a transaction moves money.
type TransactionType string

const (
	TransactionTypeExpense     TransactionType = "EXPENSE"
	TransactionTypeIncome      TransactionType = "INCOME"
	TransactionTypeAllocation  TransactionType = "ALLOCATION"
	TransactionTypeTransferOut TransactionType = "TRANSFER_OUT"
	TransactionTypeTransferIn  TransactionType = "TRANSFER_IN"
)

// Sign returns -1 for types that take money out of a fund, 1 for types that
// add money and 0 for unknown types.
func (t TransactionType) Sign() int64 {
	switch t {
	case TransactionTypeExpense, TransactionTypeTransferOut:
		return -1
	case TransactionTypeIncome, TransactionTypeAllocation, TransactionTypeTransferIn:
		return 1
	default:
		return 0
	}
}

// Valid reports if t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t.Sign() != 0
}

// Transaction is an immutable ledger entry. The amount is always a positive
// magnitude, the sign is derived from the type.
type Transaction struct {
	DefaultModel
	AccountID       string          `json:"accountId" gorm:"index;not null" example:"demo-user"`                                     // Account owning the transaction
	FundID          *uuid.UUID      `json:"fundId" gorm:"type:uuid;index" example:"4e743e94-6a4b-44d6-aba5-d77c87103ff7"`            // Fund, null for unassigned money
	Fund            *Fund           `json:"fund,omitempty"`                                                                          // Only set when listing
	Type            TransactionType `json:"type" gorm:"not null" example:"EXPENSE"`                                                  // Direction of the money movement
	AmountCents     int64           `json:"amountCents" gorm:"not null;check:amount_cents_positive,amount_cents > 0" example:"1250"` // Magnitude in cents
	Date            time.Time       `json:"date" example:"2024-05-14T00:00:00Z"`                                                     // Effective date
	PeriodID        *uuid.UUID      `json:"periodId" gorm:"type:uuid;index" example:"8d7f8f2b-1d9f-4b43-8d96-6db1a4a3d3c1"`          // Period the transaction belongs to
	Period          *Period         `json:"-"`
	TransferGroupID *uuid.UUID      `json:"transferGroupId" gorm:"type:uuid;index" example:"b5b7b3c4-0e0f-4f0a-9d1b-2d0bbd5e0b9e"` // Links the two legs of a transfer
	Payee           string          `json:"payee" example:"Corner store"`
	Note            string          `json:"note" example:"Milk and bread"`
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return
}

// BeforeSave
//   - trims whitespace from string fields
//   - normalizes nil UUID references to nil
//   - defaults the date to the current time and enforces UTC for it
//   - verifies type and amount
func (t *Transaction) BeforeSave(tx *gorm.DB) error {
	t.Payee = strings.TrimSpace(t.Payee)
	t.Note = strings.TrimSpace(t.Note)

	if t.FundID != nil && *t.FundID == uuid.Nil {
		t.FundID = nil
	}

	if t.PeriodID != nil && *t.PeriodID == uuid.Nil {
		t.PeriodID = nil
	}

	if t.Date.IsZero() {
		t.Date = tx.NowFunc()
	}
	t.Date = t.Date.In(time.UTC)

	if t.AccountID == "" {
		return ErrAccountIDEmpty
	}

	if !t.Type.Valid() {
		return fmt.Errorf("%w, got '%s'", ErrTransactionType, t.Type)
	}

	if t.AmountCents <= 0 {
		return ErrAmountNotPositive
	}

	return nil
}

// BeforeCreate verifies that fund and period belong to the same account.
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	err := t.DefaultModel.BeforeCreate(tx)
	if err != nil {
		return err
	}

	if t.FundID != nil {
		_, err := findFund(tx, t.AccountID, *t.FundID)
		if err != nil {
			return err
		}
	}

	if t.PeriodID != nil {
		_, err := FindPeriod(tx, t.AccountID, *t.PeriodID)
		if err != nil {
			return err
		}
	}

	return nil
}

// BeforeUpdate rejects all updates. Corrections are recorded as new transactions.
func (t *Transaction) BeforeUpdate(_ *gorm.DB) error {
	return ErrTransactionImmutable
}

// SignedCents returns the amount with the sign of the transaction type applied.
func (t Transaction) SignedCents() int64 {
	return t.Type.Sign() * t.AmountCents
}
