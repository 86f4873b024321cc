package models

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"
	"gorm.io/gorm"
)

// DefaultCurrency is used for accounts that never configured a currency.
const DefaultCurrency = "AUD"

// Setting holds the per-account configuration.
type Setting struct {
	DefaultModel
	AccountID           string `json:"accountId" gorm:"uniqueIndex;not null" example:"demo-user"`
	MonthlyDepositCents int64  `json:"monthlyDepositCents" gorm:"not null" example:"350000"` // Deposit used when a period is started without one
	OverspendPrevention bool   `json:"overspendPrevention" example:"false"`                  // Reject expenses and transfers exceeding the fund balance
	Currency            string `json:"currency" gorm:"not null" example:"AUD"`               // ISO 4217 code
}

// BeforeSave defaults and validates the currency.
func (s *Setting) BeforeSave(_ *gorm.DB) error {
	if s.AccountID == "" {
		return ErrAccountIDEmpty
	}

	if s.MonthlyDepositCents < 0 {
		return fmt.Errorf("%w: the monthly deposit must not be negative", ErrValidation)
	}

	s.Currency = strings.ToUpper(strings.TrimSpace(s.Currency))
	if s.Currency == "" {
		s.Currency = DefaultCurrency
	}

	unit, err := currency.ParseISO(s.Currency)
	if err != nil {
		return fmt.Errorf("%w, got '%s'", ErrCurrencyInvalid, s.Currency)
	}
	s.Currency = unit.String()

	return nil
}
