package models

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RuleMode is the way an AllocationRule claims part of a deposit.
type RuleMode string

const (
	RuleModeFixed   RuleMode = "FIXED"
	RuleModePercent RuleMode = "PERCENT"
)

// MaxBasisPoints is 100%.
const MaxBasisPoints = 10000

// AllocationRule is an instruction how to split a deposit. FIXED rules claim
// an amount in cents, PERCENT rules a share of what FIXED rules left over.
type AllocationRule struct {
	DefaultModel
	AccountID          string    `json:"accountId" gorm:"index;not null" example:"demo-user"`                             // Account owning the rule
	FundID             uuid.UUID `json:"fundId" gorm:"type:uuid;not null" example:"4e743e94-6a4b-44d6-aba5-d77c87103ff7"` // Fund receiving the allocation
	Fund               *Fund     `json:"-"`
	Mode               RuleMode  `json:"mode" gorm:"not null" example:"PERCENT"`         // FIXED or PERCENT
	FixedCents         *int64    `json:"fixedCents" example:"20000"`                     // Set for FIXED rules only
	PercentBasisPoints *int64    `json:"percentBasisPoints" example:"2500"`              // Set for PERCENT rules only, 1 to 10000
	Priority           int       `json:"priority" gorm:"not null;default:0" example:"1"` // Lower priorities are applied first
	Active             bool      `json:"active" example:"true"`                          // Inactive rules are ignored
}

// BeforeSave verifies that exactly the amount field matching the mode is set.
func (r *AllocationRule) BeforeSave(_ *gorm.DB) error {
	if r.AccountID == "" {
		return ErrAccountIDEmpty
	}

	return r.Validate()
}

// BeforeCreate verifies that the fund belongs to the same account.
func (r *AllocationRule) BeforeCreate(tx *gorm.DB) error {
	err := r.DefaultModel.BeforeCreate(tx)
	if err != nil {
		return err
	}

	_, err = findFund(tx, r.AccountID, r.FundID)
	if err != nil {
		return err
	}

	return nil
}

// Validate checks the mode and amount fields for consistency.
func (r AllocationRule) Validate() error {
	switch r.Mode {
	case RuleModeFixed:
		if r.FixedCents == nil || *r.FixedCents <= 0 || r.PercentBasisPoints != nil {
			return ErrRuleFixedCents
		}
	case RuleModePercent:
		if r.PercentBasisPoints == nil || *r.PercentBasisPoints < 1 || *r.PercentBasisPoints > MaxBasisPoints || r.FixedCents != nil {
			return ErrRulePercent
		}
	default:
		return fmt.Errorf("%w, got '%s'", ErrRuleModeInvalid, r.Mode)
	}

	return nil
}
