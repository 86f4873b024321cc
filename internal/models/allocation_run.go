package models

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AllocationRun is one execution of the waterfall for a period.
type AllocationRun struct {
	DefaultModel
	AccountID    string           `json:"accountId" gorm:"index;not null" example:"demo-user"`
	PeriodID     uuid.UUID        `json:"periodId" gorm:"type:uuid;not null;index" example:"8d7f8f2b-1d9f-4b43-8d96-6db1a4a3d3c1"`
	Period       *Period          `json:"-"`
	DepositCents int64            `json:"depositCents" gorm:"not null" example:"100000"`
	Hash         string           `json:"hash" gorm:"index" example:"2024-5-100000"` // Diagnostic, not unique
	Lines        []AllocationLine `json:"lines" gorm:"foreignKey:RunID"`
}

// RunHash returns the reproducibility hash of a run.
func RunHash(year, month int, depositCents int64) string {
	return fmt.Sprintf("%d-%d-%d", year, month, depositCents)
}

// BeforeCreate verifies that the period belongs to the same account.
func (r *AllocationRun) BeforeCreate(tx *gorm.DB) error {
	err := r.DefaultModel.BeforeCreate(tx)
	if err != nil {
		return err
	}

	if r.AccountID == "" {
		return ErrAccountIDEmpty
	}

	_, err = FindPeriod(tx, r.AccountID, r.PeriodID)
	return err
}

// AllocationLine is the amount one fund received in a run.
type AllocationLine struct {
	DefaultModel
	RunID       uuid.UUID `json:"runId" gorm:"type:uuid;not null;index" example:"1e0f6f43-0f17-4e8a-b0b3-4b1c5a2d7f11"`
	FundID      uuid.UUID `json:"fundId" gorm:"type:uuid;not null" example:"4e743e94-6a4b-44d6-aba5-d77c87103ff7"`
	Fund        *Fund     `json:"-"`
	AmountCents int64     `json:"amountCents" gorm:"not null" example:"40000"`
	Position    int       `json:"position" gorm:"not null" example:"0"` // Order in which the waterfall produced the line
}
