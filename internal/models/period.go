package models

import (
	"fmt"
	"time"

	"github.com/fundledger/backend/internal/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PeriodStatus is the lifecycle state of a Period.
type PeriodStatus string

const (
	PeriodStatusOpen   PeriodStatus = "OPEN"
	PeriodStatusClosed PeriodStatus = "CLOSED"
)

// Period is one month's accounting cycle of an account.
type Period struct {
	DefaultModel
	AccountID string       `json:"accountId" gorm:"uniqueIndex:idx_period_account_month;not null" example:"demo-user"` // Account owning the period
	Year      int          `json:"year" gorm:"uniqueIndex:idx_period_account_month;not null" example:"2024"`
	Month     int          `json:"month" gorm:"uniqueIndex:idx_period_account_month;not null;check:period_month_valid,month >= 1 AND month <= 12" example:"5"`
	Status    PeriodStatus `json:"status" gorm:"not null" example:"OPEN"`    // OPEN or CLOSED
	StartedAt time.Time    `json:"startedAt" example:"2024-05-01T08:12:44Z"` // Time the period was opened first
	ClosedAt  *time.Time   `json:"closedAt" example:"2024-06-01T07:58:02Z"`  // Set only while the period is CLOSED
}

// NewPeriod returns an open period for the month.
func NewPeriod(accountID string, month types.Month, now time.Time) Period {
	return Period{
		AccountID: accountID,
		Year:      month.Year(),
		Month:     int(month.Month()),
		Status:    PeriodStatusOpen,
		StartedAt: now,
	}
}

// AfterFind updates the timestamps to use UTC as timezone.
func (p *Period) AfterFind(tx *gorm.DB) (err error) {
	err = p.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	p.StartedAt = p.StartedAt.In(time.UTC)
	if p.ClosedAt != nil {
		closedAt := p.ClosedAt.In(time.UTC)
		p.ClosedAt = &closedAt
	}

	return nil
}

// BeforeSave verifies month and status.
func (p *Period) BeforeSave(_ *gorm.DB) error {
	if p.AccountID == "" {
		return ErrAccountIDEmpty
	}

	if p.Month < 1 || p.Month > 12 {
		return ErrPeriodMonthInvalid
	}

	if p.Status != PeriodStatusOpen && p.Status != PeriodStatusClosed {
		return fmt.Errorf("%w, got '%s'", ErrPeriodStatusInvalid, p.Status)
	}

	return nil
}

// Span returns the month the period covers.
func (p Period) Span() types.Month {
	return types.NewMonth(p.Year, time.Month(p.Month))
}

// FindPeriod returns the period with the given id if it belongs to the account.
func FindPeriod(db *gorm.DB, accountID string, id uuid.UUID) (Period, error) {
	var p Period
	err := db.Where("id = ? AND account_id = ?", id, accountID).First(&p).Error
	return p, err
}
