package models

import (
	"gorm.io/gorm"
)

// AuditAction identifies the kind of event an AuditLog entry records.
type AuditAction string

const (
	AuditActionPeriodClosed   AuditAction = "PERIOD_CLOSED"
	AuditActionPeriodReopened AuditAction = "PERIOD_REOPENED"
)

// AuditLog is an append-only record of a state transition.
type AuditLog struct {
	DefaultModel
	AccountID string      `json:"accountId" gorm:"index;not null" example:"demo-user"`
	Action    AuditAction `json:"action" gorm:"not null" example:"PERIOD_CLOSED"`
	Context   string      `json:"context" example:"8d7f8f2b-1d9f-4b43-8d96-6db1a4a3d3c1"` // Free-form context of the event
}

func (a *AuditLog) BeforeSave(_ *gorm.DB) error {
	if a.AccountID == "" {
		return ErrAccountIDEmpty
	}
	return nil
}

// BeforeUpdate rejects all updates.
func (a *AuditLog) BeforeUpdate(_ *gorm.DB) error {
	return ErrAuditLogImmutable
}
