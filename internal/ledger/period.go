package ledger

import (
	"encoding/json"
	"fmt"

	"github.com/fundledger/backend/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// reopenContext is stored as audit context when a period is reopened.
type reopenContext struct {
	PeriodID string `json:"periodId"`
	Reason   string `json:"reason"`
}

// ClosePeriod closes the period. Closing a closed period returns it unchanged
// and records no audit entry.
func ClosePeriod(db *gorm.DB, accountID string, periodID uuid.UUID) (models.Period, error) {
	return transition(db, accountID, periodID, models.PeriodStatusClosed, func(_ models.Period) (string, error) {
		return periodID.String(), nil
	})
}

// ReopenPeriod reopens a closed period, recording the reason in the audit
// entry. An empty reason is accepted. Reopening an open period returns it
// unchanged and records no audit entry.
func ReopenPeriod(db *gorm.DB, accountID string, periodID uuid.UUID, reason string) (models.Period, error) {
	return transition(db, accountID, periodID, models.PeriodStatusOpen, func(_ models.Period) (string, error) {
		raw, err := json.Marshal(reopenContext{PeriodID: periodID.String(), Reason: reason})
		return string(raw), err
	})
}

// transition moves the period to the target status and appends an audit
// entry in the same database transaction.
//
// The status update is conditional on the status that was read, so of two
// concurrent transitions only one changes the row and writes an audit entry.
func transition(db *gorm.DB, accountID string, periodID uuid.UUID, target models.PeriodStatus, auditContext func(models.Period) (string, error)) (models.Period, error) {
	var period models.Period
	changed := false

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		period, err = models.FindPeriod(tx, accountID, periodID)
		if err != nil {
			return err
		}

		if period.Status == target {
			return nil
		}

		updates := map[string]any{"status": target, "closed_at": nil}
		if target == models.PeriodStatusClosed {
			updates["closed_at"] = tx.NowFunc()
		}

		result := tx.Model(&period).Where("status = ?", period.Status).Updates(updates)
		if result.Error != nil {
			return result.Error
		}

		// If another transition won the race, only report its outcome
		won := result.RowsAffected == 1
		period, err = models.FindPeriod(tx, accountID, periodID)
		if err != nil || !won {
			return err
		}

		entry, err := auditContext(period)
		if err != nil {
			return fmt.Errorf("%w: could not encode audit context: %s", models.ErrGeneral, err)
		}

		action := models.AuditActionPeriodClosed
		if target == models.PeriodStatusOpen {
			action = models.AuditActionPeriodReopened
		}

		changed = true
		return tx.Create(&models.AuditLog{
			AccountID: accountID,
			Action:    action,
			Context:   entry,
		}).Error
	})
	if err != nil {
		return models.Period{}, err
	}

	if changed {
		periodTransitions.WithLabelValues(string(target)).Inc()
		log.Info().Str("account", accountID).Str("period", periodID.String()).Str("status", string(target)).Msg("period transition")
	}

	return period, nil
}

// ListPeriods returns the periods of the account, newest first.
func ListPeriods(db *gorm.DB, accountID string) ([]models.Period, error) {
	var periods []models.Period
	err := db.Where("account_id = ?", accountID).Order("year DESC, month DESC").Find(&periods).Error
	return periods, err
}

// ListRuns returns the allocation runs of a period with their lines.
func ListRuns(db *gorm.DB, accountID string, periodID uuid.UUID) ([]models.AllocationRun, error) {
	_, err := models.FindPeriod(db, accountID, periodID)
	if err != nil {
		return nil, err
	}

	var runs []models.AllocationRun
	err = db.
		Preload("Lines", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).
		Where("account_id = ? AND period_id = ?", accountID, periodID).
		Order("created_at ASC").
		Find(&runs).Error

	return runs, err
}

// ListAuditLogs returns the audit log of the account, newest first.
func ListAuditLogs(db *gorm.DB, accountID string) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	err := db.Where("account_id = ?", accountID).Order("created_at DESC").Find(&entries).Error
	return entries, err
}
