package ledger

import (
	"time"

	"github.com/fundledger/backend/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BackupVersion is the version of the backup format written by ExportBackup.
const BackupVersion = 1

// Backup is a full snapshot of the funds, allocation rules, periods and
// transactions of an account.
type Backup struct {
	Version         int                     `json:"version" example:"1"`                         // Format version, missing for legacy backups
	CreationTime    time.Time               `json:"creationTime" example:"2024-05-14T09:12:00Z"` // Time the backup was made
	Funds           []models.Fund           `json:"funds"`
	AllocationRules []models.AllocationRule `json:"allocationRules"`
	Periods         []models.Period         `json:"periods"`
	Transactions    []models.Transaction    `json:"transactions"`
}

// ExportBackup reads all backed up resources of the account.
func ExportBackup(db *gorm.DB, accountID string) (Backup, error) {
	backup := Backup{
		Version:      BackupVersion,
		CreationTime: db.NowFunc(),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		scope := func() *gorm.DB {
			return tx.Where("account_id = ?", accountID).Order("created_at ASC, id ASC")
		}

		if err := scope().Find(&backup.Funds).Error; err != nil {
			return err
		}

		if err := scope().Find(&backup.AllocationRules).Error; err != nil {
			return err
		}

		if err := scope().Find(&backup.Periods).Error; err != nil {
			return err
		}

		return scope().Find(&backup.Transactions).Error
	})
	if err != nil {
		return Backup{}, err
	}

	return backup, nil
}

// ImportBackup replaces all backed up resources of the account with the
// contents of the backup in one database transaction. IDs are kept, the
// account id of every record is replaced with accountID.
//
// Allocation runs and lines reference the replaced periods and funds and are
// removed as well. Audit log entries are kept.
func ImportBackup(db *gorm.DB, accountID string, backup Backup) error {
	if backup.Version > BackupVersion || backup.Version < 0 {
		return ErrBackupVersion
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		runs := tx.Model(&models.AllocationRun{}).Select("id").Where("account_id = ?", accountID)
		err := tx.Where("run_id IN (?)", runs).Delete(&models.AllocationLine{}).Error
		if err != nil {
			return err
		}

		// The order is important here since there are foreign keys to consider!
		resources := []any{
			&models.AllocationRun{},
			&models.AllocationRule{},
			&models.Transaction{},
			&models.Fund{},
			&models.Period{},
		}

		for _, model := range resources {
			err := tx.Where("account_id = ?", accountID).Delete(model).Error
			if err != nil {
				return err
			}
		}

		for i := range backup.Periods {
			backup.Periods[i].AccountID = accountID
		}
		for i := range backup.Funds {
			backup.Funds[i].AccountID = accountID
		}
		for i := range backup.AllocationRules {
			backup.AllocationRules[i].AccountID = accountID
		}
		for i := range backup.Transactions {
			backup.Transactions[i].AccountID = accountID
		}

		// Parents before children
		if len(backup.Periods) > 0 {
			if err := tx.Omit(clause.Associations).Create(&backup.Periods).Error; err != nil {
				return err
			}
		}

		if len(backup.Funds) > 0 {
			if err := tx.Omit(clause.Associations).Create(&backup.Funds).Error; err != nil {
				return err
			}
		}

		if len(backup.AllocationRules) > 0 {
			if err := tx.Omit(clause.Associations).Create(&backup.AllocationRules).Error; err != nil {
				return err
			}
		}

		if len(backup.Transactions) > 0 {
			if err := tx.Omit(clause.Associations).Create(&backup.Transactions).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	log.Info().
		Str("account", accountID).
		Int("funds", len(backup.Funds)).
		Int("rules", len(backup.AllocationRules)).
		Int("periods", len(backup.Periods)).
		Int("transactions", len(backup.Transactions)).
		Msg("backup imported")

	return nil
}
