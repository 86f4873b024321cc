package ledger

import (
	"errors"

	"github.com/fundledger/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetSetting returns the settings of the account, creating the defaults
// when none exist yet.
func GetSetting(db *gorm.DB, accountID string) (models.Setting, error) {
	var setting models.Setting
	err := db.Where("account_id = ?", accountID).First(&setting).Error
	if err == nil {
		return setting, nil
	}

	if !errors.Is(err, models.ErrResourceNotFound) {
		return models.Setting{}, err
	}

	setting = models.Setting{AccountID: accountID}
	err = db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "account_id"}}, DoNothing: true}).Create(&setting).Error
	if err != nil {
		return models.Setting{}, err
	}

	setting = models.Setting{}
	err = db.Where("account_id = ?", accountID).First(&setting).Error
	return setting, err
}

// SettingUpdate holds new values for the settings of an account. Nil fields
// are left unchanged.
type SettingUpdate struct {
	MonthlyDepositCents *int64
	OverspendPrevention *bool
	Currency            *string
}

// UpdateSetting applies the update to the settings of the account.
func UpdateSetting(db *gorm.DB, accountID string, update SettingUpdate) (models.Setting, error) {
	var setting models.Setting

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		setting, err = GetSetting(tx, accountID)
		if err != nil {
			return err
		}

		if update.MonthlyDepositCents != nil {
			setting.MonthlyDepositCents = *update.MonthlyDepositCents
		}

		if update.OverspendPrevention != nil {
			setting.OverspendPrevention = *update.OverspendPrevention
		}

		if update.Currency != nil {
			setting.Currency = *update.Currency
		}

		return tx.Save(&setting).Error
	})
	if err != nil {
		return models.Setting{}, err
	}

	return setting, nil
}
