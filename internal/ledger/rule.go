package ledger

import (
	"fmt"

	"github.com/fundledger/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateAllocationRule validates and stores an active rule. The fund must
// belong to the account and the active PERCENT rules together must not
// exceed 100%.
func CreateAllocationRule(db *gorm.DB, accountID string, rule models.AllocationRule) (models.AllocationRule, error) {
	rule.ID = uuid.Nil
	rule.AccountID = accountID
	rule.Active = true

	err := rule.Validate()
	if err != nil {
		return models.AllocationRule{}, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if rule.Mode == models.RuleModePercent {
			var claimed int64
			err := tx.Model(&models.AllocationRule{}).
				Select("COALESCE(SUM(percent_basis_points), 0)").
				Where("account_id = ? AND active = ? AND mode = ?", accountID, true, models.RuleModePercent).
				Scan(&claimed).Error
			if err != nil {
				return err
			}

			if claimed+*rule.PercentBasisPoints > models.MaxBasisPoints {
				return fmt.Errorf("%w, %d basis points are already claimed", ErrPercentTotal, claimed)
			}
		}

		return tx.Create(&rule).Error
	})
	if err != nil {
		return models.AllocationRule{}, err
	}

	return rule, nil
}

// DeactivateAllocationRule stops a rule from being applied to future deposits.
func DeactivateAllocationRule(db *gorm.DB, accountID string, id uuid.UUID) (models.AllocationRule, error) {
	var rule models.AllocationRule
	err := db.Where("id = ? AND account_id = ?", id, accountID).First(&rule).Error
	if err != nil {
		return models.AllocationRule{}, err
	}

	if !rule.Active {
		return rule, nil
	}

	err = db.Model(&rule).Update("active", false).Error
	if err != nil {
		return models.AllocationRule{}, err
	}
	rule.Active = false

	return rule, nil
}

// RuleWithFund is a rule together with the fund it allocates to.
type RuleWithFund struct {
	models.AllocationRule
	FundName string `json:"fundName" example:"Holidays"`
}

// ListAllocationRules returns the active rules of the account in the order
// the waterfall applies them.
func ListAllocationRules(db *gorm.DB, accountID string) ([]RuleWithFund, error) {
	rules, err := ActiveRules(db.Preload("Fund"), accountID)
	if err != nil {
		return nil, err
	}

	result := make([]RuleWithFund, len(rules))
	for i, rule := range rules {
		result[i] = RuleWithFund{AllocationRule: rule}
		if rule.Fund != nil {
			result[i].FundName = rule.Fund.Name
		}
	}

	return result, nil
}
