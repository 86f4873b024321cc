package ledger

import (
	"strings"

	"github.com/fundledger/backend/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// FundWithBalance is a fund together with its derived balance.
type FundWithBalance struct {
	models.Fund
	BalanceCents int64 `json:"balanceCents" example:"12500"`
}

// FundEditable are the fields of a fund that can be changed after creation.
type FundEditable struct {
	Name         string `json:"name" example:"Holidays"`
	Description  string `json:"description" example:"Two weeks of surfing"`
	Color        string `json:"color" example:"#0ea5e9"`
	Icon         string `json:"icon" example:"plane"`
	TargetCents  *int64 `json:"targetCents" example:"250000"`
	DisplayOrder int    `json:"displayOrder" example:"2"`
}

// CreateFund creates an active fund for the account.
func CreateFund(db *gorm.DB, accountID string, editable FundEditable) (models.Fund, error) {
	fund := models.Fund{
		AccountID:    accountID,
		Name:         editable.Name,
		Description:  editable.Description,
		Color:        editable.Color,
		Icon:         editable.Icon,
		TargetCents:  editable.TargetCents,
		DisplayOrder: editable.DisplayOrder,
		Active:       true,
	}

	err := db.Create(&fund).Error
	return fund, err
}

// UpdateFund changes the named fields of a fund.
func UpdateFund(db *gorm.DB, accountID string, id uuid.UUID, editable FundEditable, fields []string) (models.Fund, error) {
	fund, err := models.FindFund(db, accountID, id)
	if err != nil {
		return models.Fund{}, err
	}

	if len(fields) == 0 {
		return fund, nil
	}

	selected := make([]any, len(fields))
	for i, field := range fields {
		if field == "Name" && strings.TrimSpace(editable.Name) == "" {
			return models.Fund{}, models.ErrFundNameEmpty
		}
		selected[i] = field
	}

	err = db.Model(&fund).Select("", selected...).Updates(models.Fund{
		Name:         strings.TrimSpace(editable.Name),
		Description:  strings.TrimSpace(editable.Description),
		Color:        strings.TrimSpace(editable.Color),
		Icon:         strings.TrimSpace(editable.Icon),
		TargetCents:  editable.TargetCents,
		DisplayOrder: editable.DisplayOrder,
	}).Error
	if err != nil {
		return models.Fund{}, err
	}

	return models.FindFund(db, accountID, id)
}

// ArchiveFund deactivates a fund whose balance is exactly zero. A fund
// holding money or debt cannot be archived.
//
// The balance check and the update run in one database transaction but are
// not serialized against concurrent writers.
func ArchiveFund(db *gorm.DB, accountID string, id uuid.UUID) (models.Fund, error) {
	var fund models.Fund

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		fund, err = models.FindFund(tx, accountID, id)
		if err != nil {
			return err
		}

		balance, err := FundBalance(tx, accountID, id)
		if err != nil {
			return err
		}

		if balance != 0 {
			log.Debug().Str("account", accountID).Str("fund", id.String()).Int64("balance", balance).Msg("refusing to archive fund")
			return ErrFundNotZero
		}

		if !fund.Active {
			return nil
		}

		err = tx.Model(&fund).Update("active", false).Error
		if err != nil {
			return err
		}
		fund.Active = false
		return nil
	})
	if err != nil {
		return models.Fund{}, err
	}

	return fund, nil
}

// ListFunds returns the active funds of the account ordered for display,
// each with its balance.
func ListFunds(db *gorm.DB, accountID string) ([]FundWithBalance, error) {
	var funds []models.Fund
	err := db.
		Where("account_id = ? AND active = ?", accountID, true).
		Order("display_order ASC, name ASC").
		Find(&funds).Error
	if err != nil {
		return nil, err
	}

	balances, err := ComputeBalances(db, accountID)
	if err != nil {
		return nil, err
	}

	result := make([]FundWithBalance, len(funds))
	for i, fund := range funds {
		result[i] = FundWithBalance{Fund: fund, BalanceCents: balances.Of(fund.ID)}
	}

	return result, nil
}

// FundDetail is a fund with its balance and most recent transactions.
type FundDetail struct {
	Fund         FundWithBalance      `json:"fund"`
	Transactions []models.Transaction `json:"transactions"`
}

// GetFund returns a fund with its balance and up to 50 most recent transactions.
func GetFund(db *gorm.DB, accountID string, id uuid.UUID) (FundDetail, error) {
	fund, err := models.FindFund(db, accountID, id)
	if err != nil {
		return FundDetail{}, err
	}

	balance, err := FundBalance(db, accountID, id)
	if err != nil {
		return FundDetail{}, err
	}

	transactions, err := ListTransactions(db, accountID, TransactionFilter{FundID: id})
	if err != nil {
		return FundDetail{}, err
	}

	return FundDetail{
		Fund:         FundWithBalance{Fund: fund, BalanceCents: balance},
		Transactions: transactions,
	}, nil
}
