package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/fundledger/backend/internal/models"
	"github.com/fundledger/backend/internal/types"
	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"gorm.io/gorm"
)

// DefaultTransactionLimit is the number of transactions listed when no
// limit is requested.
const DefaultTransactionLimit = 50

// Entry is an EXPENSE or INCOME recorded against a fund.
type Entry struct {
	FundID      uuid.UUID
	Type        models.TransactionType
	AmountCents int64
	Date        time.Time
	Payee       string
	Note        string
}

// RecordTransaction writes an EXPENSE or INCOME transaction. With overspend
// prevention active, an EXPENSE larger than the fund balance is rejected.
//
// As for archiving, the balance check is not serialized against concurrent
// writers.
func RecordTransaction(db *gorm.DB, accountID string, entry Entry) (models.Transaction, error) {
	if entry.Type != models.TransactionTypeExpense && entry.Type != models.TransactionTypeIncome {
		return models.Transaction{}, fmt.Errorf("%w, got '%s'", ErrTransactionKind, entry.Type)
	}

	if entry.AmountCents <= 0 {
		return models.Transaction{}, models.ErrAmountNotPositive
	}

	_, err := models.FindFund(db, accountID, entry.FundID)
	if err != nil {
		return models.Transaction{}, err
	}

	if entry.Type == models.TransactionTypeExpense {
		err = checkOverspend(db, accountID, entry.FundID, entry.AmountCents)
		if err != nil {
			return models.Transaction{}, err
		}
	}

	fundID := entry.FundID
	transaction := models.Transaction{
		AccountID:   accountID,
		FundID:      &fundID,
		Type:        entry.Type,
		AmountCents: entry.AmountCents,
		Date:        entry.Date,
		Payee:       entry.Payee,
		Note:        entry.Note,
	}

	err = db.Create(&transaction).Error
	return transaction, err
}

// checkOverspend rejects taking amount out of the fund when overspend
// prevention is active and the balance does not cover it.
func checkOverspend(db *gorm.DB, accountID string, fundID uuid.UUID, amount int64) error {
	setting, err := GetSetting(db, accountID)
	if err != nil {
		return err
	}

	if !setting.OverspendPrevention {
		return nil
	}

	balance, err := FundBalance(db, accountID, fundID)
	if err != nil {
		return err
	}

	if balance < amount {
		return fmt.Errorf("%w, balance is %d cents, %d cents requested", ErrInsufficientFunds, balance, amount)
	}

	return nil
}

// TransactionFilter narrows transaction listings and exports.
type TransactionFilter struct {
	FundID uuid.UUID   // Only transactions of this fund
	Month  types.Month // Only transactions dated in this month
	Payee  string      // Glob pattern for the payee, case insensitive
	Limit  int         // Maximum number of transactions, 0 uses the default, negative is unlimited
}

// ListTransactions returns the transactions of the account, newest first,
// with their fund.
func ListTransactions(db *gorm.DB, accountID string, filter TransactionFilter) ([]models.Transaction, error) {
	query := db.
		Preload("Fund").
		Where("account_id = ?", accountID).
		Order("date DESC, created_at DESC")

	if filter.FundID != uuid.Nil {
		query = query.Where("fund_id = ?", filter.FundID)
	}

	if !filter.Month.IsZero() {
		query = query.Where("date >= ? AND date < ?", filter.Month.Start(), filter.Month.End())
	}

	limit := filter.Limit
	if limit == 0 {
		limit = DefaultTransactionLimit
	}

	// Glob matching happens after loading, the limit is applied afterwards
	if limit > 0 && filter.Payee == "" {
		query = query.Limit(limit)
	}

	var transactions []models.Transaction
	err := query.Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	if filter.Payee != "" {
		pattern := strings.ToLower(filter.Payee)
		matched := transactions[:0]
		for _, t := range transactions {
			if glob.Glob(pattern, strings.ToLower(t.Payee)) {
				matched = append(matched, t)
			}
		}
		transactions = matched

		if limit > 0 && len(transactions) > limit {
			transactions = transactions[:limit]
		}
	}

	return transactions, nil
}
