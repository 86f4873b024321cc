package ledger

import (
	"github.com/fundledger/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Balances maps fund ids to their balance in cents. Funds without
// transactions are absent, their balance is zero.
type Balances map[uuid.UUID]int64

// Of returns the balance of a fund, defaulting to zero.
func (b Balances) Of(id uuid.UUID) int64 {
	return b[id]
}

// Total returns the sum of all balances.
func (b Balances) Total() int64 {
	var total int64
	for _, cents := range b {
		total += cents
	}
	return total
}

type balanceRow struct {
	FundID uuid.UUID
	Type   models.TransactionType
	Sum    int64
}

// ComputeBalances derives the balance of every fund of the account from its
// transaction history. Transactions without a fund are not part of any balance.
func ComputeBalances(db *gorm.DB, accountID string) (Balances, error) {
	return computeBalances(db.Where("account_id = ?", accountID))
}

// FundBalance derives the balance of a single fund.
func FundBalance(db *gorm.DB, accountID string, fundID uuid.UUID) (int64, error) {
	balances, err := computeBalances(db.Where("account_id = ? AND fund_id = ?", accountID, fundID))
	if err != nil {
		return 0, err
	}

	return balances.Of(fundID), nil
}

func computeBalances(scope *gorm.DB) (Balances, error) {
	var rows []balanceRow
	err := scope.
		Model(&models.Transaction{}).
		Select("fund_id, type, SUM(amount_cents) AS sum").
		Where("fund_id IS NOT NULL").
		Group("fund_id, type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	balances := make(Balances)
	for _, row := range rows {
		balances[row.FundID] += row.Type.Sign() * row.Sum
	}

	return balances, nil
}
