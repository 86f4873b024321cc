package ledger

import (
	"sort"

	"github.com/fundledger/backend/internal/models"
	"gorm.io/gorm"
)

// Dashboard summarizes the funds of an account.
type Dashboard struct {
	TotalCents         int64                `json:"totalCents" example:"182550"` // Sum of all fund balances
	TopFunds           []FundWithBalance    `json:"topFunds"`                    // Active funds with the highest balances
	RecentTransactions []models.Transaction `json:"recentTransactions"`
}

// GetDashboard returns the total balance, the three active funds holding the
// most money and the five most recent transactions.
func GetDashboard(db *gorm.DB, accountID string) (Dashboard, error) {
	balances, err := ComputeBalances(db, accountID)
	if err != nil {
		return Dashboard{}, err
	}

	funds, err := ListFunds(db, accountID)
	if err != nil {
		return Dashboard{}, err
	}

	sort.SliceStable(funds, func(i, j int) bool {
		return funds[i].BalanceCents > funds[j].BalanceCents
	})
	if len(funds) > 3 {
		funds = funds[:3]
	}

	recent, err := ListTransactions(db, accountID, TransactionFilter{Limit: 5})
	if err != nil {
		return Dashboard{}, err
	}

	return Dashboard{
		TotalCents:         balances.Total(),
		TopFunds:           funds,
		RecentTransactions: recent,
	}, nil
}
