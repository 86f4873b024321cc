package ledger

import (
	"time"

	"github.com/fundledger/backend/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Transfer describes money moved from one fund to another.
type Transfer struct {
	FromFundID  uuid.UUID
	ToFundID    uuid.UUID
	AmountCents int64
	Date        time.Time
	Note        string
}

// CheckTransfer validates a transfer for the account: the funds must differ
// and belong to the account and the amount must be positive. With overspend
// prevention active, the source fund must hold at least the amount.
//
// The balance is read outside of the transaction writing the transfer.
// Two concurrent transfers can therefore both pass the check.
func CheckTransfer(db *gorm.DB, accountID string, transfer Transfer) error {
	if transfer.FromFundID == transfer.ToFundID {
		return ErrTransferSameFund
	}

	if transfer.AmountCents <= 0 {
		return models.ErrAmountNotPositive
	}

	for _, id := range []uuid.UUID{transfer.FromFundID, transfer.ToFundID} {
		_, err := models.FindFund(db, accountID, id)
		if err != nil {
			return err
		}
	}

	return checkOverspend(db, accountID, transfer.FromFundID, transfer.AmountCents)
}

// CreateTransfer writes the two legs of a transfer. Both rows share a fresh
// transfer group id, which is returned. No balance check is performed.
func CreateTransfer(db *gorm.DB, accountID string, transfer Transfer) (uuid.UUID, error) {
	group := uuid.New()

	err := db.Transaction(func(tx *gorm.DB) error {
		date := transfer.Date
		if date.IsZero() {
			date = tx.NowFunc()
		}

		from := transfer.FromFundID
		to := transfer.ToFundID
		legs := []models.Transaction{
			{
				AccountID:       accountID,
				FundID:          &from,
				Type:            models.TransactionTypeTransferOut,
				AmountCents:     transfer.AmountCents,
				Date:            date,
				TransferGroupID: &group,
				Note:            transfer.Note,
			},
			{
				AccountID:       accountID,
				FundID:          &to,
				Type:            models.TransactionTypeTransferIn,
				AmountCents:     transfer.AmountCents,
				Date:            date,
				TransferGroupID: &group,
				Note:            transfer.Note,
			},
		}

		return tx.Create(&legs).Error
	})
	if err != nil {
		return uuid.Nil, err
	}

	transfers.Inc()
	log.Info().Str("account", accountID).Str("group", group.String()).Int64("amount", transfer.AmountCents).Msg("transfer created")

	return group, nil
}

// TransferLegs returns the transactions of a transfer group.
func TransferLegs(db *gorm.DB, accountID string, group uuid.UUID) ([]models.Transaction, error) {
	var legs []models.Transaction
	err := db.
		Where("account_id = ? AND transfer_group_id = ?", accountID, group).
		Order("type DESC").
		Find(&legs).Error

	return legs, err
}
