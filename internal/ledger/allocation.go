package ledger

import (
	"errors"
	"fmt"
	"sort"

	"github.com/fundledger/backend/internal/models"
	"github.com/fundledger/backend/internal/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Allocation is the amount a fund receives from a deposit.
type Allocation struct {
	FundID      uuid.UUID `json:"fundId" example:"4e743e94-6a4b-44d6-aba5-d77c87103ff7"`
	AmountCents int64     `json:"amountCents" example:"40000"`
}

// StartResult is the outcome of starting a period.
type StartResult struct {
	Period      models.Period        `json:"period"`
	Run         models.AllocationRun `json:"run"`
	Allocations []Allocation         `json:"allocations"`
}

var basisPoints = decimal.NewFromInt(models.MaxBasisPoints)

// Waterfall distributes a deposit across the rules.
//
// FIXED rules are satisfied first in priority order, each capped at what is
// left of the deposit. All PERCENT rules then take their share of the same
// remainder, rounded half up. A shortfall caused by rounding is added to the
// first allocation. Rules that compute to zero produce no allocation.
func Waterfall(depositCents int64, rules []models.AllocationRule) ([]Allocation, error) {
	if depositCents < 0 {
		return nil, ErrNegativeDeposit
	}

	ordered := make([]models.AllocationRule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})

	for _, rule := range ordered {
		if rule.Mode != models.RuleModeFixed && rule.Mode != models.RuleModePercent {
			return nil, fmt.Errorf("%w, got '%s' for rule %s", models.ErrRuleModeInvalid, rule.Mode, rule.ID)
		}
	}

	allocations := make([]Allocation, 0, len(ordered))
	remaining := depositCents

	for _, rule := range ordered {
		if rule.Mode != models.RuleModeFixed || rule.FixedCents == nil {
			continue
		}

		amount := min(*rule.FixedCents, remaining)
		if amount <= 0 {
			continue
		}

		allocations = append(allocations, Allocation{FundID: rule.FundID, AmountCents: amount})
		remaining -= amount
	}

	base := decimal.NewFromInt(remaining)
	for _, rule := range ordered {
		if rule.Mode != models.RuleModePercent || rule.PercentBasisPoints == nil {
			continue
		}

		amount := base.Mul(decimal.NewFromInt(*rule.PercentBasisPoints)).Div(basisPoints).Round(0).IntPart()
		if amount <= 0 {
			continue
		}

		allocations = append(allocations, Allocation{FundID: rule.FundID, AmountCents: amount})
	}

	total := sumAllocations(allocations)
	if total > depositCents {
		return nil, fmt.Errorf("%w: allocated %d of %d cents", ErrAllocationExceeds, total, depositCents)
	}

	if total < depositCents && len(allocations) > 0 {
		allocations[0].AmountCents += depositCents - total
	}

	return allocations, nil
}

// ActiveRules returns the active allocation rules of the account in the order
// the waterfall applies them.
func ActiveRules(db *gorm.DB, accountID string) ([]models.AllocationRule, error) {
	var rules []models.AllocationRule
	err := db.
		Where("account_id = ? AND active = ?", accountID, true).
		Order("priority ASC, created_at ASC, id ASC").
		Find(&rules).Error

	return rules, err
}

// findOrCreatePeriod returns the period of the account for the month,
// creating it if it does not exist yet. A period inserted concurrently is
// re-read instead of failing.
func findOrCreatePeriod(tx *gorm.DB, accountID string, month types.Month) (models.Period, error) {
	var period models.Period
	err := tx.Where("account_id = ? AND year = ? AND month = ?", accountID, month.Year(), int(month.Month())).First(&period).Error
	if err == nil {
		return period, nil
	}

	if !errors.Is(err, models.ErrResourceNotFound) {
		return models.Period{}, err
	}

	period = models.NewPeriod(accountID, month, tx.NowFunc())
	result := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "account_id"}, {Name: "year"}, {Name: "month"}},
		DoNothing: true,
	}).Create(&period)
	if result.Error != nil {
		return models.Period{}, result.Error
	}

	if result.RowsAffected == 1 {
		return period, nil
	}

	log.Debug().Str("account", accountID).Str("month", month.String()).Msg("period created concurrently, re-reading")

	period = models.Period{}
	err = tx.Where("account_id = ? AND year = ? AND month = ?", accountID, month.Year(), int(month.Month())).First(&period).Error
	return period, err
}

// StartPeriod opens the period of the current month for the account, reusing
// it if it already exists, and distributes the deposit across the funds of
// the active allocation rules.
//
// The run, its lines and one ALLOCATION transaction per line are written in
// the same database transaction as the period. A deposit of zero still
// records a run.
func StartPeriod(db *gorm.DB, accountID string, depositCents int64) (StartResult, error) {
	if depositCents < 0 {
		return StartResult{}, ErrNegativeDeposit
	}

	var result StartResult
	err := db.Transaction(func(tx *gorm.DB) error {
		now := tx.NowFunc()

		period, err := findOrCreatePeriod(tx, accountID, types.MonthOf(now))
		if err != nil {
			return err
		}

		rules, err := ActiveRules(tx, accountID)
		if err != nil {
			return err
		}

		allocations, err := Waterfall(depositCents, rules)
		if err != nil {
			return err
		}

		run := models.AllocationRun{
			AccountID:    accountID,
			PeriodID:     period.ID,
			DepositCents: depositCents,
			Hash:         models.RunHash(period.Year, period.Month, depositCents),
		}
		err = tx.Omit(clause.Associations).Create(&run).Error
		if err != nil {
			return err
		}

		if len(allocations) > 0 {
			run.Lines = make([]models.AllocationLine, len(allocations))
			transactions := make([]models.Transaction, len(allocations))

			for i, a := range allocations {
				run.Lines[i] = models.AllocationLine{
					RunID:       run.ID,
					FundID:      a.FundID,
					AmountCents: a.AmountCents,
					Position:    i,
				}

				fundID := a.FundID
				periodID := period.ID
				transactions[i] = models.Transaction{
					AccountID:   accountID,
					FundID:      &fundID,
					PeriodID:    &periodID,
					Type:        models.TransactionTypeAllocation,
					AmountCents: a.AmountCents,
					Date:        now,
					Note:        fmt.Sprintf("Allocation %s", period.Span()),
				}
			}

			err = tx.Omit(clause.Associations).Create(&run.Lines).Error
			if err != nil {
				return err
			}

			err = tx.Omit(clause.Associations).Create(&transactions).Error
			if err != nil {
				return err
			}
		}

		result = StartResult{
			Period:      period,
			Run:         run,
			Allocations: allocations,
		}
		return nil
	})
	if err != nil {
		return StartResult{}, err
	}

	allocationRuns.Inc()
	allocatedCents.Add(float64(sumAllocations(result.Allocations)))

	log.Info().
		Str("account", accountID).
		Str("period", result.Period.ID.String()).
		Int64("deposit", depositCents).
		Int("lines", len(result.Allocations)).
		Msg("allocation run recorded")

	return result, nil
}

func sumAllocations(allocations []Allocation) int64 {
	var total int64
	for _, a := range allocations {
		total += a.AmountCents
	}
	return total
}
