package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Fund is a named bucket of money. Its balance is never stored, it is
// derived from the transactions referencing it.
type Fund struct {
	DefaultModel
	AccountID    string `json:"accountId" gorm:"index;not null" example:"demo-user"` // Account owning the fund
	Name         string `json:"name" gorm:"not null" example:"Holidays"`             // Name of the fund
	Description  string `json:"description" example:"Two weeks of surfing"`          // Description of the fund
	Color        string `json:"color" example:"#0ea5e9"`                             // Display color
	Icon         string `json:"icon" example:"plane"`                                // Display icon
	TargetCents  *int64 `json:"targetCents" example:"250000"`                        // Optional target balance in cents
	Active       bool   `json:"active" example:"true"`                               // Archived funds are inactive
	DisplayOrder int    `json:"displayOrder" example:"2"`                            // Sort position in listings
}

// BeforeSave trims whitespace from string fields and verifies
// the required ones.
func (f *Fund) BeforeSave(_ *gorm.DB) error {
	f.AccountID = strings.TrimSpace(f.AccountID)
	f.Name = strings.TrimSpace(f.Name)
	f.Description = strings.TrimSpace(f.Description)
	f.Color = strings.TrimSpace(f.Color)
	f.Icon = strings.TrimSpace(f.Icon)

	if f.AccountID == "" {
		return ErrAccountIDEmpty
	}

	if f.Name == "" {
		return ErrFundNameEmpty
	}

	return nil
}

// findFund loads the fund with the given id owned by the account.
func findFund(tx *gorm.DB, accountID string, id uuid.UUID) (Fund, error) {
	var f Fund
	err := tx.Where("id = ? AND account_id = ?", id, accountID).First(&f).Error
	return f, err
}

// FindFund returns the fund with the given id if it belongs to the account.
func FindFund(db *gorm.DB, accountID string, id uuid.UUID) (Fund, error) {
	return findFund(db, accountID, id)
}
