package v1

import (
	"net/http"

	"github.com/fundledger/backend/internal/httputil"
	"github.com/fundledger/backend/internal/ledger"
	"github.com/fundledger/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RegisterSettingRoutes registers the routes for settings with
// the RouterGroup that is passed.
func (co Controller) RegisterSettingRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsSetting)
	r.GET("", co.GetSetting)
	r.PATCH("", co.UpdateSetting)
}

// SettingEditable is the request body for updating settings. Only fields
// that are set are changed.
type SettingEditable struct {
	MonthlyDeposit      *decimal.Decimal `json:"monthlyDeposit" example:"3500"` // Default deposit in currency units
	OverspendPrevention *bool            `json:"overspendPrevention" example:"true"`
	Currency            *string          `json:"currency" example:"EUR"`
}

// OptionsSetting returns the allowed HTTP methods
func (co Controller) OptionsSetting(c *gin.Context) {
	httputil.OptionsGetPatch(c)
}

// GetSetting returns the settings of the account.
func (co Controller) GetSetting(c *gin.Context) {
	setting, err := ledger.GetSetting(co.DB, accountID(c))
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[models.Setting]{Data: setting})
}

// UpdateSetting updates the settings of the account.
func (co Controller) UpdateSetting(c *gin.Context) {
	var editable SettingEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		abort(c, err)
		return
	}

	update := ledger.SettingUpdate{
		OverspendPrevention: editable.OverspendPrevention,
		Currency:            editable.Currency,
	}

	if editable.MonthlyDeposit != nil {
		if editable.MonthlyDeposit.IsNegative() {
			abort(c, errDepositNegative)
			return
		}

		cents, err := toCents(*editable.MonthlyDeposit)
		if err != nil {
			abort(c, err)
			return
		}
		update.MonthlyDepositCents = &cents
	}

	setting, err := ledger.UpdateSetting(co.DB, accountID(c), update)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[models.Setting]{Data: setting})
}
