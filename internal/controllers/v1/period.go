package v1

import (
	"errors"
	"net/http"

	"github.com/fundledger/backend/internal/httputil"
	"github.com/fundledger/backend/internal/ledger"
	"github.com/fundledger/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RegisterPeriodRoutes registers the routes for periods with
// the RouterGroup that is passed.
func (co Controller) RegisterPeriodRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsPeriodList)
	r.GET("", co.GetPeriods)

	r.OPTIONS("/start", co.OptionsPeriodAction)
	r.POST("/start", co.StartPeriod)

	r.OPTIONS("/:id/close", co.OptionsPeriodAction)
	r.POST("/:id/close", co.ClosePeriod)
	r.OPTIONS("/:id/reopen", co.OptionsPeriodAction)
	r.POST("/:id/reopen", co.ReopenPeriod)
	r.OPTIONS("/:id/runs", co.OptionsPeriodList)
	r.GET("/:id/runs", co.GetPeriodRuns)
}

// RegisterAuditLogRoutes registers the routes for audit logs with
// the RouterGroup that is passed.
func (co Controller) RegisterAuditLogRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsPeriodList)
	r.GET("", co.GetAuditLogs)
}

// PeriodStart is the request body for starting a period.
type PeriodStart struct {
	Deposit *decimal.Decimal `json:"deposit" example:"3500"` // Deposit in currency units, defaults to the monthly deposit setting
}

// PeriodReopen is the request body for reopening a period.
type PeriodReopen struct {
	Reason string `json:"reason" example:"Forgot the electricity bill"`
}

// OptionsPeriodList returns the allowed HTTP methods
func (co Controller) OptionsPeriodList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// OptionsPeriodAction returns the allowed HTTP methods
func (co Controller) OptionsPeriodAction(c *gin.Context) {
	httputil.OptionsPost(c)
}

// GetPeriods returns all periods of the account, newest first.
func (co Controller) GetPeriods(c *gin.Context) {
	periods, err := ledger.ListPeriods(co.DB, accountID(c))
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[[]models.Period]{Data: periods})
}

// StartPeriod opens the period for the current month and allocates the
// deposit. Without a deposit in the body, the monthly deposit setting is used.
func (co Controller) StartPeriod(c *gin.Context) {
	var start PeriodStart
	err := httputil.BindData(c, &start)
	if err != nil && !errors.Is(err, httputil.ErrRequestBodyEmpty) {
		abort(c, err)
		return
	}

	var deposit int64
	if start.Deposit != nil {
		if start.Deposit.IsNegative() {
			abort(c, errDepositNegative)
			return
		}
		deposit, err = toCents(*start.Deposit)
		if err != nil {
			abort(c, err)
			return
		}
	} else {
		setting, err := ledger.GetSetting(co.DB, accountID(c))
		if err != nil {
			abort(c, err)
			return
		}
		deposit = setting.MonthlyDepositCents
	}

	result, err := ledger.StartPeriod(co.DB, accountID(c), deposit)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response[ledger.StartResult]{Data: result})
}

// ClosePeriod closes a period. Closing a closed period changes nothing.
func (co Controller) ClosePeriod(c *gin.Context) {
	id, ok := bindURIID(c)
	if !ok {
		return
	}

	period, err := ledger.ClosePeriod(co.DB, accountID(c), id.UUID)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[models.Period]{Data: period})
}

// ReopenPeriod reopens a closed period. A reason must be given.
func (co Controller) ReopenPeriod(c *gin.Context) {
	id, ok := bindURIID(c)
	if !ok {
		return
	}

	var reopen PeriodReopen
	err := httputil.BindData(c, &reopen)
	if err != nil && !errors.Is(err, httputil.ErrRequestBodyEmpty) {
		abort(c, err)
		return
	}

	if reopen.Reason == "" {
		abort(c, errReasonEmpty)
		return
	}

	period, err := ledger.ReopenPeriod(co.DB, accountID(c), id.UUID, reopen.Reason)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[models.Period]{Data: period})
}

// GetPeriodRuns returns the allocation runs of a period with their lines.
func (co Controller) GetPeriodRuns(c *gin.Context) {
	id, ok := bindURIID(c)
	if !ok {
		return
	}

	runs, err := ledger.ListRuns(co.DB, accountID(c), id.UUID)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[[]models.AllocationRun]{Data: runs})
}

// GetAuditLogs returns the audit log of the account, newest first.
func (co Controller) GetAuditLogs(c *gin.Context) {
	logs, err := ledger.ListAuditLogs(co.DB, accountID(c))
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[[]models.AuditLog]{Data: logs})
}
