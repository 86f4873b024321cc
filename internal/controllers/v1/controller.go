// Package v1 implements the HTTP handlers of the v1 API.
package v1

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/fundledger/backend/internal/httputil"
	"github.com/fundledger/backend/internal/models"
	ledgeruuid "github.com/fundledger/backend/internal/uuid"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Controller holds the database handle used by all handlers.
type Controller struct {
	DB *gorm.DB
}

// AccountHeader identifies the account a request acts on.
const AccountHeader = "X-Account-ID"

const contextAccountID = "ledger-account-id"

// RegisterRoutes registers all v1 routes with the RouterGroup that is passed.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.OPTIONS("", Options)

	account := r.Group("", AccountMiddleware())
	co.RegisterFundRoutes(account.Group("/funds"))
	co.RegisterAllocationRuleRoutes(account.Group("/allocation-rules"))
	co.RegisterTransactionRoutes(account.Group("/transactions"))
	co.RegisterTransferRoutes(account.Group("/transfers"))
	co.RegisterPeriodRoutes(account.Group("/periods"))
	co.RegisterAuditLogRoutes(account.Group("/audit-logs"))
	co.RegisterSettingRoutes(account.Group("/settings"))
	co.RegisterBalanceRoutes(account.Group("/balances"))
	co.RegisterDashboardRoutes(account.Group("/dashboard"))
	co.RegisterBackupRoutes(account.Group("/backup"))
}

// AccountMiddleware reads the account id from the X-Account-ID header.
// Requests without it are rejected, OPTIONS requests are passed through.
func AccountMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		id := strings.TrimSpace(c.GetHeader(AccountHeader))
		if id == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, httpError{
				Error: errAccountHeader.Error(),
			})
			return
		}

		c.Set(contextAccountID, id)
		c.Next()
	}
}

// accountID returns the account id set by AccountMiddleware.
func accountID(c *gin.Context) string {
	return c.GetString(contextAccountID)
}

type httpError struct {
	Error string `json:"error" example:"there is no fund matching your query"`
}

// Response wraps the data returned by an endpoint.
type Response[T any] struct {
	Data T `json:"data"`
}

// URIID is the id of a resource in the URI.
type URIID struct {
	ID ledgeruuid.UUID `uri:"id"` // The ID of the resource
}

// status returns the appropriate status for an error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) || errors.Is(err, models.ErrInvariantViolation) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, models.ErrConflict) {
		return http.StatusConflict
	}

	return http.StatusBadRequest
}

// abort writes the error response for err.
func abort(c *gin.Context, err error) {
	code := status(err)
	if code == http.StatusInternalServerError {
		log.Error().Str("request-id", requestid.Get(c)).Str("account", accountID(c)).Msgf("%T: %v", err, err.Error())
	}

	c.JSON(code, httpError{
		Error: err.Error(),
	})
}

// bindURIID binds the id in the URI. If that fails, the error response is
// written and ok is false.
func bindURIID(c *gin.Context) (id ledgeruuid.UUID, ok bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		abort(c, httputil.ErrInvalidUUID)
		return ledgeruuid.Nil, false
	}

	return uri.ID, true
}

var (
	maxCents = decimal.NewFromInt(math.MaxInt64)
	minCents = decimal.NewFromInt(math.MinInt64)
)

// toCents converts an amount in currency units to cents, rounding half
// away from zero. Amounts that do not fit into int64 cents are rejected.
func toCents(amount decimal.Decimal) (int64, error) {
	cents := amount.Shift(2).Round(0)
	if cents.GreaterThan(maxCents) || cents.LessThan(minCents) {
		return 0, errAmountRange
	}

	return cents.IntPart(), nil
}

var (
	errAccountHeader   = errors.New("the X-Account-ID header must be set")
	errLimitInvalid    = errors.New("the limit must be a positive number or -1 for all transactions")
	errExportFormat    = errors.New("the export format must be csv or xlsx")
	errReasonEmpty     = errors.New("a reason is required to reopen a period")
	errAmountMissing   = errors.New("the amount must be set")
	errPercentMissing  = errors.New("the percent must be set")
	errPercentRange    = errors.New("the percent must be larger than 0 and at most 100")
	errDepositNegative = errors.New("the deposit must not be negative")
	errAmountRange     = fmt.Errorf("%w: the amount is too large", models.ErrValidation)

	errTransferNotFound = fmt.Errorf("%w transfer matching your query", models.ErrResourceNotFound)
)
