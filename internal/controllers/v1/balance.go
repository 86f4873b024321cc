package v1

import (
	"net/http"

	"github.com/fundledger/backend/internal/httputil"
	"github.com/fundledger/backend/internal/ledger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterBalanceRoutes registers the routes for balances with
// the RouterGroup that is passed.
func (co Controller) RegisterBalanceRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsBalances)
	r.GET("", co.GetBalances)
}

// BalancesResponse contains the balance of every fund with transactions.
type BalancesResponse struct {
	TotalCents int64               `json:"totalCents" example:"182550"`
	Funds      map[uuid.UUID]int64 `json:"funds"` // Balance in cents by fund id
}

// OptionsBalances returns the allowed HTTP methods
func (co Controller) OptionsBalances(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetBalances returns the balances of all funds of the account.
func (co Controller) GetBalances(c *gin.Context) {
	balances, err := ledger.ComputeBalances(co.DB, accountID(c))
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[BalancesResponse]{Data: BalancesResponse{
		TotalCents: balances.Total(),
		Funds:      balances,
	}})
}
