package v1

import (
	"net/http"

	"github.com/fundledger/backend/internal/httputil"
	"github.com/fundledger/backend/internal/ledger"
	"github.com/gin-gonic/gin"
)

// RegisterDashboardRoutes registers the routes for the dashboard with
// the RouterGroup that is passed.
func (co Controller) RegisterDashboardRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsDashboard)
	r.GET("", co.GetDashboard)
}

// OptionsDashboard returns the allowed HTTP methods
func (co Controller) OptionsDashboard(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetDashboard returns the dashboard summary of the account.
func (co Controller) GetDashboard(c *gin.Context) {
	dashboard, err := ledger.GetDashboard(co.DB, accountID(c))
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[ledger.Dashboard]{Data: dashboard})
}
