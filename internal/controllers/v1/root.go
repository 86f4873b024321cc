package v1

import (
	"net/http"

	"github.com/fundledger/backend/internal/httputil"
	"github.com/fundledger/backend/internal/models"
	"github.com/gin-gonic/gin"
)

type RootResponse struct {
	Links RootLinks `json:"links"` // Links for the v1 API
}

type RootLinks struct {
	Funds           string `json:"funds" example:"https://example.com/api/v1/funds"`                      // URL of Fund collection endpoint
	AllocationRules string `json:"allocationRules" example:"https://example.com/api/v1/allocation-rules"` // URL of Allocation Rule collection endpoint
	Transactions    string `json:"transactions" example:"https://example.com/api/v1/transactions"`        // URL of Transaction collection endpoint
	Transfers       string `json:"transfers" example:"https://example.com/api/v1/transfers"`              // URL of Transfer endpoint
	Periods         string `json:"periods" example:"https://example.com/api/v1/periods"`                  // URL of Period collection endpoint
	AuditLogs       string `json:"auditLogs" example:"https://example.com/api/v1/audit-logs"`             // URL of Audit Log collection endpoint
	Settings        string `json:"settings" example:"https://example.com/api/v1/settings"`                // URL of Settings endpoint
	Balances        string `json:"balances" example:"https://example.com/api/v1/balances"`                // URL of Balances endpoint
	Dashboard       string `json:"dashboard" example:"https://example.com/api/v1/dashboard"`              // URL of Dashboard endpoint
	Backup          string `json:"backup" example:"https://example.com/api/v1/backup"`                    // URL of Backup endpoint
}

// Get returns the link list for v1
func Get(c *gin.Context) {
	url := c.GetString(string(models.ContextURL)) + "/v1"

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Funds:           url + "/funds",
			AllocationRules: url + "/allocation-rules",
			Transactions:    url + "/transactions",
			Transfers:       url + "/transfers",
			Periods:         url + "/periods",
			AuditLogs:       url + "/audit-logs",
			Settings:        url + "/settings",
			Balances:        url + "/balances",
			Dashboard:       url + "/dashboard",
			Backup:          url + "/backup",
		},
	})
}

// Options returns the allowed HTTP methods
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}
