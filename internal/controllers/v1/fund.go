package v1

import (
	"net/http"

	"github.com/fundledger/backend/internal/httputil"
	"github.com/fundledger/backend/internal/ledger"
	"github.com/fundledger/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterFundRoutes registers the routes for funds with
// the RouterGroup that is passed.
func (co Controller) RegisterFundRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsFundList)
		r.GET("", co.GetFunds)
		r.POST("", co.CreateFund)
	}

	// Fund with ID
	{
		r.OPTIONS("/:id", co.OptionsFundDetail)
		r.GET("/:id", co.GetFund)
		r.PATCH("/:id", co.UpdateFund)
		r.OPTIONS("/:id/archive", co.OptionsFundArchive)
		r.POST("/:id/archive", co.ArchiveFund)
	}
}

// OptionsFundList returns the allowed HTTP methods
func (co Controller) OptionsFundList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsFundDetail returns the allowed HTTP methods
func (co Controller) OptionsFundDetail(c *gin.Context) {
	httputil.OptionsGetPatch(c)
}

// OptionsFundArchive returns the allowed HTTP methods
func (co Controller) OptionsFundArchive(c *gin.Context) {
	httputil.OptionsPost(c)
}

// GetFunds returns the active funds of the account with their balances.
func (co Controller) GetFunds(c *gin.Context) {
	funds, err := ledger.ListFunds(co.DB, accountID(c))
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[[]ledger.FundWithBalance]{Data: funds})
}

// CreateFund creates a new fund.
func (co Controller) CreateFund(c *gin.Context) {
	var editable ledger.FundEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		abort(c, err)
		return
	}

	fund, err := ledger.CreateFund(co.DB, accountID(c), editable)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response[models.Fund]{Data: fund})
}

// GetFund returns a fund with its balance and recent transactions.
func (co Controller) GetFund(c *gin.Context) {
	id, ok := bindURIID(c)
	if !ok {
		return
	}

	detail, err := ledger.GetFund(co.DB, accountID(c), id.UUID)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[ledger.FundDetail]{Data: detail})
}

// UpdateFund updates the presentation fields of a fund. Only values to be
// updated need to be specified.
func (co Controller) UpdateFund(c *gin.Context) {
	id, ok := bindURIID(c)
	if !ok {
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ledger.FundEditable{})
	if err != nil {
		abort(c, err)
		return
	}

	var editable ledger.FundEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		abort(c, err)
		return
	}

	fund, err := ledger.UpdateFund(co.DB, accountID(c), id.UUID, editable, updateFields)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[models.Fund]{Data: fund})
}

// ArchiveFund archives a fund. Only funds with a balance of zero can be
// archived.
func (co Controller) ArchiveFund(c *gin.Context) {
	id, ok := bindURIID(c)
	if !ok {
		return
	}

	fund, err := ledger.ArchiveFund(co.DB, accountID(c), id.UUID)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[models.Fund]{Data: fund})
}
