package v1

import (
	"net/http"
	"time"

	"github.com/fundledger/backend/internal/httputil"
	"github.com/fundledger/backend/internal/ledger"
	"github.com/fundledger/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegisterTransferRoutes registers the routes for transfers with
// the RouterGroup that is passed.
func (co Controller) RegisterTransferRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsTransferList)
	r.POST("", co.CreateTransfer)

	r.OPTIONS("/:id", co.OptionsTransferDetail)
	r.GET("/:id", co.GetTransfer)
}

// TransferCreate is the request body for moving money between funds.
type TransferCreate struct {
	FromFundID uuid.UUID       `json:"fromFundId" binding:"required" example:"4e743e94-6a4b-44d6-aba5-d77c87103ff7"`
	ToFundID   uuid.UUID       `json:"toFundId" binding:"required" example:"0a1f2b3c-4d5e-4f60-8a7b-9c0d1e2f3a4b"`
	Amount     decimal.Decimal `json:"amount" example:"25"`                 // Amount in currency units
	Date       time.Time       `json:"date" example:"2024-05-14T00:00:00Z"` // Defaults to now
	Note       string          `json:"note" example:"Saving for the trip"`
}

// TransferResponse contains the transfer group id and both legs.
type TransferResponse struct {
	TransferGroupID uuid.UUID            `json:"transferGroupId" example:"b5b7b3c4-0e0f-4f0a-9d1b-2d0bbd5e0b9e"`
	Legs            []models.Transaction `json:"legs"`
}

// OptionsTransferList returns the allowed HTTP methods
func (co Controller) OptionsTransferList(c *gin.Context) {
	httputil.OptionsPost(c)
}

// OptionsTransferDetail returns the allowed HTTP methods
func (co Controller) OptionsTransferDetail(c *gin.Context) {
	httputil.OptionsGet(c)
}

// CreateTransfer moves money from one fund to another.
func (co Controller) CreateTransfer(c *gin.Context) {
	var create TransferCreate
	err := httputil.BindData(c, &create)
	if err != nil {
		abort(c, err)
		return
	}

	amount, err := toCents(create.Amount)
	if err != nil {
		abort(c, err)
		return
	}

	transfer := ledger.Transfer{
		FromFundID:  create.FromFundID,
		ToFundID:    create.ToFundID,
		AmountCents: amount,
		Date:        create.Date,
		Note:        create.Note,
	}

	err = ledger.CheckTransfer(co.DB, accountID(c), transfer)
	if err != nil {
		abort(c, err)
		return
	}

	group, err := ledger.CreateTransfer(co.DB, accountID(c), transfer)
	if err != nil {
		abort(c, err)
		return
	}

	legs, err := ledger.TransferLegs(co.DB, accountID(c), group)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response[TransferResponse]{Data: TransferResponse{
		TransferGroupID: group,
		Legs:            legs,
	}})
}

// GetTransfer returns the legs of a transfer.
func (co Controller) GetTransfer(c *gin.Context) {
	id, ok := bindURIID(c)
	if !ok {
		return
	}

	legs, err := ledger.TransferLegs(co.DB, accountID(c), id.UUID)
	if err != nil {
		abort(c, err)
		return
	}

	if len(legs) == 0 {
		abort(c, errTransferNotFound)
		return
	}

	c.JSON(http.StatusOK, Response[TransferResponse]{Data: TransferResponse{
		TransferGroupID: id.UUID,
		Legs:            legs,
	}})
}
