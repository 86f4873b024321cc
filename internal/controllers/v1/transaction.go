package v1

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/fundledger/backend/internal/httputil"
	"github.com/fundledger/backend/internal/ledger"
	"github.com/fundledger/backend/internal/models"
	"github.com/fundledger/backend/internal/types"
	ledgeruuid "github.com/fundledger/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func (co Controller) RegisterTransactionRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsTransactionList)
	r.GET("", co.GetTransactions)
	r.POST("", co.CreateTransaction)

	r.OPTIONS("/export", co.OptionsTransactionExport)
	r.GET("/export", co.ExportTransactions)
}

// TransactionCreate is the request body for recording an expense or income.
type TransactionCreate struct {
	FundID uuid.UUID              `json:"fundId" binding:"required" example:"4e743e94-6a4b-44d6-aba5-d77c87103ff7"`
	Type   models.TransactionType `json:"type" binding:"required,oneof=EXPENSE INCOME" example:"EXPENSE"`
	Amount decimal.Decimal        `json:"amount" example:"12.50"`              // Amount in currency units
	Date   time.Time              `json:"date" example:"2024-05-14T00:00:00Z"` // Defaults to now
	Payee  string                 `json:"payee" example:"Corner store"`
	Note   string                 `json:"note" example:"Milk and bread"`
}

// TransactionQueryFilter contains the fields that transactions can be filtered with.
type TransactionQueryFilter struct {
	FundID ledgeruuid.UUID `form:"fundId"` // Only transactions of this fund
	Month  types.Month     `form:"month"`  // Only transactions in this month, as YYYY-MM
	Payee  string          `form:"payee"`  // Glob pattern for the payee
	Limit  int             `form:"limit"`  // Maximum number of transactions, -1 for all
}

// model converts the query into a ledger filter.
func (f TransactionQueryFilter) model() ledger.TransactionFilter {
	return ledger.TransactionFilter{
		FundID: f.FundID.UUID,
		Month:  f.Month,
		Payee:  f.Payee,
		Limit:  f.Limit,
	}
}

var exportFormats = []string{"csv", "xlsx"}

// bindFilter binds the transaction filter from the query string. If that
// fails, the error response is written and ok is false.
func bindFilter(c *gin.Context) (filter TransactionQueryFilter, ok bool) {
	err := c.ShouldBindQuery(&filter)
	if err != nil {
		abort(c, httputil.ErrInvalidQueryString)
		return TransactionQueryFilter{}, false
	}

	if slices.Contains(httputil.GetURLFields(c.Request.URL, filter), "Limit") && filter.Limit <= 0 && filter.Limit != -1 {
		abort(c, errLimitInvalid)
		return TransactionQueryFilter{}, false
	}

	return filter, true
}

// OptionsTransactionList returns the allowed HTTP methods
func (co Controller) OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsTransactionExport returns the allowed HTTP methods
func (co Controller) OptionsTransactionExport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetTransactions returns the transactions of the account, newest first.
// Without a limit, the 50 most recent transactions are returned.
func (co Controller) GetTransactions(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	transactions, err := ledger.ListTransactions(co.DB, accountID(c), filter.model())
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[[]models.Transaction]{Data: transactions})
}

// CreateTransaction records an expense or income on a fund.
func (co Controller) CreateTransaction(c *gin.Context) {
	var create TransactionCreate
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

	transaction, err := ledger.RecordTransaction(co.DB, accountID(c), ledger.Entry{
		FundID:      create.FundID,
		Type:        create.Type,
		AmountCents: amount,
		Date:        create.Date,
		Payee:       create.Payee,
		Note:        create.Note,
	})
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response[models.Transaction]{Data: transaction})
}

// ExportTransactions writes all transactions matching the filter as CSV or
// XLSX file. The limit is ignored.
func (co Controller) ExportTransactions(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if !slices.Contains(exportFormats, format) {
		abort(c, errExportFormat)
		return
	}

	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	rows, err := ledger.ExportRows(co.DB, accountID(c), filter.model())
	if err != nil {
		abort(c, err)
		return
	}

	var buf bytes.Buffer
	contentType := "text/csv; charset=utf-8"
	if format == "xlsx" {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		err = ledger.WriteXLSX(&buf, rows)
	} else {
		err = ledger.WriteCSV(&buf, rows)
	}

	if err != nil {
		abort(c, fmt.Errorf("%w: %w", models.ErrGeneral, err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", strconv.Quote("transactions."+format)))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
