package v1

import (
	"net/http"

	"github.com/fundledger/backend/internal/httputil"
	"github.com/fundledger/backend/internal/ledger"
	"github.com/fundledger/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegisterAllocationRuleRoutes registers the routes for allocation rules with
// the RouterGroup that is passed.
func (co Controller) RegisterAllocationRuleRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsAllocationRuleList)
	r.GET("", co.GetAllocationRules)
	r.POST("", co.CreateAllocationRule)

	r.OPTIONS("/:id/deactivate", co.OptionsAllocationRuleDeactivate)
	r.POST("/:id/deactivate", co.DeactivateAllocationRule)
}

// AllocationRuleCreate is the request body for creating an allocation rule.
type AllocationRuleCreate struct {
	FundID   uuid.UUID        `json:"fundId" binding:"required" example:"4e743e94-6a4b-44d6-aba5-d77c87103ff7"` // Fund receiving the allocation
	Mode     models.RuleMode  `json:"mode" binding:"required,oneof=FIXED PERCENT" example:"PERCENT"`            // FIXED or PERCENT
	Amount   *decimal.Decimal `json:"amount" example:"200"`                                                     // Amount for FIXED rules in currency units
	Percent  *decimal.Decimal `json:"percent" example:"12.5"`                                                   // Percentage for PERCENT rules, larger than 0 and at most 100
	Priority int              `json:"priority" example:"1"`                                                     // Lower priorities are applied first
}

var hundred = decimal.NewFromInt(100)

// model converts the request into an allocation rule.
func (r AllocationRuleCreate) model() (models.AllocationRule, error) {
	rule := models.AllocationRule{
		FundID:   r.FundID,
		Mode:     r.Mode,
		Priority: r.Priority,
	}

	switch r.Mode {
	case models.RuleModeFixed:
		if r.Amount == nil {
			return models.AllocationRule{}, errAmountMissing
		}

		cents, err := toCents(*r.Amount)
		if err != nil {
			return models.AllocationRule{}, err
		}
		rule.FixedCents = &cents

	case models.RuleModePercent:
		if r.Percent == nil {
			return models.AllocationRule{}, errPercentMissing
		}

		if !r.Percent.IsPositive() || r.Percent.GreaterThan(hundred) {
			return models.AllocationRule{}, errPercentRange
		}

		bp := r.Percent.Shift(2).Round(0).IntPart()
		rule.PercentBasisPoints = &bp
	}

	return rule, nil
}

// OptionsAllocationRuleList returns the allowed HTTP methods
func (co Controller) OptionsAllocationRuleList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsAllocationRuleDeactivate returns the allowed HTTP methods
func (co Controller) OptionsAllocationRuleDeactivate(c *gin.Context) {
	httputil.OptionsPost(c)
}

// GetAllocationRules returns the active rules in the order they are applied.
func (co Controller) GetAllocationRules(c *gin.Context) {
	rules, err := ledger.ListAllocationRules(co.DB, accountID(c))
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[[]ledger.RuleWithFund]{Data: rules})
}

// CreateAllocationRule creates a new allocation rule.
func (co Controller) CreateAllocationRule(c *gin.Context) {
	var create AllocationRuleCreate
	err := httputil.BindData(c, &create)
	if err != nil {
		abort(c, err)
		return
	}

	rule, err := create.model()
	if err != nil {
		abort(c, err)
		return
	}

	rule, err = ledger.CreateAllocationRule(co.DB, accountID(c), rule)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response[models.AllocationRule]{Data: rule})
}

// DeactivateAllocationRule stops a rule from being applied.
func (co Controller) DeactivateAllocationRule(c *gin.Context) {
	id, ok := bindURIID(c)
	if !ok {
		return
	}

	rule, err := ledger.DeactivateAllocationRule(co.DB, accountID(c), id.UUID)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[models.AllocationRule]{Data: rule})
}
