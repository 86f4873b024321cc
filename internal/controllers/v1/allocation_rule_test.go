package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/fundledger/backend/internal/controllers/v1"
	"github.com/fundledger/backend/internal/ledger"
	"github.com/fundledger/backend/internal/models"
	"github.com/fundledger/backend/test"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) TestAllocationRuleCreate() {
	fund := suite.createTestFund("Holidays")

	fixed := suite.createTestRule(fmt.Sprintf(`{"fundId": "%s", "mode": "FIXED", "amount": 200.255, "priority": 1}`, fund.ID))
	suite.Assert().Equal(models.RuleModeFixed, fixed.Mode)
	suite.Assert().Equal(int64(20026), *fixed.FixedCents)
	suite.Assert().Nil(fixed.PercentBasisPoints)
	suite.Assert().True(fixed.Active)

	percent := suite.createTestRule(fmt.Sprintf(`{"fundId": "%s", "mode": "PERCENT", "percent": "12.5"}`, fund.ID))
	suite.Assert().Equal(int64(1250), *percent.PercentBasisPoints)
	suite.Assert().Nil(percent.FixedCents)
}

func (suite *TestSuiteStandard) TestAllocationRuleCreateInvalid() {
	fund := suite.createTestFund("Holidays")

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"No fund", `{"mode": "FIXED", "amount": 10}`, http.StatusBadRequest},
		{"Unknown fund", fmt.Sprintf(`{"fundId": "%s", "mode": "FIXED", "amount": 10}`, uuid.New()), http.StatusNotFound},
		{"No mode", fmt.Sprintf(`{"fundId": "%s", "amount": 10}`, fund.ID), http.StatusBadRequest},
		{"Unknown mode", fmt.Sprintf(`{"fundId": "%s", "mode": "REMAINDER"}`, fund.ID), http.StatusBadRequest},
		{"FIXED without amount", fmt.Sprintf(`{"fundId": "%s", "mode": "FIXED"}`, fund.ID), http.StatusBadRequest},
		{"FIXED zero", fmt.Sprintf(`{"fundId": "%s", "mode": "FIXED", "amount": 0}`, fund.ID), http.StatusBadRequest},
		{"PERCENT without percent", fmt.Sprintf(`{"fundId": "%s", "mode": "PERCENT"}`, fund.ID), http.StatusBadRequest},
		{"PERCENT zero", fmt.Sprintf(`{"fundId": "%s", "mode": "PERCENT", "percent": 0}`, fund.ID), http.StatusBadRequest},
		{"PERCENT above 100", fmt.Sprintf(`{"fundId": "%s", "mode": "PERCENT", "percent": 100.01}`, fund.ID), http.StatusBadRequest},
	}

	for _, tt := range tests {
		r := test.Request(suite.T(), suite.db, http.MethodPost, "http://example.com/v1/allocation-rules", tt.body)
		suite.Assert().Equal(tt.status, r.Code, "%s: %s", tt.name, r.Body.String())
	}
}

func (suite *TestSuiteStandard) TestAllocationRulePercentTotal() {
	fund := suite.createTestFund("Holidays")
	suite.createTestRule(fmt.Sprintf(`{"fundId": "%s", "mode": "PERCENT", "percent": 60}`, fund.ID))

	r := test.Request(suite.T(), suite.db, http.MethodPost, "http://example.com/v1/allocation-rules", fmt.Sprintf(`{"fundId": "%s", "mode": "PERCENT", "percent": 41}`, fund.ID))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	suite.Assert().Contains(r.Body.String(), "100%")
}

func (suite *TestSuiteStandard) TestAllocationRuleListAndDeactivate() {
	holidays := suite.createTestFund("Holidays")
	car := suite.createTestFund("Car")
	second := suite.createTestRule(fmt.Sprintf(`{"fundId": "%s", "mode": "PERCENT", "percent": 50, "priority": 2}`, holidays.ID))
	first := suite.createTestRule(fmt.Sprintf(`{"fundId": "%s", "mode": "FIXED", "amount": 100, "priority": 1}`, car.ID))

	r := test.Request(suite.T(), suite.db, http.MethodGet, "http://example.com/v1/allocation-rules", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var list v1.Response[[]ledger.RuleWithFund]
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Require().Len(list.Data, 2)
	suite.Assert().Equal(first.ID, list.Data[0].ID)
	suite.Assert().Equal(second.ID, list.Data[1].ID)

	r = test.Request(suite.T(), suite.db, http.MethodPost, fmt.Sprintf("http://example.com/v1/allocation-rules/%s/deactivate", first.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var rule v1.Response[models.AllocationRule]
	test.DecodeResponse(suite.T(), &r, &rule)
	suite.Assert().False(rule.Data.Active)

	r = test.Request(suite.T(), suite.db, http.MethodGet, "http://example.com/v1/allocation-rules", "")
	list = v1.Response[[]ledger.RuleWithFund]{}
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Require().Len(list.Data, 1)
	suite.Assert().Equal(second.ID, list.Data[0].ID)

	r = test.Request(suite.T(), suite.db, http.MethodPost, fmt.Sprintf("http://example.com/v1/allocation-rules/%s/deactivate", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
