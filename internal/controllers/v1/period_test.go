package v1_test

import (
	"fmt"
	"net/http"
	"time"

	v1 "github.com/fundledger/backend/internal/controllers/v1"
	"github.com/fundledger/backend/internal/ledger"
	"github.com/fundledger/backend/internal/models"
	"github.com/fundledger/backend/test"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) startPeriod(body string) ledger.StartResult {
	r := test.Request(suite.T(), suite.db, http.MethodPost, "http://example.com/v1/periods/start", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.Response[ledger.StartResult]
	test.DecodeResponse(suite.T(), &r, &response)
	return response.Data
}

func (suite *TestSuiteStandard) TestPeriodStart() {
	holidays := suite.createTestFund("Holidays")
	rent := suite.createTestFund("Rent")
	suite.createTestRule(fmt.Sprintf(`{"fundId": "%s", "mode": "FIXED", "amount": 400, "priority": 1}`, rent.ID))
	suite.createTestRule(fmt.Sprintf(`{"fundId": "%s", "mode": "PERCENT", "percent": 100, "priority": 2}`, holidays.ID))

	result := suite.startPeriod(`{"deposit": 1000}`)
	now := time.Now().UTC()
	suite.Assert().Equal(now.Year(), result.Period.Year)
	suite.Assert().Equal(int(now.Month()), result.Period.Month)
	suite.Assert().Equal(models.PeriodStatusOpen, result.Period.Status)
	suite.Assert().Equal(int64(100000), result.Run.DepositCents)
	suite.Assert().Equal([]ledger.Allocation{
		{FundID: rent.ID, AmountCents: 40000},
		{FundID: holidays.ID, AmountCents: 60000},
	}, result.Allocations)

	r := test.Request(suite.T(), suite.db, http.MethodGet, "http://example.com/v1/balances", "")
	var balances v1.Response[v1.BalancesResponse]
	test.DecodeResponse(suite.T(), &r, &balances)
	suite.Assert().Equal(int64(100000), balances.Data.TotalCents)
}

func (suite *TestSuiteStandard) TestPeriodStartUsesMonthlyDeposit() {
	fund := suite.createTestFund("Holidays")
	suite.createTestRule(fmt.Sprintf(`{"fundId": "%s", "mode": "PERCENT", "percent": 50}`, fund.ID))

	r := test.Request(suite.T(), suite.db, http.MethodPatch, "http://example.com/v1/settings", `{"monthlyDeposit": 35}`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	result := suite.startPeriod("")
	suite.Assert().Equal(int64(3500), result.Run.DepositCents)
	suite.Require().Len(result.Allocations, 1)
	suite.Assert().Equal(int64(3500), result.Allocations[0].AmountCents, "The shortfall goes to the first allocation")

	result = suite.startPeriod(`{}`)
	suite.Assert().Equal(int64(3500), result.Run.DepositCents)
}

func (suite *TestSuiteStandard) TestPeriodStartTwice() {
	first := suite.startPeriod(`{"deposit": 10}`)
	second := suite.startPeriod(`{"deposit": 20}`)
	suite.Assert().Equal(first.Period.ID, second.Period.ID)
	suite.Assert().NotEqual(first.Run.ID, second.Run.ID)

	r := test.Request(suite.T(), suite.db, http.MethodGet, fmt.Sprintf("http://example.com/v1/periods/%s/runs", first.Period.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var runs v1.Response[[]models.AllocationRun]
	test.DecodeResponse(suite.T(), &r, &runs)
	suite.Assert().Len(runs.Data, 2)

	r = test.Request(suite.T(), suite.db, http.MethodGet, "http://example.com/v1/periods", "")
	var periods v1.Response[[]models.Period]
	test.DecodeResponse(suite.T(), &r, &periods)
	suite.Assert().Len(periods.Data, 1)
}

func (suite *TestSuiteStandard) TestPeriodStartInvalid() {
	for _, body := range []string{`{"deposit": -1}`, `{"deposit": "abc"}`, `{"deposit": 1`} {
		r := test.Request(suite.T(), suite.db, http.MethodPost, "http://example.com/v1/periods/start", body)
		test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	}
}

func (suite *TestSuiteStandard) TestPeriodCloseReopen() {
	period := suite.startPeriod(`{"deposit": 0}`).Period

	r := test.Request(suite.T(), suite.db, http.MethodPost, fmt.Sprintf("http://example.com/v1/periods/%s/close", period.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.Response[models.Period]
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(models.PeriodStatusClosed, response.Data.Status)
	suite.Assert().NotNil(response.Data.ClosedAt)

	// Closing again is fine
	r = test.Request(suite.T(), suite.db, http.MethodPost, fmt.Sprintf("http://example.com/v1/periods/%s/close", period.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	// A reason is required to reopen
	for _, body := range []string{"", `{}`, `{"reason": ""}`} {
		r = test.Request(suite.T(), suite.db, http.MethodPost, fmt.Sprintf("http://example.com/v1/periods/%s/reopen", period.ID), body)
		test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	}

	r = test.Request(suite.T(), suite.db, http.MethodPost, fmt.Sprintf("http://example.com/v1/periods/%s/reopen", period.ID), `{"reason": "Forgot the electricity bill"}`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	response = v1.Response[models.Period]{}
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(models.PeriodStatusOpen, response.Data.Status)
	suite.Assert().Nil(response.Data.ClosedAt)

	r = test.Request(suite.T(), suite.db, http.MethodGet, "http://example.com/v1/audit-logs", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var logs v1.Response[[]models.AuditLog]
	test.DecodeResponse(suite.T(), &r, &logs)
	suite.Require().Len(logs.Data, 2)

	actions := []models.AuditAction{logs.Data[0].Action, logs.Data[1].Action}
	suite.Assert().ElementsMatch([]models.AuditAction{models.AuditActionPeriodClosed, models.AuditActionPeriodReopened}, actions)
}

func (suite *TestSuiteStandard) TestPeriodNotFound() {
	period := suite.startPeriod(`{"deposit": 0}`).Period

	for _, path := range []string{"/close", "/runs"} {
		method := http.MethodPost
		if path == "/runs" {
			method = http.MethodGet
		}

		r := test.Request(suite.T(), suite.db, method, fmt.Sprintf("http://example.com/v1/periods/%s%s", uuid.New(), path), "")
		test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

		r = test.Request(suite.T(), suite.db, method, fmt.Sprintf("http://example.com/v1/periods/%s%s", period.ID, path), "", test.AccountHeader("somebody-else"))
		test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
	}

	r := test.Request(suite.T(), suite.db, http.MethodPost, fmt.Sprintf("http://example.com/v1/periods/%s/reopen", uuid.New()), `{"reason": "Typo"}`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
