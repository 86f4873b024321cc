package v1_test

import (
	"net/http"

	v1 "github.com/fundledger/backend/internal/controllers/v1"
	"github.com/fundledger/backend/internal/ledger"
	"github.com/fundledger/backend/internal/models"
	"github.com/fundledger/backend/test"
)

func (suite *TestSuiteStandard) TestDashboard() {
	holidays := suite.createTestFund("Holidays")
	rent := suite.createTestFund("Rent")
	suite.createTestFund("Empty")
	suite.createTestFund("Car")

	suite.createTestTransaction(holidays, models.TransactionTypeIncome, "50")
	suite.createTestTransaction(rent, models.TransactionTypeIncome, "400")
	suite.createTestTransaction(rent, models.TransactionTypeExpense, "100")

	r := test.Request(suite.T(), suite.db, http.MethodGet, "http://example.com/v1/dashboard", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.Response[ledger.Dashboard]
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(int64(35000), response.Data.TotalCents)
	suite.Require().Len(response.Data.TopFunds, 3)
	suite.Assert().Equal("Rent", response.Data.TopFunds[0].Name)
	suite.Assert().Equal("Holidays", response.Data.TopFunds[1].Name)
	suite.Assert().Len(response.Data.RecentTransactions, 3)
}

func (suite *TestSuiteStandard) TestBalancesEmpty() {
	r := test.Request(suite.T(), suite.db, http.MethodGet, "http://example.com/v1/balances", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.Response[v1.BalancesResponse]
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(int64(0), response.Data.TotalCents)
	suite.Assert().Empty(response.Data.Funds)
}
