package v1_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	v1 "github.com/fundledger/backend/internal/controllers/v1"
	"github.com/fundledger/backend/internal/models"
	"github.com/fundledger/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestRoot() {
	r := test.Request(suite.T(), suite.db, http.MethodGet, "http://example.com/v1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.RootResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("http://example.com/v1/funds", response.Links.Funds)
	suite.Assert().Equal("http://example.com/v1/allocation-rules", response.Links.AllocationRules)
	suite.Assert().Equal("http://example.com/v1/backup", response.Links.Backup)
}

func (suite *TestSuiteStandard) TestAccountHeaderMissing() {
	for _, path := range []string{"/funds", "/allocation-rules", "/transactions", "/periods", "/audit-logs", "/settings", "/balances", "/dashboard", "/backup"} {
		r := test.Request(suite.T(), suite.db, http.MethodGet, "http://example.com/v1"+path, "", test.AccountHeader(""))
		test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
		suite.Assert().Contains(r.Body.String(), "X-Account-ID", path)
	}

	// The root does not need an account
	r := test.Request(suite.T(), suite.db, http.MethodGet, "http://example.com/v1", "", test.AccountHeader(""))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestAccountHeaderBlank() {
	r := test.Request(suite.T(), suite.db, http.MethodGet, "http://example.com/v1/funds", "", test.AccountHeader("   "))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestOptions() {
	tests := []struct {
		path  string
		allow string
	}{
		{"", "OPTIONS, GET"},
		{"/funds", "OPTIONS, GET, POST"},
		{"/funds/65392deb-5e92-4268-b114-297faad6cdce", "OPTIONS, GET, PATCH"},
		{"/funds/65392deb-5e92-4268-b114-297faad6cdce/archive", "OPTIONS, POST"},
		{"/allocation-rules", "OPTIONS, GET, POST"},
		{"/allocation-rules/65392deb-5e92-4268-b114-297faad6cdce/deactivate", "OPTIONS, POST"},
		{"/transactions", "OPTIONS, GET, POST"},
		{"/transactions/export", "OPTIONS, GET"},
		{"/transfers", "OPTIONS, POST"},
		{"/transfers/65392deb-5e92-4268-b114-297faad6cdce", "OPTIONS, GET"},
		{"/periods", "OPTIONS, GET"},
		{"/periods/start", "OPTIONS, POST"},
		{"/periods/65392deb-5e92-4268-b114-297faad6cdce/close", "OPTIONS, POST"},
		{"/periods/65392deb-5e92-4268-b114-297faad6cdce/reopen", "OPTIONS, POST"},
		{"/periods/65392deb-5e92-4268-b114-297faad6cdce/runs", "OPTIONS, GET"},
		{"/audit-logs", "OPTIONS, GET"},
		{"/settings", "OPTIONS, GET, PATCH"},
		{"/balances", "OPTIONS, GET"},
		{"/dashboard", "OPTIONS, GET"},
		{"/backup", "OPTIONS, GET, POST"},
	}

	for _, tt := range tests {
		suite.T().Run(strings.TrimPrefix(tt.path, "/"), func(t *testing.T) {
			r := test.Request(t, suite.db, http.MethodOptions, "http://example.com/v1"+tt.path, "", test.AccountHeader(""))
			test.AssertHTTPStatus(t, &r, http.StatusNoContent)
			assert.Equal(t, tt.allow, r.Header().Get("allow"))
		})
	}
}

func (suite *TestSuiteStandard) TestInvalidID() {
	for _, path := range []string{"/funds/not-a-uuid", "/transfers/17", "/periods/nope/runs"} {
		r := test.Request(suite.T(), suite.db, http.MethodGet, "http://example.com/v1"+path, "")
		test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
		suite.Assert().Contains(r.Body.String(), "not a valid UUID", path)
	}
}

func (suite *TestSuiteStandard) TestDatabaseClosed() {
	suite.CloseDB()

	for _, path := range []string{"/funds", "/transactions", "/periods", "/balances", "/dashboard"} {
		r := test.Request(suite.T(), suite.db, http.MethodGet, "http://example.com/v1"+path, "")
		test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
	}
}

func (suite *TestSuiteStandard) TestMethodNotAllowed() {
	r := test.Request(suite.T(), suite.db, http.MethodDelete, "http://example.com/v1/funds", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusMethodNotAllowed)
}

func (suite *TestSuiteStandard) TestAmountOutOfRange() {
	fund := suite.createTestFund("Holidays")
	other := suite.createTestFund("Car")

	tests := []struct {
		path string
		body string
	}{
		{"/periods/start", `{"deposit": 184467440737095516.17}`},
		{"/periods/start", `{"deposit": 92233720368547758.08}`},
		{"/transactions", fmt.Sprintf(`{"fundId": "%s", "type": "INCOME", "amount": 184467440737095516.17}`, fund.ID)},
		{"/transfers", fmt.Sprintf(`{"fromFundId": "%s", "toFundId": "%s", "amount": 184467440737095516.17}`, fund.ID, other.ID)},
		{"/allocation-rules", fmt.Sprintf(`{"fundId": "%s", "mode": "FIXED", "amount": 184467440737095516.17}`, fund.ID)},
	}

	for _, tt := range tests {
		r := test.Request(suite.T(), suite.db, http.MethodPost, "http://example.com/v1"+tt.path, tt.body)
		test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
		suite.Assert().Contains(r.Body.String(), "too large", tt.path)
	}

	r := test.Request(suite.T(), suite.db, http.MethodPatch, "http://example.com/v1/settings", `{"monthlyDeposit": 184467440737095516.17}`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), suite.db, http.MethodGet, "http://example.com/v1/periods", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	var periods v1.Response[[]models.Period]
	test.DecodeResponse(suite.T(), &r, &periods)
	suite.Assert().Empty(periods.Data, "No period may be recorded for a rejected deposit")

	// The largest representable amount is accepted
	r = test.Request(suite.T(), suite.db, http.MethodPost, "http://example.com/v1/periods/start", `{"deposit": 92233720368547758.07}`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)
	suite.Assert().Contains(r.Body.String(), `"depositCents":9223372036854775807`)
}
