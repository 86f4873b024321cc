package ledger_test

import (
	"encoding/json"
	"time"

	"github.com/fundledger/backend/internal/ledger"
	"github.com/fundledger/backend/internal/models"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) startTestPeriod(now time.Time) models.Period {
	result, err := ledger.StartPeriod(suite.at(now), account, 0)
	if err != nil {
		suite.Assert().FailNow("Period could not be started", "Error: %s", err)
	}
	return result.Period
}

func (suite *TestSuiteStandard) auditLogs() []models.AuditLog {
	entries, err := ledger.ListAuditLogs(suite.db, account)
	suite.Require().Nil(err)
	return entries
}

func (suite *TestSuiteStandard) TestClosePeriod() {
	closedAt := time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC)
	period := suite.startTestPeriod(time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC))

	closed, err := ledger.ClosePeriod(suite.at(closedAt), account, period.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal(models.PeriodStatusClosed, closed.Status)
	suite.Require().NotNil(closed.ClosedAt)
	suite.Assert().Equal(closedAt, *closed.ClosedAt)

	entries := suite.auditLogs()
	suite.Require().Len(entries, 1)
	suite.Assert().Equal(models.AuditActionPeriodClosed, entries[0].Action)
	suite.Assert().Equal(period.ID.String(), entries[0].Context)
}

func (suite *TestSuiteStandard) TestClosePeriodIdempotent() {
	period := suite.startTestPeriod(time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC))

	first, err := ledger.ClosePeriod(suite.at(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)), account, period.ID)
	suite.Require().Nil(err)

	second, err := ledger.ClosePeriod(suite.at(time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)), account, period.ID)
	suite.Require().Nil(err)

	suite.Assert().Equal(models.PeriodStatusClosed, second.Status)
	suite.Assert().Equal(*first.ClosedAt, *second.ClosedAt, "closing again must not move the closing time")
	suite.Assert().Len(suite.auditLogs(), 1)
}

func (suite *TestSuiteStandard) TestReopenPeriod() {
	period := suite.startTestPeriod(time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC))

	_, err := ledger.ClosePeriod(suite.db, account, period.ID)
	suite.Require().Nil(err)

	reopened, err := ledger.ReopenPeriod(suite.db, account, period.ID, "forgot the rent")
	suite.Require().Nil(err)
	suite.Assert().Equal(models.PeriodStatusOpen, reopened.Status)
	suite.Assert().Nil(reopened.ClosedAt)

	// Reopening an open period changes nothing
	again, err := ledger.ReopenPeriod(suite.db, account, period.ID, "again")
	suite.Require().Nil(err)
	suite.Assert().Equal(models.PeriodStatusOpen, again.Status)

	var reopens []models.AuditLog
	for _, entry := range suite.auditLogs() {
		if entry.Action == models.AuditActionPeriodReopened {
			reopens = append(reopens, entry)
		}
	}
	suite.Require().Len(reopens, 1)

	var context struct {
		PeriodID string `json:"periodId"`
		Reason   string `json:"reason"`
	}
	suite.Require().Nil(json.Unmarshal([]byte(reopens[0].Context), &context))
	suite.Assert().Equal(period.ID.String(), context.PeriodID)
	suite.Assert().Equal("forgot the rent", context.Reason)
}

func (suite *TestSuiteStandard) TestReopenPeriodEmptyReason() {
	period := suite.startTestPeriod(time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC))

	_, err := ledger.ClosePeriod(suite.db, account, period.ID)
	suite.Require().Nil(err)

	reopened, err := ledger.ReopenPeriod(suite.db, account, period.ID, "")
	suite.Require().Nil(err)
	suite.Assert().Equal(models.PeriodStatusOpen, reopened.Status)
}

func (suite *TestSuiteStandard) TestPeriodCycles() {
	period := suite.startTestPeriod(time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC))

	for i := 0; i < 3; i++ {
		_, err := ledger.ClosePeriod(suite.db, account, period.ID)
		suite.Require().Nil(err)

		_, err = ledger.ReopenPeriod(suite.db, account, period.ID, "cycle")
		suite.Require().Nil(err)
	}

	suite.Assert().Len(suite.auditLogs(), 6)
}

func (suite *TestSuiteStandard) TestPeriodTransitionNotFound() {
	period := suite.startTestPeriod(time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC))

	_, err := ledger.ClosePeriod(suite.db, account, uuid.New())
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	_, err = ledger.ClosePeriod(suite.db, "other", period.ID)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	_, err = ledger.ReopenPeriod(suite.db, "other", period.ID, "nope")
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	suite.Assert().Empty(suite.auditLogs())
}

func (suite *TestSuiteStandard) TestListPeriods() {
	suite.startTestPeriod(time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC))
	suite.startTestPeriod(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	suite.startTestPeriod(time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC))

	periods, err := ledger.ListPeriods(suite.db, account)
	suite.Require().Nil(err)
	suite.Require().Len(periods, 3)
	suite.Assert().Equal("2024-02", periods[0].Span().String())
	suite.Assert().Equal("2023-12", periods[1].Span().String())
	suite.Assert().Equal("2023-11", periods[2].Span().String())
}

func (suite *TestSuiteStandard) TestListRunsOtherAccount() {
	period := suite.startTestPeriod(time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC))

	_, err := ledger.ListRuns(suite.db, "other", period.ID)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}
