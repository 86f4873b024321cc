package ledger_test

import (
	"encoding/json"
	"time"

	"github.com/fundledger/backend/internal/ledger"
	"github.com/fundledger/backend/internal/models"
	"github.com/google/uuid"
)

// seedBackupData creates one of each backed up resource and returns the fund.
func (suite *TestSuiteStandard) seedBackupData() models.Fund {
	fund := suite.createTestFund(models.Fund{Name: "Travel"})
	suite.createTestRule(models.AllocationRule{FundID: fund.ID, Mode: models.RuleModePercent, PercentBasisPoints: percent(10000)})

	_, err := ledger.StartPeriod(suite.at(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)), account, 8000)
	suite.Require().Nil(err)

	suite.createTestTransaction(fund, models.TransactionTypeExpense, 3000)
	return fund
}

func (suite *TestSuiteStandard) TestExportBackup() {
	fund := suite.seedBackupData()
	suite.createTestFund(models.Fund{AccountID: "other"})

	backup, err := ledger.ExportBackup(suite.db, account)
	suite.Require().Nil(err)

	suite.Assert().Equal(ledger.BackupVersion, backup.Version)
	suite.Require().Len(backup.Funds, 1)
	suite.Assert().Equal(fund.ID, backup.Funds[0].ID)
	suite.Assert().Len(backup.AllocationRules, 1)
	suite.Assert().Len(backup.Periods, 1)
	suite.Assert().Len(backup.Transactions, 2)
}

func (suite *TestSuiteStandard) TestImportBackupRestoresSnapshot() {
	fund := suite.seedBackupData()

	backup, err := ledger.ExportBackup(suite.db, account)
	suite.Require().Nil(err)

	// Serialize like a downloaded file would be
	raw, err := json.Marshal(backup)
	suite.Require().Nil(err)

	// Change things after the backup was taken
	extra := suite.createTestFund(models.Fund{Name: "Added later"})
	suite.createTestTransaction(fund, models.TransactionTypeExpense, 5000)
	_, err = ledger.StartPeriod(suite.at(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)), account, 100)
	suite.Require().Nil(err)

	var restored ledger.Backup
	suite.Require().Nil(json.Unmarshal(raw, &restored))
	suite.Require().Nil(ledger.ImportBackup(suite.db, account, restored))

	_, err = models.FindFund(suite.db, account, extra.ID)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	balances, err := ledger.ComputeBalances(suite.db, account)
	suite.Require().Nil(err)
	suite.Assert().Equal(ledger.Balances{fund.ID: 5000}, balances)

	periods, err := ledger.ListPeriods(suite.db, account)
	suite.Require().Nil(err)
	suite.Require().Len(periods, 1)
	suite.Assert().Equal(backup.Periods[0].ID, periods[0].ID)

	// Runs of the replaced periods are gone
	suite.Assert().Equal(int64(0), suite.count(&models.AllocationRun{}, "account_id = ?", account))
	suite.Assert().Equal(int64(0), suite.count(&models.AllocationLine{}, "1 = 1"))
}

func (suite *TestSuiteStandard) TestImportBackupKeepsArchivedFunds() {
	fund := suite.createTestFund(models.Fund{})
	_, err := ledger.ArchiveFund(suite.db, account, fund.ID)
	suite.Require().Nil(err)

	backup, err := ledger.ExportBackup(suite.db, account)
	suite.Require().Nil(err)
	suite.Require().Nil(ledger.ImportBackup(suite.db, account, backup))

	stored, err := models.FindFund(suite.db, account, fund.ID)
	suite.Require().Nil(err)
	suite.Assert().False(stored.Active)
}

func (suite *TestSuiteStandard) TestImportBackupIntoOtherAccount() {
	suite.seedBackupData()

	backup, err := ledger.ExportBackup(suite.db, account)
	suite.Require().Nil(err)

	// Move the data: clear the source account, then import into the target
	suite.Require().Nil(ledger.ImportBackup(suite.db, account, ledger.Backup{}))
	suite.Require().Nil(ledger.ImportBackup(suite.db, "target", backup))

	funds, err := ledger.ListFunds(suite.db, "target")
	suite.Require().Nil(err)
	suite.Require().Len(funds, 1)
	suite.Assert().Equal("target", funds[0].AccountID)
	suite.Assert().Equal(int64(5000), funds[0].BalanceCents)

	funds, err = ledger.ListFunds(suite.db, account)
	suite.Require().Nil(err)
	suite.Assert().Empty(funds)
}

func (suite *TestSuiteStandard) TestImportBackupIsAtomic() {
	fund := suite.seedBackupData()

	missing := uuid.New()
	broken := ledger.Backup{
		Version: ledger.BackupVersion,
		Funds:   []models.Fund{{AccountID: account, Name: "New"}},
		Transactions: []models.Transaction{
			{AccountID: account, FundID: &missing, Type: models.TransactionTypeIncome, AmountCents: 1},
		},
	}

	err := ledger.ImportBackup(suite.db, account, broken)
	suite.Require().ErrorIs(err, models.ErrResourceNotFound)

	// Nothing was replaced
	stored, err := models.FindFund(suite.db, account, fund.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal("Travel", stored.Name)
	suite.Assert().Equal(int64(1), suite.count(&models.AllocationRun{}, "account_id = ?", account))
}

func (suite *TestSuiteStandard) TestImportBackupVersion() {
	err := ledger.ImportBackup(suite.db, account, ledger.Backup{Version: ledger.BackupVersion + 1})
	suite.Assert().ErrorIs(err, ledger.ErrBackupVersion)
}
