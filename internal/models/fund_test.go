package models_test

import (
	"github.com/fundledger/backend/internal/models"
)

func (suite *TestSuiteStandard) TestFundTrimWhitespace() {
	name := "\t Holidays  "
	fund := suite.createTestFund(models.Fund{Name: name, Description: " beach "})

	suite.Assert().Equal("Holidays", fund.Name)
	suite.Assert().Equal("beach", fund.Description)
}

func (suite *TestSuiteStandard) TestFundNameRequired() {
	err := suite.db.Create(&models.Fund{AccountID: "account", Name: "   "}).Error
	suite.Assert().ErrorIs(err, models.ErrFundNameEmpty)
	suite.Assert().ErrorIs(err, models.ErrValidation)
}

func (suite *TestSuiteStandard) TestFundAccountRequired() {
	err := suite.db.Create(&models.Fund{Name: "No owner"}).Error
	suite.Assert().ErrorIs(err, models.ErrAccountIDEmpty)
}

func (suite *TestSuiteStandard) TestFundKeepsPresetID() {
	fund := models.Fund{AccountID: "account", Name: "Restored", Active: true}
	fund.ID = [16]byte{1}

	suite.Require().Nil(suite.db.Create(&fund).Error)

	found, err := models.FindFund(suite.db, "account", fund.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal(fund.ID, found.ID)
	suite.Assert().True(found.Active)
}

func (suite *TestSuiteStandard) TestFundOtherAccountNotFound() {
	fund := suite.createTestFund(models.Fund{AccountID: "owner"})

	_, err := models.FindFund(suite.db, "thief", fund.ID)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}
