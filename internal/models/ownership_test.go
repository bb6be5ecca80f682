package models_test

import (
	"github.com/epargne/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestOwnershipNotFoundBeforeForbidden() {
	user := suite.createTestUser(models.User{})

	// A resource that does not exist is NotFound for everyone, ownership is
	// only checked on resources that exist
	_, err := models.AccountForUser(models.DB, uuid.New(), user.ID)
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)

	_, err = models.ProjectForUser(models.DB, uuid.New(), user.ID)
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)

	_, err = models.ContributionForUser(models.DB, uuid.New(), user.ID)
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)

	_, err = models.AllocationForUser(models.DB, uuid.New(), user.ID)
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestOwnershipForbidden() {
	user := suite.createTestUser(models.User{})
	other := suite.createTestUser(models.User{})

	account := suite.createTestAccount(models.Account{
		UserID:         user.ID,
		InitialBalance: decimal.NewFromInt(1000),
	})
	project := suite.createTestProject(models.Project{UserID: user.ID})
	contribution := suite.recordTestContribution(user.ID, account.ID, decimal.NewFromInt(10))
	allocation, err := models.UpsertAllocation(user.ID, project.ID, account.ID, decimal.NewFromInt(10))
	assert.Nil(suite.T(), err)

	_, err = models.AccountForUser(models.DB, account.ID, other.ID)
	assert.ErrorIs(suite.T(), err, models.ErrForbidden)

	_, err = models.ProjectForUser(models.DB, project.ID, other.ID)
	assert.ErrorIs(suite.T(), err, models.ErrForbidden)

	// Indirect ownership through the account
	_, err = models.ContributionForUser(models.DB, contribution.ID, other.ID)
	assert.ErrorIs(suite.T(), err, models.ErrForbidden)

	// Indirect ownership through the project
	_, err = models.AllocationForUser(models.DB, allocation.ID, other.ID)
	assert.ErrorIs(suite.T(), err, models.ErrForbidden)
}

func (suite *TestSuiteStandard) TestOwnershipOwner() {
	user := suite.createTestUser(models.User{})

	account := suite.createTestAccount(models.Account{
		UserID:         user.ID,
		InitialBalance: decimal.NewFromInt(1000),
	})
	contribution := suite.recordTestContribution(user.ID, account.ID, decimal.NewFromInt(10))

	got, err := models.AccountForUser(models.DB, account.ID, user.ID)
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), account.ID, got.ID)

	gotContribution, err := models.ContributionForUser(models.DB, contribution.ID, user.ID)
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), contribution.ID, gotContribution.ID)
}
