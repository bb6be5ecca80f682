package models_test

import (
	"strings"
	"testing"

	"github.com/epargne/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestProjectTrimWhitespace() {
	user := suite.createTestUser(models.User{})

	name := "  Road trip \t"
	description := " Three weeks through Portugal  "
	project := suite.createTestProject(models.Project{
		UserID:      user.ID,
		Name:        name,
		Description: description,
	})

	assert.Equal(suite.T(), strings.TrimSpace(name), project.Name)
	assert.Equal(suite.T(), strings.TrimSpace(description), project.Description)
}

func (suite *TestSuiteStandard) TestProjectStatusDefault() {
	user := suite.createTestUser(models.User{})

	project := suite.createTestProject(models.Project{UserID: user.ID})
	assert.Equal(suite.T(), models.ProjectStatusActive, project.Status)
}

func (suite *TestSuiteStandard) TestProjectStatusInvalid() {
	user := suite.createTestUser(models.User{})

	err := models.DB.Create(&models.Project{
		UserID:       user.ID,
		Name:         "Invalid status",
		TargetAmount: decimal.NewFromInt(100),
		Status:       "DONE",
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrProjectStatusInvalid)
}

func (suite *TestSuiteStandard) TestProjectUpdateStatusInvalid() {
	user := suite.createTestUser(models.User{})
	project := suite.createTestProject(models.Project{UserID: user.ID})

	err := models.DB.Model(&project).Select("", "Status").Updates(models.Project{Status: "BOGUS"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrProjectStatusInvalid)

	var reloaded models.Project
	assert.Nil(suite.T(), models.DB.First(&reloaded, project.ID).Error)
	assert.Equal(suite.T(), models.ProjectStatusActive, reloaded.Status)
}

func (suite *TestSuiteStandard) TestProjectTargetNotPositive() {
	user := suite.createTestUser(models.User{})

	err := models.DB.Create(&models.Project{
		UserID: user.ID,
		Name:   "No target",
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrProjectTargetNotPositive)
}

// TestProjectStatusStays verifies that reaching the target amount does not
// transition the project status.
func (suite *TestSuiteStandard) TestProjectStatusStays() {
	user := suite.createTestUser(models.User{})
	account := suite.createTestAccount(models.Account{
		UserID:         user.ID,
		InitialBalance: decimal.NewFromInt(1000),
	})
	project := suite.createTestProject(models.Project{
		UserID:       user.ID,
		TargetAmount: decimal.NewFromInt(500),
	})

	_, err := models.UpsertAllocation(user.ID, project.ID, account.ID, decimal.NewFromInt(500))
	assert.Nil(suite.T(), err)

	var reloaded models.Project
	assert.Nil(suite.T(), models.DB.First(&reloaded, project.ID).Error)
	assert.Equal(suite.T(), models.ProjectStatusActive, reloaded.Status)
}

func (suite *TestSuiteStandard) TestProjectAllocated() {
	user := suite.createTestUser(models.User{})
	accountOne := suite.createTestAccount(models.Account{
		UserID:         user.ID,
		InitialBalance: decimal.NewFromInt(1000),
	})
	accountTwo := suite.createTestAccount(models.Account{
		UserID:         user.ID,
		InitialBalance: decimal.NewFromInt(1000),
	})
	project := suite.createTestProject(models.Project{UserID: user.ID})

	_, err := models.UpsertAllocation(user.ID, project.ID, accountOne.ID, decimal.NewFromInt(300))
	assert.Nil(suite.T(), err)
	_, err = models.UpsertAllocation(user.ID, project.ID, accountTwo.ID, decimal.NewFromFloat(150.50))
	assert.Nil(suite.T(), err)

	allocated, err := project.Allocated(models.DB)
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), allocated.Equal(decimal.NewFromFloat(450.50)), "Allocated sum is wrong: %s", allocated)
}

func (suite *TestSuiteStandard) TestProgress() {
	tests := []struct {
		name      string
		allocated decimal.Decimal
		target    decimal.Decimal
		progress  int64
	}{
		{"quarter", decimal.NewFromInt(250), decimal.NewFromInt(1000), 25},
		{"rounds up", decimal.NewFromInt(666), decimal.NewFromInt(1000), 67},
		{"rounds down", decimal.NewFromInt(333), decimal.NewFromInt(1000), 33},
		{"overfunded", decimal.NewFromInt(1500), decimal.NewFromInt(1000), 150},
		{"zero target", decimal.NewFromInt(100), decimal.Zero, 0},
		{"nothing allocated", decimal.Zero, decimal.NewFromInt(1000), 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.progress, models.Progress(tt.allocated, tt.target))
		})
	}
}

func (suite *TestSuiteStandard) TestDeleteProjectCascades() {
	user := suite.createTestUser(models.User{})
	account := suite.createTestAccount(models.Account{
		UserID:         user.ID,
		InitialBalance: decimal.NewFromInt(1000),
	})
	project := suite.createTestProject(models.Project{UserID: user.ID})

	allocation, err := models.UpsertAllocation(user.ID, project.ID, account.ID, decimal.NewFromInt(1000))
	assert.Nil(suite.T(), err)

	assert.Nil(suite.T(), models.DeleteProject(user.ID, project.ID))

	assert.ErrorIs(suite.T(), models.DB.First(&models.Project{}, project.ID).Error, models.ErrResourceNotFound)
	assert.ErrorIs(suite.T(), models.DB.First(&models.Allocation{}, allocation.ID).Error, models.ErrResourceNotFound)

	// The account keeps its balance, the committed amount is free again
	availability, err := models.AccountAvailability(models.DB, account, uuid.Nil)
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), availability.Available.Equal(decimal.NewFromInt(1000)))
}

func (suite *TestSuiteStandard) TestDeleteProjectWrongUser() {
	user := suite.createTestUser(models.User{})
	other := suite.createTestUser(models.User{})
	project := suite.createTestProject(models.Project{UserID: user.ID})

	assert.ErrorIs(suite.T(), models.DeleteProject(other.ID, project.ID), models.ErrForbidden)
}
