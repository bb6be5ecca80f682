package models_test

import (
	"github.com/epargne/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestRegisterUser() {
	user, err := models.RegisterUser("Jane@Example.com ", "Jane", "correct horse battery")
	assert.Nil(suite.T(), err)

	// Email is normalized
	assert.Equal(suite.T(), "jane@example.com", user.Email)
	assert.NotEqual(suite.T(), "correct horse battery", user.Password, "Password was stored in plain text")
}

func (suite *TestSuiteStandard) TestRegisterUserEmailInvalid() {
	_, err := models.RegisterUser("not-an-email", "Jane", "correct horse battery")
	assert.ErrorIs(suite.T(), err, models.ErrEmailInvalid)
}

func (suite *TestSuiteStandard) TestRegisterUserPasswordTooShort() {
	_, err := models.RegisterUser("jane@example.com", "Jane", "short")
	assert.ErrorIs(suite.T(), err, models.ErrPasswordTooShort)
}

func (suite *TestSuiteStandard) TestRegisterUserEmailNotUnique() {
	_, err := models.RegisterUser("jane@example.com", "Jane", "correct horse battery")
	assert.Nil(suite.T(), err)

	_, err = models.RegisterUser("jane@example.com", "Other Jane", "correct horse battery")
	assert.ErrorIs(suite.T(), err, models.ErrEmailNotUnique)
}

func (suite *TestSuiteStandard) TestAuthenticateUser() {
	_, err := models.RegisterUser("jane@example.com", "Jane", "correct horse battery")
	assert.Nil(suite.T(), err)

	user, err := models.AuthenticateUser("jane@example.com", "correct horse battery")
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), "Jane", user.Name)
}

func (suite *TestSuiteStandard) TestAuthenticateUserWrongPassword() {
	_, err := models.RegisterUser("jane@example.com", "Jane", "correct horse battery")
	assert.Nil(suite.T(), err)

	_, err = models.AuthenticateUser("jane@example.com", "wrong password")
	assert.ErrorIs(suite.T(), err, models.ErrCredentialsInvalid)
}

func (suite *TestSuiteStandard) TestAuthenticateUserUnknownEmail() {
	_, err := models.AuthenticateUser("nobody@example.com", "correct horse battery")
	assert.ErrorIs(suite.T(), err, models.ErrCredentialsInvalid)
}
