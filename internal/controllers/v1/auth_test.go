package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/epargne/backend/internal/controllers/v1"
	"github.com/epargne/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestRegister() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/register", v1.RegisterEditable{
		Email:    "jane@example.com",
		Name:     "Jane",
		Password: "correct horse battery",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.SessionResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.NotEmpty(suite.T(), response.Data.Token)
	assert.Equal(suite.T(), "jane@example.com", response.Data.User.Email)
	assert.Equal(suite.T(), "Jane", response.Data.User.Name)
}

func (suite *TestSuiteStandard) TestRegisterInvalid() {
	tests := []struct {
		name string
		body v1.RegisterEditable
	}{
		{"invalid email", v1.RegisterEditable{Email: "not-an-email", Password: "correct horse battery"}},
		{"short password", v1.RegisterEditable{Email: "jane@example.com", Password: "short"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/register", tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestRegisterEmailTaken() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/register", v1.RegisterEditable{
		Email:    "jane@example.com",
		Password: "correct horse battery",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	r = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/register", v1.RegisterEditable{
		Email:    "jane@example.com",
		Password: "correct horse battery",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestLogin() {
	_ = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/register", v1.RegisterEditable{
		Email:    "jane@example.com",
		Name:     "Jane",
		Password: "correct horse battery",
	})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/login", v1.LoginEditable{
		Email:    "jane@example.com",
		Password: "correct horse battery",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SessionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.NotEmpty(suite.T(), response.Data.Token)
}

func (suite *TestSuiteStandard) TestLoginWrongPassword() {
	_ = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/register", v1.RegisterEditable{
		Email:    "jane@example.com",
		Password: "correct horse battery",
	})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/login", v1.LoginEditable{
		Email:    "jane@example.com",
		Password: "wrong password",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)
}

// TestAuthRequired verifies that resource endpoints reject requests without
// a valid token.
func (suite *TestSuiteStandard) TestAuthRequired() {
	tests := []struct {
		name    string
		headers map[string]string
	}{
		{"no header", nil},
		{"malformed header", map[string]string{"Authorization": "no bearer prefix"}},
		{"invalid token", map[string]string{"Authorization": "Bearer not.a.token"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var r = test.Request(t, http.MethodGet, "http://example.com/v1/accounts", "", tt.headers)
			test.AssertHTTPStatus(t, &r, http.StatusUnauthorized)
		})
	}
}
