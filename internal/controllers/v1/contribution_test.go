package v1_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	v1 "github.com/epargne/backend/internal/controllers/v1"
	"github.com/epargne/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// accountBalance reads the current balance of an account over the API.
func accountBalance(t *testing.T, s testSession, selfLink string) decimal.Decimal {
	r := test.Request(t, http.MethodGet, selfLink, "", s.header())
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var response v1.AccountResponse
	test.DecodeResponse(t, &r, &response)

	return response.Data.CurrentBalance
}

func (suite *TestSuiteStandard) TestContributionsCreate() {
	s := session(suite.T())
	account := createTestAccount(suite.T(), s, v1.AccountEditable{
		InitialBalance: decimal.NewFromInt(100),
	})

	contribution := createTestContribution(suite.T(), s, v1.ContributionEditable{
		AccountID: account.Data.ID,
		Amount:    decimal.NewFromFloat(14.03),
		Note:      "Birthday money",
	})

	assert.True(suite.T(), contribution.Data.Amount.Equal(decimal.NewFromFloat(14.03)))
	assert.Equal(suite.T(), account.Data.ID, contribution.Data.Account.ID)
	assert.Equal(suite.T(), account.Data.Name, contribution.Data.Account.Name)

	balance := accountBalance(suite.T(), s, account.Data.Links.Self)
	assert.True(suite.T(), balance.Equal(decimal.NewFromFloat(114.03)), "Balance was not incremented: %s", balance)
}

func (suite *TestSuiteStandard) TestContributionsCreateInvalid() {
	s := session(suite.T())
	account := createTestAccount(suite.T(), s, v1.AccountEditable{})

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"zero amount", v1.ContributionEditable{AccountID: account.Data.ID}, http.StatusBadRequest},
		{"negative amount", v1.ContributionEditable{AccountID: account.Data.ID, Amount: decimal.NewFromInt(-10)}, http.StatusBadRequest},
		{"unknown account", v1.ContributionEditable{AccountID: uuid.New(), Amount: decimal.NewFromInt(10)}, http.StatusNotFound},
		{"broken body", `{ "amount": "two" }`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/contributions", tt.body, s.header())
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestContributionsCreateForbidden() {
	s := session(suite.T())
	other := session(suite.T())
	account := createTestAccount(suite.T(), s, v1.AccountEditable{})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/contributions", v1.ContributionEditable{
		AccountID: account.Data.ID,
		Amount:    decimal.NewFromInt(10),
	}, other.header())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusForbidden)
}

func (suite *TestSuiteStandard) TestContributionsList() {
	s := session(suite.T())
	accountOne := createTestAccount(suite.T(), s, v1.AccountEditable{})
	accountTwo := createTestAccount(suite.T(), s, v1.AccountEditable{})

	for i := 0; i < 3; i++ {
		_ = createTestContribution(suite.T(), s, v1.ContributionEditable{
			AccountID: accountOne.Data.ID,
			Amount:    decimal.NewFromInt(int64(i + 1)),
			Date:      time.Date(2026, time.Month(i+1), 10, 0, 0, 0, 0, time.UTC),
		})
	}
	_ = createTestContribution(suite.T(), s, v1.ContributionEditable{
		AccountID: accountTwo.Data.ID,
		Amount:    decimal.NewFromInt(100),
		Date:      time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
	})

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"all", "", 4},
		{"by account", fmt.Sprintf("account=%s", accountOne.Data.ID), 3},
		{"from date", "fromDate=2026-03-01T00:00:00Z", 2},
		{"until date", "untilDate=2026-02-28T00:00:00Z", 2},
		{"limit", "limit=2", 2},
		{"offset", "offset=3", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/contributions?%s", tt.query), "", s.header())
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.ContributionListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}
}

func (suite *TestSuiteStandard) TestContributionsListScoped() {
	s := session(suite.T())
	other := session(suite.T())

	account := createTestAccount(suite.T(), other, v1.AccountEditable{})
	_ = createTestContribution(suite.T(), other, v1.ContributionEditable{
		AccountID: account.Data.ID,
		Amount:    decimal.NewFromInt(10),
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/contributions", "", s.header())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ContributionListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Len(suite.T(), response.Data, 0)
}

func (suite *TestSuiteStandard) TestContributionsUpdate() {
	s := session(suite.T())
	account := createTestAccount(suite.T(), s, v1.AccountEditable{
		InitialBalance: decimal.NewFromInt(100),
	})
	contribution := createTestContribution(suite.T(), s, v1.ContributionEditable{
		AccountID: account.Data.ID,
		Amount:    decimal.NewFromInt(50),
	})

	r := test.Request(suite.T(), http.MethodPatch, contribution.Data.Links.Self, map[string]any{
		"amount": "80",
	}, s.header())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ContributionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.Amount.Equal(decimal.NewFromInt(80)))

	// The balance moved by the difference
	balance := accountBalance(suite.T(), s, account.Data.Links.Self)
	assert.True(suite.T(), balance.Equal(decimal.NewFromInt(180)), "Balance is wrong after amending: %s", balance)
}

func (suite *TestSuiteStandard) TestContributionsUpdateNoteOnly() {
	s := session(suite.T())
	account := createTestAccount(suite.T(), s, v1.AccountEditable{})
	contribution := createTestContribution(suite.T(), s, v1.ContributionEditable{
		AccountID: account.Data.ID,
		Amount:    decimal.NewFromInt(50),
	})

	r := test.Request(suite.T(), http.MethodPatch, contribution.Data.Links.Self, map[string]any{
		"note": "Updated note",
	}, s.header())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ContributionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Updated note", response.Data.Note)
	assert.True(suite.T(), response.Data.Amount.Equal(decimal.NewFromInt(50)))

	balance := accountBalance(suite.T(), s, account.Data.Links.Self)
	assert.True(suite.T(), balance.Equal(decimal.NewFromInt(50)), "Balance changed on a note update: %s", balance)
}

func (suite *TestSuiteStandard) TestContributionsUpdateNoteTooLong() {
	s := session(suite.T())
	account := createTestAccount(suite.T(), s, v1.AccountEditable{})
	contribution := createTestContribution(suite.T(), s, v1.ContributionEditable{
		AccountID: account.Data.ID,
		Amount:    decimal.NewFromInt(50),
	})

	r := test.Request(suite.T(), http.MethodPatch, contribution.Data.Links.Self, map[string]any{
		"note": strings.Repeat("a", 501),
	}, s.header())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestContributionsDelete() {
	s := session(suite.T())
	account := createTestAccount(suite.T(), s, v1.AccountEditable{
		InitialBalance: decimal.NewFromInt(100),
	})
	contribution := createTestContribution(suite.T(), s, v1.ContributionEditable{
		AccountID: account.Data.ID,
		Amount:    decimal.NewFromInt(50),
	})

	r := test.Request(suite.T(), http.MethodDelete, contribution.Data.Links.Self, "", s.header())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	balance := accountBalance(suite.T(), s, account.Data.Links.Self)
	assert.True(suite.T(), balance.Equal(decimal.NewFromInt(100)), "Balance was not decremented: %s", balance)

	r = test.Request(suite.T(), http.MethodGet, contribution.Data.Links.Self, "", s.header())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestContributionsOwnership() {
	s := session(suite.T())
	other := session(suite.T())
	account := createTestAccount(suite.T(), s, v1.AccountEditable{})
	contribution := createTestContribution(suite.T(), s, v1.ContributionEditable{
		AccountID: account.Data.ID,
		Amount:    decimal.NewFromInt(50),
	})

	r := test.Request(suite.T(), http.MethodGet, contribution.Data.Links.Self, "", other.header())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusForbidden)

	r = test.Request(suite.T(), http.MethodDelete, contribution.Data.Links.Self, "", other.header())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusForbidden)
}
