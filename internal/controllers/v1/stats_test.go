package v1_test

import (
	"net/http"
	"time"

	v1 "github.com/epargne/backend/internal/controllers/v1"
	"github.com/epargne/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestStatsEmpty() {
	s := session(suite.T())

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/stats", "", s.header())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.StatsResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), 0, response.Data.AccountCount)
	assert.True(suite.T(), response.Data.TotalSavings.IsZero())
	assert.Len(suite.T(), response.Data.RecentContributions, 0)
}

func (suite *TestSuiteStandard) TestStats() {
	s := session(suite.T())
	account := createTestAccount(suite.T(), s, v1.AccountEditable{
		InitialBalance: decimal.NewFromInt(100),
	})

	_ = createTestContribution(suite.T(), s, v1.ContributionEditable{
		AccountID: account.Data.ID,
		Amount:    decimal.NewFromInt(50),
		Date:      time.Now(),
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/stats", "", s.header())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.StatsResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), 1, response.Data.AccountCount)
	assert.Equal(suite.T(), 1, response.Data.ContributionCount)
	assert.True(suite.T(), response.Data.TotalSavings.Equal(decimal.NewFromInt(150)))
	assert.True(suite.T(), response.Data.TotalContributionsThisMonth.Equal(decimal.NewFromInt(50)))
	assert.True(suite.T(), response.Data.MonthlyTrend.Equal(decimal.NewFromInt(100)))

	assert.Len(suite.T(), response.Data.RecentContributions, 1)
	assert.Equal(suite.T(), account.Data.Name, response.Data.RecentContributions[0].Account.Name)
}
