package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Statistics are the dashboard aggregates for one user.
type Statistics struct {
	TotalSavings                decimal.Decimal `json:"totalSavings"`                // sum of all account balances
	TotalContributions          decimal.Decimal `json:"totalContributions"`          // sum of all contribution amounts
	TotalContributionsThisMonth decimal.Decimal `json:"totalContributionsThisMonth"` // contributions dated in the current month
	AverageMonthlyContributions decimal.Decimal `json:"averageMonthlyContributions"` // total divided by months since the first contribution
	MonthlyTrend                decimal.Decimal `json:"monthlyTrend"`                // percentage change of this month against last month
	AccountCount                int             `json:"accountCount"`
	ContributionCount           int             `json:"contributionCount"`
	RecentContributions         []Contribution  `json:"-"` // the five most recent contributions
}

// UserStatistics computes the dashboard aggregates for a user at a point in
// time. The trend is 100 when last month was empty but this month is not, and
// 0 when both are.
func UserStatistics(userID uuid.UUID, now time.Time) (Statistics, error) {
	now = now.In(time.UTC)
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	startOfNextMonth := startOfMonth.AddDate(0, 1, 0)
	startOfLastMonth := startOfMonth.AddDate(0, -1, 0)

	var accounts []Account
	err := DB.Where(&Account{UserID: userID}).Find(&accounts).Error
	if err != nil {
		return Statistics{}, err
	}

	stats := Statistics{
		AccountCount: len(accounts),
	}
	for _, account := range accounts {
		stats.TotalSavings = stats.TotalSavings.Add(account.CurrentBalance)
	}

	var contributions []Contribution
	err = DB.
		Joins("JOIN accounts ON accounts.id = contributions.account_id").
		Where("accounts.user_id = ?", userID).
		Order("datetime(contributions.date) DESC").
		Find(&contributions).Error
	if err != nil {
		return Statistics{}, err
	}

	stats.ContributionCount = len(contributions)
	if len(contributions) > 5 {
		stats.RecentContributions = contributions[:5]
	} else {
		stats.RecentContributions = contributions
	}

	var thisMonth, lastMonth decimal.Decimal
	first := now
	for _, contribution := range contributions {
		stats.TotalContributions = stats.TotalContributions.Add(contribution.Amount)

		if !contribution.Date.Before(startOfMonth) && contribution.Date.Before(startOfNextMonth) {
			thisMonth = thisMonth.Add(contribution.Amount)
		}

		if !contribution.Date.Before(startOfLastMonth) && contribution.Date.Before(startOfMonth) {
			lastMonth = lastMonth.Add(contribution.Amount)
		}

		if contribution.Date.Before(first) {
			first = contribution.Date
		}
	}
	stats.TotalContributionsThisMonth = thisMonth

	if len(contributions) > 0 {
		// Months between the first contribution and now, including the
		// current month
		months := (now.Year()-first.Year())*12 + int(now.Month()) - int(first.Month()) + 1
		if months < 1 {
			months = 1
		}

		stats.AverageMonthlyContributions = stats.TotalContributions.Div(decimal.NewFromInt(int64(months)))
	}

	hundred := decimal.NewFromInt(100)
	switch {
	case lastMonth.IsPositive():
		stats.MonthlyTrend = thisMonth.Sub(lastMonth).Div(lastMonth).Mul(hundred)
	case thisMonth.IsPositive():
		stats.MonthlyTrend = hundred
	}

	return stats, nil
}
