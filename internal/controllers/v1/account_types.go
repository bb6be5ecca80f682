package v1

import (
	"fmt"

	"github.com/epargne/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AccountEditable struct {
	Name           string             `json:"name" example:"Livret A" default:""`                                                                              // Name of the account
	Type           models.AccountType `json:"type" example:"LIVRET_A" default:"AUTRE"`                                                                         // Savings product type
	InterestRate   decimal.Decimal    `json:"interestRate" example:"3" default:"0" minimum:"0" multipleOf:"0.00000001"`                                        // Yearly interest rate in percent, informational only
	InitialBalance decimal.Decimal    `json:"initialBalance" example:"173.12" default:"0" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // Balance of the account before any contributions were recorded
}

// model returns the database resource for the editable fields
func (editable AccountEditable) model() models.Account {
	return models.Account{
		Name:           editable.Name,
		Type:           editable.Type,
		InterestRate:   editable.InterestRate,
		InitialBalance: editable.InitialBalance,
	}
}

type AccountLinks struct {
	Self          string `json:"self" example:"https://example.com/api/v1/accounts/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`                       // The account itself
	Contributions string `json:"contributions" example:"https://example.com/api/v1/contributions?account=af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // Contributions paid into the account
}

// AccountAllocation summarizes an allocation drawing from the account's
// balance.
type AccountAllocation struct {
	ID          uuid.UUID       `json:"id" example:"d430d7c3-d14c-4712-9336-ee56965a6673"`        // ID of the allocation
	ProjectID   uuid.UUID       `json:"projectId" example:"059357bc-8dfd-4627-9741-4d2e929e9373"` // ID of the project the amount is committed to
	ProjectName string          `json:"projectName" example:"Vacances"`                           // Name of the project
	Amount      decimal.Decimal `json:"amount" example:"100"`                                     // The committed amount
}

// Account is the API v1 representation of an Account.
type Account struct {
	models.DefaultModel
	AccountEditable
	CurrentBalance    decimal.Decimal     `json:"currentBalance" example:"271.12"` // Initial balance plus all contributions
	ContributionCount int64               `json:"contributionCount" example:"7"`   // Number of contributions recorded for the account
	Allocations       []AccountAllocation `json:"allocations"`                     // Allocations drawing from the account's balance
	Links             AccountLinks        `json:"links"`
}

func newAccount(c *gin.Context, model models.Account, contributionCount int64, allocations []models.Allocation) Account {
	url := c.GetString(string(models.ContextURL))

	// When there are no allocations, we want an empty list, not null
	embedded := make([]AccountAllocation, 0)
	for _, allocation := range allocations {
		embedded = append(embedded, AccountAllocation{
			ID:          allocation.ID,
			ProjectID:   allocation.ProjectID,
			ProjectName: allocation.Project.Name,
			Amount:      allocation.Amount,
		})
	}

	return Account{
		DefaultModel: model.DefaultModel,
		AccountEditable: AccountEditable{
			Name:           model.Name,
			Type:           model.Type,
			InterestRate:   model.InterestRate,
			InitialBalance: model.InitialBalance,
		},
		CurrentBalance:    model.CurrentBalance,
		ContributionCount: contributionCount,
		Allocations:       embedded,
		Links: AccountLinks{
			Self:          fmt.Sprintf("%s/v1/accounts/%s", url, model.ID),
			Contributions: fmt.Sprintf("%s/v1/contributions?account=%s", url, model.ID),
		},
	}
}

type AccountListResponse struct {
	Data  []Account `json:"data"`                                                          // List of accounts
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type AccountResponse struct {
	Data  *Account `json:"data"`                                                          // Data for the account
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
