package v1

import (
	"fmt"

	"github.com/epargne/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AllocationEditable struct {
	AccountID uuid.UUID       `json:"accountId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`                                 // ID of the account the allocation draws from
	Amount    decimal.Decimal `json:"amount" example:"250" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // The amount committed to the project
}

type AllocationLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/projects/d1973db7-bbaf-40e8-a909-3e09a7e87237/allocations/a7b6f0b2-4f88-4e27-ba0c-08e3d8a9d4dd"` // The allocation itself
	Project string `json:"project" example:"https://example.com/api/v1/projects/d1973db7-bbaf-40e8-a909-3e09a7e87237"`                                               // The project the allocation funds
	Account string `json:"account" example:"https://example.com/api/v1/accounts/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`                                               // The account the allocation draws from
}

// AllocationAccount summarizes the account an allocation draws from.
type AllocationAccount struct {
	ID             uuid.UUID       `json:"id" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // ID of the account
	Name           string          `json:"name" example:"Livret A"`                           // Name of the account
	CurrentBalance decimal.Decimal `json:"currentBalance" example:"271.12"`                   // Current balance of the account
}

// Allocation is the API v1 representation of an Allocation.
type Allocation struct {
	models.DefaultModel
	AllocationEditable
	ProjectID uuid.UUID         `json:"projectId" example:"d1973db7-bbaf-40e8-a909-3e09a7e87237"` // ID of the project the allocation funds
	Account   AllocationAccount `json:"account"`                                                  // The account the allocation draws from
	Links     AllocationLinks   `json:"links"`
}

// newAllocation builds the API resource. The Account relation on the model
// must be populated.
func newAllocation(c *gin.Context, model models.Allocation) Allocation {
	url := c.GetString(string(models.ContextURL))

	return Allocation{
		DefaultModel: model.DefaultModel,
		AllocationEditable: AllocationEditable{
			AccountID: model.AccountID,
			Amount:    model.Amount,
		},
		ProjectID: model.ProjectID,
		Account: AllocationAccount{
			ID:             model.Account.ID,
			Name:           model.Account.Name,
			CurrentBalance: model.Account.CurrentBalance,
		},
		Links: AllocationLinks{
			Self:    fmt.Sprintf("%s/v1/projects/%s/allocations/%s", url, model.ProjectID, model.ID),
			Project: fmt.Sprintf("%s/v1/projects/%s", url, model.ProjectID),
			Account: fmt.Sprintf("%s/v1/accounts/%s", url, model.AccountID),
		},
	}
}

type AllocationListResponse struct {
	Data  []Allocation `json:"data"`                                                          // List of allocations
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type AllocationResponse struct {
	Data    *Allocation                      `json:"data"`                                                      // Data for the allocation
	Error   *string                          `json:"error" example:"insufficient available balance in account"` // The error, if any occurred
	Details *models.InsufficientBalanceError `json:"details,omitempty"`                                         // Numeric breakdown when the available balance was exceeded
}
