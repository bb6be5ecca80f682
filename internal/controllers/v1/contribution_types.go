package v1

import (
	"fmt"
	"time"

	"github.com/epargne/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ContributionEditable struct {
	AccountID uuid.UUID       `json:"accountId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf"`                                            // ID of the account the contribution is paid into
	Amount    decimal.Decimal `json:"amount" example:"14.03" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // The amount of the contribution
	Date      time.Time       `json:"date" example:"2024-02-15T00:00:00Z"`                                                                 // Date of the contribution. Defaults to the current time.
	Note      string          `json:"note" example:"Birthday money" default:""`                                                            // A note for the contribution
}

type ContributionLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/contributions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The contribution itself
	Account string `json:"account" example:"https://example.com/api/v1/accounts/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`   // The account the contribution is paid into
}

// ContributionAccount summarizes the account a contribution is paid into.
type ContributionAccount struct {
	ID   uuid.UUID          `json:"id" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // ID of the account
	Name string             `json:"name" example:"Livret A"`                           // Name of the account
	Type models.AccountType `json:"type" example:"LIVRET_A"`                           // Savings product type
}

// Contribution is the API v1 representation of a Contribution.
type Contribution struct {
	models.DefaultModel
	ContributionEditable
	Account ContributionAccount `json:"account"` // The account the contribution is paid into
	Links   ContributionLinks   `json:"links"`
}

// newContribution builds the API resource. The Account relation on the model
// must be populated.
func newContribution(c *gin.Context, model models.Contribution) Contribution {
	url := c.GetString(string(models.ContextURL))

	return Contribution{
		DefaultModel: model.DefaultModel,
		ContributionEditable: ContributionEditable{
			AccountID: model.AccountID,
			Amount:    model.Amount,
			Date:      model.Date,
			Note:      model.Note,
		},
		Account: ContributionAccount{
			ID:   model.Account.ID,
			Name: model.Account.Name,
			Type: model.Account.Type,
		},
		Links: ContributionLinks{
			Self:    fmt.Sprintf("%s/v1/contributions/%s", url, model.ID),
			Account: fmt.Sprintf("%s/v1/accounts/%s", url, model.AccountID),
		},
	}
}

type ContributionListResponse struct {
	Data       []Contribution `json:"data"`                                                          // List of contributions
	Error      *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination    `json:"pagination"`                                                    // Pagination information
}

type ContributionResponse struct {
	Data  *Contribution `json:"data"`                                                          // Data for the contribution
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ContributionQueryFilter struct {
	AccountID string    `form:"account" filterField:"false"`   // By account ID
	FromDate  time.Time `form:"fromDate" filterField:"false"`  // From this date. Time is ignored.
	UntilDate time.Time `form:"untilDate" filterField:"false"` // Until this date. Time is ignored.
	Offset    uint      `form:"offset" filterField:"false"`    // The offset of the first Contribution returned. Defaults to 0.
	Limit     int       `form:"limit" filterField:"false"`     // Maximum number of Contributions to return. Defaults to 50.
}
