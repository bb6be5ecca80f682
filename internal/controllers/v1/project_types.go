package v1

import (
	"fmt"
	"time"

	"github.com/epargne/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ProjectEditable struct {
	Name         string               `json:"name" example:"Road trip" default:""`                                                                      // Name of the project
	Description  string               `json:"description" example:"Three weeks through Portugal" default:""`                                            // A longer description for the project
	Emoji        string               `json:"emoji" example:"🚐" default:""`                                                                             // Emoji shown with the project
	TargetAmount decimal.Decimal      `json:"targetAmount" example:"3000" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // The amount to save up
	TargetDate   *time.Time           `json:"targetDate" example:"2027-06-01T00:00:00Z"`                                                                // Date the target should be reached, optional
	Status       models.ProjectStatus `json:"status" example:"ACTIVE" default:"ACTIVE"`                                                                 // Status of the project, set by the owner
}

// model returns the database resource for the editable fields
func (editable ProjectEditable) model() models.Project {
	return models.Project{
		Name:         editable.Name,
		Description:  editable.Description,
		Emoji:        editable.Emoji,
		TargetAmount: editable.TargetAmount,
		TargetDate:   editable.TargetDate,
		Status:       editable.Status,
	}
}

type ProjectLinks struct {
	Self        string `json:"self" example:"https://example.com/api/v1/projects/d1973db7-bbaf-40e8-a909-3e09a7e87237"`                    // The project itself
	Allocations string `json:"allocations" example:"https://example.com/api/v1/projects/d1973db7-bbaf-40e8-a909-3e09a7e87237/allocations"` // Allocations funding the project
}

// Project is the API v1 representation of a Project.
type Project struct {
	models.DefaultModel
	ProjectEditable
	CurrentAmount decimal.Decimal `json:"currentAmount" example:"750"` // Sum of all allocations funding the project
	Progress      int64           `json:"progress" example:"25"`       // Rounded percentage of the target covered by allocations
	Allocations   []Allocation    `json:"allocations"`                 // The allocations funding the project
	Links         ProjectLinks    `json:"links"`
}

// newProject builds the API resource. The allocations must already carry
// their accounts.
func newProject(c *gin.Context, model models.Project, allocations []models.Allocation) Project {
	url := c.GetString(string(models.ContextURL))

	allocated := decimal.Zero
	data := make([]Allocation, 0)
	for _, allocation := range allocations {
		allocated = allocated.Add(allocation.Amount)
		data = append(data, newAllocation(c, allocation))
	}

	return Project{
		DefaultModel: model.DefaultModel,
		ProjectEditable: ProjectEditable{
			Name:         model.Name,
			Description:  model.Description,
			Emoji:        model.Emoji,
			TargetAmount: model.TargetAmount,
			TargetDate:   model.TargetDate,
			Status:       model.Status,
		},
		CurrentAmount: allocated,
		Progress:      models.Progress(allocated, model.TargetAmount),
		Allocations:   data,
		Links: ProjectLinks{
			Self:        fmt.Sprintf("%s/v1/projects/%s", url, model.ID),
			Allocations: fmt.Sprintf("%s/v1/projects/%s/allocations", url, model.ID),
		},
	}
}

type ProjectListResponse struct {
	Data  []Project `json:"data"`                                                          // List of projects
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ProjectResponse struct {
	Data  *Project `json:"data"`                                                          // Data for the project
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
