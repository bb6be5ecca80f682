package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/epargne/backend/internal/auth"
	"github.com/epargne/backend/internal/httputil"
	"github.com/epargne/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterContributionRoutes registers the routes for contributions with
// the RouterGroup that is passed.
func RegisterContributionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsContributionList)
		r.GET("", GetContributions)
		r.POST("", CreateContribution)
	}

	// Contribution with ID
	{
		r.OPTIONS("/:id", OptionsContributionDetail)
		r.GET("/:id", GetContribution)
		r.PATCH("/:id", UpdateContribution)
		r.DELETE("/:id", DeleteContribution)
	}
}

// OptionsContributionList returns the allowed HTTP methods
func OptionsContributionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsContributionDetail returns the allowed HTTP methods
func OptionsContributionDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	_, err = models.ContributionForUser(models.DB, uri.ID.UUID, auth.UserID(c))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// CreateContribution records a contribution and adds its amount to the
// account's running balance.
func CreateContribution(c *gin.Context) {
	var editable ContributionEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContributionResponse{
			Error: &s,
		})
		return
	}

	contribution, err := models.RecordContribution(auth.UserID(c), editable.AccountID, editable.Amount, editable.Date, editable.Note)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContributionResponse{
			Error: &s,
		})
		return
	}

	data := newContribution(c, contribution)
	c.JSON(http.StatusCreated, ContributionResponse{Data: &data})
}

// GetContributions returns the contributions for all accounts of the
// authenticated user.
func GetContributions(c *gin.Context) {
	var filter ContributionQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ContributionListResponse{
			Error: &s,
		})
		return
	}

	// Get the fields set in the filter
	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Joins("JOIN accounts ON accounts.id = contributions.account_id").
		Where("accounts.user_id = ?", auth.UserID(c)).
		Order("datetime(contributions.date) DESC, datetime(contributions.created_at) DESC")

	if filter.AccountID != "" {
		accountID, err := httputil.UUIDFromString(filter.AccountID)
		if err != nil {
			s := fmt.Sprintf("Error parsing account ID for filtering: %s", err.Error())
			c.JSON(status(err), ContributionListResponse{
				Error: &s,
			})
			return
		}

		q = q.Where("contributions.account_id = ?", accountID)
	}

	if !filter.FromDate.IsZero() {
		q = q.Where("contributions.date >= date(?)", time.Date(filter.FromDate.Year(), filter.FromDate.Month(), filter.FromDate.Day(), 0, 0, 0, 0, time.UTC))
	}

	if !filter.UntilDate.IsZero() {
		q = q.Where("contributions.date < date(?)", time.Date(filter.UntilDate.Year(), filter.UntilDate.Month(), filter.UntilDate.Day()+1, 0, 0, 0, 0, time.UTC))
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 contributions and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit).Preload("Account")

	var contributions []models.Contribution
	err := q.Find(&contributions).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContributionListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContributionListResponse{
			Error: &s,
		})
		return
	}

	// When there are no resources, we want an empty list, not null
	// Therefore, we use make to create a slice with zero elements
	// which will be marshalled to an empty JSON array
	data := make([]Contribution, 0)
	for _, contribution := range contributions {
		data = append(data, newContribution(c, contribution))
	}

	c.JSON(http.StatusOK, ContributionListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// GetContribution returns a specific contribution.
func GetContribution(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContributionResponse{
			Error: &s,
		})
		return
	}

	contribution, err := models.ContributionForUser(models.DB, uri.ID.UUID, auth.UserID(c))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContributionResponse{
			Error: &s,
		})
		return
	}

	data := newContribution(c, contribution)
	c.JSON(http.StatusOK, ContributionResponse{Data: &data})
}

// UpdateContribution updates a contribution. Only values to be updated need
// to be specified. When the amount changes, the account's balance is adjusted
// by the difference. Contributions cannot be moved to another account.
func UpdateContribution(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContributionResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ContributionEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContributionResponse{
			Error: &s,
		})
		return
	}

	var editable ContributionEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContributionResponse{
			Error: &s,
		})
		return
	}

	var update models.ContributionUpdate
	if slices.Contains(updateFields, any("Amount")) {
		update.Amount = &editable.Amount
	}
	if slices.Contains(updateFields, any("Date")) {
		update.Date = &editable.Date
	}
	if slices.Contains(updateFields, any("Note")) {
		update.Note = &editable.Note
	}

	contribution, err := models.AmendContribution(auth.UserID(c), uri.ID.UUID, update)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContributionResponse{
			Error: &s,
		})
		return
	}

	data := newContribution(c, contribution)
	c.JSON(http.StatusOK, ContributionResponse{Data: &data})
}

// DeleteContribution deletes a contribution and removes its amount from the
// account's running balance.
func DeleteContribution(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.RemoveContribution(auth.UserID(c), uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
