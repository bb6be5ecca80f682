package v1

import (
	"errors"
	"net/http"

	"github.com/epargne/backend/internal/auth"
	"github.com/epargne/backend/internal/httputil"
	"github.com/epargne/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// OptionsAllocationList returns the allowed HTTP methods
func OptionsAllocationList(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	_, err = models.ProjectForUser(models.DB, uri.ID.UUID, auth.UserID(c))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPost(c)
}

// OptionsAllocationDetail returns the allowed HTTP methods
func OptionsAllocationDetail(c *gin.Context) {
	var uri URIAllocation
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	_, err = allocationInProject(c, uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsPatchDelete(c)
}

// allocationInProject resolves the allocation from the URI and verifies that
// it belongs to the project in the URI.
func allocationInProject(c *gin.Context, uri URIAllocation) (models.Allocation, error) {
	allocation, err := models.AllocationForUser(models.DB, uri.AllocationID.UUID, auth.UserID(c))
	if err != nil {
		return models.Allocation{}, err
	}

	if allocation.ProjectID != uri.ID.UUID {
		return models.Allocation{}, models.ErrAllocationProjectMismatch
	}

	return allocation, nil
}

// GetAllocations returns all allocations of a project.
func GetAllocations(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AllocationListResponse{
			Error: &s,
		})
		return
	}

	project, err := models.ProjectForUser(models.DB, uri.ID.UUID, auth.UserID(c))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AllocationListResponse{
			Error: &s,
		})
		return
	}

	allocations, err := project.Allocations(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AllocationListResponse{
			Error: &s,
		})
		return
	}

	// When there are no resources, we want an empty list, not null
	// Therefore, we use make to create a slice with zero elements
	// which will be marshalled to an empty JSON array
	data := make([]Allocation, 0)
	for _, allocation := range allocations {
		data = append(data, newAllocation(c, allocation))
	}

	c.JSON(http.StatusOK, AllocationListResponse{Data: data})
}

// UpsertAllocation commits a part of an account's balance to the project. If
// the (project, account) pair already has an allocation, its amount is
// replaced, otherwise a new allocation is created.
func UpsertAllocation(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AllocationResponse{
			Error: &s,
		})
		return
	}

	var editable AllocationEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AllocationResponse{
			Error: &s,
		})
		return
	}

	allocation, err := models.UpsertAllocation(auth.UserID(c), uri.ID.UUID, editable.AccountID, editable.Amount)
	if err != nil {
		renderAllocationError(c, err)
		return
	}

	data := newAllocation(c, allocation)
	c.JSON(http.StatusCreated, AllocationResponse{Data: &data})
}

// UpdateAllocation changes the amount of an allocation.
func UpdateAllocation(c *gin.Context) {
	var uri URIAllocation
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AllocationResponse{
			Error: &s,
		})
		return
	}

	if _, err := allocationInProject(c, uri); err != nil {
		s := err.Error()
		c.JSON(status(err), AllocationResponse{
			Error: &s,
		})
		return
	}

	var editable AllocationEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AllocationResponse{
			Error: &s,
		})
		return
	}

	allocation, err := models.UpdateAllocationAmount(auth.UserID(c), uri.AllocationID.UUID, editable.Amount)
	if err != nil {
		renderAllocationError(c, err)
		return
	}

	data := newAllocation(c, allocation)
	c.JSON(http.StatusOK, AllocationResponse{Data: &data})
}

// DeleteAllocation removes an allocation from the project. The committed
// part of the account's balance becomes available again.
func DeleteAllocation(c *gin.Context) {
	var uri URIAllocation
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	if _, err := allocationInProject(c, uri); err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DeleteAllocation(auth.UserID(c), uri.AllocationID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// renderAllocationError renders an error from an allocation write. When the
// available balance was exceeded, the response carries the numeric breakdown
// of the shortfall.
func renderAllocationError(c *gin.Context, err error) {
	s := err.Error()

	var insufficient models.InsufficientBalanceError
	if errors.As(err, &insufficient) {
		c.JSON(http.StatusBadRequest, AllocationResponse{
			Error:   &s,
			Details: &insufficient,
		})
		return
	}

	c.JSON(status(err), AllocationResponse{
		Error: &s,
	})
}
