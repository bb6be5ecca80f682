package v1

import (
	"net/http"

	"github.com/epargne/backend/internal/auth"
	"github.com/epargne/backend/internal/httputil"
	"github.com/epargne/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterProjectRoutes registers the routes for projects and their
// allocations with the RouterGroup that is passed.
func RegisterProjectRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsProjectList)
		r.GET("", GetProjects)
		r.POST("", CreateProject)
	}

	// Project with ID
	{
		r.OPTIONS("/:id", OptionsProjectDetail)
		r.GET("/:id", GetProject)
		r.PATCH("/:id", UpdateProject)
		r.DELETE("/:id", DeleteProject)
	}

	// Allocations of a project
	{
		r.OPTIONS("/:id/allocations", OptionsAllocationList)
		r.GET("/:id/allocations", GetAllocations)
		r.POST("/:id/allocations", UpsertAllocation)
		r.OPTIONS("/:id/allocations/:allocationId", OptionsAllocationDetail)
		r.PATCH("/:id/allocations/:allocationId", UpdateAllocation)
		r.DELETE("/:id/allocations/:allocationId", DeleteAllocation)
	}
}

// OptionsProjectList returns the allowed HTTP methods
func OptionsProjectList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsProjectDetail returns the allowed HTTP methods
func OptionsProjectDetail(c *gin.Context) {
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

	httputil.OptionsGetPatchDelete(c)
}

// CreateProject creates a new project for the authenticated user.
func CreateProject(c *gin.Context) {
	var editable ProjectEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectResponse{
			Error: &s,
		})
		return
	}

	project := editable.model()
	project.UserID = auth.UserID(c)

	err = models.DB.Create(&project).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectResponse{
			Error: &s,
		})
		return
	}

	data := newProject(c, project, nil)
	c.JSON(http.StatusCreated, ProjectResponse{Data: &data})
}

// GetProjects returns all projects of the authenticated user with their
// allocations.
func GetProjects(c *gin.Context) {
	var projects []models.Project
	err := models.DB.
		Where(&models.Project{UserID: auth.UserID(c)}).
		Order("name ASC").
		Find(&projects).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectListResponse{
			Error: &s,
		})
		return
	}

	// When there are no resources, we want an empty list, not null
	// Therefore, we use make to create a slice with zero elements
	// which will be marshalled to an empty JSON array
	data := make([]Project, 0)
	for _, project := range projects {
		allocations, err := project.Allocations(models.DB)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), ProjectListResponse{
				Error: &s,
			})
			return
		}

		data = append(data, newProject(c, project, allocations))
	}

	c.JSON(http.StatusOK, ProjectListResponse{Data: data})
}

// GetProject returns a specific project with its allocations.
func GetProject(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectResponse{
			Error: &s,
		})
		return
	}

	project, err := models.ProjectForUser(models.DB, uri.ID.UUID, auth.UserID(c))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectResponse{
			Error: &s,
		})
		return
	}

	allocations, err := project.Allocations(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectResponse{
			Error: &s,
		})
		return
	}

	data := newProject(c, project, allocations)
	c.JSON(http.StatusOK, ProjectResponse{Data: &data})
}

// UpdateProject updates a project. Only values to be updated need to be
// specified. The status never changes on its own, it is only ever set here.
func UpdateProject(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectResponse{
			Error: &s,
		})
		return
	}

	project, err := models.ProjectForUser(models.DB, uri.ID.UUID, auth.UserID(c))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ProjectEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectResponse{
			Error: &s,
		})
		return
	}

	var data ProjectEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectResponse{
			Error: &s,
		})
		return
	}

	// The target stays positive over its whole life, not only at creation
	if slices.Contains(updateFields, any("TargetAmount")) && !data.TargetAmount.IsPositive() {
		s := models.ErrProjectTargetNotPositive.Error()
		c.JSON(http.StatusBadRequest, ProjectResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&project).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectResponse{
			Error: &s,
		})
		return
	}

	allocations, err := project.Allocations(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectResponse{
			Error: &s,
		})
		return
	}

	apiResource := newProject(c, project, allocations)
	c.JSON(http.StatusOK, ProjectResponse{Data: &apiResource})
}

// DeleteProject deletes a project with all its allocations. Accounts and
// contributions are not touched, the committed balance becomes available
// again.
func DeleteProject(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DeleteProject(auth.UserID(c), uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
