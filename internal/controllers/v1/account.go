package v1

import (
	"net/http"

	"github.com/epargne/backend/internal/auth"
	"github.com/epargne/backend/internal/httputil"
	"github.com/epargne/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterAccountRoutes registers the routes for accounts with
// the RouterGroup that is passed.
func RegisterAccountRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsAccountList)
		r.GET("", GetAccounts)
		r.POST("", CreateAccount)
	}

	// Account with ID
	{
		r.OPTIONS("/:id", OptionsAccountDetail)
		r.GET("/:id", GetAccount)
		r.PATCH("/:id", UpdateAccount)
		r.DELETE("/:id", DeleteAccount)
	}
}

// OptionsAccountList returns the allowed HTTP methods
func OptionsAccountList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// accountResource loads the embedded contribution count and allocations for
// an account and builds the API resource.
func accountResource(c *gin.Context, model models.Account) (Account, error) {
	count, err := model.ContributionCount(models.DB)
	if err != nil {
		return Account{}, err
	}

	allocations, err := model.Allocations(models.DB)
	if err != nil {
		return Account{}, err
	}

	return newAccount(c, model, count, allocations), nil
}

// OptionsAccountDetail returns the allowed HTTP methods
func OptionsAccountDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	_, err = models.AccountForUser(models.DB, uri.ID.UUID, auth.UserID(c))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// CreateAccount creates a new account for the authenticated user.
func CreateAccount(c *gin.Context) {
	var editable AccountEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	account := editable.model()
	account.UserID = auth.UserID(c)

	err = models.DB.Create(&account).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	// A fresh account has no contributions or allocations yet
	data := newAccount(c, account, 0, nil)
	c.JSON(http.StatusCreated, AccountResponse{Data: &data})
}

// GetAccounts returns all accounts of the authenticated user.
func GetAccounts(c *gin.Context) {
	var accounts []models.Account
	err := models.DB.
		Where(&models.Account{UserID: auth.UserID(c)}).
		Order("name ASC").
		Find(&accounts).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountListResponse{
			Error: &s,
		})
		return
	}

	// When there are no resources, we want an empty list, not null
	// Therefore, we use make to create a slice with zero elements
	// which will be marshalled to an empty JSON array
	data := make([]Account, 0)
	for _, account := range accounts {
		resource, err := accountResource(c, account)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), AccountListResponse{
				Error: &s,
			})
			return
		}

		data = append(data, resource)
	}

	c.JSON(http.StatusOK, AccountListResponse{Data: data})
}

// GetAccount returns a specific account.
func GetAccount(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	account, err := models.AccountForUser(models.DB, uri.ID.UUID, auth.UserID(c))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	data, err := accountResource(c, account)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, AccountResponse{Data: &data})
}

// UpdateAccount updates an account. Only values to be updated need to be
// specified. The initial balance is fixed at creation, updates to it are
// ignored.
func UpdateAccount(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	account, err := models.AccountForUser(models.DB, uri.ID.UUID, auth.UserID(c))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, AccountEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	// The balance history depends on the initial balance staying fixed
	idx := slices.Index(updateFields, any("InitialBalance"))
	if idx >= 0 {
		updateFields = slices.Delete(updateFields, idx, idx+1)
	}

	var data AccountEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&account).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	apiResource, err := accountResource(c, account)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, AccountResponse{Data: &apiResource})
}

// DeleteAccount deletes an account with all its contributions and
// allocations.
func DeleteAccount(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DeleteAccount(auth.UserID(c), uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
