package v1

import (
	"fmt"

	"github.com/epargne/backend/internal/models"
	"github.com/gin-gonic/gin"
)

type RegisterEditable struct {
	Email    string `json:"email" example:"jane@example.com" default:""` // Email address used for login
	Name     string `json:"name" example:"Jane" default:""`              // Display name of the user
	Password string `json:"password" example:"correct horse battery"`    // Password, at least 8 characters
}

type LoginEditable struct {
	Email    string `json:"email" example:"jane@example.com"`         // Email address used for login
	Password string `json:"password" example:"correct horse battery"` // Password of the user
}

type UserLinks struct {
	Accounts string `json:"accounts" example:"https://example.com/api/v1/accounts"` // Accounts of the user
	Projects string `json:"projects" example:"https://example.com/api/v1/projects"` // Projects of the user
	Stats    string `json:"stats" example:"https://example.com/api/v1/stats"`       // Statistics of the user
}

// User is the API v1 representation of a User.
type User struct {
	models.DefaultModel
	Email string    `json:"email" example:"jane@example.com"` // Email address used for login
	Name  string    `json:"name" example:"Jane"`              // Display name of the user
	Links UserLinks `json:"links"`
}

func newUser(c *gin.Context, model models.User) User {
	url := c.GetString(string(models.ContextURL))

	return User{
		DefaultModel: model.DefaultModel,
		Email:        model.Email,
		Name:         model.Name,
		Links: UserLinks{
			Accounts: fmt.Sprintf("%s/v1/accounts", url),
			Projects: fmt.Sprintf("%s/v1/projects", url),
			Stats:    fmt.Sprintf("%s/v1/stats", url),
		},
	}
}

// Session is returned after a successful registration or login.
type Session struct {
	Token string `json:"token"` // Bearer token for the Authorization header
	User  User   `json:"user"`  // The authenticated user
}

type SessionResponse struct {
	Data  *Session `json:"data"`                                               // The session, if authentication succeeded
	Error *string  `json:"error" example:"the email or password is incorrect"` // The error, if any occurred
}
