package v1

import (
	"net/http"

	"github.com/epargne/backend/internal/auth"
	"github.com/epargne/backend/internal/httputil"
	"github.com/epargne/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the unauthenticated routes for registration
// and login with the RouterGroup that is passed.
func RegisterAuthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/register", OptionsRegister)
	r.POST("/register", Register)

	r.OPTIONS("/login", OptionsLogin)
	r.POST("/login", Login)
}

// OptionsRegister returns the allowed HTTP methods
func OptionsRegister(c *gin.Context) {
	httputil.OptionsPost(c)
}

// OptionsLogin returns the allowed HTTP methods
func OptionsLogin(c *gin.Context) {
	httputil.OptionsPost(c)
}

// Register creates a new user and returns a session for it.
func Register(c *gin.Context) {
	var editable RegisterEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SessionResponse{
			Error: &s,
		})
		return
	}

	user, err := models.RegisterUser(editable.Email, editable.Name, editable.Password)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SessionResponse{
			Error: &s,
		})
		return
	}

	token, err := auth.NewToken(user.ID)
	if err != nil {
		s := models.ErrGeneral.Error()
		c.JSON(http.StatusInternalServerError, SessionResponse{
			Error: &s,
		})
		return
	}

	data := Session{
		Token: token,
		User:  newUser(c, user),
	}
	c.JSON(http.StatusCreated, SessionResponse{Data: &data})
}

// Login verifies the credentials and returns a session.
func Login(c *gin.Context) {
	var editable LoginEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SessionResponse{
			Error: &s,
		})
		return
	}

	user, err := models.AuthenticateUser(editable.Email, editable.Password)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SessionResponse{
			Error: &s,
		})
		return
	}

	token, err := auth.NewToken(user.ID)
	if err != nil {
		s := models.ErrGeneral.Error()
		c.JSON(http.StatusInternalServerError, SessionResponse{
			Error: &s,
		})
		return
	}

	data := Session{
		Token: token,
		User:  newUser(c, user),
	}
	c.JSON(http.StatusOK, SessionResponse{Data: &data})
}
