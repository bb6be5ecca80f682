package v1

import (
	"net/http"
	"time"

	"github.com/epargne/backend/internal/auth"
	"github.com/epargne/backend/internal/httputil"
	"github.com/epargne/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterStatsRoutes registers the routes for statistics with
// the RouterGroup that is passed.
func RegisterStatsRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsStats)
	r.GET("", GetStats)
}

// Stats is the API v1 representation of a user's statistics.
type Stats struct {
	models.Statistics
	RecentContributions []Contribution `json:"recentContributions"` // The five most recent contributions
}

type StatsResponse struct {
	Data  *Stats  `json:"data"`                                                  // The statistics
	Error *string `json:"error" example:"an error occurred during your request"` // The error, if any occurred
}

// OptionsStats returns the allowed HTTP methods
func OptionsStats(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetStats returns the dashboard aggregates over all accounts and
// contributions of the authenticated user.
func GetStats(c *gin.Context) {
	statistics, err := models.UserStatistics(auth.UserID(c), time.Now())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StatsResponse{
			Error: &s,
		})
		return
	}

	// The recent contributions need their accounts for display
	recent := make([]Contribution, 0)
	for _, contribution := range statistics.RecentContributions {
		account, err := models.AccountForUser(models.DB, contribution.AccountID, auth.UserID(c))
		if err != nil {
			s := err.Error()
			c.JSON(status(err), StatsResponse{
				Error: &s,
			})
			return
		}

		contribution.Account = account
		recent = append(recent, newContribution(c, contribution))
	}

	data := Stats{
		Statistics:          statistics,
		RecentContributions: recent,
	}
	c.JSON(http.StatusOK, StatsResponse{Data: &data})
}
