package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	subscriptiondomain "github.com/subsynclabs/subsync/internal/subscription/domain"
)

// GetUserSubscription returns the user's current plan summary.
func (s *Server) GetUserSubscription(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	plan, err := s.subscriptionSvc.GetUserPlan(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, subscriptiondomain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "subscription lookup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": plan})
}
