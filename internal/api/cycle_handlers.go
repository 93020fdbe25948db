package api

import (
	"net/http"
	"strconv"

	"innerlog/internal/cycle"

	"github.com/gin-gonic/gin"
)

// POST /cycle/logs
// Merges a partial update into today's daily log.
func LogDayHandler(svc *cycle.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Not authenticated"}})
			return
		}
		var update cycle.LogUpdate
		if err := c.ShouldBindJSON(&update); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid request"}})
			return
		}
		entry, err := svc.LogToday(c.Request.Context(), userID, update)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to save log"}})
			return
		}
		c.JSON(http.StatusOK, entry)
	}
}

// GET /cycle/insights
func CycleInsightsHandler(svc *cycle.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Not authenticated"}})
			return
		}
		report, err := svc.CurrentInsights(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to compute insights"}})
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

// GET /cycle/suggestions?daysUntilPeriod=5&phase=luteal
func CycleSuggestionsHandler(svc *cycle.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Not authenticated"}})
			return
		}
		days, err := strconv.Atoi(c.Query("daysUntilPeriod"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "daysUntilPeriod must be an integer"}})
			return
		}
		phase := cycle.Phase(c.Query("phase"))
		suggestions, err := svc.Suggestions(c.Request.Context(), userID, days, phase)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to compute suggestions"}})
			return
		}
		if suggestions == nil {
			suggestions = []string{}
		}
		c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
	}
}
