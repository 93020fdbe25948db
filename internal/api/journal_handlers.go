package api

import (
	"net/http"
	"strings"

	"innerlog/internal/profile"

	"github.com/gin-gonic/gin"
)

type JournalEntryRequest struct {
	Text string `json:"text"`
}

// POST /journal/entries
// Analyzes one journal entry, folds it into the caller's profile, and
// returns the detection plus any alerts.
func AnalyzeEntryHandler(svc *profile.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Not authenticated"}})
			return
		}
		var req JournalEntryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid request"}})
			return
		}
		if strings.TrimSpace(req.Text) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Entry text required"}})
			return
		}
		analysis, err := svc.AnalyzeEntry(c.Request.Context(), userID, req.Text)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to save analysis"}})
			return
		}
		c.JSON(http.StatusOK, analysis)
	}
}

// GET /journal/profile
func GetProfileHandler(svc *profile.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Not authenticated"}})
			return
		}
		c.JSON(http.StatusOK, svc.GetProfile(c.Request.Context(), userID))
	}
}

// GET /journal/context
// Returns the compressed profile summary used to prime downstream
// generation prompts.
func ProfileContextHandler(svc *profile.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Not authenticated"}})
			return
		}
		rendered, err := svc.Context(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to build context"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"context": rendered})
	}
}
