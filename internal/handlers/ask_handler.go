package handlers

import (
	"net/http"
	"time"

	"github.com/HavishJadav/mkonnekt-assignment/internal/agent"

	"github.com/gin-gonic/gin"
)

type AskRequest struct {
	Message string `json:"message" binding:"required"`
}

// AskInsight runs one query turn through the insight agent. Every outcome
// is a 200 with an outcome tag; the only errors are bad requests.
func AskInsight(a *agent.Agent) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
			return
		}

		ans := a.Answer(c.Request.Context(), req.Message, time.Now())

		c.JSON(http.StatusOK, gin.H{
			"outcome": ans.Outcome.String(),
			"range":   gin.H{"start": ans.Start, "end": ans.End},
			"intents": ans.Intents,
			"results": ans.Results,
			"message": ans.Message,
			"summary": ans.Summary,
		})
	}
}
