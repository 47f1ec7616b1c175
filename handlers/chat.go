package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"superclinic/utils"
)

// Assistant is the dialogue surface the chat endpoints need.
type Assistant interface {
	ProcessChat(ctx context.Context, userID, userMessage string) (string, error)
	ClearHistory(ctx context.Context, userID string) (bool, error)
}

// ChatRequest is the expected input for the chat endpoint.
type ChatRequest struct {
	UserID      string `json:"userid" binding:"required"`
	UserMessage string `json:"userMessage" binding:"required"`
}

// ChatHandler relays one user message through the assistant and returns the
// assistant's plain-text reply.
func ChatHandler(svc Assistant) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Both 'userid' and 'userMessage' are required.")
			return
		}

		reply, err := svc.ProcessChat(c.Request.Context(), req.UserID, req.UserMessage)
		if err != nil {
			utils.GetLogger().Error("Chat processing failed",
				zap.String("userId", req.UserID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Unable to contact the assistant at the moment. Please try again later.",
			})
			return
		}

		c.String(http.StatusOK, reply)
	}
}

// ClearChatHandler drops a user's conversation history.
func ClearChatHandler(svc Assistant) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userid")
		existed, err := svc.ClearHistory(c.Request.Context(), userID)
		if err != nil {
			utils.GetLogger().Error("Failed to clear chat history",
				zap.String("userId", userID), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to clear chat history.")
			return
		}
		c.JSON(http.StatusOK, gin.H{"cleared": existed, "userid": userID})
	}
}
