package handlers

import (
	"net/http"

	"skillswap/models"
	"skillswap/utils"

	"github.com/gin-gonic/gin"
)

// BookSession creates a two-way session booking between the caller and a
// matched counterpart.
func (hb *HandlerBundle) BookSession(c *gin.Context) {
	var req models.BookSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewInvalidInput("invalid request body: "+err.Error()))
		return
	}

	result, err := hb.BookingSvc.BookTwoWaySession(c.Request.Context(), currentUID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "booking": result})
}

// ListMySessions returns the caller's sessions, optionally filtered by
// ?status=confirmed|completed|cancelled.
func (hb *HandlerBundle) ListMySessions(c *gin.Context) {
	status := c.Query("status")
	switch status {
	case "", models.SessionConfirmed, models.SessionCompleted, models.SessionCancelled:
	default:
		utils.RespondError(c, utils.NewInvalidInput("status must be confirmed, completed or cancelled"))
		return
	}

	sessions, err := hb.BookingSvc.ListSessions(currentUID(c), status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions, "count": len(sessions)})
}

// CancelSession cancels one of the caller's sessions.
func (hb *HandlerBundle) CancelSession(c *gin.Context) {
	if err := hb.BookingSvc.CancelSession(c.Request.Context(), currentUID(c), c.Param("sessionID")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "session cancelled"})
}
