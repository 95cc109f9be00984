package handlers

import (
	"net/http"

	"skillswap/models"
	"skillswap/utils"

	"github.com/gin-gonic/gin"
)

// StoreCalendarToken saves the caller's calendar OAuth token for later syncs.
func (hb *HandlerBundle) StoreCalendarToken(c *gin.Context) {
	var req models.SyncCalendarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewInvalidInput("invalid request body: "+err.Error()))
		return
	}

	if err := hb.ProfileSvc.StoreCalendarToken(currentUID(c), req.AccessToken); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "calendar token stored"})
}

// SyncCalendar reconciles the caller's external calendar with their declared
// availability and returns the regenerated open slots.
func (hb *HandlerBundle) SyncCalendar(c *gin.Context) {
	var req models.SyncCalendarRequest
	// Token in the body is optional; a stored token is used otherwise.
	_ = c.ShouldBindJSON(&req)

	result, err := hb.ProfileSvc.SyncCalendar(c.Request.Context(), currentUID(c), req.AccessToken)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
