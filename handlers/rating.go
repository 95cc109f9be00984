package handlers

import (
	"net/http"

	"skillswap/models"
	"skillswap/utils"

	"github.com/gin-gonic/gin"
)

// RateSession records a 1-5 rating of a mentor for a finished session.
func (hb *HandlerBundle) RateSession(c *gin.Context) {
	var req models.RateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewInvalidInput("invalid request body: "+err.Error()))
		return
	}

	result, err := hb.RatingSvc.RateSession(c.Request.Context(), currentUID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "rating": result})
}
