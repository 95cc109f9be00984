package handlers

import (
	"net/http"

	"skillswap/utils"

	"github.com/gin-gonic/gin"
)

// Health reports the latest dependency health snapshot.
func Health(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	// Before the first monitor tick the snapshot is zero-valued; report ok.
	if !status.CheckedAt.IsZero() && (!status.Mongo || !status.Redis) {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": status})
}
