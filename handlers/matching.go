package handlers

import (
	"net/http"
	"strconv"

	"skillswap/utils"

	"github.com/gin-gonic/gin"
)

// FindMatches returns the ranked mentor candidates for the caller. An
// optional ?limit= query caps the result size.
func (hb *HandlerBundle) FindMatches(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			utils.RespondError(c, utils.NewInvalidInput("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	matches, err := hb.MatchingSvc.FindMatches(currentUID(c), limit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches, "count": len(matches)})
}

// DenyMentor records the caller's rejection of a mentor.
func (hb *HandlerBundle) DenyMentor(c *gin.Context) {
	var body struct {
		MentorUID string `json:"mentorUid"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.MentorUID == "" {
		utils.RespondError(c, utils.NewInvalidInput("mentorUid is required"))
		return
	}

	if err := hb.MatchingSvc.DenyMentor(currentUID(c), body.MentorUID); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "mentor will no longer appear in your matches"})
}

// GetMentorProfile returns a matched mentor's public profile.
func (hb *HandlerBundle) GetMentorProfile(c *gin.Context) {
	mentor, err := hb.MatchingSvc.GetMentorProfile(c.Param("uid"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mentor)
}
