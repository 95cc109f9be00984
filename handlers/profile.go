package handlers

import (
	"net/http"

	"skillswap/models"
	"skillswap/utils"

	"github.com/gin-gonic/gin"
)

// currentUID pulls the authenticated user id set by the auth middleware.
func currentUID(c *gin.Context) string {
	uid, _ := c.Get("userID")
	s, _ := uid.(string)
	return s
}

// RegisterProfile ensures a profile exists for the authenticated user,
// creating it from the token claims on first login.
func (hb *HandlerBundle) RegisterProfile(c *gin.Context) {
	name := c.GetString("userName")
	email := c.GetString("userEmail")

	var body struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	// Body overrides token claims when provided.
	if err := c.ShouldBindJSON(&body); err == nil {
		if body.Name != "" {
			name = body.Name
		}
		if body.Email != "" {
			email = body.Email
		}
	}

	user, err := hb.ProfileSvc.EnsureProfile(currentUID(c), name, email)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetMyProfile returns the caller's full profile.
func (hb *HandlerBundle) GetMyProfile(c *gin.Context) {
	user, err := hb.ProfileSvc.GetProfile(currentUID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetPublicProfile returns another user's shareable profile.
func (hb *HandlerBundle) GetPublicProfile(c *gin.Context) {
	pub, err := hb.ProfileSvc.GetPublicProfile(c.Param("uid"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pub)
}

// UpdateMyProfile applies a partial update to the caller's profile.
func (hb *HandlerBundle) UpdateMyProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewInvalidInput("invalid request body: "+err.Error()))
		return
	}

	user, err := hb.ProfileSvc.UpdateProfile(currentUID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteMyProfile removes the caller's profile and all attached data.
func (hb *HandlerBundle) DeleteMyProfile(c *gin.Context) {
	if err := hb.ProfileSvc.DeleteProfile(currentUID(c)); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "profile deleted"})
}

// GetPlatformStats returns the admin analytics snapshot.
func (hb *HandlerBundle) GetPlatformStats(c *gin.Context) {
	stats, err := hb.ProfileSvc.GetStats()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
