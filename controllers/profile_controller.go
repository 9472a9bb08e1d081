package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"oraconsole/pkg/logger"
	"oraconsole/services"
	"oraconsole/utils"
)

// profileSrv is the global profile administration service instance.
var profileSrv = services.NewProfileService()

// SetProfileService initializes the profile administration service instance.
func SetProfileService(s services.ProfileService) {
	profileSrv = s
}

func listProfiles(c *gin.Context) {
	c.HTML(http.StatusOK, "profiles_list.html", pageData(c, gin.H{
		"Profiles": profileSrv.GetAllProfiles(),
	}))
}

func showCreateProfile(c *gin.Context) {
	if !requireAnyPrivilege(c, "/profiles", "CREATE PROFILE") {
		return
	}
	c.HTML(http.StatusOK, "profiles_create.html", pageData(c, nil))
}

func createProfile(c *gin.Context) {
	if !requireAnyPrivilege(c, "/profiles", "CREATE PROFILE") {
		return
	}
	profileName := c.PostForm("profile_name")
	sessionsPerUser := c.PostForm("sessions_per_user")
	connectTime := c.PostForm("connect_time")
	idleTime := c.PostForm("idle_time")

	if err := profileSrv.CreateProfile(profileName, sessionsPerUser, connectTime, idleTime); err != nil {
		logger.Errorf("Failed to create profile %s: %v", profileName, err)
		setFlash(c, "error", friendlyError(err))
		c.Redirect(http.StatusFound, "/profiles/new")
		return
	}
	setFlash(c, "success", fmt.Sprintf("Profile %s created.", utils.NormalizeUsername(profileName)))
	c.Redirect(http.StatusFound, "/profiles")
}

func showEditProfile(c *gin.Context) {
	if !requireAnyPrivilege(c, "/profiles", "ALTER PROFILE") {
		return
	}
	profileName := c.Param("profile")
	profile, err := profileSrv.GetProfile(profileName)
	if err != nil || profile == nil {
		setFlash(c, "error", fmt.Sprintf("Profile %s was not found.", utils.NormalizeUsername(profileName)))
		c.Redirect(http.StatusFound, "/profiles")
		return
	}
	c.HTML(http.StatusOK, "profiles_edit.html", pageData(c, gin.H{
		"Profile": profile,
	}))
}

func updateProfile(c *gin.Context) {
	if !requireAnyPrivilege(c, "/profiles", "ALTER PROFILE") {
		return
	}
	profileName := c.Param("profile")
	sessionsPerUser := c.PostForm("sessions_per_user")
	connectTime := c.PostForm("connect_time")
	idleTime := c.PostForm("idle_time")

	if err := profileSrv.UpdateProfile(profileName, sessionsPerUser, connectTime, idleTime); err != nil {
		logger.Errorf("Failed to alter profile %s: %v", profileName, err)
		setFlash(c, "error", friendlyError(err))
		c.Redirect(http.StatusFound, "/profiles/"+utils.NormalizeUsername(profileName)+"/edit")
		return
	}
	setFlash(c, "success", fmt.Sprintf("Profile %s updated.", utils.NormalizeUsername(profileName)))
	c.Redirect(http.StatusFound, "/profiles")
}

func deleteProfile(c *gin.Context) {
	if !requireAnyPrivilege(c, "/profiles", "DROP PROFILE") {
		return
	}
	profileName := c.Param("profile")
	if err := profileSrv.DeleteProfile(profileName); err != nil {
		logger.Errorf("Failed to drop profile %s: %v", profileName, err)
		setFlash(c, "error", friendlyError(err))
	} else {
		setFlash(c, "success", fmt.Sprintf("Profile %s dropped.", utils.NormalizeUsername(profileName)))
	}
	c.Redirect(http.StatusFound, "/profiles")
}

// RegisterProfileRoutes sets up the profile administration endpoints.
func RegisterProfileRoutes(rg *gin.RouterGroup) {
	rg.GET("/profiles", listProfiles)
	rg.GET("/profiles/new", showCreateProfile)
	rg.POST("/profiles", createProfile)
	rg.GET("/profiles/:profile/edit", showEditProfile)
	rg.POST("/profiles/:profile/edit", updateProfile)
	rg.POST("/profiles/:profile/delete", deleteProfile)
}
