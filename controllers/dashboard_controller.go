package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// showDashboard renders the landing page: entity counts, the caller's
// granted roles and whether they hold administrative privileges.
func showDashboard(c *gin.Context) {
	username := currentUser(c)

	users := userSrv.GetAllUsers(username)
	roles := roleSrv.GetAllRoles()
	profiles := profileSrv.GetAllProfiles()

	c.HTML(http.StatusOK, "dashboard.html", pageData(c, gin.H{
		"UserCount":    len(users),
		"RoleCount":    len(roles),
		"ProfileCount": len(profiles),
		"MyRoles":      userSrv.GetUserRoles(username),
		"IsAdmin":      authSrv.HasAdminCapabilities(username),
	}))
}

// RegisterDashboardRoutes sets up the landing page endpoint.
func RegisterDashboardRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", showDashboard)
}
