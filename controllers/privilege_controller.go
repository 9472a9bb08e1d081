package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"oraconsole/models"
	"oraconsole/pkg/logger"
	"oraconsole/services"
)

// privilegeSrv is the global privilege administration service instance.
var privilegeSrv = services.NewPrivilegeService()

// SetPrivilegeService initializes the privilege administration service instance.
func SetPrivilegeService(s services.PrivilegeService) {
	privilegeSrv = s
}

func listPrivileges(c *gin.Context) {
	c.HTML(http.StatusOK, "privileges_list.html", pageData(c, gin.H{
		"Grants": privilegeSrv.GetAllPrivileges(),
	}))
}

func showGrantPrivilege(c *gin.Context) {
	if !requireAnyPrivilege(c, "/privileges", "GRANT ANY PRIVILEGE", "GRANT ANY ROLE") {
		return
	}
	c.HTML(http.StatusOK, "privileges_grant.html", pageData(c, gin.H{
		"Roles": roleSrv.GetAllRoles(),
	}))
}

func grantPrivilege(c *gin.Context) {
	if !requireAnyPrivilege(c, "/privileges", "GRANT ANY PRIVILEGE", "GRANT ANY ROLE") {
		return
	}
	kind := c.PostForm("kind")
	privilege := c.PostForm("privilege")
	grantee := c.PostForm("grantee")
	object := c.PostForm("object")
	column := c.PostForm("column")
	roleName := c.PostForm("role_name")
	withOption := c.PostForm("with_option") == "on"

	var err error
	switch kind {
	case models.GrantRole:
		err = privilegeSrv.GrantRole(roleName, grantee, withOption)
	case models.GrantObject:
		if column != "" {
			err = privilegeSrv.GrantColumnPrivilege(privilege, object, column, grantee)
		} else {
			err = privilegeSrv.GrantObjectPrivilege(privilege, object, grantee, withOption)
		}
	default:
		err = privilegeSrv.GrantSystemPrivilege(privilege, grantee, withOption)
	}

	if err != nil {
		logger.Errorf("Failed to grant %s/%s to %s: %v", kind, privilege, grantee, err)
		setFlash(c, "error", friendlyError(err))
		c.Redirect(http.StatusFound, "/privileges/grant")
		return
	}
	setFlash(c, "success", fmt.Sprintf("Grant to %s applied.", grantee))
	c.Redirect(http.StatusFound, "/privileges")
}

func revokePrivilege(c *gin.Context) {
	if !requireAnyPrivilege(c, "/privileges", "GRANT ANY PRIVILEGE", "GRANT ANY ROLE") {
		return
	}
	kind := c.PostForm("kind")
	privilege := c.PostForm("privilege")
	grantee := c.PostForm("grantee")
	object := c.PostForm("object")
	roleName := c.PostForm("role_name")

	var err error
	switch kind {
	case models.GrantRole:
		err = privilegeSrv.RevokeRole(roleName, grantee)
	case models.GrantObject:
		err = privilegeSrv.RevokeObjectPrivilege(privilege, object, grantee)
	default:
		err = privilegeSrv.RevokeSystemPrivilege(privilege, grantee)
	}

	if err != nil {
		logger.Errorf("Failed to revoke %s/%s from %s: %v", kind, privilege, grantee, err)
		setFlash(c, "error", friendlyError(err))
	} else {
		setFlash(c, "success", fmt.Sprintf("Revoke from %s applied.", grantee))
	}
	c.Redirect(http.StatusFound, "/privileges")
}

// RegisterPrivilegeRoutes sets up the privilege administration endpoints.
func RegisterPrivilegeRoutes(rg *gin.RouterGroup) {
	rg.GET("/privileges", listPrivileges)
	rg.GET("/privileges/grant", showGrantPrivilege)
	rg.POST("/privileges/grant", grantPrivilege)
	rg.POST("/privileges/revoke", revokePrivilege)
}
