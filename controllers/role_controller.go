package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"oraconsole/pkg/logger"
	"oraconsole/services"
	"oraconsole/utils"
)

// roleSrv is the global role administration service instance.
var roleSrv = services.NewRoleService()

// SetRoleService initializes the role administration service instance.
func SetRoleService(s services.RoleService) {
	roleSrv = s
}

func listRoles(c *gin.Context) {
	c.HTML(http.StatusOK, "roles_list.html", pageData(c, gin.H{
		"Roles": roleSrv.GetAllRoles(),
	}))
}

func showCreateRole(c *gin.Context) {
	if !requireAnyPrivilege(c, "/roles", "CREATE ROLE") {
		return
	}
	c.HTML(http.StatusOK, "roles_create.html", pageData(c, nil))
}

func createRole(c *gin.Context) {
	if !requireAnyPrivilege(c, "/roles", "CREATE ROLE") {
		return
	}
	var form struct {
		RoleName string `form:"role_name" validate:"required"`
		Password string `form:"password"`
	}
	if err := c.ShouldBind(&form); err != nil {
		setFlash(c, "error", err.Error())
		c.Redirect(http.StatusFound, "/roles/new")
		return
	}
	if err := utils.ValidateStruct(&form); err != nil {
		setFlash(c, "error", "Role name is required.")
		c.Redirect(http.StatusFound, "/roles/new")
		return
	}

	if err := roleSrv.CreateRole(form.RoleName, form.Password); err != nil {
		logger.Errorf("Failed to create role %s: %v", form.RoleName, err)
		setFlash(c, "error", friendlyError(err))
		c.Redirect(http.StatusFound, "/roles/new")
		return
	}
	setFlash(c, "success", fmt.Sprintf("Role %s created.", utils.NormalizeUsername(form.RoleName)))
	c.Redirect(http.StatusFound, "/roles")
}

func showEditRole(c *gin.Context) {
	if !requireAnyPrivilege(c, "/roles", "ALTER ANY ROLE") {
		return
	}
	roleName := c.Param("role")
	role, err := roleSrv.GetRole(roleName)
	if err != nil || role == nil {
		setFlash(c, "error", fmt.Sprintf("Role %s was not found.", utils.NormalizeUsername(roleName)))
		c.Redirect(http.StatusFound, "/roles")
		return
	}
	c.HTML(http.StatusOK, "roles_edit.html", pageData(c, gin.H{
		"Role": role,
	}))
}

func updateRole(c *gin.Context) {
	if !requireAnyPrivilege(c, "/roles", "ALTER ANY ROLE") {
		return
	}
	roleName := c.Param("role")
	password := c.PostForm("password")

	if err := roleSrv.UpdateRolePassword(roleName, password); err != nil {
		logger.Errorf("Failed to alter role %s: %v", roleName, err)
		setFlash(c, "error", friendlyError(err))
		c.Redirect(http.StatusFound, "/roles/"+utils.NormalizeUsername(roleName)+"/edit")
		return
	}
	setFlash(c, "success", fmt.Sprintf("Role %s updated.", utils.NormalizeUsername(roleName)))
	c.Redirect(http.StatusFound, "/roles")
}

func deleteRole(c *gin.Context) {
	if !requireAnyPrivilege(c, "/roles", "DROP ANY ROLE") {
		return
	}
	roleName := c.Param("role")
	if err := roleSrv.DeleteRole(roleName); err != nil {
		logger.Errorf("Failed to drop role %s: %v", roleName, err)
		setFlash(c, "error", friendlyError(err))
	} else {
		setFlash(c, "success", fmt.Sprintf("Role %s dropped.", utils.NormalizeUsername(roleName)))
	}
	c.Redirect(http.StatusFound, "/roles")
}

// RegisterRoleRoutes sets up the role administration endpoints.
func RegisterRoleRoutes(rg *gin.RouterGroup) {
	rg.GET("/roles", listRoles)
	rg.GET("/roles/new", showCreateRole)
	rg.POST("/roles", createRole)
	rg.GET("/roles/:role/edit", showEditRole)
	rg.POST("/roles/:role/edit", updateRole)
	rg.POST("/roles/:role/delete", deleteRole)
}
