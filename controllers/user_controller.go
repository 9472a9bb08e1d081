package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"oraconsole/models"
	"oraconsole/pkg/logger"
	"oraconsole/services"
	"oraconsole/utils"
)

// userSrv is the global account administration service instance.
var userSrv = services.NewUserService()

// SetUserService initializes the account administration service instance.
func SetUserService(s services.UserService) {
	userSrv = s
}

func listUsers(c *gin.Context) {
	accounts := userSrv.GetAllUsers(currentUser(c))
	c.HTML(http.StatusOK, "users_list.html", pageData(c, gin.H{
		"Accounts": accounts,
	}))
}

func viewUser(c *gin.Context) {
	username := c.Param("username")
	account, err := userSrv.GetUser(username)
	if err != nil {
		setFlash(c, "error", friendlyError(err))
		c.Redirect(http.StatusFound, "/users")
		return
	}
	if account == nil {
		setFlash(c, "error", fmt.Sprintf("Account %s was not found.", utils.NormalizeUsername(username)))
		c.Redirect(http.StatusFound, "/users")
		return
	}
	c.HTML(http.StatusOK, "users_view.html", pageData(c, gin.H{
		"Account": account,
	}))
}

func showCreateUser(c *gin.Context) {
	if !requireAnyPrivilege(c, "/users", "CREATE USER") {
		return
	}
	c.HTML(http.StatusOK, "users_create.html", pageData(c, gin.H{
		"Tablespaces": userSrv.GetAvailableTablespaces(),
	}))
}

func createUser(c *gin.Context) {
	if !requireAnyPrivilege(c, "/users", "CREATE USER") {
		return
	}
	var form struct {
		Username            string `form:"username" validate:"required"`
		Password            string `form:"password" validate:"required"`
		DefaultTablespace   string `form:"default_tablespace"`
		TemporaryTablespace string `form:"temporary_tablespace"`
		Quota               string `form:"quota"`
	}
	if err := c.ShouldBind(&form); err != nil {
		setFlash(c, "error", err.Error())
		c.Redirect(http.StatusFound, "/users/new")
		return
	}
	if err := utils.ValidateStruct(&form); err != nil {
		setFlash(c, "error", "Username and password are required.")
		c.Redirect(http.StatusFound, "/users/new")
		return
	}

	if err := userSrv.CreateUser(form.Username, form.Password, form.DefaultTablespace, form.TemporaryTablespace, form.Quota); err != nil {
		logger.Errorf("Failed to create account %s: %v", form.Username, err)
		setFlash(c, "error", friendlyError(err))
		c.Redirect(http.StatusFound, "/users/new")
		return
	}
	setFlash(c, "success", fmt.Sprintf("Account %s created.", utils.NormalizeUsername(form.Username)))
	c.Redirect(http.StatusFound, "/users")
}

func showEditUser(c *gin.Context) {
	if !requireAnyPrivilege(c, "/users", "CREATE USER") {
		return
	}
	username := c.Param("username")
	account, err := userSrv.GetUser(username)
	if err != nil || account == nil {
		setFlash(c, "error", fmt.Sprintf("Account %s was not found.", utils.NormalizeUsername(username)))
		c.Redirect(http.StatusFound, "/users")
		return
	}
	c.HTML(http.StatusOK, "users_edit.html", pageData(c, gin.H{
		"Account":     account,
		"Tablespaces": userSrv.GetAvailableTablespaces(),
	}))
}

func updateUser(c *gin.Context) {
	if !requireAnyPrivilege(c, "/users", "CREATE USER") {
		return
	}
	username := c.Param("username")
	password := c.PostForm("password")
	defaultTablespace := c.PostForm("default_tablespace")
	temporaryTablespace := c.PostForm("temporary_tablespace")
	quota := c.PostForm("quota")
	profile := c.PostForm("profile")

	if err := userSrv.UpdateUser(username, password, defaultTablespace, temporaryTablespace, quota, profile); err != nil {
		logger.Errorf("Failed to alter account %s: %v", username, err)
		setFlash(c, "error", friendlyError(err))
		c.Redirect(http.StatusFound, "/users/"+utils.NormalizeUsername(username)+"/edit")
		return
	}
	setFlash(c, "success", fmt.Sprintf("Account %s updated.", utils.NormalizeUsername(username)))
	c.Redirect(http.StatusFound, "/users")
}

func updateUserContact(c *gin.Context) {
	if !requireAnyPrivilege(c, "/users", "CREATE USER") {
		return
	}
	username := c.Param("username")
	contact := models.ContactProfile{
		FullName: c.PostForm("full_name"),
		Email:    c.PostForm("email"),
		Phone:    c.PostForm("phone"),
		Address:  c.PostForm("address"),
	}
	if err := userSrv.UpdateContact(username, contact); err != nil {
		setFlash(c, "error", friendlyError(err))
	} else {
		setFlash(c, "success", "Contact details saved.")
	}
	c.Redirect(http.StatusFound, "/users/"+utils.NormalizeUsername(username))
}

func lockUser(c *gin.Context) {
	if !requireAnyPrivilege(c, "/users", "CREATE USER") {
		return
	}
	username := c.Param("username")
	if err := userSrv.LockUser(username); err != nil {
		setFlash(c, "error", friendlyError(err))
	} else {
		setFlash(c, "success", fmt.Sprintf("Account %s locked.", utils.NormalizeUsername(username)))
	}
	c.Redirect(http.StatusFound, "/users")
}

func unlockUser(c *gin.Context) {
	if !requireAnyPrivilege(c, "/users", "CREATE USER") {
		return
	}
	username := c.Param("username")
	if err := userSrv.UnlockUser(username); err != nil {
		setFlash(c, "error", friendlyError(err))
	} else {
		setFlash(c, "success", fmt.Sprintf("Account %s unlocked.", utils.NormalizeUsername(username)))
	}
	c.Redirect(http.StatusFound, "/users")
}

func deleteUser(c *gin.Context) {
	if !requireAllPrivileges(c, "/users", "CREATE USER", "DROP USER") {
		return
	}
	username := c.Param("username")
	if err := userSrv.DeleteUser(username); err != nil {
		logger.Errorf("Failed to drop account %s: %v", username, err)
		setFlash(c, "error", friendlyError(err))
	} else {
		setFlash(c, "success", fmt.Sprintf("Account %s dropped.", utils.NormalizeUsername(username)))
	}
	c.Redirect(http.StatusFound, "/users")
}

func addUserToAppLogin(c *gin.Context) {
	if !requireAnyPrivilege(c, "/users", "CREATE USER") {
		return
	}
	username := c.Param("username")
	password := c.PostForm("password")
	if err := userSrv.AddToAppLogin(username, password); err != nil {
		setFlash(c, "error", friendlyError(err))
	} else {
		setFlash(c, "success", fmt.Sprintf("Account %s can now sign in to the console.", utils.NormalizeUsername(username)))
	}
	c.Redirect(http.StatusFound, "/users/"+utils.NormalizeUsername(username))
}

// RegisterUserRoutes sets up the account administration endpoints.
func RegisterUserRoutes(rg *gin.RouterGroup) {
	rg.GET("/users", listUsers)
	rg.GET("/users/new", showCreateUser)
	rg.POST("/users", createUser)
	rg.GET("/users/:username", viewUser)
	rg.GET("/users/:username/edit", showEditUser)
	rg.POST("/users/:username/edit", updateUser)
	rg.POST("/users/:username/contact", updateUserContact)
	rg.POST("/users/:username/lock", lockUser)
	rg.POST("/users/:username/unlock", unlockUser)
	rg.POST("/users/:username/delete", deleteUser)
	rg.POST("/users/:username/applogin", addUserToAppLogin)
}
