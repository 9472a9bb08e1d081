package controllers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"oraconsole/pkg/logger"
	"oraconsole/services"
	"oraconsole/utils"
)

// authSrv is the global authentication service instance.
var authSrv = services.NewAuthService()

// SetAuthService initializes the authentication service instance.
func SetAuthService(s services.AuthService) {
	authSrv = s
}

// showLogin renders the sign-in form.
func showLogin(c *gin.Context) {
	session := sessions.Default(c)
	if username, ok := session.Get(sessionKeyUser).(string); ok && username != "" {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{
		"QueryError": c.Query("error"),
	})
}

// postLogin verifies the submitted credentials and establishes the session.
func postLogin(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	record, err := authSrv.Login(username, password)
	if err != nil {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"Error":    err.Error(),
			"Username": utils.NormalizeUsername(username),
		})
		return
	}

	session := sessions.Default(c)
	session.Set(sessionKeyUser, record.Username)
	if err := session.Save(); err != nil {
		logger.Errorf("Error saving session for %s: %v", record.Username, err)
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"Error": "Could not establish a session. Please try again.",
		})
		return
	}
	c.Redirect(http.StatusFound, "/dashboard")
}

// logout clears the session and returns to the sign-in form.
func logout(c *gin.Context) {
	session := sessions.Default(c)
	username, _ := session.Get(sessionKeyUser).(string)
	session.Clear()
	if err := session.Save(); err != nil {
		logger.Errorf("Error clearing session: %v", err)
	}
	if username != "" {
		logger.Infof("User %s signed out", username)
	}
	c.Redirect(http.StatusFound, "/login")
}

// RegisterAuthRoutes sets up the sign-in and sign-out endpoints.
func RegisterAuthRoutes(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/dashboard")
	})
	r.GET("/login", showLogin)
	r.POST("/login", postLogin)
	r.GET("/logout", logout)
}
