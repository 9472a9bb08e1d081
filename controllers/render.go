package controllers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"oraconsole/pkg/logger"
	"oraconsole/services"
)

const (
	sessionKeyUser = "username"
	contextKeyUser = "current_user"
)

// authz is the authorization port used by every privilege gate.
var authz services.Authorizer = services.NewPrivilegeService()

// SetAuthorizer initializes the authorization port instance.
func SetAuthorizer(a services.Authorizer) {
	authz = a
}

// RequireLogin rejects requests without an authenticated session and
// threads the session identity into the request context for the
// downstream handlers.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		username, ok := session.Get(sessionKeyUser).(string)
		if !ok || username == "" {
			c.Redirect(http.StatusFound, "/login?error=access_denied")
			c.Abort()
			return
		}
		c.Set(contextKeyUser, username)
		c.Next()
	}
}

// currentUser returns the authenticated identity threaded into the
// request context by RequireLogin.
func currentUser(c *gin.Context) string {
	return c.GetString(contextKeyUser)
}

// requireAnyPrivilege gates a handler on the session identity holding at
// least one of the listed system privileges. On failure it redirects to
// the fallback page and reports whether the request may proceed.
func requireAnyPrivilege(c *gin.Context, fallback string, privileges ...string) bool {
	username := currentUser(c)
	if username == "" {
		c.Redirect(http.StatusFound, "/login?error=access_denied")
		c.Abort()
		return false
	}
	for _, privilege := range privileges {
		if authz.HasPrivilege(username, privilege) {
			return true
		}
	}
	logger.Warnf("User %s denied: requires one of %v", username, privileges)
	c.Redirect(http.StatusFound, fallback+"?error=no_privilege")
	c.Abort()
	return false
}

// requireAllPrivileges gates a handler on the session identity holding
// every listed system privilege.
func requireAllPrivileges(c *gin.Context, fallback string, privileges ...string) bool {
	username := currentUser(c)
	if username == "" {
		c.Redirect(http.StatusFound, "/login?error=access_denied")
		c.Abort()
		return false
	}
	for _, privilege := range privileges {
		if !authz.HasPrivilege(username, privilege) {
			logger.Warnf("User %s denied: requires %s", username, privilege)
			c.Redirect(http.StatusFound, fallback+"?error=no_privilege")
			c.Abort()
			return false
		}
	}
	return true
}

// setFlash stores a one-shot notice rendered by the next page view.
func setFlash(c *gin.Context, kind, message string) {
	session := sessions.Default(c)
	session.AddFlash(message, kind)
	if err := session.Save(); err != nil {
		logger.Errorf("Error saving session flash: %v", err)
	}
}

// takeFlashes drains the success and error flashes for rendering.
func takeFlashes(c *gin.Context) (successes, errors []interface{}) {
	session := sessions.Default(c)
	successes = session.Flashes("success")
	errors = session.Flashes("error")
	if len(successes) > 0 || len(errors) > 0 {
		if err := session.Save(); err != nil {
			logger.Errorf("Error saving session after flash drain: %v", err)
		}
	}
	return successes, errors
}

// pageData assembles the common template payload: identity, flashes and
// any query-string error marker.
func pageData(c *gin.Context, extra gin.H) gin.H {
	successes, errors := takeFlashes(c)
	data := gin.H{
		"CurrentUser": currentUser(c),
		"Successes":   successes,
		"Errors":      errors,
		"QueryError":  c.Query("error"),
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}
