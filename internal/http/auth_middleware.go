package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/cashvault/cashcard/internal/access"
	"github.com/cashvault/cashcard/internal/service"
)

// Gin context keys set by AuthMiddleware.
const (
	// ContextKeyPrincipal holds the authenticated principal name.
	ContextKeyPrincipal = "principal"
	// ContextKeyRoles holds the principal's role set.
	ContextKeyRoles = "roles"
)

// AuthMiddleware authenticates requests through the access manager and
// injects the principal into the gin context. Authentication failures map to
// 401 regardless of role or record ownership.
func AuthMiddleware(manager *access.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := manager.Authenticate(c.Request.Context(), c.Request)
		if err == nil {
			c.Set(ContextKeyPrincipal, result.Principal)
			c.Set(ContextKeyRoles, result.Roles)
			c.Next()
			return
		}

		switch {
		case access.IsAuthErrorCode(err, access.AuthErrorCodeNoCredentials):
			c.Header("WWW-Authenticate", `Basic realm="cashcard"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
		case access.IsAuthErrorCode(err, access.AuthErrorCodeInvalidCredential):
			c.Header("WWW-Authenticate", `Basic realm="cashcard"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		default:
			log.WithError(err).Error("auth middleware error")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "authentication service error"})
		}
	}
}

// PrincipalFromContext reads the authenticated principal injected by
// AuthMiddleware.
func PrincipalFromContext(c *gin.Context) (service.Principal, bool) {
	nameValue, ok := c.Get(ContextKeyPrincipal)
	if !ok {
		return service.Principal{}, false
	}
	name, okName := nameValue.(string)
	if !okName || name == "" {
		return service.Principal{}, false
	}

	var roles []string
	if rolesValue, okRoles := c.Get(ContextKeyRoles); okRoles {
		if list, okList := rolesValue.([]string); okList {
			roles = list
		}
	}
	return service.Principal{Name: name, Roles: roles}, true
}
