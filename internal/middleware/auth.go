package middleware

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"statutory-engine/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Roles recognized by the administrative surface
const (
	RoleAdmin         = "admin"
	RolePayrollAdmin  = "payroll_admin"
	RolePayrollViewer = "payroll_viewer"
	RoleAuditor       = "auditor"
)

// WriteRoles may create, change and remove statutory components
var WriteRoles = []string{RoleAdmin, RolePayrollAdmin}

// ReadRoles may inspect configuration
var ReadRoles = []string{RoleAdmin, RolePayrollAdmin, RolePayrollViewer, RoleAuditor}

// Context keys set by RequireRole
const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

var errMissingRole = errors.New("role not found in token")

// Authenticator verifies HS256 access tokens issued by the identity service
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// ParseToken validates the token and returns its subject and role claims
func (a *Authenticator) ParseToken(tokenString string) (subject, role string, err error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.secret, nil
	})
	if err != nil {
		return "", "", err
	}
	if !token.Valid {
		return "", "", jwt.ErrTokenInvalidClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", jwt.ErrTokenInvalidClaims
	}
	role, ok = claims["role"].(string)
	if !ok || role == "" {
		return "", "", errMissingRole
	}
	subject, _ = claims.GetSubject()
	return subject, role, nil
}

// RequireRole validates the JWT token and checks if the user's role exists in the allowedRoles list
func (a *Authenticator) RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Try cookie first, fallback to Authorization header
		tokenString, cookieErr := c.Cookie("access_token")
		if cookieErr != nil || tokenString == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization is missing"))
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid authorization format. Expected 'Bearer <token>'"))
				return
			}
			tokenString = parts[1]
		}

		subject, userRole, err := a.ParseToken(tokenString)
		if errors.Is(err, errMissingRole) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Role not found in token"))
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token"))
			return
		}

		if !HasRole(userRole, allowedRoles) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Access denied: insufficient permissions"))
			return
		}

		c.Set(ContextUserID, subject)
		c.Set(ContextUserRole, userRole)

		c.Next()
	}
}

// HasRole reports whether role is one of allowed
func HasRole(role string, allowed []string) bool {
	return slices.Contains(allowed, role)
}

// Actor returns the authenticated subject for audit records
func Actor(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
