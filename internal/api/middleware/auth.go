package middleware

import (
	"strings"

	"staffdesk/internal/api/respond"
	"staffdesk/internal/models"
	"staffdesk/internal/services"

	"github.com/gin-gonic/gin"
)

const employeeContextKey = "employee"

// BearerToken extracts the token from the Authorization header. The second
// return is false when the header is absent or the scheme is not Bearer.
func BearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}

// AuthMiddleware rejects requests without a well-formed bearer token before
// touching the session store, then resolves the token to an employee.
func AuthMiddleware(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c)
		if !ok {
			respond.Error(c, services.ErrMissingToken)
			c.Abort()
			return
		}

		emp, err := authService.Verify(token, c.ClientIP())
		if err != nil {
			respond.Error(c, err)
			c.Abort()
			return
		}

		c.Set(employeeContextKey, emp)
		c.Next()
	}
}

// RequirePermission gates a route on the caller's permission level. An empty
// set means any authenticated employee.
func RequirePermission(perms ...models.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		emp := CurrentEmployee(c)
		if emp == nil {
			respond.Error(c, services.ErrMissingToken)
			c.Abort()
			return
		}

		if len(perms) == 0 {
			c.Next()
			return
		}

		level := emp.PermissionLevel()
		for _, p := range perms {
			if level == p {
				c.Next()
				return
			}
		}

		respond.Error(c, services.ErrForbidden)
		c.Abort()
	}
}

// CurrentEmployee returns the employee resolved by AuthMiddleware, or nil.
func CurrentEmployee(c *gin.Context) *models.Employee {
	v, exists := c.Get(employeeContextKey)
	if !exists {
		return nil
	}
	emp, ok := v.(*models.Employee)
	if !ok {
		return nil
	}
	return emp
}
