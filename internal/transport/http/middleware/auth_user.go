package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/naimekattor/user-management-app/internal/apperr"
	"github.com/naimekattor/user-management-app/internal/domain"
	"github.com/naimekattor/user-management-app/internal/service"
)

const keyUser = "authUser"

// RequireUser guards a route group with the two-phase token check: verify
// the bearer token, then confirm the subject still exists and is not
// blocked. The loaded user is stored in the request context.
func RequireUser(authSvc *service.AuthService, l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		u, err := authSvc.VerifyAndLoadUser(c.Request.Context(), token)
		if err != nil {
			if apperr.Status(err) == http.StatusInternalServerError {
				l.Error("auth gate failed",
					zap.String("path", c.Request.URL.Path),
					zap.Error(apperr.Cause(err)),
				)
			}
			c.AbortWithStatusJSON(apperr.Status(err), gin.H{"message": apperr.Message(err)})
			return
		}
		c.Set(keyUser, u)
		c.Next()
	}
}

func bearerToken(header string) string {
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// UserFromContext returns the user loaded by RequireUser.
func UserFromContext(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(keyUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*domain.User)
	return u, ok
}
