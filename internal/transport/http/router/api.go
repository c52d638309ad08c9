package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/naimekattor/user-management-app/internal/service"
	"github.com/naimekattor/user-management-app/internal/transport/http/handler"
	mdw "github.com/naimekattor/user-management-app/internal/transport/http/middleware"
)

// NewEngine wires the middleware chain and every route. The dashboard
// endpoints sit behind the same bearer gate as /protected.
func NewEngine(l *zap.Logger, authSvc *service.AuthService, adminSvc *service.AdminService) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authH := handler.NewAuthHandler(authSvc, l)
	adminH := handler.NewAdminHandler(adminSvc, l)

	r.POST("/register", authH.Register)
	r.POST("/login", authH.Login)

	authed := r.Group("")
	authed.Use(mdw.RequireUser(authSvc, l))
	authed.GET("/protected", authH.Protected)
	authed.GET("/users", adminH.ListUsers)
	authed.PUT("/users", adminH.BulkAction)

	return r
}
