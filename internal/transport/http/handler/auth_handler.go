package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/naimekattor/user-management-app/internal/apperr"
	"github.com/naimekattor/user-management-app/internal/service"
	mdw "github.com/naimekattor/user-management-app/internal/transport/http/middleware"
)

type AuthHandler struct {
	svc *service.AuthService
	log *zap.Logger
}

func NewAuthHandler(svc *service.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required."})
		return
	}
	if err := h.svc.Register(c.Request.Context(), req.Name, req.Email, req.Password); err != nil {
		logServerError(h.log, c, err)
		c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully."})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required."})
		return
	}
	token, user, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logServerError(h.log, c, err)
		c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful.",
		"token":   token,
		"user": gin.H{
			"name":   user.Name,
			"email":  user.Email,
			"status": user.Status,
		},
	})
}

// Protected relies on the RequireUser middleware having loaded the caller.
func (h *AuthHandler) Protected(c *gin.Context) {
	u, ok := mdw.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "No token provided"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Access granted",
		"user":    u.Public(),
	})
}
