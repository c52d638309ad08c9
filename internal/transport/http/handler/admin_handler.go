package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/naimekattor/user-management-app/internal/apperr"
	"github.com/naimekattor/user-management-app/internal/service"
)

type AdminHandler struct {
	svc *service.AdminService
	log *zap.Logger
}

func NewAdminHandler(svc *service.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{svc: svc, log: log}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	rows, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		logServerError(h.log, c, err)
		c.String(apperr.Status(err), apperr.Message(err))
		return
	}
	c.JSON(http.StatusOK, rows)
}

type bulkActionReq struct {
	Action  string   `json:"action"`
	UserIDs []string `json:"userIds"`
}

func (h *AdminHandler) BulkAction(c *gin.Context) {
	var req bulkActionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "No user IDs provided")
		return
	}
	msg, err := h.svc.ApplyBulkAction(c.Request.Context(), req.Action, req.UserIDs)
	if err != nil {
		logServerError(h.log, c, err)
		c.String(apperr.Status(err), apperr.Message(err))
		return
	}
	c.String(http.StatusOK, msg)
}
