package rbac

import (
	"net/http"
	"strings"

	"go-payroll/internal/domain"
	"go-payroll/internal/middleware"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("rbac.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.handler")
	}
	return &Handler{service: service, logger: l}
}

type selfEnforceRequest struct {
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

// Enforce answers whether the caller's own role may perform resource:action.
func (h *Handler) Enforce(c *gin.Context) {
	var req selfEnforceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr, details := apperror.MapValidationError(err)
		response.Error(c, http.StatusBadRequest, appErr.Code, appErr.Message, details)
		return
	}

	allowed, err := h.service.Enforce(domain.EnforceRequest{
		Subject:  c.GetString(middleware.ContextUserID),
		Role:     c.GetString(middleware.ContextRole),
		Resource: strings.TrimSpace(req.Resource),
		Action:   strings.TrimSpace(req.Action),
	})
	if err != nil {
		h.logger.Error("http rbac enforce failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "Authorization check failed", nil)
		return
	}

	response.Success(c, http.StatusOK, "Permission evaluated", domain.EnforceResponse{Allowed: allowed}, nil)
}

// ListPermissions returns the rules of ?role=, defaulting to the caller's role.
func (h *Handler) ListPermissions(c *gin.Context) {
	role := c.Query("role")
	if role == "" {
		role = c.GetString(middleware.ContextRole)
	}
	response.Success(c, http.StatusOK, "Permissions retrieved", h.service.ListPermissions(role), nil)
}
