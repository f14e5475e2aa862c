package salaryrevision

import (
	"context"
	"net/http"
	"strings"

	"go-payroll/internal/middleware"
	salaryrevisionerrors "go-payroll/internal/salaryrevision/errors"
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
	l := zap.L().Named("salary_revision.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salary_revision.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("salary revision request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeBindError(c *gin.Context, err error) {
	h.logger.Warn("http salary revision validation failed", zap.Error(err))
	appErr, details := apperror.MapValidationError(err)
	response.Error(c, appErr.HTTPStatus, appErr.Code, appErr.Message, details)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRevisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.Request(c.Request.Context(), middleware.CurrentActor(c).UserID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Salary revision request submitted successfully", resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	page, pageSize := response.PageParams(c)
	filter := RevisionFilter{
		EmployeeID: strings.TrimSpace(c.Query("employee_id")),
		Page:       page,
		PageSize:   pageSize,
	}
	if v := strings.TrimSpace(c.Query("status")); v != "" {
		status := Status(strings.ToLower(v))
		if !status.Valid() {
			h.writeServiceError(c, salaryrevisionerrors.ErrInvalidStatus)
			return
		}
		filter.Status = status
	}

	actor := middleware.CurrentActor(c)
	if actor.SelfScoped() {
		if actor.EmployeeCode == "" {
			h.writeServiceError(c, apperror.ErrForbidden)
			return
		}
		filter.EmployeeCode = actor.EmployeeCode
		filter.EmployeeID = ""
	}

	rows, total, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, filter.Page, filter.PageSize)
	response.Success(c, http.StatusOK, "Salary revisions retrieved", rows, &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	actor := middleware.CurrentActor(c)
	if actor.SelfScoped() && !strings.EqualFold(actor.EmployeeCode, resp.EmployeeCode) {
		h.writeServiceError(c, apperror.ErrForbidden)
		return
	}
	response.Success(c, http.StatusOK, "Salary revision retrieved", resp, nil)
}

func (h *Handler) HRApprove(c *gin.Context) {
	h.approve(c, h.service.HRApprove, "Salary revision approved by HR")
}

func (h *Handler) FinanceApprove(c *gin.Context) {
	h.approve(c, h.service.FinanceApprove, "Salary revision approved by Finance")
}

func (h *Handler) MDApprove(c *gin.Context) {
	h.approve(c, h.service.MDApprove, "Salary revision approved by MD and implemented")
}

func (h *Handler) approve(
	c *gin.Context,
	fn func(ctx context.Context, actorID, id, comments string) (RevisionResponse, error),
	message string,
) {
	var req ApproveRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.writeBindError(c, err)
			return
		}
	}

	resp, err := fn(c.Request.Context(), middleware.CurrentActor(c).UserID, c.Param("id"), req.Comments)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, message, resp, nil)
}

func (h *Handler) Reject(c *gin.Context) {
	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.Reject(c.Request.Context(), middleware.CurrentActor(c).UserID, c.Param("id"), req.Reason)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Salary revision rejected", resp, nil)
}
