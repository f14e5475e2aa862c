package payroll

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go-payroll/internal/attendance"
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
	l := zap.L().Named("payroll.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("payroll request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeBindError(c *gin.Context, err error) {
	h.logger.Warn("http payroll validation failed", zap.Error(err))
	appErr, details := apperror.MapValidationError(err)
	response.Error(c, appErr.HTTPStatus, appErr.Code, appErr.Message, details)
}

type keyedOp func(ctx context.Context, actorID string, req PeriodKeyRequest) (attendance.AttendanceResponse, error)

func (h *Handler) keyed(c *gin.Context, op keyedOp, message string) {
	var req PeriodKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := op(c.Request.Context(), middleware.CurrentActor(c).UserID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, message, resp, nil)
}

func (h *Handler) Move(c *gin.Context) {
	h.keyed(c, h.service.Move, "Attendance moved to payroll successfully")
}

func (h *Handler) Revert(c *gin.Context) {
	h.keyed(c, h.service.Revert, "Attendance reverted from payroll successfully")
}

func (h *Handler) MarkProcessed(c *gin.Context) {
	h.keyed(c, h.service.MarkProcessed, "Salary marked as processed successfully")
}

func (h *Handler) RevertProcessed(c *gin.Context) {
	h.keyed(c, h.service.RevertProcessed, "Processed salary reverted successfully")
}

type listOp func(ctx context.Context, filter ListFilter) ([]attendance.AttendanceResponse, int64, error)

func (h *Handler) ListMoved(c *gin.Context) {
	h.listing(c, h.service.ListMoved, "Payroll records retrieved")
}

func (h *Handler) ListProcessed(c *gin.Context) {
	h.listing(c, h.service.ListProcessed, "Processed payroll records retrieved")
}

func (h *Handler) listing(c *gin.Context, fetch listOp, message string) {
	page, pageSize := response.PageParams(c)
	filter := ListFilter{Page: page, PageSize: pageSize}

	var err error
	if filter.Month, err = intQuery(c, "month"); err != nil {
		h.writeServiceError(c, err)
		return
	}
	if filter.Year, err = intQuery(c, "year"); err != nil {
		h.writeServiceError(c, err)
		return
	}

	rows, total, err := fetch(c.Request.Context(), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, filter.Page, filter.PageSize)
	response.Success(c, http.StatusOK, message, rows, &meta)
}

func (h *Handler) Report(c *gin.Context) {
	var req ReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.writeBindError(c, err)
		return
	}
	req.Type = ReportType(strings.ToLower(strings.TrimSpace(string(req.Type))))

	file, err := h.service.Report(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	c.Data(http.StatusOK, "application/pdf", file.Content)
}

func intQuery(c *gin.Context, key string) (int, error) {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, apperror.InvalidField(key)
	}
	return n, nil
}
