package payment

import (
	"net/http"
	"strconv"
	"strings"

	"go-payroll/internal/middleware"
	paymenterrors "go-payroll/internal/payment/errors"
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
	l := zap.L().Named("payment.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payment.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("payment request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeBindError(c *gin.Context, err error) {
	h.logger.Warn("http payment validation failed", zap.Error(err))
	appErr, details := apperror.MapValidationError(err)
	response.Error(c, appErr.HTTPStatus, appErr.Code, appErr.Message, details)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.Request(c.Request.Context(), middleware.CurrentActor(c).UserID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Payment request submitted successfully", resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	filter, err := FilterFromQuery(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
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
	response.Success(c, http.StatusOK, "Payment requests retrieved", rows, &meta)
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
	response.Success(c, http.StatusOK, "Payment request retrieved", resp, nil)
}

func (h *Handler) FinanceApprove(c *gin.Context) {
	var req ApproveRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.writeBindError(c, err)
			return
		}
	}

	resp, err := h.service.FinanceApprove(c.Request.Context(), middleware.CurrentActor(c).UserID, c.Param("id"), req.Comments)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Payment request approved by Finance", resp, nil)
}

func (h *Handler) MDApprove(c *gin.Context) {
	var req ApproveRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.writeBindError(c, err)
			return
		}
	}

	resp, err := h.service.MDApprove(c.Request.Context(), middleware.CurrentActor(c).UserID, c.Param("id"), req.Comments)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Payment request approved by MD", resp, nil)
}

func (h *Handler) Process(c *gin.Context) {
	var req ProcessRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.writeBindError(c, err)
			return
		}
	}

	resp, err := h.service.Process(c.Request.Context(), middleware.CurrentActor(c).UserID, c.Param("id"), req.Remarks)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Payment marked as processed", resp, nil)
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
	response.Success(c, http.StatusOK, "Payment request rejected", resp, nil)
}

// Stats aggregates across every employee, so self-scoped callers are refused.
func (h *Handler) Stats(c *gin.Context) {
	if middleware.CurrentActor(c).SelfScoped() {
		h.writeServiceError(c, apperror.ErrForbidden)
		return
	}

	month, err := intQuery(c, "month")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	year, err := intQuery(c, "year")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.Stats(c.Request.Context(), month, year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Payment statistics retrieved", resp, nil)
}

// FilterFromQuery reads the status, month, year, employee_id and paging query parameters.
func FilterFromQuery(c *gin.Context) (PaymentFilter, error) {
	page, pageSize := response.PageParams(c)
	filter := PaymentFilter{
		EmployeeID: strings.TrimSpace(c.Query("employee_id")),
		Page:       page,
		PageSize:   pageSize,
	}

	var err error
	if filter.Month, err = intQuery(c, "month"); err != nil {
		return filter, err
	}
	if filter.Year, err = intQuery(c, "year"); err != nil {
		return filter, err
	}
	if v := strings.TrimSpace(c.Query("status")); v != "" {
		status := Status(strings.ToLower(v))
		if !status.Valid() {
			return filter, paymenterrors.ErrInvalidStatus
		}
		filter.Status = status
	}
	return filter, nil
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
