package attendance

import (
	"net/http"
	"strconv"
	"strings"

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
	l := zap.L().Named("attendance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("attendance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeBindError(c *gin.Context, err error) {
	h.logger.Warn("http attendance validation failed", zap.Error(err))
	appErr, details := apperror.MapValidationError(err)
	response.Error(c, appErr.HTTPStatus, appErr.Code, appErr.Message, details)
}

func (h *Handler) Upsert(c *gin.Context) {
	var req UpsertAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.Upsert(c.Request.Context(), middleware.CurrentActor(c).UserID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	status, message := http.StatusOK, "Attendance record updated successfully"
	if resp.Created {
		status, message = http.StatusCreated, "Attendance record saved successfully"
	}
	response.Success(c, status, message, resp, nil)
}

func (h *Handler) BulkCreate(c *gin.Context) {
	var req BulkCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	result, err := h.service.BulkCreate(c.Request.Context(), middleware.CurrentActor(c).UserID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Partial(c, http.StatusCreated, "Created "+strconv.Itoa(result.Created)+" attendance records", result, result.Errors)
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
	response.Success(c, http.StatusOK, "Attendance records retrieved", rows, &meta)
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
	response.Success(c, http.StatusOK, "Attendance record retrieved", resp, nil)
}

func (h *Handler) Submit(c *gin.Context) {
	resp, err := h.service.Submit(c.Request.Context(), middleware.CurrentActor(c).UserID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Attendance record submitted for approval", resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	var req ApproveRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.writeBindError(c, err)
			return
		}
	}

	resp, err := h.service.Approve(c.Request.Context(), middleware.CurrentActor(c).UserID, c.Param("id"), req.Comments)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Attendance record approved", resp, nil)
}

func (h *Handler) Reject(c *gin.Context) {
	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.Reject(c.Request.Context(), middleware.CurrentActor(c).UserID, c.Param("id"), req.Comments)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Attendance record rejected", resp, nil)
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
	response.Success(c, http.StatusOK, "Attendance statistics retrieved", resp, nil)
}

// FilterFromQuery reads the month, year, status, employee_id and paging query parameters.
func FilterFromQuery(c *gin.Context) (AttendanceFilter, error) {
	page, pageSize := response.PageParams(c)
	filter := AttendanceFilter{
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
		stage := Stage(strings.ToLower(v))
		if !stage.Valid() {
			return filter, apperror.InvalidField("status")
		}
		filter.Statuses = []Stage{stage}
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
