package payslip

import (
	"fmt"
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
	l := zap.L().Named("payslip.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payslip.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("payslip request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeBindError(c *gin.Context, err error) {
	h.logger.Warn("http payslip validation failed", zap.Error(err))
	appErr, details := apperror.MapValidationError(err)
	response.Error(c, appErr.HTTPStatus, appErr.Code, appErr.Message, details)
}

func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.Generate(c.Request.Context(), middleware.CurrentActor(c).UserID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if resp.EmailError != nil {
		response.Partial(c, http.StatusCreated, "Payslip generated successfully", resp, []string{*resp.EmailError})
		return
	}
	response.Success(c, http.StatusCreated, "Payslip generated successfully", resp, nil)
}

func (h *Handler) GenerateBulk(c *gin.Context) {
	var req GenerateBulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	result, err := h.service.GenerateBulk(c.Request.Context(), middleware.CurrentActor(c).UserID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Partial(c, http.StatusCreated, "Generated "+strconv.Itoa(result.Generated)+" payslips", result, result.Errors)
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
	}

	rows, total, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, filter.Page, filter.PageSize)
	response.Success(c, http.StatusOK, "Payslips retrieved", rows, &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, ok := h.ownPayslip(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, "Payslip retrieved", resp, nil)
}

func (h *Handler) DownloadPDF(c *gin.Context) {
	file, err := h.service.RenderPDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	actor := middleware.CurrentActor(c)
	if actor.SelfScoped() && !strings.EqualFold(actor.EmployeeCode, file.EmployeeCode) {
		h.writeServiceError(c, apperror.ErrForbidden)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	c.Data(http.StatusOK, "application/pdf", file.Content)
}

func (h *Handler) EmailHistory(c *gin.Context) {
	if _, ok := h.ownPayslip(c); !ok {
		return
	}

	resp, err := h.service.EmailHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Email history retrieved", resp, nil)
}

func (h *Handler) SendEmail(c *gin.Context) {
	resp, err := h.service.SendEmail(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if !resp.EmailSent {
		var errs []string
		if resp.Error != nil {
			errs = []string{*resp.Error}
		}
		response.Partial(c, http.StatusOK, "Failed to send payslip email", resp, errs)
		return
	}
	response.Success(c, http.StatusOK,
		fmt.Sprintf("Payslip email sent successfully (%d total sends)", resp.TotalSends), resp, nil)
}

func (h *Handler) SendBulkEmails(c *gin.Context) {
	var req BulkEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	result, err := h.service.SendBulkEmails(c.Request.Context(), req.PayslipIDs)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	var errs []string
	for _, r := range result.Results {
		if !r.Success {
			errs = append(errs, r.PayslipID+": "+r.Error)
		}
	}
	message := fmt.Sprintf("Sent %d of %d payslip emails", result.Successful, result.Total)
	response.Partial(c, http.StatusOK, message, result, errs)
}

// ownPayslip loads the payslip and writes the error response when the caller may not see it.
func (h *Handler) ownPayslip(c *gin.Context) (PayslipResponse, bool) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return PayslipResponse{}, false
	}

	actor := middleware.CurrentActor(c)
	if actor.SelfScoped() && !strings.EqualFold(actor.EmployeeCode, resp.EmployeeCode) {
		h.writeServiceError(c, apperror.ErrForbidden)
		return PayslipResponse{}, false
	}
	return resp, true
}

func FilterFromQuery(c *gin.Context) (PayslipFilter, error) {
	page, pageSize := response.PageParams(c)
	filter := PayslipFilter{
		EmployeeCode: strings.TrimSpace(c.Query("employee_code")),
		Page:         page,
		PageSize:     pageSize,
	}

	var err error
	if filter.Month, err = intQuery(c, "month"); err != nil {
		return filter, err
	}
	if filter.Year, err = intQuery(c, "year"); err != nil {
		return filter, err
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
