package importer

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	importererrors "go-payroll/internal/importer/errors"
	"go-payroll/internal/middleware"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxUploadBytes = 5 << 20

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("importer.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("importer.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("attendance import failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// ImportAttendance accepts a multipart form with a CSV "file" plus "month" and "year".
func (h *Handler) ImportAttendance(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	fh, err := c.FormFile("file")
	if err != nil {
		h.writeServiceError(c, importererrors.ErrFileRequired)
		return
	}

	month, okMonth := formInt(c, "month")
	year, okYear := formInt(c, "year")
	if !okMonth || !okYear {
		h.writeServiceError(c, importererrors.ErrPeriodRequired)
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.writeServiceError(c, importererrors.ErrUnreadableFile)
		return
	}
	defer f.Close()

	res, err := h.service.ImportAttendance(
		c.Request.Context(),
		middleware.CurrentActor(c).UserID,
		month,
		year,
		NewCSVSource(f),
	)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	msg := fmt.Sprintf("Successfully processed %d records", res.Processed)
	if len(res.Errors) > 0 {
		response.Partial(c, http.StatusCreated, msg, res, rowMessages(res.Errors))
		return
	}
	response.Success(c, http.StatusCreated, msg, res, nil)
}

func formInt(c *gin.Context, key string) (int, bool) {
	v := strings.TrimSpace(c.PostForm(key))
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func rowMessages(errs []RowError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = fmt.Sprintf("row %d: %s", e.Row, e.Message)
	}
	return out
}
