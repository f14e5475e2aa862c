package response

import (
	"github.com/gin-gonic/gin"
)

type PaginationMeta struct {
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
}

func NewPaginationMeta(total int64, page, limit int) PaginationMeta {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return PaginationMeta{
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   limit,
	}
}

type ApiEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Code    string          `json:"code,omitempty"`
	Data    any             `json:"data,omitempty"`
	Errors  []string        `json:"errors,omitempty"`
	Meta    *PaginationMeta `json:"meta,omitempty"`
}

func Success(c *gin.Context, status int, message string, data any, meta *PaginationMeta) {
	c.JSON(status, ApiEnvelope{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

// Partial reports a batch outcome: the request itself succeeded but some items carry errors.
func Partial(c *gin.Context, status int, message string, data any, errs []string) {
	c.JSON(status, ApiEnvelope{
		Success: true,
		Message: message,
		Data:    data,
		Errors:  errs,
	})
}

func Error(c *gin.Context, status int, code string, message string, details []string) {
	c.JSON(status, ApiEnvelope{
		Success: false,
		Message: message,
		Code:    code,
		Errors:  details,
	})
}

// Abort writes an error envelope and stops the middleware chain.
func Abort(c *gin.Context, status int, code string, message string) {
	Error(c, status, code, message, nil)
	c.Abort()
}
