package middleware

import (
	"net/http"

	"go-payroll/internal/domain"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RBACService is satisfied by anything that can decide a domain.EnforceRequest.
type RBACService interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(ContextUserID)
		role := c.GetString(ContextRole)
		if userID == "" {
			abortWith(c, apperror.ErrUnauthorized)
			return
		}

		allowed, err := service.Enforce(domain.EnforceRequest{
			Subject:  userID,
			Role:     role,
			Resource: resource,
			Action:   action,
		})
		if err != nil {
			zap.L().Error("rbac enforce failed", zap.String("resource", resource), zap.String("action", action), zap.Error(err))
			response.Abort(c, http.StatusInternalServerError, apperror.CodeInternalError, "Authorization check failed")
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden,
				"You do not have permission to perform this action",
				[]string{"required permission: " + resource + ":" + action},
			)
			c.Abort()
			return
		}
		c.Next()
	}
}
