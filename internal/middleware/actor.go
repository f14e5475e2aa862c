package middleware

import (
	"go-payroll/internal/domain"

	"github.com/gin-gonic/gin"
)

// Actor is the authenticated caller as established by AuthMiddleware.
type Actor struct {
	UserID       string
	Role         string
	EmployeeCode string
	Name         string
}

func CurrentActor(c *gin.Context) Actor {
	return Actor{
		UserID:       c.GetString(ContextUserID),
		Role:         c.GetString(ContextRole),
		EmployeeCode: c.GetString(ContextEmployeeCode),
		Name:         c.GetString(ContextUserName),
	}
}

// SelfScoped reports whether list results must be narrowed to the caller's own employee code.
func (a Actor) SelfScoped() bool {
	return a.Role == domain.RoleEmployee
}
