package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ContextUserID       = "user_id"
	ContextRole         = "role"
	ContextEmployeeCode = "employee_code"
	ContextUserName     = "user_name"
)

var (
	ErrTokenNotFound = apperror.New(apperror.CodeUnauthorized, "Token not found", http.StatusUnauthorized)
	ErrInvalidToken  = apperror.New(apperror.CodeUnauthorized, "Invalid token", http.StatusUnauthorized)
	ErrTokenExpired  = apperror.New(apperror.CodeUnauthorized, "Token has expired", http.StatusUnauthorized)
)

// AuthMiddleware verifies HMAC bearer tokens signed with JWT_SECRET. Tokens are issued by an external identity service.
func AuthMiddleware() gin.HandlerFunc {
	return AuthMiddlewareWithSecret(os.Getenv("JWT_SECRET"))
}

func AuthMiddlewareWithSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}
		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			abortWith(c, ErrTokenNotFound)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWith(c, ErrTokenExpired)
				return
			}
			abortWith(c, ErrInvalidToken)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortWith(c, ErrInvalidToken)
			return
		}

		userID, _ := claims["user_id"].(string)
		if userID == "" {
			response.Abort(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "User ID not found in token")
			return
		}
		role, _ := claims["role"].(string)
		employeeCode, _ := claims["employee_code"].(string)
		name, _ := claims["name"].(string)

		c.Set(ContextUserID, userID)
		c.Set(ContextRole, strings.ToUpper(strings.TrimSpace(role)))
		c.Set(ContextEmployeeCode, employeeCode)
		c.Set(ContextUserName, name)

		c.Next()
	}
}

func abortWith(c *gin.Context, err *apperror.AppError) {
	response.Abort(c, err.HTTPStatus, err.Code, err.Message)
}
