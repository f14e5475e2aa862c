package rbac_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-payroll/internal/domain"
	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_Enforce(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := rbac.NewHandler(newService(t, &fakeRepo{}))

	call := func(role string, body any) (*httptest.ResponseRecorder, response.ApiEnvelope) {
		router := gin.New()
		router.POST("/rbac/enforce", func(c *gin.Context) {
			c.Set(middleware.ContextUserID, "u-1")
			c.Set(middleware.ContextRole, role)
		}, handler.Enforce)

		payload, _ := json.Marshal(body)
		req := httptest.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		var env response.ApiEnvelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		return rec, env
	}

	t.Run("allowed", func(t *testing.T) {
		rec, env := call(domain.RoleFinance, map[string]string{"resource": "payment", "action": "finance_approve"})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, map[string]any{"allowed": true}, env.Data)
	})

	t.Run("denied", func(t *testing.T) {
		_, env := call(domain.RoleEmployee, map[string]string{"resource": "payment", "action": "process"})
		assert.Equal(t, map[string]any{"allowed": false}, env.Data)
	})

	t.Run("validation", func(t *testing.T) {
		rec, env := call(domain.RoleFinance, map[string]string{"resource": "payment"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, env.Success)
	})
}
