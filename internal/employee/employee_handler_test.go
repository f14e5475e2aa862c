package employee_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-payroll/internal/employee"
	employeeerrors "go-payroll/internal/employee/errors"
	"go-payroll/internal/salary"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeService struct {
	CreateFn             func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	GetAllFn             func(ctx context.Context, filter employee.EmployeeFilter) ([]employee.EmployeeResponse, int64, error)
	GetOptionsFn         func(ctx context.Context) ([]employee.EmployeeOptionResponse, error)
	GetByIDFn            func(ctx context.Context, id string) (employee.EmployeeResponse, error)
	UpdateFn             func(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	DeactivateFn         func(ctx context.Context, id string) error
	GetSalaryBreakdownFn func(ctx context.Context, id string) (employee.SalaryBreakdownResponse, error)
}

func (f *fakeEmployeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeEmployeeService) GetAll(ctx context.Context, filter employee.EmployeeFilter) ([]employee.EmployeeResponse, int64, error) {
	return f.GetAllFn(ctx, filter)
}
func (f *fakeEmployeeService) GetOptions(ctx context.Context) ([]employee.EmployeeOptionResponse, error) {
	return f.GetOptionsFn(ctx)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeEmployeeService) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeEmployeeService) Deactivate(ctx context.Context, id string) error {
	return f.DeactivateFn(ctx, id)
}
func (f *fakeEmployeeService) GetSalaryBreakdown(ctx context.Context, id string) (employee.SalaryBreakdownResponse, error) {
	return f.GetSalaryBreakdownFn(ctx, id)
}
func (f *fakeEmployeeService) CalculateSalary(ctx context.Context, req employee.CalculateSalaryRequest) salary.BreakdownResponse {
	paid := salary.StandardMonthDays
	if req.PaidDays != nil {
		paid = *req.PaidDays
	}
	return salary.NewBreakdownResponse(salary.Calculate(salary.Input{
		Gross:      salary.Amount(req.Salary),
		PaidDays:   paid,
		DeductPF:   true,
		DeductESIC: true,
	}))
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.ApiEnvelope {
	t.Helper()
	var env response.ApiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestEmployeeHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		name := gofakeit.Name()
		email := gofakeit.Email()

		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, name, req.Name)
				assert.Nil(t, req.PaidDays)
				return employee.EmployeeResponse{
					ID:           uuid.New().String(),
					EmployeeCode: req.EmployeeCode,
					Name:         req.Name,
					Email:        req.Email,
				}, nil
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"employee_code":"EMP900","name":"` + name + `","email":"` + email + `","salary":45000}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w)
		assert.True(t, env.Success)
		assert.Contains(t, w.Body.String(), "EMP900")
	})

	t.Run("validation error", func(t *testing.T) {
		h := employee.NewHandler(&fakeEmployeeService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`{"salary":-1}`))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w)
		assert.False(t, env.Success)
		assert.Equal(t, apperror.CodeInvalidInput, env.Code)
		assert.NotEmpty(t, env.Errors)
	})

	t.Run("service error", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, errors.New("database connection failed")
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"employee_code":"EMP901","name":"HR","email":"hr@company.com","salary":30000}`
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req

		h.Create(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeInternalError)
	})

	t.Run("duplicate employee code returns conflict", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeCodeAlreadyExists
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"employee_code":"EMP900","name":"John Doe","email":"john2@example.com","salary":30000}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeConflict)
		assert.Contains(t, w.Body.String(), "Employee code already exists")
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	t.Run("filters and pagination", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetAllFn: func(ctx context.Context, filter employee.EmployeeFilter) ([]employee.EmployeeResponse, int64, error) {
				assert.Equal(t, "asha", filter.Search)
				assert.Equal(t, 2, filter.Page)
				assert.Equal(t, 10, filter.PageSize)
				require.NotNil(t, filter.Active)
				assert.True(t, *filter.Active)
				return []employee.EmployeeResponse{
					{ID: uuid.New().String(), Name: "Asha Rao"},
				}, 11, nil
			},
		}

		r := setupRouter()
		h := employee.NewHandler(svc)
		r.GET("/employees", h.GetAll)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees?search=asha&is_active=true&page=2&page_size=10", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w)
		require.NotNil(t, env.Meta)
		assert.Equal(t, int64(11), env.Meta.Total)
		assert.Equal(t, 2, env.Meta.TotalPages)
	})

	t.Run("invalid is_active", func(t *testing.T) {
		r := setupRouter()
		h := employee.NewHandler(&fakeEmployeeService{})
		r.GET("/employees", h.GetAll)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees?is_active=maybe", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "is_active is invalid")
	})
}

func TestEmployeeHandler_GetOptions(t *testing.T) {
	svc := &fakeEmployeeService{
		GetOptionsFn: func(ctx context.Context) ([]employee.EmployeeOptionResponse, error) {
			return []employee.EmployeeOptionResponse{
				{ID: uuid.New().String(), EmployeeCode: "EMP001", Name: "Alice Smith"},
				{ID: uuid.New().String(), EmployeeCode: "EMP002", Name: "Bob Wilson"},
			}, nil
		},
	}

	h := employee.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/employees/options", nil)

	h.GetOptions(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Alice Smith")
	assert.Contains(t, w.Body.String(), "EMP002")
}

func TestEmployeeHandler_GetByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		svc := &fakeEmployeeService{
			GetByIDFn: func(ctx context.Context, got string) (employee.EmployeeResponse, error) {
				assert.Equal(t, id, got)
				return employee.EmployeeResponse{ID: got, Name: "HR"}, nil
			},
		}

		r := setupRouter()
		h := employee.NewHandler(svc)
		r.GET("/employees/:id", h.GetByID)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/"+id, nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetByIDFn: func(ctx context.Context, id string) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
			},
		}

		r := setupRouter()
		h := employee.NewHandler(svc)
		r.GET("/employees/:id", h.GetByID)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/"+uuid.New().String(), nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, apperror.CodeNotFound, decodeEnvelope(t, w).Code)
	})
}

func TestEmployeeHandler_UpdateAndDeactivate(t *testing.T) {
	id := uuid.New().String()
	svc := &fakeEmployeeService{
		UpdateFn: func(ctx context.Context, got string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
			require.NotNil(t, req.Salary)
			assert.Equal(t, float64(20000), *req.Salary)
			assert.Nil(t, req.Name)
			return employee.EmployeeResponse{ID: got, Salary: *req.Salary}, nil
		},
		DeactivateFn: func(ctx context.Context, got string) error {
			assert.Equal(t, id, got)
			return nil
		},
	}

	r := setupRouter()
	h := employee.NewHandler(svc)
	r.PUT("/employees/:id", h.Update)
	r.DELETE("/employees/:id", h.Deactivate)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/employees/"+id, strings.NewReader(`{"salary":20000}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/employees/"+id, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"deactivated":true`)
}

func TestEmployeeHandler_CalculateSalary(t *testing.T) {
	r := setupRouter()
	h := employee.NewHandler(&fakeEmployeeService{})
	r.POST("/employees/calculate-salary", h.CalculateSalary)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/employees/calculate-salary", strings.NewReader(`{"salary":50000}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"net_salary":48200`)
}
