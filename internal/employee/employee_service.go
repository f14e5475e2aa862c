package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	employeeerrors "go-payroll/internal/employee/errors"
	"go-payroll/internal/salary"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	EmployeeOptionsKey = "employees:options"
	optionsTTL         = time.Hour
	dateLayout         = "2006-01-02"
)

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, filter EmployeeFilter) ([]EmployeeResponse, int64, error)
	GetOptions(ctx context.Context) ([]EmployeeOptionResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Deactivate(ctx context.Context, id string) error
	GetSalaryBreakdown(ctx context.Context, id string) (SalaryBreakdownResponse, error)
	CalculateSalary(ctx context.Context, req CalculateSalaryRequest) salary.BreakdownResponse
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("employee_code", req.EmployeeCode),
		zap.String("email", req.Email),
	)

	joiningDate, err := parseOptionalDate(req.JoiningDate)
	if err != nil {
		s.logger.Warn("create employee invalid joining_date", zap.String("joining_date", req.JoiningDate))
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl := &Employee{
		ID:            uuid.New(),
		EmployeeCode:  strings.TrimSpace(req.EmployeeCode),
		Name:          strings.TrimSpace(req.Name),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:         req.Phone,
		Department:    req.Department,
		Designation:   req.Designation,
		JoiningDate:   joiningDate,
		IsActive:      true,
		Salary:        salary.Amount(req.Salary),
		PaidDays:      intOrDefault(req.PaidDays, salary.StandardMonthDays),
		DeductPF:      boolOrDefault(req.DeductPF, true),
		DeductESIC:    boolOrDefault(req.DeductESIC, true),
		Reimbursement: salary.Amount(req.Reimbursement),
		Note:          req.Note,
	}
	empl.Recompute()

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)
	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context, filter EmployeeFilter) ([]EmployeeResponse, int64, error) {
	s.logger.Debug("get all employees requested",
		zap.String("search", filter.Search),
		zap.Int("page", filter.Page),
	)
	employees, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, 0, mapRepositoryError(err)
	}
	return mapToListResponse(employees), total, nil
}

func (s *service) GetOptions(ctx context.Context) ([]EmployeeOptionResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, EmployeeOptionsKey).Result(); err == nil {
			var resp []EmployeeOptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(EmployeeOptionsKey, func() (interface{}, error) {
		employees, err := s.repo.FindActive(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]EmployeeOptionResponse, len(employees))
		for i, e := range employees {
			resp[i] = EmployeeOptionResponse{
				ID:           e.ID.String(),
				EmployeeCode: e.EmployeeCode,
				Name:         e.Name,
			}
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, EmployeeOptionsKey, payload, optionsTTL).Err(); err != nil {
					s.logger.Warn("cache employee options failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("get employee options failed", zap.Error(err))
		return nil, err
	}

	return v.([]EmployeeOptionResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested", zap.String("employee_id", id))
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("get employee by id failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested", zap.String("employee_id", id))
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		s.logger.Warn("update employee fetch existing failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := applyUpdate(empl, req); err != nil {
		return EmployeeResponse{}, err
	}
	empl.Recompute()

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)
	s.logger.Info("update employee success", zap.String("employee_id", id))

	return mapToResponse(*empl), nil
}

// Deactivate keeps the record so historical documents still resolve it.
func (s *service) Deactivate(ctx context.Context, id string) error {
	s.logger.Debug("deactivate employee requested", zap.String("employee_id", id))
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("deactivate employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	empl.IsActive = false

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("deactivate employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("deactivate employee commit failed", zap.Error(err))
		return err
	}

	s.invalidateOptions(ctx)
	s.logger.Info("deactivate employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) GetSalaryBreakdown(ctx context.Context, id string) (SalaryBreakdownResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return SalaryBreakdownResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return SalaryBreakdownResponse{}, mapRepositoryError(err)
	}

	return SalaryBreakdownResponse{
		EmployeeID:    empl.ID.String(),
		EmployeeCode:  empl.EmployeeCode,
		Name:          empl.Name,
		Salary:        empl.Salary.InexactFloat64(),
		PaidDays:      empl.PaidDays,
		Reimbursement: empl.Reimbursement.InexactFloat64(),
		Breakdown:     salary.NewBreakdownResponse(empl.Breakdown()),
	}, nil
}

func (s *service) CalculateSalary(ctx context.Context, req CalculateSalaryRequest) salary.BreakdownResponse {
	b := salary.Calculate(salary.Input{
		Gross:         salary.Amount(req.Salary),
		PaidDays:      intOrDefault(req.PaidDays, salary.StandardMonthDays),
		DeductPF:      boolOrDefault(req.DeductPF, true),
		DeductESIC:    boolOrDefault(req.DeductESIC, true),
		Reimbursement: salary.Amount(req.Reimbursement),
	})
	return salary.NewBreakdownResponse(b)
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeeOptionsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", EmployeeOptionsKey),
		)
	}
}

func applyUpdate(empl *Employee, req UpdateEmployeeRequest) error {
	if req.Name != nil {
		empl.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		empl.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		empl.Phone = *req.Phone
	}
	if req.Department != nil {
		empl.Department = *req.Department
	}
	if req.Designation != nil {
		empl.Designation = *req.Designation
	}
	if req.JoiningDate != nil {
		d, err := parseOptionalDate(*req.JoiningDate)
		if err != nil {
			return err
		}
		empl.JoiningDate = d
	}
	if req.IsActive != nil {
		empl.IsActive = *req.IsActive
	}
	if req.Salary != nil {
		empl.Salary = salary.Amount(*req.Salary)
	}
	if req.PaidDays != nil {
		empl.PaidDays = *req.PaidDays
	}
	if req.DeductPF != nil {
		empl.DeductPF = *req.DeductPF
	}
	if req.DeductESIC != nil {
		empl.DeductESIC = *req.DeductESIC
	}
	if req.Reimbursement != nil {
		empl.Reimbursement = salary.Amount(*req.Reimbursement)
	}
	if req.Note != nil {
		empl.Note = *req.Note
	}
	return nil
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:              e.ID.String(),
		EmployeeCode:    e.EmployeeCode,
		Name:            e.Name,
		Email:           e.Email,
		Phone:           e.Phone,
		Department:      e.Department,
		Designation:     e.Designation,
		IsActive:        e.IsActive,
		Salary:          e.Salary.InexactFloat64(),
		PaidDays:        e.PaidDays,
		Leaves:          e.Leaves,
		DeductPF:        e.DeductPF,
		DeductESIC:      e.DeductESIC,
		Reimbursement:   e.Reimbursement.InexactFloat64(),
		Note:            e.Note,
		SalaryBreakdown: salary.NewBreakdownResponse(e.Breakdown()),
		CreatedAt:       e.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       e.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if e.JoiningDate != nil {
		resp.JoiningDate = e.JoiningDate.Format(dateLayout)
	}
	return resp
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		res[i] = mapToResponse(e)
	}
	return res
}

func parseOptionalDate(v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, employeeerrors.ErrInvalidJoiningDate
	}
	return &d, nil
}

func intOrDefault(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
