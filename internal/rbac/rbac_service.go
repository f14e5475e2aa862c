package rbac

import (
	"context"
	"strings"
	"sync"

	"go-payroll/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

type Service interface {
	LoadPolicy(ctx context.Context) error
	Enforce(req domain.EnforceRequest) (bool, error)
	ListPermissions(role string) []domain.PermissionResponse
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   *zap.Logger
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{
		repo:     repo,
		enforcer: enforcer,
		logger:   l,
	}
}

// LoadPolicy replaces the in-memory policy with role_permissions, seeding defaults into an empty table.
func (s *service) LoadPolicy(ctx context.Context) error {
	rows, err := s.repo.ListRolePermissions(ctx)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		rows = DefaultRolePermissions()
		if err := s.repo.SeedRolePermissions(ctx, rows); err != nil {
			return err
		}
		s.logger.Info("rbac default policy seeded", zap.Int("rules", len(rows)))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.enforcer.ClearPolicy()
	for _, rp := range rows {
		if _, err := s.enforcer.AddPolicy(strings.ToUpper(rp.Role), rp.Resource, rp.Action); err != nil {
			return err
		}
	}
	s.logger.Info("rbac policy loaded", zap.Int("rules", len(rows)))
	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	role := strings.ToUpper(strings.TrimSpace(req.Role))
	if role == "" {
		return false, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed, err := s.enforcer.Enforce(role, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("subject", req.Subject),
			zap.String("role", role),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("subject", req.Subject),
		zap.String("role", role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) ListPermissions(role string) []domain.PermissionResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	role = strings.ToUpper(strings.TrimSpace(role))
	policies, err := s.enforcer.GetFilteredPolicy(0, role)
	if err != nil {
		s.logger.Warn("rbac list permissions failed", zap.String("role", role), zap.Error(err))
		return nil
	}

	out := make([]domain.PermissionResponse, 0, len(policies))
	for _, p := range policies {
		if len(p) < 3 {
			continue
		}
		out = append(out, domain.PermissionResponse{Role: p[0], Resource: p[1], Action: p[2]})
	}
	return out
}
