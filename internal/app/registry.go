package app

import (
	"context"
	"database/sql"

	"go-payroll/internal/attendance"
	"go-payroll/internal/config"
	"go-payroll/internal/document"
	"go-payroll/internal/employee"
	"go-payroll/internal/importer"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/notification"
	"go-payroll/internal/payment"
	"go-payroll/internal/payroll"
	"go-payroll/internal/payslip"
	"go-payroll/internal/rbac"
	"go-payroll/internal/rbac/infra"
	"go-payroll/internal/salaryrevision"
	"go-payroll/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	payslipRepo := payslip.NewRepository(gormDB)
	paymentRepo := payment.NewRepository(gormDB)
	revisionRepo := salaryrevision.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, logger)
	if err := rbacService.LoadPolicy(context.Background()); err != nil {
		return err
	}

	// --- Collaborators ---
	renderer := document.NewPDFRenderer(cfg.Payroll.CompanyName)
	notifier, err := newNotifier(cfg.SMTP, logger)
	if err != nil {
		return err
	}

	// --- Services ---
	employeeService := employee.NewService(db, employeeRepo, rdb, logger)
	attendanceService := attendance.NewService(db, attendanceRepo, employeeRepo, logger)
	importerService := importer.NewService(employeeRepo, attendanceService, logger)
	payrollService := payroll.NewService(
		db, attendanceRepo, payslipRepo, outboxRepo,
		renderer, cfg.Payroll.RenderTimeout, logger,
	)
	payslipService := payslip.NewService(
		db, payslipRepo, employeeRepo, outboxRepo,
		renderer, notifier,
		payslip.Config{
			CompanyName:   cfg.Payroll.CompanyName,
			NotifyTimeout: cfg.Payroll.NotifyTimeout,
			RenderTimeout: cfg.Payroll.RenderTimeout,
		},
		logger,
	)
	paymentService := payment.NewService(db, paymentRepo, payslipRepo, counterRepo, outboxRepo, logger)
	revisionService := salaryrevision.NewService(db, revisionRepo, employeeRepo, outboxRepo, logger)

	// --- Handlers ---
	rbacHandler := rbac.NewHandler(rbacService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	attendanceHandler := attendance.NewHandler(attendanceService, logger)
	importerHandler := importer.NewHandler(importerService, logger)
	payrollHandler := payroll.NewHandler(payrollService, logger)
	payslipHandler := payslip.NewHandler(payslipService, logger)
	paymentHandler := payment.NewHandler(paymentService, logger)
	revisionHandler := salaryrevision.NewHandler(revisionService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		rbac.RegisterRoutes(api, rbacHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService, logger)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService, logger)
		importer.RegisterRoutes(api, importerHandler, rbacService, logger)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, logger)
		payslip.RegisterRoutes(api, payslipHandler, rbacService, rdb, logger)
		payment.RegisterRoutes(api, paymentHandler, rbacService, rdb, logger)
		salaryrevision.RegisterRoutes(api, revisionHandler, rbacService, rdb, logger)
	}

	return nil
}

// newNotifier falls back to a log-only notifier when SMTP delivery is disabled.
func newNotifier(cfg config.SMTPConfig, logger *zap.Logger) (payslip.Notifier, error) {
	if !cfg.Enabled {
		logger.Warn("SMTP disabled, payslip emails will only be logged")
		return notification.NewLogNotifier(logger), nil
	}
	n, err := notification.NewSMTPNotifier(notification.SMTPConfig{
		Enabled:  cfg.Enabled,
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.Username,
		Password: cfg.Password,
		From:     cfg.From,
		FromName: cfg.FromName,
		UseTLS:   cfg.UseTLS,
	}, logger)
	if err != nil {
		return nil, err
	}
	return n, nil
}
