package app

import (
	"context"
	"os/signal"
	"syscall"

	"go-payroll/internal/config"
	"go-payroll/internal/document"
	"go-payroll/internal/employee"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/messaging/kafka/consumer"
	"go-payroll/internal/notification"
	"go-payroll/internal/payslip"
	"go-payroll/internal/shared/connection"

	"go.uber.org/zap"
)

// RunConsumer applies payslip email delivery receipts until SIGINT or SIGTERM.
func RunConsumer(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, logger)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	payslipService := payslip.NewService(
		sqlDB,
		payslip.NewRepository(gormDB),
		employee.NewRepository(gormDB),
		kafka.NewOutboxRepository(sqlDB),
		document.NewPDFRenderer(cfg.Payroll.CompanyName),
		notification.NewLogNotifier(logger),
		payslip.Config{CompanyName: cfg.Payroll.CompanyName},
		logger,
	)

	reader := connection.NewKafkaReader(cfg.Kafka, events.PayslipEmailDeliveryTopic)
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer.ConsumePayslipEmailDelivery(ctx, reader, payslipService, logger)

	log.Info("consumer shutting down")
	return nil
}
