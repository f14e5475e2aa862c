package consumer

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go-payroll/internal/events"
	"go-payroll/internal/payslip"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the subset of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type DeliveryReceiptHandler interface {
	MarkEmailDelivered(ctx context.Context, receipt payslip.DeliveryReceipt) error
}

const maxApplyAttempts = 3

var retryBackoff = 500 * time.Millisecond

// ConsumePayslipEmailDelivery applies relay delivery receipts to payslip email status
// until ctx is cancelled. Undecodable receipts are committed and skipped. A receipt that
// still fails after maxApplyAttempts is logged and committed, since the reader has
// already moved past it.
func ConsumePayslipEmailDelivery(
	ctx context.Context,
	reader MessageReader,
	handler DeliveryReceiptHandler,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payslip_email_delivery")
	log.Info("payslip email delivery consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payslip email delivery consumer stopped")
				return
			}
			log.Error("fetch delivery receipt failed", zap.Error(err))
			if !sleep(ctx, retryBackoff) {
				log.Info("payslip email delivery consumer stopped")
				return
			}
			continue
		}

		receipt, ok := decodeReceipt(msg.Value, log)
		if !ok {
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := applyWithRetry(ctx, handler, receipt, log); err != nil {
			if ctx.Err() != nil {
				log.Info("payslip email delivery consumer stopped")
				return
			}
			log.Error("delivery receipt dropped",
				zap.String("message_id", receipt.MessageID),
				zap.String("payslip_id", receipt.PayslipID),
				zap.Bool("delivered", receipt.Delivered),
				zap.Int("attempts", maxApplyAttempts),
				zap.Error(err),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit delivery receipt failed", zap.Error(err))
			continue
		}

		log.Debug("delivery receipt handled",
			zap.String("message_id", receipt.MessageID),
			zap.Bool("delivered", receipt.Delivered),
		)
	}
}

func applyWithRetry(
	ctx context.Context,
	handler DeliveryReceiptHandler,
	receipt payslip.DeliveryReceipt,
	log *zap.Logger,
) error {
	var err error
	for attempt := 1; attempt <= maxApplyAttempts; attempt++ {
		if err = handler.MarkEmailDelivered(ctx, receipt); err == nil {
			return nil
		}
		log.Warn("apply delivery receipt failed",
			zap.String("message_id", receipt.MessageID),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if attempt < maxApplyAttempts && !sleep(ctx, retryBackoff<<(attempt-1)) {
			return ctx.Err()
		}
	}
	return err
}

// sleep waits for d and reports false if ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func decodeReceipt(value []byte, log *zap.Logger) (payslip.DeliveryReceipt, bool) {
	var event events.PayslipEmailDeliveryEvent
	if err := json.Unmarshal(value, &event); err != nil {
		log.Error("decode delivery receipt failed", zap.Error(err))
		return payslip.DeliveryReceipt{}, false
	}

	status := strings.ToLower(strings.TrimSpace(event.Status))
	if status != events.DeliveryStatusDelivered && status != events.DeliveryStatusBounced {
		log.Warn("delivery receipt with unknown status skipped",
			zap.String("message_id", event.MessageID),
			zap.String("status", event.Status),
		)
		return payslip.DeliveryReceipt{}, false
	}

	return payslip.DeliveryReceipt{
		PayslipID: event.PayslipID,
		MessageID: event.MessageID,
		Delivered: status == events.DeliveryStatusDelivered,
		Reason:    event.Reason,
		At:        event.OccurredAt,
	}, true
}
