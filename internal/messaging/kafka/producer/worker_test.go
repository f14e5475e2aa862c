package producer

import (
	"context"
	"errors"
	"testing"

	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	kafkaMock "go-payroll/internal/messaging/kafka/mock"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeWriter struct {
	failTopic string
	written   []kafkago.Message
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if m.Topic == w.failTopic {
			return errors.New("broker unavailable")
		}
		w.written = append(w.written, m)
	}
	return nil
}

func header(m kafkago.Message, key string) string {
	for _, h := range m.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestPublisher_PublishBatch(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)
	core, logs := observer.New(zap.InfoLevel)

	claimed := []kafka.OutboxEvent{
		{ID: "1", RequestID: "req-9", AggregateID: "slip-1", EventType: "payslip_generated", Topic: events.PayslipGeneratedTopic, Payload: []byte(`{}`)},
		{ID: "2", AggregateID: "pay-1", EventType: "payment_paid", Topic: events.PaymentPaidTopic, Payload: []byte(`{}`)},
	}
	writer := &fakeWriter{failTopic: events.PaymentPaidTopic}

	repo.EXPECT().ClaimPending(ctx, defaultBatchSize, defaultLease).Return(claimed, nil)
	repo.EXPECT().MarkSent(ctx, "1").Return(nil)
	repo.EXPECT().MarkFailed(ctx, "2", "broker unavailable").Return(nil)

	n, sent, err := NewPublisher(repo, writer, zap.New(core)).PublishBatch(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 1, sent)
	require.Len(t, writer.written, 1)
	assert.Equal(t, []byte("slip-1"), writer.written[0].Key)
	assert.Equal(t, "req-9", header(writer.written[0], "request_id"))
	assert.Equal(t, "1", header(writer.written[0], "outbox_id"))
	assert.Equal(t, 1, logs.FilterMessage("outbox event sent").Len())
	assert.Equal(t, 1, logs.FilterMessage("publish outbox event failed").Len())
}

func TestPublisher_PublishBatch_Empty(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)

	repo.EXPECT().ClaimPending(ctx, defaultBatchSize, defaultLease).Return(nil, nil)

	n, sent, err := NewPublisher(repo, &fakeWriter{}, zap.NewNop()).PublishBatch(ctx)

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, sent)
}

func TestPublisher_DrainStopsOnShortBatch(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)

	p := NewPublisher(repo, &fakeWriter{}, zap.NewNop())
	p.batchSize = 2

	full := []kafka.OutboxEvent{
		{ID: "1", Topic: "t", Payload: []byte(`{}`)},
		{ID: "2", Topic: "t", Payload: []byte(`{}`)},
	}
	short := []kafka.OutboxEvent{{ID: "3", Topic: "t", Payload: []byte(`{}`)}}

	gomock.InOrder(
		repo.EXPECT().ClaimPending(ctx, 2, defaultLease).Return(full, nil),
		repo.EXPECT().ClaimPending(ctx, 2, defaultLease).Return(short, nil),
	)
	repo.EXPECT().MarkSent(ctx, gomock.Any()).Return(nil).Times(3)

	p.drain(ctx)
}

func TestPublisher_DrainStopsOnClaimError(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)

	repo.EXPECT().ClaimPending(ctx, defaultBatchSize, defaultLease).Return(nil, errors.New("db down"))

	NewPublisher(repo, &fakeWriter{}, zap.NewNop()).drain(ctx)
}
