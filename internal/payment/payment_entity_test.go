package payment

import (
	"testing"
	"time"

	paymenterrors "go-payroll/internal/payment/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentRequest_ForwardChain(t *testing.T) {
	at := time.Date(2025, 3, 31, 10, 0, 0, 0, time.UTC)
	p := &PaymentRequest{Status: string(StatusPending)}

	require.ErrorIs(t, p.MDApprove("md", "", at), paymenterrors.ErrNotFinanceApproved)
	require.ErrorIs(t, p.Process("fin", "", at), paymenterrors.ErrNotMDApproved)

	require.NoError(t, p.FinanceApprove("fin", "budget ok", at))
	assert.Equal(t, StatusFinanceApproved, p.CurrentStatus())
	assert.Equal(t, "fin", *p.FinanceApprovedBy)
	assert.Equal(t, "budget ok", p.FinanceComments)
	require.ErrorIs(t, p.FinanceApprove("fin", "", at), paymenterrors.ErrNotPending)

	require.NoError(t, p.MDApprove("md", "", at))
	assert.Equal(t, StatusMDApproved, p.CurrentStatus())
	require.NotNil(t, p.MDApprovedAt)

	p.Remarks = "first"
	require.NoError(t, p.Process("fin", "", at))
	assert.Equal(t, StatusPaid, p.CurrentStatus())
	assert.Equal(t, "first", p.Remarks)
	assert.True(t, p.Active())
}

func TestPaymentRequest_Reject(t *testing.T) {
	at := time.Now()

	tests := []struct {
		name    string
		status  Status
		reason  string
		wantErr error
	}{
		{"pending", StatusPending, "wrong account", nil},
		{"finance approved", StatusFinanceApproved, "duplicate", nil},
		{"md approved", StatusMDApproved, "hold", nil},
		{"paid", StatusPaid, "too late", paymenterrors.ErrAlreadyPaid},
		{"rejected", StatusRejected, "again", paymenterrors.ErrAlreadyRejected},
		{"blank reason", StatusPending, "   ", paymenterrors.ErrRejectReasonRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &PaymentRequest{Status: string(tt.status)}
			err := p.Reject("md", tt.reason, at)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.status, p.CurrentStatus())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, StatusRejected, p.CurrentStatus())
			assert.Equal(t, tt.reason, p.RejectionReason)
			assert.False(t, p.Active())
		})
	}
}
