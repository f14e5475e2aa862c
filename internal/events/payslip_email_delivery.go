package events

import "time"

// PayslipEmailDeliveryTopic carries delivery receipts reported by the mail relay.
const PayslipEmailDeliveryTopic = "payroll.payslip.email.delivery.v1"

const (
	DeliveryStatusDelivered = "delivered"
	DeliveryStatusBounced   = "bounced"
)

type PayslipEmailDeliveryEvent struct {
	EventType  string    `json:"event_type"`
	MessageID  string    `json:"message_id"`
	PayslipID  string    `json:"payslip_id,omitempty"`
	Status     string    `json:"status"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
