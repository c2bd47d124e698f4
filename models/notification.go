package models

import "time"

type NotificationType string

const (
	NotifyPaymentOverdue    NotificationType = "PAYMENT_OVERDUE"
	NotifyUpcomingPayout    NotificationType = "UPCOMING_PAYOUT"
	NotifyCommitteeUpdate   NotificationType = "COMMITTEE_UPDATE"
	NotifyInstallmentUpdate NotificationType = "INSTALLMENT_UPDATE"
	NotifyInstallmentClosed NotificationType = "INSTALLMENT_CLOSED"
)

// Notification is an alert shown to the user. Derived notifications (overdue,
// upcoming payout) carry an ID computed deterministically from their natural
// key, so re-running derivation can never insert a duplicate.
type Notification struct {
	ID           string           `bson:"_id" json:"id"`
	Type         NotificationType `bson:"type" json:"type"`
	Title        string           `bson:"title" json:"title"`
	Message      string           `bson:"message" json:"message"`
	Timestamp    time.Time        `bson:"timestamp" json:"timestamp"`
	IsRead       bool             `bson:"is_read" json:"is_read"`
	CommitteeID  string           `bson:"committee_id,omitempty" json:"committee_id,omitempty"`
	MemberID     string           `bson:"member_id,omitempty" json:"member_id,omitempty"`
	ActionTarget string           `bson:"action_target,omitempty" json:"action_target,omitempty"`
}
