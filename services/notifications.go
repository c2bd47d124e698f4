package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/faisal/committee-tracker-go/i18n"
	"github.com/faisal/committee-tracker-go/models"
	"github.com/faisal/committee-tracker-go/state"
	"github.com/faisal/committee-tracker-go/store"
)

// Period and grace constants. Every committee type uses a 30-day period
// approximation; see the overdue contract in the notification deriver.
const (
	PeriodDays = 30
	GraceDays  = 7
)

// NotificationService creates, derives and manages notifications. Persisting
// a notification is always best-effort: a store failure is logged and the
// local state still updated, never propagated to the mutation that caused it.
type NotificationService struct {
	store store.Store
	state *state.AppState

	// Lang resolves the language for generated titles and messages.
	Lang func() string
}

func NewNotificationService(st store.Store, appState *state.AppState) *NotificationService {
	return &NotificationService{
		store: st,
		state: appState,
		Lang:  func() string { return "en" },
	}
}

func (s *NotificationService) lang() string {
	if s.Lang == nil {
		return "en"
	}
	return s.Lang()
}

// Emit stores and caches an event notification. Missing id and timestamp are
// filled in; an id collision is silently skipped (the key is authoritative).
func (s *NotificationService) Emit(ctx context.Context, n models.Notification) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now()
	}
	if !s.state.PutNotification(&n) {
		return
	}
	if err := s.store.SaveNotification(ctx, &n); err != nil {
		slog.Error("failed to persist notification", "id", n.ID, "type", n.Type, "error", err)
	}
}

// OverdueKey derives the stable id for an overdue-payment notification from
// its natural key. The same inputs always yield the same id, which is what
// makes repeated derivation idempotent.
func OverdueKey(committeeID, memberID string, periodIndex int, expected float64) string {
	material := fmt.Sprintf("overdue|%s|%s|%d|%.2f", committeeID, memberID, periodIndex, expected)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(material)).String()
}

// UpcomingKey derives the stable id for an upcoming-payout notification.
func UpcomingKey(committeeID, memberID string, turnIndex int) string {
	material := fmt.Sprintf("upcoming|%s|%s|%d", committeeID, memberID, turnIndex)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(material)).String()
}

// Derive scans committee and member state and synthesizes overdue-payment and
// upcoming-payout notifications. A notification whose derived key already
// exists, read or unread, is never re-inserted, so running Derive twice on
// unchanged state adds nothing.
func (s *NotificationService) Derive(ctx context.Context, now time.Time) {
	lang := s.lang()
	for _, c := range s.state.Committees() {
		if now.Before(c.StartDate) {
			continue
		}
		period := currentPeriod(&c, now)

		// Overdue contributions for the current period, once the grace window
		// past the period start has elapsed.
		graceEnd := c.StartDate.AddDate(0, 0, period*PeriodDays+GraceDays)
		if now.After(graceEnd) {
			for _, memberID := range c.MemberIDs {
				key := OverdueKey(c.ID, memberID, period, c.AmountPerMember)
				if s.state.HasNotification(key) {
					continue
				}
				if clearedSum(&c, memberID, period) >= c.AmountPerMember {
					continue
				}
				s.Emit(ctx, models.Notification{
					ID:    key,
					Type:  models.NotifyPaymentOverdue,
					Title: i18n.T(lang, "payment.overdue", nil),
					Message: i18n.T(lang, "payment.overdue", map[string]string{
						"name":   s.memberName(memberID),
						"amount": formatAmount(c.AmountPerMember),
						"title":  c.Title,
					}),
					Timestamp:    now,
					CommitteeID:  c.ID,
					MemberID:     memberID,
					ActionTarget: "committee/" + c.ID,
				})
			}
		}

		// Payouts starting within the next grace window.
		for _, turn := range c.PayoutTurns {
			if turn.PaidOut {
				continue
			}
			turnStart := c.StartDate.AddDate(0, 0, turn.TurnIndex*PeriodDays)
			if turnStart.Before(now) || turnStart.Sub(now) > GraceDays*24*time.Hour {
				continue
			}
			key := UpcomingKey(c.ID, turn.MemberID, turn.TurnIndex)
			if s.state.HasNotification(key) {
				continue
			}
			s.Emit(ctx, models.Notification{
				ID:    key,
				Type:  models.NotifyUpcomingPayout,
				Title: i18n.T(lang, "payout.upcoming", nil),
				Message: i18n.T(lang, "payout.upcoming", map[string]string{
					"name":  s.memberName(turn.MemberID),
					"title": c.Title,
				}),
				Timestamp:    now,
				CommitteeID:  c.ID,
				MemberID:     turn.MemberID,
				ActionTarget: "committee/" + c.ID,
			})
		}
	}
}

// List returns all notifications, newest first.
func (s *NotificationService) List() []models.Notification {
	all := s.state.Notifications()
	// insertion order is oldest-first; reverse for display
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	return all
}

// MarkRead toggles the read flag. An unknown id is a no-op.
func (s *NotificationService) MarkRead(ctx context.Context, id string, read bool) {
	if !s.state.MarkNotificationRead(id, read) {
		slog.Warn("mark read on unknown notification", "id", id)
		return
	}
	if err := s.store.SetNotificationRead(ctx, id, read); err != nil {
		slog.Error("failed to persist read flag", "id", id, "error", err)
	}
}

// Delete removes one notification.
func (s *NotificationService) Delete(ctx context.Context, id string) {
	s.state.RemoveNotification(id)
	if err := s.store.DeleteNotification(ctx, id); err != nil {
		slog.Error("failed to delete notification", "id", id, "error", err)
	}
}

// Clear removes all notifications.
func (s *NotificationService) Clear(ctx context.Context) {
	s.state.SetNotifications(nil)
	if err := s.store.DeleteAllNotifications(ctx); err != nil {
		slog.Error("failed to clear notifications", "error", err)
	}
}

func (s *NotificationService) memberName(id string) string {
	if m := s.state.Member(id); m != nil {
		return m.Name
	}
	return id
}

// currentPeriod is the 0-based period the committee is in at time now,
// clamped to the last addressable slot once the committee has run its course.
func currentPeriod(c *models.Committee, now time.Time) int {
	days := int(now.Sub(c.StartDate).Hours() / 24)
	period := days / PeriodDays
	if c.Duration > 0 && period >= c.Duration {
		period = c.Duration - 1
	}
	if period < 0 {
		period = 0
	}
	return period
}

// clearedSum totals Cleared payments for one member in one period. Pending
// payments do not count toward the collected amount.
func clearedSum(c *models.Committee, memberID string, periodIndex int) float64 {
	var sum float64
	for _, p := range c.Payments {
		if p.MemberID == memberID && p.PeriodIndex == periodIndex && p.Status == models.PaymentCleared {
			sum += p.Amount
		}
	}
	return sum
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.0f", v)
}
