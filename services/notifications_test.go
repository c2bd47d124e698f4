package services

import (
	"context"
	"testing"
	"time"

	"github.com/faisal/committee-tracker-go/models"
)

// seedCommittee inserts a committee directly into store and state so tests
// control the start date without tripping the mutation-path derivation.
func seedCommittee(t *testing.T, env *testEnv, c *models.Committee) {
	t.Helper()
	if err := env.store.SaveCommittee(context.Background(), c); err != nil {
		t.Fatalf("SaveCommittee failed: %v", err)
	}
	env.state.PutCommittee(c)
}

func TestDerive_OverdueAfterGrace(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	seedCommittee(t, env, &models.Committee{
		ID:              "c1",
		Title:           "Street Committee",
		AmountPerMember: 5000,
		Duration:        12,
		StartDate:       now.AddDate(0, 0, -40), // period 1, grace long past for period 0
		MemberIDs:       []string{"m1"},
		PayoutTurns:     ComputeTurns([]string{"m1"}, models.PayoutManual),
	})

	env.notifications.Derive(context.Background(), now)

	if got := countByType(env.notifications.List(), models.NotifyPaymentOverdue); got != 1 {
		t.Fatalf("expected 1 overdue notification, got %d", got)
	}
	n := env.notifications.List()[0]
	if n.CommitteeID != "c1" || n.MemberID != "m1" {
		t.Errorf("overdue notification references wrong entities: %+v", n)
	}
}

func TestDerive_NoOverdueWithinGrace(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	seedCommittee(t, env, &models.Committee{
		ID:              "c1",
		Title:           "Fresh Committee",
		AmountPerMember: 5000,
		Duration:        12,
		StartDate:       now.AddDate(0, 0, -3), // inside the 7-day grace of period 0
		MemberIDs:       []string{"m1"},
		PayoutTurns:     ComputeTurns([]string{"m1"}, models.PayoutManual),
	})

	env.notifications.Derive(context.Background(), now)

	if got := countByType(env.notifications.List(), models.NotifyPaymentOverdue); got != 0 {
		t.Errorf("expected no overdue inside grace, got %d", got)
	}
}

func TestDerive_ClearedPaymentSuppressesOverdue(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	seedCommittee(t, env, &models.Committee{
		ID:              "c1",
		Title:           "Paid Up",
		AmountPerMember: 5000,
		Duration:        12,
		StartDate:       now.AddDate(0, 0, -10), // period 0, grace passed
		MemberIDs:       []string{"m1", "m2"},
		PayoutTurns:     ComputeTurns([]string{"m1", "m2"}, models.PayoutManual),
		Payments: []models.CommitteePayment{
			{ID: "p1", MemberID: "m1", PeriodIndex: 0, Amount: 5000, Status: models.PaymentCleared},
			{ID: "p2", MemberID: "m2", PeriodIndex: 0, Amount: 5000, Status: models.PaymentPending},
		},
	})

	env.notifications.Derive(context.Background(), now)

	// m1 is covered by a cleared payment; m2's pending payment does not count.
	overdue := 0
	for _, n := range env.notifications.List() {
		if n.Type == models.NotifyPaymentOverdue {
			overdue++
			if n.MemberID != "m2" {
				t.Errorf("expected overdue for m2 only, got member %s", n.MemberID)
			}
		}
	}
	if overdue != 1 {
		t.Errorf("expected exactly 1 overdue, got %d", overdue)
	}
}

func TestDerive_IdempotentByKey(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	seedCommittee(t, env, &models.Committee{
		ID:              "c1",
		Title:           "Repeat",
		AmountPerMember: 5000,
		Duration:        12,
		StartDate:       now.AddDate(0, 0, -40),
		MemberIDs:       []string{"m1", "m2"},
		PayoutTurns:     ComputeTurns([]string{"m1", "m2"}, models.PayoutManual),
	})
	ctx := context.Background()

	env.notifications.Derive(ctx, now)
	first := len(env.notifications.List())
	if first == 0 {
		t.Fatal("expected derived notifications")
	}

	env.notifications.Derive(ctx, now)
	env.notifications.Derive(ctx, now)
	if got := len(env.notifications.List()); got != first {
		t.Errorf("derivation is not idempotent: %d then %d", first, got)
	}
}

func TestDerive_ReadNotificationStillDeduplicates(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	seedCommittee(t, env, &models.Committee{
		ID:              "c1",
		Title:           "Read Dedup",
		AmountPerMember: 5000,
		Duration:        12,
		StartDate:       now.AddDate(0, 0, -40),
		MemberIDs:       []string{"m1"},
		PayoutTurns:     ComputeTurns([]string{"m1"}, models.PayoutManual),
	})
	ctx := context.Background()

	env.notifications.Derive(ctx, now)
	list := env.notifications.List()
	if len(list) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(list))
	}

	env.notifications.MarkRead(ctx, list[0].ID, true)
	env.notifications.Derive(ctx, now)
	if got := len(env.notifications.List()); got != 1 {
		t.Errorf("a read notification must still block re-insertion, got %d", got)
	}
}

func TestDerive_MultiShareMemberYieldsOneOverdue(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	seedCommittee(t, env, &models.Committee{
		ID:              "c1",
		Title:           "Two Shares",
		AmountPerMember: 5000,
		Duration:        12,
		StartDate:       now.AddDate(0, 0, -10),
		MemberIDs:       []string{"m1", "m1"}, // two shares, one member
		PayoutTurns:     ComputeTurns([]string{"m1", "m1"}, models.PayoutManual),
	})

	env.notifications.Derive(context.Background(), now)

	// Both shares derive the same natural key, which collapses to one alert.
	if got := countByType(env.notifications.List(), models.NotifyPaymentOverdue); got != 1 {
		t.Errorf("expected 1 overdue for a two-share member, got %d", got)
	}
}

func TestDerive_UpcomingPayout(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	seedCommittee(t, env, &models.Committee{
		ID:              "c1",
		Title:           "Almost There",
		AmountPerMember: 5000,
		Duration:        12,
		StartDate:       now.AddDate(0, 0, -25), // turn 1 starts in 5 days
		MemberIDs:       []string{"m1", "m2"},
		PayoutTurns:     ComputeTurns([]string{"m1", "m2"}, models.PayoutManual),
		Payments: []models.CommitteePayment{
			{ID: "p1", MemberID: "m1", PeriodIndex: 0, Amount: 5000, Status: models.PaymentCleared},
			{ID: "p2", MemberID: "m2", PeriodIndex: 0, Amount: 5000, Status: models.PaymentCleared},
		},
	})

	env.notifications.Derive(context.Background(), now)

	upcoming := 0
	for _, n := range env.notifications.List() {
		if n.Type == models.NotifyUpcomingPayout {
			upcoming++
			if n.MemberID != "m2" {
				t.Errorf("expected upcoming payout for m2 (turn 1), got %s", n.MemberID)
			}
		}
	}
	if upcoming != 1 {
		t.Errorf("expected 1 upcoming payout, got %d", upcoming)
	}
}

func TestDerive_PaidTurnYieldsNoUpcoming(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	turns := ComputeTurns([]string{"m1", "m2"}, models.PayoutManual)
	date := now
	turns[1].PaidOut = true
	turns[1].PayoutDate = &date
	seedCommittee(t, env, &models.Committee{
		ID:              "c1",
		Title:           "Already Paid",
		AmountPerMember: 5000,
		Duration:        12,
		StartDate:       now.AddDate(0, 0, -25),
		MemberIDs:       []string{"m1", "m2"},
		PayoutTurns:     turns,
		Payments: []models.CommitteePayment{
			{ID: "p1", MemberID: "m1", PeriodIndex: 0, Amount: 5000, Status: models.PaymentCleared},
			{ID: "p2", MemberID: "m2", PeriodIndex: 0, Amount: 5000, Status: models.PaymentCleared},
		},
	})

	env.notifications.Derive(context.Background(), now)

	if got := countByType(env.notifications.List(), models.NotifyUpcomingPayout); got != 0 {
		t.Errorf("expected no upcoming payout for a paid turn, got %d", got)
	}
}

func TestOverdueKey_Deterministic(t *testing.T) {
	a := OverdueKey("c1", "m1", 3, 5000)
	b := OverdueKey("c1", "m1", 3, 5000)
	if a != b {
		t.Errorf("same natural key must derive the same id: %s vs %s", a, b)
	}
	if a == OverdueKey("c1", "m1", 4, 5000) {
		t.Error("different period must derive a different id")
	}
	if a == OverdueKey("c1", "m1", 3, 6000) {
		t.Error("different amount must derive a different id")
	}
}

func TestNotificationLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.notifications.Emit(ctx, models.Notification{
		Type: models.NotifyCommitteeUpdate, Title: "One", Message: "one",
	})
	env.notifications.Emit(ctx, models.Notification{
		Type: models.NotifyCommitteeUpdate, Title: "Two", Message: "two",
	})

	list := env.notifications.List()
	if len(list) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(list))
	}
	// Newest first.
	if list[0].Title != "Two" {
		t.Errorf("expected newest first, got %s", list[0].Title)
	}

	env.notifications.MarkRead(ctx, list[0].ID, true)
	for _, n := range env.notifications.List() {
		if n.ID == list[0].ID && !n.IsRead {
			t.Error("notification not marked read")
		}
	}

	env.notifications.Delete(ctx, list[0].ID)
	if got := len(env.notifications.List()); got != 1 {
		t.Errorf("expected 1 after delete, got %d", got)
	}

	env.notifications.Clear(ctx)
	if got := len(env.notifications.List()); got != 0 {
		t.Errorf("expected 0 after clear, got %d", got)
	}
}
