package services

import (
	"context"
	"testing"

	"github.com/faisal/committee-tracker-go/models"
)

func newInstallment(t *testing.T, env *testEnv, advance, total float64) *models.Installment {
	t.Helper()
	ins, err := env.installments.AddInstallment(context.Background(), &models.Installment{
		BuyerName:       "Bilal",
		ItemDescription: "Phone",
		Advance:         advance,
		TotalPayment:    total,
	})
	if err != nil {
		t.Fatalf("AddInstallment failed: %v", err)
	}
	return ins
}

func TestAddInstallment_AlwaysOpensOpen(t *testing.T) {
	env := newTestEnv(t)

	// Even a fully covered advance does not pre-close at creation.
	ins := newInstallment(t, env, 10000, 10000)
	if ins.Status != models.InstallmentOpen {
		t.Errorf("expected Open at creation, got %s", ins.Status)
	}
	if len(ins.Payments) != 0 {
		t.Errorf("expected empty payment list, got %d", len(ins.Payments))
	}
}

func TestUpdateInstallment_ClosesExactlyAtThreshold(t *testing.T) {
	env := newTestEnv(t)
	ins := newInstallment(t, env, 2000, 10000)
	ctx := context.Background()

	ins, err := env.installments.AddPayment(ctx, ins.ID, models.InstallmentPayment{Amount: 3000})
	if err != nil {
		t.Fatalf("AddPayment failed: %v", err)
	}
	if ins.Status != models.InstallmentOpen {
		t.Errorf("2000+3000 < 10000: expected Open, got %s", ins.Status)
	}

	ins, err = env.installments.AddPayment(ctx, ins.ID, models.InstallmentPayment{Amount: 4000})
	if err != nil {
		t.Fatalf("AddPayment failed: %v", err)
	}
	if ins.Status != models.InstallmentOpen {
		t.Errorf("2000+3000+4000 = 9000 < 10000: expected Open, got %s", ins.Status)
	}

	ins, err = env.installments.AddPayment(ctx, ins.ID, models.InstallmentPayment{Amount: 1000})
	if err != nil {
		t.Fatalf("AddPayment failed: %v", err)
	}
	if ins.Status != models.InstallmentClosed {
		t.Errorf("2000+3000+4000+1000 = 10000 >= 10000: expected Closed, got %s", ins.Status)
	}
}

func TestUpdateInstallment_EdgeTriggeredNotifications(t *testing.T) {
	env := newTestEnv(t)
	ins := newInstallment(t, env, 2000, 10000)
	ctx := context.Background()

	ins, err := env.installments.AddPayment(ctx, ins.ID, models.InstallmentPayment{Amount: 3000})
	if err != nil {
		t.Fatalf("AddPayment failed: %v", err)
	}
	if got := countByType(env.notifications.List(), models.NotifyInstallmentUpdate); got != 1 {
		t.Errorf("expected 1 payment notification, got %d", got)
	}
	if got := countByType(env.notifications.List(), models.NotifyInstallmentClosed); got != 0 {
		t.Errorf("expected no closed notification yet, got %d", got)
	}

	ins, err = env.installments.AddPayment(ctx, ins.ID, models.InstallmentPayment{Amount: 5000})
	if err != nil {
		t.Fatalf("AddPayment failed: %v", err)
	}
	if ins.Status != models.InstallmentClosed {
		t.Fatalf("expected Closed, got %s", ins.Status)
	}
	if got := countByType(env.notifications.List(), models.NotifyInstallmentClosed); got != 1 {
		t.Errorf("expected exactly 1 closed notification, got %d", got)
	}

	// Re-saving the closed installment without new payments notifies nothing.
	if _, err := env.installments.UpdateInstallment(ctx, ins); err != nil {
		t.Fatalf("UpdateInstallment failed: %v", err)
	}
	if got := countByType(env.notifications.List(), models.NotifyInstallmentClosed); got != 1 {
		t.Errorf("re-save must not re-notify: got %d closed notifications", got)
	}
	if got := countByType(env.notifications.List(), models.NotifyInstallmentUpdate); got != 2 {
		t.Errorf("re-save must not emit a payment notification: got %d", got)
	}
}

func TestDeleteInstallment(t *testing.T) {
	env := newTestEnv(t)
	ins := newInstallment(t, env, 0, 5000)

	if err := env.installments.DeleteInstallment(context.Background(), ins.ID); err != nil {
		t.Fatalf("DeleteInstallment failed: %v", err)
	}
	if env.installments.GetInstallment(ins.ID) != nil {
		t.Error("installment should be gone after delete")
	}
}
