package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/faisal/committee-tracker-go/i18n"
	"github.com/faisal/committee-tracker-go/models"
	"github.com/faisal/committee-tracker-go/state"
	"github.com/faisal/committee-tracker-go/store"
)

// InstallmentService owns the installment-sale ledger. Status is never set by
// callers: it is recomputed from the balance on every update.
type InstallmentService struct {
	store  store.Store
	state  *state.AppState
	notify *NotificationService
}

func NewInstallmentService(st store.Store, appState *state.AppState, notify *NotificationService) *InstallmentService {
	return &InstallmentService{store: st, state: appState, notify: notify}
}

// AddInstallment creates the installment with an empty payment list and Open
// status regardless of the advance amount; only subsequent updates can close
// it.
func (s *InstallmentService) AddInstallment(ctx context.Context, ins *models.Installment) (*models.Installment, error) {
	if ins.ID == "" {
		ins.ID = uuid.NewString()
	}
	ins.Payments = []models.InstallmentPayment{}
	ins.Status = models.InstallmentOpen
	now := time.Now()
	ins.CreatedAt = now
	ins.UpdatedAt = now

	if err := s.store.SaveInstallment(ctx, ins); err != nil {
		return nil, fmt.Errorf("add installment: %w", err)
	}
	s.state.PutInstallment(ins)
	return ins, nil
}

// UpdateInstallment recomputes the derived status before persisting and emits
// edge-triggered notifications: one when the payment count grew, one when the
// status transitioned Open to Closed. Re-saving an already-closed installment
// notifies nothing.
func (s *InstallmentService) UpdateInstallment(ctx context.Context, ins *models.Installment) (*models.Installment, error) {
	prev := s.state.Installment(ins.ID)
	if prev == nil {
		return nil, store.ErrNotFound
	}

	ins.Status = models.InstallmentOpen
	if ins.PaidTotal() >= ins.TotalPayment {
		ins.Status = models.InstallmentClosed
	}
	ins.CreatedAt = prev.CreatedAt
	ins.UpdatedAt = time.Now()

	if err := s.store.SaveInstallment(ctx, ins); err != nil {
		return nil, fmt.Errorf("update installment %s: %w", ins.ID, err)
	}
	s.state.PutInstallment(ins)

	lang := s.notify.lang()
	if len(ins.Payments) > len(prev.Payments) {
		s.notify.Emit(ctx, models.Notification{
			Type:  models.NotifyInstallmentUpdate,
			Title: ins.ItemDescription,
			Message: i18n.T(lang, "installment.payment", map[string]string{
				"name": ins.BuyerName,
			}),
			ActionTarget: "installment/" + ins.ID,
		})
	}
	if prev.Status == models.InstallmentOpen && ins.Status == models.InstallmentClosed {
		s.notify.Emit(ctx, models.Notification{
			Type:  models.NotifyInstallmentClosed,
			Title: ins.ItemDescription,
			Message: i18n.T(lang, "installment.closed", map[string]string{
				"name": ins.BuyerName,
			}),
			ActionTarget: "installment/" + ins.ID,
		})
	}
	return ins, nil
}

// AddPayment appends one payment and runs the usual update path.
func (s *InstallmentService) AddPayment(ctx context.Context, installmentID string, p models.InstallmentPayment) (*models.Installment, error) {
	ins := s.state.Installment(installmentID)
	if ins == nil {
		return nil, store.ErrNotFound
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Date.IsZero() {
		p.Date = time.Now()
	}
	ins.Payments = append(ins.Payments, p)
	return s.UpdateInstallment(ctx, ins)
}

func (s *InstallmentService) DeleteInstallment(ctx context.Context, id string) error {
	if err := s.store.DeleteInstallment(ctx, id); err != nil {
		return fmt.Errorf("delete installment %s: %w", id, err)
	}
	s.state.RemoveInstallment(id)
	return nil
}

func (s *InstallmentService) GetInstallment(id string) *models.Installment {
	return s.state.Installment(id)
}

func (s *InstallmentService) ListInstallments() []models.Installment {
	return s.state.Installments()
}
