package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/faisal/committee-tracker-go/i18n"
	"github.com/faisal/committee-tracker-go/models"
	"github.com/faisal/committee-tracker-go/state"
	"github.com/faisal/committee-tracker-go/store"
)

// ErrMemberInUse is returned when deleting a member who still holds a share
// in any committee.
var ErrMemberInUse = errors.New("member still belongs to a committee")

// Committee creation defaults.
const (
	defaultDuration = 12
	defaultAmount   = 1000
)

// CommitteeService owns committee and member mutation logic: payout-turn
// recalculation rules, payment recording, and persistence dispatch. Local
// state is updated only after the store confirms the write.
type CommitteeService struct {
	store  store.Store
	state  *state.AppState
	notify *NotificationService
}

func NewCommitteeService(st store.Store, appState *state.AppState, notify *NotificationService) *CommitteeService {
	return &CommitteeService{store: st, state: appState, notify: notify}
}

// CreateCommittee fills defaults, computes the initial payout turns, persists
// and caches the committee. A store failure surfaces to the caller so the
// downstream flow is blocked.
func (s *CommitteeService) CreateCommittee(ctx context.Context, c *models.Committee) (*models.Committee, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.PayoutMethod == "" {
		c.PayoutMethod = models.PayoutManual
	}
	if c.Type == "" {
		c.Type = models.CommitteeMonthly
	}
	if c.Duration == 0 {
		c.Duration = defaultDuration
	}
	if c.AmountPerMember == 0 {
		c.AmountPerMember = defaultAmount
	}
	if c.StartDate.IsZero() {
		c.StartDate = time.Now()
	}
	c.Payments = []models.CommitteePayment{}
	c.PayoutTurns = ComputeTurns(c.MemberIDs, c.PayoutMethod)
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	if err := s.store.SaveCommittee(ctx, c); err != nil {
		return nil, fmt.Errorf("create committee: %w", err)
	}
	s.state.PutCommittee(c)
	s.emitCommitteeEvent(ctx, c, "committee.created")
	s.notify.Derive(ctx, now)
	return c, nil
}

// UpdateCommittee persists the incoming committee, applying the turn
// preservation rules: unchanged membership with a changed payout method keeps
// the previous turns verbatim (a method change must not erase paid history),
// while any membership change regenerates the full turn sequence.
func (s *CommitteeService) UpdateCommittee(ctx context.Context, incoming *models.Committee) (*models.Committee, error) {
	prev := s.state.Committee(incoming.ID)
	if prev == nil {
		return nil, store.ErrNotFound
	}

	membershipChanged := !slices.Equal(prev.MemberIDs, incoming.MemberIDs)
	switch {
	case membershipChanged:
		incoming.PayoutTurns = ComputeTurns(incoming.MemberIDs, incoming.PayoutMethod)
	case incoming.PayoutMethod != prev.PayoutMethod:
		incoming.PayoutTurns = prev.PayoutTurns
	}
	incoming.CreatedAt = prev.CreatedAt
	incoming.UpdatedAt = time.Now()

	if err := s.store.SaveCommittee(ctx, incoming); err != nil {
		return nil, fmt.Errorf("update committee %s: %w", incoming.ID, err)
	}
	s.state.PutCommittee(incoming)
	s.emitCommitteeEvent(ctx, incoming, "committee.updated")
	s.notify.Derive(ctx, time.Now())
	return incoming, nil
}

// DeleteCommittee removes the committee from store and state. The deletion
// notification carries the deleted title and is best-effort.
func (s *CommitteeService) DeleteCommittee(ctx context.Context, id string) error {
	prev := s.state.Committee(id)
	if err := s.store.DeleteCommittee(ctx, id); err != nil {
		return fmt.Errorf("delete committee %s: %w", id, err)
	}
	s.state.RemoveCommittee(id)
	if prev != nil {
		s.emitCommitteeEvent(ctx, prev, "committee.deleted")
	}
	return nil
}

func (s *CommitteeService) GetCommittee(id string) *models.Committee {
	return s.state.Committee(id)
}

func (s *CommitteeService) ListCommittees() []models.Committee {
	return s.state.Committees()
}

// AddMemberToCommittee appends one share for the member and recomputes the
// turn sequence.
func (s *CommitteeService) AddMemberToCommittee(ctx context.Context, committeeID, memberID string) (*models.Committee, error) {
	c := s.state.Committee(committeeID)
	if c == nil {
		return nil, store.ErrNotFound
	}
	c.MemberIDs = append(c.MemberIDs, memberID)
	c.PayoutTurns = ComputeTurns(c.MemberIDs, c.PayoutMethod)
	return s.saveMembershipChange(ctx, c, memberID, "committee.member_added")
}

// RemoveMemberFromCommittee removes every share held by the member, prunes
// the member's payments from this committee and recomputes turns. Payments in
// other committees are untouched.
func (s *CommitteeService) RemoveMemberFromCommittee(ctx context.Context, committeeID, memberID string) (*models.Committee, error) {
	c := s.state.Committee(committeeID)
	if c == nil {
		return nil, store.ErrNotFound
	}
	before := len(c.MemberIDs)
	c.MemberIDs = slices.DeleteFunc(c.MemberIDs, func(id string) bool { return id == memberID })
	if len(c.MemberIDs) == before {
		slog.Warn("remove member: not in committee", "committee", committeeID, "member", memberID)
		return c, nil
	}
	c.Payments = slices.DeleteFunc(c.Payments, func(p models.CommitteePayment) bool {
		return p.MemberID == memberID
	})
	c.PayoutTurns = ComputeTurns(c.MemberIDs, c.PayoutMethod)
	return s.saveMembershipChange(ctx, c, memberID, "committee.member_removed")
}

// RemoveOneShareFromCommittee removes only the first occurrence of the member
// in the share sequence, supporting multi-share members. A member who is not
// present is a logged no-op. Payments are pruned only when the last share is
// removed.
func (s *CommitteeService) RemoveOneShareFromCommittee(ctx context.Context, committeeID, memberID string) (*models.Committee, error) {
	c := s.state.Committee(committeeID)
	if c == nil {
		return nil, store.ErrNotFound
	}
	idx := slices.Index(c.MemberIDs, memberID)
	if idx < 0 {
		slog.Warn("remove share: member not in committee", "committee", committeeID, "member", memberID)
		return c, nil
	}
	c.MemberIDs = slices.Delete(c.MemberIDs, idx, idx+1)
	if !slices.Contains(c.MemberIDs, memberID) {
		c.Payments = slices.DeleteFunc(c.Payments, func(p models.CommitteePayment) bool {
			return p.MemberID == memberID
		})
	}
	c.PayoutTurns = ComputeTurns(c.MemberIDs, c.PayoutMethod)
	return s.saveMembershipChange(ctx, c, memberID, "committee.member_removed")
}

func (s *CommitteeService) saveMembershipChange(ctx context.Context, c *models.Committee, memberID, msgKey string) (*models.Committee, error) {
	c.UpdatedAt = time.Now()
	if err := s.store.SaveCommittee(ctx, c); err != nil {
		return nil, fmt.Errorf("save committee %s: %w", c.ID, err)
	}
	s.state.PutCommittee(c)
	lang := s.notify.lang()
	s.notify.Emit(ctx, models.Notification{
		Type:  models.NotifyCommitteeUpdate,
		Title: c.Title,
		Message: i18n.T(lang, msgKey, map[string]string{
			"name":  s.notify.memberName(memberID),
			"title": c.Title,
		}),
		CommitteeID: c.ID,
		MemberID:    memberID,
	})
	s.notify.Derive(ctx, time.Now())
	return c, nil
}

// RecordPayment appends a payment to the committee's log. Status defaults to
// Cleared unless explicitly Pending. No over-payment check happens here; the
// caller is responsible for comparing collected totals against the
// per-member amount.
func (s *CommitteeService) RecordPayment(ctx context.Context, committeeID string, p models.CommitteePayment) (*models.Committee, error) {
	c := s.state.Committee(committeeID)
	if c == nil {
		return nil, store.ErrNotFound
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = models.PaymentCleared
	}
	if p.Date.IsZero() {
		p.Date = time.Now()
	}
	c.Payments = append(c.Payments, p)
	c.UpdatedAt = time.Now()

	// The whole payment log is rewritten with the document, never an
	// incremental append at the store level.
	if err := s.store.SaveCommittee(ctx, c); err != nil {
		return nil, fmt.Errorf("record payment in %s: %w", committeeID, err)
	}
	s.state.PutCommittee(c)
	lang := s.notify.lang()
	s.notify.Emit(ctx, models.Notification{
		Type:  models.NotifyCommitteeUpdate,
		Title: c.Title,
		Message: i18n.T(lang, "payment.received", map[string]string{
			"name":   s.notify.memberName(p.MemberID),
			"amount": formatAmount(p.Amount),
			"title":  c.Title,
		}),
		CommitteeID: c.ID,
		MemberID:    p.MemberID,
	})
	s.notify.Derive(ctx, time.Now())
	return c, nil
}

// PaymentsForMemberByMonth returns the member's Cleared payments for one
// period. Pending payments are excluded from collected-amount queries.
func (s *CommitteeService) PaymentsForMemberByMonth(committeeID, memberID string, periodIndex int) []models.CommitteePayment {
	c := s.state.Committee(committeeID)
	if c == nil {
		return nil
	}
	var out []models.CommitteePayment
	for _, p := range c.Payments {
		if p.MemberID == memberID && p.PeriodIndex == periodIndex && p.Status == models.PaymentCleared {
			out = append(out, p)
		}
	}
	return out
}

// UpdatePayoutTurn locates the turn by its (memberID, turnIndex) compound key
// and applies the paid flag. The payout date is set when marking paid (the
// incoming date wins if present) and cleared when unmarking, so an unpaid
// turn never carries a stale date. A turn that no longer exists is a logged
// no-op and the committee is returned unchanged.
func (s *CommitteeService) UpdatePayoutTurn(ctx context.Context, committeeID string, turn models.PayoutTurn) (*models.Committee, error) {
	c := s.state.Committee(committeeID)
	if c == nil {
		return nil, store.ErrNotFound
	}
	idx := -1
	for i := range c.PayoutTurns {
		if c.PayoutTurns[i].MemberID == turn.MemberID && c.PayoutTurns[i].TurnIndex == turn.TurnIndex {
			idx = i
			break
		}
	}
	if idx < 0 {
		slog.Warn("update payout turn: no such turn",
			"committee", committeeID, "member", turn.MemberID, "turn_index", turn.TurnIndex)
		return c, nil
	}

	c.PayoutTurns[idx].PaidOut = turn.PaidOut
	if turn.PaidOut {
		date := time.Now()
		if turn.PayoutDate != nil {
			date = *turn.PayoutDate
		}
		c.PayoutTurns[idx].PayoutDate = &date
	} else {
		c.PayoutTurns[idx].PayoutDate = nil
	}
	c.UpdatedAt = time.Now()

	if err := s.store.SaveCommittee(ctx, c); err != nil {
		return nil, fmt.Errorf("update payout turn in %s: %w", committeeID, err)
	}
	s.state.PutCommittee(c)
	if turn.PaidOut {
		lang := s.notify.lang()
		s.notify.Emit(ctx, models.Notification{
			Type:  models.NotifyCommitteeUpdate,
			Title: c.Title,
			Message: i18n.T(lang, "payout.paid", map[string]string{
				"name":   s.notify.memberName(turn.MemberID),
				"period": fmt.Sprintf("%d", turn.TurnIndex+1),
				"title":  c.Title,
			}),
			CommitteeID: c.ID,
			MemberID:    turn.MemberID,
		})
	}
	s.notify.Derive(ctx, time.Now())
	return c, nil
}

func (s *CommitteeService) emitCommitteeEvent(ctx context.Context, c *models.Committee, msgKey string) {
	lang := s.notify.lang()
	s.notify.Emit(ctx, models.Notification{
		Type:        models.NotifyCommitteeUpdate,
		Title:       c.Title,
		Message:     i18n.T(lang, msgKey, map[string]string{"title": c.Title}),
		CommitteeID: c.ID,
	})
}

// --- Members ---

// CreateMember persists a new member and caches it on success.
func (s *CommitteeService) CreateMember(ctx context.Context, m *models.Member) (*models.Member, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.JoiningDate.IsZero() {
		m.JoiningDate = time.Now()
	}
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now
	if err := s.store.SaveMember(ctx, m); err != nil {
		return nil, fmt.Errorf("create member: %w", err)
	}
	s.state.PutMember(m)
	return m, nil
}

func (s *CommitteeService) UpdateMember(ctx context.Context, m *models.Member) (*models.Member, error) {
	prev := s.state.Member(m.ID)
	if prev == nil {
		return nil, store.ErrNotFound
	}
	m.CreatedAt = prev.CreatedAt
	m.UpdatedAt = time.Now()
	if err := s.store.SaveMember(ctx, m); err != nil {
		return nil, fmt.Errorf("update member %s: %w", m.ID, err)
	}
	s.state.PutMember(m)
	s.notify.Derive(ctx, time.Now())
	return m, nil
}

// DeleteMember refuses to delete a member who still holds a share in any
// committee; payments the member left behind elsewhere are not touched.
func (s *CommitteeService) DeleteMember(ctx context.Context, id string) error {
	for _, c := range s.state.Committees() {
		if slices.Contains(c.MemberIDs, id) {
			return ErrMemberInUse
		}
	}
	if err := s.store.DeleteMember(ctx, id); err != nil {
		return fmt.Errorf("delete member %s: %w", id, err)
	}
	s.state.RemoveMember(id)
	return nil
}

func (s *CommitteeService) GetMember(id string) *models.Member {
	return s.state.Member(id)
}

func (s *CommitteeService) ListMembers() []models.Member {
	return s.state.Members()
}
