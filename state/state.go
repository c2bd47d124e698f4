// Package state holds the in-memory copy of all persisted entities. Services
// update it only after the store confirms a write, so the cache never runs
// ahead of the document store. List-shaped fields are always replaced whole,
// never patched in place.
package state

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/faisal/committee-tracker-go/models"
	"github.com/faisal/committee-tracker-go/store"
)

// AppState is the shared application state, safe for concurrent readers.
type AppState struct {
	mu            sync.RWMutex
	committees    []models.Committee
	members       []models.Member
	installments  []models.Installment
	notifications []models.Notification
}

func New() *AppState {
	return &AppState{}
}

// Load primes the state from the store at startup.
func (s *AppState) Load(ctx context.Context, st store.Store) error {
	committees, err := st.ListCommittees(ctx)
	if err != nil {
		return fmt.Errorf("load committees: %w", err)
	}
	members, err := st.ListMembers(ctx)
	if err != nil {
		return fmt.Errorf("load members: %w", err)
	}
	installments, err := st.ListInstallments(ctx)
	if err != nil {
		return fmt.Errorf("load installments: %w", err)
	}
	notifications, err := st.ListNotifications(ctx)
	if err != nil {
		return fmt.Errorf("load notifications: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.committees = committees
	s.members = members
	s.installments = installments
	s.notifications = notifications
	return nil
}

// Committee returns a deep copy of the committee, or nil if absent.
func (s *AppState) Committee(id string) *models.Committee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.committees {
		if s.committees[i].ID == id {
			return s.committees[i].Clone()
		}
	}
	return nil
}

func (s *AppState) Committees() []models.Committee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Committee, 0, len(s.committees))
	for i := range s.committees {
		out = append(out, *s.committees[i].Clone())
	}
	return out
}

// PutCommittee inserts or replaces the committee by id.
func (s *AppState) PutCommittee(c *models.Committee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.committees {
		if s.committees[i].ID == c.ID {
			s.committees[i] = *c.Clone()
			return
		}
	}
	s.committees = append(s.committees, *c.Clone())
}

func (s *AppState) RemoveCommittee(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.committees = slices.DeleteFunc(s.committees, func(c models.Committee) bool {
		return c.ID == id
	})
}

func (s *AppState) SetCommittees(committees []models.Committee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.committees = committees
}

func (s *AppState) Member(id string) *models.Member {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.members {
		if s.members[i].ID == id {
			m := s.members[i]
			return &m
		}
	}
	return nil
}

func (s *AppState) Members() []models.Member {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.members)
}

func (s *AppState) PutMember(m *models.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.members {
		if s.members[i].ID == m.ID {
			s.members[i] = *m
			return
		}
	}
	s.members = append(s.members, *m)
}

func (s *AppState) RemoveMember(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members = slices.DeleteFunc(s.members, func(m models.Member) bool {
		return m.ID == id
	})
}

func (s *AppState) SetMembers(members []models.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members = members
}

func (s *AppState) Installment(id string) *models.Installment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.installments {
		if s.installments[i].ID == id {
			return s.installments[i].Clone()
		}
	}
	return nil
}

func (s *AppState) Installments() []models.Installment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Installment, 0, len(s.installments))
	for i := range s.installments {
		out = append(out, *s.installments[i].Clone())
	}
	return out
}

func (s *AppState) PutInstallment(ins *models.Installment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.installments {
		if s.installments[i].ID == ins.ID {
			s.installments[i] = *ins.Clone()
			return
		}
	}
	s.installments = append(s.installments, *ins.Clone())
}

func (s *AppState) RemoveInstallment(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.installments = slices.DeleteFunc(s.installments, func(i models.Installment) bool {
		return i.ID == id
	})
}

func (s *AppState) Notifications() []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.notifications)
}

// PutNotification appends the notification unless one with the same id is
// already present (read or unread); the id, not the content, is authoritative.
func (s *AppState) PutNotification(n *models.Notification) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == n.ID {
			return false
		}
	}
	s.notifications = append(s.notifications, *n)
	return true
}

func (s *AppState) MarkNotificationRead(id string, read bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].IsRead = read
			return true
		}
	}
	return false
}

func (s *AppState) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = slices.DeleteFunc(s.notifications, func(n models.Notification) bool {
		return n.ID == id
	})
}

func (s *AppState) SetNotifications(notifications []models.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = notifications
}

// HasNotification reports whether a notification with this id exists.
func (s *AppState) HasNotification(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			return true
		}
	}
	return false
}

// Reset clears committees, members and notifications. Installments, profile
// and credential settings are deliberately untouched.
func (s *AppState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.committees = nil
	s.members = nil
	s.notifications = nil
}
