package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/faisal/committee-tracker-go/models"
)

var _ Store = (*Memory)(nil)

// Memory is an in-memory Store used by tests. It mirrors the Mongo
// implementation's semantics: whole-document replace for entities and
// partial-field merge for the settings singletons.
type Memory struct {
	mu            sync.Mutex
	committees    map[string]*models.Committee
	members       map[string]*models.Member
	installments  map[string]*models.Installment
	notifications map[string]*models.Notification
	order         []string // notification insertion order, for stable listing
	settings      *models.AppSettings
	profile       *models.UserProfile

	// FailWrites makes every write return this error, for persistence-failure
	// paths in tests.
	FailWrites error
}

func NewMemory() *Memory {
	return &Memory{
		committees:    make(map[string]*models.Committee),
		members:       make(map[string]*models.Member),
		installments:  make(map[string]*models.Installment),
		notifications: make(map[string]*models.Notification),
	}
}

func (s *Memory) Close(context.Context) error { return nil }

func (s *Memory) SaveCommittee(_ context.Context, c *models.Committee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.committees[c.ID] = c.Clone()
	return nil
}

func (s *Memory) DeleteCommittee(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	if _, ok := s.committees[id]; !ok {
		return ErrNotFound
	}
	delete(s.committees, id)
	return nil
}

func (s *Memory) DeleteAllCommittees(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.committees = make(map[string]*models.Committee)
	return nil
}

func (s *Memory) ListCommittees(context.Context) ([]models.Committee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Committee, 0, len(s.committees))
	for _, c := range s.committees {
		out = append(out, *c.Clone())
	}
	slices.SortFunc(out, func(a, b models.Committee) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out, nil
}

func (s *Memory) SaveMember(_ context.Context, m *models.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	cp := *m
	s.members[m.ID] = &cp
	return nil
}

func (s *Memory) DeleteMember(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	if _, ok := s.members[id]; !ok {
		return ErrNotFound
	}
	delete(s.members, id)
	return nil
}

func (s *Memory) DeleteAllMembers(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.members = make(map[string]*models.Member)
	return nil
}

func (s *Memory) ListMembers(context.Context) ([]models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Member, 0, len(s.members))
	for _, m := range s.members {
		out = append(out, *m)
	}
	slices.SortFunc(out, func(a, b models.Member) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out, nil
}

func (s *Memory) SaveInstallment(_ context.Context, i *models.Installment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.installments[i.ID] = i.Clone()
	return nil
}

func (s *Memory) DeleteInstallment(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	if _, ok := s.installments[id]; !ok {
		return ErrNotFound
	}
	delete(s.installments, id)
	return nil
}

func (s *Memory) ListInstallments(context.Context) ([]models.Installment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Installment, 0, len(s.installments))
	for _, i := range s.installments {
		out = append(out, *i.Clone())
	}
	slices.SortFunc(out, func(a, b models.Installment) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out, nil
}

func (s *Memory) SaveNotification(_ context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	if _, ok := s.notifications[n.ID]; !ok {
		s.order = append(s.order, n.ID)
	}
	cp := *n
	s.notifications[n.ID] = &cp
	return nil
}

func (s *Memory) SetNotificationRead(_ context.Context, id string, read bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	n, ok := s.notifications[id]
	if !ok {
		return ErrNotFound
	}
	n.IsRead = read
	return nil
}

func (s *Memory) DeleteNotification(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	if _, ok := s.notifications[id]; !ok {
		return ErrNotFound
	}
	delete(s.notifications, id)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })
	return nil
}

func (s *Memory) DeleteAllNotifications(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.notifications = make(map[string]*models.Notification)
	s.order = nil
	return nil
}

func (s *Memory) ListNotifications(context.Context) ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Notification, 0, len(s.order))
	for _, id := range s.order {
		if n, ok := s.notifications[id]; ok {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (s *Memory) GetSettings(context.Context) (*models.AppSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settings == nil {
		return nil, ErrNotFound
	}
	cp := *s.settings
	return &cp, nil
}

func (s *Memory) MergeSettings(_ context.Context, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	if s.settings == nil {
		s.settings = &models.AppSettings{ID: models.SettingsDocID}
	}
	for k, v := range fields {
		switch k {
		case "language":
			s.settings.Language = v.(string)
		case "theme":
			s.settings.Theme = v.(string)
		case "auth_method":
			s.settings.AuthMethod = models.AuthMethod(toString(v))
		case "pin_hash":
			s.settings.PINHash = v.(string)
		case "pin_length":
			s.settings.PINLength = v.(int)
		case "password_hash":
			s.settings.PasswordHash = v.(string)
		}
	}
	s.settings.UpdatedAt = time.Now()
	return nil
}

func (s *Memory) GetProfile(context.Context) (*models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return nil, ErrNotFound
	}
	cp := *s.profile
	return &cp, nil
}

func (s *Memory) MergeProfile(_ context.Context, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	if s.profile == nil {
		s.profile = &models.UserProfile{ID: models.ProfileDocID}
	}
	for k, v := range fields {
		switch k {
		case "name":
			s.profile.Name = v.(string)
		case "phone":
			s.profile.Phone = v.(string)
		case "email":
			s.profile.Email = v.(string)
		case "photo_url":
			s.profile.PhotoURL = v.(string)
		}
	}
	s.profile.UpdatedAt = time.Now()
	return nil
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case models.AuthMethod:
		return string(t)
	}
	return ""
}
