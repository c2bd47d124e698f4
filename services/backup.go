package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/faisal/committee-tracker-go/models"
	"github.com/faisal/committee-tracker-go/state"
	"github.com/faisal/committee-tracker-go/store"
)

// ErrBackupInvalid marks a backup payload missing one of the required
// top-level keys. It is raised before any destructive action.
var ErrBackupInvalid = errors.New("backup payload missing required keys")

// Backup is the full serialized snapshot of application data.
type Backup struct {
	Committees  []models.Committee  `json:"committees"`
	Members     []models.Member     `json:"members"`
	UserProfile models.UserProfile  `json:"userProfile"`
	Settings    models.AppSettings  `json:"settings"`
}

// BackupService serializes and restores the full data set, and performs the
// destructive reset operation.
type BackupService struct {
	store    store.Store
	state    *state.AppState
	settings *SettingsService
}

func NewBackupService(st store.Store, appState *state.AppState, settings *SettingsService) *BackupService {
	return &BackupService{store: st, state: appState, settings: settings}
}

// Export reads the authoritative documents from the store and returns the
// snapshot.
func (s *BackupService) Export(ctx context.Context) (*Backup, error) {
	committees, err := s.store.ListCommittees(ctx)
	if err != nil {
		return nil, fmt.Errorf("export committees: %w", err)
	}
	members, err := s.store.ListMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("export members: %w", err)
	}
	profile, err := s.store.GetProfile(ctx)
	if errors.Is(err, store.ErrNotFound) {
		profile = &models.UserProfile{ID: models.ProfileDocID}
	} else if err != nil {
		return nil, fmt.Errorf("export profile: %w", err)
	}
	settings, err := s.store.GetSettings(ctx)
	if errors.Is(err, store.ErrNotFound) {
		settings = &models.AppSettings{ID: models.SettingsDocID}
	} else if err != nil {
		return nil, fmt.Errorf("export settings: %w", err)
	}

	return &Backup{
		Committees:  committees,
		Members:     members,
		UserProfile: *profile,
		Settings:    *settings,
	}, nil
}

// Restore validates that all four top-level keys exist before touching
// anything, then deletes and recreates every committee and member document
// preserving original ids, and finally merges settings and profile fields.
func (s *BackupService) Restore(ctx context.Context, raw []byte) error {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return fmt.Errorf("%w: %s", ErrBackupInvalid, err)
	}
	for _, key := range []string{"committees", "members", "userProfile", "settings"} {
		if _, ok := keys[key]; !ok {
			return fmt.Errorf("%w: %q", ErrBackupInvalid, key)
		}
	}

	var backup Backup
	if err := json.Unmarshal(raw, &backup); err != nil {
		return fmt.Errorf("%w: %s", ErrBackupInvalid, err)
	}

	// Validation passed; destructive phase begins here.
	if err := s.store.DeleteAllCommittees(ctx); err != nil {
		return fmt.Errorf("restore: clear committees: %w", err)
	}
	if err := s.store.DeleteAllMembers(ctx); err != nil {
		return fmt.Errorf("restore: clear members: %w", err)
	}
	for i := range backup.Members {
		if err := s.store.SaveMember(ctx, &backup.Members[i]); err != nil {
			return fmt.Errorf("restore member %s: %w", backup.Members[i].ID, err)
		}
	}
	for i := range backup.Committees {
		if err := s.store.SaveCommittee(ctx, &backup.Committees[i]); err != nil {
			return fmt.Errorf("restore committee %s: %w", backup.Committees[i].ID, err)
		}
	}

	if err := s.store.MergeProfile(ctx, map[string]any{
		"name":      backup.UserProfile.Name,
		"phone":     backup.UserProfile.Phone,
		"email":     backup.UserProfile.Email,
		"photo_url": backup.UserProfile.PhotoURL,
	}); err != nil {
		return fmt.Errorf("restore profile: %w", err)
	}
	settingsFields := map[string]any{
		"language":    backup.Settings.Language,
		"theme":       backup.Settings.Theme,
		"auth_method": string(backup.Settings.AuthMethod),
		"pin_length":  backup.Settings.PINLength,
	}
	if backup.Settings.PINHash != "" {
		settingsFields["pin_hash"] = backup.Settings.PINHash
	}
	if backup.Settings.PasswordHash != "" {
		settingsFields["password_hash"] = backup.Settings.PasswordHash
	}
	if err := s.store.MergeSettings(ctx, settingsFields); err != nil {
		return fmt.Errorf("restore settings: %w", err)
	}

	s.state.SetCommittees(backup.Committees)
	s.state.SetMembers(backup.Members)
	return s.settings.Load(ctx)
}

// Reset deletes every committee and member document and clears the local
// committee, member and notification state. Profile and credential settings
// are deliberately untouched.
func (s *BackupService) Reset(ctx context.Context) error {
	if err := s.store.DeleteAllCommittees(ctx); err != nil {
		return fmt.Errorf("reset: clear committees: %w", err)
	}
	if err := s.store.DeleteAllMembers(ctx); err != nil {
		return fmt.Errorf("reset: clear members: %w", err)
	}
	if err := s.store.DeleteAllNotifications(ctx); err != nil {
		return fmt.Errorf("reset: clear notifications: %w", err)
	}
	s.state.Reset()
	return nil
}
