package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/faisal/committee-tracker-go/models"
	"github.com/faisal/committee-tracker-go/store"
)

// ErrPINFormat marks a PIN that fails length or digits-only validation. It is
// caught before any mutation.
var ErrPINFormat = errors.New("pin failed validation")

const defaultPINLength = 4

// SettingsService manages the singleton settings and profile documents. Every
// setter merges into the store first and updates the local cache only after
// the store confirms.
type SettingsService struct {
	store store.Store

	mu       sync.RWMutex
	settings models.AppSettings
	profile  models.UserProfile
}

func NewSettingsService(st store.Store) *SettingsService {
	return &SettingsService{store: st}
}

// Load reads both singletons at startup, seeding defaults on first run.
func (s *SettingsService) Load(ctx context.Context) error {
	settings, err := s.store.GetSettings(ctx)
	if errors.Is(err, store.ErrNotFound) {
		if err := s.store.MergeSettings(ctx, map[string]any{
			"language":    "en",
			"theme":       "light",
			"auth_method": string(models.AuthNone),
			"pin_length":  defaultPINLength,
		}); err != nil {
			return fmt.Errorf("seed settings: %w", err)
		}
		settings, err = s.store.GetSettings(ctx)
	}
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	profile, err := s.store.GetProfile(ctx)
	if errors.Is(err, store.ErrNotFound) {
		profile = &models.UserProfile{ID: models.ProfileDocID}
		err = nil
	}
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = *settings
	s.profile = *profile
	return nil
}

func (s *SettingsService) Settings() models.AppSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func (s *SettingsService) Profile() models.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// Language returns the configured UI language, defaulting to English.
func (s *SettingsService) Language() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.settings.Language == "" {
		return "en"
	}
	return s.settings.Language
}

func (s *SettingsService) SetLanguage(ctx context.Context, lang string) error {
	return s.mergeSettings(ctx, map[string]any{"language": lang})
}

func (s *SettingsService) SetTheme(ctx context.Context, theme string) error {
	return s.mergeSettings(ctx, map[string]any{"theme": theme})
}

func (s *SettingsService) SetPINLength(ctx context.Context, length int) error {
	if length < 4 || length > 8 {
		return ErrPINFormat
	}
	return s.mergeSettings(ctx, map[string]any{"pin_length": length})
}

// ChangePIN verifies the current PIN against the stored hash, validates the
// new one and stores its hash. A wrong current PIN returns false, never an
// error, so callers can render inline feedback.
func (s *SettingsService) ChangePIN(ctx context.Context, current, next string) (bool, error) {
	authoritative, err := s.store.GetSettings(ctx)
	if err != nil {
		return false, fmt.Errorf("change pin: %w", err)
	}
	if authoritative.PINHash != "" {
		if bcrypt.CompareHashAndPassword([]byte(authoritative.PINHash), []byte(current)) != nil {
			return false, nil
		}
	}
	if err := validatePIN(next, authoritative.PINLength); err != nil {
		return false, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash pin: %w", err)
	}
	if err := s.mergeSettings(ctx, map[string]any{
		"pin_hash":    string(hash),
		"auth_method": string(models.AuthPIN),
	}); err != nil {
		return false, err
	}
	return true, nil
}

// ChangePassword mirrors ChangePIN for the password auth method.
func (s *SettingsService) ChangePassword(ctx context.Context, current, next string) (bool, error) {
	authoritative, err := s.store.GetSettings(ctx)
	if err != nil {
		return false, fmt.Errorf("change password: %w", err)
	}
	if authoritative.PasswordHash != "" {
		if bcrypt.CompareHashAndPassword([]byte(authoritative.PasswordHash), []byte(current)) != nil {
			return false, nil
		}
	}
	if len(next) < 6 {
		return false, ErrPINFormat
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	if err := s.mergeSettings(ctx, map[string]any{
		"password_hash": string(hash),
		"auth_method":   string(models.AuthPassword),
	}); err != nil {
		return false, err
	}
	return true, nil
}

// ForceSetPIN overwrites the PIN without checking the current one. Used by
// recovery flows only; unlike the normal paths it must fail loud, so a store
// failure propagates.
func (s *SettingsService) ForceSetPIN(ctx context.Context, pin string) error {
	length := s.Settings().PINLength
	if err := validatePIN(pin, length); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash pin: %w", err)
	}
	return s.mergeSettings(ctx, map[string]any{
		"pin_hash":    string(hash),
		"auth_method": string(models.AuthPIN),
	})
}

// UpdateProfile merges the given profile fields.
func (s *SettingsService) UpdateProfile(ctx context.Context, fields map[string]any) error {
	if err := s.store.MergeProfile(ctx, fields); err != nil {
		return err
	}
	profile, err := s.store.GetProfile(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.profile = *profile
	s.mu.Unlock()
	return nil
}

// mergeSettings persists the fields, then refreshes the cache from the store
// so the local copy never runs ahead of a failed write.
func (s *SettingsService) mergeSettings(ctx context.Context, fields map[string]any) error {
	if err := s.store.MergeSettings(ctx, fields); err != nil {
		return err
	}
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.settings = *settings
	s.mu.Unlock()
	return nil
}

func validatePIN(pin string, length int) error {
	if length == 0 {
		length = defaultPINLength
	}
	if len(pin) != length {
		return ErrPINFormat
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return ErrPINFormat
		}
	}
	return nil
}
