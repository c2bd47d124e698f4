package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/faisal/committee-tracker-go/models"
)

func newBackupEnv(t *testing.T) (*testEnv, *SettingsService, *BackupService) {
	t.Helper()
	env := newTestEnv(t)
	settings := NewSettingsService(env.store)
	if err := settings.Load(context.Background()); err != nil {
		t.Fatalf("settings Load failed: %v", err)
	}
	backup := NewBackupService(env.store, env.state, settings)
	return env, settings, backup
}

func TestExportRoundTrip(t *testing.T) {
	env, _, backup := newBackupEnv(t)
	ctx := context.Background()

	m := env.newMember(t, "Ahmed")
	c := env.newCommittee(t, []string{m.ID}, models.PayoutManual)

	snap, err := backup.Export(ctx)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if len(snap.Committees) != 1 || snap.Committees[0].ID != c.ID {
		t.Errorf("exported committees wrong: %+v", snap.Committees)
	}
	if len(snap.Members) != 1 || snap.Members[0].ID != m.ID {
		t.Errorf("exported members wrong: %+v", snap.Members)
	}

	raw, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if err := backup.Restore(ctx, raw); err != nil {
		t.Fatalf("Restore of own export failed: %v", err)
	}
	restored := env.state.Committee(c.ID)
	if restored == nil {
		t.Fatal("committee id not preserved through restore")
	}
	if restored.Title != c.Title {
		t.Errorf("restored title = %q, want %q", restored.Title, c.Title)
	}
	if env.state.Member(m.ID) == nil {
		t.Error("member id not preserved through restore")
	}
}

func TestRestore_MissingKeyFailsBeforeDestruction(t *testing.T) {
	env, _, backup := newBackupEnv(t)
	ctx := context.Background()

	m := env.newMember(t, "Ahmed")
	c := env.newCommittee(t, []string{m.ID}, models.PayoutManual)

	// A payload without the settings key must be rejected with all existing
	// data intact.
	raw := []byte(`{"committees":[],"members":[],"userProfile":{}}`)
	err := backup.Restore(ctx, raw)
	if !errors.Is(err, ErrBackupInvalid) {
		t.Fatalf("expected ErrBackupInvalid, got %v", err)
	}

	if env.state.Committee(c.ID) == nil {
		t.Error("existing committee destroyed by rejected restore")
	}
	stored, listErr := env.store.ListCommittees(ctx)
	if listErr != nil || len(stored) != 1 {
		t.Errorf("stored committees touched by rejected restore: %v %v", stored, listErr)
	}
}

func TestRestore_MalformedJSONRejected(t *testing.T) {
	_, _, backup := newBackupEnv(t)
	err := backup.Restore(context.Background(), []byte(`{"committees":`))
	if !errors.Is(err, ErrBackupInvalid) {
		t.Fatalf("expected ErrBackupInvalid, got %v", err)
	}
}

func TestRestore_ReplacesExistingData(t *testing.T) {
	env, _, backup := newBackupEnv(t)
	ctx := context.Background()

	old := env.newCommittee(t, []string{"m-old"}, models.PayoutManual)

	raw := []byte(`{
		"committees": [{"id": "c-new", "title": "Imported", "type": "monthly",
			"start_date": "2026-01-01T00:00:00Z", "duration": 10,
			"amount_per_member": 2000, "payout_method": "manual",
			"member_ids": ["m-new"]}],
		"members": [{"id": "m-new", "name": "Sana"}],
		"userProfile": {"name": "Owner"},
		"settings": {"language": "ur", "theme": "dark", "auth_method": "none", "pin_length": 4}
	}`)
	if err := backup.Restore(ctx, raw); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	if env.state.Committee(old.ID) != nil {
		t.Error("pre-restore committee survived")
	}
	imported := env.state.Committee("c-new")
	if imported == nil {
		t.Fatal("imported committee missing from state")
	}
	if imported.Title != "Imported" {
		t.Errorf("imported title = %q", imported.Title)
	}
	if env.state.Member("m-new") == nil {
		t.Error("imported member missing from state")
	}
}

func TestRestore_RefreshesSettings(t *testing.T) {
	_, settings, backup := newBackupEnv(t)
	ctx := context.Background()

	raw := []byte(`{
		"committees": [], "members": [],
		"userProfile": {"name": "Owner"},
		"settings": {"language": "ur", "theme": "dark", "auth_method": "none", "pin_length": 4}
	}`)
	if err := backup.Restore(ctx, raw); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if got := settings.Language(); got != "ur" {
		t.Errorf("settings cache not refreshed after restore, language = %q", got)
	}
	if got := settings.Profile().Name; got != "Owner" {
		t.Errorf("profile cache not refreshed after restore, name = %q", got)
	}
}

func TestReset_PreservesSettings(t *testing.T) {
	env, settings, backup := newBackupEnv(t)
	ctx := context.Background()

	if err := settings.SetLanguage(ctx, "ur"); err != nil {
		t.Fatalf("SetLanguage failed: %v", err)
	}
	if ok, err := settings.ChangePIN(ctx, "", "1234"); err != nil || !ok {
		t.Fatalf("ChangePIN failed: ok=%v err=%v", ok, err)
	}

	m := env.newMember(t, "Ahmed")
	env.newCommittee(t, []string{m.ID}, models.PayoutManual)
	env.notifications.Emit(ctx, models.Notification{
		Type: models.NotifyCommitteeUpdate, Title: "x", Message: "x",
	})

	if err := backup.Reset(ctx); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	if got := len(env.state.Committees()); got != 0 {
		t.Errorf("committees survive reset: %d", got)
	}
	if got := len(env.state.Members()); got != 0 {
		t.Errorf("members survive reset: %d", got)
	}
	if got := len(env.notifications.List()); got != 0 {
		t.Errorf("notifications survive reset: %d", got)
	}

	stored, err := env.store.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if stored.Language != "ur" {
		t.Errorf("language reset, got %q", stored.Language)
	}
	if stored.AuthMethod != models.AuthPIN || stored.PINHash == "" {
		t.Error("credentials must survive reset")
	}
}
