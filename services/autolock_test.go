package services

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/faisal/committee-tracker-go/models"
	"github.com/faisal/committee-tracker-go/store"
)

func newTestLock(t *testing.T, st store.Store, window, warning time.Duration) *AutoLock {
	t.Helper()
	lock := NewAutoLock(st, window, warning)
	t.Cleanup(lock.Stop)
	return lock
}

func setPIN(t *testing.T, st store.Store, pin string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}
	err = st.MergeSettings(context.Background(), map[string]any{
		"auth_method": string(models.AuthPIN),
		"pin_hash":    string(hash),
	})
	if err != nil {
		t.Fatalf("MergeSettings failed: %v", err)
	}
}

func TestAutoLock_WarningThenLock(t *testing.T) {
	lock := newTestLock(t, store.NewMemory(), 2*time.Second, 1*time.Second)
	lock.Touch()

	if got := lock.State(); got != StateUnlocked {
		t.Fatalf("expected unlocked immediately after activity, got %s", got)
	}
	if got := lock.Countdown(); got != 0 {
		t.Errorf("countdown must be zero outside warning, got %d", got)
	}

	time.Sleep(1200 * time.Millisecond)
	if got := lock.State(); got != StateWarning {
		t.Fatalf("expected warning after window minus warning period, got %s", got)
	}
	if got := lock.Countdown(); got != 1 {
		t.Errorf("expected 1 second remaining, got %d", got)
	}

	time.Sleep(1 * time.Second)
	if got := lock.State(); got != StateLocked {
		t.Fatalf("expected locked after full window, got %s", got)
	}
	if got := lock.Countdown(); got != 0 {
		t.Errorf("countdown must be zero once locked, got %d", got)
	}
}

func TestAutoLock_ActivityDuringWarningRestartsWindow(t *testing.T) {
	lock := newTestLock(t, store.NewMemory(), 2*time.Second, 1*time.Second)
	lock.Touch()

	time.Sleep(1200 * time.Millisecond)
	if got := lock.State(); got != StateWarning {
		t.Fatalf("expected warning, got %s", got)
	}

	lock.Touch()
	if got := lock.State(); got != StateUnlocked {
		t.Fatalf("activity during warning must return to unlocked, got %s", got)
	}

	// The old schedule is dead: well past the original deadline the session
	// is still within the restarted window.
	time.Sleep(1 * time.Second)
	if got := lock.State(); got == StateLocked {
		t.Fatal("stale timer from the cancelled schedule fired")
	}
}

func TestAutoLock_ActivityWhileLockedIgnored(t *testing.T) {
	lock := newTestLock(t, store.NewMemory(), 2*time.Second, 1*time.Second)
	lock.Lock()

	lock.Touch()
	if got := lock.State(); got != StateLocked {
		t.Fatalf("activity must not leave the locked state, got %s", got)
	}
}

func TestAutoLock_UnlockWithPIN(t *testing.T) {
	st := store.NewMemory()
	setPIN(t, st, "4321")
	lock := newTestLock(t, st, time.Minute, 10*time.Second)
	lock.Lock()

	ok, err := lock.Unlock(context.Background(), "0000")
	if err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}
	if ok {
		t.Fatal("wrong pin must not unlock")
	}
	if got := lock.State(); got != StateLocked {
		t.Fatalf("failed unlock must leave the session locked, got %s", got)
	}

	ok, err = lock.Unlock(context.Background(), "4321")
	if err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}
	if !ok {
		t.Fatal("correct pin must unlock")
	}
	if got := lock.State(); got != StateUnlocked {
		t.Fatalf("expected unlocked after successful unlock, got %s", got)
	}
}

func TestAutoLock_UnlockChecksFreshCredentials(t *testing.T) {
	st := store.NewMemory()
	setPIN(t, st, "1111")
	lock := newTestLock(t, st, time.Minute, 10*time.Second)
	lock.Lock()

	// The pin changes out from under the lock. Unlock must compare against
	// the stored credentials, not anything cached at construction time.
	setPIN(t, st, "2222")

	if ok, _ := lock.Unlock(context.Background(), "1111"); ok {
		t.Fatal("old pin must not unlock after a change")
	}
	ok, err := lock.Unlock(context.Background(), "2222")
	if err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}
	if !ok {
		t.Fatal("current pin must unlock")
	}
}

func TestAutoLock_UnlockWithNoCredential(t *testing.T) {
	st := store.NewMemory()
	err := st.MergeSettings(context.Background(), map[string]any{
		"auth_method": string(models.AuthNone),
	})
	if err != nil {
		t.Fatalf("MergeSettings failed: %v", err)
	}
	lock := newTestLock(t, st, time.Minute, 10*time.Second)
	lock.Lock()

	ok, err := lock.Unlock(context.Background(), "")
	if err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}
	if !ok {
		t.Fatal("unlock must succeed when no credential is configured")
	}
	if got := lock.State(); got != StateUnlocked {
		t.Fatalf("expected unlocked, got %s", got)
	}
}
