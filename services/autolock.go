package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/faisal/committee-tracker-go/models"
	"github.com/faisal/committee-tracker-go/store"
)

// LockState is the auto-lock machine state.
type LockState string

const (
	StateUnlocked LockState = "unlocked"
	StateWarning  LockState = "warning"
	StateLocked   LockState = "locked"
)

// AutoLock is the session auto-lock timer. After window of inactivity minus
// the warning period the state moves to Warning with a visible countdown;
// once the countdown reaches zero the session locks. Any activity event while
// unlocked or warning restarts the full window. The machine keeps a single
// lock deadline recomputed per activity event; the two timers are always
// cancelled before rescheduling so no stale callback can fire.
type AutoLock struct {
	store   store.Store
	window  time.Duration
	warning time.Duration

	mu        sync.Mutex
	state     LockState
	deadline  time.Time
	gen       uint64 // invalidates callbacks from cancelled schedules
	warnTimer *time.Timer
	lockTimer *time.Timer
}

// NewAutoLock builds the timer without starting it; call Touch to arm.
func NewAutoLock(st store.Store, window, warning time.Duration) *AutoLock {
	if warning > window {
		warning = window
	}
	return &AutoLock{
		store:   st,
		window:  window,
		warning: warning,
		state:   StateUnlocked,
	}
}

// Touch records a user-activity event. While unlocked or warning it cancels
// any outstanding timers and restarts the full inactivity window. Activity
// while locked is ignored; only Unlock leaves the locked state.
func (a *AutoLock) Touch() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == StateLocked {
		return
	}
	a.restartLocked()
}

// restartLocked resets the machine to Unlocked and schedules both timers.
// Caller holds the mutex.
func (a *AutoLock) restartLocked() {
	a.cancelTimersLocked()
	a.gen++
	gen := a.gen
	a.state = StateUnlocked
	a.deadline = time.Now().Add(a.window)
	a.warnTimer = time.AfterFunc(a.window-a.warning, func() { a.enterWarning(gen) })
	a.lockTimer = time.AfterFunc(a.window, func() { a.enterLocked(gen) })
}

func (a *AutoLock) cancelTimersLocked() {
	if a.warnTimer != nil {
		a.warnTimer.Stop()
		a.warnTimer = nil
	}
	if a.lockTimer != nil {
		a.lockTimer.Stop()
		a.lockTimer = nil
	}
}

func (a *AutoLock) enterWarning(gen uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if gen != a.gen || a.state != StateUnlocked {
		return
	}
	a.state = StateWarning
}

func (a *AutoLock) enterLocked(gen uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if gen != a.gen || a.state == StateLocked {
		return
	}
	a.cancelTimersLocked()
	a.state = StateLocked
	slog.Info("session locked after inactivity")
}

// Lock locks the session immediately.
func (a *AutoLock) Lock() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cancelTimersLocked()
	a.gen++
	a.state = StateLocked
}

// Stop cancels all timers; used at shutdown.
func (a *AutoLock) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cancelTimersLocked()
	a.gen++
}

// State returns the current machine state.
func (a *AutoLock) State() LockState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Countdown returns the seconds remaining before lock while in Warning, and
// zero otherwise. It is derived from the lock deadline rather than a ticking
// counter, so there is no per-second callback to leak.
func (a *AutoLock) Countdown() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != StateWarning {
		return 0
	}
	remaining := time.Until(a.deadline)
	if remaining <= 0 {
		return 0
	}
	return int((remaining + time.Second - 1) / time.Second)
}

// Unlock checks the secret against the authoritative credentials re-fetched
// from the store; a possibly stale local copy is never trusted. On a match
// the machine leaves Locked and the inactivity window restarts. A mismatch
// returns false with no state change. Store unavailability is the only error.
func (a *AutoLock) Unlock(ctx context.Context, secret string) (bool, error) {
	settings, err := a.store.GetSettings(ctx)
	if err != nil {
		return false, err
	}

	var hash string
	switch settings.AuthMethod {
	case models.AuthPIN:
		hash = settings.PINHash
	case models.AuthPassword:
		hash = settings.PasswordHash
	case models.AuthNone:
		// No credential configured: unlocking always succeeds.
		a.mu.Lock()
		a.restartLocked()
		a.mu.Unlock()
		return true, nil
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) != nil {
		return false, nil
	}

	a.mu.Lock()
	a.restartLocked()
	a.mu.Unlock()
	return true, nil
}
