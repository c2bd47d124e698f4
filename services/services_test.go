package services

import (
	"context"
	"testing"
	"time"

	"github.com/faisal/committee-tracker-go/models"
	"github.com/faisal/committee-tracker-go/state"
	"github.com/faisal/committee-tracker-go/store"
)

type testEnv struct {
	store         *store.Memory
	state         *state.AppState
	notifications *NotificationService
	committees    *CommitteeService
	installments  *InstallmentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mem := store.NewMemory()
	appState := state.New()
	notify := NewNotificationService(mem, appState)
	return &testEnv{
		store:         mem,
		state:         appState,
		notifications: notify,
		committees:    NewCommitteeService(mem, appState, notify),
		installments:  NewInstallmentService(mem, appState, notify),
	}
}

// newCommittee seeds a committee through the service and returns it.
func (e *testEnv) newCommittee(t *testing.T, memberIDs []string, method models.PayoutMethod) *models.Committee {
	t.Helper()
	c, err := e.committees.CreateCommittee(context.Background(), &models.Committee{
		Title:           "Office Committee",
		AmountPerMember: 5000,
		Duration:        len(memberIDs),
		StartDate:       time.Now().AddDate(0, 0, -1),
		PayoutMethod:    method,
		MemberIDs:       memberIDs,
	})
	if err != nil {
		t.Fatalf("CreateCommittee failed: %v", err)
	}
	return c
}

func (e *testEnv) newMember(t *testing.T, name string) *models.Member {
	t.Helper()
	m, err := e.committees.CreateMember(context.Background(), &models.Member{Name: name})
	if err != nil {
		t.Fatalf("CreateMember failed: %v", err)
	}
	return m
}

func countByType(notifications []models.Notification, typ models.NotificationType) int {
	n := 0
	for _, notif := range notifications {
		if notif.Type == typ {
			n++
		}
	}
	return n
}
