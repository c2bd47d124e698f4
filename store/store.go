// Package store abstracts the document store holding committee-tracker data.
// Each entity kind lives in its own collection, one document per id. Entity
// writes replace the whole document (whole-array-replace for list fields);
// settings and profile writes merge individual fields.
package store

import (
	"context"
	"errors"

	"github.com/faisal/committee-tracker-go/models"
)

// ErrNotFound is returned when no document exists for the given id.
var ErrNotFound = errors.New("document not found")

// Store is the document-store interface. The Mongo implementation backs the
// running service; the Memory implementation backs tests.
type Store interface {
	// Committees
	SaveCommittee(ctx context.Context, c *models.Committee) error
	DeleteCommittee(ctx context.Context, id string) error
	DeleteAllCommittees(ctx context.Context) error
	ListCommittees(ctx context.Context) ([]models.Committee, error)

	// Members
	SaveMember(ctx context.Context, m *models.Member) error
	DeleteMember(ctx context.Context, id string) error
	DeleteAllMembers(ctx context.Context) error
	ListMembers(ctx context.Context) ([]models.Member, error)

	// Installments
	SaveInstallment(ctx context.Context, i *models.Installment) error
	DeleteInstallment(ctx context.Context, id string) error
	ListInstallments(ctx context.Context) ([]models.Installment, error)

	// Notifications
	SaveNotification(ctx context.Context, n *models.Notification) error
	SetNotificationRead(ctx context.Context, id string, read bool) error
	DeleteNotification(ctx context.Context, id string) error
	DeleteAllNotifications(ctx context.Context) error
	ListNotifications(ctx context.Context) ([]models.Notification, error)

	// Settings and profile singletons. Merge applies only the given fields.
	GetSettings(ctx context.Context) (*models.AppSettings, error)
	MergeSettings(ctx context.Context, fields map[string]any) error
	GetProfile(ctx context.Context) (*models.UserProfile, error)
	MergeProfile(ctx context.Context, fields map[string]any) error

	Close(ctx context.Context) error
}
