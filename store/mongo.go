package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/faisal/committee-tracker-go/models"
)

// Collection names, one per entity kind.
const (
	colCommittees    = "committees"
	colMembers       = "members"
	colInstallments  = "installments"
	colNotifications = "notifications"
	colSettings      = "settings"
)

var _ Store = (*Mongo)(nil)

// Mongo implements Store on a MongoDB database.
type Mongo struct {
	db *mongo.Database
}

// NewMongo connects to uri and returns a Store over the named database.
func NewMongo(ctx context.Context, uri, dbName string) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return &Mongo{db: client.Database(dbName)}, nil
}

func (s *Mongo) Close(ctx context.Context) error {
	return s.db.Client().Disconnect(ctx)
}

// replaceByID overwrites the whole document, inserting it if missing.
func (s *Mongo) replaceByID(ctx context.Context, col, id string, doc any) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.db.Collection(col).ReplaceOne(ctx, bson.M{"_id": id}, doc, opts); err != nil {
		return fmt.Errorf("save %s/%s: %w", col, id, err)
	}
	return nil
}

func (s *Mongo) deleteByID(ctx context.Context, col, id string) error {
	res, err := s.db.Collection(col).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", col, id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Mongo) SaveCommittee(ctx context.Context, c *models.Committee) error {
	return s.replaceByID(ctx, colCommittees, c.ID, c)
}

func (s *Mongo) DeleteCommittee(ctx context.Context, id string) error {
	return s.deleteByID(ctx, colCommittees, id)
}

func (s *Mongo) DeleteAllCommittees(ctx context.Context) error {
	_, err := s.db.Collection(colCommittees).DeleteMany(ctx, bson.M{})
	return err
}

func (s *Mongo) ListCommittees(ctx context.Context) ([]models.Committee, error) {
	var out []models.Committee
	if err := s.listAll(ctx, colCommittees, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Mongo) SaveMember(ctx context.Context, m *models.Member) error {
	return s.replaceByID(ctx, colMembers, m.ID, m)
}

func (s *Mongo) DeleteMember(ctx context.Context, id string) error {
	return s.deleteByID(ctx, colMembers, id)
}

func (s *Mongo) DeleteAllMembers(ctx context.Context) error {
	_, err := s.db.Collection(colMembers).DeleteMany(ctx, bson.M{})
	return err
}

func (s *Mongo) ListMembers(ctx context.Context) ([]models.Member, error) {
	var out []models.Member
	if err := s.listAll(ctx, colMembers, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Mongo) SaveInstallment(ctx context.Context, i *models.Installment) error {
	return s.replaceByID(ctx, colInstallments, i.ID, i)
}

func (s *Mongo) DeleteInstallment(ctx context.Context, id string) error {
	return s.deleteByID(ctx, colInstallments, id)
}

func (s *Mongo) ListInstallments(ctx context.Context) ([]models.Installment, error) {
	var out []models.Installment
	if err := s.listAll(ctx, colInstallments, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Mongo) SaveNotification(ctx context.Context, n *models.Notification) error {
	return s.replaceByID(ctx, colNotifications, n.ID, n)
}

func (s *Mongo) SetNotificationRead(ctx context.Context, id string, read bool) error {
	res, err := s.db.Collection(colNotifications).UpdateOne(ctx,
		bson.M{"_id": id}, bson.M{"$set": bson.M{"is_read": read}})
	if err != nil {
		return fmt.Errorf("mark notification %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Mongo) DeleteNotification(ctx context.Context, id string) error {
	return s.deleteByID(ctx, colNotifications, id)
}

func (s *Mongo) DeleteAllNotifications(ctx context.Context) error {
	_, err := s.db.Collection(colNotifications).DeleteMany(ctx, bson.M{})
	return err
}

func (s *Mongo) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	var out []models.Notification
	if err := s.listAll(ctx, colNotifications, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Mongo) GetSettings(ctx context.Context) (*models.AppSettings, error) {
	var settings models.AppSettings
	err := s.db.Collection(colSettings).
		FindOne(ctx, bson.M{"_id": models.SettingsDocID}).
		Decode(&settings)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &settings, nil
}

func (s *Mongo) MergeSettings(ctx context.Context, fields map[string]any) error {
	return s.mergeDoc(ctx, models.SettingsDocID, fields)
}

func (s *Mongo) GetProfile(ctx context.Context) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.db.Collection(colSettings).
		FindOne(ctx, bson.M{"_id": models.ProfileDocID}).
		Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &profile, nil
}

func (s *Mongo) MergeProfile(ctx context.Context, fields map[string]any) error {
	return s.mergeDoc(ctx, models.ProfileDocID, fields)
}

// mergeDoc applies a partial-field $set to a singleton settings document,
// creating it on first write.
func (s *Mongo) mergeDoc(ctx context.Context, id string, fields map[string]any) error {
	set := bson.M{"updated_at": time.Now()}
	for k, v := range fields {
		set[k] = v
	}
	opts := options.Update().SetUpsert(true)
	if _, err := s.db.Collection(colSettings).UpdateOne(ctx,
		bson.M{"_id": id}, bson.M{"$set": set}, opts); err != nil {
		return fmt.Errorf("merge %s: %w", id, err)
	}
	return nil
}

func (s *Mongo) listAll(ctx context.Context, col string, out any) error {
	cursor, err := s.db.Collection(col).Find(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("list %s: %w", col, err)
	}
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("decode %s: %w", col, err)
	}
	return nil
}
