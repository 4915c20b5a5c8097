// Package mongodb implements the storage contracts on MongoDB, one collection per record type.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/example/remindbot/internal/store"
	"github.com/example/remindbot/pkg/models"
)

// Store is a MongoDB-backed store.Store.
type Store struct {
	client    *mongo.Client
	users     *mongo.Collection
	reminders *mongo.Collection
}

var _ store.Store = (*Store)(nil)

// Open connects to uri, verifies the connection and ensures indexes on the reminders collection.
func Open(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(database)
	s := &Store{
		client:    client,
		users:     db.Collection("users"),
		reminders: db.Collection("reminders"),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.reminders.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "completed", Value: 1}, {Key: "scheduled_at", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "completed", Value: 1}, {Key: "scheduled_at", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create reminder indexes: %w", err)
	}
	return nil
}

// Ping checks connectivity to the primary.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	if _, err := s.users.InsertOne(ctx, u); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	res, err := s.users.UpdateByID(ctx, u.ID, bson.M{
		"$set": bson.M{
			"display_name":    u.DisplayName,
			"preferred_name":  u.PreferredName,
			"personality":     u.Personality,
			"timezone_label":  u.TimezoneLabel,
			"timezone_offset": u.TimezoneOffset,
			"stage":           u.Stage,
			"updated_at":      u.UpdatedAt,
		},
	})
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) CreateReminder(ctx context.Context, r *models.Reminder) error {
	if _, err := s.reminders.InsertOne(ctx, r); err != nil {
		return fmt.Errorf("insert reminder: %w", err)
	}
	return nil
}

func (s *Store) ListPending(ctx context.Context, userID string, after time.Time) ([]models.Reminder, error) {
	filter := bson.M{
		"user_id":      userID,
		"completed":    false,
		"scheduled_at": bson.M{"$gt": after.UTC()},
	}
	return s.find(ctx, filter, bson.D{{Key: "scheduled_at", Value: 1}, {Key: "_id", Value: 1}})
}

func (s *Store) ListDue(ctx context.Context, now time.Time) ([]models.Reminder, error) {
	filter := bson.M{
		"completed":    false,
		"scheduled_at": bson.M{"$lte": now.UTC()},
	}
	return s.find(ctx, filter, bson.D{{Key: "scheduled_at", Value: 1}, {Key: "_id", Value: 1}})
}

func (s *Store) MarkComplete(ctx context.Context, id string) (bool, error) {
	res, err := s.reminders.UpdateOne(ctx,
		bson.M{"_id": id, "completed": false},
		bson.M{"$set": bson.M{"completed": true}},
	)
	if err != nil {
		return false, fmt.Errorf("complete reminder: %w", err)
	}
	return res.ModifiedCount > 0, nil
}

func (s *Store) ListAll(ctx context.Context) ([]models.Reminder, error) {
	return s.find(ctx, bson.M{}, bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
}

func (s *Store) find(ctx context.Context, filter bson.M, sort bson.D) ([]models.Reminder, error) {
	cur, err := s.reminders.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("find reminders: %w", err)
	}
	defer cur.Close(ctx)

	var out []models.Reminder
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode reminders: %w", err)
	}
	return out, nil
}
