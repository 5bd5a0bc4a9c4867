package storage

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bot/domain"
)

// MongoRepo persists profiles, tallies and chat stats as documents. All writes
// are upserts so replays of the same claim stay harmless.
type MongoRepo struct {
	client *mongo.Client

	settings *mongo.Collection
	items    *mongo.Collection
	users    *mongo.Collection
	tallies  *mongo.Collection
	chats    *mongo.Collection
}

func NewMongoRepo(ctx context.Context, uri, dbName string) (*MongoRepo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDatabase, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDatabase, err)
	}

	db := client.Database(dbName)
	return &MongoRepo{
		client:   client,
		settings: db.Collection("chat_settings"),
		items:    db.Collection("items"),
		users:    db.Collection("users"),
		tallies:  db.Collection("chat_user_tallies"),
		chats:    db.Collection("chat_stats"),
	}, nil
}

func (r *MongoRepo) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *MongoRepo) FindChatSettings(ctx context.Context, chatID string) (domain.ChatSettings, error) {
	var settings domain.ChatSettings
	err := r.settings.FindOne(ctx, bson.M{"chat_id": chatID}).Decode(&settings)
	if err != nil {
		return domain.ChatSettings{}, mapFindError(err)
	}
	return settings, nil
}

func (r *MongoRepo) FindCatalog(ctx context.Context) ([]domain.Item, error) {
	cursor, err := r.items.Find(ctx, bson.M{})
	if err != nil {
		return nil, mapFindError(err)
	}

	var catalog []domain.Item
	if err := cursor.All(ctx, &catalog); err != nil {
		return nil, mapFindError(err)
	}
	return catalog, nil
}

func (r *MongoRepo) FindUserProfile(ctx context.Context, userID string) (domain.UserProfile, error) {
	var profile domain.UserProfile
	err := r.users.FindOne(ctx, bson.M{"user_id": userID}).Decode(&profile)
	if err != nil {
		return domain.UserProfile{}, mapFindError(err)
	}
	return profile, nil
}

func (r *MongoRepo) GrantItem(ctx context.Context, user domain.UserRef, item domain.Item) error {
	update := bson.M{
		"$push":        bson.M{"items": item},
		"$setOnInsert": bson.M{"user_id": user.ID},
	}
	if fields := identityFields(user); len(fields) > 0 {
		update["$set"] = fields
	}
	_, err := r.users.UpdateOne(ctx, bson.M{"user_id": user.ID}, update, options.Update().SetUpsert(true))
	return mapWriteError(err)
}

func (r *MongoRepo) SetFavoriteItem(ctx context.Context, userID, itemID string) error {
	res, err := r.users.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{"$set": bson.M{"favorite_id": itemID}})
	if err != nil {
		return mapWriteError(err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoRepo) BumpChatUserTally(ctx context.Context, user domain.UserRef, chatID string) error {
	filter := bson.M{"user_id": user.ID, "chat_id": chatID}
	update := bson.M{
		"$inc":         bson.M{"count": 1},
		"$setOnInsert": bson.M{"user_id": user.ID, "chat_id": chatID},
	}
	if fields := identityFields(user); len(fields) > 0 {
		update["$set"] = fields
	}
	_, err := r.tallies.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return mapWriteError(err)
}

func (r *MongoRepo) BumpChatStats(ctx context.Context, chatID, title string) error {
	update := bson.M{
		"$inc":         bson.M{"count": 1},
		"$setOnInsert": bson.M{"chat_id": chatID},
	}
	if title != "" {
		update["$set"] = bson.M{"title": title}
	}
	_, err := r.chats.UpdateOne(ctx, bson.M{"chat_id": chatID}, update, options.Update().SetUpsert(true))
	return mapWriteError(err)
}

func (r *MongoRepo) TopChats(ctx context.Context, limit int) ([]domain.ChatStats, error) {
	opts := options.Find().SetSort(bson.D{{Key: "count", Value: -1}}).SetLimit(int64(limit))
	cursor, err := r.chats.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, mapFindError(err)
	}

	var stats []domain.ChatStats
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, mapFindError(err)
	}
	return stats, nil
}

func (r *MongoRepo) TopCollectors(ctx context.Context, chatID string, limit int) ([]domain.ChatUserTally, error) {
	opts := options.Find().SetSort(bson.D{{Key: "count", Value: -1}}).SetLimit(int64(limit))
	cursor, err := r.tallies.Find(ctx, bson.M{"chat_id": chatID}, opts)
	if err != nil {
		return nil, mapFindError(err)
	}

	var tallies []domain.ChatUserTally
	if err := cursor.All(ctx, &tallies); err != nil {
		return nil, mapFindError(err)
	}
	return tallies, nil
}

// identityFields refreshes username/first name best-effort, empty values are
// left untouched so a platform hiding the username does not wipe it.
func identityFields(user domain.UserRef) bson.M {
	fields := bson.M{}
	if user.Username != "" {
		fields["username"] = user.Username
	}
	if user.FirstName != "" {
		fields["first_name"] = user.FirstName
	}
	return fields
}

func mapFindError(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return domain.ErrNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %w", domain.ErrDatabase, err)
	}
}

func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrDatabase, err)
}
