package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"hangman/internal/domain/user"
	errs "hangman/internal/errors"
)

const usersCollection = "users"

type MongoUserStorage struct {
	log   *zap.SugaredLogger
	mongo *mongo.Database
}

func NewMongoUserStorage(log *zap.SugaredLogger, mongo *mongo.Database) *MongoUserStorage {
	return &MongoUserStorage{log: log, mongo: mongo}
}

func (m *MongoUserStorage) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := m.mongo.Collection(usersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "winning_percent", Value: -1}, {Key: "wins", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	return nil
}

func (m *MongoUserStorage) CreateUser(ctx context.Context, u user.User) error {
	_, err := m.GetUserByName(ctx, u.Name)
	if err == nil {
		return errs.ErrUserExists
	}
	if !errors.Is(err, errs.ErrUserNotFound) {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err = m.mongo.Collection(usersCollection).InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return errs.ErrUserExists
	}
	if err != nil {
		m.log.Error(err)
		return fmt.Errorf("insert user: %w", err)
	}

	m.log.Infof("user %s created", u.Name)
	return nil
}

func (m *MongoUserStorage) GetUserByName(ctx context.Context, name string) (user.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var result user.User
	err := m.mongo.Collection(usersCollection).FindOne(ctx, bson.D{{Key: "name", Value: name}}).Decode(&result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return user.User{}, errs.ErrUserNotFound
	}
	if err != nil {
		m.log.Error(err)
		return user.User{}, fmt.Errorf("find user %s: %w", name, err)
	}
	return result, nil
}

// RecordResult increments the counter and recomputes winning_percent in a
// single update pipeline.
func (m *MongoUserStorage) RecordResult(ctx context.Context, userID string, won bool) (user.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	counter := "losses"
	if won {
		counter = "wins"
	}

	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{{Key: counter, Value: bson.D{{Key: "$add", Value: bson.A{"$" + counter, 1}}}}}}},
		{{Key: "$set", Value: bson.D{{Key: "winning_percent", Value: bson.D{{Key: "$divide", Value: bson.A{
			"$wins",
			bson.D{{Key: "$add", Value: bson.A{"$wins", "$losses"}}},
		}}}}}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated user.User
	err := m.mongo.Collection(usersCollection).FindOneAndUpdate(ctx, bson.M{"_id": userID}, pipeline, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return user.User{}, errs.ErrUserNotFound
	}
	if err != nil {
		m.log.Errorf("failed to record result for user %s: %v", userID, err)
		return user.User{}, fmt.Errorf("record result: %w", err)
	}
	return updated, nil
}

func (m *MongoUserStorage) ListUsersByRanking(ctx context.Context) ([]user.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "winning_percent", Value: -1}, {Key: "wins", Value: -1}})
	cursor, err := m.mongo.Collection(usersCollection).Find(ctx, bson.D{}, opts)
	if err != nil {
		m.log.Error(err)
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cursor.Close(ctx)

	result := []user.User{}
	if err = cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return result, nil
}
