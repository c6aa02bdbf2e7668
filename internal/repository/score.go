package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"hangman/internal/domain/score"
)

const scoresCollection = "scores"

type ScoreRepository struct {
	log   *zap.SugaredLogger
	mongo *mongo.Database
}

func NewScoreRepository(log *zap.SugaredLogger, mongo *mongo.Database) *ScoreRepository {
	return &ScoreRepository{log: log, mongo: mongo}
}

func (s *ScoreRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := s.mongo.Collection(scoresCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "guesses", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create score indexes: %w", err)
	}
	return nil
}

func (s *ScoreRepository) PutScore(ctx context.Context, entry score.Score) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := s.mongo.Collection(scoresCollection).InsertOne(ctx, entry); err != nil {
		s.log.Errorf("failed to insert score: %v", err)
		return fmt.Errorf("insert score: %w", err)
	}
	return nil
}

func (s *ScoreRepository) ListScoresByGuesses(ctx context.Context, limit int) ([]score.Score, error) {
	opts := options.Find().SetSort(bson.D{{Key: "guesses", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return s.find(ctx, bson.M{}, opts)
}

func (s *ScoreRepository) ListScoresByUser(ctx context.Context, userID string) ([]score.Score, error) {
	return s.find(ctx, bson.M{"user_id": userID})
}

func (s *ScoreRepository) ListScores(ctx context.Context) ([]score.Score, error) {
	return s.find(ctx, bson.M{})
}

func (s *ScoreRepository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]score.Score, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cursor, err := s.mongo.Collection(scoresCollection).Find(ctx, filter, opts...)
	if err != nil {
		s.log.Error(err)
		return nil, fmt.Errorf("find scores: %w", err)
	}
	defer cursor.Close(ctx)

	result := []score.Score{}
	if err = cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("decode scores: %w", err)
	}
	return result, nil
}
