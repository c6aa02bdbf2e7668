package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"hangman/internal/domain/game"
	errs "hangman/internal/errors"
)

const (
	gamesCollection = "games"
	opTimeout       = 5 * time.Second
)

type GameRepository struct {
	log   *zap.SugaredLogger
	mongo *mongo.Database
}

func NewGameRepository(log *zap.SugaredLogger, mongo *mongo.Database) *GameRepository {
	return &GameRepository{
		log:   log,
		mongo: mongo,
	}
}

func (g *GameRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := g.mongo.Collection(gamesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "game_over", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create game indexes: %w", err)
	}
	return nil
}

func (g *GameRepository) PutGame(ctx context.Context, gameData game.Game) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := g.mongo.Collection(gamesCollection).InsertOne(ctx, gameData)
	if err != nil {
		g.log.Errorf("failed to insert game to database: %v", err)
		return fmt.Errorf("insert game: %w", err)
	}

	g.log.Infof("game inserted successfully with key: %s", gameData.Key)
	return nil
}

func (g *GameRepository) GetGameByKey(ctx context.Context, key string) (game.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var result game.Game
	err := g.mongo.Collection(gamesCollection).FindOne(ctx, bson.M{"_id": key}).Decode(&result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return game.Game{}, errs.ErrGameNotFound
	}
	if err != nil {
		g.log.Error(err)
		return game.Game{}, fmt.Errorf("find game %s: %w", key, err)
	}

	return result, nil
}

func (g *GameRepository) UpdateGame(ctx context.Context, gameData game.Game) (game.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	collection := g.mongo.Collection(gamesCollection)

	filter := bson.M{"_id": gameData.Key, "version": gameData.Version}
	gameData.Version++

	res, err := collection.ReplaceOne(ctx, filter, gameData, options.Replace().SetUpsert(false))
	if err != nil {
		g.log.Errorf("failed to update game %s: %v", gameData.Key, err)
		return game.Game{}, fmt.Errorf("update game: %w", err)
	}

	if res.MatchedCount == 0 {
		err = collection.FindOne(ctx, bson.M{"_id": gameData.Key}).Err()
		if errors.Is(err, mongo.ErrNoDocuments) {
			return game.Game{}, errs.ErrGameNotFound
		}
		g.log.Warnf("game %s changed under version %d", gameData.Key, gameData.Version-1)
		return game.Game{}, errs.ErrConcurrentUpdate
	}

	return gameData, nil
}

func (g *GameRepository) DeleteGame(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := g.mongo.Collection(gamesCollection).DeleteOne(ctx, bson.M{"_id": key})
	if err != nil {
		g.log.Errorf("failed to delete game %s: %v", key, err)
		return fmt.Errorf("delete game: %w", err)
	}
	if res.DeletedCount == 0 {
		return errs.ErrGameNotFound
	}

	g.log.Infof("game %s deleted", key)
	return nil
}

func (g *GameRepository) ListGamesByUser(ctx context.Context, userID string) ([]game.Game, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	return g.find(ctx, bson.M{"user_id": userID}, opts)
}

func (g *GameRepository) ListOpenGames(ctx context.Context) ([]game.Game, error) {
	return g.find(ctx, bson.M{"game_over": false})
}

func (g *GameRepository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]game.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cursor, err := g.mongo.Collection(gamesCollection).Find(ctx, filter, opts...)
	if err != nil {
		g.log.Error(err)
		return nil, fmt.Errorf("find games: %w", err)
	}
	defer cursor.Close(ctx)

	result := []game.Game{}
	if err = cursor.All(ctx, &result); err != nil {
		g.log.Error(err)
		return nil, fmt.Errorf("decode games: %w", err)
	}

	return result, nil
}
