package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"hangman/internal/domain/game"
	scoreDomain "hangman/internal/domain/score"
	userDomain "hangman/internal/domain/user"
	errs "hangman/internal/errors"
)

const (
	MsgGoodLuck     = "Good luck playing Hangman!"
	MsgMakeAMove    = "Time to make a move!"
	MsgCancelled    = "The game was deleted!"
	MsgCancelOver   = "This game is already over!"
	DefaultAttempts = 5
)

type GameStore interface {
	PutGame(ctx context.Context, gameData game.Game) error
	// GetGameByKey returns errs.ErrGameNotFound for an unknown key.
	GetGameByKey(ctx context.Context, key string) (game.Game, error)
	// UpdateGame replaces the stored game if its version still matches and
	// returns it with the version bumped; otherwise errs.ErrConcurrentUpdate.
	UpdateGame(ctx context.Context, gameData game.Game) (game.Game, error)
	DeleteGame(ctx context.Context, key string) error
	ListGamesByUser(ctx context.Context, userID string) ([]game.Game, error)
}

type WordSource interface {
	RandomWord() string
}

type UserRegistry interface {
	FindUser(ctx context.Context, name string) (userDomain.User, error)
	RecordResult(ctx context.Context, player userDomain.User, won bool) (userDomain.User, error)
}

type ScoreLedger interface {
	Record(ctx context.Context, player userDomain.User, won bool, guesses int, date time.Time) (scoreDomain.Score, error)
}

type StatsRefresher interface {
	ScheduleRefresh()
}

type GameUseCase struct {
	store           GameStore
	words           WordSource
	users           UserRegistry
	scores          ScoreLedger
	stats           StatsRefresher
	locks           *keyedMutex
	defaultAttempts int
	now             func() time.Time
}

func NewGameUseCase(store GameStore, words WordSource, users UserRegistry, scores ScoreLedger, stats StatsRefresher, defaultAttempts int) *GameUseCase {
	if defaultAttempts <= 0 {
		defaultAttempts = DefaultAttempts
	}
	return &GameUseCase{
		store:           store,
		words:           words,
		users:           users,
		scores:          scores,
		stats:           stats,
		locks:           newKeyedMutex(),
		defaultAttempts: defaultAttempts,
		now:             time.Now,
	}
}

func (g *GameUseCase) NewGame(ctx context.Context, req game.NewGameRequest) (game.Game, error) {
	attempts := g.defaultAttempts
	if req.Attempts != nil {
		attempts = *req.Attempts
	}
	if attempts <= 0 {
		return game.Game{}, errs.ErrInvalidAttempts
	}

	player, err := g.users.FindUser(ctx, req.UserName)
	if err != nil {
		return game.Game{}, err
	}

	newGame := game.New(uuid.New().String(), player.ID, player.Name, g.words.RandomWord(), attempts, g.now())
	if err = g.store.PutGame(ctx, newGame); err != nil {
		return game.Game{}, err
	}

	g.stats.ScheduleRefresh()

	return newGame, nil
}

func (g *GameUseCase) GetGame(ctx context.Context, key string) (game.Game, error) {
	return g.store.GetGameByKey(ctx, key)
}

// MakeMove applies one guess and returns the stored game with the message
// for the player. Rejected guesses are persisted to the history before the
// InvalidInput error is returned.
func (g *GameUseCase) MakeMove(ctx context.Context, key, guess string) (game.Game, string, error) {
	unlock := g.locks.Lock(key)
	defer unlock()

	play, err := g.store.GetGameByKey(ctx, key)
	if err != nil {
		return game.Game{}, "", err
	}

	if play.GameOver {
		return play, game.MsgAlreadyOver, nil
	}

	result, moveErr := play.ApplyGuess(guess)

	updated, err := g.store.UpdateGame(ctx, play)
	if err != nil {
		return game.Game{}, "", err
	}

	if moveErr != nil {
		return updated, result.Message, moveErr
	}

	if result.Finished {
		if err = g.endGame(ctx, updated); err != nil {
			return updated, result.Message, err
		}
	}

	return updated, result.Message, nil
}

// endGame writes the score and the user's result for a game that has just
// finished. Both writes are attempted even if the first one fails.
func (g *GameUseCase) endGame(ctx context.Context, play game.Game) error {
	player := userDomain.User{ID: play.UserID, Name: play.UserName}
	won := play.Won()

	_, scoreErr := g.scores.Record(ctx, player, won, play.GuessesUsed(), g.now())
	if scoreErr != nil {
		scoreErr = fmt.Errorf("record score for game %s: %w", play.Key, scoreErr)
	}
	_, userErr := g.users.RecordResult(ctx, player, won)
	if userErr != nil {
		userErr = fmt.Errorf("record result for user %s: %w", play.UserName, userErr)
	}

	return errors.Join(scoreErr, userErr)
}

func (g *GameUseCase) CancelGame(ctx context.Context, key string) (game.Game, string, error) {
	unlock := g.locks.Lock(key)
	defer unlock()

	play, err := g.store.GetGameByKey(ctx, key)
	if err != nil {
		return game.Game{}, "", err
	}

	if play.GameOver {
		return play, MsgCancelOver, nil
	}

	if err = g.store.DeleteGame(ctx, key); err != nil {
		return game.Game{}, "", err
	}
	play.GameOver = true

	return play, MsgCancelled, nil
}

func (g *GameUseCase) GameHistory(ctx context.Context, key string) ([]game.HistoryEntry, error) {
	play, err := g.store.GetGameByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(play.History) == 0 {
		return nil, errs.ErrNoHistory
	}
	return play.History, nil
}

func (g *GameUseCase) UserGames(ctx context.Context, userName string) ([]game.Game, error) {
	player, err := g.users.FindUser(ctx, userName)
	if err != nil {
		return nil, err
	}
	return g.store.ListGamesByUser(ctx, player.ID)
}
