package score

import (
	"context"
	"time"

	"github.com/google/uuid"

	scoreDomain "hangman/internal/domain/score"
	userDomain "hangman/internal/domain/user"
)

type ScoreStore interface {
	PutScore(ctx context.Context, s scoreDomain.Score) error
	// ListScoresByGuesses orders ascending by guesses; limit <= 0 means all.
	ListScoresByGuesses(ctx context.Context, limit int) ([]scoreDomain.Score, error)
	ListScoresByUser(ctx context.Context, userID string) ([]scoreDomain.Score, error)
	ListScores(ctx context.Context) ([]scoreDomain.Score, error)
}

type UserFinder interface {
	FindUser(ctx context.Context, name string) (userDomain.User, error)
}

type ScoreUseCase struct {
	store ScoreStore
	users UserFinder
}

func NewScoreUseCase(store ScoreStore, users UserFinder) *ScoreUseCase {
	return &ScoreUseCase{store: store, users: users}
}

// Record appends a finished game to the ledger.
func (s *ScoreUseCase) Record(ctx context.Context, player userDomain.User, won bool, guesses int, date time.Time) (scoreDomain.Score, error) {
	entry := scoreDomain.Score{
		ID:       uuid.New().String(),
		UserID:   player.ID,
		UserName: player.Name,
		Date:     scoreDomain.Day(date),
		Won:      won,
		Guesses:  guesses,
	}
	if err := s.store.PutScore(ctx, entry); err != nil {
		return scoreDomain.Score{}, err
	}
	return entry, nil
}

func (s *ScoreUseCase) TopScores(ctx context.Context, limit int) ([]scoreDomain.Score, error) {
	if limit < 0 {
		limit = 0
	}
	return s.store.ListScoresByGuesses(ctx, limit)
}

func (s *ScoreUseCase) ScoresForUser(ctx context.Context, userName string) ([]scoreDomain.Score, error) {
	player, err := s.users.FindUser(ctx, userName)
	if err != nil {
		return nil, err
	}
	return s.store.ListScoresByUser(ctx, player.ID)
}

func (s *ScoreUseCase) AllScores(ctx context.Context) ([]scoreDomain.Score, error) {
	return s.store.ListScores(ctx)
}
