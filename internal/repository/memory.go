package repository

import (
	"context"
	"slices"
	"sort"
	"sync"

	"hangman/internal/domain/game"
	"hangman/internal/domain/score"
	"hangman/internal/domain/user"
	errs "hangman/internal/errors"
)

// In-memory stores used with STORAGE=memory and in tests. State is lost on
// restart. Values are copied in and out so callers never share slices with
// the store.

type MemoryGameStore struct {
	mu    sync.RWMutex
	games map[string]game.Game
	order []string
}

func NewMemoryGameStore() *MemoryGameStore {
	return &MemoryGameStore{games: make(map[string]game.Game)}
}

func (m *MemoryGameStore) PutGame(ctx context.Context, gameData game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[gameData.Key]; !ok {
		m.order = append(m.order, gameData.Key)
	}
	m.games[gameData.Key] = cloneGame(gameData)
	return nil
}

func (m *MemoryGameStore) GetGameByKey(ctx context.Context, key string) (game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[key]
	if !ok {
		return game.Game{}, errs.ErrGameNotFound
	}
	return cloneGame(g), nil
}

func (m *MemoryGameStore) UpdateGame(ctx context.Context, gameData game.Game) (game.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.games[gameData.Key]
	if !ok {
		return game.Game{}, errs.ErrGameNotFound
	}
	if stored.Version != gameData.Version {
		return game.Game{}, errs.ErrConcurrentUpdate
	}
	gameData.Version++
	m.games[gameData.Key] = cloneGame(gameData)
	return cloneGame(gameData), nil
}

func (m *MemoryGameStore) DeleteGame(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[key]; !ok {
		return errs.ErrGameNotFound
	}
	delete(m.games, key)
	m.order = slices.DeleteFunc(m.order, func(k string) bool { return k == key })
	return nil
}

func (m *MemoryGameStore) ListGamesByUser(ctx context.Context, userID string) ([]game.Game, error) {
	return m.filter(func(g game.Game) bool { return g.UserID == userID }), nil
}

func (m *MemoryGameStore) ListOpenGames(ctx context.Context) ([]game.Game, error) {
	return m.filter(func(g game.Game) bool { return !g.GameOver }), nil
}

func (m *MemoryGameStore) filter(keep func(game.Game) bool) []game.Game {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := []game.Game{}
	for _, key := range m.order {
		if g := m.games[key]; keep(g) {
			result = append(result, cloneGame(g))
		}
	}
	return result
}

func cloneGame(g game.Game) game.Game {
	g.PreviousGuesses = slices.Clone(g.PreviousGuesses)
	g.History = slices.Clone(g.History)
	return g
}

type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]user.User
	names map[string]string
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		users: make(map[string]user.User),
		names: make(map[string]string),
	}
}

func (m *MemoryUserStore) CreateUser(ctx context.Context, u user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, taken := m.names[u.Name]; taken {
		return errs.ErrUserExists
	}
	m.users[u.ID] = u
	m.names[u.Name] = u.ID
	return nil
}

func (m *MemoryUserStore) GetUserByName(ctx context.Context, name string) (user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.names[name]
	if !ok {
		return user.User{}, errs.ErrUserNotFound
	}
	return m.users[id], nil
}

func (m *MemoryUserStore) RecordResult(ctx context.Context, userID string, won bool) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return user.User{}, errs.ErrUserNotFound
	}
	u.RecordResult(won)
	m.users[userID] = u
	return u, nil
}

func (m *MemoryUserStore) ListUsersByRanking(ctx context.Context) ([]user.User, error) {
	m.mu.RLock()
	result := make([]user.User, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, u)
	}
	m.mu.RUnlock()

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].WinningPercent != result[j].WinningPercent {
			return result[i].WinningPercent > result[j].WinningPercent
		}
		if result[i].Wins != result[j].Wins {
			return result[i].Wins > result[j].Wins
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

type MemoryScoreStore struct {
	mu     sync.RWMutex
	scores []score.Score
}

func NewMemoryScoreStore() *MemoryScoreStore {
	return &MemoryScoreStore{}
}

func (m *MemoryScoreStore) PutScore(ctx context.Context, entry score.Score) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores = append(m.scores, entry)
	return nil
}

func (m *MemoryScoreStore) ListScoresByGuesses(ctx context.Context, limit int) ([]score.Score, error) {
	result, _ := m.ListScores(ctx)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Guesses < result[j].Guesses
	})
	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

func (m *MemoryScoreStore) ListScoresByUser(ctx context.Context, userID string) ([]score.Score, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := []score.Score{}
	for _, s := range m.scores {
		if s.UserID == userID {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *MemoryScoreStore) ListScores(ctx context.Context) ([]score.Score, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]score.Score{}, m.scores...), nil
}

type MemoryStatCache struct {
	mu    sync.RWMutex
	value string
	set   bool
}

func NewMemoryStatCache() *MemoryStatCache {
	return &MemoryStatCache{}
}

func (m *MemoryStatCache) GetAverageAttempts(ctx context.Context) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.value, m.set, nil
}

func (m *MemoryStatCache) SetAverageAttempts(ctx context.Context, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value, m.set = value, true
	return nil
}
