package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"hangman/internal/domain/game"
	"hangman/internal/repository"
	"hangman/internal/taskqueue"
)

type brokenCache struct{}

func (brokenCache) GetAverageAttempts(ctx context.Context) (string, bool, error) {
	return "", false, errors.New("cache down")
}

func (brokenCache) SetAverageAttempts(ctx context.Context, value string) error {
	return errors.New("cache down")
}

func seedGames(t *testing.T, store *repository.MemoryGameStore, remaining ...int) {
	t.Helper()
	for i, r := range remaining {
		g := game.New(string(rune('a'+i)), "u1", "alice", "cat", 5, time.Now())
		g.AttemptsRemaining = r
		if err := store.PutGame(context.Background(), g); err != nil {
			t.Fatal(err)
		}
	}
}

func TestAverageAttempts(t *testing.T) {
	ctx := context.Background()
	log := zap.NewNop().Sugar()
	store := repository.NewMemoryGameStore()
	queue := taskqueue.NewQueue(log, 1, 4)
	defer queue.Close()
	uc := NewStatsUseCase(store, repository.NewMemoryStatCache(), queue, log)

	if v, err := uc.AverageAttempts(ctx); err != nil || v != "" {
		t.Fatalf("before refresh: %q, %v", v, err)
	}

	if err := uc.RefreshAverageAttempts(ctx); err != nil {
		t.Fatal(err)
	}
	if v, _ := uc.AverageAttempts(ctx); v != "" {
		t.Errorf("no open games should leave the cache empty, got %q", v)
	}

	seedGames(t, store, 5, 4, 2)
	over := game.New("over", "u1", "alice", "dog", 5, time.Now())
	over.AttemptsRemaining = 0
	over.GameOver = true
	_ = store.PutGame(ctx, over)

	if err := uc.RefreshAverageAttempts(ctx); err != nil {
		t.Fatal(err)
	}
	if v, _ := uc.AverageAttempts(ctx); v != "The average moves remaining is 3.67" {
		t.Errorf("AverageAttempts = %q", v)
	}
}

func TestScheduleRefreshRunsInBackground(t *testing.T) {
	ctx := context.Background()
	log := zap.NewNop().Sugar()
	store := repository.NewMemoryGameStore()
	cache := repository.NewMemoryStatCache()
	queue := taskqueue.NewQueue(log, 1, 4)
	uc := NewStatsUseCase(store, cache, queue, log)

	seedGames(t, store, 3, 1)
	uc.ScheduleRefresh()
	queue.Close()

	if v, _ := uc.AverageAttempts(ctx); v != "The average moves remaining is 2.00" {
		t.Errorf("AverageAttempts = %q", v)
	}
}

func TestRefreshFailureIsReported(t *testing.T) {
	log := zap.NewNop().Sugar()
	store := repository.NewMemoryGameStore()
	seedGames(t, store, 3)
	queue := taskqueue.NewQueue(log, 1, 4)
	uc := NewStatsUseCase(store, brokenCache{}, queue, log)

	if err := uc.RefreshAverageAttempts(context.Background()); err == nil {
		t.Error("expected cache error")
	}

	uc.ScheduleRefresh()
	queue.Close()
}

func TestRunPeriodicRefreshStopsWithContext(t *testing.T) {
	log := zap.NewNop().Sugar()
	store := repository.NewMemoryGameStore()
	cache := repository.NewMemoryStatCache()
	queue := taskqueue.NewQueue(log, 1, 16)
	uc := NewStatsUseCase(store, cache, queue, log)
	seedGames(t, store, 4)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		uc.RunPeriodicRefresh(ctx, 5*time.Millisecond)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for {
		if v, _, _ := cache.GetAverageAttempts(context.Background()); v != "" {
			break
		}
		select {
		case <-deadline:
			t.Fatal("periodic refresh never ran")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	<-done
	queue.Close()
}
