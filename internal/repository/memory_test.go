package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"hangman/internal/domain/game"
	"hangman/internal/domain/score"
	"hangman/internal/domain/user"
	errs "hangman/internal/errors"
)

func TestMemoryGameStoreVersioning(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryGameStore()

	g := game.New("k1", "u1", "alice", "cat", 5, time.Now())
	if err := store.PutGame(ctx, g); err != nil {
		t.Fatal(err)
	}

	first, _ := store.GetGameByKey(ctx, "k1")
	second, _ := store.GetGameByKey(ctx, "k1")

	first.AttemptsRemaining = 4
	updated, err := store.UpdateGame(ctx, first)
	if err != nil {
		t.Fatalf("first update: %v", err)
	}
	if updated.Version != 1 {
		t.Errorf("Version = %d, want 1", updated.Version)
	}

	second.AttemptsRemaining = 3
	if _, err = store.UpdateGame(ctx, second); !errors.Is(err, errs.ErrConcurrentUpdate) {
		t.Errorf("stale update err = %v, want ErrConcurrentUpdate", err)
	}

	stored, _ := store.GetGameByKey(ctx, "k1")
	if stored.AttemptsRemaining != 4 {
		t.Errorf("AttemptsRemaining = %d, want 4", stored.AttemptsRemaining)
	}
}

func TestMemoryGameStoreDoesNotShareSlices(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryGameStore()
	_ = store.PutGame(ctx, game.New("k1", "u1", "alice", "cat", 5, time.Now()))

	g, _ := store.GetGameByKey(ctx, "k1")
	g.History = append(g.History, game.HistoryEntry{Guess: "x", Result: "nope"})

	again, _ := store.GetGameByKey(ctx, "k1")
	if len(again.History) != 0 {
		t.Errorf("stored history was mutated through a returned copy")
	}
}

func TestMemoryGameStoreDeleteAndLists(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryGameStore()
	_ = store.PutGame(ctx, game.New("k1", "u1", "alice", "cat", 5, time.Now()))
	_ = store.PutGame(ctx, game.New("k2", "u1", "alice", "dog", 5, time.Now()))
	over := game.New("k3", "u2", "bob", "owl", 5, time.Now())
	over.GameOver = true
	_ = store.PutGame(ctx, over)

	open, _ := store.ListOpenGames(ctx)
	if len(open) != 2 {
		t.Errorf("open games = %d, want 2", len(open))
	}

	if err := store.DeleteGame(ctx, "k1"); err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteGame(ctx, "k1"); !errors.Is(err, errs.ErrGameNotFound) {
		t.Errorf("second delete err = %v", err)
	}

	mine, _ := store.ListGamesByUser(ctx, "u1")
	if len(mine) != 1 || mine[0].Key != "k2" {
		t.Errorf("games for u1 = %+v", mine)
	}
}

func TestMemoryUserStoreRanking(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryUserStore()

	for _, u := range []user.User{
		{ID: "1", Name: "alice", Wins: 1, Losses: 1, WinningPercent: 0.5},
		{ID: "2", Name: "bob", Wins: 2, Losses: 2, WinningPercent: 0.5},
		{ID: "3", Name: "carol", Wins: 3, Losses: 0, WinningPercent: 1},
		{ID: "4", Name: "dave"},
	} {
		if err := store.CreateUser(ctx, u); err != nil {
			t.Fatal(err)
		}
	}
	if err := store.CreateUser(ctx, user.User{ID: "5", Name: "alice"}); !errors.Is(err, errs.ErrUserExists) {
		t.Errorf("duplicate err = %v, want ErrUserExists", err)
	}

	ranked, _ := store.ListUsersByRanking(ctx)
	want := []string{"carol", "bob", "alice", "dave"}
	for i, name := range want {
		if ranked[i].Name != name {
			t.Errorf("rank %d = %s, want %s", i, ranked[i].Name, name)
		}
	}
}

func TestMemoryScoreStoreOrdering(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryScoreStore()
	for i, guesses := range []int{4, 1, 3, 2} {
		_ = store.PutScore(ctx, score.Score{ID: string(rune('a' + i)), UserID: "u1", Guesses: guesses})
	}

	tests := []struct {
		limit int
		want  []int
	}{
		{limit: 0, want: []int{1, 2, 3, 4}},
		{limit: -1, want: []int{1, 2, 3, 4}},
		{limit: 2, want: []int{1, 2}},
		{limit: 10, want: []int{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		got, _ := store.ListScoresByGuesses(ctx, tt.limit)
		if len(got) != len(tt.want) {
			t.Fatalf("limit %d: %d scores, want %d", tt.limit, len(got), len(tt.want))
		}
		for i := range got {
			if got[i].Guesses != tt.want[i] {
				t.Errorf("limit %d: position %d = %d, want %d", tt.limit, i, got[i].Guesses, tt.want[i])
			}
		}
	}
}

func TestMemoryStatCache(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryStatCache()

	if _, ok, _ := cache.GetAverageAttempts(ctx); ok {
		t.Fatal("empty cache reported a value")
	}
	_ = cache.SetAverageAttempts(ctx, "first")
	_ = cache.SetAverageAttempts(ctx, "second")
	if v, ok, _ := cache.GetAverageAttempts(ctx); !ok || v != "second" {
		t.Errorf("GetAverageAttempts = %q, %v", v, ok)
	}
}
