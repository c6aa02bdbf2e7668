package score

import (
	"context"
	"errors"
	"testing"
	"time"

	errs "hangman/internal/errors"
	"hangman/internal/repository"
	useruc "hangman/internal/usecase/user"
)

func TestScoreLedger(t *testing.T) {
	ctx := context.Background()
	users := useruc.NewUserUseCase(repository.NewMemoryUserStore())
	ledger := NewScoreUseCase(repository.NewMemoryScoreStore(), users)

	alice, _ := users.CreateUser(ctx, "alice", "")
	bob, _ := users.CreateUser(ctx, "bob", "")
	_, _ = users.CreateUser(ctx, "carol", "")

	finishedAt := time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC)
	entries := []struct {
		name    string
		won     bool
		guesses int
	}{
		{"alice", true, 3},
		{"bob", false, 5},
		{"alice", true, 1},
		{"bob", true, 2},
	}
	for _, e := range entries {
		player := alice
		if e.name == "bob" {
			player = bob
		}
		s, err := ledger.Record(ctx, player, e.won, e.guesses, finishedAt)
		if err != nil {
			t.Fatal(err)
		}
		if s.ToForm().Date != "2026-03-14" {
			t.Errorf("date = %s, want 2026-03-14", s.ToForm().Date)
		}
	}

	tests := []struct {
		name  string
		limit int
		want  []int
	}{
		{name: "all with zero", limit: 0, want: []int{1, 2, 3, 5}},
		{name: "all with negative", limit: -4, want: []int{1, 2, 3, 5}},
		{name: "top two", limit: 2, want: []int{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top, err := ledger.TopScores(ctx, tt.limit)
			if err != nil {
				t.Fatal(err)
			}
			if len(top) != len(tt.want) {
				t.Fatalf("%d scores, want %d", len(top), len(tt.want))
			}
			for i, s := range top {
				if s.Guesses != tt.want[i] {
					t.Errorf("position %d: guesses %d, want %d", i, s.Guesses, tt.want[i])
				}
			}
		})
	}

	mine, err := ledger.ScoresForUser(ctx, "alice")
	if err != nil || len(mine) != 2 {
		t.Errorf("alice scores = %d, %v", len(mine), err)
	}
	none, err := ledger.ScoresForUser(ctx, "carol")
	if err != nil || len(none) != 0 {
		t.Errorf("carol scores = %d, %v", len(none), err)
	}
	if _, err = ledger.ScoresForUser(ctx, "nobody"); !errors.Is(err, errs.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}

	all, _ := ledger.AllScores(ctx)
	if len(all) != 4 {
		t.Errorf("AllScores = %d, want 4", len(all))
	}
}
