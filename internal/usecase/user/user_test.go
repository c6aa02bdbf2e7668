package user

import (
	"context"
	"errors"
	"testing"

	userDomain "hangman/internal/domain/user"
	errs "hangman/internal/errors"
	"hangman/internal/repository"
)

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	uc := NewUserUseCase(repository.NewMemoryUserStore())

	u, err := uc.CreateUser(ctx, "alice", "alice@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if u.ID == "" || u.Wins != 0 || u.Losses != 0 || u.WinningPercent != 0 {
		t.Errorf("new user = %+v", u)
	}

	tests := []struct {
		name     string
		userName string
		wantErr  error
	}{
		{name: "duplicate", userName: "alice", wantErr: errs.ErrUserExists},
		{name: "empty", userName: "", wantErr: errs.ErrEmptyUserName},
		{name: "blank", userName: "   ", wantErr: errs.ErrEmptyUserName},
		{name: "case differs", userName: "Alice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.CreateUser(ctx, tt.userName, "")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if !errors.Is(errs.ErrUserExists, errs.ErrConflict) {
		t.Error("ErrUserExists should be a Conflict")
	}
}

func TestFindUser(t *testing.T) {
	ctx := context.Background()
	uc := NewUserUseCase(repository.NewMemoryUserStore())
	created, _ := uc.CreateUser(ctx, "bob", "")

	found, err := uc.FindUser(ctx, "bob")
	if err != nil || found.ID != created.ID {
		t.Errorf("FindUser = %+v, %v", found, err)
	}
	if _, err = uc.FindUser(ctx, "carol"); !errors.Is(err, errs.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestRecordResultKeepsPercentInSync(t *testing.T) {
	ctx := context.Background()
	uc := NewUserUseCase(repository.NewMemoryUserStore())
	u, _ := uc.CreateUser(ctx, "alice", "")

	for i, won := range []bool{true, false, false, true, true} {
		updated, err := uc.RecordResult(ctx, u, won)
		if err != nil {
			t.Fatal(err)
		}
		if want := userDomain.WinningPercent(updated.Wins, updated.Losses); updated.WinningPercent != want {
			t.Errorf("after game %d: WinningPercent = %v, want %v", i+1, updated.WinningPercent, want)
		}
	}

	final, _ := uc.FindUser(ctx, "alice")
	if final.Wins != 3 || final.Losses != 2 || final.WinningPercent != 0.6 {
		t.Errorf("final = %+v", final)
	}
}

func TestRankUsers(t *testing.T) {
	ctx := context.Background()
	uc := NewUserUseCase(repository.NewMemoryUserStore())

	if _, err := uc.RankUsers(ctx); !errors.Is(err, errs.ErrNoUsers) {
		t.Fatalf("err = %v, want ErrNoUsers", err)
	}

	results := map[string][]bool{
		"alice": {true, false},
		"bob":   {true, true, false, false},
		"carol": {false},
		"dave":  {true},
	}
	for _, name := range []string{"alice", "bob", "carol", "dave"} {
		u, _ := uc.CreateUser(ctx, name, "")
		for _, won := range results[name] {
			if _, err := uc.RecordResult(ctx, u, won); err != nil {
				t.Fatal(err)
			}
		}
	}

	ranked, err := uc.RankUsers(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"dave", "bob", "alice", "carol"}
	for i, name := range want {
		if ranked[i].Name != name {
			t.Errorf("rank %d = %s, want %s", i+1, ranked[i].Name, name)
		}
	}
}
