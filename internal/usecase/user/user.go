package user

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	userDomain "hangman/internal/domain/user"
	errs "hangman/internal/errors"
)

type UserStore interface {
	// CreateUser returns errs.ErrUserExists when the name is taken.
	CreateUser(ctx context.Context, u userDomain.User) error
	// GetUserByName returns errs.ErrUserNotFound for an unknown name.
	GetUserByName(ctx context.Context, name string) (userDomain.User, error)
	// RecordResult atomically bumps wins or losses and the winning percent.
	RecordResult(ctx context.Context, userID string, won bool) (userDomain.User, error)
	// ListUsersByRanking orders by winning_percent desc, then wins desc.
	ListUsersByRanking(ctx context.Context) ([]userDomain.User, error)
}

type UserUseCase struct {
	store UserStore
	now   func() time.Time
}

func NewUserUseCase(store UserStore) *UserUseCase {
	return &UserUseCase{store: store, now: time.Now}
}

func (u *UserUseCase) CreateUser(ctx context.Context, name, email string) (userDomain.User, error) {
	if strings.TrimSpace(name) == "" {
		return userDomain.User{}, errs.ErrEmptyUserName
	}

	newUser := userDomain.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		CreatedAt: u.now(),
	}
	if err := u.store.CreateUser(ctx, newUser); err != nil {
		return userDomain.User{}, err
	}
	return newUser, nil
}

func (u *UserUseCase) FindUser(ctx context.Context, name string) (userDomain.User, error) {
	return u.store.GetUserByName(ctx, name)
}

func (u *UserUseCase) RecordResult(ctx context.Context, player userDomain.User, won bool) (userDomain.User, error) {
	return u.store.RecordResult(ctx, player.ID, won)
}

func (u *UserUseCase) RankUsers(ctx context.Context) ([]userDomain.User, error) {
	users, err := u.store.ListUsersByRanking(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, errs.ErrNoUsers
	}
	return users, nil
}
