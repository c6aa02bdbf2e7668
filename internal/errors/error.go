package errors

import "errors"

// Kinds. Concrete errors below unwrap to one of them, delivery maps kinds to
// HTTP statuses with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
)

var (
	ErrUserExists      = newKindError(ErrConflict, "A User with that name already exists!")
	ErrUserNotFound    = newKindError(ErrNotFound, "A User with that name does not exist!")
	ErrGameNotFound    = newKindError(ErrNotFound, "Game not found!")
	ErrNoHistory       = newKindError(ErrNotFound, "This game has no history yet!")
	ErrNoUsers         = newKindError(ErrNotFound, "There are no users!")
	ErrEmptyUserName   = newKindError(ErrInvalidInput, "user_name is required")
	ErrInvalidAttempts = newKindError(ErrInvalidInput, "attempts must be greater than zero")

	ErrGuessNotAlpha = newKindError(ErrInvalidInput, "Please enter a letter or word.")
	ErrGuessRepeated = newKindError(ErrInvalidInput, "You have already guessed that. Choose again.")
	ErrGuessTooLong  = newKindError(ErrInvalidInput, "Your guess had too many letters in it.")

	ErrConcurrentUpdate = errors.New("game was modified concurrently")
)

type kindError struct {
	kind error
	msg  string
}

func newKindError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }
