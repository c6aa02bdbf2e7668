package game

import (
	"strings"
	"time"
)

const MaskChar = "-"

type Status string

const (
	StatusOpen Status = "open"
	StatusWon  Status = "won"
	StatusLost Status = "lost"
)

type Game struct {
	Key               string         `json:"urlsafe_key" bson:"_id"`
	UserID            string         `json:"user_id" bson:"user_id"`
	UserName          string         `json:"user_name" bson:"user_name"`
	Target            string         `json:"-" bson:"target"`
	CurrentWordState  string         `json:"current_word_state" bson:"current_word_state"`
	PreviousGuesses   []string       `json:"previous_guesses" bson:"previous_guesses"`
	AttemptsAllowed   int            `json:"attempts_allowed" bson:"attempts_allowed"`
	AttemptsRemaining int            `json:"attempts_remaining" bson:"attempts_remaining"`
	GameOver          bool           `json:"game_over" bson:"game_over"`
	Status            Status         `json:"status" bson:"status"`
	History           []HistoryEntry `json:"history" bson:"history"`
	Version           int64          `json:"-" bson:"version"`
	CreatedAt         time.Time      `json:"created_at" bson:"created_at"`
}

type HistoryEntry struct {
	Guess  string `json:"guess" bson:"guess"`
	Result string `json:"result" bson:"result"`
}

// New builds an open game around target with every letter masked.
func New(key, userID, userName, target string, attempts int, createdAt time.Time) Game {
	return Game{
		Key:               key,
		UserID:            userID,
		UserName:          userName,
		Target:            target,
		CurrentWordState:  strings.Repeat(MaskChar, len([]rune(target))),
		PreviousGuesses:   []string{},
		AttemptsAllowed:   attempts,
		AttemptsRemaining: attempts,
		Status:            StatusOpen,
		History:           []HistoryEntry{},
		CreatedAt:         createdAt,
	}
}

// GuessesUsed is the score recorded when the game ends.
func (g Game) GuessesUsed() int {
	return g.AttemptsAllowed - g.AttemptsRemaining
}

func (g Game) Won() bool {
	return g.Status == StatusWon
}

type NewGameRequest struct {
	UserName string `json:"user_name"`
	Attempts *int   `json:"attempts,omitempty"`
}

type MakeMoveRequest struct {
	Guess string `json:"guess"`
}

// GameForm is the outbound snapshot of a game.
type GameForm struct {
	UrlsafeKey        string `json:"urlsafe_key"`
	AttemptsRemaining int    `json:"attempts_remaining"`
	GameOver          bool   `json:"game_over"`
	Message           string `json:"message"`
	UserName          string `json:"user_name"`
	CurrentWordState  string `json:"current_word_state"`
	PreviousGuesses   string `json:"previous_guesses,omitempty"`
}

type GameForms struct {
	Items []GameForm `json:"items"`
}

type GameHistoryForms struct {
	Moves []HistoryEntry `json:"moves"`
}

func (g Game) ToForm(message string) GameForm {
	return GameForm{
		UrlsafeKey:        g.Key,
		AttemptsRemaining: g.AttemptsRemaining,
		GameOver:          g.GameOver,
		Message:           message,
		UserName:          g.UserName,
		CurrentWordState:  g.CurrentWordState,
		PreviousGuesses:   strings.Join(g.PreviousGuesses, ","),
	}
}
