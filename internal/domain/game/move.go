package game

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	errs "hangman/internal/errors"
)

const (
	MsgAlreadyOver  = "Game already over!"
	MsgCorrect      = "You guessed correctly!"
	MsgWin          = "You guessed correctly! You win!"
	MsgIncorrect    = "You guessed incorrectly."
	MsgGameOver     = " Game over!"
	msgCurrentState = " Here's the current state of the word: %s"
)

// MoveResult describes what a single guess did to the game. Finished is set
// only by the guess that ended it.
type MoveResult struct {
	Message  string
	Finished bool
}

// ApplyGuess runs one transition of the game state machine.
//
// A finished game is left untouched. A rejected guess is appended to History
// and returned as an InvalidInput error; nothing else changes. Only a
// single letter can reveal part of the word; a longer guess either equals the
// target or costs an attempt.
func (g *Game) ApplyGuess(raw string) (MoveResult, error) {
	if g.GameOver {
		return MoveResult{Message: MsgAlreadyOver}, nil
	}

	guess := strings.ToLower(raw)
	if err := g.validate(guess); err != nil {
		g.History = append(g.History, HistoryEntry{Guess: guess, Result: err.Error()})
		return MoveResult{Message: err.Error()}, err
	}

	g.PreviousGuesses = append(g.PreviousGuesses, guess)

	if guess == g.Target {
		g.CurrentWordState = g.Target
		return g.finish(StatusWon, MsgWin), nil
	}

	if utf8.RuneCountInString(guess) == 1 && strings.Contains(g.Target, guess) {
		g.reveal([]rune(guess)[0])
		if g.CurrentWordState == g.Target {
			return g.finish(StatusWon, MsgWin), nil
		}
		return g.record(guess, MsgCorrect+fmt.Sprintf(msgCurrentState, g.CurrentWordState)), nil
	}

	if g.AttemptsRemaining > 0 {
		g.AttemptsRemaining--
	}
	msg := MsgIncorrect + fmt.Sprintf(msgCurrentState, g.CurrentWordState)
	if g.AttemptsRemaining < 1 {
		return g.finish(StatusLost, msg+MsgGameOver), nil
	}
	return g.record(guess, msg), nil
}

func (g *Game) validate(guess string) error {
	if !isAlpha(guess) {
		return errs.ErrGuessNotAlpha
	}
	if slices.Contains(g.PreviousGuesses, guess) {
		return errs.ErrGuessRepeated
	}
	if utf8.RuneCountInString(guess) > utf8.RuneCountInString(g.Target) {
		return errs.ErrGuessTooLong
	}
	return nil
}

func (g *Game) reveal(letter rune) {
	state := []rune(g.CurrentWordState)
	for i, r := range []rune(g.Target) {
		if r == letter {
			state[i] = letter
		}
	}
	g.CurrentWordState = string(state)
}

func (g *Game) record(guess, msg string) MoveResult {
	g.History = append(g.History, HistoryEntry{Guess: guess, Result: msg})
	return MoveResult{Message: msg}
}

func (g *Game) finish(status Status, msg string) MoveResult {
	g.History = append(g.History, HistoryEntry{Guess: g.PreviousGuesses[len(g.PreviousGuesses)-1], Result: msg})
	g.Status = status
	g.GameOver = true
	return MoveResult{Message: msg, Finished: true}
}

// isAlpha reports whether s is a non-empty run of letters.
func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
