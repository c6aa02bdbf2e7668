package user

import (
	"fmt"
	"time"
)

type User struct {
	ID             string    `json:"id" bson:"_id"`
	Name           string    `json:"user_name" bson:"name"`
	Email          string    `json:"email,omitempty" bson:"email,omitempty"`
	Wins           int       `json:"wins" bson:"wins"`
	Losses         int       `json:"losses" bson:"losses"`
	WinningPercent float64   `json:"winning_percent" bson:"winning_percent"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}

// RecordResult counts one finished game and recomputes WinningPercent.
func (u *User) RecordResult(won bool) {
	if won {
		u.Wins++
	} else {
		u.Losses++
	}
	u.WinningPercent = WinningPercent(u.Wins, u.Losses)
}

// WinningPercent is wins/(wins+losses), or 0 before the first decided game.
func WinningPercent(wins, losses int) float64 {
	total := wins + losses
	if total == 0 {
		return 0
	}
	return float64(wins) / float64(total)
}

type CreateUserRequest struct {
	UserName string `json:"user_name"`
	Email    string `json:"email"`
}

type StringMessage struct {
	Message string `json:"message"`
}

type RankingEntry struct {
	UserName       string  `json:"user_name"`
	WinningPercent float64 `json:"winning_percent"`
}

type RankingResponse struct {
	Items []RankingEntry `json:"items"`
}

func (u User) ToRankingEntry() RankingEntry {
	return RankingEntry{UserName: u.Name, WinningPercent: u.WinningPercent}
}

const msgUserCreated = "User %s created!"

func CreatedMessage(name string) StringMessage {
	return StringMessage{Message: fmt.Sprintf(msgUserCreated, name)}
}
