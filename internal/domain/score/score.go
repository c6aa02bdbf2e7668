package score

import "time"

const DateLayout = "2006-01-02"

type Score struct {
	ID       string    `json:"id" bson:"_id"`
	UserID   string    `json:"user_id" bson:"user_id"`
	UserName string    `json:"user_name" bson:"user_name"`
	Date     time.Time `json:"date" bson:"date"`
	Won      bool      `json:"won" bson:"won"`
	Guesses  int       `json:"guesses" bson:"guesses"`
}

type ScoreForm struct {
	UserName string `json:"user_name"`
	Date     string `json:"date"`
	Won      bool   `json:"won"`
	Guesses  int    `json:"guesses"`
}

type ScoreForms struct {
	Items []ScoreForm `json:"items"`
}

func (s Score) ToForm() ScoreForm {
	return ScoreForm{
		UserName: s.UserName,
		Date:     s.Date.Format(DateLayout),
		Won:      s.Won,
		Guesses:  s.Guesses,
	}
}

func ToForms(scores []Score) ScoreForms {
	forms := ScoreForms{Items: make([]ScoreForm, 0, len(scores))}
	for _, s := range scores {
		forms.Items = append(forms.Items, s.ToForm())
	}
	return forms
}

// Day truncates t to its calendar date in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
