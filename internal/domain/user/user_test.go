package user

import "testing"

func TestRecordResult(t *testing.T) {
	tests := []struct {
		name        string
		results     []bool
		wantWins    int
		wantLosses  int
		wantPercent float64
	}{
		{name: "no games", results: nil, wantPercent: 0},
		{name: "single win", results: []bool{true}, wantWins: 1, wantPercent: 1},
		{name: "single loss", results: []bool{false}, wantLosses: 1, wantPercent: 0},
		{name: "mixed", results: []bool{true, false, true, true}, wantWins: 3, wantLosses: 1, wantPercent: 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := User{Name: "alice"}
			for _, won := range tt.results {
				u.RecordResult(won)
				if want := WinningPercent(u.Wins, u.Losses); u.WinningPercent != want {
					t.Fatalf("WinningPercent = %v after %d games, want %v", u.WinningPercent, u.Wins+u.Losses, want)
				}
			}
			if u.Wins != tt.wantWins || u.Losses != tt.wantLosses {
				t.Errorf("wins/losses = %d/%d, want %d/%d", u.Wins, u.Losses, tt.wantWins, tt.wantLosses)
			}
			if u.WinningPercent != tt.wantPercent {
				t.Errorf("WinningPercent = %v, want %v", u.WinningPercent, tt.wantPercent)
			}
		})
	}
}
