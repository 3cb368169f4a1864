// Package profile owns persisted player identities and their progress
// counters. The whole collection lives in one JSON document replaced
// atomically on every mutation.
package profile

import "time"

const (
	// MaxNicknameLen bounds nickname length in characters.
	MaxNicknameLen = 20
	// MaxProfiles caps how many profiles the select screen offers.
	MaxProfiles = 5
)

// Profile is one player identity. ID and CreatedAt never change after
// creation; ids are not reused even after the profile is deleted.
type Profile struct {
	ID            int64     `json:"id"`
	Nickname      string    `json:"nickname"`
	Level         int       `json:"level"`
	MatchesPlayed int       `json:"matches_played"`
	GamesWon      int       `json:"games_won"`
	GamesLost     int       `json:"games_lost"`
	GamesDrawn    int       `json:"games_drawn"`
	CreatedAt     time.Time `json:"created_at"`
	LastPlayedAt  time.Time `json:"last_played"`
}

// WinRate returns the percentage of played matches won.
func (p Profile) WinRate() float64 {
	if p.MatchesPlayed == 0 {
		return 0
	}
	return float64(p.GamesWon) / float64(p.MatchesPlayed) * 100
}

// ProgressUpdate carries a partial update of progress counters. Nil
// pointers mean "leave unchanged". Values are applied by the store,
// which only accepts non-negative counters.
type ProgressUpdate struct {
	Level         *int
	MatchesPlayed *int
	GamesWon      *int
	GamesLost     *int
	GamesDrawn    *int
}
