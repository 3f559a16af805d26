package playerbook

import "time"

// Entry is one known player in the book.
type Entry struct {
	ID            int64
	SteamID       string
	Name          string
	AvatarURL     string
	AddedAt       time.Time
	LastCheckedAt *time.Time
}
