package domain

import "time"

// Session is one viewer's cached generation. The fleet is produced once
// when the session opens and read many times afterwards.
type Session struct {
	ID        string
	Seed      uint64
	Count     int
	CreatedAt time.Time
	Fleet     *Fleet
}
