package model

import "time"

// RateLimit : счетчик попыток клиента в текущем окне
type RateLimit struct {
	ClientKey string    `db:"client_key"`
	Count     int       `db:"count"`
	ResetAt   time.Time `db:"reset_at"`
}

type RateLimitResult struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}
