package domain

import "time"

// Preference holds the per-client display settings of the site.
type Preference struct {
	ClientID  string    `db:"client_id" json:"client_id"`
	DarkMode  bool      `db:"dark_mode" json:"dark_mode"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type Subscriber struct {
	ID        int64     `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
