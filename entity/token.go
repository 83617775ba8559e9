package entity

import "time"

// Token is an opaque bearer credential issued at login and resolved back to
// a principal by the authenticate middleware.
type Token struct {
	Token     string    `json:"token" bson:"_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	ExpiresAt time.Time `json:"expires_at" bson:"expires_at"`
}

func (t *Token) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
