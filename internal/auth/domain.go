package auth

import "time"

// Account is a self-service customer account created through signup.
type Account struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}
