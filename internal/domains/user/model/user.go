package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

func (u *User) String() string {
	return u.Username
}

// Session là kết quả của một lần login thành công
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *User
}
