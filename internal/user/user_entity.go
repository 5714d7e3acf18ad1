package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserName            string
	Email               string `gorm:"uniqueIndex:uq_user_email"`
	PasswordHash        string
	FirstName           string
	LastName            string
	FailedLoginAttempts int
	LockoutEnd          *time.Time
	CreatedOn           time.Time
	ModifiedOn          *time.Time
}

func (User) TableName() string { return "users" }

// PasswordResetToken is a short-lived OTP row; consumed on first successful
// verification.
type PasswordResetToken struct {
	ID        int64 `gorm:"primaryKey"`
	Email     string
	OTP       string `gorm:"column:otp"`
	ExpiresAt time.Time
}

func (PasswordResetToken) TableName() string { return "password_reset_tokens" }
