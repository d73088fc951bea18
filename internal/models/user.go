package models

import "time"

// User is the db row for a staff user.
type User struct {
	UserID       string `db:"user_id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
