package account

import (
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/validation"
)

// User maps to the users table. The password hash never leaves the server.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	FullName     string    `db:"full_name" json:"full_name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Registration is the sign-up form.
type Registration struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate applies the field rules for a registration, password policy
// excluded (the service checks that against the configured policy).
func (r *Registration) Validate() *validation.Outcome {
	out := validation.NewOutcome()
	out.Require("full_name", "Full name", r.FullName)
	out.Limit("full_name", "Full name", r.FullName, 120)
	out.Require("email", "Email", r.Email)
	out.Email("email", "Email", r.Email)
	out.Limit("email", "Email", r.Email, 120)
	return out
}
