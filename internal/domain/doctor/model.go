package doctor

import (
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/validation"
)

// Doctor maps to the doctors table.
type Doctor struct {
	ID             uuid.UUID `db:"id" json:"id"`
	FirstName      string    `db:"first_name" json:"first_name"`
	LastName       string    `db:"last_name" json:"last_name"`
	Specialization string    `db:"specialization" json:"specialization"`
	Email          *string   `db:"email" json:"email,omitempty"`
	Phone          *string   `db:"phone" json:"phone,omitempty"`
	DepartmentID   uuid.UUID `db:"department_id" json:"department_id"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// FullName returns the doctor's display name.
func (d *Doctor) FullName() string {
	return d.FirstName + " " + d.LastName
}

// Validate applies the field rules for a doctor record.
func (d *Doctor) Validate() *validation.Outcome {
	out := validation.NewOutcome()
	out.Require("first_name", "First name", d.FirstName)
	out.Limit("first_name", "First name", d.FirstName, 80)
	out.Require("last_name", "Last name", d.LastName)
	out.Limit("last_name", "Last name", d.LastName, 80)
	out.Require("specialization", "Specialization", d.Specialization)
	out.Limit("specialization", "Specialization", d.Specialization, 100)
	if d.Email != nil {
		out.Email("email", "Email", *d.Email)
		out.Limit("email", "Email", *d.Email, 120)
	}
	if d.Phone != nil {
		out.Phone("phone", "Phone", *d.Phone)
		out.Limit("phone", "Phone", *d.Phone, 20)
	}
	if d.DepartmentID == uuid.Nil {
		out.Add("department_id", "Department is required.")
	}
	return out
}
