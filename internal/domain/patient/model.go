package patient

import (
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/validation"
)

// Patient maps to the patients table.
type Patient struct {
	ID                    uuid.UUID `db:"id" json:"id"`
	FirstName             string    `db:"first_name" json:"first_name"`
	LastName              string    `db:"last_name" json:"last_name"`
	DateOfBirth           time.Time `db:"date_of_birth" json:"date_of_birth"`
	Gender                string    `db:"gender" json:"gender"`
	Phone                 *string   `db:"phone" json:"phone,omitempty"`
	Email                 *string   `db:"email" json:"email,omitempty"`
	Address               *string   `db:"address" json:"address,omitempty"`
	EmergencyContactName  *string   `db:"emergency_contact_name" json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone *string   `db:"emergency_contact_phone" json:"emergency_contact_phone,omitempty"`
	CreatedAt             time.Time `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time `db:"updated_at" json:"updated_at"`
}

// FullName returns the patient's display name.
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Validate applies the field rules for a patient record.
func (p *Patient) Validate() *validation.Outcome {
	out := validation.NewOutcome()
	out.Require("first_name", "First name", p.FirstName)
	out.Limit("first_name", "First name", p.FirstName, 80)
	out.Require("last_name", "Last name", p.LastName)
	out.Limit("last_name", "Last name", p.LastName, 80)
	if p.DateOfBirth.IsZero() {
		out.Add("date_of_birth", "Date of birth is required.")
	}
	out.Limit("gender", "Gender", p.Gender, 10)
	if p.Phone != nil {
		out.Phone("phone", "Phone", *p.Phone)
		out.Limit("phone", "Phone", *p.Phone, 20)
	}
	if p.Email != nil {
		out.Email("email", "Email", *p.Email)
		out.Limit("email", "Email", *p.Email, 120)
	}
	if p.Address != nil {
		out.Limit("address", "Address", *p.Address, 250)
	}
	if p.EmergencyContactName != nil {
		out.Limit("emergency_contact_name", "Emergency contact name", *p.EmergencyContactName, 120)
	}
	if p.EmergencyContactPhone != nil {
		out.Phone("emergency_contact_phone", "Emergency contact phone", *p.EmergencyContactPhone)
		out.Limit("emergency_contact_phone", "Emergency contact phone", *p.EmergencyContactPhone, 20)
	}
	return out
}
