package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/validation"
)

// Amount bounds for a single bill.
const (
	MinAmount = 0.01
	MaxAmount = 1000000
)

// Bill maps to the bills table. Amount is stored as NUMERIC(12,2);
// callers always see a two-decimal value.
type Bill struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	PatientID      uuid.UUID  `db:"patient_id" json:"patient_id"`
	AppointmentID  *uuid.UUID `db:"appointment_id" json:"appointment_id,omitempty"`
	Amount         float64    `db:"amount" json:"amount"`
	IssuedOn       time.Time  `db:"issued_on" json:"issued_on"`
	PaymentDueDate time.Time  `db:"payment_due_date" json:"payment_due_date"`
	IsPaid         bool       `db:"is_paid" json:"is_paid"`
	Description    *string    `db:"description" json:"description,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// Validate applies the field rules for a bill record.
func (b *Bill) Validate() *validation.Outcome {
	out := validation.NewOutcome()
	if b.PatientID == uuid.Nil {
		out.Add("patient_id", "Patient is required.")
	}
	out.Range("amount", "Amount", b.Amount, MinAmount, MaxAmount)
	if b.Description != nil {
		out.Limit("description", "Description", *b.Description, 200)
	}
	return out
}
