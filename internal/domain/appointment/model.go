package appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/validation"
)

// Appointment statuses.
const (
	StatusScheduled = "Scheduled"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
	StatusNoShow    = "NoShow"
)

var validStatuses = map[string]bool{
	StatusScheduled: true,
	StatusCompleted: true,
	StatusCancelled: true,
	StatusNoShow:    true,
}

// Appointment maps to the appointments table.
type Appointment struct {
	ID        uuid.UUID `db:"id" json:"id"`
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`
	DoctorID  uuid.UUID `db:"doctor_id" json:"doctor_id"`
	StartTime time.Time `db:"start_time" json:"start_time"`
	EndTime   time.Time `db:"end_time" json:"end_time"`
	Reason    string    `db:"reason" json:"reason"`
	Status    string    `db:"status" json:"status"`
	Notes     *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Validate applies the field rules for an appointment record.
func (a *Appointment) Validate() *validation.Outcome {
	out := validation.NewOutcome()
	if a.PatientID == uuid.Nil {
		out.Add("patient_id", "Patient is required.")
	}
	if a.DoctorID == uuid.Nil {
		out.Add("doctor_id", "Doctor is required.")
	}
	if a.StartTime.IsZero() {
		out.Add("start_time", "Start time is required.")
	}
	if a.EndTime.IsZero() {
		out.Add("end_time", "End time is required.")
	}
	out.Require("reason", "Reason", a.Reason)
	out.Limit("reason", "Reason", a.Reason, 200)
	if !validStatuses[a.Status] {
		out.Add("status", "Status is not a recognized value.")
	}
	if a.Notes != nil {
		out.Limit("notes", "Notes", *a.Notes, 400)
	}
	return out
}
