package billing

import (
	"context"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/validation"
)

// AppointmentRef is the slice of an appointment the billing domain needs to
// judge ownership.
type AppointmentRef struct {
	ID        uuid.UUID
	PatientID uuid.UUID
}

// AppointmentDirectory resolves appointment ids for ownership checks. The
// concrete implementation is an adapter over the appointment service, wired
// in main.
type AppointmentDirectory interface {
	Find(ctx context.Context, id uuid.UUID) (*AppointmentRef, error)
}

// CheckOwnership decides whether a bill may reference the resolved
// appointment. resolved is nil when the bill's appointment id did not
// resolve; a bill without an appointment reference is trivially valid.
func CheckOwnership(b *Bill, resolved *AppointmentRef) *validation.Outcome {
	out := validation.NewOutcome()
	if b.AppointmentID == nil {
		return out
	}
	if resolved == nil {
		out.Add("appointment_id", "Selected appointment does not exist.")
		return out
	}
	if resolved.PatientID != b.PatientID {
		out.Add("appointment_id", "Selected appointment must belong to the selected patient.")
	}
	return out
}
