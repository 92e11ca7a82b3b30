package appointment

import (
	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/validation"
)

// CheckSchedule decides whether a candidate appointment fits the doctor's
// calendar. existing must hold the doctor's current appointments; excludeID
// names the record being edited so it does not conflict with itself (pass
// uuid.Nil on create). Appointments of every status occupy their window.
//
// The comparison is half-open: an appointment ending exactly when another
// starts does not overlap it.
func CheckSchedule(candidate *Appointment, existing []*Appointment, excludeID uuid.UUID) *validation.Outcome {
	out := validation.NewOutcome()
	if !candidate.EndTime.After(candidate.StartTime) {
		out.Add("end_time", "End time must be after start time.")
	}
	for _, other := range existing {
		if other.ID == excludeID {
			continue
		}
		if other.DoctorID != candidate.DoctorID {
			continue
		}
		if other.StartTime.Before(candidate.EndTime) && candidate.StartTime.Before(other.EndTime) {
			out.Add("start_time", "Doctor already has an appointment in this time window.")
			break
		}
	}
	return out
}
