package medicalrecord

import (
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/validation"
)

// MedicalRecord maps to the medical_records table.
type MedicalRecord struct {
	ID            uuid.UUID `db:"id" json:"id"`
	PatientID     uuid.UUID `db:"patient_id" json:"patient_id"`
	Diagnosis     string    `db:"diagnosis" json:"diagnosis"`
	TreatmentPlan *string   `db:"treatment_plan" json:"treatment_plan,omitempty"`
	RecordedOn    time.Time `db:"recorded_on" json:"recorded_on"`
	Notes         *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// Validate applies the field rules for a medical record.
func (m *MedicalRecord) Validate() *validation.Outcome {
	out := validation.NewOutcome()
	if m.PatientID == uuid.Nil {
		out.Add("patient_id", "Patient is required.")
	}
	out.Require("diagnosis", "Diagnosis", m.Diagnosis)
	out.Limit("diagnosis", "Diagnosis", m.Diagnosis, 250)
	if m.TreatmentPlan != nil {
		out.Limit("treatment_plan", "Treatment plan", *m.TreatmentPlan, 500)
	}
	if m.Notes != nil {
		out.Limit("notes", "Notes", *m.Notes, 500)
	}
	return out
}
