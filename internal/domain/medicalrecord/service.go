package medicalrecord

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/db"
	"github.com/hms/hms/internal/platform/validation"
)

type Service struct {
	records Repository
	now     func() time.Time
}

func NewService(records Repository) *Service {
	return &Service{records: records, now: time.Now}
}

// Create validates and persists a new medical record. The recorded date
// defaults to today when absent.
func (s *Service) Create(ctx context.Context, m *MedicalRecord) (*validation.Outcome, error) {
	return s.save(ctx, m, s.records.Create)
}

func (s *Service) Update(ctx context.Context, m *MedicalRecord) (*validation.Outcome, error) {
	return s.save(ctx, m, s.records.Update)
}

func (s *Service) save(ctx context.Context, m *MedicalRecord, persist func(context.Context, *MedicalRecord) error) (*validation.Outcome, error) {
	if m.RecordedOn.IsZero() {
		now := s.now().UTC()
		m.RecordedOn = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	out := m.Validate()
	if !out.Ok() {
		return out, nil
	}
	if err := persist(ctx, m); err != nil {
		if errors.Is(err, db.ErrForeignKey) {
			out.Add("patient_id", "Selected patient does not exist.")
			return out, nil
		}
		return nil, err
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*MedicalRecord, error) {
	return s.records.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.records.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*MedicalRecord, int, error) {
	return s.records.List(ctx, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*MedicalRecord, int, error) {
	return s.records.ListByPatient(ctx, patientID, limit, offset)
}
