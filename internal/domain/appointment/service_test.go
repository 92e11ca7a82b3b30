package appointment

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/db"
)

// -- Mock Repository --

type mockRepo struct {
	appts map[uuid.UUID]*Appointment
}

func newMockRepo() *mockRepo {
	return &mockRepo{appts: make(map[uuid.UUID]*Appointment)}
}

func (m *mockRepo) Create(_ context.Context, a *Appointment) error {
	a.ID = uuid.New()
	copied := *a
	m.appts[a.ID] = &copied
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	a, ok := m.appts[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return a, nil
}

func (m *mockRepo) Update(_ context.Context, a *Appointment) error {
	if _, ok := m.appts[a.ID]; !ok {
		return db.ErrNotFound
	}
	copied := *a
	m.appts[a.ID] = &copied
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.appts[id]; !ok {
		return db.ErrNotFound
	}
	delete(m.appts, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Appointment, int, error) {
	var items []*Appointment
	for _, a := range m.appts {
		items = append(items, a)
	}
	return items, len(items), nil
}

func (m *mockRepo) ListByDoctor(_ context.Context, doctorID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	items, err := m.ListForDoctor(nil, doctorID)
	return items, len(items), err
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	var items []*Appointment
	for _, a := range m.appts {
		if a.PatientID == patientID {
			items = append(items, a)
		}
	}
	return items, len(items), nil
}

func (m *mockRepo) ListForDoctor(_ context.Context, doctorID uuid.UUID) ([]*Appointment, error) {
	var items []*Appointment
	for _, a := range m.appts {
		if a.DoctorID == doctorID {
			items = append(items, a)
		}
	}
	return items, nil
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	return NewService(repo), repo
}

// -- Tests --

func TestCreateAppointmentDefaultsStatus(t *testing.T) {
	svc, repo := newTestService()

	a := &Appointment{
		PatientID: uuid.New(),
		DoctorID:  uuid.New(),
		StartTime: at(10, 0),
		EndTime:   at(10, 30),
		Reason:    "Initial consultation",
	}
	out, err := svc.Create(context.Background(), a)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !out.Ok() {
		t.Fatalf("expected valid appointment, got %v", out.FieldErrors)
	}
	if a.Status != StatusScheduled {
		t.Errorf("expected default status %s, got %s", StatusScheduled, a.Status)
	}
	if len(repo.appts) != 1 {
		t.Errorf("expected 1 stored appointment, got %d", len(repo.appts))
	}
}

func TestCreateAppointmentRejectsOverlapWithoutPersisting(t *testing.T) {
	svc, repo := newTestService()
	doctorID := uuid.New()

	first := &Appointment{
		PatientID: uuid.New(),
		DoctorID:  doctorID,
		StartTime: at(10, 0),
		EndTime:   at(10, 30),
		Reason:    "Initial consultation",
	}
	if out, err := svc.Create(context.Background(), first); err != nil || !out.Ok() {
		t.Fatalf("seed create failed: out=%v err=%v", out, err)
	}

	second := &Appointment{
		PatientID: uuid.New(),
		DoctorID:  doctorID,
		StartTime: at(10, 15),
		EndTime:   at(10, 45),
		Reason:    "Follow-up",
	}
	out, err := svc.Create(context.Background(), second)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if out.Ok() {
		t.Fatal("expected overlap rejection")
	}
	if len(repo.appts) != 1 {
		t.Errorf("conflicting appointment must not be persisted, have %d", len(repo.appts))
	}

	third := &Appointment{
		PatientID: uuid.New(),
		DoctorID:  doctorID,
		StartTime: at(10, 30),
		EndTime:   at(11, 0),
		Reason:    "Follow-up",
	}
	out, err = svc.Create(context.Background(), third)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !out.Ok() {
		t.Errorf("back-to-back appointment must be accepted, got %v", out.FieldErrors)
	}
}

func TestCreateAppointmentFieldRules(t *testing.T) {
	svc, repo := newTestService()

	a := &Appointment{Status: "Pending"}
	out, err := svc.Create(context.Background(), a)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	for _, field := range []string{"patient_id", "doctor_id", "start_time", "end_time", "reason", "status"} {
		if len(out.FieldErrors[field]) == 0 {
			t.Errorf("expected failure on %s, got %v", field, out.FieldErrors)
		}
	}
	if len(repo.appts) != 0 {
		t.Error("invalid appointment must not be persisted")
	}
}

func TestCreateAppointmentMergesFieldAndScheduleFailures(t *testing.T) {
	svc, repo := newTestService()

	a := &Appointment{
		PatientID: uuid.New(),
		DoctorID:  uuid.New(),
		StartTime: at(10, 0),
		EndTime:   at(9, 30),
	}
	out, err := svc.Create(context.Background(), a)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(out.FieldErrors["reason"]) == 0 {
		t.Errorf("expected blank reason to fail, got %v", out.FieldErrors)
	}
	if len(out.FieldErrors["end_time"]) == 0 {
		t.Errorf("expected inverted window to fail alongside the field rules, got %v", out.FieldErrors)
	}
	if len(repo.appts) != 0 {
		t.Error("invalid appointment must not be persisted")
	}
}

func TestUpdateAppointmentKeepsOwnSlot(t *testing.T) {
	svc, repo := newTestService()
	doctorID := uuid.New()

	a := &Appointment{
		PatientID: uuid.New(),
		DoctorID:  doctorID,
		StartTime: at(10, 0),
		EndTime:   at(10, 30),
		Reason:    "Initial consultation",
	}
	if out, err := svc.Create(context.Background(), a); err != nil || !out.Ok() {
		t.Fatalf("seed create failed: out=%v err=%v", out, err)
	}

	a.EndTime = at(11, 0)
	a.Status = StatusCompleted
	out, err := svc.Update(context.Background(), a)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !out.Ok() {
		t.Fatalf("expected edit within own window to pass, got %v", out.FieldErrors)
	}
	if got := repo.appts[a.ID]; !got.EndTime.Equal(at(11, 0)) || got.Status != StatusCompleted {
		t.Errorf("expected stored record to change, got %+v", got)
	}
}

func TestUpdateAppointmentConflictsWithOthers(t *testing.T) {
	svc, _ := newTestService()
	doctorID := uuid.New()

	first := &Appointment{
		PatientID: uuid.New(),
		DoctorID:  doctorID,
		StartTime: at(9, 0),
		EndTime:   at(9, 30),
		Reason:    "Checkup",
	}
	second := &Appointment{
		PatientID: uuid.New(),
		DoctorID:  doctorID,
		StartTime: at(10, 0),
		EndTime:   at(10, 30),
		Reason:    "Checkup",
	}
	for _, a := range []*Appointment{first, second} {
		if out, err := svc.Create(context.Background(), a); err != nil || !out.Ok() {
			t.Fatalf("seed create failed: out=%v err=%v", out, err)
		}
	}

	second.StartTime = at(9, 15)
	second.EndTime = at(9, 45)
	out, err := svc.Update(context.Background(), second)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if out.Ok() {
		t.Error("expected edit into another appointment's window to be rejected")
	}
}
