package seed

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/domain/account"
	"github.com/hms/hms/internal/domain/appointment"
	"github.com/hms/hms/internal/domain/billing"
	"github.com/hms/hms/internal/domain/department"
	"github.com/hms/hms/internal/domain/doctor"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/platform/db"
)

// -- In-memory stores --

type memUsers struct{ users map[uuid.UUID]*account.User }

func (m *memUsers) Create(_ context.Context, u *account.User) error {
	u.ID = uuid.New()
	m.users[u.ID] = u
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id uuid.UUID) (*account.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*account.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, db.ErrNotFound
}

type memDepartments struct{ items []*department.Department }

func (m *memDepartments) Create(_ context.Context, d *department.Department) error {
	d.ID = uuid.New()
	m.items = append(m.items, d)
	return nil
}

func (m *memDepartments) GetByID(_ context.Context, id uuid.UUID) (*department.Department, error) {
	for _, d := range m.items {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, db.ErrNotFound
}

func (m *memDepartments) Update(_ context.Context, _ *department.Department) error { return nil }
func (m *memDepartments) Delete(_ context.Context, _ uuid.UUID) error              { return nil }

func (m *memDepartments) List(_ context.Context, limit, offset int) ([]*department.Department, int, error) {
	return m.items, len(m.items), nil
}

type memDoctors struct{ items []*doctor.Doctor }

func (m *memDoctors) Create(_ context.Context, d *doctor.Doctor) error {
	d.ID = uuid.New()
	m.items = append(m.items, d)
	return nil
}

func (m *memDoctors) GetByID(_ context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	for _, d := range m.items {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, db.ErrNotFound
}

func (m *memDoctors) Update(_ context.Context, _ *doctor.Doctor) error { return nil }
func (m *memDoctors) Delete(_ context.Context, _ uuid.UUID) error      { return nil }

func (m *memDoctors) List(_ context.Context, limit, offset int) ([]*doctor.Doctor, int, error) {
	return m.items, len(m.items), nil
}

func (m *memDoctors) ListByDepartment(_ context.Context, _ uuid.UUID, limit, offset int) ([]*doctor.Doctor, int, error) {
	return m.items, len(m.items), nil
}

type memPatients struct{ items []*patient.Patient }

func (m *memPatients) Create(_ context.Context, p *patient.Patient) error {
	p.ID = uuid.New()
	m.items = append(m.items, p)
	return nil
}

func (m *memPatients) GetByID(_ context.Context, id uuid.UUID) (*patient.Patient, error) {
	for _, p := range m.items {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, db.ErrNotFound
}

func (m *memPatients) Update(_ context.Context, _ *patient.Patient) error { return nil }
func (m *memPatients) Delete(_ context.Context, _ uuid.UUID) error        { return nil }

func (m *memPatients) List(_ context.Context, limit, offset int) ([]*patient.Patient, int, error) {
	return m.items, len(m.items), nil
}

type memAppointments struct{ items []*appointment.Appointment }

func (m *memAppointments) Create(_ context.Context, a *appointment.Appointment) error {
	a.ID = uuid.New()
	m.items = append(m.items, a)
	return nil
}

func (m *memAppointments) GetByID(_ context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	for _, a := range m.items {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, db.ErrNotFound
}

func (m *memAppointments) Update(_ context.Context, _ *appointment.Appointment) error { return nil }
func (m *memAppointments) Delete(_ context.Context, _ uuid.UUID) error                { return nil }

func (m *memAppointments) List(_ context.Context, limit, offset int) ([]*appointment.Appointment, int, error) {
	return m.items, len(m.items), nil
}

func (m *memAppointments) ListByDoctor(_ context.Context, _ uuid.UUID, limit, offset int) ([]*appointment.Appointment, int, error) {
	return m.items, len(m.items), nil
}

func (m *memAppointments) ListByPatient(_ context.Context, _ uuid.UUID, limit, offset int) ([]*appointment.Appointment, int, error) {
	return m.items, len(m.items), nil
}

func (m *memAppointments) ListForDoctor(_ context.Context, _ uuid.UUID) ([]*appointment.Appointment, error) {
	return m.items, nil
}

type memBills struct{ items []*billing.Bill }

func (m *memBills) Create(_ context.Context, b *billing.Bill) error {
	b.ID = uuid.New()
	m.items = append(m.items, b)
	return nil
}

func (m *memBills) GetByID(_ context.Context, id uuid.UUID) (*billing.Bill, error) {
	for _, b := range m.items {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, db.ErrNotFound
}

func (m *memBills) Update(_ context.Context, _ *billing.Bill) error { return nil }
func (m *memBills) Delete(_ context.Context, _ uuid.UUID) error     { return nil }

func (m *memBills) List(_ context.Context, limit, offset int) ([]*billing.Bill, int, error) {
	return m.items, len(m.items), nil
}

func (m *memBills) ListByPatient(_ context.Context, _ uuid.UUID, limit, offset int) ([]*billing.Bill, int, error) {
	return m.items, len(m.items), nil
}

func (m *memBills) ListUnpaid(_ context.Context, limit, offset int) ([]*billing.Bill, int, error) {
	return m.items, len(m.items), nil
}

func newTestStores() (Stores, *memDepartments, *memDoctors, *memPatients, *memAppointments, *memBills, *memUsers) {
	depts := &memDepartments{}
	docs := &memDoctors{}
	pats := &memPatients{}
	appts := &memAppointments{}
	bills := &memBills{}
	users := &memUsers{users: make(map[uuid.UUID]*account.User)}
	st := Stores{
		Users:        users,
		Departments:  depts,
		Doctors:      docs,
		Patients:     pats,
		Appointments: appts,
		Bills:        bills,
	}
	return st, depts, docs, pats, appts, bills, users
}

// -- Tests --

func TestRunSeedsEmptyStores(t *testing.T) {
	st, depts, docs, pats, appts, bills, users := newTestStores()

	if err := Run(context.Background(), zerolog.Nop(), st); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(depts.items) != 4 {
		t.Errorf("expected 4 departments, got %d", len(depts.items))
	}
	if len(docs.items) != 2 {
		t.Errorf("expected 2 doctors, got %d", len(docs.items))
	}
	if len(pats.items) != 2 {
		t.Errorf("expected 2 patients, got %d", len(pats.items))
	}
	if len(appts.items) != 1 {
		t.Errorf("expected 1 appointment, got %d", len(appts.items))
	}
	if len(bills.items) != 1 {
		t.Errorf("expected 1 bill, got %d", len(bills.items))
	}
	if len(users.users) != 1 {
		t.Errorf("expected 1 user, got %d", len(users.users))
	}

	bill := bills.items[0]
	if bill.Amount != 250.00 || bill.IsPaid {
		t.Errorf("expected unpaid 250.00 bill, got %+v", bill)
	}
	if bill.AppointmentID == nil || *bill.AppointmentID != appts.items[0].ID {
		t.Error("expected bill to reference the seeded appointment")
	}
	if bill.PatientID != appts.items[0].PatientID {
		t.Error("expected bill to belong to the appointment's patient")
	}

	appt := appts.items[0]
	if appt.EndTime.Sub(appt.StartTime) != 30*time.Minute {
		t.Errorf("expected a 30 minute appointment, got %v", appt.EndTime.Sub(appt.StartTime))
	}
}

func TestRunIsIdempotent(t *testing.T) {
	st, depts, docs, pats, appts, bills, users := newTestStores()

	for i := 0; i < 2; i++ {
		if err := Run(context.Background(), zerolog.Nop(), st); err != nil {
			t.Fatalf("Run %d failed: %v", i, err)
		}
	}

	if len(depts.items) != 4 || len(docs.items) != 2 || len(pats.items) != 2 ||
		len(appts.items) != 1 || len(bills.items) != 1 || len(users.users) != 1 {
		t.Error("second run must not duplicate baseline data")
	}
}
