// Package seed populates an empty database with a small baseline dataset
// so a fresh install is immediately usable. Every table is gated on its own
// existing contents, so running it again is a no-op.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/domain/account"
	"github.com/hms/hms/internal/domain/appointment"
	"github.com/hms/hms/internal/domain/billing"
	"github.com/hms/hms/internal/domain/department"
	"github.com/hms/hms/internal/domain/doctor"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/platform/auth"
	"github.com/hms/hms/internal/platform/db"
)

// AdminEmail is the baseline administrator account.
const AdminEmail = "admin@hospital.local"

const adminPassword = "Admin#12345"

// Stores holds the repositories the seeder writes through.
type Stores struct {
	Users        account.Repository
	Departments  department.Repository
	Doctors      doctor.Repository
	Patients     patient.Repository
	Appointments appointment.Repository
	Bills        billing.Repository
}

// Run seeds each empty table in dependency order.
func Run(ctx context.Context, logger zerolog.Logger, st Stores) error {
	steps := []struct {
		name string
		run  func(context.Context, Stores) error
	}{
		{"departments", seedDepartments},
		{"doctors", seedDoctors},
		{"patients", seedPatients},
		{"appointments", seedAppointments},
		{"bills", seedBills},
		{"admin user", seedAdmin},
	}
	for _, step := range steps {
		if err := step.run(ctx, st); err != nil {
			return fmt.Errorf("seeding %s: %w", step.name, err)
		}
		logger.Debug().Str("step", step.name).Msg("seed step done")
	}
	logger.Info().Msg("baseline data seeded")
	return nil
}

func seedDepartments(ctx context.Context, st Stores) error {
	if _, total, err := st.Departments.List(ctx, 1, 0); err != nil {
		return err
	} else if total > 0 {
		return nil
	}
	for _, d := range []struct{ name, location string }{
		{"Cardiology", "Block A - Floor 2"},
		{"Neurology", "Block B - Floor 1"},
		{"Orthopedics", "Block A - Floor 3"},
		{"Pediatrics", "Block C - Floor 1"},
	} {
		loc := d.location
		if err := st.Departments.Create(ctx, &department.Department{Name: d.name, Location: &loc}); err != nil {
			return err
		}
	}
	return nil
}

func seedDoctors(ctx context.Context, st Stores) error {
	if _, total, err := st.Doctors.List(ctx, 1, 0); err != nil {
		return err
	} else if total > 0 {
		return nil
	}
	depts, _, err := st.Departments.List(ctx, 100, 0)
	if err != nil {
		return err
	}
	byName := make(map[string]*department.Department, len(depts))
	for _, d := range depts {
		byName[d.Name] = d
	}

	for _, d := range []struct {
		first, last, specialization, email, phone, dept string
	}{
		{"Ayesha", "Khan", "Cardiologist", "ayesha.khan@hospital.local", "+1-555-0101", "Cardiology"},
		{"Daniel", "Nguyen", "Neurologist", "daniel.nguyen@hospital.local", "+1-555-0102", "Neurology"},
	} {
		dept, ok := byName[d.dept]
		if !ok {
			return fmt.Errorf("department %q missing", d.dept)
		}
		email, phone := d.email, d.phone
		if err := st.Doctors.Create(ctx, &doctor.Doctor{
			FirstName:      d.first,
			LastName:       d.last,
			Specialization: d.specialization,
			Email:          &email,
			Phone:          &phone,
			DepartmentID:   dept.ID,
		}); err != nil {
			return err
		}
	}
	return nil
}

func seedPatients(ctx context.Context, st Stores) error {
	if _, total, err := st.Patients.List(ctx, 1, 0); err != nil {
		return err
	} else if total > 0 {
		return nil
	}
	for _, p := range []struct {
		first, last, gender string
		born                time.Time
	}{
		{"Noah", "Ali", "Male", time.Date(1990, 5, 14, 0, 0, 0, 0, time.UTC)},
		{"Zara", "Ibrahim", "Female", time.Date(1985, 11, 2, 0, 0, 0, 0, time.UTC)},
	} {
		if err := st.Patients.Create(ctx, &patient.Patient{
			FirstName:   p.first,
			LastName:    p.last,
			DateOfBirth: p.born,
			Gender:      p.gender,
		}); err != nil {
			return err
		}
	}
	return nil
}

func seedAppointments(ctx context.Context, st Stores) error {
	if _, total, err := st.Appointments.List(ctx, 1, 0); err != nil {
		return err
	} else if total > 0 {
		return nil
	}
	doctors, _, err := st.Doctors.List(ctx, 1, 0)
	if err != nil {
		return err
	}
	patients, _, err := st.Patients.List(ctx, 1, 0)
	if err != nil {
		return err
	}
	if len(doctors) == 0 || len(patients) == 0 {
		return nil
	}

	start := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Minute)
	return st.Appointments.Create(ctx, &appointment.Appointment{
		PatientID: patients[0].ID,
		DoctorID:  doctors[0].ID,
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
		Reason:    "Initial consultation",
		Status:    appointment.StatusScheduled,
	})
}

func seedBills(ctx context.Context, st Stores) error {
	if _, total, err := st.Bills.List(ctx, 1, 0); err != nil {
		return err
	} else if total > 0 {
		return nil
	}
	appts, _, err := st.Appointments.List(ctx, 1, 0)
	if err != nil {
		return err
	}
	if len(appts) == 0 {
		return nil
	}

	issued := time.Now().UTC().Truncate(24 * time.Hour)
	desc := "Consultation fee"
	apptID := appts[0].ID
	return st.Bills.Create(ctx, &billing.Bill{
		PatientID:      appts[0].PatientID,
		AppointmentID:  &apptID,
		Amount:         250.00,
		IssuedOn:       issued,
		PaymentDueDate: issued.AddDate(0, 0, billing.DueDays),
		Description:    &desc,
	})
}

func seedAdmin(ctx context.Context, st Stores) error {
	_, err := st.Users.GetByEmail(ctx, AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return err
	}
	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return err
	}
	return st.Users.Create(ctx, &account.User{
		FullName:     "Hospital Administrator",
		Email:        AdminEmail,
		PasswordHash: hash,
	})
}
