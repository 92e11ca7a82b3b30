package dashboard

import (
	"context"
	"fmt"
	"time"
)

type Service struct {
	repo          Repository
	upcomingLimit int
	now           func() time.Time
}

func NewService(repo Repository, upcomingLimit int) *Service {
	return &Service{repo: repo, upcomingLimit: upcomingLimit, now: time.Now}
}

// Summarize gathers the landing-page aggregate. Each count is an
// independent query; a failure of any of them fails the whole summary.
func (s *Service) Summarize(ctx context.Context) (*Summary, error) {
	var (
		sum Summary
		err error
	)
	counts := []struct {
		name string
		dst  *int
		load func(context.Context) (int, error)
	}{
		{"departments", &sum.Departments, s.repo.CountDepartments},
		{"doctors", &sum.Doctors, s.repo.CountDoctors},
		{"patients", &sum.Patients, s.repo.CountPatients},
		{"appointments", &sum.Appointments, s.repo.CountAppointments},
		{"unpaid bills", &sum.UnpaidBills, s.repo.CountUnpaidBills},
	}
	for _, c := range counts {
		if *c.dst, err = c.load(ctx); err != nil {
			return nil, fmt.Errorf("counting %s: %w", c.name, err)
		}
	}

	sum.Upcoming, err = s.repo.ListUpcoming(ctx, s.now(), s.upcomingLimit)
	if err != nil {
		return nil, fmt.Errorf("listing upcoming appointments: %w", err)
	}
	if sum.Upcoming == nil {
		sum.Upcoming = []*UpcomingAppointment{}
	}
	return &sum, nil
}
