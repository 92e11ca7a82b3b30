package dashboard

import (
	"context"
	"time"
)

type Repository interface {
	CountDepartments(ctx context.Context) (int, error)
	CountDoctors(ctx context.Context) (int, error)
	CountPatients(ctx context.Context) (int, error)
	CountAppointments(ctx context.Context) (int, error)
	CountUnpaidBills(ctx context.Context) (int, error)
	ListUpcoming(ctx context.Context, from time.Time, limit int) ([]*UpcomingAppointment, error)
}
