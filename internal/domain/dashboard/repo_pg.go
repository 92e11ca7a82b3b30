package dashboard

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) count(ctx context.Context, query string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, query).Scan(&n)
	return n, err
}

func (r *repoPG) CountDepartments(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM departments`)
}

func (r *repoPG) CountDoctors(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM doctors`)
}

func (r *repoPG) CountPatients(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM patients`)
}

func (r *repoPG) CountAppointments(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM appointments`)
}

func (r *repoPG) CountUnpaidBills(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM bills WHERE NOT is_paid`)
}

func (r *repoPG) ListUpcoming(ctx context.Context, from time.Time, limit int) ([]*UpcomingAppointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.start_time, a.end_time, a.status, a.reason,
			p.first_name || ' ' || p.last_name,
			d.first_name || ' ' || d.last_name
		FROM appointments a
		JOIN patients p ON p.id = a.patient_id
		JOIN doctors d ON d.id = a.doctor_id
		WHERE a.start_time >= $1
		ORDER BY a.start_time ASC
		LIMIT $2`, from, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*UpcomingAppointment
	for rows.Next() {
		var u UpcomingAppointment
		if err := rows.Scan(&u.ID, &u.StartTime, &u.EndTime, &u.Status, &u.Reason,
			&u.PatientName, &u.DoctorName); err != nil {
			return nil, err
		}
		items = append(items, &u)
	}
	return items, rows.Err()
}
