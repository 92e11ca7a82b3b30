package dashboard

import (
	"time"

	"github.com/google/uuid"
)

// Summary is the landing-page aggregate: entity counts plus the next
// appointments on the calendar. The counts are independent queries, not a
// consistent snapshot.
type Summary struct {
	Departments  int                    `json:"departments"`
	Doctors      int                    `json:"doctors"`
	Patients     int                    `json:"patients"`
	Appointments int                    `json:"appointments"`
	UnpaidBills  int                    `json:"unpaid_bills"`
	Upcoming     []*UpcomingAppointment `json:"upcoming"`
}

// UpcomingAppointment is an appointment row with the patient and doctor
// names already attached for display.
type UpcomingAppointment struct {
	ID          uuid.UUID `json:"id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	Reason      string    `json:"reason"`
	PatientName string    `json:"patient_name"`
	DoctorName  string    `json:"doctor_name"`
}
