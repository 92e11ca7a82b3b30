package department

import (
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/validation"
)

// Department maps to the departments table.
type Department struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Location  *string   `db:"location" json:"location,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Validate applies the field rules for a department record.
func (d *Department) Validate() *validation.Outcome {
	out := validation.NewOutcome()
	out.Require("name", "Name", d.Name)
	out.Limit("name", "Name", d.Name, 100)
	if d.Location != nil {
		out.Limit("location", "Location", *d.Location, 150)
	}
	return out
}
