package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPresent = "PRESENT"
	StatusLate    = "LATE"

	SourceManual = "MANUAL"
)

type Attendance struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID     string     `gorm:"column:employee_id;type:varchar(64);not null;uniqueIndex:uq_attendance_employee_date"`
	AttendanceDate string     `gorm:"column:attendance_date;type:varchar(10);not null;uniqueIndex:uq_attendance_employee_date"`
	ClockIn        time.Time  `gorm:"column:clock_in;not null"`
	ClockOut       *time.Time `gorm:"column:clock_out"`
	Latitude       *float64   `gorm:"column:latitude"`
	Longitude      *float64   `gorm:"column:longitude"`
	Status         string     `gorm:"column:status;type:varchar(20);not null"`
	Source         string     `gorm:"column:source;type:varchar(30);not null"`
	Notes          *string    `gorm:"column:notes;type:text"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (Attendance) TableName() string {
	return "attendances"
}
