package models

import (
	"time"

	"gorm.io/gorm"
)

// Attendance statuses.
const (
	AttendanceStatusPresent = "Present"
	AttendanceStatusLate    = "Late"
	AttendanceStatusAbsent  = "Absent"
)

// AttendanceDateLayout is the canonical YYYY-MM-DD key for daily records.
const AttendanceDateLayout = "2006-01-02"

// Attendance is one member's record for one calendar day. At most one row
// exists per member and date.
type Attendance struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	MemberID    uint       `json:"member_id" gorm:"uniqueIndex:idx_attendance_member_date;not null"`
	CompanyCode string     `json:"company_code" gorm:"index;not null"`
	Date        string     `json:"date" gorm:"uniqueIndex:idx_attendance_member_date;not null"`
	Status      string     `json:"status" gorm:"default:''"`
	TimeIn      *time.Time `json:"time_in"`
	TimeOut     *time.Time `json:"time_out"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Member *User `json:"member,omitempty" gorm:"foreignKey:MemberID"`
}

func (a *Attendance) BeforeCreate(tx *gorm.DB) error {
	a.CreatedAt = time.Now()
	a.UpdatedAt = time.Now()
	return nil
}

func (a *Attendance) BeforeUpdate(tx *gorm.DB) error {
	a.UpdatedAt = time.Now()
	return nil
}
