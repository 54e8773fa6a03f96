package models

import (
	"time"

	"gorm.io/gorm"
)

// Activity log entry types.
const (
	LogTypeInventory    = "Inventory"
	LogTypeRequest      = "Request"
	LogTypeTask         = "Task"
	LogTypeFeedback     = "Feedback"
	LogTypeDocument     = "Document"
	LogTypeAnnouncement = "Announcement"
	LogTypeUser         = "User"
)

// ActivityLog is a write-only audit trail entry. MemberID is nil for
// company-wide entries visible to every member.
type ActivityLog struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Activity    string    `json:"activity" gorm:"not null"`
	Date        time.Time `json:"date"`
	CompanyCode string    `json:"company_code" gorm:"index;not null"`
	StatusType  string    `json:"status_type" gorm:"default:''"`
	MemberID    *uint     `json:"member_id"`
	LogType     string    `json:"log_type" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
}

func (l *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	l.CreatedAt = time.Now()
	if l.Date.IsZero() {
		l.Date = time.Now()
	}
	return nil
}
