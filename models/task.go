package models

import (
	"time"

	"gorm.io/gorm"
)

// Task statuses. A task moves to In Review when the assignee uploads a
// deliverable; the reviewer then closes it with a review and a rating.
const (
	TaskStatusUnfinished = "Unfinished"
	TaskStatusInProgress = "In Progress"
	TaskStatusInReview   = "In Review"
	TaskStatusCompleted  = "Completed"
)

// Task is a unit of work assigned to a member.
type Task struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	CompanyCode string     `json:"company_code" gorm:"index;not null"`
	MemberID    uint       `json:"member_id" gorm:"index;not null"`
	Title       string     `json:"title" gorm:"not null;size:255"`
	Description string     `json:"description" gorm:"type:text;default:''"`
	Status      string     `json:"status" gorm:"default:'Unfinished'"`
	Review      string     `json:"review" gorm:"type:text;default:''"`
	OutputID    *uint      `json:"output_id"`
	Deadline    *time.Time `json:"deadline"`
	DatePosted  time.Time  `json:"date_posted"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Member *User     `json:"member,omitempty" gorm:"foreignKey:MemberID"`
	Output *Document `json:"output,omitempty" gorm:"foreignKey:OutputID"`
}

// ValidTaskStatus reports whether status is a known task status.
func ValidTaskStatus(status string) bool {
	return status == TaskStatusUnfinished ||
		status == TaskStatusInProgress ||
		status == TaskStatusInReview ||
		status == TaskStatusCompleted
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	t.CreatedAt = time.Now()
	t.UpdatedAt = time.Now()
	if t.DatePosted.IsZero() {
		t.DatePosted = time.Now()
	}
	if t.Status == "" {
		t.Status = TaskStatusUnfinished
	}
	return nil
}

func (t *Task) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return nil
}
