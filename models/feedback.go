package models

import (
	"time"

	"gorm.io/gorm"
)

// Feedback statuses.
const (
	FeedbackStatusOpen     = "Open"
	FeedbackStatusReviewed = "Reviewed"
	FeedbackStatusResolved = "Resolved"
)

// Feedback is a message submitted by a member for the organization's admins.
type Feedback struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	CompanyCode   string    `json:"company_code" gorm:"index;not null"`
	FeedbackBy    uint      `json:"feedback_by" gorm:"index;not null"`
	Subject       string    `json:"subject" gorm:"not null;size:255"`
	Category      string    `json:"category" gorm:"default:''"`
	Message       string    `json:"message" gorm:"type:text;not null"`
	Status        string    `json:"status" gorm:"default:'Open'"`
	DateSubmitted time.Time `json:"date_submitted"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Author *User `json:"author,omitempty" gorm:"foreignKey:FeedbackBy"`
}

// ValidFeedbackStatus reports whether status is a known feedback status.
func ValidFeedbackStatus(status string) bool {
	return status == FeedbackStatusOpen ||
		status == FeedbackStatusReviewed ||
		status == FeedbackStatusResolved
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	f.CreatedAt = time.Now()
	f.UpdatedAt = time.Now()
	if f.DateSubmitted.IsZero() {
		f.DateSubmitted = time.Now()
	}
	if f.Status == "" {
		f.Status = FeedbackStatusOpen
	}
	return nil
}

func (f *Feedback) BeforeUpdate(tx *gorm.DB) error {
	f.UpdatedAt = time.Now()
	return nil
}
