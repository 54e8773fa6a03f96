package models

import (
	"time"

	"gorm.io/gorm"
)

// Announcement is a company-wide notice posted by a founder or admin.
type Announcement struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CompanyCode string    `json:"company_code" gorm:"index;not null"`
	Type        string    `json:"type" gorm:"not null"`
	Title       string    `json:"title" gorm:"not null;size:255"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	Author      string    `json:"author" gorm:"not null"`
	AuthorRole  string    `json:"author_role" gorm:"not null"`
	TimeStamp   time.Time `json:"time_stamp"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (a *Announcement) BeforeCreate(tx *gorm.DB) error {
	a.CreatedAt = time.Now()
	a.UpdatedAt = time.Now()
	if a.TimeStamp.IsZero() {
		a.TimeStamp = time.Now()
	}
	return nil
}

func (a *Announcement) BeforeUpdate(tx *gorm.DB) error {
	a.UpdatedAt = time.Now()
	return nil
}
