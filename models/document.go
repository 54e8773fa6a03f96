package models

import (
	"time"

	"gorm.io/gorm"
)

// Document access levels.
const (
	DocumentAccessPrivate = "Private"
	DocumentAccessShared  = "Shared"
)

// Document is an uploaded file owned by a member of the organization.
// TaskID is set when the file is a task deliverable.
type Document struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CompanyCode string    `json:"company_code" gorm:"index;not null"`
	Name        string    `json:"name" gorm:"not null;size:255"`
	Type        string    `json:"type" gorm:"default:''"`
	UploadBy    uint      `json:"upload_by" gorm:"index;not null"`
	TaskID      *uint     `json:"task_id"`
	DocURL      string    `json:"doc_url" gorm:"not null"`
	Access      string    `json:"access" gorm:"default:'Private'"`
	UploadOn    time.Time `json:"upload_on"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Owner *User `json:"owner,omitempty" gorm:"foreignKey:UploadBy"`
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	d.CreatedAt = time.Now()
	d.UpdatedAt = time.Now()
	if d.UploadOn.IsZero() {
		d.UploadOn = time.Now()
	}
	return nil
}

func (d *Document) BeforeUpdate(tx *gorm.DB) error {
	d.UpdatedAt = time.Now()
	return nil
}
