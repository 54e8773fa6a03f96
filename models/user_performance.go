package models

import (
	"time"

	"gorm.io/gorm"
)

// UserPerformance is a reviewer's rating of one completed task. Creating a
// record marks the task Completed.
type UserPerformance struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CompanyCode string    `json:"company_code" gorm:"index;not null"`
	MemberID    uint      `json:"member_id" gorm:"index;not null"`
	TaskID      uint      `json:"task_id" gorm:"index;not null"`
	Rating      int       `json:"rating" gorm:"not null"`
	Remarks     string    `json:"remarks" gorm:"type:text;default:''"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Member *User `json:"member,omitempty" gorm:"foreignKey:MemberID"`
	Task   *Task `json:"task,omitempty" gorm:"foreignKey:TaskID"`
}

func (p *UserPerformance) BeforeCreate(tx *gorm.DB) error {
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	return nil
}

func (p *UserPerformance) BeforeUpdate(tx *gorm.DB) error {
	p.UpdatedAt = time.Now()
	return nil
}
