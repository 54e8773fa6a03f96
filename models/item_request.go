package models

import (
	"time"

	"gorm.io/gorm"
)

// Item request states. Pending transitions exactly once to Approved or
// Rejected; both are terminal.
const (
	RequestStatusPending  = "Pending"
	RequestStatusApproved = "Approved"
	RequestStatusRejected = "Rejected"
)

// ItemRequest is a member's ask to draw quantity from an inventory item,
// subject to admin approval.
type ItemRequest struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ItemID      uint      `json:"item_id" gorm:"index;not null"`
	CompanyCode string    `json:"company_code" gorm:"index;not null"`
	RequestedBy uint      `json:"requested_by" gorm:"index;not null"`
	Quantity    int       `json:"quantity" gorm:"not null"`
	Reason      string    `json:"reason" gorm:"type:text;not null"`
	Status      string    `json:"status" gorm:"default:'Pending'"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Item      *InventoryItem `json:"item,omitempty" gorm:"foreignKey:ItemID"`
	Requester *User          `json:"requester,omitempty" gorm:"foreignKey:RequestedBy"`
}

// Resolved reports whether the request has reached a terminal state.
func (r *ItemRequest) Resolved() bool {
	return r.Status != RequestStatusPending
}

func (r *ItemRequest) BeforeCreate(tx *gorm.DB) error {
	r.CreatedAt = time.Now()
	r.UpdatedAt = time.Now()
	if r.Status == "" {
		r.Status = RequestStatusPending
	}
	return nil
}

func (r *ItemRequest) BeforeUpdate(tx *gorm.DB) error {
	r.UpdatedAt = time.Now()
	return nil
}
