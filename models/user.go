package models

import (
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// User roles within an organization.
const (
	RoleFounder = "Founder"
	RoleAdmin   = "Admin"
	RoleMember  = "Member"
)

// User account statuses.
const (
	UserStatusActive   = "Active"
	UserStatusInactive = "Inactive"
)

// User represents a member account scoped to one organization.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	FirstName    string    `json:"first_name" gorm:"not null"`
	LastName     string    `json:"last_name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	PhoneNumber  string    `json:"phone_number" gorm:"default:''"`
	Role         string    `json:"role" gorm:"default:'Member'"`
	Status       string    `json:"status" gorm:"default:'Active'"`
	HiredDate    time.Time `json:"hired_date"`
	Address      string    `json:"address" gorm:"default:''"`
	Notes        string    `json:"notes" gorm:"type:text;default:''"`
	CompanyCode  string    `json:"company_code" gorm:"index;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FullName returns the display name used in joined projections.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Organization is the tenant record; CompanyCode is the partition key every
// scoped query filters by.
type Organization struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	CompanyCode string    `json:"company_code" gorm:"uniqueIndex;not null"`
	Industry    string    `json:"industry" gorm:"default:''"`
	Address     string    `json:"address" gorm:"default:''"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// InitDB opens the database connection: PostgreSQL when DATABASE_URL is set,
// a local SQLite file otherwise.
func InitDB() (*gorm.DB, error) {
	databaseURL := os.Getenv("DATABASE_URL")

	if databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		return db, nil
	}

	db, err := gorm.Open(sqlite.Open("orghub.db"), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}

// BeforeCreate sets creation timestamps and defaults the hired date.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()
	if u.HiredDate.IsZero() {
		u.HiredDate = time.Now()
	}
	return nil
}

// BeforeUpdate refreshes the update timestamp.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}

func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	o.CreatedAt = time.Now()
	o.UpdatedAt = time.Now()
	return nil
}

func (o *Organization) BeforeUpdate(tx *gorm.DB) error {
	o.UpdatedAt = time.Now()
	return nil
}
