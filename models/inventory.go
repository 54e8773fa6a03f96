package models

import (
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"
)

// Derived stock statuses. Status is never persisted; it is recomputed from
// the quantity on every read so it can never drift.
const (
	StockStatusIn  = "In Stock"
	StockStatusLow = "Low on Stock"
	StockStatusOut = "Out of Stock"
)

// Inventory item categories.
var ItemCategories = []string{"Supplies", "Medical", "Stationaries", "Sanitary"}

// DefaultLowStockThreshold is used when LOW_STOCK_THRESHOLD is unset.
const DefaultLowStockThreshold = 5

// InventoryItem represents one stock line owned by an organization.
type InventoryItem struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CompanyCode string    `json:"company_code" gorm:"index;not null"`
	Name        string    `json:"name" gorm:"not null;size:255"`
	Category    string    `json:"category" gorm:"not null"`
	Quantity    int       `json:"quantity" gorm:"not null;default:0"`
	Status      string    `json:"status" gorm:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LowStockThreshold reads the configured low-stock cutoff.
func LowStockThreshold() int {
	if v := os.Getenv("LOW_STOCK_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return DefaultLowStockThreshold
}

// ComputeStatus derives the stock status from the current quantity.
func (i *InventoryItem) ComputeStatus() string {
	switch {
	case i.Quantity == 0:
		return StockStatusOut
	case i.Quantity <= LowStockThreshold():
		return StockStatusLow
	default:
		return StockStatusIn
	}
}

// ValidCategory reports whether category is one of the known item categories.
func ValidCategory(category string) bool {
	for _, c := range ItemCategories {
		if c == category {
			return true
		}
	}
	return false
}

// AfterFind recomputes the derived status on every read.
func (i *InventoryItem) AfterFind(tx *gorm.DB) error {
	i.Status = i.ComputeStatus()
	return nil
}

func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	i.CreatedAt = time.Now()
	i.UpdatedAt = time.Now()
	return nil
}

func (i *InventoryItem) BeforeUpdate(tx *gorm.DB) error {
	i.UpdatedAt = time.Now()
	return nil
}
