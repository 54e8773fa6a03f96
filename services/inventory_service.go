package services

import (
	"errors"
	"strings"

	"orghub-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InventoryService is the ledger: the authoritative quantity and derived
// status per item, scoped to one organization.
type InventoryService struct {
	DB *gorm.DB
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{DB: db}
}

// InventoryStats are the aggregate counts returned with every listing. They
// are computed over the same filtered set as the listing itself, so the
// three buckets always sum to Total.
type InventoryStats struct {
	Total      int `json:"itemCount"`
	InStock    int `json:"itemInStock"`
	LowOnStock int `json:"itemLowOnStock"`
	OutOfStock int `json:"itemOutStock"`
}

// ListItems returns the organization's items ordered by id ascending, with
// aggregate counts derived from the same slice.
func (s *InventoryService) ListItems(companyCode string) ([]models.InventoryItem, InventoryStats, error) {
	items := make([]models.InventoryItem, 0)
	if err := s.DB.Where("company_code = ?", companyCode).Order("id ASC").Find(&items).Error; err != nil {
		return nil, InventoryStats{}, err
	}

	stats := InventoryStats{Total: len(items)}
	for _, item := range items {
		switch item.Status {
		case models.StockStatusOut:
			stats.OutOfStock++
		case models.StockStatusLow:
			stats.LowOnStock++
		default:
			stats.InStock++
		}
	}

	return items, stats, nil
}

// GetItem fetches one item, scoped to the caller's organization.
func (s *InventoryService) GetItem(companyCode string, id uint) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := s.DB.Where("id = ? AND company_code = ?", id, companyCode).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// CreateItem adds a new stock line. Quantity defaults to zero.
func (s *InventoryService) CreateItem(companyCode, name, category string, quantity int) (*models.InventoryItem, error) {
	if strings.TrimSpace(name) == "" {
		return nil, Validationf("item name is required")
	}
	if !models.ValidCategory(category) {
		return nil, Validationf("unknown item category")
	}
	if quantity < 0 {
		return nil, Validationf("quantity cannot be negative")
	}

	item := models.InventoryItem{
		CompanyCode: companyCode,
		Name:        strings.TrimSpace(name),
		Category:    category,
		Quantity:    quantity,
	}
	if err := s.DB.Create(&item).Error; err != nil {
		return nil, err
	}

	item.Status = item.ComputeStatus()
	return &item, nil
}

// UpdateItem overwrites the mutable fields of an item.
func (s *InventoryService) UpdateItem(companyCode string, id uint, name, category string, quantity int) (*models.InventoryItem, error) {
	if strings.TrimSpace(name) == "" {
		return nil, Validationf("item name is required")
	}
	if !models.ValidCategory(category) {
		return nil, Validationf("unknown item category")
	}
	if quantity < 0 {
		return nil, Validationf("quantity cannot be negative")
	}

	item, err := s.GetItem(companyCode, id)
	if err != nil {
		return nil, err
	}

	item.Name = strings.TrimSpace(name)
	item.Category = category
	item.Quantity = quantity
	if err := s.DB.Save(item).Error; err != nil {
		return nil, err
	}

	item.Status = item.ComputeStatus()
	return item, nil
}

// DeleteItem removes an item. A second delete of the same id fails with
// ErrNotFound.
func (s *InventoryService) DeleteItem(companyCode string, id uint) error {
	item, err := s.GetItem(companyCode, id)
	if err != nil {
		return err
	}
	return s.DB.Delete(item).Error
}

// AdjustQuantity applies a delta to an item's quantity inside the given
// transaction, holding a row lock for the read-modify-write. It is the only
// entry point the request workflow may use to decrement stock. Fails with
// ErrInsufficientStock if the resulting quantity would be negative.
func (s *InventoryService) AdjustQuantity(tx *gorm.DB, companyCode string, id uint, delta int) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND company_code = ?", id, companyCode).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if item.Quantity+delta < 0 {
		return nil, ErrInsufficientStock
	}

	item.Quantity += delta
	if err := tx.Save(&item).Error; err != nil {
		return nil, err
	}

	item.Status = item.ComputeStatus()
	return &item, nil
}
