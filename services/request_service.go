package services

import (
	"errors"
	"strings"
	"time"

	"orghub-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RequestService mediates member requests for item usage against the
// inventory ledger, guaranteeing no overdraft and at-most-once resolution.
type RequestService struct {
	DB       *gorm.DB
	Ledger   *InventoryService
	Activity *ActivityService
}

// NewRequestService creates a new RequestService.
func NewRequestService(db *gorm.DB, ledger *InventoryService, activity *ActivityService) *RequestService {
	return &RequestService{DB: db, Ledger: ledger, Activity: activity}
}

// RequestDetail is the read projection joining the item and requester names
// for display.
type RequestDetail struct {
	ID          uint      `json:"id"`
	ItemID      uint      `json:"item_id"`
	CompanyCode string    `json:"company_code"`
	Quantity    int       `json:"quantity"`
	Reason      string    `json:"reason"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	ItemName    string    `json:"itemName"`
	RequestedBy string    `json:"requestedBy"`
	MemberID    uint      `json:"member_id"`
}

// Submit creates a Pending request. The item must belong to the requester's
// organization; the current stock level is deliberately NOT checked here,
// because stock may change before approval. The check happens atomically at
// approval time.
func (s *RequestService) Submit(companyCode string, requesterID, itemID uint, quantity int, reason string) (*models.ItemRequest, error) {
	if quantity < 1 {
		return nil, Validationf("requested quantity must be at least 1")
	}
	if strings.TrimSpace(reason) == "" {
		return nil, Validationf("a reason is required")
	}

	item, err := s.Ledger.GetItem(companyCode, itemID)
	if err != nil {
		return nil, err
	}

	request := models.ItemRequest{
		ItemID:      itemID,
		CompanyCode: companyCode,
		RequestedBy: requesterID,
		Quantity:    quantity,
		Reason:      strings.TrimSpace(reason),
		Status:      models.RequestStatusPending,
	}
	if err := s.DB.Create(&request).Error; err != nil {
		return nil, err
	}

	s.Activity.Record(models.ActivityLog{
		Activity:    "New Item Requested: " + item.Name,
		CompanyCode: companyCode,
		StatusType:  request.Status,
		MemberID:    &requesterID,
		LogType:     models.LogTypeRequest,
	})

	return &request, nil
}

// Approve resolves a Pending request and decrements the item's stock. The
// whole read-check-decrement-flip sequence runs in one transaction holding a
// row lock on both the request and the item, so two concurrent approvals
// against the same item cannot both pass the stock check. Any failure rolls
// back fully, leaving the request and the item unchanged.
func (s *RequestService) Approve(companyCode string, requestID uint) (*models.ItemRequest, error) {
	var approved models.ItemRequest
	var itemName string

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var request models.ItemRequest
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND company_code = ?", requestID, companyCode).
			First(&request).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if request.Resolved() {
			return ErrAlreadyResolved
		}

		item, err := s.Ledger.AdjustQuantity(tx, companyCode, request.ItemID, -request.Quantity)
		if err != nil {
			return err
		}
		itemName = item.Name

		request.Status = models.RequestStatusApproved
		if err := tx.Save(&request).Error; err != nil {
			return err
		}

		approved = request
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Audit only after the transaction has committed.
	s.Activity.Record(models.ActivityLog{
		Activity:    "Update Item Requested: " + itemName,
		CompanyCode: companyCode,
		StatusType:  approved.Status,
		MemberID:    &approved.RequestedBy,
		LogType:     models.LogTypeRequest,
	})

	return &approved, nil
}

// Reject resolves a Pending request without touching the ledger.
func (s *RequestService) Reject(companyCode string, requestID uint) (*models.ItemRequest, error) {
	var rejected models.ItemRequest

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var request models.ItemRequest
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND company_code = ?", requestID, companyCode).
			First(&request).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if request.Resolved() {
			return ErrAlreadyResolved
		}

		request.Status = models.RequestStatusRejected
		if err := tx.Save(&request).Error; err != nil {
			return err
		}

		rejected = request
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Activity.Record(models.ActivityLog{
		Activity:    "Item Request Rejected",
		CompanyCode: companyCode,
		StatusType:  rejected.Status,
		MemberID:    &rejected.RequestedBy,
		LogType:     models.LogTypeRequest,
	})

	return &rejected, nil
}

// Get fetches one request with its display projection.
func (s *RequestService) Get(companyCode string, requestID uint) (*RequestDetail, error) {
	details, err := s.query(s.DB.Where("item_requests.id = ? AND item_requests.company_code = ?", requestID, companyCode))
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, ErrNotFound
	}
	return &details[0], nil
}

// ListPending returns the organization's unresolved requests, newest first.
func (s *RequestService) ListPending(companyCode string) ([]RequestDetail, error) {
	return s.query(s.DB.
		Where("item_requests.company_code = ? AND item_requests.status = ?", companyCode, models.RequestStatusPending))
}

// ListByRequester returns all requests a member has submitted, newest first.
func (s *RequestService) ListByRequester(companyCode string, userID uint) ([]RequestDetail, error) {
	return s.query(s.DB.
		Where("item_requests.company_code = ? AND item_requests.requested_by = ?", companyCode, userID))
}

func (s *RequestService) query(q *gorm.DB) ([]RequestDetail, error) {
	details := make([]RequestDetail, 0)
	err := q.Model(&models.ItemRequest{}).
		Select("item_requests.id, item_requests.item_id, item_requests.company_code, item_requests.quantity, item_requests.reason, item_requests.status, item_requests.created_at, inventory_items.name AS item_name, users.first_name || ' ' || users.last_name AS requested_by, users.id AS member_id").
		Joins("JOIN inventory_items ON inventory_items.id = item_requests.item_id").
		Joins("JOIN users ON users.id = item_requests.requested_by").
		Order("item_requests.id DESC").
		Scan(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}
