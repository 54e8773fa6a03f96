package services

import (
	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"orghub-backend/models"
)

const topicActivityRecorded = "activity:recorded"

// ActivityService is the best-effort audit trail. Workflow code publishes
// entries on an in-process bus after its own transaction has committed; the
// subscriber persists them asynchronously. A failed write is logged and
// swallowed, never surfaced to the workflow that emitted it.
type ActivityService struct {
	DB  *gorm.DB
	bus EventBus.Bus
}

// NewActivityService creates the service and starts the persisting
// subscriber.
func NewActivityService(db *gorm.DB) *ActivityService {
	s := &ActivityService{
		DB:  db,
		bus: EventBus.New(),
	}
	if err := s.bus.SubscribeAsync(topicActivityRecorded, s.persist, false); err != nil {
		zap.L().Error("failed to subscribe activity persister", zap.Error(err))
	}
	return s
}

// Record emits an audit entry. Fire-and-forget: the caller never learns
// whether the write succeeded.
func (s *ActivityService) Record(entry models.ActivityLog) {
	s.bus.Publish(topicActivityRecorded, entry)
}

// Subscribe registers an additional asynchronous consumer of audit entries,
// e.g. the live dashboard feed.
func (s *ActivityService) Subscribe(fn func(models.ActivityLog)) error {
	return s.bus.SubscribeAsync(topicActivityRecorded, fn, false)
}

// Flush blocks until all published entries have been handled. Used by tests
// and graceful shutdown.
func (s *ActivityService) Flush() {
	s.bus.WaitAsync()
}

func (s *ActivityService) persist(entry models.ActivityLog) {
	if err := s.DB.Create(&entry).Error; err != nil {
		zap.L().Warn("activity log write failed",
			zap.String("activity", entry.Activity),
			zap.String("company_code", entry.CompanyCode),
			zap.Error(err))
	}
}
