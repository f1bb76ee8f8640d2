package services

import (
	"context"
	"time"

	"tenant-ledger/internal/logger"
	"tenant-ledger/internal/models"
)

// DefaultReminderWindow is how many days ahead expiring documents are flagged.
const DefaultReminderWindow = 30

// Reminders lists the documents that need attention.
type Reminders struct {
	Expired      []models.Document
	ExpiringSoon []models.Document
}

func (r *Reminders) Empty() bool {
	return len(r.Expired) == 0 && len(r.ExpiringSoon) == 0
}

// ReminderService finds expired and soon-to-expire documents of active tenants.
type ReminderService struct {
	docs       DocumentRepository
	windowDays int
	log        logger.Logger
}

func NewReminderService(docs DocumentRepository, windowDays int, log logger.Logger) *ReminderService {
	if windowDays < 0 {
		windowDays = DefaultReminderWindow
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &ReminderService{docs: docs, windowDays: windowDays, log: log}
}

func (s *ReminderService) WindowDays() int {
	return s.windowDays
}

// Check classifies documents relative to now. Documents of tenants who have
// moved out are skipped.
func (s *ReminderService) Check(ctx context.Context, now time.Time) (*Reminders, error) {
	return s.CheckWithin(ctx, now, s.windowDays)
}

// CheckWithin is Check with an explicit window in days.
func (s *ReminderService) CheckWithin(ctx context.Context, now time.Time, windowDays int) (*Reminders, error) {
	limit := models.DateOnly(now).AddDate(0, 0, windowDays)
	docs, err := s.docs.ListExpiringBefore(ctx, limit)
	if err != nil {
		return nil, err
	}

	r := &Reminders{}
	for _, d := range docs {
		if d.Tenant != nil && !d.Tenant.IsActive {
			continue
		}
		switch {
		case d.IsExpired(now):
			r.Expired = append(r.Expired, d)
		case d.ExpiresWithin(now, windowDays):
			r.ExpiringSoon = append(r.ExpiringSoon, d)
		}
	}

	s.log.Info("ReminderService", "expiry check complete", map[string]interface{}{
		"expired":       len(r.Expired),
		"expiring_soon": len(r.ExpiringSoon),
		"window_days":   windowDays,
	})
	return r, nil
}
