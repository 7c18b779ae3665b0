package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/gastro-os/events"
	"github.com/yeremiapane/gastro-os/metrics"
	"github.com/yeremiapane/gastro-os/models"
	"github.com/yeremiapane/gastro-os/realtime"
	"github.com/yeremiapane/gastro-os/utils"
	"gorm.io/gorm"
)

// Broadcaster pushes a revalidation notice to connected clients.
type Broadcaster interface {
	BroadcastSalonUpdate(restaurantID uint, data interface{}) int
}

// ChangeMonitor drains LayoutChange rows: it marks the restaurant's open
// editors stale, notifies websocket clients and publishes the change.
type ChangeMonitor struct {
	DB        *gorm.DB
	Layouts   *LayoutService
	Hub       Broadcaster
	Publisher events.Publisher
	StopChan  chan struct{}
	Interval  time.Duration
	BatchSize int

	log *logrus.Entry
}

func NewChangeMonitor(db *gorm.DB, layouts *LayoutService, publisher events.Publisher) *ChangeMonitor {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &ChangeMonitor{
		DB:        db,
		Layouts:   layouts,
		Hub:       realtime.Default(),
		Publisher: publisher,
		StopChan:  make(chan struct{}),
		Interval:  1 * time.Second,
		BatchSize: 100,
		log:       utils.Component("change_monitor"),
	}
}

func (cm *ChangeMonitor) Start() {
	go func() {
		ticker := time.NewTicker(cm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				cm.CheckChanges()
			case <-cm.StopChan:
				return
			}
		}
	}()
}

func (cm *ChangeMonitor) Stop() {
	close(cm.StopChan)
}

// CheckChanges processes one batch and returns how many rows it handled.
func (cm *ChangeMonitor) CheckChanges() int {
	var changes []models.LayoutChange

	err := cm.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("processed = ?", false).
			Order("id ASC").
			Limit(cm.BatchSize).
			Find(&changes).Error; err != nil {
			return err
		}
		if len(changes) == 0 {
			return nil
		}

		ids := make([]uint, len(changes))
		for i, change := range changes {
			ids[i] = change.ID
		}
		return tx.Model(&models.LayoutChange{}).
			Where("id IN ?", ids).
			Update("processed", true).Error
	})
	if err != nil {
		cm.log.WithError(err).Error("error fetching layout changes")
		return 0
	}
	if len(changes) == 0 {
		return 0
	}

	metrics.ChangesProcessed.Add(float64(len(changes)))

	// one notice per restaurant and batch
	seen := make(map[uint]bool)
	for _, change := range changes {
		cm.publish(change)
		if seen[change.RestaurantID] {
			continue
		}
		seen[change.RestaurantID] = true
		cm.notify(change)
	}

	cm.log.WithField("count", len(changes)).Debug("processed layout changes")
	return len(changes)
}

func (cm *ChangeMonitor) notify(change models.LayoutChange) {
	stale := 0
	if cm.Layouts != nil {
		stale = cm.Layouts.Invalidate(change.RestaurantID)
	}
	sent := 0
	if cm.Hub != nil {
		sent = cm.Hub.BroadcastSalonUpdate(change.RestaurantID, map[string]interface{}{
			"floor_id": change.FloorID,
			"entity":   change.Entity,
		})
	}
	cm.log.WithFields(logrus.Fields{
		"restaurant_id": change.RestaurantID,
		"editors":       stale,
		"clients":       sent,
	}).Debug("salon revalidated")
}

func (cm *ChangeMonitor) publish(change models.LayoutChange) {
	evt := events.SalonEvent{
		RestaurantID: change.RestaurantID,
		FloorID:      change.FloorID,
		Entity:       change.Entity,
		EntityID:     change.EntityID,
		Action:       change.ActionType,
		Payload:      json.RawMessage(change.Payload),
		ChangedAt:    change.ChangedAt,
	}
	if err := cm.Publisher.Publish(context.Background(), evt); err != nil {
		cm.log.WithError(err).WithField("change_id", change.ID).Error("error publishing salon event")
	}
}
