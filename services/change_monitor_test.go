package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/gastro-os/events"
	"github.com/yeremiapane/gastro-os/models"
)

type fakeBroadcaster struct {
	mu    sync.Mutex
	calls []uint
}

func (f *fakeBroadcaster) BroadcastSalonUpdate(restaurantID uint, _ interface{}) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, restaurantID)
	return 1
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.SalonEvent
}

func (f *fakePublisher) Publish(_ context.Context, evt events.SalonEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, evt)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func TestCheckChangesNotifiesOncePerRestaurant(t *testing.T) {
	db := setupTestDB(t)
	salon := NewSalonService(db)
	layouts := NewLayoutService(salon)

	floor, err := salon.FirstFloor(tenant(1))
	require.NoError(t, err)
	_, err = layouts.Snapshot(tenant(1), 1, floor.ID)
	require.NoError(t, err)

	mustTable(t, salon, tenant(1), TableInput{Name: "A"})
	mustTable(t, salon, tenant(1), TableInput{Name: "B", X: 240})
	mustTable(t, salon, tenant(2), TableInput{Name: "C"})

	hub := &fakeBroadcaster{}
	publisher := &fakePublisher{}
	monitor := NewChangeMonitor(db, layouts, publisher)
	monitor.Hub = hub

	var expected int64
	require.NoError(t, db.Model(&models.LayoutChange{}).Count(&expected).Error)

	processed := monitor.CheckChanges()
	assert.Equal(t, int(expected), processed)
	assert.ElementsMatch(t, []uint{1, 2}, hub.calls)
	assert.Len(t, publisher.events, processed)

	var pending int64
	require.NoError(t, db.Model(&models.LayoutChange{}).Where("processed = ?", false).Count(&pending).Error)
	assert.Zero(t, pending)

	// the open editor picks up the new tables on its next access
	snap, err := layouts.Snapshot(tenant(1), 1, floor.ID)
	require.NoError(t, err)
	assert.Len(t, snap.Tables, 2)

	assert.Zero(t, monitor.CheckChanges())
	assert.Len(t, hub.calls, 2)
}

func TestCheckChangesPublishesPayload(t *testing.T) {
	db := setupTestDB(t)
	salon := NewSalonService(db)
	table := mustTable(t, salon, tenant(5), TableInput{Name: "Ventana"})

	publisher := &fakePublisher{}
	monitor := NewChangeMonitor(db, nil, publisher)
	monitor.Hub = &fakeBroadcaster{}
	monitor.CheckChanges()

	var found bool
	for _, evt := range publisher.events {
		if evt.EntityID == table.ID {
			found = true
			assert.Equal(t, uint(5), evt.RestaurantID)
			assert.Equal(t, models.ChangeInsert, evt.Action)
			assert.Contains(t, string(evt.Payload), "Ventana")
		}
	}
	assert.True(t, found)
}

func TestChangeMonitorDefaults(t *testing.T) {
	monitor := NewChangeMonitor(setupTestDB(t), nil, nil)
	assert.IsType(t, events.Nop{}, monitor.Publisher)
	assert.NotNil(t, monitor.Hub)
	monitor.Start()
	monitor.Stop()
}
