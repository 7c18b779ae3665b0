package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/gastro-os/floorplan"
)

func TestDragOntoTableMergesAndPersists(t *testing.T) {
	db := setupTestDB(t)
	salon := NewSalonService(db)
	layouts := NewLayoutService(salon)
	scope := tenant(1)

	floor, err := salon.FirstFloor(scope)
	require.NoError(t, err)
	a := mustTable(t, salon, scope, TableInput{Name: "A", X: 240, Y: 240, FloorID: &floor.ID})
	b := mustTable(t, salon, scope, TableInput{Name: "B", FloorID: &floor.ID})

	_, err = layouts.BeginDrag(scope, 7, floor.ID, floorplan.DragMove, a.ID, floorplan.Pointer{ID: 1, X: 240, Y: 240}, floorplan.Modifiers{})
	require.NoError(t, err)
	snap, err := layouts.UpdateDrag(scope, 7, floor.ID, floorplan.Pointer{ID: 1, X: 10, Y: 10})
	require.NoError(t, err)
	assert.Equal(t, floorplan.DragMove, snap.Dragging)

	snap, err = layouts.EndDrag(scope, 7, floor.ID, floorplan.Pointer{ID: 1, X: 10, Y: 10})
	require.NoError(t, err)
	assert.Empty(t, snap.Dragging)
	layouts.Drain()

	movedA, err := salon.GetTable(scope, a.ID)
	require.NoError(t, err)
	movedB, err := salon.GetTable(scope, b.ID)
	require.NoError(t, err)

	assert.Equal(t, 96, movedA.PosX)
	assert.Equal(t, 0, movedA.PosY)
	require.NotNil(t, movedA.GroupID)
	require.NotNil(t, movedB.GroupID)
	assert.Equal(t, b.ID, *movedA.GroupID)
	assert.Equal(t, *movedA.GroupID, *movedB.GroupID)

	final, err := layouts.Snapshot(scope, 7, floor.ID)
	require.NoError(t, err)
	assert.Zero(t, final.Pending)
}

func TestEditorsAreIsolatedPerUser(t *testing.T) {
	salon := NewSalonService(setupTestDB(t))
	layouts := NewLayoutService(salon)
	scope := tenant(1)
	floor, err := salon.FirstFloor(scope)
	require.NoError(t, err)
	a := mustTable(t, salon, scope, TableInput{Name: "A"})

	_, err = layouts.BeginDrag(scope, 1, floor.ID, floorplan.DragMove, a.ID, floorplan.Pointer{ID: 1}, floorplan.Modifiers{})
	require.NoError(t, err)

	other, err := layouts.Snapshot(scope, 2, floor.ID)
	require.NoError(t, err)
	assert.Empty(t, other.Dragging)
	assert.Empty(t, other.Selection)

	_, err = layouts.BeginDrag(scope, 2, floor.ID, floorplan.DragBoxSelect, "", floorplan.Pointer{ID: 9}, floorplan.Modifiers{})
	assert.NoError(t, err)
}

func TestInvalidateReloadsIdleEditors(t *testing.T) {
	salon := NewSalonService(setupTestDB(t))
	layouts := NewLayoutService(salon)
	scope := tenant(1)
	floor, err := salon.FirstFloor(scope)
	require.NoError(t, err)
	a := mustTable(t, salon, scope, TableInput{Name: "A"})

	snap, err := layouts.Snapshot(scope, 1, floor.ID)
	require.NoError(t, err)
	require.Len(t, snap.Tables, 1)

	mustTable(t, salon, scope, TableInput{Name: "B", X: 480})

	snap, err = layouts.Snapshot(scope, 1, floor.ID)
	require.NoError(t, err)
	assert.Len(t, snap.Tables, 1, "not stale yet")

	// an active drag holds the working copy
	_, err = layouts.BeginDrag(scope, 1, floor.ID, floorplan.DragMove, a.ID, floorplan.Pointer{ID: 1}, floorplan.Modifiers{})
	require.NoError(t, err)
	assert.Equal(t, 1, layouts.Invalidate(1))
	snap, err = layouts.Snapshot(scope, 1, floor.ID)
	require.NoError(t, err)
	assert.Len(t, snap.Tables, 1)

	_, err = layouts.EndDrag(scope, 1, floor.ID, floorplan.Pointer{ID: 1})
	require.NoError(t, err)
	layouts.Drain()

	snap, err = layouts.Snapshot(scope, 1, floor.ID)
	require.NoError(t, err)
	assert.Len(t, snap.Tables, 2)
	assert.Equal(t, []string{a.ID}, snap.Selection)

	assert.Zero(t, layouts.Invalidate(42))
}

func TestLayoutServiceErrors(t *testing.T) {
	salon := NewSalonService(setupTestDB(t))
	layouts := NewLayoutService(salon)

	_, err := layouts.Snapshot(floorplan.Scope{}, 1, "x")
	assert.ErrorIs(t, err, floorplan.ErrNoTenant)

	_, err = layouts.Snapshot(tenant(1), 1, "missing-floor")
	assert.ErrorIs(t, err, ErrFloorNotFound)
	assert.Zero(t, layouts.Evict(0))

	floor, err := salon.FirstFloor(tenant(1))
	require.NoError(t, err)
	_, err = layouts.UpdateDrag(tenant(1), 1, floor.ID, floorplan.Pointer{ID: 1})
	assert.ErrorIs(t, err, floorplan.ErrNoSession)
}

func TestLabelsThroughEditor(t *testing.T) {
	salon := NewSalonService(setupTestDB(t))
	layouts := NewLayoutService(salon)
	scope := tenant(1)
	floor, err := salon.FirstFloor(scope)
	require.NoError(t, err)

	label, err := layouts.AddLabel(scope, 1, floor.ID, "Terraza")
	require.NoError(t, err)
	assert.Equal(t, 24, label.X)
	assert.Equal(t, 24, label.Y)

	stored, err := salon.ListLabels(scope, floor.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)

	snap, err := layouts.RemoveLabel(scope, 1, floor.ID, label.ID)
	require.NoError(t, err)
	assert.Empty(t, snap.Labels)
}

func TestShapeAndUngroupThroughEditor(t *testing.T) {
	salon := NewSalonService(setupTestDB(t))
	layouts := NewLayoutService(salon)
	scope := tenant(1)
	floor, err := salon.FirstFloor(scope)
	require.NoError(t, err)
	a := mustTable(t, salon, scope, TableInput{Name: "A", X: 480})
	b := mustTable(t, salon, scope, TableInput{Name: "B"})

	_, err = layouts.MergeTables(scope, 1, floor.ID, a.ID, b.ID)
	require.NoError(t, err)
	_, err = layouts.ChangeShape(scope, 1, floor.ID, a.ID, floorplan.ShapeBar)
	require.NoError(t, err)
	snap, err := layouts.Ungroup(scope, 1, floor.ID, b.ID)
	require.NoError(t, err)
	for _, table := range snap.Tables {
		assert.Nil(t, table.GroupID)
	}
	layouts.Drain()

	stored, err := salon.GetTable(scope, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "bar", stored.Shape)
	assert.Nil(t, stored.GroupID)
	assert.Equal(t, 96, stored.PosX)
}

func TestEvictedEditorIsReplacedForWaitingRequest(t *testing.T) {
	layouts := NewLayoutService(NewSalonService(setupTestDB(t)))
	key := EditorKey{RestaurantID: 1, UserID: 1, FloorID: "floor-1"}

	evicted := layouts.editorFor(key)
	evicted.mu.Lock()

	got := make(chan *editor, 1)
	go func() {
		e := layouts.lockEditor(key)
		got <- e
		e.mu.Unlock()
	}()

	time.Sleep(20 * time.Millisecond)
	layouts.forget(key, evicted)
	evicted.mu.Unlock()

	e := <-got
	assert.NotSame(t, evicted, e)
	layouts.mu.Lock()
	defer layouts.mu.Unlock()
	assert.Same(t, e, layouts.editors[key])
}

func TestEvictKeepsActiveDrag(t *testing.T) {
	salon := NewSalonService(setupTestDB(t))
	layouts := NewLayoutService(salon)
	scope := tenant(1)
	floor, err := salon.FirstFloor(scope)
	require.NoError(t, err)
	a := mustTable(t, salon, scope, TableInput{Name: "A"})

	_, err = layouts.BeginDrag(scope, 1, floor.ID, floorplan.DragMove, a.ID, floorplan.Pointer{ID: 1}, floorplan.Modifiers{})
	require.NoError(t, err)
	assert.Zero(t, layouts.Evict(0))

	_, err = layouts.EndDrag(scope, 1, floor.ID, floorplan.Pointer{ID: 1, X: 48, Y: 0})
	require.NoError(t, err)
	layouts.Drain()
	assert.Equal(t, 1, layouts.Evict(0))
}
