package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/gastro-os/floorplan"
	"github.com/yeremiapane/gastro-os/models"
)

func TestListFloorsCreatesDefaultFloor(t *testing.T) {
	svc := NewSalonService(setupTestDB(t))

	floors, err := svc.ListFloors(tenant(1))
	require.NoError(t, err)
	require.Len(t, floors, 1)
	assert.Equal(t, "Principal", floors[0].Name)
	assert.Equal(t, 1, floors[0].Order)
	assert.Equal(t, 1200, floors[0].GridWidth)
	assert.Equal(t, 800, floors[0].GridHeight)

	again, err := svc.ListFloors(tenant(1))
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, floors[0].ID, again[0].ID)
}

func TestCreateFloorAppendsOrder(t *testing.T) {
	svc := NewSalonService(setupTestDB(t))
	_, err := svc.ListFloors(tenant(1))
	require.NoError(t, err)

	terrace, err := svc.CreateFloor(tenant(1), FloorInput{Name: " Terraza "})
	require.NoError(t, err)
	assert.Equal(t, "Terraza", terrace.Name)
	assert.Equal(t, 2, terrace.Order)
	assert.Equal(t, 1200, terrace.GridWidth)

	_, err = svc.CreateFloor(tenant(1), FloorInput{Name: ""})
	assert.ErrorIs(t, err, ErrEmptyName)
	_, err = svc.CreateFloor(tenant(1), FloorInput{Name: "Tiny", GridWidth: 24})
	assert.ErrorIs(t, err, ErrInvalidGrid)
}

func TestUpdateFloor(t *testing.T) {
	svc := NewSalonService(setupTestDB(t))
	first, err := svc.FirstFloor(tenant(1))
	require.NoError(t, err)

	name, width := "Salón", 1440
	floor, err := svc.UpdateFloor(tenant(1), first.ID, FloorUpdate{Name: &name, GridWidth: &width})
	require.NoError(t, err)
	assert.Equal(t, "Salón", floor.Name)
	assert.Equal(t, 1440, floor.GridWidth)
	assert.Equal(t, 800, floor.GridHeight)

	_, err = svc.UpdateFloor(tenant(2), first.ID, FloorUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrFloorNotFound)
}

func TestDeleteFloor(t *testing.T) {
	svc := NewSalonService(setupTestDB(t))
	scope := tenant(1)
	first, err := svc.FirstFloor(scope)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteFloor(scope, first.ID), ErrLastFloor)

	terrace, err := svc.CreateFloor(scope, FloorInput{Name: "Terraza"})
	require.NoError(t, err)
	moved := mustTable(t, svc, scope, TableInput{Name: "T1", FloorID: &terrace.ID})

	require.NoError(t, svc.DeleteFloor(scope, terrace.ID))

	table, err := svc.GetTable(scope, moved.ID)
	require.NoError(t, err)
	assert.Nil(t, table.FloorID)

	tables, err := svc.ListTables(scope, first.ID)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, moved.ID, tables[0].ID)

	assert.ErrorIs(t, svc.DeleteFloor(scope, terrace.ID), ErrFloorNotFound)
}

func TestCreateTableDefaults(t *testing.T) {
	svc := NewSalonService(setupTestDB(t))
	scope := tenant(1)

	big := mustTable(t, svc, scope, TableInput{Name: "Mesa 10", Capacity: 10})
	assert.Equal(t, 96, big.Width)
	assert.Equal(t, 96, big.Height)
	assert.Equal(t, "free", big.Status)
	assert.Equal(t, "rect", big.Shape)
	assert.Nil(t, big.GroupID)

	small := mustTable(t, svc, scope, TableInput{Name: "Mesa 1"})
	assert.Equal(t, 4, small.Capacity)
	assert.Equal(t, 72, small.Width)

	_, err := svc.CreateTable(scope, TableInput{Name: "Bad", Capacity: -2})
	assert.ErrorIs(t, err, ErrInvalidCapacity)
	_, err = svc.CreateTable(scope, TableInput{Name: "Bad", Shape: "star"})
	assert.ErrorIs(t, err, floorplan.ErrInvalidShape)
	missing := "no-such-floor"
	_, err = svc.CreateTable(scope, TableInput{Name: "Lost", FloorID: &missing})
	assert.ErrorIs(t, err, ErrFloorNotFound)
}

func TestCreateTableSnapsToGrid(t *testing.T) {
	svc := NewSalonService(setupTestDB(t))
	scope := tenant(1)
	_, err := svc.FirstFloor(scope)
	require.NoError(t, err)

	low := mustTable(t, svc, scope, TableInput{Name: "Low", X: 10, Y: 5000, Width: 50, Height: 50})
	assert.Equal(t, 0, low.PosX)
	assert.Equal(t, 744, low.PosY)
	assert.Equal(t, 48, low.Width)
	assert.Equal(t, 48, low.Height)

	stored, err := svc.GetTable(scope, low.ID)
	require.NoError(t, err)
	assert.Equal(t, 744, stored.PosY)

	edge := mustTable(t, svc, scope, TableInput{Name: "Edge", X: 1190, Width: 100, Height: 5000})
	assert.Equal(t, 96, edge.Width)
	assert.Equal(t, 792, edge.Height)
	assert.Equal(t, 1104, edge.PosX)
	assert.Equal(t, 0, edge.PosY)

	odd := mustTable(t, svc, scope, TableInput{Name: "Mesa 5", Capacity: 5})
	assert.Equal(t, 72, odd.Width)
}

func TestUpdateTableDetailsSnapsToGrid(t *testing.T) {
	svc := NewSalonService(setupTestDB(t))
	scope := tenant(1)
	_, err := svc.FirstFloor(scope)
	require.NoError(t, err)
	patio, err := svc.CreateFloor(scope, FloorInput{Name: "Patio", GridWidth: 480, GridHeight: 480})
	require.NoError(t, err)

	a := mustTable(t, svc, scope, TableInput{Name: "A", X: 1104, Y: 696})

	width, height := 2000, 30
	updated, err := svc.UpdateTableDetails(scope, a.ID, TableUpdate{Width: &width, Height: &height})
	require.NoError(t, err)
	assert.Equal(t, 1200, updated.Width)
	assert.Equal(t, 48, updated.Height)
	assert.Equal(t, 0, updated.PosX)
	assert.Equal(t, 696, updated.PosY)

	width = 72
	updated, err = svc.UpdateTableDetails(scope, a.ID, TableUpdate{Width: &width, FloorID: &patio.ID})
	require.NoError(t, err)
	assert.Equal(t, patio.ID, *updated.FloorID)
	assert.Equal(t, 0, updated.PosX)
	assert.Equal(t, 432, updated.PosY)

	missing := "no-such-floor"
	_, err = svc.UpdateTableDetails(scope, a.ID, TableUpdate{FloorID: &missing})
	assert.ErrorIs(t, err, ErrFloorNotFound)
}

func TestUpdateFloorKeepsTablesInside(t *testing.T) {
	svc := NewSalonService(setupTestDB(t))
	scope := tenant(1)
	first, err := svc.FirstFloor(scope)
	require.NoError(t, err)
	terrace, err := svc.CreateFloor(scope, FloorInput{Name: "Terraza"})
	require.NoError(t, err)

	loose := mustTable(t, svc, scope, TableInput{Name: "Loose", X: 1104})
	placed := mustTable(t, svc, scope, TableInput{Name: "Placed", X: 960, Y: 720, FloorID: &first.ID})
	elsewhere := mustTable(t, svc, scope, TableInput{Name: "Elsewhere", X: 1104, FloorID: &terrace.ID})

	width, height := 480, 480
	_, err = svc.UpdateFloor(scope, first.ID, FloorUpdate{GridWidth: &width, GridHeight: &height})
	require.NoError(t, err)

	got, err := svc.GetTable(scope, loose.ID)
	require.NoError(t, err)
	assert.Equal(t, 408, got.PosX)

	got, err = svc.GetTable(scope, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, 408, got.PosX)
	assert.Equal(t, 408, got.PosY)

	got, err = svc.GetTable(scope, elsewhere.ID)
	require.NoError(t, err)
	assert.Equal(t, 1104, got.PosX)
}

func TestTenantIsolation(t *testing.T) {
	svc := NewSalonService(setupTestDB(t))
	mine := mustTable(t, svc, tenant(1), TableInput{Name: "A"})

	_, err := svc.GetTable(tenant(2), mine.ID)
	assert.ErrorIs(t, err, floorplan.ErrTableNotFound)
	assert.ErrorIs(t, svc.UpdateTableSize(tenant(2), mine.ID, 96, 96), floorplan.ErrTableNotFound)
	assert.ErrorIs(t, svc.DeleteTable(tenant(2), mine.ID), floorplan.ErrTableNotFound)

	floor, err := svc.FirstFloor(tenant(2))
	require.NoError(t, err)
	tables, err := svc.ListTables(tenant(2), floor.ID)
	require.NoError(t, err)
	assert.Empty(t, tables)

	_, err = svc.ListFloors(floorplan.Scope{})
	assert.ErrorIs(t, err, floorplan.ErrNoTenant)
}

func TestUpdateTablePositionsIsAllOrNothing(t *testing.T) {
	svc := NewSalonService(setupTestDB(t))
	scope := tenant(1)
	a := mustTable(t, svc, scope, TableInput{Name: "A"})

	err := svc.UpdateTablePositions(scope, []floorplan.PositionUpdate{
		{ID: a.ID, X: 240, Y: 48},
		{ID: "missing", X: 0, Y: 0},
	})
	assert.ErrorIs(t, err, floorplan.ErrTableNotFound)

	reloaded, err := svc.GetTable(scope, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.PosX)

	require.NoError(t, svc.UpdateTablePositions(scope, []floorplan.PositionUpdate{{ID: a.ID, X: 240, Y: 48}}))
	reloaded, err = svc.GetTable(scope, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 240, reloaded.PosX)
	assert.Equal(t, 48, reloaded.PosY)
}

func TestUpdateTableGroup(t *testing.T) {
	svc := NewSalonService(setupTestDB(t))
	scope := tenant(1)
	a := mustTable(t, svc, scope, TableInput{Name: "A"})
	b := mustTable(t, svc, scope, TableInput{Name: "B"})

	require.NoError(t, svc.UpdateTableGroup(scope, []string{a.ID, b.ID}, &b.ID))
	for _, id := range []string{a.ID, b.ID} {
		table, err := svc.GetTable(scope, id)
		require.NoError(t, err)
		require.NotNil(t, table.GroupID)
		assert.Equal(t, b.ID, *table.GroupID)
	}

	require.NoError(t, svc.UpdateTableGroup(scope, []string{a.ID, b.ID}, nil))
	table, err := svc.GetTable(scope, a.ID)
	require.NoError(t, err)
	assert.Nil(t, table.GroupID)
}

func TestTableDetailsAndStatus(t *testing.T) {
	svc := NewSalonService(setupTestDB(t))
	scope := tenant(1)
	a := mustTable(t, svc, scope, TableInput{Name: "A"})

	name, capacity := "Ventana", 6
	shape := floorplan.ShapeRound
	updated, err := svc.UpdateTableDetails(scope, a.ID, TableUpdate{Name: &name, Capacity: &capacity, Shape: &shape})
	require.NoError(t, err)
	assert.Equal(t, "Ventana", updated.Name)
	assert.Equal(t, 6, updated.Capacity)
	assert.Equal(t, "round", updated.Shape)

	require.NoError(t, svc.ChangeTableStatus(scope, a.ID, floorplan.StatusDirty))
	reloaded, err := svc.GetTable(scope, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "dirty", reloaded.Status)

	assert.ErrorIs(t, svc.ChangeTableStatus(scope, a.ID, "broken"), floorplan.ErrInvalidStatus)
	assert.ErrorIs(t, svc.UpdateTableShape(scope, a.ID, "star"), floorplan.ErrInvalidShape)

	require.NoError(t, svc.UpdateTableSize(scope, a.ID, 10, 120))
	reloaded, err = svc.GetTable(scope, a.ID)
	require.NoError(t, err)
	assert.Equal(t, floorplan.MinSize, reloaded.Width)
	assert.Equal(t, 120, reloaded.Height)
}

func TestLabels(t *testing.T) {
	svc := NewSalonService(setupTestDB(t))
	scope := tenant(1)
	floor, err := svc.FirstFloor(scope)
	require.NoError(t, err)

	label, err := svc.CreateLabel(scope, floorplan.LabelInput{Name: "Barra", X: 24, Y: 24, FloorID: &floor.ID})
	require.NoError(t, err)
	assert.NotEmpty(t, label.ID)

	_, err = svc.CreateLabel(scope, floorplan.LabelInput{Name: "  "})
	assert.ErrorIs(t, err, floorplan.ErrEmptyLabelName)

	require.NoError(t, svc.UpdateLabelPosition(scope, label.ID, 480, 96))
	name := "Barra principal"
	require.NoError(t, svc.UpdateLabel(scope, label.ID, LabelUpdate{Name: &name}))

	labels, err := svc.ListLabels(scope, floor.ID)
	require.NoError(t, err)
	require.Len(t, labels, 1)
	assert.Equal(t, "Barra principal", labels[0].Name)
	assert.Equal(t, 480, labels[0].PosX)

	require.NoError(t, svc.DeleteLabel(scope, label.ID))
	assert.ErrorIs(t, svc.DeleteLabel(scope, label.ID), floorplan.ErrLabelNotFound)
}

func TestMutationsRecordLayoutChanges(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSalonService(db)
	scope := tenant(3)

	a := mustTable(t, svc, scope, TableInput{Name: "A"})
	require.NoError(t, svc.UpdateTablePositions(scope, []floorplan.PositionUpdate{{ID: a.ID, X: 48, Y: 48}}))
	require.NoError(t, svc.DeleteTable(scope, a.ID))

	var changes []models.LayoutChange
	require.NoError(t, db.Where("restaurant_id = ? AND entity = ?", 3, "table").Order("id").Find(&changes).Error)
	require.Len(t, changes, 3)
	assert.Equal(t, models.ChangeInsert, changes[0].ActionType)
	assert.Equal(t, models.ChangeUpdate, changes[1].ActionType)
	assert.Equal(t, models.ChangeDelete, changes[2].ActionType)
	assert.Contains(t, string(changes[1].Payload), `"x":48`)
	assert.False(t, changes[0].Processed)
}

func TestSalonStats(t *testing.T) {
	salon := NewSalonService(setupTestDB(t))
	scope := tenant(1)

	a := mustTable(t, salon, scope, TableInput{Name: "A", Capacity: 2})
	b := mustTable(t, salon, scope, TableInput{Name: "B", Capacity: 6})
	mustTable(t, salon, scope, TableInput{Name: "C"})
	mustTable(t, salon, tenant(2), TableInput{Name: "Other"})

	groupID := b.ID
	require.NoError(t, salon.UpdateTableGroup(scope, []string{a.ID, b.ID}, &groupID))
	require.NoError(t, salon.ChangeTableStatus(scope, b.ID, floorplan.StatusOccupied))
	_, err := salon.ListFloors(scope)
	require.NoError(t, err)

	stats, err := salon.Stats(scope)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Floors)
	assert.Equal(t, int64(3), stats.Tables)
	assert.Equal(t, int64(12), stats.Seats)
	assert.Equal(t, int64(6), stats.OccupiedSeats)
	assert.Equal(t, int64(1), stats.Groups)
	assert.Equal(t, TableStats{Free: 2, Occupied: 1}, stats.TableStats)
}
