package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yeremiapane/gastro-os/floorplan"
	"github.com/yeremiapane/gastro-os/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrLastFloor       = errors.New("cannot delete the only floor")
	ErrFloorNotFound   = errors.New("floor not found")
	ErrInvalidCapacity = errors.New("capacity must be at least 1")
	ErrInvalidGrid     = errors.New("grid size must be at least one table wide")
	ErrEmptyName       = errors.New("name is required")
)

const (
	entityFloor = "floor"
	entityTable = "table"
	entityLabel = "label"
)

// SalonService persists floors, tables and labels. Every statement is
// filtered by the scope's restaurant, and every committed mutation appends
// a LayoutChange row in the same transaction.
type SalonService struct {
	DB *gorm.DB
}

var _ floorplan.Store = (*SalonService)(nil)

func NewSalonService(db *gorm.DB) *SalonService {
	return &SalonService{DB: db}
}

func (s *SalonService) db(scope floorplan.Scope) (*gorm.DB, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	return s.DB.WithContext(scope.Ctx()), nil
}

func (s *SalonService) tx(scope floorplan.Scope, fn func(tx *gorm.DB) error) error {
	db, err := s.db(scope)
	if err != nil {
		return err
	}
	return db.Transaction(fn)
}

func recordChange(tx *gorm.DB, scope floorplan.Scope, floorID *string, entity, entityID, action string, payload interface{}) error {
	change := models.LayoutChange{
		RestaurantID: scope.TenantID,
		FloorID:      floorID,
		Entity:       entity,
		EntityID:     entityID,
		ActionType:   action,
		ChangedAt:    time.Now(),
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode change payload: %w", err)
		}
		change.Payload = datatypes.JSON(raw)
	}
	return tx.Create(&change).Error
}

// ---------------------------------------------------------------------
// Floors
// ---------------------------------------------------------------------

type FloorInput struct {
	Name       string `json:"name"`
	GridWidth  int    `json:"grid_width"`
	GridHeight int    `json:"grid_height"`
}

type FloorUpdate struct {
	Name       *string `json:"name"`
	GridWidth  *int    `json:"grid_width"`
	GridHeight *int    `json:"grid_height"`
}

// ListFloors returns the restaurant's floors by order. A restaurant without
// floors gets the default one created on the spot.
func (s *SalonService) ListFloors(scope floorplan.Scope) ([]models.Floor, error) {
	db, err := s.db(scope)
	if err != nil {
		return nil, err
	}

	var floors []models.Floor
	if err := db.Where("restaurant_id = ?", scope.TenantID).
		Order("sort_order ASC").Order("created_at ASC").
		Find(&floors).Error; err != nil {
		return nil, err
	}
	if len(floors) > 0 {
		return floors, nil
	}

	floor := models.Floor{
		RestaurantID: scope.TenantID,
		Name:         floorplan.DefaultFloorName,
		Order:        1,
		GridWidth:    floorplan.DefaultGridWidth,
		GridHeight:   floorplan.DefaultGridHeight,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&floor).Error; err != nil {
			return err
		}
		return recordChange(tx, scope, &floor.ID, entityFloor, floor.ID, models.ChangeInsert, floor)
	})
	if err != nil {
		return nil, fmt.Errorf("create default floor: %w", err)
	}
	return []models.Floor{floor}, nil
}

// FirstFloor is where tables and labels without a floor are shown.
func (s *SalonService) FirstFloor(scope floorplan.Scope) (models.Floor, error) {
	floors, err := s.ListFloors(scope)
	if err != nil {
		return models.Floor{}, err
	}
	return floors[0], nil
}

func (s *SalonService) GetFloor(scope floorplan.Scope, id string) (models.Floor, error) {
	db, err := s.db(scope)
	if err != nil {
		return models.Floor{}, err
	}
	var floor models.Floor
	err = db.Where("id = ? AND restaurant_id = ?", id, scope.TenantID).First(&floor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Floor{}, ErrFloorNotFound
	}
	return floor, err
}

func (s *SalonService) CreateFloor(scope floorplan.Scope, in FloorInput) (models.Floor, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Floor{}, ErrEmptyName
	}
	if in.GridWidth == 0 {
		in.GridWidth = floorplan.DefaultGridWidth
	}
	if in.GridHeight == 0 {
		in.GridHeight = floorplan.DefaultGridHeight
	}
	if err := validateGrid(in.GridWidth, in.GridHeight); err != nil {
		return models.Floor{}, err
	}

	var floor models.Floor
	err := s.tx(scope, func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Floor{}).Where("restaurant_id = ?", scope.TenantID).Count(&count).Error; err != nil {
			return err
		}
		floor = models.Floor{
			RestaurantID: scope.TenantID,
			Name:         name,
			Order:        int(count) + 1,
			GridWidth:    in.GridWidth,
			GridHeight:   in.GridHeight,
		}
		if err := tx.Create(&floor).Error; err != nil {
			return err
		}
		return recordChange(tx, scope, &floor.ID, entityFloor, floor.ID, models.ChangeInsert, floor)
	})
	return floor, err
}

func (s *SalonService) UpdateFloor(scope floorplan.Scope, id string, in FloorUpdate) (models.Floor, error) {
	updates := map[string]interface{}{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return models.Floor{}, ErrEmptyName
		}
		updates["name"] = name
	}

	var floor models.Floor
	err := s.tx(scope, func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND restaurant_id = ?", id, scope.TenantID).First(&floor).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFloorNotFound
			}
			return err
		}

		width, height := floor.GridWidth, floor.GridHeight
		if in.GridWidth != nil {
			width = *in.GridWidth
			updates["grid_width"] = width
		}
		if in.GridHeight != nil {
			height = *in.GridHeight
			updates["grid_height"] = height
		}
		if err := validateGrid(width, height); err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&floor).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Where("id = ?", floor.ID).First(&floor).Error; err != nil {
			return err
		}
		if err := s.refitTables(tx, scope, floor); err != nil {
			return err
		}
		return recordChange(tx, scope, &floor.ID, entityFloor, floor.ID, models.ChangeUpdate, updates)
	})
	return floor, err
}

// refitTables moves the floor's tables back inside its grid after a resize.
func (s *SalonService) refitTables(tx *gorm.DB, scope floorplan.Scope, floor models.Floor) error {
	first, err := s.tableFloor(tx, scope, nil)
	if err != nil {
		return err
	}
	q := tx.Where("restaurant_id = ?", scope.TenantID)
	if first.ID == floor.ID {
		q = q.Where("floor_id = ? OR floor_id IS NULL", floor.ID)
	} else {
		q = q.Where("floor_id = ?", floor.ID)
	}
	var tables []models.Table
	if err := q.Find(&tables).Error; err != nil {
		return err
	}

	canvas := floor.ToLayout()
	for i := range tables {
		t := &tables[i]
		if !fitTable(canvas, t) {
			continue
		}
		if err := tx.Model(t).Updates(map[string]interface{}{
			"pos_x":  t.PosX,
			"pos_y":  t.PosY,
			"width":  t.Width,
			"height": t.Height,
		}).Error; err != nil {
			return err
		}
	}
	return nil
}

// DeleteFloor removes a floor. Its tables and labels lose their floor and
// show up on the first remaining floor.
func (s *SalonService) DeleteFloor(scope floorplan.Scope, id string) error {
	return s.tx(scope, func(tx *gorm.DB) error {
		var floor models.Floor
		if err := tx.Where("id = ? AND restaurant_id = ?", id, scope.TenantID).First(&floor).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFloorNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.Floor{}).Where("restaurant_id = ?", scope.TenantID).Count(&count).Error; err != nil {
			return err
		}
		if count <= 1 {
			return ErrLastFloor
		}

		if err := tx.Model(&models.Table{}).
			Where("restaurant_id = ? AND floor_id = ?", scope.TenantID, id).
			Update("floor_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Label{}).
			Where("restaurant_id = ? AND floor_id = ?", scope.TenantID, id).
			Update("floor_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Delete(&floor).Error; err != nil {
			return err
		}
		return recordChange(tx, scope, &floor.ID, entityFloor, floor.ID, models.ChangeDelete, nil)
	})
}

func validateGrid(width, height int) error {
	if width < floorplan.DefaultSize || height < floorplan.DefaultSize {
		return ErrInvalidGrid
	}
	return nil
}

// ---------------------------------------------------------------------
// Tables
// ---------------------------------------------------------------------

type TableInput struct {
	Name     string          `json:"name"`
	Capacity int             `json:"capacity"`
	FloorID  *string         `json:"floor_id"`
	X        int             `json:"pos_x"`
	Y        int             `json:"pos_y"`
	Width    int             `json:"width"`
	Height   int             `json:"height"`
	Shape    floorplan.Shape `json:"shape"`
}

type TableUpdate struct {
	Name     *string          `json:"name"`
	Capacity *int             `json:"capacity"`
	Width    *int             `json:"width"`
	Height   *int             `json:"height"`
	Shape    *floorplan.Shape `json:"shape"`
	FloorID  *string          `json:"floor_id"`
}

// ListTables returns the tables of a floor. Tables without a floor belong
// to the first floor.
func (s *SalonService) ListTables(scope floorplan.Scope, floorID string) ([]models.Table, error) {
	first, err := s.FirstFloor(scope)
	if err != nil {
		return nil, err
	}
	db, _ := s.db(scope)

	q := db.Where("restaurant_id = ?", scope.TenantID)
	if floorID == first.ID {
		q = q.Where("floor_id = ? OR floor_id IS NULL", floorID)
	} else {
		q = q.Where("floor_id = ?", floorID)
	}

	var tables []models.Table
	if err := q.Order("created_at ASC").Order("id ASC").Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

func (s *SalonService) GetTable(scope floorplan.Scope, id string) (models.Table, error) {
	db, err := s.db(scope)
	if err != nil {
		return models.Table{}, err
	}
	var table models.Table
	err = db.Where("id = ? AND restaurant_id = ?", id, scope.TenantID).First(&table).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Table{}, fmt.Errorf("%w: %s", floorplan.ErrTableNotFound, id)
	}
	return table, err
}

func (s *SalonService) CreateTable(scope floorplan.Scope, in TableInput) (models.Table, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Table{}, ErrEmptyName
	}
	if in.Capacity == 0 {
		in.Capacity = 4
	}
	if in.Capacity < 1 {
		return models.Table{}, ErrInvalidCapacity
	}
	if in.Shape == "" {
		in.Shape = floorplan.ShapeRect
	}
	if !in.Shape.Valid() {
		return models.Table{}, fmt.Errorf("%w: %q", floorplan.ErrInvalidShape, in.Shape)
	}
	size := floorplan.DefaultTableSize(in.Capacity)
	if in.Width <= 0 {
		in.Width = size
	}
	if in.Height <= 0 {
		in.Height = size
	}

	table := models.Table{
		RestaurantID: scope.TenantID,
		FloorID:      in.FloorID,
		Name:         name,
		Capacity:     in.Capacity,
		Status:       string(floorplan.StatusFree),
		PosX:         in.X,
		PosY:         in.Y,
		Width:        in.Width,
		Height:       in.Height,
		Shape:        string(in.Shape),
	}
	err := s.tx(scope, func(tx *gorm.DB) error {
		floor, err := s.tableFloor(tx, scope, in.FloorID)
		if err != nil {
			return err
		}
		fitTable(floor, &table)
		if err := tx.Create(&table).Error; err != nil {
			return err
		}
		return recordChange(tx, scope, table.FloorID, entityTable, table.ID, models.ChangeInsert, table)
	})
	return table, err
}

// tableFloor returns the floor a table is drawn on: floorID, or the first
// floor when floorID is nil.
func (s *SalonService) tableFloor(tx *gorm.DB, scope floorplan.Scope, floorID *string) (floorplan.Floor, error) {
	var floor models.Floor
	if floorID == nil {
		err := tx.Where("restaurant_id = ?", scope.TenantID).
			Order("sort_order ASC").Order("created_at ASC").
			First(&floor).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return floorplan.Floor{}, err
		}
		return floor.ToLayout(), nil
	}
	err := tx.Where("id = ? AND restaurant_id = ?", *floorID, scope.TenantID).First(&floor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return floorplan.Floor{}, ErrFloorNotFound
	}
	return floor.ToLayout(), err
}

// fitTable snaps the table's geometry to the grid and keeps it on the
// floor. It reports whether anything moved.
func fitTable(floor floorplan.Floor, table *models.Table) bool {
	fitted := floor.Fit(table.ToLayout())
	changed := fitted.X != table.PosX || fitted.Y != table.PosY ||
		fitted.Width != table.Width || fitted.Height != table.Height
	table.PosX, table.PosY = fitted.X, fitted.Y
	table.Width, table.Height = fitted.Width, fitted.Height
	return changed
}

func (s *SalonService) checkFloor(tx *gorm.DB, scope floorplan.Scope, floorID *string) error {
	if floorID == nil {
		return nil
	}
	var count int64
	if err := tx.Model(&models.Floor{}).
		Where("id = ? AND restaurant_id = ?", *floorID, scope.TenantID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrFloorNotFound
	}
	return nil
}

func (s *SalonService) UpdateTableDetails(scope floorplan.Scope, id string, in TableUpdate) (models.Table, error) {
	updates := map[string]interface{}{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return models.Table{}, ErrEmptyName
		}
		updates["name"] = name
	}
	if in.Capacity != nil {
		if *in.Capacity < 1 {
			return models.Table{}, ErrInvalidCapacity
		}
		updates["capacity"] = *in.Capacity
	}
	if in.Shape != nil {
		if !in.Shape.Valid() {
			return models.Table{}, fmt.Errorf("%w: %q", floorplan.ErrInvalidShape, *in.Shape)
		}
		updates["shape"] = string(*in.Shape)
	}
	if in.FloorID != nil {
		updates["floor_id"] = *in.FloorID
	}

	var table models.Table
	err := s.tx(scope, func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND restaurant_id = ?", id, scope.TenantID).First(&table).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", floorplan.ErrTableNotFound, id)
			}
			return err
		}
		if len(updates) == 0 && in.Width == nil && in.Height == nil {
			return nil
		}
		floorID := table.FloorID
		if in.FloorID != nil {
			floorID = in.FloorID
		}
		floor, err := s.tableFloor(tx, scope, floorID)
		if err != nil {
			return err
		}
		if in.Width != nil {
			table.Width = *in.Width
		}
		if in.Height != nil {
			table.Height = *in.Height
		}
		fitTable(floor, &table)
		updates["pos_x"], updates["pos_y"] = table.PosX, table.PosY
		updates["width"], updates["height"] = table.Width, table.Height

		if err := tx.Model(&table).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Where("id = ?", table.ID).First(&table).Error; err != nil {
			return err
		}
		return recordChange(tx, scope, table.FloorID, entityTable, table.ID, models.ChangeUpdate, updates)
	})
	return table, err
}

// ChangeTableStatus is the service-floor status switch used by the POS.
func (s *SalonService) ChangeTableStatus(scope floorplan.Scope, id string, status floorplan.Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", floorplan.ErrInvalidStatus, status)
	}
	return s.updateTable(scope, id, models.ChangeUpdate, map[string]interface{}{"status": string(status)})
}

func (s *SalonService) DeleteTable(scope floorplan.Scope, id string) error {
	return s.tx(scope, func(tx *gorm.DB) error {
		var table models.Table
		if err := tx.Where("id = ? AND restaurant_id = ?", id, scope.TenantID).First(&table).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", floorplan.ErrTableNotFound, id)
			}
			return err
		}
		if err := tx.Delete(&table).Error; err != nil {
			return err
		}
		return recordChange(tx, scope, table.FloorID, entityTable, table.ID, models.ChangeDelete, nil)
	})
}

// UpdateTablePositions writes all positions or none.
func (s *SalonService) UpdateTablePositions(scope floorplan.Scope, updates []floorplan.PositionUpdate) error {
	if len(updates) == 0 {
		return scope.Validate()
	}
	return s.tx(scope, func(tx *gorm.DB) error {
		for _, u := range updates {
			res := tx.Model(&models.Table{}).
				Where("id = ? AND restaurant_id = ?", u.ID, scope.TenantID).
				Updates(map[string]interface{}{"pos_x": u.X, "pos_y": u.Y})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: %s", floorplan.ErrTableNotFound, u.ID)
			}
		}
		return recordChange(tx, scope, nil, entityTable, "", models.ChangeUpdate, updates)
	})
}

func (s *SalonService) UpdateTableSize(scope floorplan.Scope, id string, width, height int) error {
	return s.updateTable(scope, id, models.ChangeUpdate, map[string]interface{}{
		"width":  max(floorplan.MinSize, width),
		"height": max(floorplan.MinSize, height),
	})
}

func (s *SalonService) UpdateTableShape(scope floorplan.Scope, id string, shape floorplan.Shape) error {
	if !shape.Valid() {
		return fmt.Errorf("%w: %q", floorplan.ErrInvalidShape, shape)
	}
	return s.updateTable(scope, id, models.ChangeUpdate, map[string]interface{}{"shape": string(shape)})
}

// UpdateTableGroup sets or, with a nil groupID, clears the group of every
// listed table.
func (s *SalonService) UpdateTableGroup(scope floorplan.Scope, ids []string, groupID *string) error {
	if len(ids) == 0 {
		return scope.Validate()
	}
	return s.tx(scope, func(tx *gorm.DB) error {
		if err := tx.Model(&models.Table{}).
			Where("id IN ? AND restaurant_id = ?", ids, scope.TenantID).
			Update("group_id", groupID).Error; err != nil {
			return err
		}
		return recordChange(tx, scope, nil, entityTable, "", models.ChangeUpdate, map[string]interface{}{
			"ids":      ids,
			"group_id": groupID,
		})
	})
}

func (s *SalonService) updateTable(scope floorplan.Scope, id, action string, updates map[string]interface{}) error {
	return s.tx(scope, func(tx *gorm.DB) error {
		var table models.Table
		if err := tx.Where("id = ? AND restaurant_id = ?", id, scope.TenantID).First(&table).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", floorplan.ErrTableNotFound, id)
			}
			return err
		}
		if err := tx.Model(&table).Updates(updates).Error; err != nil {
			return err
		}
		return recordChange(tx, scope, table.FloorID, entityTable, table.ID, action, updates)
	})
}

// ---------------------------------------------------------------------
// Labels
// ---------------------------------------------------------------------

type LabelUpdate struct {
	Name *string `json:"name"`
	X    *int    `json:"pos_x"`
	Y    *int    `json:"pos_y"`
}

// ListLabels returns the labels of a floor, with floorless labels on the
// first floor.
func (s *SalonService) ListLabels(scope floorplan.Scope, floorID string) ([]models.Label, error) {
	first, err := s.FirstFloor(scope)
	if err != nil {
		return nil, err
	}
	db, _ := s.db(scope)

	q := db.Where("restaurant_id = ?", scope.TenantID)
	if floorID == first.ID {
		q = q.Where("floor_id = ? OR floor_id IS NULL", floorID)
	} else {
		q = q.Where("floor_id = ?", floorID)
	}

	var labels []models.Label
	if err := q.Order("created_at ASC").Order("id ASC").Find(&labels).Error; err != nil {
		return nil, err
	}
	return labels, nil
}

func (s *SalonService) CreateLabel(scope floorplan.Scope, in floorplan.LabelInput) (floorplan.Label, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return floorplan.Label{}, floorplan.ErrEmptyLabelName
	}
	label := models.Label{
		RestaurantID: scope.TenantID,
		FloorID:      in.FloorID,
		Name:         name,
		PosX:         in.X,
		PosY:         in.Y,
	}
	err := s.tx(scope, func(tx *gorm.DB) error {
		if err := s.checkFloor(tx, scope, in.FloorID); err != nil {
			return err
		}
		if err := tx.Create(&label).Error; err != nil {
			return err
		}
		return recordChange(tx, scope, label.FloorID, entityLabel, label.ID, models.ChangeInsert, label)
	})
	if err != nil {
		return floorplan.Label{}, err
	}
	return label.ToLayout(), nil
}

func (s *SalonService) UpdateLabel(scope floorplan.Scope, id string, in LabelUpdate) error {
	updates := map[string]interface{}{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return floorplan.ErrEmptyLabelName
		}
		updates["name"] = name
	}
	if in.X != nil {
		updates["pos_x"] = *in.X
	}
	if in.Y != nil {
		updates["pos_y"] = *in.Y
	}
	if len(updates) == 0 {
		return scope.Validate()
	}
	return s.updateLabel(scope, id, updates)
}

func (s *SalonService) UpdateLabelPosition(scope floorplan.Scope, id string, x, y int) error {
	return s.updateLabel(scope, id, map[string]interface{}{"pos_x": x, "pos_y": y})
}

func (s *SalonService) updateLabel(scope floorplan.Scope, id string, updates map[string]interface{}) error {
	return s.tx(scope, func(tx *gorm.DB) error {
		var label models.Label
		if err := tx.Where("id = ? AND restaurant_id = ?", id, scope.TenantID).First(&label).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", floorplan.ErrLabelNotFound, id)
			}
			return err
		}
		if err := tx.Model(&label).Updates(updates).Error; err != nil {
			return err
		}
		return recordChange(tx, scope, label.FloorID, entityLabel, label.ID, models.ChangeUpdate, updates)
	})
}

func (s *SalonService) DeleteLabel(scope floorplan.Scope, id string) error {
	return s.tx(scope, func(tx *gorm.DB) error {
		var label models.Label
		if err := tx.Where("id = ? AND restaurant_id = ?", id, scope.TenantID).First(&label).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", floorplan.ErrLabelNotFound, id)
			}
			return err
		}
		if err := tx.Delete(&label).Error; err != nil {
			return err
		}
		return recordChange(tx, scope, label.FloorID, entityLabel, label.ID, models.ChangeDelete, nil)
	})
}

// FloorPlan loads everything an editor needs for one floor.
func (s *SalonService) FloorPlan(scope floorplan.Scope, floorID string) (floorplan.Floor, []floorplan.Table, []floorplan.Label, error) {
	floor, err := s.GetFloor(scope, floorID)
	if err != nil {
		return floorplan.Floor{}, nil, nil, err
	}
	tables, err := s.ListTables(scope, floorID)
	if err != nil {
		return floorplan.Floor{}, nil, nil, err
	}
	labels, err := s.ListLabels(scope, floorID)
	if err != nil {
		return floorplan.Floor{}, nil, nil, err
	}

	out := make([]floorplan.Table, len(tables))
	for i, t := range tables {
		out[i] = t.ToLayout()
	}
	outLabels := make([]floorplan.Label, len(labels))
	for i, l := range labels {
		outLabels[i] = l.ToLayout()
	}
	return floor.ToLayout(), out, outLabels, nil
}
