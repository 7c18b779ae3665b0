// Package floorplan implements the salon editor: an in-memory working copy
// of the tables and labels placed on one floor, mutated synchronously by
// pointer events and committed to storage in the background.
//
// All coordinates are layout units. Positions and sizes produced by the
// editor are multiples of GridSize.
package floorplan

import "errors"

const (
	GridSize    = 24
	MinSize     = 48
	DefaultSize = 72

	DefaultGridWidth  = 1200
	DefaultGridHeight = 800

	DefaultFloorName = "Principal"
)

var (
	ErrNoTenant        = errors.New("no tenant")
	ErrNoSession       = errors.New("no drag session active")
	ErrSessionActive   = errors.New("another drag session is active")
	ErrPointerMismatch = errors.New("pointer does not own the drag session")
	ErrTableNotFound   = errors.New("table not found")
	ErrLabelNotFound   = errors.New("label not found")
	ErrInvalidShape    = errors.New("invalid table shape")
	ErrInvalidStatus   = errors.New("invalid table status")
	ErrInvalidDragKind = errors.New("invalid drag kind")
	ErrEmptyLabelName  = errors.New("label name is empty")
	ErrSelfMerge       = errors.New("a table cannot be merged with itself")
)

type Shape string

const (
	ShapeRect  Shape = "rect"
	ShapeRound Shape = "round"
	ShapeBar   Shape = "bar"
)

func (s Shape) Valid() bool {
	switch s {
	case ShapeRect, ShapeRound, ShapeBar:
		return true
	}
	return false
}

type Status string

const (
	StatusFree     Status = "free"
	StatusOccupied Status = "occupied"
	StatusDirty    Status = "dirty"
)

func (s Status) Valid() bool {
	switch s {
	case StatusFree, StatusOccupied, StatusDirty:
		return true
	}
	return false
}

// Floor is a named canvas. GridWidth and GridHeight bound every table on it.
type Floor struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Order      int    `json:"order"`
	GridWidth  int    `json:"grid_width"`
	GridHeight int    `json:"grid_height"`
}

func (f Floor) canvas() (int, int) {
	w, h := f.GridWidth, f.GridHeight
	if w <= 0 {
		w = DefaultGridWidth
	}
	if h <= 0 {
		h = DefaultGridHeight
	}
	return w, h
}

type Table struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Capacity int     `json:"capacity"`
	Status   Status  `json:"status"`
	X        int     `json:"x"`
	Y        int     `json:"y"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Shape    Shape   `json:"shape"`
	GroupID  *string `json:"group_id"`
	FloorID  *string `json:"floor_id"`
}

// Bounds returns the table's axis-aligned bounding box.
func (t Table) Bounds() Rect {
	return Rect{Left: t.X, Top: t.Y, Right: t.X + t.Width, Bottom: t.Y + t.Height}
}

// groupKey is the id a merge adopts for this table: its group, or itself.
func (t Table) groupKey() string {
	if t.GroupID != nil {
		return *t.GroupID
	}
	return t.ID
}

type Label struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	X       int     `json:"x"`
	Y       int     `json:"y"`
	FloorID *string `json:"floor_id"`
}

// DefaultTableSize is the side of a new table when no explicit size is given.
func DefaultTableSize(capacity int) int {
	return max(DefaultSize, 56+capacity*4)
}
