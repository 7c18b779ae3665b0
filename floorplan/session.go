package floorplan

// DragKind selects which session BeginDrag opens.
type DragKind string

const (
	DragMove      DragKind = "move"
	DragResize    DragKind = "resize"
	DragLabel     DragKind = "label"
	DragBoxSelect DragKind = "box-select"
)

// Pointer is one pointer event. For box-select sessions X and Y are
// canvas-local; for the other kinds only deltas matter.
type Pointer struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

func (p Pointer) point() Point { return Point{X: p.X, Y: p.Y} }

type Modifiers struct {
	// Individual drags only the clicked table even if it belongs to a group.
	Individual bool `json:"individual"`
	// MultiSelect toggles the clicked group in the current selection, or
	// extends it when box-selecting.
	MultiSelect bool `json:"multi_select"`
}

// Session is the state held between pointer-down and pointer-up. The
// concrete types are MoveSession, ResizeSession, LabelSession and
// BoxSelectSession.
type Session interface {
	Kind() DragKind
	PointerID() int
	sealed()
}

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type MoveSession struct {
	Pointer   int
	Origin    Point
	Start     map[string]Position
	Selection []string
}

type ResizeSession struct {
	Pointer     int
	Origin      Point
	TableID     string
	StartWidth  int
	StartHeight int
}

type LabelSession struct {
	Pointer int
	Origin  Point
	LabelID string
	Start   Position
}

type BoxSelectSession struct {
	Pointer        int
	Anchor         Point
	AddToSelection bool
	Box            *Box
}

func (*MoveSession) Kind() DragKind      { return DragMove }
func (*ResizeSession) Kind() DragKind    { return DragResize }
func (*LabelSession) Kind() DragKind     { return DragLabel }
func (*BoxSelectSession) Kind() DragKind { return DragBoxSelect }

func (s *MoveSession) PointerID() int      { return s.Pointer }
func (s *ResizeSession) PointerID() int    { return s.Pointer }
func (s *LabelSession) PointerID() int     { return s.Pointer }
func (s *BoxSelectSession) PointerID() int { return s.Pointer }

func (*MoveSession) sealed()      {}
func (*ResizeSession) sealed()    {}
func (*LabelSession) sealed()     {}
func (*BoxSelectSession) sealed() {}
