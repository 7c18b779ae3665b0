package floorplan

import (
	"slices"
)

// Layout is the editable working copy of one floor. It is not safe for
// concurrent use; callers serialize access per editor.
type Layout struct {
	floor     Floor
	tables    []Table
	labels    []Label
	selection []string
	session   Session
	committer *Committer
}

func New(floor Floor, tables []Table, labels []Label, committer *Committer) *Layout {
	l := &Layout{committer: committer}
	l.load(floor, tables, labels)
	return l
}

func (l *Layout) load(floor Floor, tables []Table, labels []Label) {
	l.floor = floor
	l.tables = make([]Table, len(tables))
	for i, t := range tables {
		if t.Width <= 0 {
			t.Width = DefaultSize
		}
		if t.Height <= 0 {
			t.Height = DefaultSize
		}
		if t.Shape == "" {
			t.Shape = ShapeRect
		}
		l.tables[i] = t
	}
	l.labels = slices.Clone(labels)
}

// Refresh replaces the working copy with freshly fetched data. Selected ids
// that still exist stay selected. It refuses while a drag is in progress.
func (l *Layout) Refresh(floor Floor, tables []Table, labels []Label) error {
	if l.session != nil {
		return ErrSessionActive
	}
	l.load(floor, tables, labels)

	kept := l.selection[:0]
	for _, id := range l.selection {
		if l.tableIndex(id) >= 0 {
			kept = append(kept, id)
		}
	}
	l.selection = kept
	return nil
}

func (l *Layout) Floor() Floor { return l.floor }

func (l *Layout) Tables() []Table { return slices.Clone(l.tables) }

func (l *Layout) Labels() []Label { return slices.Clone(l.labels) }

func (l *Layout) Selection() []string { return slices.Clone(l.selection) }

func (l *Layout) Session() Session { return l.session }

// SelectionBox is the rubber band of an active box-select, if any.
func (l *Layout) SelectionBox() (Box, bool) {
	if s, ok := l.session.(*BoxSelectSession); ok && s.Box != nil {
		return *s.Box, true
	}
	return Box{}, false
}

// Pending is the number of commits still in flight for this layout.
func (l *Layout) Pending() int64 { return l.committer.Pending() }

// Wait blocks until all background commits issued so far have finished.
func (l *Layout) Wait() { l.committer.Wait() }

func (l *Layout) Table(id string) (Table, bool) {
	i := l.tableIndex(id)
	if i < 0 {
		return Table{}, false
	}
	return l.tables[i], true
}

func (l *Layout) Label(id string) (Label, bool) {
	i := l.labelIndex(id)
	if i < 0 {
		return Label{}, false
	}
	return l.labels[i], true
}

// Snapshot is a read-only view for rendering.
type Snapshot struct {
	Floor        Floor    `json:"floor"`
	Tables       []Table  `json:"tables"`
	Labels       []Label  `json:"labels"`
	Selection    []string `json:"selection"`
	SelectionBox *Box     `json:"selection_box,omitempty"`
	Dragging     DragKind `json:"dragging,omitempty"`
	Pending      int64    `json:"pending"`
}

func (l *Layout) Snapshot() Snapshot {
	snap := Snapshot{
		Floor:     l.floor,
		Tables:    l.Tables(),
		Labels:    l.Labels(),
		Selection: l.Selection(),
		Pending:   l.Pending(),
	}
	if box, ok := l.SelectionBox(); ok {
		snap.SelectionBox = &box
	}
	if l.session != nil {
		snap.Dragging = l.session.Kind()
	}
	return snap
}

func (l *Layout) tableIndex(id string) int {
	return slices.IndexFunc(l.tables, func(t Table) bool { return t.ID == id })
}

func (l *Layout) labelIndex(id string) int {
	return slices.IndexFunc(l.labels, func(lb Label) bool { return lb.ID == id })
}

// GroupMembers returns every table sharing id's group, or just id when the
// table is not grouped.
func (l *Layout) GroupMembers(id string) []string {
	i := l.tableIndex(id)
	if i < 0 || l.tables[i].GroupID == nil {
		return []string{id}
	}
	group := *l.tables[i].GroupID
	var ids []string
	for _, t := range l.tables {
		if t.GroupID != nil && *t.GroupID == group {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

// maxPosition is the largest grid-aligned position keeping a size-long
// extent inside a canvas of the given length.
func maxPosition(canvas, size int) int {
	return snapDown(canvas - size)
}

func (l *Layout) clampPosition(x, y, width, height int) (int, int) {
	cw, ch := l.floor.canvas()
	return clamp(x, 0, maxPosition(cw, width)), clamp(y, 0, maxPosition(ch, height))
}

// Fit snaps a table's position and size to the grid and moves it back
// inside the floor's canvas.
func (f Floor) Fit(t Table) Table {
	cw, ch := f.canvas()
	t.Width = clamp(Snap(float64(t.Width)), MinSize, snapDown(cw))
	t.Height = clamp(Snap(float64(t.Height)), MinSize, snapDown(ch))
	t.X = clamp(Snap(float64(t.X)), 0, maxPosition(cw, t.Width))
	t.Y = clamp(Snap(float64(t.Y)), 0, maxPosition(ch, t.Height))
	return t
}
