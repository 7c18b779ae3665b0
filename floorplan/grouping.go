package floorplan

import (
	"fmt"
	"slices"
	"strings"
)

type groupChange struct {
	TableIDs []string
	GroupID  string
}

// overlapping returns the index of the first other table strictly
// overlapping table i, or -1.
func (l *Layout) overlapping(i int) int {
	b := l.tables[i].Bounds()
	for j, other := range l.tables {
		if j != i && b.Overlaps(other.Bounds()) {
			return j
		}
	}
	return -1
}

// merge puts source, target and every member of either group into the
// target's group, which is the target's group id or the target's own id.
func (l *Layout) merge(source, target int) groupChange {
	sourceGroup := l.tables[source].groupKey()
	targetGroup := l.tables[target].groupKey()
	groupID := targetGroup

	var ids []string
	for i := range l.tables {
		t := &l.tables[i]
		key := ""
		if t.GroupID != nil {
			key = *t.GroupID
		}
		if i == source || i == target || (key != "" && (key == sourceGroup || key == targetGroup)) {
			gid := groupID
			t.GroupID = &gid
			ids = append(ids, t.ID)
		}
	}
	return groupChange{TableIDs: ids, GroupID: groupID}
}

func (l *Layout) collides(i int, x, y int) bool {
	t := l.tables[i]
	candidate := Rect{Left: x, Top: y, Right: x + t.Width, Bottom: y + t.Height}
	for j, other := range l.tables {
		if j != i && candidate.Overlaps(other.Bounds()) {
			return true
		}
	}
	return false
}

// nearestFreeSpot tries the slots right of, left of, below and above the
// target, one grid unit away, and returns the first one that collides with
// nothing.
func (l *Layout) nearestFreeSpot(i, target int) (Position, bool) {
	t := l.tables[i]
	tb := l.tables[target].Bounds()
	candidates := []Position{
		{X: tb.Right + GridSize, Y: tb.Top},
		{X: tb.Left - t.Width - GridSize, Y: tb.Top},
		{X: tb.Left, Y: tb.Bottom + GridSize},
		{X: tb.Left, Y: tb.Top - t.Height - GridSize},
	}
	for _, c := range candidates {
		x, y := l.clampPosition(Snap(float64(c.X)), Snap(float64(c.Y)), t.Width, t.Height)
		if !l.collides(i, x, y) {
			return Position{X: x, Y: y}, true
		}
	}
	return Position{}, false
}

func (l *Layout) resolveOverlap(id string) (groupChange, bool) {
	i := l.tableIndex(id)
	if i < 0 {
		return groupChange{}, false
	}
	target := l.overlapping(i)
	if target < 0 {
		return groupChange{}, false
	}

	change := l.merge(i, target)
	if pos, ok := l.nearestFreeSpot(i, target); ok {
		l.tables[i].X, l.tables[i].Y = pos.X, pos.Y
	}
	return change, true
}

// ResolveOverlap merges the table into the group of the first table it
// overlaps and nudges it to the nearest free slot beside that table. When
// no slot is free the table keeps its overlapping position. It reports
// whether anything changed.
func (l *Layout) ResolveOverlap(scope Scope, id string) (bool, error) {
	if err := scope.Validate(); err != nil {
		return false, err
	}
	if l.tableIndex(id) < 0 {
		return false, fmt.Errorf("%w: %s", ErrTableNotFound, id)
	}
	change, ok := l.resolveOverlap(id)
	if !ok {
		return false, nil
	}
	t, _ := l.Table(id)
	l.committer.Go(scope, "resolve-overlap", func(store Store, sc Scope) error {
		if err := store.UpdateTableGroup(sc, change.TableIDs, &change.GroupID); err != nil {
			return err
		}
		return store.UpdateTablePositions(sc, []PositionUpdate{{ID: t.ID, X: t.X, Y: t.Y}})
	})
	return true, nil
}

// MergeTables joins source into target's group and places source beside
// the target: to the right when there is more room that way and the table
// fits, below otherwise.
func (l *Layout) MergeTables(scope Scope, sourceID, targetID string) error {
	if err := scope.Validate(); err != nil {
		return err
	}
	source, target := l.tableIndex(sourceID), l.tableIndex(targetID)
	if source < 0 {
		return fmt.Errorf("%w: %s", ErrTableNotFound, sourceID)
	}
	if target < 0 {
		return fmt.Errorf("%w: %s", ErrTableNotFound, targetID)
	}
	if source == target {
		return fmt.Errorf("%w: %s", ErrSelfMerge, sourceID)
	}

	change := l.merge(source, target)
	pos := l.mergePlacement(source, target)
	l.tables[source].X, l.tables[source].Y = pos.X, pos.Y

	l.committer.Go(scope, "merge", func(store Store, sc Scope) error {
		if err := store.UpdateTableGroup(sc, change.TableIDs, &change.GroupID); err != nil {
			return err
		}
		return store.UpdateTablePositions(sc, []PositionUpdate{{ID: sourceID, X: pos.X, Y: pos.Y}})
	})
	return nil
}

func (l *Layout) mergePlacement(source, target int) Position {
	cw, ch := l.floor.canvas()
	s := l.tables[source]
	tb := l.tables[target].Bounds()

	spaceRight := cw - tb.Right
	spaceBottom := ch - tb.Bottom

	var x, y int
	if spaceRight >= s.Width+GridSize && spaceRight > spaceBottom {
		x, y = Snap(float64(tb.Right+GridSize)), Snap(float64(tb.Top))
	} else {
		x, y = Snap(float64(tb.Left)), Snap(float64(tb.Bottom+GridSize))
	}
	x, y = l.clampPosition(x, y, s.Width, s.Height)
	return Position{X: x, Y: y}
}

// UngroupTable clears the group id of every member of the table's group.
func (l *Layout) UngroupTable(scope Scope, id string) error {
	if err := scope.Validate(); err != nil {
		return err
	}
	if l.tableIndex(id) < 0 {
		return fmt.Errorf("%w: %s", ErrTableNotFound, id)
	}
	l.ungroup(scope, l.GroupMembers(id))
	return nil
}

// UngroupSelection clears the group id of every selected table.
func (l *Layout) UngroupSelection(scope Scope) error {
	if err := scope.Validate(); err != nil {
		return err
	}
	if len(l.selection) == 0 {
		return nil
	}
	l.ungroup(scope, slices.Clone(l.selection))
	return nil
}

func (l *Layout) ungroup(scope Scope, ids []string) {
	for i := range l.tables {
		if slices.Contains(ids, l.tables[i].ID) {
			l.tables[i].GroupID = nil
		}
	}
	l.committer.Go(scope, "ungroup", func(store Store, sc Scope) error {
		return store.UpdateTableGroup(sc, ids, nil)
	})
}

func (l *Layout) ChangeShape(scope Scope, id string, shape Shape) error {
	if err := scope.Validate(); err != nil {
		return err
	}
	if !shape.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidShape, shape)
	}
	i := l.tableIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrTableNotFound, id)
	}
	l.tables[i].Shape = shape
	l.committer.Go(scope, "shape", func(store Store, sc Scope) error {
		return store.UpdateTableShape(sc, id, shape)
	})
	return nil
}

// AddLabel creates a label at the next free offset along the top edge.
// Unlike layout edits it is written synchronously since the id comes from
// storage.
func (l *Layout) AddLabel(scope Scope, name string) (Label, error) {
	if err := scope.Validate(); err != nil {
		return Label{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Label{}, ErrEmptyLabelName
	}

	floorID := l.floor.ID
	in := LabelInput{
		Name: name,
		X:    Snap(float64(GridSize + len(l.labels)*48)),
		Y:    Snap(GridSize),
	}
	if floorID != "" {
		in.FloorID = &floorID
	}

	label, err := l.committer.Store().CreateLabel(scope, in)
	if err != nil {
		return Label{}, fmt.Errorf("create label: %w", err)
	}
	l.labels = append(l.labels, label)
	return label, nil
}

func (l *Layout) RemoveLabel(scope Scope, id string) error {
	if err := scope.Validate(); err != nil {
		return err
	}
	i := l.labelIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrLabelNotFound, id)
	}
	if err := l.committer.Store().DeleteLabel(scope, id); err != nil {
		return fmt.Errorf("delete label: %w", err)
	}
	l.labels = slices.Delete(l.labels, i, i+1)
	return nil
}
