package floorplan

import (
	"fmt"
	"slices"
)

// BeginDrag opens a drag session for pointer p. target is the table id for
// move and resize, the label id for label drags, and ignored for
// box-select. A session that is still open, even one owned by p, must be
// ended or abandoned first.
func (l *Layout) BeginDrag(scope Scope, kind DragKind, target string, p Pointer, mods Modifiers) error {
	if err := scope.Validate(); err != nil {
		return err
	}
	if l.session != nil {
		return ErrSessionActive
	}

	switch kind {
	case DragMove:
		return l.beginMove(target, p, mods)
	case DragResize:
		i := l.tableIndex(target)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrTableNotFound, target)
		}
		t := l.tables[i]
		l.session = &ResizeSession{
			Pointer:     p.ID,
			Origin:      p.point(),
			TableID:     t.ID,
			StartWidth:  t.Width,
			StartHeight: t.Height,
		}
	case DragLabel:
		i := l.labelIndex(target)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrLabelNotFound, target)
		}
		lb := l.labels[i]
		l.session = &LabelSession{
			Pointer: p.ID,
			Origin:  p.point(),
			LabelID: lb.ID,
			Start:   Position{X: lb.X, Y: lb.Y},
		}
	case DragBoxSelect:
		if !mods.MultiSelect {
			l.selection = nil
		}
		l.session = &BoxSelectSession{
			Pointer:        p.ID,
			Anchor:         p.point(),
			AddToSelection: mods.MultiSelect,
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidDragKind, kind)
	}
	return nil
}

func (l *Layout) beginMove(target string, p Pointer, mods Modifiers) error {
	if l.tableIndex(target) < 0 {
		return fmt.Errorf("%w: %s", ErrTableNotFound, target)
	}

	members := []string{target}
	if !mods.Individual {
		members = l.GroupMembers(target)
	}

	selection := members
	if mods.MultiSelect {
		allSelected := true
		for _, id := range members {
			if !slices.Contains(l.selection, id) {
				allSelected = false
				break
			}
		}
		if allSelected {
			selection = slices.DeleteFunc(slices.Clone(l.selection), func(id string) bool {
				return slices.Contains(members, id)
			})
		} else {
			selection = slices.Clone(l.selection)
			for _, id := range members {
				if !slices.Contains(selection, id) {
					selection = append(selection, id)
				}
			}
		}
	}
	l.selection = selection

	start := make(map[string]Position, len(selection))
	for _, t := range l.tables {
		if slices.Contains(selection, t.ID) {
			start[t.ID] = Position{X: t.X, Y: t.Y}
		}
	}

	l.session = &MoveSession{
		Pointer:   p.ID,
		Origin:    p.point(),
		Start:     start,
		Selection: slices.Clone(selection),
	}
	return nil
}

// UpdateDrag applies a pointer-move to the working copy.
func (l *Layout) UpdateDrag(scope Scope, p Pointer) error {
	if err := scope.Validate(); err != nil {
		return err
	}
	if err := l.owns(p); err != nil {
		return err
	}
	l.apply(p)
	return nil
}

func (l *Layout) owns(p Pointer) error {
	if l.session == nil {
		return ErrNoSession
	}
	if l.session.PointerID() != p.ID {
		return ErrPointerMismatch
	}
	return nil
}

func (l *Layout) apply(p Pointer) {
	switch s := l.session.(type) {
	case *MoveSession:
		dx, dy := p.X-s.Origin.X, p.Y-s.Origin.Y
		for i := range l.tables {
			t := &l.tables[i]
			start, ok := s.Start[t.ID]
			if !ok {
				continue
			}
			t.X, t.Y = l.clampPosition(
				Snap(float64(start.X)+dx),
				Snap(float64(start.Y)+dy),
				t.Width, t.Height,
			)
		}
	case *ResizeSession:
		i := l.tableIndex(s.TableID)
		if i < 0 {
			return
		}
		t := &l.tables[i]
		cw, ch := l.floor.canvas()
		w := max(MinSize, Snap(float64(s.StartWidth)+p.X-s.Origin.X))
		h := max(MinSize, Snap(float64(s.StartHeight)+p.Y-s.Origin.Y))
		t.Width = max(MinSize, min(w, snapDown(cw-t.X)))
		t.Height = max(MinSize, min(h, snapDown(ch-t.Y)))
	case *LabelSession:
		i := l.labelIndex(s.LabelID)
		if i < 0 {
			return
		}
		l.labels[i].X = Snap(float64(s.Start.X) + p.X - s.Origin.X)
		l.labels[i].Y = Snap(float64(s.Start.Y) + p.Y - s.Origin.Y)
	case *BoxSelectSession:
		box := boxBetween(s.Anchor, p.point())
		s.Box = &box
	}
}

// AbandonDrag discards the session without finalizing it, as when pointer
// capture is lost. Positions already applied stay in the working copy.
func (l *Layout) AbandonDrag(pointerID int) {
	if l.session != nil && l.session.PointerID() == pointerID {
		l.session = nil
	}
}

// EndDrag finalizes the active session on pointer-up and schedules the
// commit of whatever it changed.
func (l *Layout) EndDrag(scope Scope, p Pointer) error {
	if err := scope.Validate(); err != nil {
		return err
	}
	if err := l.owns(p); err != nil {
		return err
	}
	l.apply(p)

	session := l.session
	l.session = nil

	switch s := session.(type) {
	case *BoxSelectSession:
		l.finishBoxSelect(s)
	case *MoveSession:
		l.finishMove(scope, s)
	case *ResizeSession:
		t, ok := l.Table(s.TableID)
		if !ok {
			return nil
		}
		l.committer.Go(scope, "resize", func(store Store, sc Scope) error {
			return store.UpdateTableSize(sc, t.ID, t.Width, t.Height)
		})
	case *LabelSession:
		lb, ok := l.Label(s.LabelID)
		if !ok {
			return nil
		}
		l.committer.Go(scope, "label-move", func(store Store, sc Scope) error {
			return store.UpdateLabelPosition(sc, lb.ID, lb.X, lb.Y)
		})
	}
	return nil
}

func (l *Layout) finishBoxSelect(s *BoxSelectSession) {
	var picked []string
	if s.Box != nil {
		for _, t := range l.tables {
			if s.Box.Intersects(t.Bounds()) {
				picked = append(picked, t.ID)
			}
		}
	}

	if !s.AddToSelection {
		l.selection = picked
		return
	}
	for _, id := range picked {
		if !slices.Contains(l.selection, id) {
			l.selection = append(l.selection, id)
		}
	}
}

func (l *Layout) finishMove(scope Scope, s *MoveSession) {
	var merges []groupChange
	for _, id := range s.Selection {
		if change, ok := l.resolveOverlap(id); ok {
			merges = append(merges, change)
		}
	}

	updates := make([]PositionUpdate, 0, len(s.Selection))
	for _, id := range s.Selection {
		if t, ok := l.Table(id); ok {
			updates = append(updates, PositionUpdate{ID: t.ID, X: t.X, Y: t.Y})
		}
	}
	if len(updates) == 0 && len(merges) == 0 {
		return
	}

	l.committer.Go(scope, "move", func(store Store, sc Scope) error {
		for _, m := range merges {
			if err := store.UpdateTableGroup(sc, m.TableIDs, &m.GroupID); err != nil {
				return err
			}
		}
		if len(updates) == 0 {
			return nil
		}
		return store.UpdateTablePositions(sc, updates)
	})
}
