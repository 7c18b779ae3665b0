package services

import (
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/gastro-os/floorplan"
	"github.com/yeremiapane/gastro-os/utils"
)

// LayoutObserver receives engine metrics.
type LayoutObserver interface {
	floorplan.Observer
	DragStarted(kind floorplan.DragKind)
}

type nopLayoutObserver struct{}

func (nopLayoutObserver) CommitQueued(string) {}
func (nopLayoutObserver) CommitDone(string, error) {}
func (nopLayoutObserver) DragStarted(floorplan.DragKind) {}

// EditorKey identifies one open floor editor.
type EditorKey struct {
	RestaurantID uint
	UserID       uint
	FloorID      string
}

type editor struct {
	mu       sync.Mutex
	layout   *floorplan.Layout
	stale    bool
	lastUsed time.Time
}

// LayoutService keeps one working copy per editor and serializes every
// pointer event of that editor.
type LayoutService struct {
	salon         *SalonService
	observer      LayoutObserver
	commitTimeout time.Duration

	mu      sync.Mutex
	editors map[EditorKey]*editor
}

type LayoutOption func(*LayoutService)

func WithLayoutObserver(o LayoutObserver) LayoutOption {
	return func(s *LayoutService) { s.observer = o }
}

func WithCommitTimeout(d time.Duration) LayoutOption {
	return func(s *LayoutService) {
		if d > 0 {
			s.commitTimeout = d
		}
	}
}

func NewLayoutService(salon *SalonService, opts ...LayoutOption) *LayoutService {
	s := &LayoutService{
		salon:         salon,
		observer:      nopLayoutObserver{},
		commitTimeout: 10 * time.Second,
		editors:       make(map[EditorKey]*editor),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *LayoutService) editorFor(key EditorKey) *editor {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.editors[key]
	if !ok {
		e = &editor{}
		s.editors[key] = e
	}
	return e
}

// lockEditor returns the registered editor for key, locked. An editor that
// was evicted while the caller waited for its lock is replaced.
func (s *LayoutService) lockEditor(key EditorKey) *editor {
	for {
		e := s.editorFor(key)
		e.mu.Lock()
		s.mu.Lock()
		current := s.editors[key] == e
		s.mu.Unlock()
		if current {
			return e
		}
		e.mu.Unlock()
	}
}

func (s *LayoutService) forget(key EditorKey, e *editor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editors[key] == e {
		delete(s.editors, key)
	}
}

// With runs fn with exclusive access to the editor's layout. The layout is
// loaded on first use and reloaded when stale, unless a drag is in progress
// or a commit is still in flight.
func (s *LayoutService) With(scope floorplan.Scope, userID uint, floorID string, fn func(l *floorplan.Layout) error) error {
	if err := scope.Validate(); err != nil {
		return err
	}
	key := EditorKey{RestaurantID: scope.TenantID, UserID: userID, FloorID: floorID}
	e := s.lockEditor(key)
	defer e.mu.Unlock()

	if err := s.load(scope, key, e); err != nil {
		if errors.Is(err, ErrFloorNotFound) {
			s.forget(key, e)
		}
		return err
	}
	e.lastUsed = time.Now()
	return fn(e.layout)
}

func (s *LayoutService) load(scope floorplan.Scope, key EditorKey, e *editor) error {
	if e.layout != nil && (!e.stale || e.layout.Session() != nil || e.layout.Pending() > 0) {
		return nil
	}

	floor, tables, labels, err := s.salon.FloorPlan(scope, key.FloorID)
	if err != nil {
		return err
	}

	if e.layout == nil {
		fields := logrus.Fields{
			"component": "salon_committer",
			"tenant_id": key.RestaurantID,
			"floor_id":  key.FloorID,
			"user_id":   key.UserID,
		}
		committer := floorplan.NewCommitter(s.salon,
			floorplan.WithLogger(utils.InfoLogger.WithFields(fields)),
			floorplan.WithErrorLogger(utils.ErrorLogger.WithFields(fields)),
			floorplan.WithObserver(s.observer),
			floorplan.WithTimeout(s.commitTimeout),
		)
		e.layout = floorplan.New(floor, tables, labels, committer)
	} else if err := e.layout.Refresh(floor, tables, labels); err != nil {
		return err
	}
	e.stale = false
	return nil
}

// Invalidate marks every editor of the restaurant stale.
func (s *LayoutService) Invalidate(restaurantID uint) int {
	s.mu.Lock()
	editors := make([]*editor, 0, len(s.editors))
	for key, e := range s.editors {
		if key.RestaurantID == restaurantID {
			editors = append(editors, e)
		}
	}
	s.mu.Unlock()

	for _, e := range editors {
		e.mu.Lock()
		e.stale = true
		e.mu.Unlock()
	}
	return len(editors)
}

// Evict drops editors idle for longer than ttl, without a drag in progress.
func (s *LayoutService) Evict(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for key, e := range s.editors {
		if !e.mu.TryLock() {
			continue
		}
		idle := e.layout == nil || (e.lastUsed.Before(cutoff) && e.layout.Session() == nil)
		e.mu.Unlock()
		if idle {
			delete(s.editors, key)
			evicted++
		}
	}
	return evicted
}

// Drain waits for every editor's background commits.
func (s *LayoutService) Drain() {
	s.mu.Lock()
	editors := make([]*editor, 0, len(s.editors))
	for _, e := range s.editors {
		editors = append(editors, e)
	}
	s.mu.Unlock()

	for _, e := range editors {
		e.mu.Lock()
		layout := e.layout
		e.mu.Unlock()
		if layout != nil {
			layout.Wait()
		}
	}
}

// ---------------------------------------------------------------------
// Editor operations, each returning the post-operation snapshot
// ---------------------------------------------------------------------

func (s *LayoutService) Snapshot(scope floorplan.Scope, userID uint, floorID string) (floorplan.Snapshot, error) {
	var snap floorplan.Snapshot
	err := s.With(scope, userID, floorID, func(l *floorplan.Layout) error {
		snap = l.Snapshot()
		return nil
	})
	return snap, err
}

func (s *LayoutService) BeginDrag(scope floorplan.Scope, userID uint, floorID string, kind floorplan.DragKind, target string, p floorplan.Pointer, mods floorplan.Modifiers) (floorplan.Snapshot, error) {
	return s.apply(scope, userID, floorID, func(l *floorplan.Layout) error {
		if err := l.BeginDrag(scope, kind, target, p, mods); err != nil {
			return err
		}
		s.observer.DragStarted(kind)
		return nil
	})
}

func (s *LayoutService) UpdateDrag(scope floorplan.Scope, userID uint, floorID string, p floorplan.Pointer) (floorplan.Snapshot, error) {
	return s.apply(scope, userID, floorID, func(l *floorplan.Layout) error {
		return l.UpdateDrag(scope, p)
	})
}

func (s *LayoutService) EndDrag(scope floorplan.Scope, userID uint, floorID string, p floorplan.Pointer) (floorplan.Snapshot, error) {
	return s.apply(scope, userID, floorID, func(l *floorplan.Layout) error {
		return l.EndDrag(scope, p)
	})
}

func (s *LayoutService) AbandonDrag(scope floorplan.Scope, userID uint, floorID string, pointerID int) (floorplan.Snapshot, error) {
	return s.apply(scope, userID, floorID, func(l *floorplan.Layout) error {
		l.AbandonDrag(pointerID)
		return nil
	})
}

func (s *LayoutService) MergeTables(scope floorplan.Scope, userID uint, floorID, sourceID, targetID string) (floorplan.Snapshot, error) {
	return s.apply(scope, userID, floorID, func(l *floorplan.Layout) error {
		return l.MergeTables(scope, sourceID, targetID)
	})
}

// Ungroup clears the group of tableID, or of the selection when tableID is
// empty.
func (s *LayoutService) Ungroup(scope floorplan.Scope, userID uint, floorID, tableID string) (floorplan.Snapshot, error) {
	return s.apply(scope, userID, floorID, func(l *floorplan.Layout) error {
		if tableID == "" {
			return l.UngroupSelection(scope)
		}
		return l.UngroupTable(scope, tableID)
	})
}

func (s *LayoutService) ChangeShape(scope floorplan.Scope, userID uint, floorID, tableID string, shape floorplan.Shape) (floorplan.Snapshot, error) {
	return s.apply(scope, userID, floorID, func(l *floorplan.Layout) error {
		return l.ChangeShape(scope, tableID, shape)
	})
}

func (s *LayoutService) AddLabel(scope floorplan.Scope, userID uint, floorID, name string) (floorplan.Label, error) {
	var label floorplan.Label
	err := s.With(scope, userID, floorID, func(l *floorplan.Layout) error {
		var err error
		label, err = l.AddLabel(scope, name)
		return err
	})
	return label, err
}

func (s *LayoutService) RemoveLabel(scope floorplan.Scope, userID uint, floorID, labelID string) (floorplan.Snapshot, error) {
	return s.apply(scope, userID, floorID, func(l *floorplan.Layout) error {
		return l.RemoveLabel(scope, labelID)
	})
}

func (s *LayoutService) apply(scope floorplan.Scope, userID uint, floorID string, fn func(l *floorplan.Layout) error) (floorplan.Snapshot, error) {
	var snap floorplan.Snapshot
	err := s.With(scope, userID, floorID, func(l *floorplan.Layout) error {
		if err := fn(l); err != nil {
			return err
		}
		snap = l.Snapshot()
		return nil
	})
	return snap, err
}
