// Package interact owns the gesture handlers: selection, vertex modify,
// transform, split, merge, parallel offset, snapping, and the per-tool
// drawing handlers. All handlers mutate the feature store and commit
// through the history stack as atomic batches.
package interact

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"mapmark/feature"
	"mapmark/history"
)

// Pointer is one pointer event in world coordinates.
type Pointer struct {
	Pos   orb.Point
	Shift bool
}

// Handler reacts to pointer gestures. Down returns true to capture the
// gesture; Move and Up then route to the capturing handler until Up
// completes it. Abort discards any in-progress gesture without
// committing.
type Handler interface {
	Name() string
	Down(p Pointer) bool
	Move(p Pointer)
	Up(p Pointer)
	Abort()
}

// Finisher is implemented by handlers with explicit gesture completion,
// such as the multi-click line draw.
type Finisher interface {
	Finish()
}

// Events are the manager's outbound notifications.
type Events struct {
	FeatureDrawn   func(*feature.Feature)
	MergeRequested func(*MergeRequest)
}

// Manager dispatches pointer events to the installed handlers and owns
// the selection state shared between them. Handlers hold only id sets;
// the store stays the single owner of the features.
type Manager struct {
	store *feature.Store
	hist  *history.Stack

	handlers []Handler
	captured Handler

	selection map[string]bool
	selOrder  []string

	snapper   *Snapper
	transform *TransformHandler

	// Tolerance is the hit-test and snap radius in world units.
	Tolerance float64

	Events Events
}

// NewManager creates a manager over the given store and history stack.
func NewManager(store *feature.Store, hist *history.Stack) *Manager {
	return &Manager{
		store:     store,
		hist:      hist,
		selection: make(map[string]bool),
		Tolerance: 8,
	}
}

// Store returns the feature store the manager mutates.
func (m *Manager) Store() *feature.Store {
	return m.store
}

// History returns the undo/redo stack commits go through.
func (m *Manager) History() *history.Stack {
	return m.hist
}

// Install appends a handler. Order matters: the snapping helper is
// installed after the drawing handler so snap candidates see up-to-date
// geometry.
func (m *Manager) Install(h Handler) {
	m.handlers = append(m.handlers, h)
	if s, ok := h.(*Snapper); ok {
		m.snapper = s
	}
	if t, ok := h.(*TransformHandler); ok {
		m.transform = t
	}
}

// Uninstall removes the named handler, aborting its gesture first.
func (m *Manager) Uninstall(name string) bool {
	for i, h := range m.handlers {
		if h.Name() != name {
			continue
		}
		h.Abort()
		m.handlers = append(m.handlers[:i], m.handlers[i+1:]...)
		if m.captured == h {
			m.captured = nil
		}
		if m.snapper == h {
			m.snapper = nil
		}
		if m.transform == h {
			m.transform = nil
		}
		return true
	}
	return false
}

// UninstallAll removes every handler; part of the tool-switch teardown.
func (m *Manager) UninstallAll() {
	for _, h := range m.handlers {
		h.Abort()
	}
	m.handlers = nil
	m.captured = nil
	m.snapper = nil
	m.transform = nil
}

// ActiveHandlers returns the installed handler names in order.
func (m *Manager) ActiveHandlers() []string {
	out := make([]string, len(m.handlers))
	for i, h := range m.handlers {
		out[i] = h.Name()
	}
	return out
}

// HandlerByName returns an installed handler.
func (m *Manager) HandlerByName(name string) (Handler, bool) {
	for _, h := range m.handlers {
		if h.Name() == name {
			return h, true
		}
	}
	return nil, false
}

// Down routes a press to the handlers in install order; the first one
// that accepts it captures the gesture.
func (m *Manager) Down(p Pointer) {
	for _, h := range m.handlers {
		if h.Down(p) {
			m.captured = h
			return
		}
	}
}

// Move routes a drag to the capturing handler.
func (m *Manager) Move(p Pointer) {
	if m.captured != nil {
		m.captured.Move(p)
	}
}

// Up completes the current gesture.
func (m *Manager) Up(p Pointer) {
	if m.captured != nil {
		m.captured.Up(p)
		m.captured = nil
	}
}

// Finish completes multi-step gestures (e.g. the multi-click line draw).
func (m *Manager) Finish() {
	for _, h := range m.handlers {
		if f, ok := h.(Finisher); ok {
			f.Finish()
		}
	}
}

// Abort discards every in-progress gesture. Called when switching tools
// mid-gesture so partial geometry is never committed.
func (m *Manager) Abort() {
	for _, h := range m.handlers {
		h.Abort()
	}
	m.captured = nil
}

// SnapPoint runs p through the snapping helper when one is installed.
func (m *Manager) SnapPoint(p orb.Point) orb.Point {
	if m.snapper == nil {
		return p
	}
	if snapped, ok := m.snapper.Snap(p); ok {
		return snapped
	}
	return p
}

// TransformingIDs returns the ids held by the active transform
// collection; empty when transform is not installed. Features in it are
// excluded from vertex modify to avoid handle conflicts.
func (m *Manager) TransformingIDs() map[string]bool {
	if m.transform == nil {
		return nil
	}
	return m.transform.ids
}

// hitTest returns the feature nearest to p within the tolerance radius
// that passes the filter, using the store's spatial index.
func (m *Manager) hitTest(p orb.Point, filter func(*feature.Feature) bool) *feature.Feature {
	tol := m.Tolerance
	box := orb.Bound{
		Min: orb.Point{p.X() - tol, p.Y() - tol},
		Max: orb.Point{p.X() + tol, p.Y() + tol},
	}
	var best *feature.Feature
	bestDist := tol
	for _, f := range m.store.Search(box) {
		if filter != nil && !filter(f) {
			continue
		}
		d := planar.DistanceFrom(f.Geometry, p)
		if d <= bestDist {
			best = f
			bestDist = d
		}
	}
	return best
}

// Select adds or replaces the selection with one feature id.
func (m *Manager) Select(id string, additive bool) {
	if !additive {
		m.clearSelectionLocked()
	}
	if m.selection[id] {
		if additive {
			// Modifier-click on a selected feature toggles it off.
			delete(m.selection, id)
			for i, s := range m.selOrder {
				if s == id {
					m.selOrder = append(m.selOrder[:i], m.selOrder[i+1:]...)
					break
				}
			}
		}
		return
	}
	m.selection[id] = true
	m.selOrder = append(m.selOrder, id)
}

// SelectBox replaces (or extends) the selection with every selectable
// feature intersecting b. Box selection and modifier-click converge on
// the same selection set.
func (m *Manager) SelectBox(b orb.Bound, additive bool) {
	if !additive {
		m.clearSelectionLocked()
	}
	for _, f := range m.store.Search(b) {
		if !f.Kind.Selectable() {
			continue
		}
		if !m.selection[f.ID] {
			m.selection[f.ID] = true
			m.selOrder = append(m.selOrder, f.ID)
		}
	}
}

// ClearSelection empties the selection set.
func (m *Manager) ClearSelection() {
	m.clearSelectionLocked()
}

func (m *Manager) clearSelectionLocked() {
	m.selection = make(map[string]bool)
	m.selOrder = m.selOrder[:0]
}

// SelectedIDs returns the selection in selection order.
func (m *Manager) SelectedIDs() []string {
	out := make([]string, len(m.selOrder))
	copy(out, m.selOrder)
	return out
}

// IsSelected reports whether a feature is in the selection set.
func (m *Manager) IsSelected(id string) bool {
	return m.selection[id]
}

// EditableSelection returns the selected features that pass the stricter
// editable filter and are not held by an active transform.
func (m *Manager) EditableSelection() []*feature.Feature {
	transforming := m.TransformingIDs()
	var out []*feature.Feature
	for _, id := range m.selOrder {
		f, ok := m.store.Get(id)
		if !ok || !f.Kind.Editable() {
			continue
		}
		if transforming[id] {
			continue
		}
		out = append(out, f)
	}
	return out
}

// DeleteSelection removes the selected features as one undoable batch.
func (m *Manager) DeleteSelection() {
	ids := m.SelectedIDs()
	if len(ids) == 0 {
		return
	}
	rec := feature.NewRemoveRecord(m.store, ids...)
	if rec.Len() == 0 {
		return
	}
	m.clearSelectionLocked()
	m.hist.Record(&history.Batch{Name: "delete", Records: []history.Record{rec}})
}
