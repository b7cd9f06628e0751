package feature

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// ChangeKind tells listeners what happened to a feature.
type ChangeKind int

const (
	Added ChangeKind = iota
	Removed
	Changed
)

// Listener observes store mutations; used to trigger re-render passes.
type Listener func(ChangeKind, *Feature)

// indexEntry wraps a feature for the spatial index.
type indexEntry struct {
	f *Feature
}

// Bounds implements rtreego.Spatial. Degenerate extents are padded so
// point features still index.
func (e *indexEntry) Bounds() rtreego.Rect {
	b := e.f.Geometry.Bound()
	const eps = 1e-9
	w := b.Max.X() - b.Min.X()
	h := b.Max.Y() - b.Min.Y()
	if w < eps {
		w = eps
	}
	if h < eps {
		h = eps
	}
	rect, _ := rtreego.NewRect(rtreego.Point{b.Min.X(), b.Min.Y()}, []float64{w, h})
	return rect
}

// Store is the canonical, ordered feature collection. All interaction
// handlers mutate features through it so the spatial index, cached
// measure distances, and change listeners stay consistent.
type Store struct {
	order     []string
	features  map[string]*Feature
	entries   map[string]*indexEntry
	index     *rtreego.Rtree
	listeners []Listener
}

// NewStore creates an empty feature store.
func NewStore() *Store {
	return &Store{
		features: make(map[string]*Feature),
		entries:  make(map[string]*indexEntry),
		index:    rtreego.NewTree(2, 25, 50),
	}
}

// AddListener registers a mutation observer.
func (s *Store) AddListener(l Listener) {
	s.listeners = append(s.listeners, l)
}

func (s *Store) notify(c ChangeKind, f *Feature) {
	for _, l := range s.listeners {
		l(c, f)
	}
}

// Add appends a feature to the collection.
func (s *Store) Add(f *Feature) {
	s.insertAt(f, len(s.order))
}

// InsertAt restores a feature at a specific position. Used by undo so
// removed features come back where they were.
func (s *Store) InsertAt(f *Feature, pos int) {
	if pos < 0 || pos > len(s.order) {
		pos = len(s.order)
	}
	s.insertAt(f, pos)
}

func (s *Store) insertAt(f *Feature, pos int) {
	if _, exists := s.features[f.ID]; exists {
		return
	}
	s.order = append(s.order, "")
	copy(s.order[pos+1:], s.order[pos:])
	s.order[pos] = f.ID
	s.features[f.ID] = f
	if f.Geometry != nil {
		entry := &indexEntry{f: f}
		s.entries[f.ID] = entry
		s.index.Insert(entry)
	}
	s.notify(Added, f)
}

// Remove deletes a feature and returns it with the position it held.
func (s *Store) Remove(id string) (*Feature, int, bool) {
	f, ok := s.features[id]
	if !ok {
		return nil, 0, false
	}
	pos := s.position(id)
	s.order = append(s.order[:pos], s.order[pos+1:]...)
	delete(s.features, id)
	if entry, ok := s.entries[id]; ok {
		s.index.Delete(entry)
		delete(s.entries, id)
	}
	s.notify(Removed, f)
	return f, pos, true
}

func (s *Store) position(id string) int {
	for i, o := range s.order {
		if o == id {
			return i
		}
	}
	return len(s.order)
}

// Get looks a feature up by id.
func (s *Store) Get(id string) (*Feature, bool) {
	f, ok := s.features[id]
	return f, ok
}

// All returns the features in insertion order.
func (s *Store) All() []*Feature {
	out := make([]*Feature, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.features[id])
	}
	return out
}

// Len returns the number of features in the store.
func (s *Store) Len() int {
	return len(s.order)
}

// SetGeometry replaces a feature's geometry, reindexes it, and refreshes
// the cached measure distance. This is the only path for geometry edits.
func (s *Store) SetGeometry(id string, g orb.Geometry) bool {
	f, ok := s.features[id]
	if !ok {
		return false
	}
	if entry, ok := s.entries[id]; ok {
		s.index.Delete(entry)
		delete(s.entries, id)
	}
	f.Geometry = g
	f.RefreshMeasure()
	if g != nil {
		entry := &indexEntry{f: f}
		s.entries[id] = entry
		s.index.Insert(entry)
	}
	s.notify(Changed, f)
	return true
}

// Touch notifies listeners that a feature's non-geometry properties
// changed (style override, folder assignment, metadata).
func (s *Store) Touch(id string) {
	if f, ok := s.features[id]; ok {
		s.notify(Changed, f)
	}
}

// Search returns the features whose bounds intersect b, via the
// spatial index.
func (s *Store) Search(b orb.Bound) []*Feature {
	const eps = 1e-9
	w := b.Max.X() - b.Min.X()
	h := b.Max.Y() - b.Min.Y()
	if w < eps {
		w = eps
	}
	if h < eps {
		h = eps
	}
	rect, err := rtreego.NewRect(rtreego.Point{b.Min.X(), b.Min.Y()}, []float64{w, h})
	if err != nil {
		return nil
	}
	hits := s.index.SearchIntersect(rect)
	out := make([]*Feature, 0, len(hits))
	for _, hit := range hits {
		out = append(out, hit.(*indexEntry).f)
	}
	return out
}

// Clear removes every feature. Listeners see one Removed event per
// feature, in reverse insertion order.
func (s *Store) Clear() {
	for i := len(s.order) - 1; i >= 0; i-- {
		s.Remove(s.order[i])
	}
}
