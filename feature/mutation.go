package feature

import "github.com/paulmach/orb"

// Mutation records. Each record is an opaque, reversible description of
// one committed change; the history stack stores them without knowing
// their shape. Apply is called by redo, Revert by undo — the initial
// edit happens through the store before the record is pushed.

// AddRecord records features added to the store.
type AddRecord struct {
	Store    *Store
	Features []*Feature
}

// Apply re-adds the features.
func (r *AddRecord) Apply() {
	for _, f := range r.Features {
		r.Store.Add(f)
	}
}

// Revert removes the features again.
func (r *AddRecord) Revert() {
	for _, f := range r.Features {
		r.Store.Remove(f.ID)
	}
}

// removedFeature keeps a deleted feature together with the position it
// held, so undo restores the original ordering.
type removedFeature struct {
	feature *Feature
	pos     int
}

// RemoveRecord records features deleted from the store.
type RemoveRecord struct {
	Store   *Store
	removed []removedFeature
}

// NewRemoveRecord removes the identified features from the store and
// returns the record describing the deletion. Unknown ids are skipped.
func NewRemoveRecord(s *Store, ids ...string) *RemoveRecord {
	r := &RemoveRecord{Store: s}
	for _, id := range ids {
		if f, pos, ok := s.Remove(id); ok {
			r.removed = append(r.removed, removedFeature{feature: f, pos: pos})
		}
	}
	return r
}

// Apply re-removes the features.
func (r *RemoveRecord) Apply() {
	for _, rf := range r.removed {
		r.Store.Remove(rf.feature.ID)
	}
}

// Revert restores the features at their original positions.
func (r *RemoveRecord) Revert() {
	for i := len(r.removed) - 1; i >= 0; i-- {
		rf := r.removed[i]
		r.Store.InsertAt(rf.feature, rf.pos)
	}
}

// Len returns how many features the record removed.
func (r *RemoveRecord) Len() int {
	return len(r.removed)
}

// GeometryRecord records a geometry replacement on one feature.
type GeometryRecord struct {
	Store  *Store
	ID     string
	Before orb.Geometry
	After  orb.Geometry
}

// Apply sets the post-edit geometry.
func (r *GeometryRecord) Apply() {
	r.Store.SetGeometry(r.ID, r.After)
}

// Revert restores the pre-edit geometry.
func (r *GeometryRecord) Revert() {
	r.Store.SetGeometry(r.ID, r.Before)
}

// StyleRecord records a style-override replacement on one feature.
type StyleRecord struct {
	Store  *Store
	ID     string
	Before *StyleOverride
	After  *StyleOverride
}

// Apply sets the post-edit overrides.
func (r *StyleRecord) Apply() {
	if f, ok := r.Store.Get(r.ID); ok {
		f.Style = r.After.Clone()
		r.Store.Touch(r.ID)
	}
}

// Revert restores the pre-edit overrides.
func (r *StyleRecord) Revert() {
	if f, ok := r.Store.Get(r.ID); ok {
		f.Style = r.Before.Clone()
		r.Store.Touch(r.ID)
	}
}

// FolderRecord records a folder reassignment on one feature.
type FolderRecord struct {
	Store  *Store
	ID     string
	Before string
	After  string
}

// Apply sets the new folder assignment.
func (r *FolderRecord) Apply() {
	if f, ok := r.Store.Get(r.ID); ok {
		f.FolderID = r.After
		r.Store.Touch(r.ID)
	}
}

// Revert restores the previous folder assignment.
func (r *FolderRecord) Revert() {
	if f, ok := r.Store.Get(r.ID); ok {
		f.FolderID = r.Before
		r.Store.Touch(r.ID)
	}
}

// ReplaceRecord swaps one set of features for another in a single
// reversible step. Split and merge commit through it so undo brings the
// originals back exactly.
type ReplaceRecord struct {
	Store   *Store
	removed []removedFeature
	Added   []*Feature
}

// NewReplaceRecord removes the old features, adds the new ones, and
// returns the record describing the swap.
func NewReplaceRecord(s *Store, removeIDs []string, added []*Feature) *ReplaceRecord {
	r := &ReplaceRecord{Store: s, Added: added}
	for _, id := range removeIDs {
		if f, pos, ok := s.Remove(id); ok {
			r.removed = append(r.removed, removedFeature{feature: f, pos: pos})
		}
	}
	for _, f := range added {
		s.Add(f)
	}
	return r
}

// Apply re-runs the swap.
func (r *ReplaceRecord) Apply() {
	for _, rf := range r.removed {
		r.Store.Remove(rf.feature.ID)
	}
	for _, f := range r.Added {
		r.Store.Add(f)
	}
}

// Revert removes the replacements and restores the originals.
func (r *ReplaceRecord) Revert() {
	for _, f := range r.Added {
		r.Store.Remove(f.ID)
	}
	for i := len(r.removed) - 1; i >= 0; i-- {
		rf := r.removed[i]
		r.Store.InsertAt(rf.feature, rf.pos)
	}
}
