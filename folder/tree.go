// Package folder provides the hierarchical grouping store (folders with
// cascade delete and cycle-safe reparenting) and the visibility state
// the style resolver reads.
package folder

import (
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned for operations on unknown folder ids.
	ErrNotFound = errors.New("folder: not found")
	// ErrCycle is returned when a move would place a folder under its
	// own descendant. The tree is left unchanged.
	ErrCycle = errors.New("folder: move would create a cycle")
)

// Folder is a named node in the tree. ParentID is "" for root folders.
type Folder struct {
	ID       string
	Name     string
	ParentID string
}

// Tree is the folder store. Feature-to-folder assignment lives on the
// features themselves; the tree only owns the folder nodes.
type Tree struct {
	folders map[string]*Folder
	order   []string
}

// NewTree creates an empty folder tree.
func NewTree() *Tree {
	return &Tree{folders: make(map[string]*Folder)}
}

// Create adds a folder under the given parent ("" for root).
func (t *Tree) Create(name, parentID string) (*Folder, error) {
	if parentID != "" {
		if _, ok := t.folders[parentID]; !ok {
			return nil, ErrNotFound
		}
	}
	f := &Folder{ID: uuid.NewString(), Name: name, ParentID: parentID}
	t.folders[f.ID] = f
	t.order = append(t.order, f.ID)
	return f, nil
}

// Get looks a folder up by id.
func (t *Tree) Get(id string) (*Folder, bool) {
	f, ok := t.folders[id]
	return f, ok
}

// Delete removes a folder and all of its descendants, returning the ids
// of every deleted folder so the caller can cascade to the contained
// features.
func (t *Tree) Delete(id string) []string {
	if _, ok := t.folders[id]; !ok {
		return nil
	}
	doomed := []string{id}
	for i := 0; i < len(doomed); i++ {
		for _, child := range t.Children(doomed[i]) {
			doomed = append(doomed, child.ID)
		}
	}
	for _, d := range doomed {
		delete(t.folders, d)
		for i, o := range t.order {
			if o == d {
				t.order = append(t.order[:i], t.order[i+1:]...)
				break
			}
		}
	}
	return doomed
}

// Subtree returns copies of a folder and all of its descendants in
// parent-first order, or nil for unknown ids. Callers snapshot the nodes
// before a cascade delete so the deletion can be reversed.
func (t *Tree) Subtree(id string) []Folder {
	f, ok := t.folders[id]
	if !ok {
		return nil
	}
	out := []Folder{*f}
	for i := 0; i < len(out); i++ {
		for _, child := range t.Children(out[i].ID) {
			out = append(out, *child)
		}
	}
	return out
}

// Restore reinserts a previously deleted folder node under its original
// id and parent. Restore nodes parent-first so children find their
// parent in place.
func (t *Tree) Restore(f Folder) {
	if _, ok := t.folders[f.ID]; ok {
		return
	}
	node := f
	t.folders[node.ID] = &node
	t.order = append(t.order, node.ID)
}

// Move reparents a folder. Moving a folder under itself or any of its
// descendants is rejected with ErrCycle.
func (t *Tree) Move(id, newParentID string) error {
	f, ok := t.folders[id]
	if !ok {
		return ErrNotFound
	}
	if newParentID != "" {
		if _, ok := t.folders[newParentID]; !ok {
			return ErrNotFound
		}
		if id == newParentID || t.IsDescendant(newParentID, id) {
			return ErrCycle
		}
	}
	f.ParentID = newParentID
	return nil
}

// IsDescendant reports whether folder id sits anywhere below ancestorID,
// by walking the ancestor chain upward.
func (t *Tree) IsDescendant(id, ancestorID string) bool {
	f, ok := t.folders[id]
	if !ok {
		return false
	}
	for f.ParentID != "" {
		if f.ParentID == ancestorID {
			return true
		}
		f, ok = t.folders[f.ParentID]
		if !ok {
			return false
		}
	}
	return false
}

// Roots returns the folders with no parent, in creation order.
func (t *Tree) Roots() []*Folder {
	return t.collect("")
}

// Children returns the direct children of a folder, in creation order.
func (t *Tree) Children(id string) []*Folder {
	return t.collect(id)
}

func (t *Tree) collect(parentID string) []*Folder {
	var out []*Folder
	for _, id := range t.order {
		if f := t.folders[id]; f.ParentID == parentID {
			out = append(out, f)
		}
	}
	return out
}

// Len returns the number of folders in the tree.
func (t *Tree) Len() int {
	return len(t.folders)
}

// ResolveDrop maps a drag-and-drop target to a folder assignment:
// dropping on a folder assigns that folder's id, dropping on the
// designated root target ("") clears the assignment. Both folder and
// feature drops resolve the same way.
func (t *Tree) ResolveDrop(targetID string) (string, error) {
	if targetID == "" {
		return "", nil
	}
	if _, ok := t.folders[targetID]; !ok {
		return "", ErrNotFound
	}
	return targetID, nil
}
