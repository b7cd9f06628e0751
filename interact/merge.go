package interact

import (
	"errors"

	"github.com/paulmach/orb"

	"mapmark/feature"
	"mapmark/history"
)

var (
	// ErrNoSharedEndpoint is returned when the two merge candidates do
	// not meet at (or near) an endpoint.
	ErrNoSharedEndpoint = errors.New("interact: lines do not share an endpoint")
	// ErrMergeResolved is returned when a merge request is resolved or
	// cancelled twice.
	ErrMergeResolved = errors.New("interact: merge already resolved")
)

// Conflict is one style property the two merge candidates disagree on,
// with each candidate's value so a resolution UI can show the choice.
type Conflict struct {
	Property string
	A, B     string
}

// MergeRequest is a pending merge of two line features. When the
// candidates disagree on style properties the request pauses and is
// surfaced through Events.MergeRequested; nothing changes until the
// caller resolves it. Conflict-free merges resolve immediately.
type MergeRequest struct {
	m *Manager

	A, B      *feature.Feature
	Conflicts []Conflict

	// aReversed / bReversed orient the two lines so A's tail meets
	// B's head at the shared endpoint.
	aReversed bool
	bReversed bool

	done bool
}

// RequestMerge proposes combining two line features that share (or
// nearly share) an endpoint. With no style conflicts the merge applies
// immediately; otherwise the request is emitted for explicit resolution
// and stays pending.
func (m *Manager) RequestMerge(aID, bID string) (*MergeRequest, error) {
	fa, okA := m.store.Get(aID)
	fb, okB := m.store.Get(bID)
	if !okA || !okB {
		return nil, errors.New("interact: unknown feature")
	}
	la, okA := fa.Geometry.(orb.LineString)
	lb, okB := fb.Geometry.(orb.LineString)
	if !okA || !okB || len(la) < 2 || len(lb) < 2 {
		return nil, ErrNotALine
	}

	req := &MergeRequest{m: m, A: fa, B: fb}
	if !req.matchEndpoints(la, lb, m.Tolerance) {
		return nil, ErrNoSharedEndpoint
	}
	for _, name := range fa.Style.Diff(fb.Style) {
		av, _ := fa.Style.Value(name)
		bv, _ := fb.Style.Value(name)
		req.Conflicts = append(req.Conflicts, Conflict{Property: name, A: av, B: bv})
	}

	if len(req.Conflicts) == 0 {
		if err := req.Resolve(fa.Style.Merge(fb.Style)); err != nil {
			return nil, err
		}
		return req, nil
	}
	if m.Events.MergeRequested != nil {
		m.Events.MergeRequested(req)
	}
	return req, nil
}

// matchEndpoints finds the closest endpoint pairing within tol and
// records the orientation each line needs.
func (r *MergeRequest) matchEndpoints(la, lb orb.LineString, tol float64) bool {
	aEnds := [2]orb.Point{la[0], la[len(la)-1]}
	bEnds := [2]orb.Point{lb[0], lb[len(lb)-1]}
	best := tol
	found := false
	for ai, ap := range aEnds {
		for bi, bp := range bEnds {
			if d := planarDist(ap, bp); d <= best {
				best = d
				// A must end at the joint, B must start there.
				r.aReversed = ai == 0
				r.bReversed = bi == 1
				found = true
			}
		}
	}
	return found
}

// Pending reports whether the request still awaits resolution.
func (r *MergeRequest) Pending() bool {
	return !r.done
}

// Resolve completes the merge with the given style overrides as the
// resolution of any conflicts. The two originals are replaced by one
// combined feature in a single undoable step.
func (r *MergeRequest) Resolve(style *feature.StyleOverride) error {
	if r.done {
		return ErrMergeResolved
	}
	fa, okA := r.m.store.Get(r.A.ID)
	fb, okB := r.m.store.Get(r.B.ID)
	if !okA || !okB {
		return errors.New("interact: merge candidate no longer exists")
	}
	la := orientLine(fa.Geometry.(orb.LineString), r.aReversed)
	lb := orientLine(fb.Geometry.(orb.LineString), r.bReversed)

	merged := make(orb.LineString, 0, len(la)+len(lb))
	merged = append(merged, la...)
	// Drop B's head when it coincides with A's tail.
	start := 0
	if planarDist(la[len(la)-1], lb[0]) < 1e-9 {
		start = 1
	}
	merged = append(merged, lb[start:]...)

	combined := deriveFrom(fa, merged)
	combined.Style = style.Clone()

	rec := feature.NewReplaceRecord(r.m.store, []string{fa.ID, fb.ID}, []*feature.Feature{combined})
	r.m.hist.Record(&history.Batch{Name: "merge", Records: []history.Record{rec}})
	r.m.ClearSelection()
	r.done = true
	return nil
}

// Cancel abandons the pending merge, leaving both features untouched.
func (r *MergeRequest) Cancel() error {
	if r.done {
		return ErrMergeResolved
	}
	r.done = true
	return nil
}

func orientLine(l orb.LineString, reversed bool) orb.LineString {
	out := make(orb.LineString, len(l))
	copy(out, l)
	if reversed {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// MergeHandler picks two line features by successive clicks and issues
// the merge request.
type MergeHandler struct {
	m       *Manager
	firstID string
}

// NewMergeHandler creates the merge gesture handler.
func NewMergeHandler(m *Manager) *MergeHandler {
	return &MergeHandler{m: m}
}

// Name implements Handler.
func (h *MergeHandler) Name() string { return "merge" }

// Down selects the first line on the first click and requests the merge
// on the second.
func (h *MergeHandler) Down(p Pointer) bool {
	hit := h.m.hitTest(p.Pos, func(f *feature.Feature) bool {
		_, isLine := f.Geometry.(orb.LineString)
		return isLine && f.ID != h.firstID
	})
	if hit == nil {
		return false
	}
	if h.firstID == "" {
		h.firstID = hit.ID
		h.m.Select(hit.ID, false)
		return true
	}
	first := h.firstID
	h.firstID = ""
	h.m.RequestMerge(first, hit.ID)
	return true
}

// Move implements Handler.
func (h *MergeHandler) Move(Pointer) {}

// Up implements Handler.
func (h *MergeHandler) Up(Pointer) {}

// Abort clears the first pick.
func (h *MergeHandler) Abort() {
	h.firstID = ""
}
