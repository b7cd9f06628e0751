package interact

import (
	"testing"

	"github.com/paulmach/orb"

	"mapmark/feature"
	"mapmark/history"
)

func newTestManager() *Manager {
	return NewManager(feature.NewStore(), history.NewStack(0))
}

func addLine(m *Manager, pts ...orb.Point) *feature.Feature {
	f := feature.New(feature.KindPolyline, orb.LineString(pts))
	m.Store().Add(f)
	return f
}

func click(m *Manager, p orb.Point, shift bool) {
	m.Down(Pointer{Pos: p, Shift: shift})
	m.Up(Pointer{Pos: p, Shift: shift})
}

func TestClickSelects(t *testing.T) {
	m := newTestManager()
	m.Install(NewSelectHandler(m))
	f := addLine(m, orb.Point{0, 0}, orb.Point{100, 0})
	other := addLine(m, orb.Point{0, 100}, orb.Point{100, 100})

	click(m, orb.Point{50, 2}, false)
	if !m.IsSelected(f.ID) {
		t.Error("Expected the clicked line to be selected")
	}
	if m.IsSelected(other.ID) {
		t.Error("Expected the distant line to stay unselected")
	}

	// A plain click elsewhere replaces the selection.
	click(m, orb.Point{50, 99}, false)
	if m.IsSelected(f.ID) || !m.IsSelected(other.ID) {
		t.Error("Expected plain click to replace the selection")
	}
}

func TestModifierClickToggles(t *testing.T) {
	m := newTestManager()
	m.Install(NewSelectHandler(m))
	a := addLine(m, orb.Point{0, 0}, orb.Point{100, 0})
	b := addLine(m, orb.Point{0, 100}, orb.Point{100, 100})

	click(m, orb.Point{50, 0}, false)
	click(m, orb.Point{50, 100}, true)
	if !m.IsSelected(a.ID) || !m.IsSelected(b.ID) {
		t.Fatal("Expected modifier click to extend the selection")
	}

	click(m, orb.Point{50, 0}, true)
	if m.IsSelected(a.ID) {
		t.Error("Expected modifier click on a selected feature to deselect it")
	}
	if !m.IsSelected(b.ID) {
		t.Error("Expected the other feature to stay selected")
	}
}

func TestBoxSelectConvergesWithClick(t *testing.T) {
	m := newTestManager()
	m.Install(NewSelectHandler(m))
	a := addLine(m, orb.Point{10, 10}, orb.Point{20, 10})
	b := addLine(m, orb.Point{10, 30}, orb.Point{20, 30})
	out := addLine(m, orb.Point{500, 500}, orb.Point{600, 500})

	m.Down(Pointer{Pos: orb.Point{0, 0}})
	m.Move(Pointer{Pos: orb.Point{50, 50}})
	m.Up(Pointer{Pos: orb.Point{50, 50}})

	if !m.IsSelected(a.ID) || !m.IsSelected(b.ID) {
		t.Error("Expected both lines inside the box to be selected")
	}
	if m.IsSelected(out.ID) {
		t.Error("Expected the line outside the box to stay unselected")
	}

	// The box result is the same selection set a pair of modifier clicks
	// would have built.
	want := len(m.SelectedIDs())
	m.ClearSelection()
	click(m, orb.Point{15, 10}, false)
	click(m, orb.Point{15, 30}, true)
	if len(m.SelectedIDs()) != want {
		t.Errorf("Expected click and box selection to converge, got %d vs %d",
			len(m.SelectedIDs()), want)
	}
}

func TestClickOnEmptyClearsSelection(t *testing.T) {
	m := newTestManager()
	m.Install(NewSelectHandler(m))
	f := addLine(m, orb.Point{0, 0}, orb.Point{100, 0})

	click(m, orb.Point{50, 0}, false)
	if !m.IsSelected(f.ID) {
		t.Fatal("Expected line selected")
	}
	click(m, orb.Point{500, 500}, false)
	if len(m.SelectedIDs()) != 0 {
		t.Error("Expected empty click to clear the selection")
	}
}

func TestDeleteSelectionIsUndoable(t *testing.T) {
	m := newTestManager()
	a := addLine(m, orb.Point{0, 0}, orb.Point{10, 0})
	b := addLine(m, orb.Point{0, 10}, orb.Point{10, 10})
	m.Select(a.ID, false)
	m.Select(b.ID, true)

	m.DeleteSelection()
	if m.Store().Len() != 0 {
		t.Fatalf("Expected empty store, got %d features", m.Store().Len())
	}
	if len(m.SelectedIDs()) != 0 {
		t.Error("Expected selection cleared after delete")
	}

	m.History().Undo()
	if m.Store().Len() != 2 {
		t.Errorf("Expected both features restored, got %d", m.Store().Len())
	}
}

func TestHitTestPrefersNearest(t *testing.T) {
	m := newTestManager()
	near := addLine(m, orb.Point{0, 2}, orb.Point{100, 2})
	addLine(m, orb.Point{0, 7}, orb.Point{100, 7})

	hit := m.hitTest(orb.Point{50, 0}, nil)
	if hit == nil || hit.ID != near.ID {
		t.Error("Expected the nearest line to win the hit test")
	}

	if hit := m.hitTest(orb.Point{50, 50}, nil); hit != nil {
		t.Errorf("Expected no hit outside the tolerance radius, got %s", hit.ID)
	}
}
