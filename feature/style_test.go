package feature

import "testing"

func TestStyleOverrideIsZero(t *testing.T) {
	var nilStyle *StyleOverride
	if !nilStyle.IsZero() {
		t.Error("Expected nil override to be zero")
	}
	if !(&StyleOverride{}).IsZero() {
		t.Error("Expected empty override to be zero")
	}
	if (&StyleOverride{LineColor: String("#fff")}).IsZero() {
		t.Error("Expected set override not to be zero")
	}
}

func TestStyleOverrideCloneIsDeep(t *testing.T) {
	src := &StyleOverride{LineColor: String("#ff0000"), LineWidth: Float(4)}
	c := src.Clone()

	*c.LineColor = "#00ff00"
	*c.LineWidth = 9
	if *src.LineColor != "#ff0000" || *src.LineWidth != 4 {
		t.Errorf("Expected the source untouched by clone edits, got %s %v",
			*src.LineColor, *src.LineWidth)
	}

	var nilStyle *StyleOverride
	if nilStyle.Clone() != nil {
		t.Error("Expected nil clone for nil override")
	}
}

func TestStyleOverrideValue(t *testing.T) {
	s := &StyleOverride{LineColor: String("#ff0000"), LineWidth: Float(2.5)}

	if v, ok := s.Value(KeyLineColor); !ok || v != "#ff0000" {
		t.Errorf("Expected line color value, got %q (%v)", v, ok)
	}
	if v, ok := s.Value(KeyLineWidth); !ok || v != "2.5" {
		t.Errorf("Expected formatted width, got %q (%v)", v, ok)
	}
	if _, ok := s.Value(KeyOpacity); ok {
		t.Error("Expected unset property to report not set")
	}
	var nilStyle *StyleOverride
	if _, ok := nilStyle.Value(KeyLineColor); ok {
		t.Error("Expected nil override to report not set")
	}
}

func TestStyleOverrideMergeReceiverWins(t *testing.T) {
	a := &StyleOverride{LineColor: String("#ff0000"), LineWidth: Float(4)}
	b := &StyleOverride{LineColor: String("#0000ff"), Opacity: Float(0.5)}

	out := a.Merge(b)
	if *out.LineColor != "#ff0000" {
		t.Errorf("Expected receiver's color to win, got %s", *out.LineColor)
	}
	if out.LineWidth == nil || *out.LineWidth != 4 {
		t.Error("Expected receiver-only property to survive")
	}
	if out.Opacity == nil || *out.Opacity != 0.5 {
		t.Error("Expected argument-only property to be unioned in")
	}
}

func TestStyleOverrideDiff(t *testing.T) {
	a := &StyleOverride{LineColor: String("#ff0000"), LineWidth: Float(4)}
	b := &StyleOverride{LineColor: String("#0000ff"), LineWidth: Float(4), Opacity: Float(1)}

	diff := a.Diff(b)
	if len(diff) != 1 {
		t.Fatalf("Expected 1 conflict, got %d: %v", len(diff), diff)
	}
	if diff[0] != KeyLineColor {
		t.Errorf("Expected conflict on %s, got %s", KeyLineColor, diff[0])
	}

	// Properties set on only one side never conflict.
	if d := a.Diff(&StyleOverride{Opacity: Float(0.2)}); len(d) != 0 {
		t.Errorf("Expected no conflict for disjoint overrides, got %v", d)
	}
	if d := a.Diff(nil); len(d) != 0 {
		t.Errorf("Expected no conflict against nil, got %v", d)
	}
}
