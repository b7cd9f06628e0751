// Package editor is the top-level controller: the tool-activation state
// machine, cursor ownership, the style-preset registry, and the typed
// command/event surface collaborators talk to.
package editor

import "mapmark/feature"

// Tool identifies an interactive mode. Exactly one tool is active at a
// time; the default is the neutral hand tool.
type Tool int

const (
	ToolSelect Tool = iota
	ToolTransform
	ToolHand
	ToolPoint
	ToolPolyline
	ToolFreehand
	ToolArrow
	ToolText
	ToolIcons
	ToolLegends
	ToolMeasure
	ToolBox
	ToolCircle
	ToolArc
	ToolRevCloud
	ToolSplit
	ToolMerge
	ToolOffset
)

// Tools lists every tool identifier.
func Tools() []Tool {
	return []Tool{
		ToolSelect, ToolTransform, ToolHand, ToolPoint, ToolPolyline,
		ToolFreehand, ToolArrow, ToolText, ToolIcons, ToolLegends,
		ToolMeasure, ToolBox, ToolCircle, ToolArc, ToolRevCloud,
		ToolSplit, ToolMerge, ToolOffset,
	}
}

// String returns the tool name for display.
func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "select"
	case ToolTransform:
		return "transform"
	case ToolHand:
		return "hand"
	case ToolPoint:
		return "point"
	case ToolPolyline:
		return "polyline"
	case ToolFreehand:
		return "freehand"
	case ToolArrow:
		return "arrow"
	case ToolText:
		return "text"
	case ToolIcons:
		return "icons"
	case ToolLegends:
		return "legends"
	case ToolMeasure:
		return "measure"
	case ToolBox:
		return "box"
	case ToolCircle:
		return "circle"
	case ToolArc:
		return "arc"
	case ToolRevCloud:
		return "revcloud"
	case ToolSplit:
		return "split"
	case ToolMerge:
		return "merge"
	case ToolOffset:
		return "offset"
	default:
		return "unknown"
	}
}

// drawKind maps drawing tools to the kind they create. ok is false for
// non-drawing tools.
func (t Tool) drawKind() (feature.Kind, bool) {
	switch t {
	case ToolPoint:
		return feature.KindPoint, true
	case ToolPolyline:
		return feature.KindPolyline, true
	case ToolFreehand:
		return feature.KindFreehand, true
	case ToolArrow:
		return feature.KindArrow, true
	case ToolText:
		return feature.KindText, true
	case ToolIcons:
		return feature.KindIcon, true
	case ToolLegends:
		return feature.KindLegend, true
	case ToolMeasure:
		return feature.KindMeasure, true
	case ToolBox:
		return feature.KindBox, true
	case ToolCircle:
		return feature.KindCircle, true
	case ToolArc:
		return feature.KindArc, true
	case ToolRevCloud:
		return feature.KindRevCloud, true
	}
	return 0, false
}

// needsPreset reports whether the tool cannot arm without a style
// preset.
func (t Tool) needsPreset() bool {
	return t == ToolIcons || t == ToolLegends
}

// ToolForKind returns the drawing tool that creates the given kind.
func ToolForKind(k feature.Kind) (Tool, bool) {
	for _, t := range Tools() {
		if dk, ok := t.drawKind(); ok && dk == k {
			return t, true
		}
	}
	return 0, false
}

// Cursor is the pointer glyph a front-end should show for the active
// tool.
type Cursor string

const (
	CursorDefault   Cursor = "default"
	CursorPointer   Cursor = "pointer"
	CursorCrosshair Cursor = "crosshair"
	CursorGrab      Cursor = "grab"
	CursorMove      Cursor = "move"
	CursorText      Cursor = "text"
)

func cursorFor(t Tool) Cursor {
	switch t {
	case ToolSelect:
		return CursorPointer
	case ToolTransform:
		return CursorMove
	case ToolHand:
		return CursorGrab
	case ToolText:
		return CursorText
	default:
		return CursorCrosshair
	}
}
