package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/paulmach/orb"

	"mapmark/editor"
	"mapmark/feature"
	"mapmark/interact"
	"mapmark/style"
)

// toolKeys maps keyboard shortcuts to tools. Drawing tools get their
// initial letter where possible.
var toolKeys = map[rune]editor.Tool{
	'v': editor.ToolSelect,
	't': editor.ToolTransform,
	'h': editor.ToolHand,
	'p': editor.ToolPoint,
	'l': editor.ToolPolyline,
	'f': editor.ToolFreehand,
	'a': editor.ToolArrow,
	'x': editor.ToolText,
	'i': editor.ToolIcons,
	'g': editor.ToolLegends,
	'm': editor.ToolMeasure,
	'b': editor.ToolBox,
	'c': editor.ToolCircle,
	'r': editor.ToolArc,
	'e': editor.ToolRevCloud,
	's': editor.ToolSplit,
	'j': editor.ToolMerge,
	'o': editor.ToolOffset,
}

// tui is the terminal front-end: it owns the viewport, translates tcell
// events into pointer gestures, and rasterizes resolved layers to cells.
type tui struct {
	screen   tcell.Screen
	ed       *editor.Editor
	filename string

	// origin is the world coordinate of the top-left cell; res is the
	// view resolution in world units per cell.
	origin orb.Point
	res    float64

	status  string
	merge   *interact.MergeRequest
	dragged bool
	panning bool
	panFrom orb.Point
	dirty   bool
}

func runInteractive(filename string, opts editor.Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	t := &tui{
		screen:   screen,
		ed:       editor.New(opts),
		filename: filename,
		res:      1,
		dirty:    true,
	}
	t.ed.Events.RenderRequested = func() { t.dirty = true }
	t.ed.Events.ToolChanged = func(tool editor.Tool) {
		t.setStatus("tool: " + tool.String())
	}
	t.ed.Events.MergeRequested = func(req *interact.MergeRequest) {
		t.merge = req
		t.setStatus(fmt.Sprintf("merge: %d style conflicts. y keeps first, n keeps second, ESC cancels", len(req.Conflicts)))
	}
	t.ed.Events.PresetRequired = func(tool editor.Tool) {
		// A graphical front-end opens a picker here; the TUI arms a
		// default preset and retries.
		t.armDefaultPreset(tool)
	}

	if filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("load %s: %w", filename, err)
		}
		if _, err := t.ed.ImportFeatures(data); err != nil {
			return fmt.Errorf("load %s: %w", filename, err)
		}
	}

	return t.loop()
}

func (t *tui) loop() error {
	for {
		if t.dirty {
			t.render()
			t.dirty = false
		}
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventResize:
			t.screen.Sync()
			t.dirty = true
		case *tcell.EventKey:
			if t.handleKey(ev) {
				return nil
			}
			t.dirty = true
		case *tcell.EventMouse:
			t.handleMouse(ev)
			t.dirty = true
		}
	}
}

func (t *tui) handleKey(ev *tcell.EventKey) (quit bool) {
	if t.merge != nil && t.merge.Pending() {
		switch {
		case ev.Rune() == 'y':
			t.merge.Resolve(t.merge.A.Style.Merge(t.merge.B.Style))
			t.merge = nil
			t.setStatus("merged, kept first line's style")
		case ev.Rune() == 'n':
			t.merge.Resolve(t.merge.B.Style.Merge(t.merge.A.Style))
			t.merge = nil
			t.setStatus("merged, kept second line's style")
		case ev.Key() == tcell.KeyEscape:
			t.merge.Cancel()
			t.merge = nil
			t.setStatus("merge cancelled")
		}
		return false
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		t.ed.Manager().Abort()
		t.ed.Manager().ClearSelection()
	case tcell.KeyEnter:
		t.ed.Manager().Finish()
	case tcell.KeyDelete, tcell.KeyBackspace, tcell.KeyBackspace2:
		t.ed.Manager().DeleteSelection()
	case tcell.KeyUp:
		t.origin = orb.Point{t.origin.X(), t.origin.Y() - 4*t.res}
	case tcell.KeyDown:
		t.origin = orb.Point{t.origin.X(), t.origin.Y() + 4*t.res}
	case tcell.KeyLeft:
		t.origin = orb.Point{t.origin.X() - 4*t.res, t.origin.Y()}
	case tcell.KeyRight:
		t.origin = orb.Point{t.origin.X() + 4*t.res, t.origin.Y()}
	case tcell.KeyCtrlC:
		return true
	}

	switch ev.Rune() {
	case 'q':
		return true
	case 'u':
		if !t.ed.Undo() {
			t.setStatus("nothing to undo")
		}
	case 'U':
		if !t.ed.Redo() {
			t.setStatus("nothing to redo")
		}
	case '+', '=':
		t.zoom(0.5)
	case '-':
		t.zoom(2)
	case 'w':
		t.save()
	default:
		if tool, ok := toolKeys[ev.Rune()]; ok {
			t.ed.SetTool(tool)
		}
	}
	return false
}

func (t *tui) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	world := t.screenToWorld(x, y)
	shift := ev.Modifiers()&tcell.ModShift != 0
	p := interact.Pointer{Pos: world, Shift: shift}

	switch {
	case ev.Buttons()&tcell.Button1 != 0:
		if t.ed.Tool() == editor.ToolHand {
			if !t.panning {
				t.panning = true
				t.panFrom = world
			} else {
				t.origin = orb.Point{
					t.origin.X() - (world.X() - t.panFrom.X()),
					t.origin.Y() - (world.Y() - t.panFrom.Y()),
				}
			}
			return
		}
		if !t.dragged {
			t.dragged = true
			t.ed.Manager().Down(p)
		} else {
			t.ed.Manager().Move(p)
		}
	case ev.Buttons()&tcell.WheelUp != 0:
		t.zoom(0.8)
	case ev.Buttons()&tcell.WheelDown != 0:
		t.zoom(1.25)
	default:
		if t.panning {
			t.panning = false
			return
		}
		if t.dragged {
			t.dragged = false
			t.ed.Manager().Up(p)
		}
	}
}

func (t *tui) zoom(factor float64) {
	t.res *= factor
	t.ed.SetResolution(t.res)
}

// armDefaultPreset stands in for the preset picker: it installs the
// first usable preset for the tool and re-selects it.
func (t *tui) armDefaultPreset(tool editor.Tool) {
	switch tool {
	case editor.ToolLegends:
		entries := t.ed.Resolver().Catalog().Entries()
		if len(entries) == 0 {
			t.setStatus("no legend types available")
			return
		}
		t.ed.SetStylePreset(editor.Preset{
			Kind:         feature.KindLegend,
			LegendTypeID: entries[0].ID,
		})
		t.setStatus("legend: " + entries[0].Name)
	case editor.ToolIcons:
		t.ed.SetStylePreset(editor.Preset{
			Kind:       feature.KindIcon,
			IconSymbol: "flag",
		})
		t.setStatus("icon: flag")
	}
}

func (t *tui) save() {
	if t.filename == "" {
		t.setStatus("no filename (start with one to enable saving)")
		return
	}
	data, err := t.ed.ExportGeoJSON()
	if err != nil {
		t.setStatus("save failed: " + err.Error())
		return
	}
	if err := os.WriteFile(t.filename, data, 0644); err != nil {
		t.setStatus("save failed: " + err.Error())
		return
	}
	t.setStatus("saved " + t.filename)
}

func (t *tui) setStatus(s string) {
	t.status = s
	t.dirty = true
}

func (t *tui) screenToWorld(x, y int) orb.Point {
	return orb.Point{
		t.origin.X() + float64(x)*t.res,
		t.origin.Y() + float64(y)*t.res,
	}
}

func (t *tui) worldToScreen(p orb.Point) (int, int) {
	return int((p.X() - t.origin.X()) / t.res),
		int((p.Y() - t.origin.Y()) / t.res)
}

func (t *tui) render() {
	t.screen.Clear()
	for _, sf := range t.ed.RenderPass() {
		selected := t.ed.Manager().IsSelected(sf.Feature.ID)
		for _, layer := range sf.Layers {
			t.drawLayer(sf.Feature, layer, selected)
		}
	}
	t.drawStatus()
	t.screen.Show()
}

func (t *tui) drawLayer(f *feature.Feature, layer style.Layer, selected bool) {
	switch {
	case layer.Stroke != nil:
		st := tcell.StyleDefault.Foreground(tcell.GetColor(layer.Stroke.Color))
		if selected {
			st = st.Reverse(true)
		}
		t.drawGeometry(f.Geometry, st)
	case layer.Marker != nil:
		x, y := t.worldToScreen(layer.Marker.Anchor)
		glyph := '●'
		if layer.Marker.Shape == style.MarkerArrowhead {
			glyph = '►'
		}
		st := tcell.StyleDefault.Foreground(tcell.GetColor(layer.Marker.Color))
		if selected {
			st = st.Reverse(true)
		}
		t.screen.SetContent(x, y, glyph, nil, st)
	case layer.Text != nil:
		x, y := t.worldToScreen(layer.Text.Anchor)
		if layer.Text.OffsetY < 0 {
			y--
		}
		st := tcell.StyleDefault.Foreground(tcell.GetColor(layer.Text.FillColor))
		t.drawString(x, y, layer.Text.Content, st)
	case layer.Icon != nil:
		x, y := t.worldToScreen(layer.Icon.Anchor)
		st := tcell.StyleDefault
		if selected {
			st = st.Reverse(true)
		}
		t.screen.SetContent(x, y, '◆', nil, st)
	}
}

func (t *tui) drawGeometry(g orb.Geometry, st tcell.Style) {
	switch geom := g.(type) {
	case orb.Point:
		x, y := t.worldToScreen(geom)
		t.screen.SetContent(x, y, '●', nil, st)
	case orb.LineString:
		for i := 1; i < len(geom); i++ {
			t.drawSegment(geom[i-1], geom[i], st)
		}
	case orb.Ring:
		for i := 1; i < len(geom); i++ {
			t.drawSegment(geom[i-1], geom[i], st)
		}
	case orb.Polygon:
		for _, ring := range geom {
			t.drawGeometry(ring, st)
		}
	case orb.MultiLineString:
		for _, ls := range geom {
			t.drawGeometry(ls, st)
		}
	case orb.Collection:
		for _, sub := range geom {
			t.drawGeometry(sub, st)
		}
	}
}

// drawSegment rasterizes one world-space segment with Bresenham.
func (t *tui) drawSegment(a, b orb.Point, st tcell.Style) {
	x0, y0 := t.worldToScreen(a)
	x1, y1 := t.worldToScreen(b)

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		t.screen.SetContent(x0, y0, segmentGlyph(dx, dy), nil, st)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func segmentGlyph(dx, dy int) rune {
	switch {
	case dy == 0:
		return '─'
	case dx == 0:
		return '│'
	case dx > -dy:
		return '─'
	case dx < -dy:
		return '│'
	default:
		return '╲'
	}
}

func (t *tui) drawString(x, y int, s string, st tcell.Style) {
	for i, r := range []rune(s) {
		t.screen.SetContent(x+i, y, r, nil, st)
	}
}

func (t *tui) drawStatus() {
	w, h := t.screen.Size()
	name := t.filename
	if name == "" {
		name = "untitled"
	}
	line := fmt.Sprintf("[ %s ] tool: %s (%s) | features: %d | selected: %d",
		name, t.ed.Tool(), t.ed.Cursor(), t.ed.Store().Len(), len(t.ed.Manager().SelectedIDs()))
	if t.status != "" {
		line += " | " + t.status
	}
	st := tcell.StyleDefault.Reverse(true)
	for x := 0; x < w; x++ {
		t.screen.SetContent(x, h-1, ' ', nil, st)
	}
	t.drawString(0, h-1, line, st)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
