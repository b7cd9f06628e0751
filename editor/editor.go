package editor

import (
	"mapmark/feature"
	"mapmark/folder"
	"mapmark/history"
	"mapmark/interact"
	"mapmark/style"
)

// Preset is a style preset: the kind it arms plus the metadata and
// overrides new features start with. Picking a preset auto-switches to
// the matching drawing tool.
type Preset struct {
	Kind         feature.Kind
	LegendTypeID string
	IconPath     string
	IconSymbol   string
	TextContent  string
	MeasureUnit  string
	Override     *feature.StyleOverride
}

// Events are the editor's typed outbound notifications.
type Events struct {
	ToolChanged    func(Tool)
	FeatureDrawn   func(*feature.Feature)
	MergeRequested func(*interact.MergeRequest)
	// PresetRequired fires when a style-dependent tool is selected
	// without a matching preset; the tool does not arm.
	PresetRequired func(Tool)
	// RenderRequested fires after any change that invalidates resolved
	// styles: feature mutation, visibility toggle, resolution change.
	RenderRequested func()
}

// Options configure a new editor.
type Options struct {
	HistoryLimit int
	Catalog      *style.Catalog
	Style        style.Options
}

// Editor wires the feature store, history stack, folder tree,
// visibility state, style resolver, and interaction manager together,
// and runs the tool-activation state machine on top of them.
type Editor struct {
	store    *feature.Store
	hist     *history.Stack
	folders  *folder.Tree
	vis      *folder.Visibility
	resolver *style.Resolver
	manager  *interact.Manager

	tool       Tool
	cursor     Cursor
	preset     *Preset
	resolution float64

	Events Events
}

// New creates an editor with the neutral hand tool active.
func New(opts Options) *Editor {
	store := feature.NewStore()
	hist := history.NewStack(opts.HistoryLimit)
	e := &Editor{
		store:      store,
		hist:       hist,
		folders:    folder.NewTree(),
		vis:        folder.NewVisibility(),
		resolver:   style.NewResolver(opts.Catalog, opts.Style),
		manager:    interact.NewManager(store, hist),
		tool:       ToolHand,
		cursor:     cursorFor(ToolHand),
		resolution: 1,
	}
	e.manager.Events.FeatureDrawn = func(f *feature.Feature) {
		if e.Events.FeatureDrawn != nil {
			e.Events.FeatureDrawn(f)
		}
	}
	e.manager.Events.MergeRequested = func(r *interact.MergeRequest) {
		if e.Events.MergeRequested != nil {
			e.Events.MergeRequested(r)
		}
	}
	store.AddListener(func(feature.ChangeKind, *feature.Feature) {
		e.requestRender()
	})
	e.vis.AddListener(e.requestRender)
	return e
}

func (e *Editor) requestRender() {
	if e.Events.RenderRequested != nil {
		e.Events.RenderRequested()
	}
}

// Store returns the canonical feature collection.
func (e *Editor) Store() *feature.Store { return e.store }

// History returns the undo/redo stack.
func (e *Editor) History() *history.Stack { return e.hist }

// Folders returns the folder tree.
func (e *Editor) Folders() *folder.Tree { return e.folders }

// Visibility returns the show/hide state.
func (e *Editor) Visibility() *folder.Visibility { return e.vis }

// Resolver returns the style resolver.
func (e *Editor) Resolver() *style.Resolver { return e.resolver }

// Manager returns the interaction manager front-ends feed pointer
// events into.
func (e *Editor) Manager() *interact.Manager { return e.manager }

// Tool returns the active tool.
func (e *Editor) Tool() Tool { return e.tool }

// Cursor returns the pointer glyph for the active tool.
func (e *Editor) Cursor() Cursor { return e.cursor }

// Preset returns the current style preset, or nil.
func (e *Editor) Preset() *Preset { return e.preset }

// SetTool transitions the state machine. On every transition the
// previous tool's gesture handlers are torn down (aborting any
// in-progress draw), the selection/modify interactions are reinstalled
// only for selection-capable tools, the cursor resets to the new
// tool's glyph, and the new tool's handlers are installed with the
// snapping helper strictly after the drawing handler.
//
// Selecting a style-dependent tool without a matching preset does not
// transition; it only emits PresetRequired. Re-selecting the active
// icons tool re-emits PresetRequired so the picker can reopen.
func (e *Editor) SetTool(t Tool) {
	if t.needsPreset() {
		kind, _ := t.drawKind()
		if e.preset == nil || e.preset.Kind != kind {
			if e.Events.PresetRequired != nil {
				e.Events.PresetRequired(t)
			}
			return
		}
		if t == e.tool && t == ToolIcons {
			// Repeated invocation is meaningful for icons: reopen
			// the picker, keep the tool armed.
			if e.Events.PresetRequired != nil {
				e.Events.PresetRequired(t)
			}
			return
		}
	}
	if t == e.tool {
		return
	}

	e.manager.Abort()
	e.manager.UninstallAll()

	switch t {
	case ToolSelect:
		e.manager.Install(interact.NewSelectHandler(e.manager))
		e.manager.Install(interact.NewModifyHandler(e.manager))
	case ToolTransform:
		// Transform goes first: select captures every press it sees, so
		// drags on the held features must be offered to transform before
		// select can start a new click or box gesture.
		e.manager.Install(interact.NewTransformHandler(e.manager))
		e.manager.Install(interact.NewSelectHandler(e.manager))
	case ToolHand:
		// Panning is the front-end's gesture; no handlers.
	case ToolSplit:
		e.manager.Install(interact.NewSplitHandler(e.manager))
		e.manager.Install(interact.NewSnapper(e.manager))
	case ToolMerge:
		e.manager.Install(interact.NewMergeHandler(e.manager))
	case ToolOffset:
		e.manager.Install(interact.NewOffsetHandler(e.manager))
	default:
		if kind, ok := t.drawKind(); ok {
			e.manager.Install(interact.NewDrawHandler(e.manager, e.drawConfig(kind)))
			e.manager.Install(interact.NewSnapper(e.manager))
		}
	}

	e.tool = t
	e.cursor = cursorFor(t)
	if e.Events.ToolChanged != nil {
		e.Events.ToolChanged(t)
	}
}

// drawConfig builds the draw handler config from the current preset.
func (e *Editor) drawConfig(kind feature.Kind) interact.DrawConfig {
	cfg := interact.DrawConfig{Kind: kind}
	if e.preset != nil && e.preset.Kind == kind {
		cfg.Override = e.preset.Override.Clone()
		cfg.LegendTypeID = e.preset.LegendTypeID
		cfg.IconPath = e.preset.IconPath
		cfg.IconSymbol = e.preset.IconSymbol
		cfg.TextContent = e.preset.TextContent
		cfg.MeasureUnit = e.preset.MeasureUnit
	}
	return cfg
}

// SetStylePreset installs a preset and auto-switches into the drawing
// tool that creates the preset's kind.
func (e *Editor) SetStylePreset(p Preset) {
	e.preset = &p
	if t, ok := ToolForKind(p.Kind); ok {
		if t == e.tool {
			// Reinstall so the armed handler picks the preset up.
			prev := e.tool
			e.tool = ToolHand
			e.SetTool(prev)
			return
		}
		e.SetTool(t)
	}
}

// SetResolution records the view resolution and triggers a restyle.
func (e *Editor) SetResolution(r float64) {
	if r <= 0 || r == e.resolution {
		return
	}
	e.resolution = r
	e.requestRender()
}

// Resolution returns the current view resolution.
func (e *Editor) Resolution() float64 { return e.resolution }

// StyledFeature pairs a feature with its resolved render layers.
type StyledFeature struct {
	Feature *feature.Feature
	Layers  []style.Layer
}

// RenderPass resolves every feature at the current resolution and
// visibility. Hidden features resolve to no layers and are skipped.
func (e *Editor) RenderPass() []StyledFeature {
	var out []StyledFeature
	for _, f := range e.store.All() {
		layers := e.resolver.Resolve(f, e.resolution, e.vis)
		if len(layers) == 0 {
			continue
		}
		out = append(out, StyledFeature{Feature: f, Layers: layers})
	}
	return out
}

// Undo reverses the most recent committed mutation.
func (e *Editor) Undo() bool { return e.hist.Undo() }

// Redo re-applies the most recently undone mutation.
func (e *Editor) Redo() bool { return e.hist.Redo() }

// folderDeleteRecord re-deletes the folder nodes on redo and restores
// them on undo. It joins the feature removals in the delete-folder batch
// so undo brings the whole subtree back, not just the features.
type folderDeleteRecord struct {
	tree  *folder.Tree
	nodes []folder.Folder
}

func (r *folderDeleteRecord) Apply() {
	r.tree.Delete(r.nodes[0].ID)
}

func (r *folderDeleteRecord) Revert() {
	for _, n := range r.nodes {
		r.tree.Restore(n)
	}
}

// DeleteFolder removes a folder, its descendants, and every feature
// assigned to any of them, as one undoable step.
func (e *Editor) DeleteFolder(id string) {
	nodes := e.folders.Subtree(id)
	if len(nodes) == 0 {
		return
	}
	e.folders.Delete(id)

	inDoomed := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		inDoomed[n.ID] = true
	}
	var ids []string
	for _, f := range e.store.All() {
		if inDoomed[f.FolderID] {
			ids = append(ids, f.ID)
		}
	}
	records := []history.Record{&folderDeleteRecord{tree: e.folders, nodes: nodes}}
	if len(ids) > 0 {
		records = append(records, feature.NewRemoveRecord(e.store, ids...))
	}
	e.hist.Record(&history.Batch{Name: "delete folder", Records: records})
}

// DropOnFolder resolves a drag-and-drop of a feature onto a folder
// target and commits the reassignment. An empty target clears the
// assignment (the designated root target).
func (e *Editor) DropOnFolder(featureID, targetFolderID string) error {
	target, err := e.folders.ResolveDrop(targetFolderID)
	if err != nil {
		return err
	}
	f, ok := e.store.Get(featureID)
	if !ok {
		return folder.ErrNotFound
	}
	if f.FolderID == target {
		return nil
	}
	rec := &feature.FolderRecord{Store: e.store, ID: featureID, Before: f.FolderID, After: target}
	rec.Apply()
	e.hist.Record(&history.Batch{Name: "move to folder", Records: []history.Record{rec}})
	return nil
}

// SetStyleOverride replaces a feature's style overrides as one
// undoable step (the property-panel edit path).
func (e *Editor) SetStyleOverride(featureID string, s *feature.StyleOverride) bool {
	f, ok := e.store.Get(featureID)
	if !ok {
		return false
	}
	rec := &feature.StyleRecord{Store: e.store, ID: featureID, Before: f.Style.Clone(), After: s.Clone()}
	rec.Apply()
	e.hist.Record(&history.Batch{Name: "restyle", Records: []history.Record{rec}})
	return true
}
