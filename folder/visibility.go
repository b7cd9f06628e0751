package folder

import "mapmark/feature"

// Visibility is the show/hide state the style resolver consults: a set
// of globally hidden kinds plus a set of individually hidden features.
// Mutated only by explicit user toggles; every change notifies listeners
// so a re-render pass can run.
type Visibility struct {
	hiddenKinds    map[feature.Kind]bool
	hiddenFeatures map[string]bool
	listeners      []func()
}

// NewVisibility creates a state with everything visible.
func NewVisibility() *Visibility {
	return &Visibility{
		hiddenKinds:    make(map[feature.Kind]bool),
		hiddenFeatures: make(map[string]bool),
	}
}

// AddListener registers a change observer.
func (v *Visibility) AddListener(l func()) {
	v.listeners = append(v.listeners, l)
}

func (v *Visibility) notify() {
	for _, l := range v.listeners {
		l()
	}
}

// SetKindHidden toggles global visibility for a kind.
func (v *Visibility) SetKindHidden(k feature.Kind, hidden bool) {
	if v.hiddenKinds[k] == hidden {
		return
	}
	if hidden {
		v.hiddenKinds[k] = true
	} else {
		delete(v.hiddenKinds, k)
	}
	v.notify()
}

// KindHidden reports whether a kind is globally hidden.
func (v *Visibility) KindHidden(k feature.Kind) bool {
	return v.hiddenKinds[k]
}

// SetFeatureHidden toggles visibility for one feature.
func (v *Visibility) SetFeatureHidden(id string, hidden bool) {
	if v.hiddenFeatures[id] == hidden {
		return
	}
	if hidden {
		v.hiddenFeatures[id] = true
	} else {
		delete(v.hiddenFeatures, id)
	}
	v.notify()
}

// FeatureHidden reports whether one feature is individually hidden.
func (v *Visibility) FeatureHidden(id string) bool {
	return v.hiddenFeatures[id]
}

// Hidden reports whether a feature should not render, either because its
// kind is hidden or it is hidden individually. A nil receiver means
// everything is visible.
func (v *Visibility) Hidden(f *feature.Feature) bool {
	if v == nil {
		return false
	}
	return v.hiddenKinds[f.Kind] || v.hiddenFeatures[f.ID]
}
