// Package history implements the undo/redo stack: two ordered stacks of
// opaque reversible records, with listeners notified once per successful
// operation so collaborators can trigger persistence.
package history

// Record is one committed, reversible mutation batch. The mutation has
// already been applied when the record is pushed; Revert rolls it back
// and Apply re-runs it.
type Record interface {
	Apply()
	Revert()
}

// Batch groups several records into one atomic undo step. Revert runs
// in reverse order so dependent mutations unwind cleanly.
type Batch struct {
	Name    string
	Records []Record
}

// Apply re-runs every record in order.
func (b *Batch) Apply() {
	for _, r := range b.Records {
		r.Apply()
	}
}

// Revert rolls every record back, newest first.
func (b *Batch) Revert() {
	for i := len(b.Records) - 1; i >= 0; i-- {
		b.Records[i].Revert()
	}
}

// Op identifies which stack operation a listener is being told about.
type Op int

const (
	OpRecord Op = iota
	OpUndo
	OpRedo
)

// Stack holds the undo and redo stacks. Any new record clears the redo
// stack. With a positive limit the oldest entries are evicted once the
// undo stack exceeds it; they simply become unrecoverable.
type Stack struct {
	undo      []Record
	redo      []Record
	limit     int
	listeners []func(Op)
}

// NewStack creates a stack. limit <= 0 means unbounded.
func NewStack(limit int) *Stack {
	return &Stack{limit: limit}
}

// AddListener registers an observer called exactly once per successful
// Record, Undo, or Redo. No-op calls do not notify.
func (s *Stack) AddListener(l func(Op)) {
	s.listeners = append(s.listeners, l)
}

func (s *Stack) notify(op Op) {
	for _, l := range s.listeners {
		l(op)
	}
}

// Record pushes an already-applied mutation record and clears the redo
// stack.
func (s *Stack) Record(r Record) {
	if r == nil {
		return
	}
	s.undo = append(s.undo, r)
	s.redo = s.redo[:0]
	if s.limit > 0 && len(s.undo) > s.limit {
		evicted := len(s.undo) - s.limit
		s.undo = append(s.undo[:0:0], s.undo[evicted:]...)
	}
	s.notify(OpRecord)
}

// CanUndo reports whether an undo is available.
func (s *Stack) CanUndo() bool {
	return len(s.undo) > 0
}

// CanRedo reports whether a redo is available.
func (s *Stack) CanRedo() bool {
	return len(s.redo) > 0
}

// Undo reverses the most recent record and moves it to the redo stack.
// Returns false (and stays silent) when there is nothing to undo.
func (s *Stack) Undo() bool {
	if len(s.undo) == 0 {
		return false
	}
	r := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	r.Revert()
	s.redo = append(s.redo, r)
	s.notify(OpUndo)
	return true
}

// Redo re-applies the most recently undone record and moves it back to
// the undo stack. Returns false when there is nothing to redo.
func (s *Stack) Redo() bool {
	if len(s.redo) == 0 {
		return false
	}
	r := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	r.Apply()
	s.undo = append(s.undo, r)
	s.notify(OpRedo)
	return true
}

// Clear drops both stacks without notifying.
func (s *Stack) Clear() {
	s.undo = s.undo[:0]
	s.redo = s.redo[:0]
}

// Stats returns the current undo and redo depths.
func (s *Stack) Stats() (undo, redo int) {
	return len(s.undo), len(s.redo)
}
