package history

import "testing"

// counter is a minimal reversible record for exercising the stack.
type counter struct {
	value *int
	delta int
}

func (c *counter) Apply()  { *c.value += c.delta }
func (c *counter) Revert() { *c.value -= c.delta }

func TestUndoRedoRoundTrip(t *testing.T) {
	s := NewStack(0)
	value := 0
	for i := 1; i <= 3; i++ {
		rec := &counter{value: &value, delta: i}
		rec.Apply()
		s.Record(rec)
	}
	if value != 6 {
		t.Fatalf("Expected value 6 after edits, got %d", value)
	}

	for s.CanUndo() {
		s.Undo()
	}
	if value != 0 {
		t.Errorf("Expected full undo to restore 0, got %d", value)
	}

	for s.CanRedo() {
		s.Redo()
	}
	if value != 6 {
		t.Errorf("Expected full redo to restore 6, got %d", value)
	}
}

func TestRecordClearsRedo(t *testing.T) {
	s := NewStack(0)
	value := 0
	rec := &counter{value: &value, delta: 1}
	rec.Apply()
	s.Record(rec)
	s.Undo()

	if !s.CanRedo() {
		t.Fatal("Expected redo to be available after undo")
	}
	rec2 := &counter{value: &value, delta: 10}
	rec2.Apply()
	s.Record(rec2)
	if s.CanRedo() {
		t.Error("Expected a new record to clear the redo stack")
	}
}

func TestLimitEvictsOldest(t *testing.T) {
	s := NewStack(2)
	value := 0
	for i := 0; i < 5; i++ {
		rec := &counter{value: &value, delta: 1}
		rec.Apply()
		s.Record(rec)
	}

	undone := 0
	for s.Undo() {
		undone++
	}
	if undone != 2 {
		t.Errorf("Expected only 2 undos with limit 2, got %d", undone)
	}
	if value != 3 {
		t.Errorf("Expected evicted edits to stay applied, got %d", value)
	}
}

func TestListenerFiresOncePerOperation(t *testing.T) {
	s := NewStack(0)
	var ops []Op
	s.AddListener(func(op Op) { ops = append(ops, op) })

	value := 0
	rec := &counter{value: &value, delta: 1}
	rec.Apply()
	s.Record(rec)
	s.Undo()
	s.Redo()

	want := []Op{OpRecord, OpUndo, OpRedo}
	if len(ops) != len(want) {
		t.Fatalf("Expected %d notifications, got %d", len(want), len(ops))
	}
	for i, w := range want {
		if ops[i] != w {
			t.Errorf("Notification %d: expected %v, got %v", i, w, ops[i])
		}
	}
}

func TestNoOpStaysSilent(t *testing.T) {
	s := NewStack(0)
	calls := 0
	s.AddListener(func(Op) { calls++ })

	if s.Undo() {
		t.Error("Expected Undo on an empty stack to return false")
	}
	if s.Redo() {
		t.Error("Expected Redo on an empty stack to return false")
	}
	s.Record(nil)
	if calls != 0 {
		t.Errorf("Expected no notifications for no-ops, got %d", calls)
	}
}

func TestBatchRevertsInReverseOrder(t *testing.T) {
	var log []int
	mk := func(id int) Record {
		return &orderRecord{id: id, log: &log}
	}
	b := &Batch{Name: "test", Records: []Record{mk(1), mk(2), mk(3)}}
	b.Apply()
	log = nil
	b.Revert()
	if len(log) != 3 || log[0] != -3 || log[1] != -2 || log[2] != -1 {
		t.Errorf("Expected reverse revert order [-3 -2 -1], got %v", log)
	}
}

type orderRecord struct {
	id  int
	log *[]int
}

func (r *orderRecord) Apply()  { *r.log = append(*r.log, r.id) }
func (r *orderRecord) Revert() { *r.log = append(*r.log, -r.id) }
