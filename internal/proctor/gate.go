package proctor

// violationRecord is the single open violation (or the manual-submit
// confirmation, which reuses the same gate). It exists only between open and
// resolution.
type violationRecord struct {
	dialog     Dialog
	onConfirm  func()
	onCancel   func()
	cancelable bool
}

// gate serializes violation handling: while a record is open, every further
// detection is a no-op, so concurrent signals can never stack dialogs or race
// submissions.
type gate struct {
	rec *violationRecord
}

func (g *gate) isOpen() bool { return g.rec != nil }

// open installs a record. Returns false if one is already open.
func (g *gate) open(rec *violationRecord) bool {
	if g.rec != nil {
		return false
	}
	g.rec = rec
	return true
}

// take closes the gate and returns the record. Resolution must close the
// record before running any callback side effects.
func (g *gate) take() *violationRecord {
	rec := g.rec
	g.rec = nil
	return rec
}
