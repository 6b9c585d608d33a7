package editor

import "github.com/zjrosen/jvim/internal/log"

// dotRecorder captures the keys of the last change for '.'. Recording starts
// at the key that begins an edit and stops when the edit completes, which for
// Insert sessions is the Escape that ends them.
type dotRecorder struct {
	keys      []Key
	saved     []Key
	recording bool
	replaying bool
}

// observe appends k while a change is being recorded.
func (d *dotRecorder) observe(k Key) {
	if d.recording && !d.replaying {
		d.keys = append(d.keys, k)
	}
}

// start begins a new recording with k. The previous change is kept until the
// new one completes.
func (d *dotRecorder) start(k Key) {
	if d.replaying {
		return
	}
	if !d.recording {
		d.saved = d.keys
	}
	d.keys = []Key{k}
	d.recording = true
}

// stop ends the recording, keeping the keys for replay.
func (d *dotRecorder) stop() {
	if d.replaying {
		return
	}
	d.recording = false
	d.saved = nil
}

// cancel abandons the recording and restores the previous change.
func (d *dotRecorder) cancel() {
	if d.replaying || !d.recording {
		return
	}
	d.keys = d.saved
	d.saved = nil
	d.recording = false
}

// repeatLast replays the last recorded change at the cursor.
func (e *Editor) repeatLast() {
	if len(e.dot.keys) == 0 {
		e.status = "nothing to repeat"
		return
	}
	keys := append([]Key(nil), e.dot.keys...)
	log.Debug(log.CatEditor, "repeat", "keys", len(keys))
	e.dot.replaying = true
	for _, k := range keys {
		e.dispatch(k)
		e.clampCursor()
	}
	if e.mode.Kind == ModeInsert {
		e.setMode(normalMode)
		e.doc.cursor.Col = max(0, e.doc.cursor.Col-1)
	}
	e.dot.replaying = false
}
