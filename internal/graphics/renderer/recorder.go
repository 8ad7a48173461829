package renderer

// Recorder is a Backend that keeps every draw call of the current frame.
// Used by headless runs and tests.
type Recorder struct {
	Calls []DrawCall
}

// Draw records the call
func (r *Recorder) Draw(call DrawCall) {
	r.Calls = append(r.Calls, call)
}

// Reset drops recorded calls, keeping capacity
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}
