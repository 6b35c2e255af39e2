package backend

// Reporter wraps a ProgressFunc and enforces the progress contract: values
// are clamped to [0,1], never decrease within one call, and a panicking or
// nil callback never aborts transcription. Not safe for concurrent use by
// multiple goroutines without external ordering.
type Reporter struct {
	fn   ProgressFunc
	last float64
}

// NewReporter creates a Reporter for one Transcribe call. fn may be nil.
func NewReporter(fn ProgressFunc) *Reporter {
	return &Reporter{fn: fn}
}

// Report forwards progress, holding it monotone.
func (r *Reporter) Report(fraction float64, status string) {
	if fraction < r.last {
		fraction = r.last
	}
	if fraction > 1 {
		fraction = 1
	}
	r.last = fraction

	if r.fn == nil {
		return
	}
	defer func() {
		// A broken observer must not take the transcription down with it.
		_ = recover()
	}()
	r.fn(fraction, status)
}

// Last returns the most recently reported fraction.
func (r *Reporter) Last() float64 {
	return r.last
}
