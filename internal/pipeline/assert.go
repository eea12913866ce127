package pipeline

// assert panics when an internal-consistency condition does not hold.
// The hot path has no error channel; a failed assert aborts the draw.
func assert(b bool, msg string) {
	if !b {
		panic("pipeline: " + msg)
	}
}
