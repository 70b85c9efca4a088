package i

// Recorder collects explorer run metrics.
type Recorder interface {
	// RunCreated counts a new run.
	RunCreated()

	// RunRemoved counts a run leaving the manager.
	RunRemoved()

	// Updated counts one explorer update ending in the named state.
	Updated(state string)
}
