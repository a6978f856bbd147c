package metrics

// Window accumulates per-instance losses between progress reports.
type Window struct {
	seen       int
	windowSum  float64
	windowSize int
	lastLoss   float64
}

// Record adds one training instance's loss.
func (w *Window) Record(loss float64) {
	w.seen++
	w.windowSum += loss
	w.windowSize++
	w.lastLoss = loss
}

// Snapshot returns the aggregated view and resets the window. The total
// instance count is cumulative and survives the reset.
func (w *Window) Snapshot() Snapshot {
	snap := Snapshot{
		Seen:     w.seen,
		LastLoss: w.lastLoss,
	}
	if w.windowSize > 0 {
		snap.AvgLoss = w.windowSum / float64(w.windowSize)
	}
	w.windowSum = 0
	w.windowSize = 0
	return snap
}

// Seen returns the cumulative number of recorded instances.
func (w *Window) Seen() int { return w.seen }

// Snapshot represents loggable training progress.
type Snapshot struct {
	Seen     int
	AvgLoss  float64
	LastLoss float64
}
