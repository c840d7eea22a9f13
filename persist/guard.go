package persist

type Action int

const (
	Proceed Action = iota
	PurgeAndPause
)

// Verdict is the outcome of a size evaluation: what to do with the current
// write cycle and the pause state to commit afterwards.
type Verdict struct {
	Action     Action
	NextPaused bool
}

// Evaluate decides whether a serialized snapshot may be written.
// An oversized snapshot trips a purge and pauses persisting, but only when
// not already paused: the next cycle always proceeds and resets the pause,
// even if still oversized. Pausing suppresses at most one write cycle so a
// purge can never re-trigger itself.
func Evaluate(serializedLength int, maxSize int, currentlyPaused bool) Verdict {
	if maxSize > 0 && serializedLength > maxSize && !currentlyPaused {
		return Verdict{Action: PurgeAndPause, NextPaused: true}
	}
	return Verdict{Action: Proceed, NextPaused: false}
}
