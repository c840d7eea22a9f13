package status

import "sync/atomic"

// Status tracks which operation a persistor is currently running.
// Every public operation moves Idle -> operation -> Idle.
type Status int64

const (
	Idle Status = iota
	Persisting
	Restoring
	Purging
)

func (s Status) Idle() bool       { return s == Idle }
func (s Status) Persisting() bool { return s == Persisting }
func (s Status) Restoring() bool  { return s == Restoring }
func (s Status) Purging() bool    { return s == Purging }

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Persisting:
		return "persisting"
	case Restoring:
		return "restoring"
	case Purging:
		return "purging"
	default:
		return "unknown"
	}
}

func CAP(statusPointer *Status, from, to Status) bool {
	return atomic.CompareAndSwapInt64((*int64)(statusPointer), int64(from), int64(to))
}

func Store(statusPointer *Status, to Status) {
	atomic.StoreInt64((*int64)(statusPointer), int64(to))
}

func Load(statusPointer *Status) Status {
	return Status(atomic.LoadInt64((*int64)(statusPointer)))
}
