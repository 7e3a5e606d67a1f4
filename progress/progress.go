package progress

// Tracker receives progress events during long-running image operations.
type Tracker interface {
	OnEvent(any)
}

// NewTracker creates a Tracker from a typed callback. Callers work with a
// concrete event type; the interface stays non-generic so it can appear in
// other interfaces without a type parameter.
func NewTracker[E any](fn func(E)) Tracker {
	return funcTracker(func(v any) { fn(v.(E)) })
}

type funcTracker func(any)

func (f funcTracker) OnEvent(e any) { f(e) }

// Nop is a no-op tracker for callers that don't need progress.
var Nop Tracker = funcTracker(func(any) {})
