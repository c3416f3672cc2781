package interdex

// Logger receives the pass's verbose diagnostics: unresolved
// cold-start names, end-marker flushes, pruned primary classes, retry
// notices. A missing canary class is synthesized without a log
// message. It is kept
// as its own small interface so callers can wire it to whatever
// structured logger they already use.
type Logger interface {
	Verbose(level int, format string, args ...any)
}

// NopLogger discards every message. It is the default when no Logger
// is supplied.
type NopLogger struct{}

func (NopLogger) Verbose(level int, format string, args ...any) {}
