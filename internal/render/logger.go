package render

// Logger receives advisory progress output. Per spec.md §5 ("any logging or
// progress counter is advisory and does not affect pixels"), nothing here
// feeds back into the render; a nil Logger in Options disables all output.
// Grounded on the teacher's core.Logger interface threaded through its
// renderer, backed by stdlib log.Logger from cmd/rtrace.
type Logger interface {
	Printf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}
