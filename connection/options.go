package connection

import "time"

// Recorder receives every request line after it has been written, without
// its trailing newline. query is true for lines sent by Call and CallRaw,
// which expect a reply.
type Recorder interface {
	Record(line string, query bool)
}

// Option configures a Connection.
type Option func(*options)

type options struct {
	autoFlush        bool
	drainBeforeQuery bool
	drainWindow      time.Duration
	recorder         Recorder
}

func defaultOptions() *options {
	return &options{
		autoFlush:   true,
		drainWindow: DefaultDrainWindow,
	}
}

// WithAutoFlush sets the initial auto-flush policy (default on).
func WithAutoFlush(enabled bool) Option {
	return func(o *options) { o.autoFlush = enabled }
}

// WithDrainBeforeQuery makes Call and CallRaw discard stale inbound bytes
// before writing the query (default off).
func WithDrainBeforeQuery(enabled bool) Option {
	return func(o *options) { o.drainBeforeQuery = enabled }
}

// WithDrainWindow bounds each non-blocking TCP read on sockets that cannot
// be polled directly. Ordinary TCP sockets never wait while draining.
func WithDrainWindow(d time.Duration) Option {
	return func(o *options) { o.drainWindow = d }
}

// WithRecorder attaches a Recorder that sees every written request line.
func WithRecorder(r Recorder) Option {
	return func(o *options) { o.recorder = r }
}
