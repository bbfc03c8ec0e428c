package fx

import (
	"log/slog"

	"github.com/gogpu/fx/metrics"
)

// FailurePolicy selects how a rebuild reacts to a failing effect.
type FailurePolicy uint8

const (
	// IsolateFailures skips a failing effect, builds the rest of the chain
	// and commits. This is the default.
	IsolateFailures FailurePolicy = iota

	// AbortOnFailure discards the staged chain, restores the previously
	// active effects and leaves the rebuild pending.
	AbortOnFailure
)

// String returns a human-readable name for the policy.
func (fp FailurePolicy) String() string {
	switch fp {
	case IsolateFailures:
		return "isolate"
	case AbortOnFailure:
		return "abort"
	default:
		return "unknown"
	}
}

// Option configures a Pipeline.
type Option func(*options)

type options struct {
	policy   FailurePolicy
	logger   *slog.Logger
	recorder metrics.Recorder
	noTick   bool
}

func defaultOptions() options {
	return options{
		policy:   IsolateFailures,
		recorder: metrics.NoopRecorder{},
	}
}

// WithFailurePolicy sets the rebuild failure policy.
func WithFailurePolicy(p FailurePolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithLogger sets a logger for this pipeline instead of [Logger].
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithRecorder sets the metrics recorder. Nil keeps the no-op recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorder = r
		}
	}
}

// WithoutTickHook stops New from subscribing the pipeline to the scene's
// tick. The host must then call [Pipeline.Tick] once per frame itself.
func WithoutTickHook() Option {
	return func(o *options) {
		o.noTick = true
	}
}
