// Package metrics records effect pipeline activity.
//
// Components receive a [Recorder] through dependency injection and default
// to [NoopRecorder], so instrumentation costs nothing until a real recorder
// such as [PrometheusRecorder] is swapped in.
package metrics

import "time"

// Recorder receives pipeline events.
type Recorder interface {
	// ObserveRebuild records one rebuild attempt, the number of effects live
	// after it and its error, if any.
	ObserveRebuild(d time.Duration, active int, err error)

	// IncLiveUpdate counts parameters pushed to an active effect without a
	// rebuild.
	IncLiveUpdate(effect string)

	// IncEffectFailure counts a failed lifecycle call.
	IncEffectFailure(effect, op string)

	// IncUnknownEffect counts updates naming an unregistered effect.
	IncUnknownEffect()
}

// NoopRecorder discards everything.
type NoopRecorder struct{}

func (NoopRecorder) ObserveRebuild(time.Duration, int, error) {}
func (NoopRecorder) IncLiveUpdate(string)                     {}
func (NoopRecorder) IncEffectFailure(string, string)          {}
func (NoopRecorder) IncUnknownEffect()                        {}
