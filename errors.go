package fx

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by the pipeline.
var (
	// ErrNilRoot is returned by New when the root node is nil or destroyed.
	ErrNilRoot = errors.New("fx: nil or destroyed root node")

	// ErrNoLookAt is returned by New when the root has no view ancestor.
	ErrNoLookAt = errors.New("fx: could not find a lookAt ancestor")

	// ErrInvalidEffect is returned when registering an empty id or a nil effect.
	ErrInvalidEffect = errors.New("fx: invalid effect registration")

	// ErrDuplicateEffect is returned when registering an id twice.
	ErrDuplicateEffect = errors.New("fx: effect already registered")

	// ErrClosed is returned when using a closed pipeline.
	ErrClosed = errors.New("fx: pipeline closed")

	// ErrBadLeaf is returned when an effect's Activate yields a node outside
	// the pipeline root.
	ErrBadLeaf = errors.New("fx: effect returned an invalid attachment node")

	// ErrBadParam marks parameters an effect rejected while still applying
	// the valid ones. Effects wrap it from SetParams. During a rebuild such
	// an error is reported but the effect stays in the chain.
	ErrBadParam = errors.New("fx: bad parameter")
)

// Op names an effect lifecycle operation.
type Op string

// Lifecycle operations reported in EffectError.
const (
	OpInit       Op = "init"
	OpActivate   Op = "activate"
	OpSetParams  Op = "setParams"
	OpDeactivate Op = "deactivate"
)

// EffectError reports a failed lifecycle call on a registered effect.
type EffectError struct {
	ID  string
	Op  Op
	Err error
}

func (e *EffectError) Error() string {
	return fmt.Sprintf("fx: effect %q %s: %v", e.ID, e.Op, e.Err)
}

func (e *EffectError) Unwrap() error { return e.Err }

// RebuildError reports the effects that failed during a rebuild.
//
// With IsolateFailures the rebuild still committed and Aborted is false.
// With AbortOnFailure the previous chain was restored and the rebuild
// stays pending.
type RebuildError struct {
	Failures []error
	Aborted  bool
}

func (e *RebuildError) Error() string {
	var b strings.Builder
	if e.Aborted {
		b.WriteString("fx: rebuild aborted")
	} else {
		b.WriteString("fx: rebuild isolated failing effects")
	}
	for i, err := range e.Failures {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(err.Error())
	}
	return b.String()
}

func (e *RebuildError) Unwrap() []error { return e.Failures }

// Failed returns the ids of the effects named in Failures, in order.
func (e *RebuildError) Failed() []string {
	var ids []string
	for _, err := range e.Failures {
		var ee *EffectError
		if errors.As(err, &ee) {
			ids = append(ids, ee.ID)
		}
	}
	return ids
}
