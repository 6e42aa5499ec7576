// Package cmdbuf implements the driver's command buffer: an ordered,
// immutable sequence of recorded commands that replays against a
// devstate.State on submit.
package cmdbuf

import "errors"

// ErrInvalidState reports a recording or replay operation attempted
// from a command-buffer state that does not permit it.
var ErrInvalidState = errors.New("cmdbuf: invalid command buffer state")

// ErrDynamicOffsetCount reports BindDescriptorSets being given a
// dynamic-offsets count that does not match the number of dynamic
// bindings across the sets being bound.
var ErrDynamicOffsetCount = errors.New("cmdbuf: dynamic offset count mismatch")

// ErrUnsupported reports a code path this driver deliberately refuses
// rather than guesses the intent of.
var ErrUnsupported = errors.New("cmdbuf: unsupported operation")

// ErrInvalidRenderPass reports a render-pass recording precondition
// violation (e.g. nested BeginRenderPass).
var ErrInvalidRenderPass = errors.New("cmdbuf: invalid render pass recording state")
