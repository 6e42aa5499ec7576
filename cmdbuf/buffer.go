package cmdbuf

import (
	"fmt"

	"github.com/vkcpu/vkcpu/devstate"
)

// Level distinguishes a primary command buffer (submittable directly)
// from a secondary one (only executable via ExecuteCommands from a
// primary).
type Level uint8

const (
	LevelPrimary Level = iota
	LevelSecondary
)

// BufferState is the command buffer's recording/execution state
// machine:
//
//	Initial -> Recording -> Executable -> Pending -> Executable | Invalid
//
// Reset is only valid outside Pending.
type BufferState uint8

const (
	StateInitial BufferState = iota
	StateRecording
	StateExecutable
	StatePending
	StateInvalid
)

// BeginFlags mirrors VkCommandBufferUsageFlagBits: bits set at Begin
// that change replay and reset semantics.
type BeginFlags uint8

const (
	// FlagOneTimeSubmit forces the buffer to StateInvalid (rather than
	// back to StateExecutable) once Submit's replay completes.
	FlagOneTimeSubmit BeginFlags = 1 << iota
	// FlagRenderPassContinue marks a secondary buffer as only valid to
	// execute within an active render pass. Recorded but not enforced
	// beyond bookkeeping, since this driver has no concept of a
	// render-pass-external secondary executing concurrently.
	FlagRenderPassContinue
	// FlagSimultaneousUse permits the buffer to be pending on more than
	// one submission at once. This driver replays synchronously within
	// Submit, so the flag is recorded but has no effect; Reset still
	// rejects a buffer in StatePending.
	FlagSimultaneousUse
)

// CmdBuffer is a recorded, replayable sequence of Commands with an
// explicit primary/secondary level and one-time-submit or reusable
// replay semantics.
type CmdBuffer struct {
	level      Level
	state      BufferState
	beginFlags BeginFlags
	commands   []Command
	debug      DebugSink

	insideRenderPass bool
}

// New returns a command buffer in StateInitial. sink may be nil.
func New(level Level, sink DebugSink) *CmdBuffer {
	return &CmdBuffer{level: level, state: StateInitial, debug: sink}
}

// State reports the buffer's current lifecycle state.
func (cb *CmdBuffer) State() BufferState { return cb.state }

// Begin transitions Initial -> Recording. Calling Begin on a buffer in
// any other state is a usage error; re-record a used buffer by calling
// Reset first.
func (cb *CmdBuffer) Begin(flags BeginFlags) error {
	if cb.state != StateInitial {
		return fmt.Errorf("%w: Begin on a buffer in state %d", ErrInvalidState, cb.state)
	}
	cb.state = StateRecording
	cb.beginFlags = flags
	cb.commands = cb.commands[:0]
	cb.insideRenderPass = false
	return nil
}

// End transitions Recording -> Executable. Ending while still inside a
// BeginRenderPass/EndRenderPass pair is a usage error.
func (cb *CmdBuffer) End() error {
	if cb.state != StateRecording {
		return fmt.Errorf("%w: End on a buffer in state %d", ErrInvalidState, cb.state)
	}
	if cb.insideRenderPass {
		return fmt.Errorf("%w: End called before EndRenderPass", ErrInvalidRenderPass)
	}
	cb.state = StateExecutable
	return nil
}

// Reset discards all recorded commands and returns the buffer to
// Initial. Reset is invalid while the buffer is Pending.
func (cb *CmdBuffer) Reset(flags BeginFlags) error {
	if cb.state == StatePending {
		return fmt.Errorf("%w: Reset on a pending buffer", ErrInvalidState)
	}
	cb.state = StateInitial
	cb.commands = nil
	cb.insideRenderPass = false
	return nil
}

// record appends c to the buffer, requiring StateRecording. Recording
// in any other state poisons the buffer to StateInvalid rather than
// panicking, since this driver reports errors instead of aborting the
// process.
func (cb *CmdBuffer) record(c Command) error {
	if cb.state != StateRecording {
		was := cb.state
		cb.state = StateInvalid
		return fmt.Errorf("%w: record attempted in state %d", ErrInvalidState, was)
	}
	cb.commands = append(cb.commands, c)
	return nil
}

// Submit replays the buffer's commands against state in order,
// transitioning Executable -> Pending -> Executable (or Invalid, if
// FlagOneTimeSubmit was set at Begin). Side effects land on bound
// images/buffers and, when a DebugSink is attached, a stream of debug
// events.
func (cb *CmdBuffer) Submit(state *devstate.State) error {
	if cb.state != StateExecutable {
		return fmt.Errorf("%w: Submit on a buffer in state %d", ErrInvalidState, cb.state)
	}
	cb.state = StatePending

	r := &replayer{state: state, debug: cb.debug}
	for _, c := range cb.commands {
		if cb.debug != nil {
			cb.debug.Record(labelFor(c.Kind()))
		}
		if err := c.exec(r); err != nil {
			cb.state = StateInvalid
			return err
		}
	}

	if cb.beginFlags&FlagOneTimeSubmit != 0 {
		cb.state = StateInvalid
	} else {
		cb.state = StateExecutable
	}
	return nil
}
