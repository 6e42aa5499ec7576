// Package image implements the driver's image and buffer model: layout
// computation, byte-offset arithmetic and bounds-checked accessors over
// a resource's backing memory. Resources are bound once to a region of
// a Memory and keep that region for their lifetime.
package image

import (
	"errors"
	"fmt"

	"github.com/vkcpu/vkcpu/types"
)

// ErrOutOfRange reports an out-of-range slice access, a precondition
// violation the driver does not recover from. It is always returned,
// never panicked, so tests can assert on it without crashing the
// process.
var ErrOutOfRange = errors.New("image: out-of-range access")

// Memory is the backing store a Buffer or Image is bound to. It mirrors
// a single host allocation; the driver performs no aliasing checks
// between resources bound to the same Memory, so the caller must
// externally synchronize conflicting accesses.
type Memory struct {
	data []byte
}

// NewMemory allocates size bytes of zeroed backing storage.
func NewMemory(size int64) *Memory {
	return &Memory{data: make([]byte, size)}
}

// Buffer is a bounds-checked byte region bound to a Memory.
type Buffer struct {
	mem    *Memory
	offset int64
	size   int64
	usage  types.Usage
}

// NewBuffer creates an unbound buffer of the given size.
func NewBuffer(size int64, usage types.Usage) *Buffer {
	return &Buffer{size: size, usage: usage}
}

// BindMemory binds the buffer to [offset, offset+size) within mem.
func (b *Buffer) BindMemory(mem *Memory, offset int64) error {
	if offset < 0 || offset+b.size > int64(len(mem.data)) {
		return fmt.Errorf("%w: buffer bind offset=%d size=%d memory=%d", ErrOutOfRange, offset, b.size, len(mem.data))
	}
	b.mem = mem
	b.offset = offset
	return nil
}

// Size returns the buffer's fixed size in bytes.
func (b *Buffer) Size() int64 { return b.size }

// Usage returns the usage flags the buffer was created with.
func (b *Buffer) Usage() types.Usage { return b.usage }

// Data returns a slice referring to [offset, offset+length) within the
// buffer, validating offset+length <= size.
func (b *Buffer) Data(offset, length int64) ([]byte, error) {
	if offset < 0 || length < 0 || offset+length > b.size {
		return nil, fmt.Errorf("%w: buffer data offset=%d len=%d size=%d", ErrOutOfRange, offset, length, b.size)
	}
	if b.mem == nil {
		return nil, fmt.Errorf("%w: buffer not bound", ErrOutOfRange)
	}
	start := b.offset + offset
	return b.mem.data[start : start+length : start+length], nil
}

// Bytes returns the buffer's full backing slice.
func (b *Buffer) Bytes() ([]byte, error) {
	return b.Data(0, b.size)
}
