package cmdbuf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vkcpu/vkcpu/devstate"
	"github.com/vkcpu/vkcpu/image"
	"github.com/vkcpu/vkcpu/types"
)

const (
	testWidth  = 4
	testHeight = 4
)

// newTestColorImage allocates and binds a small RGBA8 render target.
func newTestColorImage(t *testing.T) (*image.Image, *image.View) {
	t.Helper()
	img, err := image.NewImage(types.FormatRGBA8Unorm, types.Extent3D{Width: testWidth, Height: testHeight, Depth: 1}, 1, 1, types.URenderTarget)
	require.NoError(t, err)
	mem := image.NewMemory(img.ImageSize().TotalSize)
	require.NoError(t, img.BindMemory(mem, 0))
	view, err := img.NewView(0, 1, 0, 1)
	require.NoError(t, err)
	return img, view
}

// newTestFramebuffer returns a fresh primary command buffer and a
// single-color-attachment framebuffer ready to BeginRenderPass into.
func newTestFramebuffer(t *testing.T) (*CmdBuffer, *devstate.Framebuffer) {
	t.Helper()
	img, view := newTestColorImage(t)
	rp, err := devstate.NewRenderPass(
		[]devstate.AttachmentDescription{{Format: img.Format(), LoadOp: devstate.LoadOpClear, StoreOp: devstate.StoreOpStore}},
		[]devstate.Subpass{{ColorAttachments: []uint32{0}}},
	)
	require.NoError(t, err)
	fb, err := devstate.NewFramebuffer(rp, []*image.View{view}, testWidth, testHeight, 1)
	require.NoError(t, err)
	return New(LevelPrimary, nil), fb
}

// newTestBuffer allocates and binds a buffer of size bytes filled with
// data (which may be shorter than size; the remainder stays zeroed).
func newTestBuffer(t *testing.T, size int64, usage types.Usage, data []byte) *image.Buffer {
	t.Helper()
	buf := image.NewBuffer(size, usage)
	mem := image.NewMemory(size)
	require.NoError(t, buf.BindMemory(mem, 0))
	dst, err := buf.Data(0, size)
	require.NoError(t, err)
	copy(dst, data)
	return buf
}
