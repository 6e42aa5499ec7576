package cmdbuf

import "fmt"

// DebugSink receives a human-readable label for every command as it is
// replayed. It is a field on CmdBuffer rather than a package-level
// singleton, so two buffers can stream to different sinks.
type DebugSink interface {
	Record(label string)
}

// DebugSinkFunc adapts a plain function to DebugSink.
type DebugSinkFunc func(label string)

func (f DebugSinkFunc) Record(label string) { f(label) }

func labelFor(kind CmdKind) string {
	switch kind {
	case CmdBindPipeline:
		return "BindPipeline"
	case CmdBindDescriptorSets:
		return "BindDescriptorSets"
	case CmdBindVertexBuffers:
		return "BindVertexBuffers"
	case CmdBindIndexBuffer:
		return "BindIndexBuffer"
	case CmdSetViewport:
		return "SetViewport"
	case CmdSetScissor:
		return "SetScissor"
	case CmdSetBlendConstant:
		return "SetBlendConstant"
	case CmdSetDepthBounds:
		return "SetDepthBounds"
	case CmdSetStencilReference:
		return "SetStencilReference"
	case CmdPushConstants:
		return "PushConstants"
	case CmdPushDescriptorSet:
		return "PushDescriptorSet"
	case CmdBeginRenderPass:
		return "BeginRenderPass"
	case CmdEndRenderPass:
		return "EndRenderPass"
	case CmdCopyBuffer:
		return "CopyBuffer"
	case CmdCopyImage:
		return "CopyImage"
	case CmdCopyBufferToImage:
		return "CopyBufferToImage"
	case CmdCopyImageToBuffer:
		return "CopyImageToBuffer"
	case CmdBlitImage:
		return "BlitImage"
	case CmdClearColorImage:
		return "ClearColorImage"
	case CmdClearDepthStencilImage:
		return "ClearDepthStencilImage"
	case CmdClearAttachments:
		return "ClearAttachments"
	case CmdDraw:
		return "Draw"
	case CmdDrawIndexed:
		return "DrawIndexed"
	case CmdDispatch:
		return "Dispatch"
	case CmdPipelineBarrier:
		return "PipelineBarrier"
	case CmdSetEvent:
		return "SetEvent"
	case CmdResetEvent:
		return "ResetEvent"
	case CmdWaitEvents:
		return "WaitEvents"
	case CmdExecuteCommands:
		return "ExecuteCommands"
	default:
		return fmt.Sprintf("Command(%d)", kind)
	}
}
