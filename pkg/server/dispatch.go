package server

import (
	"fmt"

	"github.com/helixml/icm/pkg/proto"
	"github.com/helixml/icm/pkg/wire"
)

// dispatch is the single entry point every decoded frame passes
// through, spec.md §4.3's "one handler per type." Handlers validate
// target existence, mutate the owning entity, and call
// s.host.ScheduleFrame() — the actual scene mirror runs on the next
// output frame (see outputFrame/scene.SyncAll), except raise/lower
// which spec.md §4.4 describes as an immediate reorder.
func (s *Server) dispatch(c *Client, f wire.Frame) error {
	t := proto.MsgType(f.Header.Type)
	p := f.Payload

	switch t {
	case proto.CreateWindow:
		return s.handleCreateWindow(c, p)
	case proto.DestroyWindow:
		return s.handleDestroyWindow(c, p)
	case proto.SetWindow:
		return s.handleSetWindow(p)
	case proto.SetLayer:
		return s.handleSetLayer(p)
	case proto.SetAttachments:
		return s.handleSetAttachments(p)
	case proto.DrawRect:
		return s.handleDrawRect(p)
	case proto.ImportDmabuf:
		return s.handleImportDmabuf(c, p, f.Fds)
	case proto.ExportDmabuf:
		return s.handleExportDmabuf(c, p)
	case proto.DrawLine:
		return s.handleDrawLine(p)
	case proto.DrawCircle:
		return s.handleDrawCircle(p)
	case proto.DrawPolygon:
		return s.handleDrawPolygon(p)
	case proto.DrawImage:
		return s.handleDrawImage(p)
	case proto.BlitBuffer:
		return s.handleBlitBuffer(p)
	case proto.BatchBegin:
		return s.handleBatchBegin(c, p)
	case proto.BatchEnd:
		return s.handleBatchEnd(c, p)
	case proto.ExportSurface:
		return s.handleExportSurface(p)
	case proto.ImportSurface:
		return s.handleImportSurface(p)
	case proto.CreateBuffer:
		return s.handleCreateBuffer(c, p)
	case proto.DestroyBuffer:
		return s.handleDestroyBuffer(c, p)
	case proto.QueryBufferInfo:
		return s.handleQueryBufferInfo(c, f)

	case proto.RegisterPointerEvent:
		return s.handleRegisterPointerEvent(c, p)
	case proto.RegisterKeyboardEvent:
		return s.handleRegisterKeyboardEvent(c, p)
	case proto.QueryCaptureMouse:
		return s.handleQueryCaptureMouse(c, p)
	case proto.QueryCaptureKeyboard:
		return s.handleQueryCaptureKeyboard(c, p)
	case proto.RegisterGlobalPointerEvent:
		c.globalPointer = true
		return nil
	case proto.RegisterGlobalKeyboardEvent:
		c.globalKeyboard = true
		return nil
	case proto.RegisterGlobalCaptureMouse:
		c.globalCaptureMouse = true
		return nil
	case proto.RegisterGlobalCaptureKeyboard:
		c.globalCaptureKeyboard = true
		return nil
	case proto.UnregisterGlobalCaptureKeyboard:
		c.globalCaptureKeyboard = false
		return nil
	case proto.UnregisterGlobalCaptureMouse:
		c.globalCaptureMouse = false
		return nil

	case proto.UploadImage:
		return s.handleUploadImage(p, f.Payload)
	case proto.DestroyImage:
		return s.handleDestroyImage(p)
	case proto.DrawUploadedImage:
		return s.handleDrawUploadedImage(p)
	case proto.DrawText:
		return s.handleDrawText(p)

	case proto.SetWindowVisible:
		return s.handleSetWindowVisible(p)

	case proto.RegisterKeybind:
		return s.handleRegisterKeybind(c, p)
	case proto.UnregisterKeybind:
		return s.handleUnregisterKeybind(p)

	case proto.RegisterClickRegion:
		return s.handleRegisterClickRegion(c, p)
	case proto.UnregisterClickRegion:
		return s.handleUnregisterClickRegion(p)

	case proto.RequestScreenCopy:
		return s.handleRequestScreenCopy(c, p)

	case proto.SetWindowPosition:
		return s.handleSetWindowPosition(p)
	case proto.SetWindowSize:
		return s.handleSetWindowSize(p)
	case proto.SetWindowOpacity:
		return s.handleSetWindowOpacity(p)
	case proto.SetWindowTransform:
		return s.handleSetWindowTransform(p)
	case proto.SetWindowBlur:
		return s.handleSetWindowBlur(p)
	case proto.SetScreenEffect:
		return s.handleSetScreenEffect(p)
	case proto.SetWindowEffect:
		return s.handleSetWindowEffect(p)

	case proto.SetWindowLayer:
		return s.handleSetWindowLayer(p)
	case proto.RaiseWindow:
		return s.handleRaiseWindow(p)
	case proto.LowerWindow:
		return s.handleLowerWindow(p)
	case proto.SetWindowParent:
		return s.handleSetWindowParent(p)

	case proto.SetWindowTransform3D:
		return s.handleSetWindowTransform3D(p)
	case proto.SetWindowMatrix:
		return s.handleSetWindowMatrix(p)

	case proto.SetWindowState:
		return s.handleSetWindowState(p)
	case proto.FocusWindow:
		return s.handleFocusWindow(p)
	case proto.BlurWindow:
		return s.handleBlurWindow(p)

	case proto.AnimateWindow:
		return s.handleAnimateWindow(p)
	case proto.StopAnimation:
		return s.handleStopAnimation(p)

	case proto.QueryWindowPosition:
		return s.handleQueryWindowPosition(c, p)
	case proto.QueryWindowSize:
		return s.handleQueryWindowSize(c, p)
	case proto.QueryWindowAttributes:
		return s.handleQueryWindowAttributes(c, p)
	case proto.QueryWindowLayer:
		return s.handleQueryWindowLayer(c, p)
	case proto.QueryWindowState:
		return s.handleQueryWindowState(c, p)
	case proto.QueryScreenDimensions:
		return s.handleQueryScreenDimensions(c, p)
	case proto.QueryMonitors:
		return s.handleQueryMonitors(c, p)
	case proto.QueryWindowInfo:
		return s.handleQueryWindowInfo(c, p)
	case proto.QueryToplevelWindows:
		return s.handleQueryToplevelWindows(c, p)

	case proto.SetWindowMeshTransform:
		return s.handleSetWindowMeshTransform(p, f.Payload)
	case proto.ClearWindowMeshTransform:
		return s.handleClearWindowMeshTransform(p)
	case proto.UpdateWindowMeshVertices:
		return s.handleUpdateWindowMeshVertices(p, f.Payload)

	case proto.SubscribeWindowEvents:
		return s.handleSubscribeWindowEvents(c, p)
	case proto.UnsubscribeWindowEvents:
		return s.handleUnsubscribeWindowEvents(c, p)

	case proto.SetWindowDecorations:
		return s.handleSetWindowDecorations(p)
	case proto.RequestWindowDecorations:
		return s.handleRequestWindowDecorations(c, p)

	case proto.LaunchApp:
		return s.handleLaunchApp(p)

	default:
		s.logger.Debug("unsupported or server-to-client-only message type, skipping", "type", t)
		return nil
	}
}

func errNotFound(kind string, id uint32) error {
	return fmt.Errorf("%s %d not found", kind, id)
}

func boolToU8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
