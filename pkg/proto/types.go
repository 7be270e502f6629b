// Package proto defines the IPC control-plane's message type registry
// and the fixed wire-layout payload structs carried inside wire.Frame.
//
// Message type codes and struct field order are adopted verbatim from
// the protocol this spec was distilled from (see DESIGN.md); this
// package is the single place both the encode and decode paths read
// the layout from, so there is no second positional copy to drift out
// of sync.
package proto

// MsgType identifies the payload carried by a wire.Frame.
type MsgType uint16

const (
	CreateWindow  MsgType = 1
	DestroyWindow MsgType = 2
	SetWindow     MsgType = 3
	SetLayer      MsgType = 4
	SetAttachments MsgType = 5
	DrawRect      MsgType = 6
	ClearRects    MsgType = 7 // reserved: no observable effect, never dispatched

	ImportDmabuf MsgType = 8
	ExportDmabuf MsgType = 9

	DrawLine    MsgType = 10
	DrawCircle  MsgType = 11
	DrawPolygon MsgType = 12
	DrawImage   MsgType = 13
	BlitBuffer  MsgType = 14

	BatchBegin MsgType = 15
	BatchEnd   MsgType = 16

	ExportSurface MsgType = 17
	ImportSurface MsgType = 18

	CreateBuffer    MsgType = 19
	DestroyBuffer   MsgType = 20
	QueryBufferInfo MsgType = 21

	RegisterPointerEvent  MsgType = 22
	RegisterKeyboardEvent MsgType = 23
	QueryCaptureMouse     MsgType = 24
	QueryCaptureKeyboard  MsgType = 25

	PointerEvent  MsgType = 26
	KeyboardEvent MsgType = 27

	UploadImage      MsgType = 28
	DestroyImage     MsgType = 29
	DrawUploadedImage MsgType = 30
	DrawText         MsgType = 31

	SetWindowVisible MsgType = 32

	RegisterKeybind   MsgType = 33
	UnregisterKeybind MsgType = 34
	KeybindEvent      MsgType = 35

	WindowCreated   MsgType = 36
	WindowDestroyed MsgType = 37

	RegisterClickRegion   MsgType = 38
	UnregisterClickRegion MsgType = 39
	ClickRegionEvent      MsgType = 40

	RequestScreenCopy MsgType = 41
	ScreenCopyData    MsgType = 42

	RegisterGlobalPointerEvent        MsgType = 43
	RegisterGlobalKeyboardEvent       MsgType = 44
	RegisterGlobalCaptureMouse        MsgType = 45
	RegisterGlobalCaptureKeyboard     MsgType = 46
	UnregisterGlobalCaptureKeyboard   MsgType = 58
	UnregisterGlobalCaptureMouse      MsgType = 59

	SetWindowPosition MsgType = 47
	SetWindowSize     MsgType = 48

	SetWindowOpacity MsgType = 49
	SetWindowTransform MsgType = 50
	SetWindowBlur    MsgType = 78
	SetScreenEffect  MsgType = 79
	SetWindowEffect  MsgType = 80

	SetWindowLayer  MsgType = 60
	RaiseWindow     MsgType = 61
	LowerWindow     MsgType = 62
	SetWindowParent MsgType = 63

	SetWindowTransform3D MsgType = 64
	SetWindowMatrix      MsgType = 65

	SetWindowState MsgType = 66
	FocusWindow    MsgType = 67
	BlurWindow     MsgType = 83

	AnimateWindow MsgType = 81
	StopAnimation MsgType = 82

	QueryWindowPosition   MsgType = 52
	QueryWindowSize       MsgType = 53
	QueryWindowAttributes MsgType = 54
	QueryWindowLayer      MsgType = 68
	QueryWindowState      MsgType = 69

	WindowPositionData   MsgType = 55
	WindowSizeData       MsgType = 56
	WindowAttributesData MsgType = 57
	WindowLayerData      MsgType = 70
	WindowStateData      MsgType = 71

	QueryScreenDimensions MsgType = 72
	ScreenDimensionsData  MsgType = 73
	QueryMonitors         MsgType = 74
	MonitorsData          MsgType = 75

	CompositorShutdown MsgType = 51

	QueryWindowInfo MsgType = 76
	WindowInfoData  MsgType = 77

	SetWindowMeshTransform    MsgType = 84
	ClearWindowMeshTransform  MsgType = 85
	UpdateWindowMeshVertices  MsgType = 86

	QueryToplevelWindows MsgType = 87
	ToplevelWindowsData  MsgType = 88
	SubscribeWindowEvents   MsgType = 89
	UnsubscribeWindowEvents MsgType = 90
	WindowTitleChanged      MsgType = 91
	WindowStateChanged      MsgType = 92

	SetWindowDecorations     MsgType = 93
	RequestWindowDecorations MsgType = 94

	LaunchApp MsgType = 95
)

// MinType and MaxType bound the registered message type space. A
// frame whose type falls outside this range is unknown to this
// protocol version and is dropped per spec.md §4.11.
const (
	MinType = 1
	MaxType = 95
)

// Animation target flags for AnimateWindowMsg.Flags.
const (
	AnimatePosition      uint32 = 1 << 0
	AnimateScale         uint32 = 1 << 1
	AnimateOpacity       uint32 = 1 << 2
	Animate3DTranslate   uint32 = 1 << 3
	Animate3DRotate      uint32 = 1 << 4
	Animate3DScale       uint32 = 1 << 5
)

// Window state bitfield shared by SetWindowState and the *_state_data/
// window_info_data replies.
const (
	WindowMinimized uint32 = 1 << 0
	WindowMaximized uint32 = 1 << 1
	WindowFullscreen uint32 = 1 << 2
	WindowDecorated  uint32 = 1 << 3
)

// Window event subscription mask for SUBSCRIBE/UNSUBSCRIBE_WINDOW_EVENTS.
const (
	WindowEventCreated   uint32 = 1 << 0
	WindowEventDestroyed uint32 = 1 << 1
	WindowEventTitle     uint32 = 1 << 2
	WindowEventState     uint32 = 1 << 3
	WindowEventFocus     uint32 = 1 << 4
)
