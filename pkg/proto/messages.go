package proto

// Fixed-layout payload structs. Field order and widths are adopted
// verbatim from the protocol header this spec was distilled from (see
// DESIGN.md); EncodeFixed/DecodeFixed pack/unpack them with no
// padding, matching the original's on-wire layout exactly.

type CreateWindowMsg struct {
	WindowID uint32
	X        int32
	Y        int32
	Width    uint32
	Height   uint32
	Layer    uint32
	ColorRGBA uint32
}

type DestroyWindowMsg struct {
	WindowID uint32
}

type SetWindowMsg struct {
	WindowID uint32
	X        int32
	Y        int32
	Width    uint32
	Height   uint32
}

type SetLayerMsg struct {
	WindowID uint32
	Layer    uint32
}

// SetAttachmentsMsg attaches BufferID's pixel content to WindowID,
// the wl_surface.attach analogue for this protocol's unified
// window/buffer model: WindowID's pixel array becomes an alias of
// BufferID's, and its size follows the attached buffer from then on.
type SetAttachmentsMsg struct {
	WindowID uint32
	BufferID uint32
}

type DrawRectMsg struct {
	WindowID  uint32
	RectID    uint32
	X         int32
	Y         int32
	Width     uint32
	Height    uint32
	ColorRGBA uint32
}

// DmabufPlane is one of up to 4 planes of an imported DMA-BUF. FD is
// a placeholder on the wire; the live descriptor travels out of band
// via SCM_RIGHTS ancillary data, in plane order.
type DmabufPlane struct {
	FD       int32
	Offset   uint32
	Stride   uint32
	Modifier uint64
}

type ImportDmabufMsg struct {
	BufferID  uint32
	Width     int32
	Height    int32
	Format    uint32
	Flags     uint32
	NumPlanes uint32
	Planes    [4]DmabufPlane
}

type ExportDmabufMsg struct {
	BufferID uint32
	Flags    uint32
}

type DmabufPlaneReply struct {
	Offset   uint32
	Stride   uint32
	Modifier uint64
}

type ExportDmabufReplyMsg struct {
	BufferID  uint32
	Width     int32
	Height    int32
	Format    uint32
	NumPlanes uint32
	Planes    [4]DmabufPlaneReply
}

type DrawLineMsg struct {
	WindowID  uint32
	X0, Y0    int32
	X1, Y1    int32
	ColorRGBA uint32
	Thickness uint32
}

type DrawCircleMsg struct {
	WindowID  uint32
	CX, CY    int32
	Radius    uint32
	ColorRGBA uint32
	Fill      uint32
}

// DrawPolygonHeader precedes a tail of NumPoints (x,y) int32 pairs.
type DrawPolygonHeader struct {
	WindowID  uint32
	NumPoints uint32
	ColorRGBA uint32
	Fill      uint32
}

type DrawImageMsg struct {
	WindowID              uint32
	BufferID              uint32
	X, Y                  int32
	Width, Height         uint32
	SrcX, SrcY            uint32
	SrcWidth, SrcHeight   uint32
	Alpha                 uint8
}

type BlitBufferMsg struct {
	WindowID              uint32
	SrcBufferID           uint32
	DstBufferID           uint32
	SrcX, SrcY            int32
	DstX, DstY            int32
	Width, Height         uint32
}

type BatchBeginMsg struct {
	BatchID           uint32
	ExpectedCommands  uint32
}

type BatchEndMsg struct {
	BatchID uint32
}

type ExportSurfaceMsg struct {
	WindowID  uint32
	SurfaceID uint32
	Flags     uint32
}

type ImportSurfaceMsg struct {
	SurfaceID     uint32
	WindowID      uint32
	X, Y          int32
	Width, Height uint32
}

type CreateBufferMsg struct {
	BufferID   uint32
	Width      uint32
	Height     uint32
	Format     uint32
	UsageFlags uint32
}

type DestroyBufferMsg struct {
	BufferID uint32
}

type QueryBufferInfoMsg struct {
	BufferID uint32
}

// QueryBufferInfoReplyMsg.MmapFD is a placeholder; the live fd for
// CPU-mapped access travels via SCM_RIGHTS.
type QueryBufferInfoReplyMsg struct {
	BufferID uint32
	Width    int32
	Height   int32
	Format   uint32
	Size     uint32
	Stride   uint32
	MmapFD   int32
}

type RegisterPointerEventMsg struct{ WindowID uint32 }
type RegisterKeyboardEventMsg struct{ WindowID uint32 }
type QueryCaptureMouseMsg struct{ WindowID uint32 }
type QueryCaptureKeyboardMsg struct{ WindowID uint32 }

type PointerEventMsg struct {
	WindowID uint32
	Time     uint32
	Button   uint32
	State    uint32
	X, Y     int32
}

type KeyboardEventMsg struct {
	WindowID  uint32
	Time      uint32
	Keycode   uint32
	State     uint32
	Modifiers uint32
}

// UploadImageHeader precedes a tail of DataSize raw pixel bytes.
type UploadImageHeader struct {
	ImageID  uint32
	Width    uint32
	Height   uint32
	Format   uint32
	DataSize uint32
}

type DestroyImageMsg struct{ ImageID uint32 }

type DrawUploadedImageMsg struct {
	WindowID            uint32
	ImageID             uint32
	X, Y                int32
	Width, Height       uint32
	SrcX, SrcY          uint32
	SrcWidth, SrcHeight uint32
	Alpha               uint8
}

// DrawTextHeader precedes a tail of UTF-8 text bytes, length implied
// by the frame's declared payload length.
type DrawTextHeader struct {
	WindowID  uint32
	X, Y      int32
	ColorRGBA uint32
	FontSize  uint32
}

type SetWindowVisibleMsg struct {
	WindowID uint32
	Visible  uint8
}

type RegisterKeybindMsg struct {
	KeybindID uint32
	Modifiers uint32
	Keycode   uint32
}

type UnregisterKeybindMsg struct{ KeybindID uint32 }
type KeybindEventMsg struct{ KeybindID uint32 }

type WindowCreatedMsg struct {
	WindowID  uint32
	Width     uint32
	Height    uint32
	Decorated uint8
	Focused   uint8
}

type WindowDestroyedMsg struct{ WindowID uint32 }

type RegisterClickRegionMsg struct {
	WindowID      uint32
	RegionID      uint32
	X, Y          int32
	Width, Height uint32
}

type UnregisterClickRegionMsg struct{ RegionID uint32 }

type ClickRegionEventMsg struct {
	RegionID uint32
	Button   uint32
	State    uint32
}

type RequestScreenCopyMsg struct {
	RequestID     uint32
	X, Y          uint32
	Width, Height uint32
}

// ScreenCopyDataHeader precedes a tail of DataSize raw pixel bytes.
type ScreenCopyDataHeader struct {
	RequestID     uint32
	Width, Height uint32
	Format        uint32
	DataSize      uint32
}

// RegisterGlobalPointerEvent, RegisterGlobalKeyboardEvent,
// RegisterGlobalCaptureMouse, RegisterGlobalCaptureKeyboard,
// UnregisterGlobalCaptureKeyboard and UnregisterGlobalCaptureMouse
// carry no payload: the message type alone is the instruction.

type SetWindowPositionMsg struct {
	WindowID uint32
	X, Y     int32
}

type SetWindowSizeMsg struct {
	WindowID      uint32
	Width, Height uint32
}

type SetWindowOpacityMsg struct {
	WindowID uint32
	Opacity  float32
}

type SetWindowBlurMsg struct {
	WindowID   uint32
	BlurRadius float32
	Enabled    uint8
}

// SetScreenEffectMsg.Equation is a fixed 256-byte NUL-terminated
// buffer; use Equation()/SetEquation to convert to/from a Go string.
type SetScreenEffectMsg struct {
	EquationRaw [256]byte
	Enabled     uint8
}

func (m *SetScreenEffectMsg) Equation() string        { return cstring(m.EquationRaw[:]) }
func (m *SetScreenEffectMsg) SetEquation(s string)     { putCstring(m.EquationRaw[:], s) }

type SetWindowEffectMsg struct {
	WindowID    uint32
	EquationRaw [256]byte
	Enabled     uint8
}

func (m *SetWindowEffectMsg) Equation() string    { return cstring(m.EquationRaw[:]) }
func (m *SetWindowEffectMsg) SetEquation(s string) { putCstring(m.EquationRaw[:], s) }

type SetWindowTransformMsg struct {
	WindowID       uint32
	ScaleX, ScaleY float32
	Rotation       float32 // degrees
}

type SetWindowLayerMsg struct {
	WindowID uint32
	Layer    int32
}

type RaiseWindowMsg struct{ WindowID uint32 }
type LowerWindowMsg struct{ WindowID uint32 }

type SetWindowParentMsg struct {
	WindowID uint32
	ParentID uint32
}

type SetWindowTransform3DMsg struct {
	WindowID                uint32
	TranslateX, TranslateY, TranslateZ float32
	RotateX, RotateY, RotateZ          float32 // degrees
	ScaleX, ScaleY, ScaleZ             float32
}

type SetWindowMatrixMsg struct {
	WindowID uint32
	Matrix   [16]float32 // column-major
}

type SetWindowStateMsg struct {
	WindowID uint32
	State    uint32
}

type FocusWindowMsg struct{ WindowID uint32 }
type BlurWindowMsg struct{ WindowID uint32 }

type AnimateWindowMsg struct {
	WindowID                         uint32
	DurationMs                       uint32
	TargetX, TargetY                 float32
	TargetScaleX, TargetScaleY       float32
	TargetOpacity                    float32
	TargetTranslateX, TargetTranslateY, TargetTranslateZ float32
	TargetRotateX, TargetRotateY, TargetRotateZ          float32
	TargetScaleZ                     float32
	Flags                            uint32
}

type StopAnimationMsg struct{ WindowID uint32 }

type QueryWindowPositionMsg struct{ WindowID uint32 }
type QueryWindowSizeMsg struct{ WindowID uint32 }
type QueryWindowAttributesMsg struct{ WindowID uint32 }
type QueryWindowLayerMsg struct{ WindowID uint32 }
type QueryWindowStateMsg struct{ WindowID uint32 }

type WindowPositionDataMsg struct {
	WindowID uint32
	X, Y     int32
}

type WindowSizeDataMsg struct {
	WindowID      uint32
	Width, Height uint32
}

type WindowAttributesDataMsg struct {
	WindowID       uint32
	Visible        uint32
	Opacity        float32
	ScaleX, ScaleY float32
	Rotation       float32
}

type WindowLayerDataMsg struct {
	WindowID uint32
	Layer    int32
	ParentID uint32
}

type WindowStateDataMsg struct {
	WindowID uint32
	State    uint32
	Focused  uint32
}

type ScreenDimensionsDataMsg struct {
	TotalWidth, TotalHeight uint32
	Scale                   float32
}

// MonitorInfo is one fixed-size entry in the MonitorsData tail.
type MonitorInfo struct {
	X, Y                      int32
	Width, Height             uint32
	PhysicalWidth             uint32
	PhysicalHeight            uint32
	RefreshRate               uint32 // mHz
	Scale                     float32
	Enabled                   uint8
	Primary                   uint8
	NameRaw                   [32]byte
}

func (m *MonitorInfo) Name() string    { return cstring(m.NameRaw[:]) }
func (m *MonitorInfo) SetName(s string) { putCstring(m.NameRaw[:], s) }

// MonitorsDataHeader precedes a tail of NumMonitors MonitorInfo entries.
type MonitorsDataHeader struct {
	NumMonitors uint32
}

type QueryWindowInfoMsg struct{ WindowID uint32 }

type WindowInfoDataMsg struct {
	WindowID          uint32
	X, Y              int32
	Width, Height     uint32
	Visible           uint8
	Opacity           float32
	ScaleX, ScaleY    float32
	Rotation          float32
	Layer             int32
	ParentID          uint32
	State             uint32
	Focused           uint32
	PID               uint32
	ProcessNameRaw    [255]byte
}

func (m *WindowInfoDataMsg) ProcessName() string     { return cstring(m.ProcessNameRaw[:]) }
func (m *WindowInfoDataMsg) SetProcessName(s string) { putCstring(m.ProcessNameRaw[:], s) }

// MeshVertex is a single control point of a window mesh transform,
// in normalized [0,1] position and texture coordinates.
type MeshVertex struct {
	X, Y float32
	U, V float32
}

// SetWindowMeshTransformHeader precedes a tail of
// MeshWidth*MeshHeight MeshVertex entries.
type SetWindowMeshTransformHeader struct {
	WindowID              uint32
	MeshWidth, MeshHeight uint32
}

type ClearWindowMeshTransformMsg struct{ WindowID uint32 }

// UpdateWindowMeshVerticesHeader precedes a tail of NumVertices
// MeshVertex entries, replacing the range [StartIndex, StartIndex+NumVertices).
type UpdateWindowMeshVerticesHeader struct {
	WindowID     uint32
	StartIndex   uint32
	NumVertices  uint32
}

// QueryToplevelWindowsMsg.Flags: 0 = all windows, 1 = visible only.
type QueryToplevelWindowsMsg struct{ Flags uint32 }

// ToplevelWindowEntry is one fixed-size entry in the
// ToplevelWindowsData tail.
type ToplevelWindowEntry struct {
	WindowID      uint32
	X, Y          int32
	Width, Height uint32
	Visible       uint8
	Focused       uint8
	State         uint32
	TitleRaw      [256]byte
	AppIDRaw      [128]byte
}

func (e *ToplevelWindowEntry) Title() string     { return cstring(e.TitleRaw[:]) }
func (e *ToplevelWindowEntry) SetTitle(s string)  { putCstring(e.TitleRaw[:], s) }
func (e *ToplevelWindowEntry) AppID() string      { return cstring(e.AppIDRaw[:]) }
func (e *ToplevelWindowEntry) SetAppID(s string)  { putCstring(e.AppIDRaw[:], s) }

// ToplevelWindowsDataHeader precedes a tail of NumWindows
// ToplevelWindowEntry entries.
type ToplevelWindowsDataHeader struct {
	NumWindows uint32
}

type SubscribeWindowEventsMsg struct{ EventMask uint32 }
type UnsubscribeWindowEventsMsg struct{ EventMask uint32 }

type WindowTitleChangedMsg struct {
	WindowID uint32
	TitleRaw [256]byte
}

func (m *WindowTitleChangedMsg) Title() string    { return cstring(m.TitleRaw[:]) }
func (m *WindowTitleChangedMsg) SetTitle(s string) { putCstring(m.TitleRaw[:], s) }

type WindowStateChangedMsg struct {
	WindowID uint32
	State    uint32
	Visible  uint8
	Focused  uint8
}

type SetWindowDecorationsMsg struct {
	WindowID        uint32
	ServerSide      uint8
	TitleHeight     uint32
	BorderWidth     uint32
	ColorFocused    uint32
	ColorUnfocused  uint32
}

type RequestWindowDecorationsMsg struct{ WindowID uint32 }

// LaunchAppHeader precedes a tail of CommandLen bytes holding the
// command line to exec.
type LaunchAppHeader struct {
	CommandLen uint32
}
