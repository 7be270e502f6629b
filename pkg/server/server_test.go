package server

import (
	"context"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/helixml/icm/pkg/config"
	"github.com/helixml/icm/pkg/proto"
	"github.com/helixml/icm/pkg/registry"
	"github.com/helixml/icm/pkg/scene"
	"github.com/helixml/icm/pkg/wire"
	"github.com/stretchr/testify/require"
)

// testServer starts a Server listening on a temp socket and returns a
// dial func for connecting clients to it, tearing both down on
// cleanup. Grounded on the same net.Listen("unix", ...) shape
// server.Run itself uses.
func testServer(t *testing.T) (*Server, func() *wire.Conn) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "icm.sock")

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	host := scene.NewHeadlessHost()
	srv := New(config.Config{}, logger, host)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		srv.Run(ctx, path)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	// give the listener a moment to bind
	for i := 0; i < 100; i++ {
		if _, err := os.Stat(path); err == nil {
			break
		}
		time.Sleep(time.Millisecond)
	}

	return srv, func() *wire.Conn {
		conn, err := net.DialUnix("unix", nil, &net.UnixAddr{Name: path, Net: "unix"})
		require.NoError(t, err)
		return wire.NewConn(conn)
	}
}

func sendMsg(t *testing.T, c *wire.Conn, seq uint32, msgType proto.MsgType, m any) {
	t.Helper()
	out, err := proto.EncodeFixed(m)
	require.NoError(t, err)
	require.NoError(t, c.WriteFrame(uint16(msgType), seq, out, nil))
}

func recvMsg(t *testing.T, c *wire.Conn, into any) wire.Frame {
	t.Helper()
	done := make(chan struct{})
	timer := time.AfterFunc(2*time.Second, func() { close(done) })
	defer timer.Stop()
	f, err := c.ReadFrame(done)
	require.NoError(t, err)
	if into != nil {
		require.NoError(t, proto.DecodeFixed(f.Payload, into))
	}
	return f
}

// Scenario 1 from spec.md §8: create a window, draw into it, move it,
// query it back and see the writes reflected.
func TestScenarioCreateDrawQuery(t *testing.T) {
	srv, dial := testServer(t)
	c := dial()
	defer c.Close()

	sendMsg(t, c, 1, proto.CreateWindow, &proto.CreateWindowMsg{
		WindowID: 1, X: 10, Y: 20, Width: 4, Height: 4, Layer: uint32(1), ColorRGBA: 0xFF0000FF,
	})
	sendMsg(t, c, 2, proto.DrawRect, &proto.DrawRectMsg{WindowID: 1, X: 0, Y: 0, Width: 2, Height: 2, ColorRGBA: 0x00FF00FF})

	sendMsg(t, c, 3, proto.SetWindowPosition, &proto.SetWindowPositionMsg{WindowID: 1, X: 30, Y: 40})
	sendMsg(t, c, 4, proto.QueryWindowPosition, &proto.QueryWindowPositionMsg{WindowID: 1})

	var pos proto.WindowPositionDataMsg
	f := recvMsg(t, c, &pos)
	require.Equal(t, uint16(proto.WindowPositionData), f.Header.Type)
	require.Equal(t, uint32(1), pos.WindowID)
	require.Equal(t, int32(30), pos.X)
	require.Equal(t, int32(40), pos.Y)

	// Frames are dispatched in order, so the rect is drawn by the time
	// the position reply arrives: the top-left 2x2 cells are green, the
	// rest keep the red fill from CREATE_WINDOW.
	b, ok := srv.reg.Buffers.Find(1)
	require.True(t, ok)
	require.Equal(t, []byte{0, 255, 0, 255}, b.Pixels[(1*4+1)*4:(1*4+1)*4+4])
	require.Equal(t, []byte{255, 0, 0, 255}, b.Pixels[(3*4+3)*4:(3*4+3)*4+4])
}

// Scenario 2 from spec.md §8: a registered keybind fires a
// KEYBIND_EVENT back to its owning client when the matching
// modifiers/keycode are injected.
func TestScenarioKeybindDispatch(t *testing.T) {
	srv, dial := testServer(t)
	c := dial()
	defer c.Close()

	sendMsg(t, c, 1, proto.RegisterKeybind, &proto.RegisterKeybindMsg{KeybindID: 7, Modifiers: 0x1, Keycode: 30})

	// allow the dispatch loop to register the connection before we
	// drive an injected key event against it.
	require.Eventually(t, func() bool { return len(srv.clients) == 1 }, time.Second, time.Millisecond)

	srv.InjectKeyboardKey(0, 30, inputStatePressed, 0x1)

	var ev proto.KeybindEventMsg
	f := recvMsg(t, c, &ev)
	require.Equal(t, uint16(proto.KeybindEvent), f.Header.Type)
	require.Equal(t, uint32(7), ev.KeybindID)
}

// Scenario 6 from spec.md §8: disconnecting a client removes every
// keybind, click region, and screen-copy request it owned.
func TestScenarioDisconnectCleansUpOwnedEntities(t *testing.T) {
	srv, dial := testServer(t)
	c := dial()

	sendMsg(t, c, 1, proto.RegisterKeybind, &proto.RegisterKeybindMsg{KeybindID: 1, Modifiers: 0, Keycode: 1})
	sendMsg(t, c, 2, proto.RegisterKeybind, &proto.RegisterKeybindMsg{KeybindID: 2, Modifiers: 0, Keycode: 2})
	sendMsg(t, c, 3, proto.RegisterKeybind, &proto.RegisterKeybindMsg{KeybindID: 3, Modifiers: 0, Keycode: 3})
	sendMsg(t, c, 4, proto.RegisterClickRegion, &proto.RegisterClickRegionMsg{WindowID: 1, RegionID: 1, Width: 1, Height: 1})
	sendMsg(t, c, 5, proto.RegisterClickRegion, &proto.RegisterClickRegionMsg{WindowID: 1, RegionID: 2, Width: 1, Height: 1})
	sendMsg(t, c, 6, proto.RequestScreenCopy, &proto.RequestScreenCopyMsg{RequestID: 1, Width: 1, Height: 1})

	require.Eventually(t, func() bool { return len(srv.reg.Keybinds.All()) == 3 }, time.Second, time.Millisecond)
	require.Len(t, srv.reg.ClickRegions.All(), 2)
	require.Len(t, srv.reg.ScreenCopies.All(), 1)

	c.Close()

	require.Eventually(t, func() bool { return len(srv.reg.Keybinds.All()) == 0 }, time.Second, time.Millisecond)
	require.Empty(t, srv.reg.ClickRegions.All())
	require.Empty(t, srv.reg.ScreenCopies.All())
}

// Scenario 5 from spec.md §8: a top-layer window occluding a
// normal-layer window at the same screen rect receives the click; the
// occluded window's click region does not fire.
func TestScenarioOcclusionOnlyTopmostClickRegionFires(t *testing.T) {
	srv, dial := testServer(t)
	cTop := dial()
	defer cTop.Close()
	cBottom := dial()
	defer cBottom.Close()

	sendMsg(t, cBottom, 1, proto.CreateWindow, &proto.CreateWindowMsg{
		WindowID: 1, X: 0, Y: 0, Width: 10, Height: 10, Layer: uint32(registry.LayerNormal), ColorRGBA: 0xFFFFFFFF,
	})
	sendMsg(t, cTop, 1, proto.CreateWindow, &proto.CreateWindowMsg{
		WindowID: 2, X: 0, Y: 0, Width: 10, Height: 10, Layer: uint32(registry.LayerTop), ColorRGBA: 0xFFFFFFFF,
	})
	sendMsg(t, cBottom, 2, proto.RegisterClickRegion, &proto.RegisterClickRegionMsg{WindowID: 1, RegionID: 100, X: 0, Y: 0, Width: 10, Height: 10})
	sendMsg(t, cTop, 2, proto.RegisterClickRegion, &proto.RegisterClickRegionMsg{WindowID: 2, RegionID: 200, X: 0, Y: 0, Width: 10, Height: 10})

	require.Eventually(t, func() bool { return len(srv.reg.Buffers.All()) == 2 }, time.Second, time.Millisecond)
	require.Eventually(t, func() bool { return len(srv.reg.ClickRegions.All()) == 2 }, time.Second, time.Millisecond)

	// mirror both buffers into the scene so HitTest has something to
	// find in their respective layers.
	srv.outputFrame(time.Now())

	srv.InjectPointerButton(5, 5, 0, 0, inputStatePressed)

	var ev proto.ClickRegionEventMsg
	f := recvMsg(t, cTop, &ev)
	require.Equal(t, uint16(proto.ClickRegionEvent), f.Header.Type)
	require.Equal(t, uint32(200), ev.RegionID)
}
