// Package server implements the dispatcher, connection manager, and
// output-frame callback described in spec.md §4.3, §4.9, §5, §6: one
// handler per message type, a single-threaded-equivalent command
// queue into the registry/scene, and the accept loop.
//
// Grounded on api/pkg/drm/manager.go's Manager: a *slog.Logger threaded
// explicitly (not a package global), net.Listen("unix", ...) + unlink,
// one goroutine per accepted connection forwarding decoded frames into
// a single dispatch loop. Pkg/drm's Manager calls its registries
// directly from each connection's goroutine because its leases are
// protected by a sync.Mutex; this protocol explicitly forbids that
// (spec.md §5: "no locking required" because dispatch is
// single-threaded, and §9 calls the multi-threaded case out as needing
// "a serial command queue into the scene") — so every accepted
// connection's goroutine only does socket I/O and forwards decoded
// frames over a channel to one dispatch goroutine, which is the Go
// analogue of the host's single event loop.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/helixml/icm/pkg/config"
	"github.com/helixml/icm/pkg/proto"
	"github.com/helixml/icm/pkg/registry"
	"github.com/helixml/icm/pkg/scene"
	"github.com/helixml/icm/pkg/wire"
)

// Client is one connected peer's dispatch-visible state, spec.md §3's
// "Client" data model.
type Client struct {
	id    uint64 // owner correlation used as registry.*.Owner
	logID uuid.UUID
	conn  *wire.Conn

	outSeq uint32 // strictly increasing per-socket outbound sequence (see DESIGN.md)

	registeredPointer, registeredKeyboard bool
	eventWindowID                        uint32

	globalPointer, globalKeyboard             bool
	globalCaptureMouse, globalCaptureKeyboard bool

	windowEventMask uint32

	batching bool
	batchID  uint32
}

func (c *Client) nextSeq() uint32 {
	c.outSeq++
	return c.outSeq
}

// Server owns the registry, the scene-host collaborator, the
// connected-client set, and the decoration/screen defaults, matching
// spec.md §3's "Server" data model.
type Server struct {
	logger *slog.Logger
	reg    *registry.Registry
	host   scene.Host

	cfg config.Config

	screenWidth, screenHeight uint32
	screenScale               float32
	monitors                  []proto.MonitorInfo

	clients      map[uint64]*Client
	nextClientID atomic.Uint64

	inbox chan inboundFrame
	gone  chan uint64

	configEvents <-chan config.ReloadEvent
}

type inboundFrame struct {
	client *Client
	frame  wire.Frame
}

// New constructs a Server bound to host. Screen dimensions default to
// a single synthetic 1920x1080 monitor: the SceneHost collaborator
// contract (spec.md §6) has no output-enumeration method, so a real
// deployment's main() is expected to override Server's screen fields
// from whatever output info its own host binding exposes.
func New(cfg config.Config, logger *slog.Logger, host scene.Host) *Server {
	reg := registry.New()
	reg.Decorations = registry.DecorationDefaults{
		ServerSide:     cfg.Decorations.ServerSide,
		TitleHeight:    cfg.Decorations.TitleHeight,
		BorderWidth:    cfg.Decorations.BorderWidth,
		ColorFocused:   cfg.Decorations.ColorFocused,
		ColorUnfocused: cfg.Decorations.ColorUnfocused,
	}

	s := &Server{
		logger:      logger,
		reg:         reg,
		host:        host,
		cfg:         cfg,
		screenWidth: 1920, screenHeight: 1080, screenScale: 1,
		clients: make(map[uint64]*Client),
		inbox:   make(chan inboundFrame, 256),
		gone:    make(chan uint64, 16),
	}
	s.monitors = []proto.MonitorInfo{s.syntheticMonitor()}
	return s
}

func (s *Server) syntheticMonitor() proto.MonitorInfo {
	m := proto.MonitorInfo{
		Width: s.screenWidth, Height: s.screenHeight,
		RefreshRate: 60000, Scale: s.screenScale,
		Enabled: 1, Primary: 1,
	}
	m.SetName("synthetic-0")
	return m
}

// Run listens on path, accepts connections, and drives the single
// dispatch loop plus the output-frame ticker until ctx is cancelled.
func (s *Server) Run(ctx context.Context, path string) error {
	os.Remove(path)

	ln, err := net.Listen("unix", path)
	if err != nil {
		return fmt.Errorf("listen %s: %w", path, err)
	}
	defer ln.Close()

	s.logger.Info("icmd listening", "socket", path)

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	go s.acceptLoop(ctx, ln)

	return s.dispatchLoop(ctx)
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
				s.logger.Error("accept error", "err", err)
				continue
			}
		}
		uc, ok := conn.(*net.UnixConn)
		if !ok {
			conn.Close()
			continue
		}
		go s.readLoop(ctx, uc)
	}
}

func (s *Server) readLoop(ctx context.Context, uc *net.UnixConn) {
	id := s.nextClientID.Add(1)
	c := &Client{id: id, logID: uuid.New(), conn: wire.NewConn(uc)}

	s.logger.Info("client connected", "client", c.logID)

	done := ctx.Done()
	for {
		frame, err := c.conn.ReadFrame(done)
		if err != nil {
			s.logger.Debug("client read loop ended", "client", c.logID, "err", err)
			c.conn.Close()
			s.gone <- id
			return
		}
		select {
		case s.inbox <- inboundFrame{client: c, frame: frame}:
		case <-done:
			c.conn.Close()
			s.gone <- id
			return
		}
	}
}

const frameInterval = 16 * time.Millisecond

func (s *Server) dispatchLoop(ctx context.Context) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.broadcastShutdown()
			return ctx.Err()

		case id := <-s.gone:
			s.disconnect(id)

		case in := <-s.inbox:
			if _, known := s.clients[in.client.id]; !known {
				s.clients[in.client.id] = in.client
			}
			if err := s.dispatch(in.client, in.frame); err != nil {
				s.logger.Debug("dispatch error", "client", in.client.logID, "type", in.frame.Header.Type, "err", err)
			}

		case now := <-ticker.C:
			s.outputFrame(now)

		case ev, ok := <-s.configEvents:
			if ok {
				s.applyConfigReload(ev)
			}
		}
	}
}

func (s *Server) disconnect(id uint64) {
	c, ok := s.clients[id]
	if !ok {
		return
	}
	delete(s.clients, id)
	s.reg.RemoveClientOwned(id)
	s.logger.Info("client disconnected, owned entities cleaned up", "client", c.logID)
}

// send writes a frame to c, disconnecting it on I/O error per spec.md
// §4.11. sequence is assigned by c.nextSeq(), not echoed from any
// inbound frame — see DESIGN.md's pkg/server entry for why.
func (s *Server) send(c *Client, msgType proto.MsgType, payload []byte, fds []int) {
	if err := c.conn.WriteFrame(uint16(msgType), c.nextSeq(), payload, fds); err != nil {
		s.logger.Warn("write failed, disconnecting client", "client", c.logID, "err", err)
		c.conn.Close()
		delete(s.clients, c.id)
		s.reg.RemoveClientOwned(c.id)
	}
}

func (s *Server) broadcast(msgType proto.MsgType, payload []byte) {
	for _, c := range s.clients {
		s.send(c, msgType, payload, nil)
	}
}

func (s *Server) broadcastShutdown() {
	s.broadcast(proto.CompositorShutdown, nil)
}
