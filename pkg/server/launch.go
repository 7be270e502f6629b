package server

import (
	"fmt"
	"os/exec"
	"syscall"

	"github.com/helixml/icm/pkg/proto"
)

// handleLaunchApp execs payload's trailing command line under /bin/sh
// -c, detached into its own session so it outlives the requesting
// client, mirroring original_source/ipc_server.c's handle_launch_app
// (fork + setsid + execl("/bin/sh", "sh", "-c", ...)). The command is
// started and not waited on; its lifecycle is independent of the IPC
// connection that requested it.
func (s *Server) handleLaunchApp(payload []byte) error {
	if len(payload) < 4 {
		return errPayloadTooSmall("launch app", 4, len(payload))
	}
	var hdr proto.LaunchAppHeader
	if err := proto.DecodeFixed(payload[:4], &hdr); err != nil {
		return err
	}
	tail := payload[4:]
	if hdr.CommandLen == 0 || int(hdr.CommandLen) > len(tail) {
		return fmt.Errorf("launch app command length %d exceeds payload tail %d", hdr.CommandLen, len(tail))
	}
	command := string(tail[:hdr.CommandLen])
	if command == "" {
		return fmt.Errorf("launch app command is empty")
	}

	cmd := exec.Command("/bin/sh", "-c", command)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		s.logger.Warn("launch app failed", "command", command, "error", err)
		return err
	}
	go cmd.Wait()
	return nil
}
