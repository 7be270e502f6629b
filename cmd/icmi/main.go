// icmi is the launcher for icmd: it resolves the icmd binary and the
// control socket path, then execs the daemon in place.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/spf13/cobra"
)

// icmdFallbackPaths is tried, in order, after an $PATH lookup fails,
// matching original_source/icmi.c's standard install locations.
var icmdFallbackPaths = []string{
	"/usr/bin/icmd",
	"/usr/local/bin/icmd",
	"/bin/icmd",
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "icmi",
		Short: "Launch the icmd compositor IPC daemon",
	}
	root.AddCommand(newSockCmd())
	return root
}

func newSockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sock [path]",
		Short: "Start icmd listening on a Unix domain socket",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultSocketPath()
			if len(args) == 1 {
				path = args[0]
			}
			return runSock(path)
		},
	}
}

func defaultSocketPath() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir + "/icm.sock"
	}
	return "/tmp/icm.sock"
}

// runSock execs icmd in place (replacing this process), after
// resolving its binary via $PATH and then the fixed fallback list.
// Unlike original_source/icmi.c's string-juggling precedence chain —
// called out as a redesign target for its freed-string hazard — the
// precedence here is two ordered, independently-valid lookups: no
// shared mutable buffer, no hazard to redesign around.
func runSock(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("socket file %s already exists, is icmd already running?", path)
	}

	icmdPath, err := resolveIcmd()
	if err != nil {
		return err
	}

	fmt.Printf("Starting icmd with IPC socket: %s\n", path)
	fmt.Printf("I will now execute icmd from %s\n", icmdPath)

	// icmd reads its socket path from $ICM_SOCKET (see pkg/config),
	// not argv, so the resolved path is forwarded via the environment
	// rather than the "-b auto -S path" flags a flag-parsing daemon
	// would expect.
	args := []string{icmdPath}
	env := append(os.Environ(), "ICM_SOCKET="+path)
	return syscall.Exec(icmdPath, args, env)
}

func resolveIcmd() (string, error) {
	if p, err := exec.LookPath("icmd"); err == nil {
		return p, nil
	}
	for _, p := range icmdFallbackPaths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("icmd executable not found in PATH or any of %v", icmdFallbackPaths)
}
