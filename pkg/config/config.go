// Package config loads icmd's runtime configuration from environment
// variables, matching api/pkg/config's envconfig.Process pattern.
package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
)

// Config is icmd's full runtime configuration.
type Config struct {
	Socket      Socket
	Decorations Decorations
	Diagnostics Diagnostics
	Reload      Reload
}

// Socket controls where the control-plane listens, per spec.md §6.
// SocketPath, if set, takes precedence; otherwise the daemon resolves
// $XDG_RUNTIME_DIR/icm.sock or /tmp/icm.sock at startup (see
// Resolve), since envconfig has no access to a second env var as a
// fallback default.
type Socket struct {
	SocketPath string `envconfig:"ICM_SOCKET"`
	Backlog    int    `envconfig:"ICM_SOCKET_BACKLOG" default:"8"`
}

// Resolve applies spec.md §6's socket-path precedence:
// $ICM_SOCKET, then $XDG_RUNTIME_DIR/icm.sock, then /tmp/icm.sock.
func (s Socket) Resolve() string {
	if s.SocketPath != "" {
		return s.SocketPath
	}
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir + "/icm.sock"
	}
	return "/tmp/icm.sock"
}

// Decorations seeds registry.DecorationDefaults at startup.
type Decorations struct {
	ServerSide     bool   `envconfig:"ICM_DECOR_SERVER_SIDE" default:"true"`
	TitleHeight    uint32 `envconfig:"ICM_DECOR_TITLE_HEIGHT" default:"28"`
	BorderWidth    uint32 `envconfig:"ICM_DECOR_BORDER_WIDTH" default:"1"`
	ColorFocused   uint32 `envconfig:"ICM_DECOR_COLOR_FOCUSED" default:"998438655"`    // 0x3B82F6FF
	ColorUnfocused uint32 `envconfig:"ICM_DECOR_COLOR_UNFOCUSED" default:"1802666239"` // 0x6B7280FF
}

// Diagnostics gates verbose logging paths that are expensive enough
// to keep opt-in (per-pixel effect tracing, per-frame scene dumps).
type Diagnostics struct {
	LogLevel    string `envconfig:"ICM_LOG_LEVEL" default:"info"`
	TraceEffect bool   `envconfig:"ICM_TRACE_EFFECT" default:"false"`
}

// Reload controls the directory a FileWatcher watches for operator
// edits to the screen-effect equation and decoration defaults, so
// those can be iterated on without restarting the daemon.
type Reload struct {
	ConfigDir string `envconfig:"ICM_CONFIG_DIR"`
}

// Resolve applies the same $XDG-first precedence Socket.Resolve does:
// ICM_CONFIG_DIR, then $XDG_CONFIG_HOME/icm, then ~/.config/icm.
func (r Reload) Resolve() string {
	if r.ConfigDir != "" {
		return r.ConfigDir
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir + "/icm"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "/tmp/icm-config"
	}
	return home + "/.config/icm"
}

// Load reads Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
