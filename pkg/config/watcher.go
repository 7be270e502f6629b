package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// ReloadKind identifies which live-reloadable file changed.
type ReloadKind int

const (
	ReloadScreenEffect ReloadKind = iota
	ReloadDecorations
)

// screenEffectFile and decorationsFile are the two files FileWatcher
// recognizes inside its watched directory; any other file in that
// directory is ignored.
const (
	screenEffectFile = "screen-effect.txt"
	decorationsFile  = "decorations.json"
)

// ReloadEvent carries a changed file's parsed content back to the
// caller. Equation and Decor are left zero (and Err set) if the file could not be read
// or parsed; the caller decides whether to keep the prior value.
type ReloadEvent struct {
	Kind     ReloadKind
	Path     string
	Equation string
	Decor    DecorationsFile
	Err      error
}

// DecorationsFile mirrors Decorations' fields for JSON decoding, so
// an operator can hand-edit decorations.json without restarting icmd.
type DecorationsFile struct {
	ServerSide     bool   `json:"server_side"`
	TitleHeight    uint32 `json:"title_height"`
	BorderWidth    uint32 `json:"border_width"`
	ColorFocused   uint32 `json:"color_focused"`
	ColorUnfocused uint32 `json:"color_unfocused"`
}

// FileWatcher watches a directory for writes to screen-effect.txt and
// decorations.json, re-reading and re-parsing each on change.
//
// Grounded on api/pkg/desktop/claude_jsonl_watcher.go's watch-and-reload
// pattern: an fsnotify.Watcher on one directory (created once by
// NewFileWatcher if it is missing; there is no retry), and a buffered channel of parsed
// events rather than a callback, so the caller can fold reloads into
// its own single dispatch loop instead of racing a second goroutine
// against the registry.
type FileWatcher struct {
	dir     string
	watcher *fsnotify.Watcher
	events  chan ReloadEvent
}

// NewFileWatcher constructs a FileWatcher over dir. dir is created if
// it does not already exist.
func NewFileWatcher(dir string) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Warn().Err(err).Str("path", dir).Msg("config watcher: failed to create config dir")
	}
	return &FileWatcher{dir: dir, watcher: w, events: make(chan ReloadEvent, 8)}, nil
}

// Events returns the channel reload events are delivered on.
func (f *FileWatcher) Events() <-chan ReloadEvent { return f.events }

// Start begins watching in the background until ctx is cancelled.
func (f *FileWatcher) Start(ctx context.Context) {
	if err := f.watcher.Add(f.dir); err != nil {
		log.Warn().Err(err).Str("path", f.dir).Msg("config watcher: failed to watch config dir")
	}
	go f.loop(ctx)
}

func (f *FileWatcher) loop(ctx context.Context) {
	defer f.watcher.Close()
	defer close(f.events)

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			f.handle(ev.Name)

		case err, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("config watcher: watch error")
		}
	}
}

func (f *FileWatcher) handle(path string) {
	switch filepath.Base(path) {
	case screenEffectFile:
		f.handleScreenEffect(path)
	case decorationsFile:
		f.handleDecorations(path)
	}
}

func (f *FileWatcher) handleScreenEffect(path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		f.events <- ReloadEvent{Kind: ReloadScreenEffect, Path: path, Err: err}
		return
	}
	f.events <- ReloadEvent{Kind: ReloadScreenEffect, Path: path, Equation: string(content)}
}

func (f *FileWatcher) handleDecorations(path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		f.events <- ReloadEvent{Kind: ReloadDecorations, Path: path, Err: err}
		return
	}
	var d DecorationsFile
	if err := json.Unmarshal(content, &d); err != nil {
		f.events <- ReloadEvent{Kind: ReloadDecorations, Path: path, Err: err}
		return
	}
	f.events <- ReloadEvent{Kind: ReloadDecorations, Path: path, Decor: d}
}
