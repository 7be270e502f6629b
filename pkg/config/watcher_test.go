package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFileWatcherReloadsScreenEffect(t *testing.T) {
	dir := t.TempDir()
	w, err := NewFileWatcher(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	path := filepath.Join(dir, screenEffectFile)
	require.NoError(t, os.WriteFile(path, []byte("r = x\ng = y\nb = 0\na = 255"), 0o644))

	select {
	case ev := <-w.Events():
		require.Equal(t, ReloadScreenEffect, ev.Kind)
		require.NoError(t, ev.Err)
		require.Equal(t, "r = x\ng = y\nb = 0\na = 255", ev.Equation)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for screen-effect reload event")
	}
}

func TestFileWatcherReloadsDecorations(t *testing.T) {
	dir := t.TempDir()
	w, err := NewFileWatcher(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	path := filepath.Join(dir, decorationsFile)
	body := `{"server_side":true,"title_height":32,"border_width":2,"color_focused":4278190335,"color_unfocused":4286611584}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	select {
	case ev := <-w.Events():
		require.Equal(t, ReloadDecorations, ev.Kind)
		require.NoError(t, ev.Err)
		require.True(t, ev.Decor.ServerSide)
		require.Equal(t, uint32(32), ev.Decor.TitleHeight)
		require.Equal(t, uint32(2), ev.Decor.BorderWidth)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for decorations reload event")
	}
}

func TestFileWatcherIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewFileWatcher(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0o644))

	select {
	case ev := <-w.Events():
		t.Fatalf("unexpected reload event for unrelated file: %+v", ev)
	case <-time.After(250 * time.Millisecond):
	}
}
