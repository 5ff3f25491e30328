package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatch(t *testing.T, g *generator) (cancel func() error) {
	t.Helper()

	ctx, stop := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- g.watch(ctx, 10*time.Millisecond) }()

	return func() error {
		stop()
		select {
		case err := <-done:
			return err
		case <-time.After(5 * time.Second):
			t.Fatal("watch did not stop after cancel")
			return nil
		}
	}
}

func TestWatch_RegeneratesOnSpecWrite(t *testing.T) {
	dir := t.TempDir()
	specPath := copyTestdata(t, dir, "chain.json")
	outPath := filepath.Join(dir, "chain.gen.go")
	valid := readFileString(t, specPath)

	logger := &recordingLogger{}
	g := newGenerator(specPath, outPath, logger)
	stop := startWatch(t, g)

	// Writes before the watcher is registered are lost, so keep touching the file.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(specPath, []byte(valid), 0o644)
		_, err := os.Stat(outPath)
		return err == nil
	}, 5*time.Second, 50*time.Millisecond)

	assert.Contains(t, readFileString(t, outPath), "package entity")
	assert.True(t, logger.has("watching spec"))
	assert.True(t, logger.has("chain generated"))

	require.NoError(t, stop())
}

func TestWatch_FailedRegenerateKeepsWatching(t *testing.T) {
	dir := t.TempDir()
	specPath := copyTestdata(t, dir, "chain.json")
	outPath := filepath.Join(dir, "chain.gen.go")
	valid := readFileString(t, specPath)

	logger := &recordingLogger{}
	g := newGenerator(specPath, outPath, logger)
	stop := startWatch(t, g)

	require.Eventually(t, func() bool {
		_ = os.WriteFile(specPath, []byte("{"), 0o644)
		return logger.has("regenerate failed")
	}, 5*time.Second, 50*time.Millisecond)

	// Unrelated files in the same directory are ignored.
	writeTempFile(t, dir, "notes.txt", "hello")

	require.Eventually(t, func() bool {
		_ = os.WriteFile(specPath, []byte(valid), 0o644)
		_, err := os.Stat(outPath)
		return err == nil
	}, 5*time.Second, 50*time.Millisecond)

	require.NoError(t, stop())
}

func TestWatch_MissingDirectory(t *testing.T) {
	t.Parallel()

	g := newGenerator(
		filepath.Join(t.TempDir(), "missing", "chain.json"),
		filepath.Join(t.TempDir(), "chain.gen.go"),
		&recordingLogger{},
	)

	err := g.watch(context.Background(), time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watch ")
}
