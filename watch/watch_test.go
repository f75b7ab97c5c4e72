package watch

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncerCollapsesBursts(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(20*time.Millisecond, func() {
		calls.Add(1)
	})
	defer d.Stop()

	for i := 0; i < 10; i++ {
		d.Trigger()
	}

	assert.Eventually(t, func() bool {
		return calls.Load() == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())

	d.Trigger()
	assert.Eventually(t, func() bool {
		return calls.Load() == 2
	}, time.Second, 5*time.Millisecond)
}

func TestDebouncerStop(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(20*time.Millisecond, func() {
		calls.Add(1)
	})

	d.Trigger()
	d.Stop()
	d.Trigger()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestDebouncerDefaultDelay(t *testing.T) {
	d := NewDebouncer(0, func() {})
	assert.Equal(t, DefaultDelay, d.delay)
}

func TestWatcherReportsDocumentChanges(t *testing.T) {
	dir := t.TempDir()

	var calls atomic.Int32
	w := New([]string{dir, filepath.Join(dir, "missing")}, ".yaml", 20*time.Millisecond, zerolog.Nop(), func() {
		calls.Add(1)
	})
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden.yaml"), []byte("x"), 0o600))
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load(), "other files are ignored")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "compress.yaml"), []byte("label: x\n"), 0o600))
	assert.Eventually(t, func() bool {
		return calls.Load() == 1
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, os.Remove(filepath.Join(dir, "compress.yaml")))
	assert.Eventually(t, func() bool {
		return calls.Load() == 2
	}, time.Second, 5*time.Millisecond)
}

func TestWatcherNoDirectory(t *testing.T) {
	w := New([]string{filepath.Join(t.TempDir(), "missing")}, ".yaml", 0, zerolog.Nop(), func() {})
	assert.Error(t, w.Start())
	w.Stop()
}
