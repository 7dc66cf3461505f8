package marker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/omnisharp-client/internal/failure"
)

func newTestGate() *Gate {
	return NewGate(WithSettleDelay(0))
}

func TestCheckCurrent_MissingMarker(t *testing.T) {
	current, err := newTestGate().CheckCurrent(filepath.Join(t.TempDir(), "absent"), "v1.0.0")
	require.NoError(t, err)
	assert.False(t, current)
}

func TestCheckCurrent_TrimsContent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(Path(dir), []byte("  v1.0.0\n"), 0o644))

	current, err := newTestGate().CheckCurrent(dir, "v1.0.0")
	require.NoError(t, err)
	assert.True(t, current)

	current, err = newTestGate().CheckCurrent(dir, "v1.0.1")
	require.NoError(t, err)
	assert.False(t, current)
}

func TestCheckCurrent_ReadError(t *testing.T) {
	orig := osReadFile
	osReadFile = func(string) ([]byte, error) { return nil, os.ErrPermission }
	t.Cleanup(func() { osReadFile = orig })

	_, err := newTestGate().CheckCurrent(t.TempDir(), "v1.0.0")
	require.Error(t, err)
	assert.ErrorIs(t, err, failure.ErrFilesystem)
}

func TestEnsureCurrent_NonExistentDirectory(t *testing.T) {
	install := filepath.Join(t.TempDir(), "omnisharp-linux-mono")

	wasCurrent, err := newTestGate().EnsureCurrent(context.Background(), install, "v1.0.0")
	require.NoError(t, err)
	assert.False(t, wasCurrent)

	data, err := os.ReadFile(Path(install))
	require.NoError(t, err)
	assert.Equal(t, "v1.0.0", string(data))
}

func TestEnsureCurrent_WipesStaleInstall(t *testing.T) {
	install := t.TempDir()
	require.NoError(t, os.WriteFile(Path(install), []byte("v0.9.0"), 0o644))
	stale := filepath.Join(install, "OmniSharp.exe")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o755))

	wasCurrent, err := newTestGate().EnsureCurrent(context.Background(), install, "v1.0.0")
	require.NoError(t, err)
	assert.False(t, wasCurrent)
	assert.NoFileExists(t, stale)

	installed, ok, err := Read(install)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v1.0.0", installed)
}

func TestEnsureCurrent_Idempotent(t *testing.T) {
	install := filepath.Join(t.TempDir(), "install")
	removals := 0
	orig := osRemoveAll
	osRemoveAll = func(path string) error {
		removals++
		return orig(path)
	}
	t.Cleanup(func() { osRemoveAll = orig })

	gate := newTestGate()
	first, err := gate.EnsureCurrent(context.Background(), install, "v1.0.0")
	require.NoError(t, err)
	second, err := gate.EnsureCurrent(context.Background(), install, "v1.0.0")
	require.NoError(t, err)

	assert.False(t, first)
	assert.True(t, second)
	assert.Equal(t, 1, removals)
}

func TestEnsureCurrent_FilesystemErrorsAreFatal(t *testing.T) {
	tests := []struct {
		name  string
		patch func() func()
	}{
		{
			name: "remove",
			patch: func() func() {
				orig := osRemoveAll
				osRemoveAll = func(string) error { return errors.New("busy") }
				return func() { osRemoveAll = orig }
			},
		},
		{
			name: "mkdir",
			patch: func() func() {
				orig := osMkdirAll
				osMkdirAll = func(string, os.FileMode) error { return errors.New("read-only") }
				return func() { osMkdirAll = orig }
			},
		},
		{
			name: "write",
			patch: func() func() {
				orig := osWriteFile
				osWriteFile = func(string, []byte, os.FileMode) error { return errors.New("disk full") }
				return func() { osWriteFile = orig }
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(tt.patch())
			_, err := newTestGate().EnsureCurrent(context.Background(), filepath.Join(t.TempDir(), "x"), "v1.0.0")
			require.Error(t, err)
			assert.ErrorIs(t, err, failure.ErrFilesystem)
		})
	}
}

func TestEnsureCurrent_CanceledDuringSettle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	gate := NewGate(WithSettleDelay(time.Second))
	_, err := gate.EnsureCurrent(ctx, filepath.Join(t.TempDir(), "x"), "v1.0.0")
	require.ErrorIs(t, err, context.Canceled)
}

func TestString(t *testing.T) {
	assert.Equal(t, "not installed", String("", false))
	assert.Equal(t, "installed v1.2.3", String("v1.2.3", true))
}
