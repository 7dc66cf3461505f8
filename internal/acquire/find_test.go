package acquire

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/omnisharp-client/internal/failure"
)

func runtimesFixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	versioned := filepath.Join(root, "dnx-coreclr-dos-x64.1.0.0-rc2-16389")
	require.NoError(t, os.MkdirAll(versioned, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(versioned, "OmniSharp"), []byte("bin"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "dnx-coreclr-osx-x64", "OmniSharp"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "dnx-coreclr-dos-x64-extra"), nil, 0o644))
	return root
}

func TestFindRuntimeByID_VersionedDirectory(t *testing.T) {
	root := runtimesFixture(t)

	dir, found, err := FindRuntimeByID(context.Background(), "dnx-coreclr-dos-x64", root)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "dnx-coreclr-dos-x64.1.0.0-rc2-16389", filepath.Base(dir))
}

func TestFindRuntimeByID_NoRuntime(t *testing.T) {
	root := runtimesFixture(t)

	dir, found, err := FindRuntimeByID(context.Background(), "dnx-coreclr-solaris-x64", root)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, dir)
}

func TestFindRuntimeByID_DirectoryNamedLikeExecutableDoesNotCount(t *testing.T) {
	root := runtimesFixture(t)

	_, found, err := FindRuntimeByID(context.Background(), "dnx-coreclr-osx-x64", root)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFindRuntimeByID_EitherExecutableName(t *testing.T) {
	for _, exe := range executableNames {
		t.Run(exe, func(t *testing.T) {
			root := t.TempDir()
			dir := filepath.Join(root, "omnisharp-linux-mono")
			require.NoError(t, os.MkdirAll(dir, 0o755))
			require.NoError(t, os.WriteFile(filepath.Join(dir, exe), nil, 0o755))

			got, found, err := FindRuntimeByID(context.Background(), "omnisharp-linux-mono", root)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, dir, got)
		})
	}
}

func TestFindRuntimeByID_EmptyInstallDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "omnisharp-linux-mono"), 0o755))

	_, found, err := FindRuntimeByID(context.Background(), "omnisharp-linux-mono", root)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFindRuntimeByID_MissingRoot(t *testing.T) {
	_, found, err := FindRuntimeByID(context.Background(), "omnisharp-linux-mono", filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFindRuntimeByID_ScanError(t *testing.T) {
	orig := osReadDir
	osReadDir = func(string) ([]os.DirEntry, error) { return nil, errors.New("permission denied") }
	t.Cleanup(func() { osReadDir = orig })

	_, _, err := FindRuntimeByID(context.Background(), "omnisharp-linux-mono", t.TempDir())
	assert.ErrorIs(t, err, failure.ErrFilesystem)
}

func TestFindRuntimeByID_Canceled(t *testing.T) {
	root := runtimesFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, found, err := FindRuntimeByID(ctx, "dnx-coreclr-dos-x64", root)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, found)
}
