package launch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/omnisharp-client/internal/envutil"
	"github.com/conn-castle/omnisharp-client/internal/identity"
	"github.com/conn-castle/omnisharp-client/internal/probe"
	"github.com/conn-castle/omnisharp-client/internal/testutil"
)

type fakeProber struct {
	support probe.Support
	err     error
	seen    []identity.Identity
}

func (f *fakeProber) IsSupportedRuntime(_ context.Context, id identity.Identity) (probe.Support, error) {
	f.seen = append(f.seen, id)
	return f.support, f.err
}

func withEnviron(t *testing.T, env ...string) {
	t.Helper()
	orig := environ
	environ = func() []string { return env }
	t.Cleanup(func() { environ = orig })
}

func TestCommand_DirectExecutable(t *testing.T) {
	withEnviron(t, "HOME=/home/dev", "Path=/old")
	root := t.TempDir()
	id := identity.Resolve(identity.Request{Kind: identity.CoreClr, Platform: "linux", DestinationRoot: root})

	cmd := Command(context.Background(), id, probe.Support{Runtime: identity.CoreClr, Path: "/usr/bin"}, "--stdio")

	exe := filepath.Join(id.InstallPath(), identity.ExecutableUnix)
	assert.Equal(t, exe, cmd.Path)
	assert.Equal(t, []string{exe, "--stdio"}, cmd.Args)
	assert.Equal(t, id.InstallPath(), cmd.Dir)
	assert.Contains(t, cmd.Env, "PATH=/usr/bin")
	assert.Contains(t, cmd.Env, "HOME=/home/dev")
	assert.NotContains(t, cmd.Env, "Path=/old")
}

func TestCommand_InterpreterFromProbePath(t *testing.T) {
	withEnviron(t, "PATH=/bin")
	monoDir := t.TempDir()
	testutil.WriteStub(t, monoDir, identity.Interpreter)
	id := identity.Resolve(identity.Request{Kind: identity.ClrOrMono, Platform: "darwin", DestinationRoot: t.TempDir()})
	searchPath := monoDir + string(os.PathListSeparator) + "/bin"

	cmd := Command(context.Background(), id, probe.Support{Runtime: identity.ClrOrMono, Path: searchPath}, "-s", "/src")

	mono := filepath.Join(monoDir, identity.Interpreter)
	assert.Equal(t, mono, cmd.Path)
	assert.Equal(t, []string{mono, id.Launch().Executable, "-s", "/src"}, cmd.Args)
	value, ok := envutil.GetEnv(cmd.Env, envutil.PathKey)
	require.True(t, ok)
	assert.Equal(t, searchPath, value)
}

func TestCommand_RunsServerOverride(t *testing.T) {
	withEnviron(t, os.Environ()...)
	dir := t.TempDir()
	testutil.WriteStubEcho(t, dir, "OmniSharp")
	id := identity.Resolve(identity.Request{
		Kind:       identity.CoreClr,
		Platform:   "linux",
		ServerPath: filepath.Join(dir, "OmniSharp"),
	})
	searchPath, _ := envutil.LookupPath(os.Environ())

	out, err := Command(context.Background(), id, probe.Support{Runtime: identity.CoreClr, Path: searchPath}, "--stdio", "-s", "/work").Output()
	require.NoError(t, err)
	assert.Equal(t, "--stdio -s /work", strings.TrimSpace(string(out)))
}

func TestPlan_KeepsSupportedKind(t *testing.T) {
	p := &fakeProber{support: probe.Support{Runtime: identity.ClrOrMono, Path: "/mono:/bin"}}
	req := identity.Request{Kind: identity.ClrOrMono, Platform: "linux", DestinationRoot: t.TempDir()}

	id, support, err := Plan(context.Background(), p, req)
	require.NoError(t, err)
	assert.Equal(t, "omnisharp-linux-mono", id.ID())
	assert.Equal(t, "/mono:/bin", support.Path)
	assert.Len(t, p.seen, 1)
}

func TestPlan_ReResolvesDegradedKind(t *testing.T) {
	p := &fakeProber{support: probe.Support{Runtime: identity.CoreClr, Path: "/bin"}}
	req := identity.Request{Kind: identity.ClrOrMono, Platform: "linux", Arch: "x64", DestinationRoot: t.TempDir()}

	id, _, err := Plan(context.Background(), p, req)
	require.NoError(t, err)
	assert.Equal(t, identity.CoreClr, id.Kind())
	assert.Equal(t, "omnisharp-linux-x64-dnxcore50", id.ID())
	assert.Empty(t, id.Launch().Interpreter)
}

func TestPlan_ProbeError(t *testing.T) {
	want := errors.New("canceled")
	_, _, err := Plan(context.Background(), &fakeProber{err: want}, identity.Request{Platform: "linux"})
	assert.ErrorIs(t, err, want)
}

func TestStdioArgs(t *testing.T) {
	orig := getpid
	getpid = func() int { return 4242 }
	t.Cleanup(func() { getpid = orig })

	assert.Equal(t,
		[]string{"--stdio", "-s", "/src/app.sln", "--hostPID", "4242", "DotNet:enablePackageRestore=false"},
		StdioArgs("/src/app.sln", "DotNet:enablePackageRestore=false"))
}

func TestLookPath_FallsBackToName(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mono"), []byte("x"), 0o644))
	assert.Equal(t, "mono", lookPath("mono", dir+string(os.PathListSeparator)))
}
