package identity

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestResolve_Keys(t *testing.T) {
	root := t.TempDir()
	tests := []struct {
		name     string
		req      Request
		wantOS   string
		wantKey  string
		wantExe  string
		wantMono bool
	}{
		{
			name:    "windows clr",
			req:     Request{Kind: ClrOrMono, Platform: "win32", Arch: "x64"},
			wantOS:  "win",
			wantKey: "win-x64-dnx451",
			wantExe: ExecutableWindows,
		},
		{
			name:    "windows coreclr x86",
			req:     Request{Kind: CoreClr, Platform: "win32", Arch: "x86"},
			wantOS:  "win",
			wantKey: "win-x86-dnxcore50",
			wantExe: ExecutableWindows,
		},
		{
			name:    "darwin coreclr",
			req:     Request{Kind: CoreClr, Platform: "darwin", Arch: "x64"},
			wantOS:  "osx",
			wantKey: "osx-x64-dnxcore50",
			wantExe: ExecutableUnix,
		},
		{
			name:     "darwin mono collapses to linux-mono",
			req:      Request{Kind: ClrOrMono, Platform: "darwin", Arch: "x64"},
			wantOS:   "osx",
			wantKey:  "linux-mono",
			wantExe:  ExecutableWindows,
			wantMono: true,
		},
		{
			name:     "linux mono",
			req:      Request{Kind: ClrOrMono, Platform: "linux", Arch: "x86"},
			wantOS:   "linux",
			wantKey:  "linux-mono",
			wantExe:  ExecutableWindows,
			wantMono: true,
		},
		{
			name:    "linux coreclr with odd arch",
			req:     Request{Kind: CoreClr, Platform: "linux", Arch: "arm64"},
			wantOS:  "linux",
			wantKey: "linux-x64-dnxcore50",
			wantExe: ExecutableUnix,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.DestinationRoot = root
			tt.req.Version = "v1.0.0"
			id := Resolve(tt.req)

			assert.Equal(t, tt.wantOS, id.OSName())
			assert.Equal(t, tt.wantKey, id.Key())
			assert.Equal(t, "omnisharp-"+tt.wantKey, id.ID())
			assert.Equal(t, filepath.Join(root, "omnisharp-"+tt.wantKey), id.InstallPath())
			assert.Equal(t, filepath.Join(id.InstallPath(), tt.wantExe), id.Launch().Executable)
			if tt.wantMono {
				assert.Equal(t, Interpreter, id.Launch().Interpreter)
				assert.Equal(t, "mono "+id.Launch().Executable, id.Launch().String())
			} else {
				assert.Empty(t, id.Launch().Interpreter)
				assert.Equal(t, id.Launch().Executable, id.Launch().String())
			}
		})
	}
}

func TestResolve_ServerPathOverride(t *testing.T) {
	id := Resolve(Request{Kind: ClrOrMono, Platform: "linux", ServerPath: "/opt/omnisharp/OmniSharp.exe", DestinationRoot: t.TempDir()})
	assert.Equal(t, "mono /opt/omnisharp/OmniSharp.exe", id.Launch().String())

	id = Resolve(Request{Kind: CoreClr, Platform: "win32", ServerPath: `C:\omnisharp\OmniSharp.exe`, DestinationRoot: t.TempDir()})
	assert.Equal(t, `C:\omnisharp\OmniSharp.exe`, id.Launch().String())
}

func TestResolve_Defaults(t *testing.T) {
	origOS, origArch, origCache := goos, goarch, userCacheDir
	t.Cleanup(func() { goos, goarch, userCacheDir = origOS, origArch, origCache })
	cache := t.TempDir()
	goos = "windows"
	goarch = "386"
	userCacheDir = func() (string, error) { return cache, nil }

	id := Resolve(Request{})
	assert.Equal(t, ClrOrMono, id.Kind())
	assert.Equal(t, "win32", id.Platform())
	assert.Equal(t, "x86", id.Arch())
	assert.Equal(t, DefaultServerVersion, id.Version())
	assert.Equal(t, filepath.Join(cache, "omnisharp-client"), id.DestinationRoot())
	assert.Equal(t, "omnisharp-win-x86-dnx451", id.ID())
}

func TestResolve_ExplicitRootIgnoresCacheDir(t *testing.T) {
	origCache := userCacheDir
	t.Cleanup(func() { userCacheDir = origCache })
	req := Request{Kind: CoreClr, Platform: "linux", Arch: ArchX64, Version: "v1.0.0", DestinationRoot: "/srv/omnisharp"}

	userCacheDir = func() (string, error) { return "/home/a/.cache", nil }
	first := Resolve(req)
	userCacheDir = func() (string, error) { return "/home/b/.cache", nil }
	second := Resolve(req)
	assert.Equal(t, first, second)

	req.DestinationRoot = ""
	assert.Equal(t, filepath.Join("/home/b/.cache", "omnisharp-client"), Resolve(req).DestinationRoot())
}

func TestArchiveName(t *testing.T) {
	win := Resolve(Request{Kind: CoreClr, Platform: "win32", Arch: "x64", DestinationRoot: "/r"})
	assert.Equal(t, "omnisharp-win-x64-dnxcore50.zip", win.ArchiveName("omnisharp"))

	mono := Resolve(Request{Kind: ClrOrMono, Platform: "linux", DestinationRoot: "/r"})
	assert.Equal(t, "omnisharp.bootstrap-linux-mono.tar.gz", mono.ArchiveName("omnisharp.bootstrap"))
}

func TestProbeKey(t *testing.T) {
	id := Resolve(Request{Kind: CoreClr, Platform: "linux", Arch: "x64", Version: "v1.2.3", DestinationRoot: "/r"})
	assert.Equal(t, "x64-linux:CoreClr:v1.2.3", id.ProbeKey())
}

func TestParseKind(t *testing.T) {
	for _, raw := range []string{"", "mono", "ClrOrMono", "clr-or-mono"} {
		k, err := ParseKind(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, ClrOrMono, k, raw)
	}
	k, err := ParseKind(" CoreCLR ")
	require.NoError(t, err)
	assert.Equal(t, CoreClr, k)

	_, err = ParseKind("jvm")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jvm")
}

func TestResolve_DeterministicProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		req := Request{
			Kind:            rapid.SampledFrom([]Kind{ClrOrMono, CoreClr}).Draw(t, "kind"),
			Platform:        rapid.SampledFrom([]string{"win32", "darwin", "linux", "freebsd", "sunos"}).Draw(t, "platform"),
			Arch:            rapid.SampledFrom([]string{"x86", "x64", "arm", "arm64", "ia32", "X86"}).Draw(t, "arch"),
			Version:         rapid.StringMatching(`v[0-9]\.[0-9]{1,2}\.[0-9]`).Draw(t, "version"),
			DestinationRoot: "/srv/omnisharp",
		}
		first := Resolve(req)
		second := Resolve(req)
		if first != second {
			t.Fatalf("Resolve not deterministic: %+v vs %+v", first, second)
		}
		if first.Arch() != ArchX86 && first.Arch() != ArchX64 {
			t.Fatalf("arch not normalized: %q", first.Arch())
		}
		if req.Arch != "x86" && first.Arch() != ArchX64 {
			t.Fatalf("arch %q should normalize to x64, got %q", req.Arch, first.Arch())
		}
		if first.ID() != "omnisharp-"+first.Key() {
			t.Fatalf("id %q does not derive from key %q", first.ID(), first.Key())
		}
	})
}
