// Package launch turns a resolved identity and probe result into the process
// that runs the analysis server.
package launch

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/conn-castle/omnisharp-client/internal/envutil"
	"github.com/conn-castle/omnisharp-client/internal/identity"
	"github.com/conn-castle/omnisharp-client/internal/probe"
)

var (
	environ = os.Environ
	osStat  = os.Stat
	getpid  = os.Getpid
)

// Sender is the request/response channel to a running server.
// Implementations own the wire protocol; this package only starts the process.
type Sender interface {
	Send(ctx context.Context, name string, payload any) (json.RawMessage, error)
}

// Prober reports which runtime can host an identity.
type Prober interface {
	IsSupportedRuntime(ctx context.Context, id identity.Identity) (probe.Support, error)
}

// Plan probes the host for req and returns the identity to launch together
// with the probe result. When the probe degrades the requested kind, the
// identity is resolved again for the kind that is actually supported.
func Plan(ctx context.Context, p Prober, req identity.Request) (identity.Identity, probe.Support, error) {
	id := identity.Resolve(req)
	support, err := p.IsSupportedRuntime(ctx, id)
	if err != nil {
		return identity.Identity{}, probe.Support{}, err
	}
	if support.Runtime != id.Kind() {
		req.Kind = support.Runtime
		id = identity.Resolve(req)
	}
	return id, support, nil
}

// Command builds the server process for id. The child inherits the current
// environment with PATH replaced by the probe's search path, and the
// interpreter, when one is needed, is looked up on that same path.
func Command(ctx context.Context, id identity.Identity, support probe.Support, args ...string) *exec.Cmd {
	launch := id.Launch()
	name := launch.Executable
	argv := args
	if launch.Interpreter != "" {
		name = lookPath(launch.Interpreter, support.Path)
		argv = append([]string{launch.Executable}, args...)
	}

	cmd := exec.CommandContext(ctx, name, argv...)
	cmd.Dir = filepath.Dir(launch.Executable)
	cmd.Env = envutil.SetPath(environ(), support.Path)
	return cmd
}

// StdioArgs returns the server arguments for a stdio session on projectPath
// owned by the current process.
func StdioArgs(projectPath string, extra ...string) []string {
	args := []string{"--stdio", "-s", projectPath, "--hostPID", strconv.Itoa(getpid())}
	return append(args, extra...)
}

// lookPath returns the first executable named name in searchPath, or name
// unchanged so exec resolves it against the parent environment.
func lookPath(name, searchPath string) string {
	for _, dir := range filepath.SplitList(searchPath) {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		info, err := osStat(candidate)
		if err == nil && !info.IsDir() && info.Mode().Perm()&0o111 != 0 {
			return candidate
		}
	}
	return name
}
