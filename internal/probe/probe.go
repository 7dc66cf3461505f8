// Package probe decides which managed runtime can host the server on this
// machine and computes the search path the server should be launched with.
//
// Results are cached per identity probe key for the lifetime of a Prober;
// concurrent first probes for the same key share a single scan.
package probe

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/conn-castle/omnisharp-client/internal/envutil"
	"github.com/conn-castle/omnisharp-client/internal/identity"
	"github.com/conn-castle/omnisharp-client/internal/messages"
)

// DefaultFallbackDirs are scanned for the interpreter after the search path.
var DefaultFallbackDirs = []string{
	"/usr/local/bin",
	"/Library/Frameworks/Mono.framework/Commands",
}

var (
	osStat  = os.Stat
	environ = os.Environ
)

// Support is the runtime chosen for an identity and the search path to run it with.
type Support struct {
	Runtime identity.Kind
	Path    string
}

// Prober probes the environment once per distinct identity.
type Prober struct {
	mu           sync.Mutex
	cache        map[string]Support
	group        singleflight.Group
	fallbackDirs []string
	logger       *zap.Logger
}

// Option configures a Prober.
type Option func(*Prober)

// WithFallbackDirs replaces DefaultFallbackDirs.
func WithFallbackDirs(dirs []string) Option {
	return func(p *Prober) {
		p.fallbackDirs = append([]string(nil), dirs...)
	}
}

// WithLogger sets the logger that records each probe result.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Prober) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New returns a Prober with an empty cache.
func New(opts ...Option) *Prober {
	p := &Prober{
		cache:        make(map[string]Support),
		fallbackDirs: append([]string(nil), DefaultFallbackDirs...),
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// IsSupportedRuntime reports the runtime that will host id and the search path
// to launch it with. Windows and CoreClr requests are taken at face value.
// Otherwise the interpreter is looked up on the search path and in the
// fallback directories; when it is missing the result degrades to CoreClr.
func (p *Prober) IsSupportedRuntime(ctx context.Context, id identity.Identity) (Support, error) {
	key := id.ProbeKey()
	if support, ok := p.cached(key); ok {
		return support, nil
	}

	ch := p.group.DoChan(key, func() (any, error) {
		if support, ok := p.cached(key); ok {
			return support, nil
		}
		support := p.scan(id)
		p.mu.Lock()
		p.cache[key] = support
		p.mu.Unlock()
		p.logger.Info(messages.ProbeResultLog,
			zap.String("key", key),
			zap.Stringer("runtime", support.Runtime),
			zap.String("path", support.Path))
		return support, nil
	})

	select {
	case <-ctx.Done():
		return Support{}, ctx.Err()
	case res := <-ch:
		return res.Val.(Support), nil
	}
}

// Reset drops every cached result.
func (p *Prober) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache = make(map[string]Support)
}

func (p *Prober) cached(key string) (Support, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	support, ok := p.cache[key]
	return support, ok
}

func (p *Prober) scan(id identity.Identity) Support {
	searchPath, _ := envutil.LookupPath(environ())
	if id.IsWindows() || id.Kind() == identity.CoreClr {
		return Support{Runtime: id.Kind(), Path: searchPath}
	}

	dirs := append(splitPath(searchPath), p.fallbackDirs...)
	for _, dir := range dirs {
		if !isExecutable(filepath.Join(dir, identity.Interpreter)) {
			continue
		}
		return Support{
			Runtime: identity.ClrOrMono,
			Path:    dir + string(os.PathListSeparator) + searchPath,
		}
	}
	return Support{Runtime: identity.CoreClr, Path: searchPath}
}

func splitPath(searchPath string) []string {
	var dirs []string
	for _, dir := range strings.Split(searchPath, string(os.PathListSeparator)) {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		dirs = append(dirs, dir)
	}
	return dirs
}

func isExecutable(path string) bool {
	info, err := osStat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode().Perm()&0o111 != 0
}
