// Package acquire makes sure the server build described by an identity is
// installed: it gates on the version marker, looks for an existing
// executable and otherwise downloads and extracts the release archives.
package acquire

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/conn-castle/omnisharp-client/internal/extract"
	"github.com/conn-castle/omnisharp-client/internal/fetch"
	"github.com/conn-castle/omnisharp-client/internal/identity"
	"github.com/conn-castle/omnisharp-client/internal/marker"
	"github.com/conn-castle/omnisharp-client/internal/messages"
	"github.com/conn-castle/omnisharp-client/internal/settle"
)

// Release artifact names.
const (
	ArtifactServer    = "omnisharp"
	ArtifactBootstrap = "omnisharp.bootstrap"
)

// DefaultReleaseBaseURL hosts the server release archives.
const DefaultReleaseBaseURL = "https://github.com/OmniSharp/omnisharp-roslyn/releases"

// EnvNoNetwork disables downloads when set to a non-empty value.
const EnvNoNetwork = "OMNISHARP_NO_NETWORK"

// ErrNoNetwork is returned when a download is required but disabled.
var ErrNoNetwork = errors.New(messages.AcquireNoNetwork)

var (
	osMkdirAll = os.MkdirAll
	osRemove   = os.Remove
	osStat     = os.Stat
)

// Fetcher downloads url into dest.
type Fetcher interface {
	Download(ctx context.Context, url, dest string) error
}

// Extractor unpacks an archive into destDir.
type Extractor interface {
	Extract(isWindows bool, archivePath, destDir string) error
}

// Result is delivered by the asynchronous variants.
// Artifacts lists the names downloaded, in order; it is empty when nothing was needed.
type Result struct {
	Artifacts []string
	Err       error
}

// Acquirer installs one server build.
type Acquirer struct {
	id             identity.Identity
	logger         *zap.Logger
	fetcher        Fetcher
	extractor      Extractor
	gate           *marker.Gate
	releaseBaseURL string
	searchRoot     string
	fetchSettle    time.Duration
	sys            System
	metrics        *Metrics
}

// Option configures an Acquirer.
type Option func(*Acquirer)

// WithLogger sets the logger. It is also handed to the default fetcher,
// extractor and gate.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Acquirer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithFetcher replaces the HTTP fetcher.
func WithFetcher(f Fetcher) Option {
	return func(a *Acquirer) { a.fetcher = f }
}

// WithExtractor replaces the archive extractor.
func WithExtractor(e Extractor) Option {
	return func(a *Acquirer) { a.extractor = e }
}

// WithGate replaces the version gate.
func WithGate(g *marker.Gate) Option {
	return func(a *Acquirer) { a.gate = g }
}

// WithReleaseBaseURL points downloads at a different release host.
func WithReleaseBaseURL(base string) Option {
	return func(a *Acquirer) { a.releaseBaseURL = strings.TrimRight(base, "/") }
}

// WithSearchRoot changes the default root FindRuntime searches.
func WithSearchRoot(root string) Option {
	return func(a *Acquirer) { a.searchRoot = root }
}

// WithFetchSettle overrides the pause between fetch and extraction.
func WithFetchSettle(d time.Duration) Option {
	return func(a *Acquirer) { a.fetchSettle = d }
}

// WithSystem replaces OS environment access.
func WithSystem(sys System) Option {
	return func(a *Acquirer) { a.sys = sys }
}

// WithMetrics records acquisition outcomes and downloaded bytes.
func WithMetrics(m *Metrics) Option {
	return func(a *Acquirer) { a.metrics = m }
}

// New returns an Acquirer for id.
func New(id identity.Identity, opts ...Option) *Acquirer {
	a := &Acquirer{
		id:             id,
		logger:         zap.NewNop(),
		releaseBaseURL: DefaultReleaseBaseURL,
		searchRoot:     id.DestinationRoot(),
		fetchSettle:    settle.AfterFetch,
		sys:            RealSystem{},
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.fetcher == nil {
		a.fetcher = fetch.New(fetch.WithLogger(a.logger))
	}
	if a.extractor == nil {
		a.extractor = extract.New(a.logger)
	}
	if a.gate == nil {
		a.gate = marker.NewGate(marker.WithLogger(a.logger))
	}
	return a
}

// Identity returns the build this Acquirer installs.
func (a *Acquirer) Identity() identity.Identity { return a.id }

// FindRuntime looks for the build under searchRoot, or under the configured
// search root when searchRoot is empty.
func (a *Acquirer) FindRuntime(ctx context.Context, searchRoot string) (string, bool, error) {
	if searchRoot == "" {
		searchRoot = a.searchRoot
	}
	return FindRuntimeByID(ctx, a.id.ID(), searchRoot)
}

// DownloadRuntime fetches and extracts every artifact of the build in order
// and returns their names. It stops at the first failure.
func (a *Acquirer) DownloadRuntime(ctx context.Context) ([]string, error) {
	if a.noNetwork() {
		return nil, fmt.Errorf(messages.AcquireNoNetworkFmt, ErrNoNetwork, a.id.InstallPath(), EnvNoNetwork)
	}
	names := []string{ArtifactServer}
	if a.id.Bootstrap() {
		names = []string{ArtifactBootstrap, ArtifactServer}
	}

	done := make([]string, 0, len(names))
	for _, name := range names {
		if err := a.downloadSpecificRuntime(ctx, name); err != nil {
			return done, err
		}
		done = append(done, name)
	}
	return done, nil
}

// DownloadRuntimeAsync runs DownloadRuntime on its own goroutine.
// The channel receives exactly one Result and is then closed.
func (a *Acquirer) DownloadRuntimeAsync(ctx context.Context) <-chan Result {
	return async(func() ([]string, error) { return a.DownloadRuntime(ctx) })
}

// DownloadRuntimeIfMissing resets a stale install directory, then downloads
// the build when no executable is found. It returns nil artifacts when the
// build was already present. Concurrent callers on the same machine are
// serialized by a lock file in the destination root.
func (a *Acquirer) DownloadRuntimeIfMissing(ctx context.Context) ([]string, error) {
	artifacts, err := a.downloadIfMissingLocked(ctx)
	switch {
	case err != nil:
		a.metrics.observe(outcomeFailed)
	case len(artifacts) == 0:
		a.metrics.observe(outcomePresent)
	default:
		a.metrics.observe(outcomeDownloaded)
	}
	return artifacts, err
}

// EnsureAsync runs DownloadRuntimeIfMissing on its own goroutine.
// The channel receives exactly one Result and is then closed.
func (a *Acquirer) EnsureAsync(ctx context.Context) <-chan Result {
	return async(func() ([]string, error) { return a.DownloadRuntimeIfMissing(ctx) })
}

func (a *Acquirer) downloadIfMissingLocked(ctx context.Context) ([]string, error) {
	root := a.id.DestinationRoot()
	if err := osMkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf(messages.AcquireCreateRootFmt, root, err)
	}
	lockPath := filepath.Join(root, "."+a.id.ID()+".lock")

	var artifacts []string
	err := withFileLock(lockPath, func() error {
		if _, err := a.gate.EnsureCurrent(ctx, a.id.InstallPath(), a.id.Version()); err != nil {
			return err
		}
		if installed(a.id.InstallPath()) {
			a.logger.Debug(messages.AcquirePresentLog, zap.String("id", a.id.ID()))
			return nil
		}
		var err error
		artifacts, err = a.DownloadRuntime(ctx)
		return err
	})
	return artifacts, err
}

func (a *Acquirer) downloadSpecificRuntime(ctx context.Context, name string) error {
	filename := a.id.ArchiveName(name)
	installPath := a.id.InstallPath()
	if err := osMkdirAll(installPath, 0o755); err != nil {
		a.logger.Warn(messages.AcquireMkdirIgnoredLog, zap.String("path", installPath), zap.Error(err))
	}

	url := fmt.Sprintf("%s/download/%s/%s", a.releaseBaseURL, a.id.Version(), filename)
	archive := filepath.Join(installPath, filename)
	defer func() {
		if err := osRemove(archive); err != nil && !os.IsNotExist(err) {
			a.logger.Debug(messages.AcquireRemoveArchiveLog, zap.String("path", archive), zap.Error(err))
		}
	}()

	a.logger.Info(messages.AcquireDownloadLog, zap.String("artifact", name), zap.String("url", url))
	if err := a.fetcher.Download(ctx, url, archive); err != nil {
		return err
	}
	if info, err := osStat(archive); err == nil {
		a.metrics.addBytes(info.Size())
	}
	if err := settle.Wait(ctx, a.fetchSettle); err != nil {
		return err
	}
	if err := a.extractor.Extract(a.id.IsWindows(), archive, installPath); err != nil {
		return err
	}
	a.logger.Info(messages.AcquireInstalledLog, zap.String("artifact", name), zap.String("path", installPath))
	return nil
}

func (a *Acquirer) noNetwork() bool {
	return strings.TrimSpace(a.sys.Getenv(EnvNoNetwork)) != ""
}

func async(fn func() ([]string, error)) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		artifacts, err := fn()
		ch <- Result{Artifacts: artifacts, Err: err}
	}()
	return ch
}
