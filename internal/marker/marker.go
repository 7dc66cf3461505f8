// Package marker reads and rewrites the one-line .version file that records
// which server build is installed in an install directory.
package marker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/conn-castle/omnisharp-client/internal/failure"
	"github.com/conn-castle/omnisharp-client/internal/messages"
	"github.com/conn-castle/omnisharp-client/internal/settle"
)

// FileName is the marker file name inside an install directory.
const FileName = ".version"

var (
	osReadFile  = os.ReadFile
	osRemoveAll = os.RemoveAll
	osMkdirAll  = os.MkdirAll
	osWriteFile = os.WriteFile
)

// Gate decides whether an install directory holds the desired version and
// resets it when it does not.
type Gate struct {
	settleDelay time.Duration
	logger      *zap.Logger
}

// Option configures a Gate.
type Option func(*Gate)

// WithSettleDelay overrides the wait between wiping and recreating a directory.
func WithSettleDelay(d time.Duration) Option {
	return func(g *Gate) {
		g.settleDelay = d
	}
}

// WithLogger sets the logger used for reset events.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Gate) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGate returns a Gate using settle.AfterDelete.
func NewGate(opts ...Option) *Gate {
	g := &Gate{
		settleDelay: settle.AfterDelete,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Path returns the marker path for installPath.
func Path(installPath string) string {
	return filepath.Join(installPath, FileName)
}

// Read returns the trimmed marker content. A missing marker reports ok=false
// without an error.
func Read(installPath string) (string, bool, error) {
	path := Path(installPath)
	data, err := osReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, failure.FilesystemErr(messages.MarkerOpRead, path, err)
	}
	return strings.TrimSpace(string(data)), true, nil
}

// CheckCurrent reports whether the marker in installPath equals desired.
// It fails closed: an absent marker is "not current", not an error.
func (g *Gate) CheckCurrent(installPath, desired string) (bool, error) {
	installed, ok, err := Read(installPath)
	if err != nil || !ok {
		return false, err
	}
	return installed == desired, nil
}

// EnsureCurrent leaves a current install alone. Otherwise it deletes
// installPath, waits the settle delay, recreates the directory and writes
// desired into the marker. It returns whether the install was current before
// any change.
//
// The marker is written before any download happens, so it records intent.
func (g *Gate) EnsureCurrent(ctx context.Context, installPath, desired string) (bool, error) {
	current, err := g.CheckCurrent(installPath, desired)
	if err != nil {
		return false, err
	}
	if current {
		return true, nil
	}

	g.logger.Info(messages.MarkerResetLog,
		zap.String("path", installPath),
		zap.String("version", desired))

	if err := osRemoveAll(installPath); err != nil {
		return false, failure.FilesystemErr(messages.MarkerOpRemove, installPath, err)
	}
	if err := settle.Wait(ctx, g.settleDelay); err != nil {
		return false, err
	}
	if err := osMkdirAll(installPath, 0o755); err != nil {
		return false, failure.FilesystemErr(messages.MarkerOpCreate, installPath, err)
	}
	if err := Write(installPath, desired); err != nil {
		return false, err
	}
	return false, nil
}

// Write replaces the marker in installPath with version.
func Write(installPath, version string) error {
	path := Path(installPath)
	if err := osWriteFile(path, []byte(version), 0o644); err != nil {
		return failure.FilesystemErr(messages.MarkerOpWrite, path, err)
	}
	return nil
}

// String describes a marker state for diagnostics.
func String(installed string, ok bool) string {
	if !ok {
		return messages.MarkerMissing
	}
	return fmt.Sprintf(messages.MarkerInstalledFmt, installed)
}
