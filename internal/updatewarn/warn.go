// Package updatewarn prints a colored warning when a newer server release
// than the installed one is published.
package updatewarn

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/conn-castle/omnisharp-client/internal/acquire"
	"github.com/conn-castle/omnisharp-client/internal/config"
	"github.com/conn-castle/omnisharp-client/internal/messages"
	"github.com/conn-castle/omnisharp-client/internal/update"
)

// CheckForUpdate is a seam for tests.
var CheckForUpdate = update.Check

// WarnIfOutdated writes a warning to stderr when installed is older than the
// latest release. Pinned versions, no-network mode and rate limiting stay
// silent. It never returns an error.
func WarnIfOutdated(ctx context.Context, installed string, stderr io.Writer) {
	if strings.TrimSpace(os.Getenv(config.EnvVersion)) != "" {
		return
	}
	if strings.TrimSpace(os.Getenv(acquire.EnvNoNetwork)) != "" {
		return
	}
	if stderr == nil {
		stderr = io.Discard
	}

	warnColor := color.New(color.FgYellow)
	result, err := CheckForUpdate(ctx, installed)
	if err != nil {
		if update.IsRateLimitError(err) {
			return
		}
		_, _ = warnColor.Fprintf(stderr, messages.UpdateWarnCheckFailedFmt, err)
		return
	}
	if result.Outdated {
		_, _ = warnColor.Fprintf(stderr, messages.UpdateWarnAvailableFmt, result.Latest, result.Installed)
	}
}
