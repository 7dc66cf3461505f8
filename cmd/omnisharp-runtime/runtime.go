package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conn-castle/omnisharp-client/internal/acquire"
	"github.com/conn-castle/omnisharp-client/internal/config"
	"github.com/conn-castle/omnisharp-client/internal/identity"
	"github.com/conn-castle/omnisharp-client/internal/launch"
	"github.com/conn-castle/omnisharp-client/internal/messages"
	"github.com/conn-castle/omnisharp-client/internal/updatewarn"
)

var (
	warnIfOutdated   = updatewarn.WarnIfOutdated
	writeMetricsFile = prometheus.WriteToTextfile
)

func newEnsureCmd(opts *rootOptions) *cobra.Command {
	var metricsFile string
	cmd := &cobra.Command{
		Use:   messages.EnsureUse,
		Short: messages.EnsureShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, req, err := opts.request()
			if err != nil {
				return err
			}
			logger := opts.newLogger(cmd.ErrOrStderr())
			defer func() { _ = logger.Sync() }()
			id, err := hostIdentity(cmd.Context(), opts, cfg, req, logger)
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			extra, stopProgress := progressOptions(cmd.ErrOrStderr(), logger)
			extra = append(extra, acquire.WithMetrics(acquire.NewMetrics(reg)))
			artifacts, err := opts.newAcquirer(cfg, id, logger, extra...).DownloadRuntimeIfMissing(cmd.Context())
			stopProgress()
			if metricsFile != "" {
				if writeErr := writeMetricsFile(metricsFile, reg); writeErr != nil && err == nil {
					err = fmt.Errorf(messages.EnsureWriteMetricsFmt, metricsFile, writeErr)
				}
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(artifacts) == 0 {
				_, _ = fmt.Fprintf(out, messages.EnsurePresentFmt, id.ID(), id.InstallPath())
			} else {
				_, _ = fmt.Fprintf(out, messages.EnsureDownloadedFmt, strings.Join(artifacts, ", "), id.InstallPath())
			}
			warnIfOutdated(cmd.Context(), id.Version(), cmd.ErrOrStderr())
			return nil
		},
	}
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", messages.EnsureFlagMetricsFile)
	return cmd
}

func newDownloadCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.DownloadUse,
		Short: messages.DownloadShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, req, err := opts.request()
			if err != nil {
				return err
			}
			logger := opts.newLogger(cmd.ErrOrStderr())
			defer func() { _ = logger.Sync() }()
			id, err := hostIdentity(cmd.Context(), opts, cfg, req, logger)
			if err != nil {
				return err
			}

			extra, stopProgress := progressOptions(cmd.ErrOrStderr(), logger)
			result := <-opts.newAcquirer(cfg, id, logger, extra...).DownloadRuntimeAsync(cmd.Context())
			stopProgress()
			if result.Err != nil {
				return result.Err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.EnsureDownloadedFmt, strings.Join(result.Artifacts, ", "), id.InstallPath())
			return nil
		},
	}
}

// hostIdentity resolves req for the runtime the host can run, so ensure and
// download install the same build launch starts.
func hostIdentity(ctx context.Context, opts *rootOptions, cfg *config.Config, req identity.Request, logger *zap.Logger) (identity.Identity, error) {
	prober, err := opts.newProber(cfg, logger)
	if err != nil {
		return identity.Identity{}, err
	}
	id, _, err := launch.Plan(ctx, prober, req)
	return id, err
}

func newFindCmd(opts *rootOptions) *cobra.Command {
	var root string
	cmd := &cobra.Command{
		Use:   messages.FindUse,
		Short: messages.FindShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, req, err := opts.request()
			if err != nil {
				return err
			}
			id := identity.Resolve(req)
			acq := opts.newAcquirer(cfg, id, opts.newLogger(cmd.ErrOrStderr()))
			path, found, err := acq.FindRuntime(cmd.Context(), root)
			if err != nil {
				return err
			}
			if !found {
				searched := root
				if searched == "" {
					searched = id.DestinationRoot()
				}
				return fmt.Errorf(messages.FindNotFoundFmt, id.ID(), searched)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&root, "root", "", messages.FindFlagRoot)
	return cmd
}
