package main

import (
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/conn-castle/omnisharp-client/internal/launch"
	"github.com/conn-castle/omnisharp-client/internal/messages"
)

var runCommand = func(c *exec.Cmd) error { return c.Run() }

func newProbeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.ProbeUse,
		Short: messages.ProbeShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, req, err := opts.request()
			if err != nil {
				return err
			}
			logger := opts.newLogger(cmd.ErrOrStderr())
			prober, err := opts.newProber(cfg, logger)
			if err != nil {
				return err
			}
			id, support, err := launch.Plan(cmd.Context(), prober, req)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, messages.ProbeRuntimeFmt, support.Runtime)
			_, _ = fmt.Fprintf(out, messages.ProbeIDFmt, id.ID())
			_, _ = fmt.Fprintf(out, messages.ProbeLaunchFmt, id.Launch())
			_, _ = fmt.Fprintf(out, messages.ProbePathFmt, support.Path)
			return nil
		},
	}
}

func newLaunchCmd(opts *rootOptions) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   messages.LaunchUse,
		Short: messages.LaunchShort,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, req, err := opts.request()
			if err != nil {
				return err
			}
			logger := opts.newLogger(cmd.ErrOrStderr())
			defer func() { _ = logger.Sync() }()
			prober, err := opts.newProber(cfg, logger)
			if err != nil {
				return err
			}
			id, support, err := launch.Plan(cmd.Context(), prober, req)
			if err != nil {
				return err
			}

			server := launch.Command(cmd.Context(), id, support, launch.StdioArgs(args[0], args[1:]...)...)
			if dryRun {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), server.String())
				return nil
			}
			if req.ServerPath == "" {
				if _, err := opts.newAcquirer(cfg, id, logger).DownloadRuntimeIfMissing(cmd.Context()); err != nil {
					return err
				}
			}
			server.Stdin = cmd.InOrStdin()
			server.Stdout = cmd.OutOrStdout()
			server.Stderr = cmd.ErrOrStderr()
			return runCommand(server)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, messages.LaunchFlagDryRun)
	return cmd
}
