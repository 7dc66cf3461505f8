package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conn-castle/omnisharp-client/internal/config"
	"github.com/conn-castle/omnisharp-client/internal/identity"
	"github.com/conn-castle/omnisharp-client/internal/marker"
	"github.com/conn-castle/omnisharp-client/internal/messages"
	"github.com/conn-castle/omnisharp-client/internal/update"
)

var checkForUpdate = update.Check

func newCheckUpdateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.CheckUpdateUse,
		Short: messages.CheckUpdateShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, req, err := opts.request()
			if err != nil {
				return err
			}
			id := identity.Resolve(req)
			installed, ok, err := marker.Read(id.InstallPath())
			if err != nil {
				return err
			}
			if !ok {
				installed = ""
			}

			result, err := checkForUpdate(cmd.Context(), installed)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch {
			case result.Installed == "":
				_, _ = fmt.Fprintf(out, messages.CheckUpdateNotInstalledFmt, result.Latest)
			case result.Outdated:
				_, _ = fmt.Fprintf(out, messages.CheckUpdateAvailableFmt, result.Latest, result.Installed, config.EnvVersion)
			default:
				_, _ = fmt.Fprintf(out, messages.CheckUpdateCurrentFmt, result.Installed)
			}
			return nil
		},
	}
}
