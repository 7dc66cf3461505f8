package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/conn-castle/omnisharp-client/internal/identity"
	"github.com/conn-castle/omnisharp-client/internal/messages"
	"github.com/conn-castle/omnisharp-client/internal/terminal"
)

var (
	isInteractive = terminal.IsInteractive
	osStat        = os.Stat
	osRemoveAll   = os.RemoveAll
	confirmPrompt = func(title string) (bool, error) {
		var ok bool
		err := huh.NewConfirm().Title(title).Value(&ok).Run()
		return ok, err
	}
)

func newCleanCmd(opts *rootOptions) *cobra.Command {
	var (
		yes bool
		all bool
	)
	cmd := &cobra.Command{
		Use:   messages.CleanUse,
		Short: messages.CleanShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, req, err := opts.request()
			if err != nil {
				return err
			}
			id := identity.Resolve(req)
			target := id.InstallPath()
			if all {
				target = id.DestinationRoot()
			}

			out := cmd.OutOrStdout()
			if _, err := osStat(target); errors.Is(err, os.ErrNotExist) {
				_, _ = fmt.Fprintf(out, messages.CleanNothingFmt, target)
				return nil
			}
			if !yes {
				if !isInteractive() {
					return errors.New(messages.CleanRequiresConfirmation)
				}
				ok, err := confirmPrompt(fmt.Sprintf(messages.CleanConfirmFmt, target))
				if err != nil {
					return err
				}
				if !ok {
					_, _ = fmt.Fprintln(out, messages.CleanCanceled)
					return nil
				}
			}
			if err := osRemoveAll(target); err != nil {
				return fmt.Errorf(messages.CleanRemoveFmt, target, err)
			}
			_, _ = fmt.Fprintf(out, messages.CleanRemovedFmt, target)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, messages.CleanFlagYes)
	cmd.Flags().BoolVar(&all, "all", false, messages.CleanFlagAll)
	return cmd
}
