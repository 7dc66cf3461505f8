package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/spf13/cobra"

	"github.com/conn-castle/omnisharp-client/internal/config"
	"github.com/conn-castle/omnisharp-client/internal/messages"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	var (
		fields bool
		diff   bool
	)
	cmd := &cobra.Command{
		Use:   messages.ConfigUse,
		Short: messages.ConfigShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if fields {
				for _, field := range config.Fields() {
					printField(out, field)
				}
				return nil
			}
			if diff {
				return printEnvDiff(out, opts)
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			data, err := config.Encode(cfg)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&fields, "fields", false, messages.ConfigFlagFields)
	cmd.Flags().BoolVar(&diff, "diff", false, messages.ConfigFlagDiff)
	cmd.MarkFlagsMutuallyExclusive("fields", "diff")
	return cmd
}

// printEnvDiff shows how environment overrides change the file config.
func printEnvDiff(out io.Writer, opts *rootOptions) error {
	path, err := opts.resolvedConfigPath()
	if err != nil {
		return err
	}
	fileCfg, err := config.Load(path)
	if err != nil {
		return err
	}
	before, err := config.Encode(fileCfg)
	if err != nil {
		return err
	}
	effective := *fileCfg
	effective.ApplyEnv(getenv)
	after, err := config.Encode(&effective)
	if err != nil {
		return err
	}

	unified := strings.TrimSpace(udiff.Unified(path, messages.ConfigDiffEffectiveLabel, string(before), string(after)))
	if unified == "" {
		_, _ = fmt.Fprintln(out, messages.ConfigDiffNoOverrides)
		return nil
	}
	_, _ = fmt.Fprintln(out, unified)
	return nil
}

func printField(out io.Writer, field config.FieldDef) {
	_, _ = fmt.Fprintf(out, messages.ConfigFieldLineFmt, field.Key, field.Type, field.Description)
	if field.Env != "" {
		_, _ = fmt.Fprintf(out, messages.ConfigFieldEnvFmt, field.Env)
	}
	if len(field.Options) > 0 {
		values := make([]string, 0, len(field.Options))
		for _, opt := range field.Options {
			values = append(values, opt.Value)
		}
		_, _ = fmt.Fprintf(out, messages.ConfigFieldOptionsFmt, strings.Join(values, ", "))
	}
}
