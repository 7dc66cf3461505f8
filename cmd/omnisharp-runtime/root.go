package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/conn-castle/omnisharp-client/internal/acquire"
	"github.com/conn-castle/omnisharp-client/internal/config"
	"github.com/conn-castle/omnisharp-client/internal/identity"
	"github.com/conn-castle/omnisharp-client/internal/messages"
	"github.com/conn-castle/omnisharp-client/internal/probe"
)

var (
	getenv            = os.Getenv
	defaultConfigPath = config.DefaultPath
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", messages.RootFlagConfig)
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, messages.RootFlagVerbose)

	cmd.AddCommand(
		newEnsureCmd(opts),
		newDownloadCmd(opts),
		newFindCmd(opts),
		newProbeCmd(opts),
		newLaunchCmd(opts),
		newDoctorCmd(opts),
		newCleanCmd(opts),
		newCheckUpdateCmd(opts),
		newConfigCmd(opts),
	)
	return cmd
}

// resolvedConfigPath returns --config or the per-user default.
func (o *rootOptions) resolvedConfigPath() (string, error) {
	if o.configPath != "" {
		return config.ExpandPath(o.configPath)
	}
	return defaultConfigPath()
}

// loadConfig reads the config file and applies environment overrides.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	path, err := o.resolvedConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(getenv)
	return cfg, nil
}

// request loads the config and converts it into an identity request.
func (o *rootOptions) request() (*config.Config, identity.Request, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, identity.Request{}, err
	}
	req, err := cfg.Request()
	if err != nil {
		return nil, identity.Request{}, err
	}
	return cfg, req, nil
}

// newLogger builds the console logger used for progress output on stderr.
func (o *rootOptions) newLogger(stderr io.Writer) *zap.Logger {
	level := zapcore.InfoLevel
	if o.verbose {
		level = zapcore.DebugLevel
	}
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(stderr), level)
	return zap.New(core)
}

// newAcquirer wires an acquirer for id from the config.
func (o *rootOptions) newAcquirer(cfg *config.Config, id identity.Identity, logger *zap.Logger, extra ...acquire.Option) *acquire.Acquirer {
	opts := []acquire.Option{
		acquire.WithLogger(logger),
		acquire.WithSystem(envSystem{}),
	}
	if cfg.Download.ReleaseBaseURL != "" {
		opts = append(opts, acquire.WithReleaseBaseURL(cfg.Download.ReleaseBaseURL))
	}
	return acquire.New(id, append(opts, extra...)...)
}

// newProber builds a prober honoring the configured fallback directories.
func (o *rootOptions) newProber(cfg *config.Config, logger *zap.Logger) (*probe.Prober, error) {
	dirs, err := cfg.FallbackDirs()
	if err != nil {
		return nil, err
	}
	opts := []probe.Option{probe.WithLogger(logger)}
	if dirs != nil {
		opts = append(opts, probe.WithFallbackDirs(dirs))
	}
	return probe.New(opts...), nil
}

// envSystem routes acquisition environment lookups through getenv.
type envSystem struct{}

func (envSystem) Getenv(key string) string {
	return getenv(key)
}
