package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-composite/composite"
	"github.com/robert-malhotra/go-composite/internal/config"
	"github.com/robert-malhotra/go-composite/internal/logging"
	"github.com/robert-malhotra/go-composite/store"
)

// app is the state shared by all subcommands.
type app struct {
	configPath string
	storePath  string
	logLevel   string
	logFormat  string
	noColor    bool

	cfg config.Config
	log zerolog.Logger
}

var errorText = color.New(color.FgRed).SprintFunc()

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "treeinfo",
		Short:         "Build, store and inspect composite data trees",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "treeinfo.yaml", "configuration file")
	flags.StringVar(&a.storePath, "store", "", "snapshot database (overrides the config file)")
	flags.StringVar(&a.logLevel, "log-level", "", "debug, info, warn, error or off")
	flags.StringVar(&a.logFormat, "log-format", "", "console or json")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newDemoCmd(a),
		newShowCmd(a),
		newExtractCmd(a),
		newCellsCmd(a),
		newListCmd(a),
		newRmCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.storePath != "" {
		cfg.Store = a.storePath
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.logFormat != "" {
		cfg.LogFormat = a.logFormat
	}
	a.cfg = cfg

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrapf(err, "%q", cfg.LogLevel)
	}
	format, err := logging.ParseFormat(cfg.LogFormat)
	if err != nil {
		return errors.Wrapf(err, "%q", cfg.LogFormat)
	}
	a.log = logging.New(cmd.ErrOrStderr(), level, format)
	composite.SetLogger(logging.Component(a.log, "composite"))

	if a.noColor {
		color.NoColor = true
	}
	return nil
}

func (a *app) openStore(readOnly bool) (*store.Store, error) {
	opts := []store.Option{
		store.WithCompression(a.cfg.CompressEnabled()),
		store.WithLogger(logging.Component(a.log, "store")),
	}
	if readOnly {
		if _, err := os.Stat(a.cfg.Store); err != nil {
			return nil, errors.Wrapf(err, "store %s", a.cfg.Store)
		}
		opts = append(opts, store.WithReadOnly())
	}
	return store.Open(a.cfg.Store, opts...)
}
