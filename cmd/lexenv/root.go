package main

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"lexenv/interpreter-go/pkg/driver"
	"lexenv/interpreter-go/pkg/interpreter"
	"lexenv/interpreter-go/pkg/logging"
)

type cliOptions struct {
	configPath string
	envFile    string
	logLevel   string
	verbose    bool
	strict     bool

	stdin  io.Reader
	config *driver.Config
	logger *logrus.Logger
}

func newRootCommand(opts *cliOptions) *cobra.Command {
	root := &cobra.Command{
		Use:               "lexenv",
		Short:             "Evaluate scripts against the lexical environment core and check fixture corpora",
		Version:           driver.EngineVersion,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: opts.setup,
	}
	opts.addFlags(root.PersistentFlags())

	root.AddCommand(
		newRunCommand(opts),
		newParseCommand(opts),
		newNamesCommand(opts),
		newFixtureCommand(opts),
		newFixturesCommand(opts),
		newReplCommand(opts),
	)
	return root
}

func (o *cliOptions) addFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&o.configPath, "config", "c", "", "config file (default ./lexenv.yml, then $XDG_CONFIG_HOME/lexenv/config.yml)")
	flags.StringVar(&o.envFile, "env-file", "", "read LEXENV_* settings from a dotenv file")
	flags.StringVar(&o.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "verbose output")
	flags.BoolVar(&o.strict, "strict", false, "evaluate scripts as strict mode code")
}

// setup resolves the config and installs the logger on the command context.
// Flags take precedence over the config file and environment.
func (o *cliOptions) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := driver.ResolveConfig(o.configPath, o.envFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if o.strict {
		cfg.Strict = true
	}
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, o.verbose)
	if err != nil {
		return errors.Wrap(err, "lexenv")
	}
	o.config = cfg
	o.logger = logger
	if cfg.Path != "" {
		logger.WithField("path", cfg.Path).Debug("loaded config")
	}
	cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
	return nil
}

func (o *cliOptions) newInterpreter(stdout io.Writer) *interpreter.Interpreter {
	return interpreter.NewWithOptions(interpreter.Options{
		Strict:       o.config.Strict,
		MaxDepth:     o.config.MaxDepth,
		MaxCallDepth: o.config.MaxCallDepth,
		Logger:       o.logger,
		Stdout:       stdout,
	})
}
