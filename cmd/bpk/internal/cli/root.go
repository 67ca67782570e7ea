package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/somfy-oss/bpk/internal/bpkconfig"
	"github.com/somfy-oss/bpk/internal/version"
)

var (
	logLevelFlag string
	configFile   string
	log          = logrus.New()
)

// NewRootCmd builds the bpk command tree: create, extract, list,
// list-types, check, matching mkbpk.c's mode set one-for-one.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "bpk",
		Short:   "Package, inspect, and verify BPK firmware containers",
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initLogging()
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&configFile, "config", "", "optional config file (yaml/json/toml)")

	root.AddCommand(newCreateCmd())
	root.AddCommand(newExtractCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newListTypesCmd())
	root.AddCommand(newCheckCmd())

	return root
}

func initLogging() error {
	v := viper.New()
	if logLevelFlag != "" {
		v.Set("log_level", logLevelFlag)
	}
	cfg, err := bpkconfig.Load(v, configFile)
	if err != nil {
		return err
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return nil
}
