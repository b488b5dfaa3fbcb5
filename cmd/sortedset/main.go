// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Command sortedset sorts and inspects keys with a bitmap trie,
// runs a seeded random workload and prints property sheets.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultConfigName = ".sortedset"
	envPrefix         = "SORTEDSET"
)

// globalOptions are the persistent flags of the root command.
type globalOptions struct {
	cfgFile  string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:           "sortedset",
		Short:         "Ordered sets on a 32-way bitmap trie",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "",
		fmt.Sprintf("config file (default is $HOME/%s.yaml)", defaultConfigName))
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "error",
		"Log level: debug, info, warning, error")

	rootCmd.AddCommand(
		newSortCmd(),
		newDumpCmd(),
		newBenchCmd(),
		newSheetCmd(),
	)

	return rootCmd
}

// initConfig use config file and ENV variables if set.
func initConfig(cmd *cobra.Command, opts *globalOptions) error {
	v := viper.New()

	if opts.cfgFile != "" {
		// Use config file from the flag.
		v.SetConfigFile(opts.cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		// Search config in home directory with name ".sortedset" (without extension).
		v.AddConfigPath(home)
		v.SetConfigName(defaultConfigName)
	}

	// Read environment variables that match prefix
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	// If a config file is found, read it in.
	cfgErr := v.ReadInConfig()

	bindFlags(cmd, v)

	// the log level may come from the config
	initLogger(cmd.Flag("log-level").Value.String())

	if cfgErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.cfgFile != "" || !errors.As(cfgErr, &notFound) {
			return errors.Wrap(cfgErr, "read config")
		}
		log.Debugf("no config file: %v", cfgErr)
	}

	return nil
}

func initLogger(level string) {
	ll, err := log.ParseLevel(level)
	if err != nil {
		ll = log.ErrorLevel
	}
	log.SetLevel(ll)
	log.SetFormatter(&log.TextFormatter{DisableColors: false, FullTimestamp: true, PadLevelText: true, DisableQuote: true})
}

// bindFlags applies config and env values to all flags not set on the command line.
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	visit := func(f *pflag.Flag) {
		envVarSuffix := strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(f.Name))
		_ = v.BindEnv(f.Name, fmt.Sprintf("%s_%s", envPrefix, envVarSuffix))

		// Apply the viper config value to the flag when the flag is not set and viper has a value
		if !f.Changed && v.IsSet(f.Name) {
			_ = f.Value.Set(fmt.Sprintf("%v", v.Get(f.Name)))
		}
	}

	cmd.Flags().VisitAll(visit)
	cmd.InheritedFlags().VisitAll(visit)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Error(err)
		stop()
		os.Exit(1)
	}
}
