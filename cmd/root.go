// cmd/root.go
// Package cmd defines the peflow command tree. Flags are bound through Viper
// so every setting can also come from a peflow.yaml or a PEFLOW_* environment
// variable.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "peflow",
	Short: "Prime-editing screen workflow toolkit",
	Long: `peflow manages a prime-editing screen around its design database:
it generates oligo ordering sheets and quantifier batch settings from the
designs, aggregates the quantifier's per-amplicon editing outcomes into
per-design summaries, and exports recorded results.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		return initConfig()
	},
}

// Execute runs the command tree and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringP("db", "d", "", "path to the design database (sqlite)")
	pf.String("conventions", "", "YAML file overriding the built-in sample naming conventions")
	pf.String("categories", "", "YAML file overriding the built-in outcome category table")
	pf.Int("precision", 6, "decimal places for fractions in emitted tables")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
	cobra.CheckErr(viper.BindPFlags(pf))
}

func initConfig() error {
	viper.SetEnvPrefix("PEFLOW")
	viper.AutomaticEnv()

	viper.SetConfigName("peflow")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}
	return nil
}

func logger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
