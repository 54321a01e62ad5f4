// Package commands implements the CLI commands for tablecsv.
package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/tablecsv/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "tablecsv <url|file|->",
	Short: "Convert HTML tables to CSV",
	Long: `tablecsv downloads an HTML page (or reads a file or stdin), finds every
<table> in it and prints the rows as delimiter-separated text.

Examples:
  # Convert all tables on a page
  tablecsv "https://example.com/hosts.html"

  # Pipe-separated, no header rows, only columns 2 and 1
  tablecsv -d '|' --no-header --show-fields 2,1 hosts.html

  # Quote only the first column
  tablecsv --quote-columns 1 hosts.html

  # Only tables inside #content, rendered with headless Chrome, as JSON
  curl -s https://example.com | tablecsv --selector "#content" --format json -`,
	Args:          cobra.ExactArgs(1),
	RunE:          runConvert,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// configErr holds a failure to read an explicitly requested config file.
var configErr error

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.tablecsv.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "only log errors")
	rootCmd.PersistentFlags().Bool("log-json", false, "write logs to stderr as JSON")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("log_json", rootCmd.PersistentFlags().Lookup("log-json"))

	rootCmd.Version = version.String()
	rootCmd.SetVersionTemplate("tablecsv {{.Version}}\n")
}

func initConfig() {
	configErr = nil
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".tablecsv")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("TABLECSV")
	viper.AutomaticEnv()

	// A missing default config file is fine; a missing --config file is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			configErr = fmt.Errorf("failed to read config: %w", err)
		}
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logError prints an error message to stderr.
func logError(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: "+format+"\n", args...)
}
