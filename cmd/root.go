/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/josephgoksu/DayWing/internal/config"
	"github.com/josephgoksu/DayWing/internal/logger"
	"github.com/josephgoksu/DayWing/types"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables debug logging.
	verbose bool
	// jsonOutput switches every command to machine-readable output.
	jsonOutput bool
	// version is the application version.
	version = "0.1.0"

	// appConfig is populated before any subcommand runs.
	appConfig types.AppConfig
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "daywing",
	Short: "DayWing - tasks, habits and a self-cleaning logbook",
	Long: `DayWing keeps today's tasks and habits in one agenda.

Completed tasks are archived into the logbook after 91 days and purged after
a year; run 'daywing housekeep' to apply the retention policy.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(cmd)
		cfg, err := config.Load(viper.GetViper(), cfgFile)
		if err != nil {
			return err
		}
		appConfig = cfg
		logger.SetBasePath(cfg.Data.Dir)
		logger.SetVersion(version)
		logger.SetCommand(cmd.CommandPath() + " " + strings.Join(args, " "))
		slog.Debug("configuration loaded", "data_dir", cfg.Data.Dir)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// GetVersion returns the application version.
func GetVersion() string {
	return version
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.daywing/.daywing.yaml or ~/.daywing/.daywing.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output JSON")
	rootCmd.PersistentFlags().String("data-dir", "", "directory holding the database")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("data.dir", rootCmd.PersistentFlags().Lookup("data-dir"))
}

// setupLogging routes slog to stderr. Debug records only appear with --verbose.
func setupLogging(cmd *cobra.Command) {
	level := slog.LevelWarn
	if verbose || viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
