package cmd

import (
	"fmt"
	"os"

	"addressable-resources/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "addressable-resources",
	Short: "Addressable Resources Service",
	Long: `Addressable Resources redirects path-based resource loads for a curated
set of keys through asynchronous, reference counted load operations.
Everything else is served by the bundled resource loader.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and logs any error before exiting.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with the development config gives readable timestamps for CLI use.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
