package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/glorpus-work/fetchy/internal/cli"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	noColor    bool
	logLevel   string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}

	cancel()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetchy",
		Short: "Resolve and unpack Debian package closures without dpkg",
		Long: `fetchy builds root filesystems from Debian and Ubuntu archives:
- resolve: compute the dependency closure of a package set
- download: fetch the archives of a closure
- extract: unpack a closure into a directory with a synthesized dpkg database`,
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: auto-detect)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	// Set up CLI pkg variables
	cli.ConfigPath = &configPath
	cli.Verbose = &verbose
	cli.NoColor = &noColor
	cli.LogLevel = &logLevel

	cmd.AddCommand(
		cli.NewResolveCmd(),
		cli.NewDownloadCmd(),
		cli.NewExtractCmd(),
		cli.NewPurgeScriptCmd(),
		cli.NewConfigCmd(),
		cli.NewCacheCmd(),
		cli.NewHookCmd(),
		cli.NewVersionCmd(),
	)

	return cmd
}
