package cli

import (
	"fmt"

	"github.com/glorpus-work/fetchy/pkg/cache"
	"github.com/spf13/cobra"
)

// NewCacheCmd creates the cache command with subcommands
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the download cache",
		Long:  "Clean, show information about, and locate the index and package cache",
	}

	cmd.AddCommand(
		newCacheCleanCmd(),
		newCacheInfoCmd(),
		newCacheDirCmd(),
	)

	return cmd
}

func newCacheCleanCmd() *cobra.Command {
	var (
		all      bool
		indexes  bool
		packages bool
	)

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clean the cache",
		Long:  "Remove cached indexes and package archives to free up disk space",
		RunE: func(cmd *cobra.Command, _ []string) error {
			op, err := cacheOperation()
			if err != nil {
				return err
			}
			msg, err := op.Clean(all, indexes, packages)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Clean all cached files")
	cmd.Flags().BoolVar(&indexes, "indexes", false, "Clean only parsed indexes")
	cmd.Flags().BoolVar(&packages, "packages", false, "Clean only downloaded archives")

	return cmd
}

func newCacheInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cache information",
		Long:  "Display sizes and file counts of the cache",
		RunE: func(cmd *cobra.Command, _ []string) error {
			op, err := cacheOperation()
			if err != nil {
				return err
			}
			info, err := op.GetInfo()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), info)
			return nil
		},
	}
}

func newCacheDirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dir",
		Short: "Show cache directory path",
		RunE: func(cmd *cobra.Command, _ []string) error {
			op, err := cacheOperation()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), op.GetDirectory())
			return nil
		},
	}
}

func cacheOperation() (*cache.Operation, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return cache.NewOperation(cache.NewManager(cfg.GetCacheDir())), nil
}
