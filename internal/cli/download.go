package cli

import (
	"fmt"
	"path/filepath"

	"github.com/glorpus-work/fetchy/internal/logger"
	"github.com/glorpus-work/fetchy/pkg/fsutil"
	"github.com/spf13/cobra"
)

// NewDownloadCmd creates the download command.
func NewDownloadCmd() *cobra.Command {
	var (
		flags resolveFlags
		dest  string
	)

	cmd := &cobra.Command{
		Use:   "download [PACKAGE...]",
		Short: "Download the archives of a dependency closure",
		Long:  "Resolve the requested packages and copy every archive of the closure into a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDownload(cmd, args, flags, dest)
		},
	}

	addResolveFlags(cmd, &flags)
	cmd.Flags().StringVarP(&dest, "dest", "d", "", "directory to copy archives into")
	_ = cmd.MarkFlagRequired("dest")

	return cmd
}

func runDownload(cmd *cobra.Command, args []string, flags resolveFlags, dest string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	orch, err := newOrchestrator(cfg)
	if err != nil {
		return err
	}
	req, opts, err := buildRequest(cfg, args, flags)
	if err != nil {
		return err
	}

	closure, err := orch.Resolve(cmd.Context(), req, opts)
	if err != nil {
		return err
	}
	archives, err := orch.Download(cmd.Context(), closure, opts)
	if err != nil {
		return err
	}

	if err := fsutil.EnsureDir(dest); err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	for _, pkg := range closure.Packages() {
		target := filepath.Join(dest, filepath.Base(pkg.Filename))
		if err := fsutil.Copy(archives[pkg.Name], target); err != nil {
			return fmt.Errorf("failed to copy %s: %w", pkg.Name, err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), target)
	}

	logger.Success("Downloaded packages", logger.Fields{"count": closure.Len(), "dest": dest})
	return nil
}
