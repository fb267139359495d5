package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/fetchy/internal/logger"
	"github.com/glorpus-work/fetchy/pkg/materializer"
	"github.com/spf13/cobra"
)

// NewExtractCmd creates the extract command.
func NewExtractCmd() *cobra.Command {
	var (
		flags     resolveFlags
		root      string
		printPath bool
	)

	cmd := &cobra.Command{
		Use:   "extract [PACKAGE...]",
		Short: "Materialize a dependency closure into a root directory",
		Long: `Resolve and download the requested packages, unpack them into the root
directory in install order and write the dpkg database for them. Configured
post-resolve and post-materialize hooks run along the way. Maintainer scripts
are not run; their invocations are staged for a later first boot.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args, flags, root, printPath)
		},
	}

	addResolveFlags(cmd, &flags)
	cmd.Flags().StringVarP(&root, "root", "r", "", "target root directory")
	cmd.Flags().BoolVar(&printPath, "print-path", false, "print a PATH value built from the unpacked bin directories")
	_ = cmd.MarkFlagRequired("root")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string, flags resolveFlags, root string, printPath bool) error {
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

	root, err = filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("invalid root %s: %w", root, err)
	}
	m, err := materializer.New(root, materializer.Options{BootstrapShell: cfg.Settings.BootstrapShell})
	if err != nil {
		return err
	}

	result, err := orch.Extract(cmd.Context(), req, m, opts)
	if err != nil {
		return err
	}
	for _, u := range result.Closure.Unresolved {
		logger.Warn("Unresolved dependency", logger.Fields{"dependency": u})
	}

	logger.Success("Extracted packages", logger.Fields{
		"count":   result.Closure.Len(),
		"root":    root,
		"scripts": len(result.Manifest),
	})
	if printPath {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "PATH=%s\n", strings.Join(result.BinDirs, ":"))
	}
	return nil
}
