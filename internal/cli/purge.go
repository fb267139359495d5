package cli

import (
	"fmt"
	"os"

	"github.com/glorpus-work/fetchy/internal/logger"
	"github.com/glorpus-work/fetchy/pkg/materializer"
	"github.com/spf13/cobra"
)

// NewPurgeScriptCmd creates the purge-script command.
func NewPurgeScriptCmd() *cobra.Command {
	var (
		out  string
		root string
	)

	cmd := &cobra.Command{
		Use:   "purge-script PACKAGE...",
		Short: "Generate a script that purges packages",
		Long: `Render a shell script with one dpkg purge per package. Base system packages
are purged last, in an order that keeps the purge tools working.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(); err != nil {
				return err
			}
			switch {
			case root != "":
				path, err := materializer.WriteRemovalScript(root, args)
				if err != nil {
					return err
				}
				logger.Success("Removal script written", logger.Fields{"path": path})
			case out != "":
				if err := os.WriteFile(out, []byte(materializer.RemovalScript(args)), RemovalScriptMode); err != nil {
					return fmt.Errorf("failed to write %s: %w", out, err)
				}
				logger.Success("Removal script written", logger.Fields{"path": out})
			default:
				_, _ = fmt.Fprint(cmd.OutOrStdout(), materializer.RemovalScript(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write the script to a file")
	cmd.Flags().StringVar(&root, "root", "", "write the script into a materialized root")
	cmd.MarkFlagsMutuallyExclusive("out", "root")

	return cmd
}
