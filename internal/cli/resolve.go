package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/glorpus-work/fetchy/internal/logger"
	"github.com/spf13/cobra"
)

// NewResolveCmd creates the resolve command.
func NewResolveCmd() *cobra.Command {
	var flags resolveFlags

	cmd := &cobra.Command{
		Use:   "resolve [PACKAGE...]",
		Short: "Print the dependency closure of packages",
		Long: `Resolve the requested packages against the configured archive and print
the closure in install order, one "name version architecture" line per package.
Packages listed in the configuration are always included.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, args, flags)
		},
	}

	addResolveFlags(cmd, &flags)
	return cmd
}

func addResolveFlags(cmd *cobra.Command, flags *resolveFlags) {
	cmd.Flags().StringSliceVarP(&flags.exclude, "exclude", "x", nil, "package or .txt file of packages to leave out")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "fail on unresolved dependencies")
}

func runResolve(cmd *cobra.Command, args []string, flags resolveFlags) error {
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
	for _, u := range closure.Unresolved {
		logger.Warn("Unresolved dependency", logger.Fields{"dependency": u})
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, TabWidth, ' ', 0)
	for _, pkg := range closure.Packages() {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", pkg.Name, pkg.Version, pkg.Architecture)
	}
	return w.Flush()
}
