package cli

import (
	"fmt"

	"github.com/glorpus-work/fetchy/pkg/hook"
	"github.com/spf13/cobra"
)

// NewHookCmd creates the hook command.
func NewHookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hook",
		Short: "Work with hook scripts",
		Long:  "Hook scripts are Tengo programs listed under hooks in the configuration",
	}

	cmd.AddCommand(newHookTemplateCmd(), newHookTypesCmd())
	return cmd
}

func newHookTemplateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "template TYPE",
		Short: "Print a starter script for a hook type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := hook.HookType(args[0])
			tmpl := hook.HookTemplate(t)
			if tmpl == "" {
				return fmt.Errorf("%w: %s", hook.ErrUnsupportedHookType, t)
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), tmpl)
			return nil
		},
	}
}

func newHookTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List hook types",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, t := range hook.ValidTypes() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), t)
			}
		},
	}
}
