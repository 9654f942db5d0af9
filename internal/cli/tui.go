package cli

import (
	"github.com/spf13/cobra"

	"github.com/idilsaglam/clarolist/internal/tui"
)

// NewTUICommand starts the interactive folder and all-tasks views.
func NewTUICommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse and edit folders interactively",
		Args:  exactArgs(0, "tui"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(cmd.Context(), tui.Deps{
				Store:    opts.Store,
				Folders:  opts.Folders,
				Tasks:    opts.Tasks,
				AllTasks: opts.AllTasks(),
			})
		},
	}
}
