package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/clarolist/internal/model"
	"github.com/idilsaglam/clarolist/internal/project"
	"github.com/idilsaglam/clarolist/internal/ui"
)

// ListOptions holds flags for the ls command.
type ListOptions struct {
	*RootOptions
	Group bool
}

// NewListCommand prints every task across folders.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List all tasks across folders",
		Args:  exactArgs(0, "ls [--group]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			view := opts.AllTasks()
			items := view.Reload(cmd.Context())
			names := folderNames(view.Document())
			ui.Panel(cmd.OutOrStdout(), allTasksLines(items, names, opts.Group))
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.Group, "group", false, "group output by pending/done")
	return cmd
}

func folderNames(doc model.Document) map[string]string {
	names := make(map[string]string, len(doc))
	for _, f := range doc {
		names[f.ID] = f.Name
	}
	return names
}

func allTasksLines(items []model.FlattenedTask, names map[string]string, group bool) []string {
	t := ui.Current()
	d, p := project.Stats(items)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(t.Title, "All Tasks"),
		ui.C(t.Success, t.SymDone), d,
		ui.C(t.Pending, t.SymPending), p,
		ui.C(t.Accent, "Total"), len(items),
	)

	lines := []string{header, ui.C(t.Muted, ui.ProgressBar(d, d+p, 28)), ""}
	if group {
		pend, done := project.Split(items)
		lines = append(lines, ui.C(t.Accent, "Pending"))
		lines = append(lines, taskLines(pend, names, "(none)")...)
		lines = append(lines, "", ui.C(t.Accent, "Done"))
		lines = append(lines, taskLines(done, names, "(none)")...)
	} else {
		lines = append(lines, taskLines(items, names, "No tasks found")...)
	}
	lines = append(lines, "", ui.C(t.Muted, "Tip: add with `claro add <folder> \"Buy milk\"`"))
	return lines
}

func taskLines(items []model.FlattenedTask, names map[string]string, empty string) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{ui.C(t.Muted, empty)}
	}
	out := make([]string, 0, len(items))
	for i, it := range items {
		box, color := t.BoxUnchecked, t.Muted
		if it.Completed {
			box, color = t.BoxChecked, t.Success
		}
		out = append(out, fmt.Sprintf("%s %s %s %s",
			ui.Dim(fmt.Sprintf("%2d.", i+1)),
			ui.C(color, box),
			ui.Truncate(it.Name, 80),
			ui.C(t.Muted, "· "+names[it.FolderID]),
		))
	}
	return out
}
