package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/clarolist/internal/ui"
)

// NewAddCommand adds a task to a folder.
func NewAddCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <folder> <name...>",
		Short: "Add a task to a folder",
		Example: `  claro add 2 "Pay rent"
  claro add 3f2a buy milk`,
		Args: minArgs(2, "add <folder> <name...>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc := opts.Folders.Load(ctx)
			f, err := resolveFolder(doc, args[0])
			if err != nil {
				return err
			}
			if _, err := opts.Tasks.AddTask(ctx, doc, f.ID, strings.Join(args[1:], " ")); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "added to "+f.Name)
			return nil
		},
	}
}

// NewDoneCommand toggles a task's completion.
func NewDoneCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "done <folder> <task>",
		Short: "Toggle a task's completed flag",
		Args:  exactArgs(2, "done <folder> <task>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc := opts.Folders.Load(ctx)
			f, err := resolveFolder(doc, args[0])
			if err != nil {
				return err
			}
			tk, err := resolveTask(f, args[1])
			if err != nil {
				return err
			}
			if _, err := opts.Tasks.ToggleCompleted(ctx, doc, tk.ID, f.ID); err != nil {
				return err
			}
			state := "done"
			if tk.Completed {
				state = "pending"
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("%s: %s", state, tk.Name))
			return nil
		},
	}
}

// NewRemoveCommand deletes a task.
func NewRemoveCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <folder> <task>",
		Short: "Delete a task",
		Args:  exactArgs(2, "rm <folder> <task>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc := opts.Folders.Load(ctx)
			f, err := resolveFolder(doc, args[0])
			if err != nil {
				return err
			}
			tk, err := resolveTask(f, args[1])
			if err != nil {
				return err
			}
			if _, err := opts.Tasks.DeleteTask(ctx, doc, tk.ID, f.ID); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "removed "+tk.Name)
			return nil
		},
	}
}

// NewRenameCommand renames a task.
func NewRenameCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <folder> <task> <name...>",
		Short: "Rename a task",
		Args:  minArgs(3, "rename <folder> <task> <name...>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc := opts.Folders.Load(ctx)
			f, err := resolveFolder(doc, args[0])
			if err != nil {
				return err
			}
			tk, err := resolveTask(f, args[1])
			if err != nil {
				return err
			}
			if _, err := opts.Tasks.RenameTask(ctx, doc, tk.ID, f.ID, strings.Join(args[2:], " ")); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "renamed")
			return nil
		},
	}
}
