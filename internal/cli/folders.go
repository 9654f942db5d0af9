package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/clarolist/internal/model"
	"github.com/idilsaglam/clarolist/internal/ui"
)

// NewFoldersCommand lists folders.
func NewFoldersCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "folders",
		Aliases: []string{"lf"},
		Short:   "List folders",
		Args:    exactArgs(0, "folders"),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := opts.Folders.Load(cmd.Context())
			ui.Panel(cmd.OutOrStdout(), folderLines(doc))
			return nil
		},
	}
}

// NewFolderCommand groups folder mutations.
func NewFolderCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folder",
		Short: "Create, rename or delete folders",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add <name...>",
		Short: "Create a folder",
		Args:  minArgs(1, "folder add <name...>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc := opts.Folders.Load(ctx)
			next, err := opts.Folders.CreateOrRename(ctx, doc, "", strings.Join(args, " "))
			if err != nil {
				return err
			}
			created := next[len(next)-1]
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("created folder %s (%s)", created.Name, shortID(created.ID)))
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "rename <folder> <name...>",
		Short: "Rename a folder",
		Args:  minArgs(2, "folder rename <folder> <name...>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc := opts.Folders.Load(ctx)
			f, err := resolveFolder(doc, args[0])
			if err != nil {
				return err
			}
			if _, err := opts.Folders.CreateOrRename(ctx, doc, f.ID, strings.Join(args[1:], " ")); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "renamed")
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "rm <folder>",
		Short: "Delete a folder and all of its tasks",
		Args:  exactArgs(1, "folder rm <folder>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc := opts.Folders.Load(ctx)
			f, err := resolveFolder(doc, args[0])
			if err != nil {
				return err
			}
			if _, err := opts.Folders.Delete(ctx, doc, f.ID); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("removed folder %s and %d task(s)", f.Name, len(f.Tasks)))
			return nil
		},
	})
	return cmd
}

func folderLines(doc model.Document) []string {
	t := ui.Current()
	lines := []string{
		fmt.Sprintf("%s  %s %d", ui.C(t.Title, "Folders"), ui.C(t.Accent, "Total"), len(doc)),
		"",
	}
	if len(doc) == 0 {
		return append(lines, ui.C(t.Muted, "no folders"))
	}
	for i, f := range doc {
		done := 0
		for _, tk := range f.Tasks {
			if tk.Completed {
				done++
			}
		}
		lines = append(lines, fmt.Sprintf("%s %s %s",
			ui.Dim(fmt.Sprintf("%2d.", i+1)),
			ui.FolderLabel(ui.Truncate(f.Name, 60)),
			ui.C(t.Muted, fmt.Sprintf("%d/%d  %s", done, len(f.Tasks), shortID(f.ID))),
		))
	}
	return lines
}
