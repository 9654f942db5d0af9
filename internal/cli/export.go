package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/clarolist/internal/store/jsonstore"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Format string
}

// NewExportCommand writes the whole document to stdout.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the stored document",
		Args:  exactArgs(0, "export [--format json|yaml]"),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.Format != "json" && opts.Format != "yaml" {
				return usagef("invalid format %q: must be json or yaml", opts.Format)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := opts.Folders.Load(cmd.Context())
			var (
				b   []byte
				err error
			)
			switch opts.Format {
			case "yaml":
				b, err = yaml.Marshal(doc.Clone())
			default:
				b, err = jsonstore.Encode(doc)
			}
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return err
		},
	}
	cmd.Flags().StringVar(&opts.Format, "format", "json", "output format (json|yaml)")
	return cmd
}
