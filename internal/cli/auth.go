package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/clarolist/internal/config"
	"github.com/idilsaglam/clarolist/internal/ui"
)

// NewAuthCommand manages the password used by the redis backend.
func NewAuthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage redis backend credentials",
		// credentials never need the store
		PersistentPreRunE:  func(cmd *cobra.Command, args []string) error { return nil },
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error { return nil },
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "login",
		Short: "Save the redis password (read from stdin)",
		Args:  exactArgs(0, "auth login"),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), "Paste your redis password: ")
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && strings.TrimSpace(line) == "" {
				return fmt.Errorf("read password: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			if err := config.SaveCredentials(line); err != nil {
				return fmt.Errorf("save password: %w", err)
			}
			ui.OK(cmd.OutOrStdout(), "saved")
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "logout",
		Short: "Forget the saved redis password",
		Args:  exactArgs(0, "auth logout"),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _ := config.LoadCredentials()
			if c != nil && c.Source == "env" {
				ui.OK(cmd.OutOrStdout(), "password is provided by CLARO_REDIS_PASSWORD (nothing to delete)")
				return nil
			}
			if err := config.DeleteCredentials(); err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			ui.OK(cmd.OutOrStdout(), "logged out")
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show where the redis password comes from",
		Args:  exactArgs(0, "auth status"),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			c, err := config.LoadCredentials()
			if err != nil {
				return err
			}
			if c == nil {
				fmt.Fprintln(out, ui.C(ui.Current().Muted, "no redis password saved"))
				fmt.Fprintln(out, "Run: claro auth login")
				return nil
			}
			fmt.Fprintf(out, "source: %s\n", c.Source)
			if !c.CreatedAt.IsZero() {
				fmt.Fprintf(out, "saved: %s\n", c.CreatedAt.Format("2006-01-02 15:04:05Z07:00"))
			}
			fmt.Fprintln(out, "env override: CLARO_REDIS_PASSWORD")
			return nil
		},
	})
	return cmd
}
