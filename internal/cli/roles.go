package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"refmap/internal/app"
)

type rolesOptions struct {
	Session string
	Roles   string
}

func newRolesCommand() *cobra.Command {
	opts := rolesOptions{}
	cmd := &cobra.Command{
		Use:   "roles",
		Short: "Resolve the required calculation roles to sensor columns",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRoles(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Session, "session", "", "Session file path")
	cmd.Flags().StringVar(&opts.Roles, "roles", "", "Roles catalog YAML (default: built-in catalog)")
	_ = viper.BindPFlag("session", cmd.Flags().Lookup("session"))
	_ = viper.BindPFlag("roles", cmd.Flags().Lookup("roles"))
	return cmd
}

func runRoles(ctx context.Context, cmd *cobra.Command, opts rolesOptions) error {
	service := newAppService()
	result, err := service.RequiredRoles(ctx, app.RolesRequest{
		SessionPath: resolveString(cmd, opts.Session, "session", "session"),
		RolesPath:   resolveString(cmd, opts.Roles, "roles", "roles"),
	})
	if err != nil {
		return err
	}
	for _, row := range result.Rows {
		column := row.Column
		if column == "" {
			column = "-"
		}
		fmt.Printf("%-12s %s.%s -> %s\n", row.Role, row.Type, row.Port, column)
	}
	if len(result.Missing) > 0 {
		fmt.Printf("missing: %v\n", result.Missing)
	}
	return nil
}
