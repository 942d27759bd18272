package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"refmap/internal/app"
)

type mapOptions struct {
	Session string
	Role    string
	Column  string
	Remove  bool
}

func newMapCommand() *cobra.Command {
	opts := mapOptions{}
	cmd := &cobra.Command{
		Use:   "map",
		Short: "Map a sensor column to a role key, or remove a mapping",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMap(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Session, "session", "", "Session file path")
	cmd.Flags().StringVar(&opts.Role, "role", "", "Role key, e.g. Compressor.comp-1.SP")
	cmd.Flags().StringVar(&opts.Column, "column", "", "Sensor column name")
	cmd.Flags().BoolVar(&opts.Remove, "remove", false, "Remove the mapping instead of installing one")
	_ = viper.BindPFlag("session", cmd.Flags().Lookup("session"))
	return cmd
}

func runMap(ctx context.Context, cmd *cobra.Command, opts mapOptions) error {
	service := newAppService()
	result, err := service.MapRole(ctx, app.MapRequest{
		SessionPath: resolveString(cmd, opts.Session, "session", "session"),
		RoleKey:     opts.Role,
		Column:      opts.Column,
		Remove:      opts.Remove,
	})
	if err != nil {
		return err
	}
	if opts.Remove {
		fmt.Printf("unmapped %s (%d mappings remain)\n", opts.Role, result.MappingCount)
		return nil
	}
	fmt.Printf("mapped %s -> %s (%d mappings)\n", opts.Role, opts.Column, result.MappingCount)
	for _, displaced := range result.Displaced {
		fmt.Printf("  displaced: %s\n", displaced)
	}
	return nil
}
