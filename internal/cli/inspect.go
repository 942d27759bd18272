package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"refmap/internal/app"
	"refmap/internal/types"
)

type inspectOptions struct {
	Session string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize a session after attribute propagation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Session, "session", "", "Session file path")
	_ = viper.BindPFlag("session", cmd.Flags().Lookup("session"))
	return cmd
}

func runInspect(ctx context.Context, cmd *cobra.Command, opts inspectOptions) error {
	service := newAppService()
	result, err := service.Inspect(ctx, app.InspectRequest{
		SessionPath: resolveString(cmd, opts.Session, "session", "session"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("session: %s (refrigerant %s)\n", result.Name, result.Refrigerant)
	fmt.Printf("components: %d, pipes: %d, mapped roles: %d\n",
		result.ComponentCount, result.PipeCount, result.MappedRoles)

	typeNames := make([]string, 0, len(result.TypeCounts))
	for t := range result.TypeCounts {
		typeNames = append(typeNames, string(t))
	}
	sort.Strings(typeNames)
	for _, name := range typeNames {
		fmt.Printf("  %s: %d\n", name, result.TypeCounts[types.ComponentType(name)])
	}

	fmt.Printf("resolved: fluid %d/%d, pressure %d/%d, circuit %d/%d\n",
		result.ResolvedFluid, result.PipeCount,
		result.ResolvedSide, result.PipeCount,
		result.LabeledCircuit, result.PipeCount)
	for _, conflict := range result.Conflicts {
		fmt.Printf("  conflict on %s (%s): %s vs %s\n",
			conflict.PipeID, conflict.Attribute, conflict.Left, conflict.Right)
	}
	return nil
}
