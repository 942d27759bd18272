package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"refmap/internal/app"
)

type resolveOptions struct {
	Session string
	Output  string
}

func newResolveCommand() *cobra.Command {
	opts := resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Recompute pipe attributes and write the session back",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Session, "session", "", "Session file path")
	cmd.Flags().StringVar(&opts.Output, "output", "", "Output path (default: overwrite the session)")
	_ = viper.BindPFlag("session", cmd.Flags().Lookup("session"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	return cmd
}

func runResolve(ctx context.Context, cmd *cobra.Command, opts resolveOptions) error {
	service := newAppService()
	result, err := service.Resolve(ctx, app.ResolveRequest{
		SessionPath: resolveString(cmd, opts.Session, "session", "session"),
		OutputPath:  resolveString(cmd, opts.Output, "output", "output"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("resolved in %d passes (%d updates, %d conflicts): %s\n",
		result.Passes, result.Updates, len(result.Conflicts), result.OutputPath)
	for _, conflict := range result.Conflicts {
		fmt.Printf("  conflict on %s (%s): %s vs %s\n",
			conflict.PipeID, conflict.Attribute, conflict.Left, conflict.Right)
	}
	return nil
}
