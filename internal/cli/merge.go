package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"refmap/internal/app"
)

type mergeOptions struct {
	A      string
	B      string
	Output string
}

func newMergeCommand() *cobra.Command {
	opts := mergeOptions{}
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge two session files into one",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMerge(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.A, "a", "", "First session file")
	cmd.Flags().StringVar(&opts.B, "b", "", "Second session file")
	cmd.Flags().StringVar(&opts.Output, "output", "", "Merged output path")
	return cmd
}

func runMerge(ctx context.Context, opts mergeOptions) error {
	service := newAppService()
	result, err := service.Merge(ctx, app.MergeRequest{
		PathA:      opts.A,
		PathB:      opts.B,
		OutputPath: opts.Output,
	})
	if err != nil {
		return err
	}
	fmt.Printf("merged: %d components, %d pipes, %d mappings -> %s\n",
		result.ComponentCount, result.PipeCount, result.MappingCount, result.OutputPath)
	return nil
}
