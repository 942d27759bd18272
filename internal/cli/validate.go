package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"refmap/internal/app"
)

type validateOptions struct {
	Session string
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a session file and report structural findings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Session, "session", "", "Session file path")
	_ = viper.BindPFlag("session", cmd.Flags().Lookup("session"))
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, opts validateOptions) error {
	service := newAppService()
	result, err := service.Validate(ctx, app.ValidateRequest{
		SessionPath: resolveString(cmd, opts.Session, "session", "session"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("validated: %s (%d components, %d pipes)\n", result.Name, result.ComponentCount, result.PipeCount)
	for _, finding := range result.Findings {
		fmt.Printf("  finding: %s\n", finding)
	}
	for _, dup := range result.Duplicates {
		fmt.Printf("  duplicate column %s: %v\n", dup.Column, dup.Roles)
	}
	return nil
}
