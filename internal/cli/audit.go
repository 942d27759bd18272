package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"refmap/internal/app"
)

type auditOptions struct {
	Session string
	CSV     string
	Output  string
	Format  string
}

func newAuditCommand() *cobra.Command {
	opts := auditOptions{}
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Export the port mapping audit table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAudit(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Session, "session", "", "Session file path")
	cmd.Flags().StringVar(&opts.CSV, "csv", "", "Sensor data CSV (default: the session's recorded path)")
	cmd.Flags().StringVar(&opts.Output, "output", "", "Audit output path")
	cmd.Flags().StringVar(&opts.Format, "format", "csv", "Audit output format (csv or xlsx)")
	_ = viper.BindPFlag("session", cmd.Flags().Lookup("session"))
	_ = viper.BindPFlag("csv", cmd.Flags().Lookup("csv"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("format", cmd.Flags().Lookup("format"))
	return cmd
}

func runAudit(ctx context.Context, cmd *cobra.Command, opts auditOptions) error {
	service := newAppService()
	result, err := service.Audit(ctx, app.AuditRequest{
		SessionPath: resolveString(cmd, opts.Session, "session", "session"),
		CSVPath:     resolveString(cmd, opts.CSV, "csv", "csv"),
		OutputPath:  resolveString(cmd, opts.Output, "output", "output"),
		Format:      resolveString(cmd, opts.Format, "format", "format"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("audited %d ports, %d mapped\n", len(result.Rows), result.Mapped)
	if result.OutputPath != "" {
		fmt.Printf("written: %s\n", result.OutputPath)
	}
	return nil
}
