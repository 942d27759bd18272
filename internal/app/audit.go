package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"refmap/internal/core"
	"refmap/internal/ports"
	"refmap/internal/types"
)

// Audit enumerates every port of the network with its role keys and
// mapped column, joins in the current readings when sensor data is
// available, and optionally writes the table as CSV or XLSX.
func (s Service) Audit(ctx context.Context, req AuditRequest) (AuditResult, error) {
	path := strings.TrimSpace(req.SessionPath)
	if path == "" {
		return AuditResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("session path is required")
	}

	n, doc, _, err := s.loadSession(ctx, path)
	if err != nil {
		return AuditResult{}, err
	}
	s.recompute(ctx, n)

	values, err := s.openValues(ctx, req.CSVPath, doc)
	if err != nil {
		return AuditResult{}, err
	}
	rows := buildAuditRows(n, values, doc.Aggregation)

	mapped := 0
	for _, row := range rows {
		if row.Column != "" {
			mapped++
		}
	}

	outputPath := strings.TrimSpace(req.OutputPath)
	if outputPath != "" {
		writer, err := s.auditWriter(req.Format)
		if err != nil {
			return AuditResult{}, err
		}
		if err := writer.WriteAudit(outputPath, rows); err != nil {
			return AuditResult{}, err
		}
	}
	return AuditResult{Rows: rows, Mapped: mapped, OutputPath: outputPath}, nil
}

// openValues loads the sensor data file, preferring the explicit
// request path over the one recorded in the session. No path at all is
// fine: the audit then carries mappings without readings.
func (s Service) openValues(ctx context.Context, override string, doc types.SessionDocument) (ports.ValueProviderPort, error) {
	csvPath := strings.TrimSpace(override)
	if csvPath == "" {
		csvPath = strings.TrimSpace(doc.CSVPath)
	}
	if csvPath == "" {
		log.Ctx(ctx).Debug().Msg("no sensor data file, audit values omitted")
		return nil, nil
	}
	return s.Values(csvPath)
}

func (s Service) auditWriter(format string) (ports.AuditWriterPort, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "csv":
		return s.AuditCSV, nil
	case "xlsx":
		return s.AuditXLSX, nil
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("audit format must be csv or xlsx")
	}
}

func buildAuditRows(n *core.Network, values ports.ValueProviderPort, aggregation types.Aggregation) []types.AuditRow {
	if aggregation == "" {
		aggregation = types.AggregationAverage
	}
	entries := core.EnumeratePorts(n)
	rows := make([]types.AuditRow, 0, len(entries))
	for _, entry := range entries {
		row := types.AuditRow{PortEntry: entry}
		if entry.Column != "" && values != nil {
			if idx, ok := values.ColumnIndex(entry.Column); ok {
				row.ColumnIndex = idx
			}
			if value, ok := values.Value(entry.Column, aggregation); ok {
				row.Value = value
				row.HasValue = true
			}
		}
		rows = append(rows, row)
	}
	return rows
}
