package adapters

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"refmap/internal/types"
)

var auditHeader = []string{
	"component_id",
	"type",
	"circuit",
	"port",
	"label",
	"role_key",
	"fallback_key",
	"column",
	"column_index",
	"value",
}

type CSVAuditAdapter struct{}

func NewCSVAuditAdapter() CSVAuditAdapter {
	return CSVAuditAdapter{}
}

func (a CSVAuditAdapter) WriteAudit(path string, rows []types.AuditRow) error {
	file, err := os.Create(path)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create audit csv").
			WithCause(err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(auditHeader); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write audit csv header").
			WithCause(err)
	}
	for _, row := range rows {
		if err := writer.Write(auditRecord(row)); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to write audit csv row").
				WithCause(err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to flush audit csv").
			WithCause(err)
	}
	return nil
}

func auditRecord(row types.AuditRow) []string {
	columnIndex := ""
	value := ""
	if row.Column != "" {
		columnIndex = strconv.Itoa(row.ColumnIndex)
	}
	if row.HasValue {
		value = fmt.Sprintf("%g", row.Value)
	}
	return []string{
		row.ComponentID,
		string(row.Type),
		row.CircuitLabel,
		row.Port,
		row.Label,
		row.RoleKey,
		row.FallbackKey,
		row.Column,
		columnIndex,
		value,
	}
}
