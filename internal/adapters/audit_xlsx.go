package adapters

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/xuri/excelize/v2"

	"refmap/internal/types"
)

// XLSXAuditAdapter writes the port mapping audit as a spreadsheet with
// one sheet of mapped ports and one of unmapped ports.
type XLSXAuditAdapter struct{}

func NewXLSXAuditAdapter() XLSXAuditAdapter {
	return XLSXAuditAdapter{}
}

func (a XLSXAuditAdapter) WriteAudit(path string, rows []types.AuditRow) error {
	f := excelize.NewFile()
	mappedSheet := "mapped"
	unmappedSheet := "unmapped"
	f.SetSheetName("Sheet1", mappedSheet)
	f.NewSheet(unmappedSheet)

	for col, name := range auditHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(mappedSheet, cell, name)
		_ = f.SetCellValue(unmappedSheet, cell, name)
	}

	mappedRow := 2
	unmappedRow := 2
	for _, row := range rows {
		sheet := unmappedSheet
		line := unmappedRow
		if row.Column != "" {
			sheet = mappedSheet
			line = mappedRow
		}
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", line), row.ComponentID)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", line), string(row.Type))
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", line), row.CircuitLabel)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", line), row.Port)
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", line), row.Label)
		_ = f.SetCellValue(sheet, fmt.Sprintf("F%d", line), row.RoleKey)
		_ = f.SetCellValue(sheet, fmt.Sprintf("G%d", line), row.FallbackKey)
		_ = f.SetCellValue(sheet, fmt.Sprintf("H%d", line), row.Column)
		if row.Column != "" {
			_ = f.SetCellValue(sheet, fmt.Sprintf("I%d", line), row.ColumnIndex)
		}
		if row.HasValue {
			_ = f.SetCellValue(sheet, fmt.Sprintf("J%d", line), row.Value)
		}
		if row.Column != "" {
			mappedRow++
		} else {
			unmappedRow++
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write audit xlsx").
			WithCause(err)
	}
	return nil
}
