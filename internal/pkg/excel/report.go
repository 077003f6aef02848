package excel

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the time report.
const SheetName = "Time Report"

// ContentType is the MIME type of the rendered workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const noActivity = "No activity"

type column struct {
	header string
	width  float64
}

var columns = []column{
	{"Employee Code", 15},
	{"Name", 20},
	{"Date", 15},
	{"Day", 15},
	{"Clock In", 12},
	{"Clock Out", 12},
	{"Total Hours", 12},
}

// RenderTimeReport writes rows into a single-sheet workbook. Clock times are
// shown in loc. An empty row set produces one "No activity" line.
func RenderTimeReport(rows []report.Row, loc *time.Location) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	stripeStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9E1F2"}},
	})
	if err != nil {
		return nil, fmt.Errorf("stripe style: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c.header
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(SheetName, name, name, c.width); err != nil {
			return nil, fmt.Errorf("column width: %w", err)
		}
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(columns))
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	lines := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, []interface{}{
			r.EmployeeCode,
			r.EmployeeName,
			r.Date.Format(report.DateLayout),
			r.Date.Weekday().String(),
			report.FormatClock(&r.ClockIn, loc),
			report.FormatClock(r.ClockOut, loc),
			report.FormatDuration(r.DurationMinutes),
		})
	}
	if len(lines) == 0 {
		lines = append(lines, []interface{}{noActivity})
	}

	for i, line := range lines {
		rowNum := i + 2
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(SheetName, cell, &line); err != nil {
			return nil, fmt.Errorf("write row %d: %w", rowNum, err)
		}
		if rowNum%2 == 0 {
			end, _ := excelize.CoordinatesToCellName(len(columns), rowNum)
			if err := f.SetCellStyle(SheetName, cell, end, stripeStyle); err != nil {
				return nil, fmt.Errorf("style row %d: %w", rowNum, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
