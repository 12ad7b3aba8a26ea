package export

import (
	"fmt"
	"io"

	"github.com/alimgiray/gcommits/internal/models"
	"github.com/xuri/excelize/v2"
)

const SheetName = "Commits"

var header = []interface{}{"#", "Date", "Time", "Project", "Commits"}

// WriteWorkbook renders rows as a single-sheet xlsx workbook
func WriteWorkbook(w io.Writer, rows []models.DisplayRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{row.ID, row.Date, row.Time, row.ProjectName, row.Commits}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row.ID, err)
		}
	}

	widths := map[string]float64{"A": 6, "B": 12, "C": 8, "D": 28, "E": 80}
	for col, width := range widths {
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return err
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	_, err := f.WriteTo(w)
	return err
}
