package tablewriter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"framepick/domain/trajectory"
)

const sheetName = "FrameTable"

// WriteXLSX exports the merged frame table as an Excel workbook, one column
// per series, for collaborators who inspect runs in spreadsheets.
func WriteXLSX(path string, table *trajectory.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	if err := setCell(f, 1, 1, "Frame"); err != nil {
		return err
	}
	for j, name := range table.SeriesNames {
		if err := setCell(f, j+2, 1, name); err != nil {
			return err
		}
	}

	for i := range table.Frames {
		frame, row := table.Row(i)
		if err := setCell(f, 1, i+2, frame); err != nil {
			return err
		}
		for j, v := range row {
			if err := setCell(f, j+2, i+2, v); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell (%d,%d): %w", col, row, err)
	}
	if err := f.SetCellValue(sheetName, cell, value); err != nil {
		return fmt.Errorf("setting cell %s: %w", cell, err)
	}
	return nil
}
