package source

import (
	"github.com/xuri/excelize/v2"

	"github.com/tably/tably/internal/dataframe"
)

// listExcelSheets returns the workbook's sheet names in workbook
// order.
func listExcelSheets(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return f.GetSheetList(), nil
}

// loadExcelSheet reads a full sheet. The first row is the header;
// remaining rows become cells with per-column type inference. Rows
// shorter than the header (excelize trims trailing empties) are padded
// with nulls by the frame builder.
func loadExcelSheet(path, sheet string) (*dataframe.Frame, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return dataframe.NewFrameFromStrings(nil, nil), nil
	}
	return dataframe.NewFrameFromStrings(rows[0], rows[1:]), nil
}
