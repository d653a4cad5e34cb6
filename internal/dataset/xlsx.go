package dataset

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// readFirstSheet streams the first sheet of an XLSX workbook and returns
// its header row plus data rows.
func readFirstSheet(path string) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open xlsx file %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("xlsx file %s has no sheets", path)
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read rows from sheet %s: %w", sheets[0], err)
	}
	defer rows.Close()

	var (
		header []string
		data   [][]string
	)
	for rows.Next() {
		record, err := rows.Columns()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read row from %s: %w", path, err)
		}
		if header == nil {
			header = record
			continue
		}
		data = append(data, record)
	}
	if err := rows.Error(); err != nil {
		return nil, nil, fmt.Errorf("error iterating rows in %s: %w", path, err)
	}
	if header == nil {
		return nil, nil, fmt.Errorf("xlsx file %s has no header row", path)
	}

	return header, data, nil
}
