package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
)

// FormatTSV renders rows as tab-separated text, one line per row,
// columns in display order, suitable for pasting into a spreadsheet.
func FormatTSV(rows [][]string) string {
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = strings.Join(row, "\t")
	}
	return strings.Join(lines, "\n")
}

// CopyRowsTSV puts the rows on the system clipboard as TSV and
// returns the row count.
func CopyRowsTSV(rows [][]string) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	if err := clipboard.WriteAll(FormatTSV(rows)); err != nil {
		return 0, fmt.Errorf("failed to write clipboard: %w", err)
	}
	return len(rows), nil
}

// ExportViewCSV writes the current filtered/sorted view to a CSV file.
func ExportViewCSV(columns []string, rows [][]string, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	return nil
}

// viewDocument is the JSON export shape: columns once, rows as arrays
// to preserve column order.
type viewDocument struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// ExportViewJSON writes the current filtered/sorted view to a JSON
// file.
func ExportViewJSON(columns []string, rows [][]string, path string) error {
	data, err := json.MarshalIndent(viewDocument{Columns: columns, Rows: rows}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal view to JSON: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	return nil
}
