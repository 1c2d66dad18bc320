package source

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tably/tably/internal/dataframe"
)

// autoIndexPrefix marks SQLite-internal tables excluded from the
// table list.
const autoIndexPrefix = "sqlite_autoindex_"

// listSQLiteTables enumerates user tables from sqlite_master in
// catalog order.
func listSQLiteTables(path string) ([]string, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type = 'table'`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		if strings.HasPrefix(name, autoIndexPrefix) {
			continue
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// loadSQLiteTable reads the full table into a frame, preserving
// column order and converting driver values to typed cells.
func loadSQLiteTable(path, table string) (*dataframe.Frame, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	rows, err := db.Query(fmt.Sprintf(`SELECT * FROM %s`, quoteIdent(table)))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var data [][]dataframe.Value
	scan := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range scan {
		ptrs[i] = &scan[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		cells := make([]dataframe.Value, len(columns))
		for i, raw := range scan {
			cells[i] = driverValue(raw)
		}
		data = append(data, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return dataframe.NewFrameFromValues(columns, data), nil
}

// driverValue converts one scanned sqlite3 value into a cell.
func driverValue(raw any) dataframe.Value {
	switch v := raw.(type) {
	case nil:
		return dataframe.Null()
	case int64:
		return dataframe.Int(v)
	case float64:
		return dataframe.Number(v)
	case bool:
		return dataframe.Bool(v)
	case time.Time:
		return dataframe.Time(v)
	case []byte:
		return dataframe.String(string(v))
	case string:
		return dataframe.String(v)
	default:
		return dataframe.String(fmt.Sprint(v))
	}
}

// quoteIdent quotes a table name for use in a SELECT. Embedded quotes
// are doubled per SQL rules.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
