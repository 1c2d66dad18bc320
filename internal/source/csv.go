package source

import (
	"encoding/csv"
	"errors"
	"io"
	"log"
	"os"

	"github.com/tably/tably/internal/dataframe"
)

// checkCSVReadable verifies the file can be opened at all. Parsing is
// deferred to load time; the table list for a CSV source is fixed.
func checkCSVReadable(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	_ = f.Close()
	return []string{CSVTableName}, nil
}

// loadCSV reads the whole file. Comma-delimited is tried first with
// strict field counts; on a parse error the file is re-read with a
// semicolon delimiter and a lenient policy that drops malformed rows
// instead of failing the load.
func loadCSV(path string) (*dataframe.Frame, error) {
	frame, err := readCSVStrict(path)
	if err == nil {
		return frame, nil
	}
	var parseErr *csv.ParseError
	if !errors.As(err, &parseErr) {
		return nil, err
	}
	return readCSVLenient(path)
}

func readCSVStrict(path string) (*dataframe.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return dataframe.NewFrameFromStrings(nil, nil), nil
	}
	return dataframe.NewFrameFromStrings(records[0], records[1:]), nil
}

// readCSVLenient retries with ';' as delimiter, keeping only rows
// whose field count matches the header and counting the rest.
func readCSVLenient(path string) (*dataframe.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.Comma = ';'
	r.FieldsPerRecord = -1

	var header []string
	var rows [][]string
	dropped := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			dropped++
			continue
		}
		if header == nil {
			header = record
			continue
		}
		if len(record) != len(header) {
			dropped++
			continue
		}
		rows = append(rows, record)
	}
	if dropped > 0 {
		log.Printf("csv: dropped %d malformed row(s) in %s", dropped, path)
	}
	if header == nil {
		return dataframe.NewFrameFromStrings(nil, nil), nil
	}
	return dataframe.NewFrameFromStrings(header, rows), nil
}
