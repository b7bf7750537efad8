package service

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// rowReader iterates data rows of a headered CSV, resolving fields by column
// name. Rows shorter than the header are tolerated; missing columns read as "".
type rowReader struct {
	reader    *csv.Reader
	headerMap map[string]int
}

type csvRow struct {
	headerMap map[string]int
	fields    []string
}

func (r csvRow) get(column string) string {
	idx, ok := r.headerMap[column]
	if !ok || idx >= len(r.fields) {
		return ""
	}
	return r.fields[idx]
}

func newRowReader(f io.Reader) (*rowReader, error) {
	reader := csv.NewReader(stripBOM(f))
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	headerMap := make(map[string]int, len(header))
	for i, name := range header {
		headerMap[name] = i
	}

	return &rowReader{reader: reader, headerMap: headerMap}, nil
}

func (r *rowReader) next() (csvRow, error) {
	fields, err := r.reader.Read()
	if err != nil {
		return csvRow{}, err
	}
	return csvRow{headerMap: r.headerMap, fields: fields}, nil
}

// stripBOM discards a UTF-8 byte order mark if present
func stripBOM(f io.Reader) io.Reader {
	buf := bufio.NewReader(f)
	if peek, err := buf.Peek(3); err == nil &&
		len(peek) == 3 && peek[0] == 0xEF && peek[1] == 0xBB && peek[2] == 0xBF {
		_, _ = buf.Discard(3)
	}
	return buf
}

// countCSVRows counts data rows (header excluded) so progress can report a
// percentage. A second full read of the file is an accepted trade-off.
func countCSVRows(csvPath string) (int, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		return 0, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(stripBOM(file))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	count := -1 // header does not count
	for {
		if _, err := reader.Read(); err != nil {
			if err == io.EOF {
				break
			}
			return 0, fmt.Errorf("count csv rows: %w", err)
		}
		count++
	}
	if count < 0 {
		count = 0
	}
	return count, nil
}
