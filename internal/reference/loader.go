package reference

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/zain/bacteria-identifier/internal/types"
)

// LoadTable loads a reference table from a CSV or XLSX file, dispatching on
// the file extension. Blank cells normalize to empty strings.
func LoadTable(path string) (*types.ReferenceTable, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".xlsx":
		return LoadXLSX(path)
	default:
		return nil, &LoadError{Message: fmt.Sprintf("unsupported reference table format %q (want .csv or .xlsx)", filepath.Ext(path))}
	}
}

// LoadCSV loads a reference table from a CSV file. The first row is the
// column header schema and must include the "Genus" key column.
func LoadCSV(path string) (*types.ReferenceTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Message: fmt.Sprintf("failed to open %s", path), Cause: err}
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // malformed rows are tolerated, short records read as blanks

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &LoadError{Message: fmt.Sprintf("failed to parse CSV %s", path), Cause: err}
	}

	return fromRecords(records, path)
}

// LoadXLSX loads a reference table from the first sheet of an XLSX workbook.
func LoadXLSX(path string) (*types.ReferenceTable, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &LoadError{Message: fmt.Sprintf("failed to open %s", path), Cause: err}
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, &LoadError{Message: fmt.Sprintf("workbook %s has no sheets", path)}
	}

	records, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, &LoadError{Message: fmt.Sprintf("failed to read sheet %s", sheets[0]), Cause: err}
	}

	return fromRecords(records, path)
}

// fromRecords builds a ReferenceTable from header + data records. Rows with
// a blank key cell are skipped; short records read as blank cells.
func fromRecords(records [][]string, source string) (*types.ReferenceTable, error) {
	if len(records) == 0 {
		return nil, &LoadError{Message: fmt.Sprintf("reference table %s is empty", source)}
	}

	header := records[0]
	keyIndex := -1
	var fields []string
	columns := make([]string, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		columns[i] = name
		if name == types.DefaultKeyField {
			keyIndex = i
			continue
		}
		if name != "" {
			fields = append(fields, name)
		}
	}
	if keyIndex < 0 {
		return nil, &LoadError{Message: fmt.Sprintf("reference table %s has no %q column", source, types.DefaultKeyField)}
	}

	table := &types.ReferenceTable{
		KeyField: types.DefaultKeyField,
		Fields:   fields,
	}

	for _, record := range records[1:] {
		genus := cellAt(record, keyIndex)
		if genus == "" {
			continue
		}

		row := types.ReferenceRow{
			Genus:  genus,
			Values: make(map[string]string, len(fields)),
		}
		for i, name := range columns {
			if i == keyIndex || name == "" {
				continue
			}
			row.Values[name] = cellAt(record, i)
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// cellAt returns the trimmed cell value, treating out-of-range indexes as blank.
func cellAt(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
