// Package export writes recovered Cronos tables out as one delimited
// file per table. It is a thin collaborator over the core decoder: it
// owns none of the parsing logic, only the on-disk export convention.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/occrp/cronosparser-go/internal/decode"
)

// filesTableAbbr/filesTableName identify the FL/Files blob table,
// which the core returns but which this writer omits from export (its
// contents are out of this system's scope).
const (
	filesTableAbbr = "FL"
	filesTableName = "Files"
)

// WriteTables writes one CSV file per table into outDir, named
// "{BankName} - {abbr} - {name}.csv". The FL/Files table is skipped.
func WriteTables(meta decode.Metadata, tables []decode.Table, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	for _, table := range tables {
		if table.Abbr == filesTableAbbr && table.Name == filesTableName {
			continue
		}
		if err := writeTableCSV(meta, table, outDir); err != nil {
			return fmt.Errorf("export table %s/%s: %w", table.Abbr, table.Name, err)
		}
	}
	return nil
}

func writeTableCSV(meta decode.Metadata, table decode.Table, outDir string) error {
	path := filepath.Join(outDir, tableFileName(meta, table))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		header[i] = col.Name
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, record := range table.Records {
		row := make([]string, len(record))
		for i, field := range record {
			if field != nil {
				row[i] = *field
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func tableFileName(meta decode.Metadata, table decode.Table) string {
	return fmt.Sprintf("%s - %s - %s.csv", meta["BankName"], table.Abbr, table.Name)
}
