package decode

import "testing"

func TestParseMetadata_BothFieldsPresent(t *testing.T) {
	section := append([]byte{}, buildMetadataField("BankId", "42")...)
	section = append(section, buildMetadataField("BankName", "Люди Inc")...)

	meta := ParseMetadata(section, nil)
	if meta["BankId"] != "42" {
		t.Errorf("BankId = %q, want %q", meta["BankId"], "42")
	}
	if meta["BankName"] != "Люди Inc" {
		t.Errorf("BankName = %q, want %q", meta["BankName"], "Люди Inc")
	}
}

func TestParseMetadata_MissingFieldsAreOmitted(t *testing.T) {
	section := buildMetadataField("BankId", "7")
	meta := ParseMetadata(section, nil)
	if _, ok := meta["BankName"]; ok {
		t.Errorf("expected BankName to be absent")
	}
	if meta["BankId"] != "7" {
		t.Errorf("BankId = %q, want %q", meta["BankId"], "7")
	}
}

func TestParseTables_MinimalCatalog(t *testing.T) {
	// S2: one table (id=7, name="Люди", abbr="PP") with one column
	// (id=1, type=0, name="Имя").
	col := buildColumn(1, 0, "Имя")
	section := append([]byte{0xAA}, buildTable(7, "Люди", "PP", [][]byte{col})...)

	tables := ParseTables(section, nil)
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	tbl := tables[0]
	if tbl.ID != 7 || tbl.Name != "Люди" || tbl.Abbr != "PP" {
		t.Fatalf("unexpected table: %+v", tbl)
	}
	if len(tbl.Columns) != 1 || tbl.Columns[0].ID != 1 || tbl.Columns[0].Type != 0 || tbl.Columns[0].Name != "Имя" {
		t.Fatalf("unexpected columns: %+v", tbl.Columns)
	}
}

func TestParseTables_MultipleColumnsAndTables(t *testing.T) {
	col1 := buildColumn(1, 0, "Имя")
	col2 := buildColumn(2, 1, "Фамилия")
	table1 := buildTable(7, "Люди", "PP", [][]byte{col1, col2})

	col3 := buildColumn(1, 0, "Дата")
	table2 := buildTable(8, "События", "EV", [][]byte{col3})

	section := append([]byte{0xAA}, table1...)
	section = append(section, table2...)

	tables := ParseTables(section, nil)
	if len(tables) != 2 {
		t.Fatalf("expected 2 tables, got %d: %+v", len(tables), tables)
	}
	if tables[0].ID != 7 || len(tables[0].Columns) != 2 {
		t.Fatalf("unexpected first table: %+v", tables[0])
	}
	if tables[1].ID != 8 || len(tables[1].Columns) != 1 {
		t.Fatalf("unexpected second table: %+v", tables[1])
	}
}

func TestParseTables_RejectsZeroLengthName(t *testing.T) {
	// table_id, three nulls, name_len=0 -- must be rejected, and the
	// scan must not emit a bogus table.
	section := []byte{0x01, 0x00, 0x00, 0x00, 0x00, 0xff, 0xff, 0xff}
	tables := ParseTables(section, nil)
	if len(tables) != 0 {
		t.Fatalf("expected no tables, got %d", len(tables))
	}
}

func TestParseTables_RejectsVerificationByteMismatch(t *testing.T) {
	encodedName, _ := cp1251Encode("Люди")
	buf := []byte{0x01, 0x00, 0x00, 0x00, byte(len(encodedName))}
	buf = append(buf, encodedName...)
	buf = append(buf, 0x99) // wrong verification byte, should be 0x02
	encodedAbbr, _ := cp1251Encode("PP")
	buf = append(buf, encodedAbbr...)
	buf = append(buf, 0x01)

	tables := ParseTables(append([]byte{0xAA}, buf...), nil)
	if len(tables) != 0 {
		t.Fatalf("expected no tables from a mismatched verification byte, got %d", len(tables))
	}
}

func TestParseTables_ScanResumesAfterFalsePositive(t *testing.T) {
	// Three nulls appearing in unrelated data must not stop discovery
	// of a real table further in the section.
	noise := []byte{0x01, 0x00, 0x00, 0x00, 0x00} // name_len==0, rejected
	col := buildColumn(1, 0, "Имя")
	real := buildTable(7, "Люди", "PP", [][]byte{col})

	section := append(append([]byte{0xAA}, noise...), real...)
	tables := ParseTables(section, nil)
	if len(tables) != 1 || tables[0].ID != 7 {
		t.Fatalf("expected the real table to still be found, got %+v", tables)
	}
}
