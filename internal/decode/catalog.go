package decode

import (
	"bytes"
	"encoding/binary"
	"unicode"

	"go.uber.org/zap"
)

// ParseMetadata extracts the well-known metadata fields (BankId,
// BankName) from a deobfuscated section. Absent fields are silently
// skipped.
func ParseMetadata(section []byte, logger *zap.Logger) Metadata {
	if logger == nil {
		logger = zap.NewNop()
	}
	fields := []string{"BankId", "BankName"}
	meta := make(Metadata, len(fields))
	searchable := searchableCopy(section)

	for _, field := range fields {
		probe, err := getSentinel(field)
		if err != nil {
			continue
		}
		idx := bytes.Index(searchable, searchableCopy(probe))
		if idx == -1 {
			logger.Debug("metadata field not found", zap.String("field", field))
			continue
		}

		offset := idx + len(probe)
		if offset+4 > len(section) {
			logger.Debug("metadata field truncated", zap.String("field", field))
			continue
		}
		length, _ := vword(section, offset)
		offset += 4
		end := offset + length
		if end > len(section) {
			logger.Debug("metadata field length exceeds section", zap.String("field", field))
			continue
		}
		meta[field] = decodeText(section[offset:end])
	}
	return meta
}

// vword unpacks a 4-byte little-endian "vodka word": the low 24 bits
// are a length, the high 8 bits are flag bits, returned as flags.
func vword(b []byte, offset int) (length int, flags byte) {
	word := binary.LittleEndian.Uint32(b[offset : offset+4])
	return int(word & 0x00ffffff), byte(word >> 24)
}

// ParseTables scans a deobfuscated section for table definitions,
// returning them in discovery order. Sites that look like a table but
// fail verification are skipped; the scan resumes one byte later.
func ParseTables(section []byte, logger *zap.Logger) []Table {
	if logger == nil {
		logger = zap.NewNop()
	}
	var tables []Table

	anchor := []byte{0x00, 0x00, 0x00}
	offset := 1 // table_id precedes the anchor
	for {
		idx := indexFrom(section, anchor, offset)
		if idx == -1 {
			break
		}
		tableStart := idx - 1
		table, end, ok := parseTableAt(section, tableStart, logger)
		if !ok {
			offset = idx + 1
			continue
		}
		tables = append(tables, table)
		offset = end
	}
	return tables
}

func indexFrom(haystack, needle []byte, from int) int {
	if from < 0 || from > len(haystack) {
		return -1
	}
	rel := bytes.Index(haystack[from:], needle)
	if rel == -1 {
		return -1
	}
	return from + rel
}

// parseTableAt attempts to parse a table record starting at
// start (the index of TABLE_ID). It returns the parsed table, the
// index just past the table's last column, and whether parsing
// succeeded.
func parseTableAt(section []byte, start int, logger *zap.Logger) (Table, int, bool) {
	// 1 (id) + 3 (nulls) + 1 (name_len)
	if start < 0 || start+5 > len(section) {
		return Table{}, 0, false
	}
	tableID := section[start]
	nameLen := int(section[start+4])
	if nameLen == 0 {
		return Table{}, 0, false
	}

	offset := start + 5
	// name_len bytes + 0x02 + 2 (abbr) + 0x01
	need := nameLen + 1 + 2 + 1
	if offset+need > len(section) {
		return Table{}, 0, false
	}

	name := section[offset : offset+nameLen]
	offset += nameLen
	verify1 := section[offset]
	offset++
	abbr := section[offset : offset+2]
	offset += 2
	verify2 := section[offset]
	offset++

	if verify1 != tableVerifyByte1 || verify2 != tableVerifyByte2 {
		return Table{}, 0, false
	}

	decodedName := decodeText(name)
	if decodedName == "" {
		return Table{}, 0, false
	}

	offset += tableHeaderGapSize
	columns, end, ok := parseColumns(section, offset)
	if !ok {
		logger.Debug("table discovered but columns unparsable",
			zap.Int("table_id", int(tableID)), zap.Int("offset", start))
		return Table{}, 0, false
	}

	table := Table{
		ID:      tableID,
		Name:    decodedName,
		Abbr:    decodeText(abbr),
		Columns: columns,
	}
	if end <= start {
		end = offset
	}
	return table, end, true
}

// parseColumns reads the column-count-prefixed column array starting
// at offset. It stops early (without failing) only when the section
// ends prematurely after at least the count has been read.
func parseColumns(section []byte, offset int) ([]Column, int, bool) {
	if offset+4 > len(section) {
		return nil, offset, false
	}
	count := binary.BigEndian.Uint32(section[offset : offset+4])
	offset += 4

	columns := make([]Column, 0, count)
	for i := uint32(0); i < count; i++ {
		col, end, ok := parseColumn(section, offset)
		if !ok {
			break
		}
		columns = append(columns, col)
		offset = end + columnGapSize
	}
	return columns, offset, true
}

func parseColumn(section []byte, offset int) (Column, int, bool) {
	// colLen(4) + colType(2) + colID(2) + nameLen(4)
	const headerSize = 4 + 2 + 2 + 4
	if offset+headerSize > len(section) {
		return Column{}, 0, false
	}
	colLen := binary.BigEndian.Uint32(section[offset : offset+4])
	colType := binary.BigEndian.Uint16(section[offset+4 : offset+6])
	colID := binary.BigEndian.Uint16(section[offset+6 : offset+8])
	nameLen := binary.BigEndian.Uint32(section[offset+8 : offset+12])

	nameStart := offset + headerSize
	nameEnd := nameStart + int(nameLen)
	if nameEnd > len(section) {
		return Column{}, 0, false
	}

	col := Column{
		ID:   colID,
		Type: colType,
		Name: decodeText(section[nameStart:nameEnd]),
	}
	end := offset + int(colLen)
	if end < nameEnd {
		end = nameEnd
	}
	return col, end, true
}

// searchableCopy normalizes control characters to space in a throwaway
// copy, improving substring search stability for the metadata probes
// (the three-null table anchor is searched in the raw section). It is
// never used to produce decoded output, only to scan for signatures.
func searchableCopy(section []byte) []byte {
	cp := make([]byte, len(section))
	for i, b := range section {
		if unicode.IsControl(rune(b)) {
			cp[i] = ' '
		} else {
			cp[i] = b
		}
	}
	return cp
}
