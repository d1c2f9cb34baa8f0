package decode

import "encoding/binary"

// invKOD is the inverse permutation of KOD, built once for test
// fixtures that need to construct *obfuscated* bytes which invert to a
// chosen plaintext under a chosen offset.
var invKOD = func() [256]byte {
	var inv [256]byte
	for i, v := range KOD {
		inv[v] = byte(i)
	}
	return inv
}()

// obfuscate is the inverse of Invert: given the desired deobfuscated
// output and an offset, it returns the raw bytes that Invert(_, offset)
// would turn into that output. It exists purely to build test fixtures
// without hand-deriving ciphertext bytes.
func obfuscate(plain []byte, offset byte) []byte {
	return obfuscateAt(plain, offset, 0)
}

// obfuscateAt is obfuscate, but for a plain slice that will be placed
// starting at absolute position startPos within a larger buffer (the
// cipher's per-byte position term is the byte's absolute index, not
// its index within this slice).
func obfuscateAt(plain []byte, offset byte, startPos int) []byte {
	out := make([]byte, len(plain))
	for i, b := range plain {
		pos := byte(startPos + i)
		out[i] = invKOD[b+pos+offset]
	}
	return out
}

// be32 encodes a uint32 as 4 big-endian bytes.
func be32(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

// be16 encodes a uint16 as 2 big-endian bytes.
func be16(v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return b
}

// le32 encodes a uint32 as 4 little-endian bytes.
func le32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

// le16 encodes a uint16 as 2 little-endian bytes.
func le16(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}

// buildColumn builds the on-disk bytes for one column record.
func buildColumn(id, typ uint16, name string) []byte {
	encodedName, err := cp1251Encode(name)
	if err != nil {
		panic(err)
	}
	header := append(be16(typ), be16(id)...)
	header = append(header, be32(uint32(len(encodedName)))...)
	body := append(header, encodedName...)
	colLen := uint32(len(body))
	return append(be32(colLen), body...)
}

// buildTable builds the on-disk bytes for one table definition
// (header + column array), as it would appear inside a deobfuscated
// structure section.
func buildTable(id byte, name, abbr string, columns [][]byte) []byte {
	encodedName, err := cp1251Encode(name)
	if err != nil {
		panic(err)
	}
	encodedAbbr, err := cp1251Encode(abbr)
	if err != nil {
		panic(err)
	}
	if len(encodedAbbr) != 2 {
		panic("abbr must encode to exactly 2 bytes")
	}

	buf := []byte{id, 0x00, 0x00, 0x00, byte(len(encodedName))}
	buf = append(buf, encodedName...)
	buf = append(buf, tableVerifyByte1)
	buf = append(buf, encodedAbbr...)
	buf = append(buf, tableVerifyByte2)
	buf = append(buf, make([]byte, tableHeaderGapSize)...)
	buf = append(buf, be32(uint32(len(columns)))...)
	for _, col := range columns {
		buf = append(buf, col...)
		buf = append(buf, make([]byte, columnGapSize)...)
	}
	return buf
}

// buildMetadataField builds the on-disk bytes for a metadata probe
// (field name + vword length + value).
func buildMetadataField(field, value string) []byte {
	probe, err := getSentinel(field)
	if err != nil {
		panic(err)
	}
	encodedValue, err := cp1251Encode(value)
	if err != nil {
		panic(err)
	}
	buf := append([]byte{}, probe...)
	buf = append(buf, le32(uint32(len(encodedValue)))...)
	buf = append(buf, encodedValue...)
	return buf
}

// buildIndexEntryBytes builds one 12-byte CroBank.tad index entry.
func buildIndexEntryBytes(firstOffset uint32, firstLen uint16, nextOffset uint32, nextLen uint16) []byte {
	buf := append([]byte{}, le32(firstOffset)...)
	buf = append(buf, le16(firstLen)...)
	buf = append(buf, le32(nextOffset)...)
	buf = append(buf, le16(nextLen)...)
	return buf
}
