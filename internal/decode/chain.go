package decode

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// indexEntry is one 12-byte record in the CroBank.tad index file.
type indexEntry struct {
	firstOffset uint32
	firstLen    uint16
	nextOffset  uint32
	nextLen     uint16
}

func readIndexEntry(r io.Reader) (indexEntry, error) {
	var buf [indexEntrySize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return indexEntry{}, err
	}
	return indexEntry{
		firstOffset: binary.LittleEndian.Uint32(buf[0:4]),
		firstLen:    binary.LittleEndian.Uint16(buf[4:6]),
		nextOffset:  binary.LittleEndian.Uint32(buf[6:10]),
		nextLen:     binary.LittleEndian.Uint16(buf[10:12]),
	}, nil
}

func isChainEnd(l uint16) bool {
	return l == chainEndZero || l == chainEndAllOnes
}

// followChain reassembles the full record payload for one index entry
// by walking its fragment chain in the data file. It returns nil (no
// error) for the documented "empty record" case: FirstLen==0 and
// NextLen is a chain-end sentinel. A chain that revisits an offset, or
// that runs past maxFragments, is reported as an error so the caller
// can skip just that record.
func followChain(dat *os.File, e indexEntry, maxFragments int) ([]byte, error) {
	if e.firstLen == 0 && isChainEnd(e.nextLen) {
		return nil, nil
	}

	data := make([]byte, e.firstLen)
	if _, err := dat.ReadAt(data, int64(e.firstOffset)); err != nil && err != io.EOF {
		return nil, err
	}

	nextOffset := e.nextOffset
	nextLen := e.nextLen
	seen := make(map[uint32]bool)

	for i := 0; !isChainEnd(nextLen); i++ {
		if i >= maxFragments {
			return nil, fmt.Errorf("decode: fragment chain exceeded %d fragments", maxFragments)
		}
		if seen[nextOffset] {
			return nil, fmt.Errorf("decode: fragment chain loops at offset %d", nextOffset)
		}
		seen[nextOffset] = true

		readLen := int(nextLen)
		if readLen > fragmentPayload {
			readLen = fragmentPayload
		}
		frag := make([]byte, readLen)
		n, err := dat.ReadAt(frag, int64(nextOffset))
		if err != nil && err != io.EOF {
			return nil, err
		}
		frag = frag[:n]
		if len(frag) < 4 {
			break
		}

		nextOffset = binary.LittleEndian.Uint32(frag[:4])
		data = append(data, frag[4:]...)

		if int(nextLen) > fragmentPayload {
			nextLen -= fragmentPayload
		} else {
			nextLen = 0
		}
	}

	return data, nil
}

// splitFields splits a record payload (table-id byte already removed)
// on the field separator and decodes each part from the code page. If
// the resulting field count doesn't match columnCount, the sequential
// record index is prepended, preserving provenance for the mismatch
// (deletion markers, schema skew).
func splitFields(payload []byte, columnCount, recordIndex int) Record {
	parts := splitBytes(payload, recordSep)
	fields := make(Record, 0, len(parts)+1)
	for _, p := range parts {
		s := decodeText(p)
		fields = append(fields, &s)
	}
	if len(fields) != columnCount {
		idx := fmt.Sprintf("%d", recordIndex)
		fields = append(Record{&idx}, fields...)
	}
	return fields
}

func splitBytes(b []byte, sep byte) [][]byte {
	var parts [][]byte
	start := 0
	for i, c := range b {
		if c == sep {
			parts = append(parts, b[start:i])
			start = i + 1
		}
	}
	parts = append(parts, b[start:])
	return parts
}
