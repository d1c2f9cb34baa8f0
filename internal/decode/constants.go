package decode

// PKSentinelText is the Cronos field label for the auto-generated
// primary key column. Its length-prefixed, code-page-encoded form is
// used by Align to confirm a candidate cipher offset.
const PKSentinelText = "Системный номер"

// recordSep delimits field values within a reassembled record payload.
const recordSep = 0x1e

// Table header verification bytes (see Catalog table discovery).
const (
	tableVerifyByte1 = 0x02
	tableVerifyByte2 = 0x01
)

// tableHeaderGapSize is the 4-byte span between the abbreviation's
// trailing verification byte and the column count. Its meaning is
// unknown; it is always skipped.
const tableHeaderGapSize = 4

// columnGapSize is the 2-byte span between one column record and the
// next. Its meaning is unknown; it is always skipped.
const columnGapSize = 2

// Fragment layout constants (§"Why 252" in the format notes): records
// in CroBank.dat are packed into 256-byte cells. One fragment read
// covers at most fragmentPayload (252) bytes, the first 4 of which are
// the pointer to the next cell, so it yields at most 248 data bytes.
const (
	fragmentCellSize = 256
	fragmentPayload  = fragmentCellSize - 4
	chainEndZero     = 0x0000
	chainEndAllOnes  = 0xffff
	indexEntrySize   = 12
	indexHeaderSize  = 8
	dataFileSigLen   = 7
	dataFileSig      = "CroFile"
	structureFileSig = "CroFile"
)

// pkSentinel is the encoded form of PKSentinelText, computed once.
var pkSentinel = mustSentinel(PKSentinelText)

func mustSentinel(text string) []byte {
	b, err := getSentinel(text)
	if err != nil {
		// PKSentinelText is a fixed, known-valid Windows-1251 string;
		// this cannot fail in practice.
		panic("decode: cannot encode sentinel: " + err.Error())
	}
	return b
}
