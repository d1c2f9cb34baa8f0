package decode

import (
	"bufio"
	"io"
	"os"

	"go.uber.org/zap"
)

// RecordIterator walks the CroBank.tad/CroBank.dat fragment-chain
// protocol one record at a time, filtering by table id. It replaces
// the lazily-yielded generator the format was originally decoded with:
// all iteration state (the index cursor and the two open file
// handles) lives on the struct, and ownership of the handles is scoped
// to the iterator's lifetime — Close releases them; exhausting the
// index file does not.
type RecordIterator struct {
	dat          *os.File
	tad          *os.File
	tadReader    *bufio.Reader
	tableID      uint8
	columnCount  int
	maxFragments int
	logger       *zap.Logger

	recordIndex int
	current     Record
	done        bool
	err         error
}

// NewRecordIterator opens the index and data files and positions the
// index cursor just past the 8-byte header, ready for the first
// Next() call.
func NewRecordIterator(indexPath, dataPath string, tableID uint8, columnCount, maxFragments int, logger *zap.Logger) (*RecordIterator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	dat, err := os.Open(dataPath)
	if err != nil {
		return nil, err
	}

	sig := make([]byte, dataFileSigLen)
	if _, err := io.ReadFull(dat, sig); err != nil || string(sig) != dataFileSig {
		dat.Close()
		return nil, ErrNotADataFile
	}

	tad, err := os.Open(indexPath)
	if err != nil {
		dat.Close()
		return nil, err
	}
	if _, err := tad.Seek(indexHeaderSize, io.SeekStart); err != nil {
		dat.Close()
		tad.Close()
		return nil, err
	}

	return &RecordIterator{
		dat:          dat,
		tad:          tad,
		tadReader:    bufio.NewReaderSize(tad, 64*1024),
		tableID:      tableID,
		columnCount:  columnCount,
		maxFragments: maxFragments,
		logger:       logger,
	}, nil
}

// Next advances to the next matching record, returning false once the
// index file is exhausted or an unrecoverable read error occurs (see
// Err). Records that don't belong to the iterator's table, or whose
// fragment chain fails, are skipped transparently.
func (it *RecordIterator) Next() bool {
	if it.done {
		return false
	}
	for {
		it.recordIndex++
		entry, err := readIndexEntry(it.tadReader)
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			it.done = true
			return false
		}
		if err != nil {
			it.err = err
			it.done = true
			return false
		}

		payload, err := followChain(it.dat, entry, it.maxFragments)
		if err != nil {
			it.logger.Debug("record fragment chain failed, skipping",
				zap.Int("record_index", it.recordIndex), zap.Error(err))
			continue
		}
		if payload == nil || len(payload) < 2 {
			continue
		}
		if payload[0] != it.tableID {
			continue
		}

		it.current = splitFields(payload[1:], it.columnCount, it.recordIndex)
		return true
	}
}

// Record returns the record produced by the most recent successful
// Next call.
func (it *RecordIterator) Record() Record { return it.current }

// Err returns the error that stopped iteration, if any; io.EOF is not
// reported as an error.
func (it *RecordIterator) Err() error { return it.err }

// Close releases the iterator's file handles. Safe to call more than
// once.
func (it *RecordIterator) Close() error {
	datErr := it.dat.Close()
	tadErr := it.tad.Close()
	if datErr != nil {
		return datErr
	}
	return tadErr
}

// ReassembleTable drains a RecordIterator for table.ID into
// table.Records, in index-file order.
func ReassembleTable(indexPath, dataPath string, table *Table, maxFragments int, logger *zap.Logger) error {
	it, err := NewRecordIterator(indexPath, dataPath, table.ID, len(table.Columns), maxFragments, logger)
	if err != nil {
		return err
	}
	defer it.Close()

	var records []Record
	for it.Next() {
		records = append(records, it.Record())
	}
	if err := it.Err(); err != nil {
		return err
	}

	table.Records = records
	return nil
}
