// Package cronos reconstructs the logical contents of a CronosPro /
// CronosPlus database — table catalog, typed columns, and record data
// — from its proprietary on-disk files.
package cronos

import (
	"go.uber.org/zap"

	"github.com/occrp/cronosparser-go/internal/decode"
)

// Column is a single typed field in a table, in positional order.
type Column = decode.Column

// Table is a recovered table descriptor, including its records.
type Table = decode.Table

// Record is an ordered sequence of field values. A nil entry means the
// field was absent.
type Record = decode.Record

// Metadata maps well-known field names (BankId, BankName) to decoded
// values. Both are optional.
type Metadata = decode.Metadata

// Option configures a Parse call.
type Option = decode.Option

// Errors mirrors the error kinds a Parse call can fail with.
var (
	ErrNotAStructureFile   = decode.ErrNotAStructureFile
	ErrNotADataFile        = decode.ErrNotADataFile
	ErrSectionsUnrecovered = decode.ErrSectionsUnrecovered
	ErrMissingFile         = decode.ErrMissingFile
	ErrNotADirectory       = decode.ErrNotADirectory
)

// WithAlignWorkers bounds how many of the 256 candidate cipher offsets
// the section aligner tries concurrently.
func WithAlignWorkers(n int) Option { return decode.WithAlignWorkers(n) }

// WithTableWorkers bounds how many tables are reassembled concurrently.
func WithTableWorkers(n int) Option { return decode.WithTableWorkers(n) }

// WithMaxFragments caps how many fragments a single record's chain may
// traverse before it is treated as corrupt.
func WithMaxFragments(n int) Option { return decode.WithMaxFragments(n) }

// WithLogger attaches a zap logger for debug-level recovery logging.
func WithLogger(l *zap.Logger) Option { return decode.WithLogger(l) }

// Parse reconstructs a Cronos database located in dir, returning its
// metadata and the ordered list of recovered tables (with records).
func Parse(dir string, opts ...Option) (Metadata, []Table, error) {
	return decode.Parse(dir, opts...)
}
