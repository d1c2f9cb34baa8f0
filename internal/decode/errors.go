package decode

import "errors"

// Error kinds surfaced by the core decoder. All are fatal: callers
// should stop and report, not retry.
var (
	ErrNotAStructureFile   = errors.New("decode: not a structure file (missing CroFile signature)")
	ErrNotADataFile        = errors.New("decode: not a data file (missing CroFile signature)")
	ErrSectionsUnrecovered = errors.New("decode: could not recover structure sections")
	ErrMissingFile         = errors.New("decode: required database file is missing")
	ErrNotADirectory       = errors.New("decode: database path is not a directory")
)
