package decode

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	structureFileName = "CroStru.dat"
	indexFileName     = "CroBank.tad"
	dataFileName      = "CroBank.dat"
)

// Parse reconstructs a Cronos database's catalog and records from the
// three files (CroStru.dat, CroBank.tad, CroBank.dat) in dir. File
// names are matched case-insensitively. The FL/Files blob table is
// returned like any other table; filtering it out is the export
// collaborator's job.
func Parse(dir string, opts ...Option) (Metadata, []Table, error) {
	cfg := newConfig(opts)

	structurePath, indexPath, dataPath, err := resolveFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	structureBytes, err := os.ReadFile(structurePath)
	if err != nil {
		return nil, nil, err
	}
	if !strings.HasPrefix(string(structureBytes), structureFileSig) {
		return nil, nil, fmt.Errorf("%w: %s", ErrNotAStructureFile, structurePath)
	}

	sections := Align(structureBytes, cfg.alignWorkers, cfg.logger)
	if len(sections) == 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrSectionsUnrecovered, structurePath)
	}

	metadata := ParseMetadata(sections[0].Bytes, cfg.logger)

	var tables []Table
	for _, section := range sections {
		tables = append(tables, ParseTables(section.Bytes, cfg.logger)...)
	}

	if err := reassembleAll(indexPath, dataPath, tables, cfg); err != nil {
		return nil, nil, err
	}

	cfg.logger.Debug("parse complete",
		zap.Int("sections", len(sections)),
		zap.Int("tables", len(tables)),
	)

	return metadata, tables, nil
}

// reassembleAll runs C4 for every table, sequentially by default
// (cfg.tableWorkers == 1) or fanned out across cfg.tableWorkers
// goroutines, each owning its own file handles. Output order always
// matches the table order produced by C3, regardless of completion
// order.
func reassembleAll(indexPath, dataPath string, tables []Table, cfg *config) error {
	// A quick signature check up front gives a clear NotADataFile error
	// even when there happen to be zero tables to reassemble.
	if err := checkDataFileSignature(dataPath); err != nil {
		return err
	}

	if len(tables) == 0 {
		return nil
	}

	if cfg.tableWorkers <= 1 {
		for i := range tables {
			if err := ReassembleTable(indexPath, dataPath, &tables[i], cfg.maxFragments, cfg.logger); err != nil {
				return err
			}
		}
		return nil
	}

	var g errgroup.Group
	g.SetLimit(cfg.tableWorkers)
	for i := range tables {
		i := i
		g.Go(func() error {
			return ReassembleTable(indexPath, dataPath, &tables[i], cfg.maxFragments, cfg.logger)
		})
	}
	return g.Wait()
}

func checkDataFileSignature(dataPath string) error {
	f, err := os.Open(dataPath)
	if err != nil {
		return err
	}
	defer f.Close()

	sig := make([]byte, dataFileSigLen)
	if _, err := f.Read(sig); err != nil || string(sig) != dataFileSig {
		return fmt.Errorf("%w: %s", ErrNotADataFile, dataPath)
	}
	return nil
}

// resolveFiles locates the three required database files within dir,
// matching file names case-insensitively, per §6's external interface
// contract. It fails fast with NotADirectory/MissingFile so the
// driver's caller gets a precise, actionable error before any bytes
// are parsed.
func resolveFiles(dir string) (structurePath, indexPath, dataPath string, err error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", "", fmt.Errorf("%w: %s", ErrMissingFile, dir)
		}
		return "", "", "", err
	}
	if !info.IsDir() {
		return "", "", "", fmt.Errorf("%w: %s", ErrNotADirectory, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", "", "", err
	}

	byLower := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		byLower[strings.ToLower(e.Name())] = e.Name()
	}

	find := func(name string) (string, error) {
		actual, ok := byLower[strings.ToLower(name)]
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrMissingFile, name)
		}
		return filepath.Join(dir, actual), nil
	}

	if structurePath, err = find(structureFileName); err != nil {
		return "", "", "", err
	}
	if indexPath, err = find(indexFileName); err != nil {
		return "", "", "", err
	}
	if dataPath, err = find(dataFileName); err != nil {
		return "", "", "", err
	}
	return structurePath, indexPath, dataPath, nil
}
