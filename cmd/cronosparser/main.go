// Command cronosparser generates CSV files from a CronosPro/CronosPlus
// database directory.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/occrp/cronosparser-go/internal/decode"
	"github.com/occrp/cronosparser-go/internal/export"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		alignWorkers int
		tableWorkers int
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:           "cronosparser <database_dir> <target_dir>",
		Short:         "Generate CSV files from a CronosPro/CronosPlus database",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			databaseDir, targetDir := args[0], args[1]

			logger := zap.NewNop()
			if verbose {
				l, err := zap.NewDevelopment()
				if err != nil {
					return err
				}
				logger = l
			}
			defer logger.Sync() //nolint:errcheck

			meta, tables, err := decode.Parse(
				databaseDir,
				decode.WithAlignWorkers(alignWorkers),
				decode.WithTableWorkers(tableWorkers),
				decode.WithLogger(logger),
			)
			if err != nil {
				return describeError(databaseDir, err)
			}

			return export.WriteTables(meta, tables, targetDir)
		},
	}

	cmd.Flags().IntVar(&alignWorkers, "align-workers", 0, "concurrent cipher-offset trials (0 = GOMAXPROCS)")
	cmd.Flags().IntVar(&tableWorkers, "table-workers", 1, "concurrent per-table record reassembly")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log recoveries at debug level")

	return cmd
}

func describeError(databaseDir string, err error) error {
	switch {
	case errors.Is(err, decode.ErrNotADirectory):
		return fmt.Errorf("%q is not a directory", databaseDir)
	case errors.Is(err, decode.ErrMissingFile):
		return fmt.Errorf("database directory is incomplete: %w", err)
	case errors.Is(err, decode.ErrNotAStructureFile), errors.Is(err, decode.ErrNotADataFile):
		return fmt.Errorf("database file has an unexpected format: %w", err)
	case errors.Is(err, decode.ErrSectionsUnrecovered):
		return fmt.Errorf("could not recover database structure: %w", err)
	default:
		return err
	}
}
