package importer

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// maxConcurrentSheets caps parallel table replacements so the importer does
// not exhaust the connection pool.
const maxConcurrentSheets = 4

// TableWriter replaces one destination table with a sheet's contents.
type TableWriter interface {
	Replace(ctx context.Context, sheet Sheet) error
}

// Import replaces one table per sheet. Sheets load concurrently; the first
// failure cancels the rest.
func Import(ctx context.Context, logger *slog.Logger, writer TableWriter, sheets []Sheet) error {
	if len(sheets) == 0 {
		return ErrNoSheets
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSheets)
	for _, sheet := range sheets {
		sheet := sheet
		g.Go(func() error {
			if err := writer.Replace(ctx, sheet); err != nil {
				return fmt.Errorf("replace table %s: %w", sheet.TableName(), err)
			}
			logger.Info("table replaced",
				slog.String("table", sheet.TableName()),
				slog.Int("rows", len(sheet.Rows)),
			)
			return nil
		})
	}
	return g.Wait()
}
