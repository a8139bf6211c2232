// Package summary handles display of scan results and statistics
package summary

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/bethropolis/source-map/internal/walker"
)

// Logger defines the minimal logging interface required
type Logger interface {
	Info(format string, args ...interface{})
}

// DisplayResults shows the end results of a scan operation
func DisplayResults(logger Logger, outputFile string, fileCount int64, duration time.Duration) {
	logger.Info("Wrote %d files to %s.", fileCount, outputFile)
	logger.Info("Export complete in %v.", duration.Round(time.Millisecond))
}

// DisplaySkippedItems prints the skipped items sorted by path
func DisplaySkippedItems(logger Logger, skippedItems []walker.SkippedItem, output io.Writer) {
	logger.Info("--- Skipped Items (%d) ---", len(skippedItems))
	if len(skippedItems) == 0 {
		logger.Info("No items were skipped.")
		logger.Info("--- End Skipped Items ---")
		return
	}

	sorted := make([]walker.SkippedItem, len(skippedItems))
	copy(sorted, skippedItems)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Path < sorted[j].Path
	})

	for _, item := range sorted {
		typeStr := "FILE"
		if item.IsDir {
			typeStr = "DIR " // aligned with FILE
		}
		fmt.Fprintf(output, "Skipped %s: %-50.50s [%s]\n", typeStr, item.Path, item.Reason)
	}
	logger.Info("--- End Skipped Items ---")
}

// CountByReason groups skipped items by reason
func CountByReason(skippedItems []walker.SkippedItem) map[walker.SkippedReason]int {
	counts := make(map[walker.SkippedReason]int)
	for _, item := range skippedItems {
		counts[item.Reason]++
	}
	return counts
}
