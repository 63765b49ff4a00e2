// Package compare implements the filter, tag and merge stages that turn two
// raw price datasets into one provenance-tagged comparison table.
package compare

import (
	"go.uber.org/zap"

	"github.com/marketlens/stockcompare/internal/logger"
	"github.com/marketlens/stockcompare/internal/types"
	"github.com/marketlens/stockcompare/pkg/errors"
)

type Pipeline struct {
	logger *logger.Logger
}

func NewPipeline(logger *logger.Logger) *Pipeline {
	return &Pipeline{
		logger: logger,
	}
}

// FilterAndTag selects the records matching stockCode, drops the code column
// and tags every surviving row with the given provenance. An empty result is
// an error: a dataset that does not contain the instrument cannot be compared.
func (p *Pipeline) FilterAndTag(records []types.PriceRecord, stockCode int, tag types.Provenance) ([]types.ComparisonPoint, error) {
	if stockCode <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidStockCode, "stock code must be positive, got %d", stockCode)
	}

	points := make([]types.ComparisonPoint, 0, len(records))

	for _, record := range records {
		if record.StockCode != stockCode {
			continue
		}

		points = append(points, types.ComparisonPoint{
			TradeDate: record.TradeDate,
			Close:     record.Close,
			Type:      tag,
		})
	}

	if len(points) == 0 {
		return nil, errors.NewEmptyDatasetErrorf(stockCode, string(tag),
			"no rows for stock code %d in %s dataset", stockCode, tag)
	}

	p.logger.Debug("Filtered and tagged dataset",
		zap.Int("stock_code", stockCode),
		zap.String("type", string(tag)),
		zap.Int("rows", len(points)))

	return points, nil
}

// Merge concatenates the two tagged tables, unprocessed rows first,
// preserving row order within each source. No dedup, no sort, no join.
func (p *Pipeline) Merge(unprocessed, processed []types.ComparisonPoint) []types.ComparisonPoint {
	merged := make([]types.ComparisonPoint, 0, len(unprocessed)+len(processed))
	merged = append(merged, unprocessed...)
	merged = append(merged, processed...)

	return merged
}

// Run executes the full filter/tag/merge pipeline over both raw datasets.
func (p *Pipeline) Run(unprocessed, processed []types.PriceRecord, stockCode int) ([]types.ComparisonPoint, error) {
	unprocessedPoints, err := p.FilterAndTag(unprocessed, stockCode, types.ProvenanceUnprocessed)
	if err != nil {
		return nil, err
	}

	processedPoints, err := p.FilterAndTag(processed, stockCode, types.ProvenanceProcessed)
	if err != nil {
		return nil, err
	}

	merged := p.Merge(unprocessedPoints, processedPoints)

	p.logger.Info("Merged comparison table",
		zap.Int("stock_code", stockCode),
		zap.Int("unprocessed_rows", len(unprocessedPoints)),
		zap.Int("processed_rows", len(processedPoints)),
		zap.Int("total_rows", len(merged)))

	return merged, nil
}
