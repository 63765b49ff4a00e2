package datasource

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/marketlens/stockcompare/internal/logger"
	"github.com/marketlens/stockcompare/internal/types"
	"github.com/marketlens/stockcompare/pkg/errors"
)

// requiredColumns are the columns every price dataset must carry.
var requiredColumns = []string{"stock_code", "trade_date", "close"}

// DataSource loads price records from a single delimited dataset file.
type DataSource interface {
	// Initialize loads the dataset at path and validates its columns.
	Initialize(path string) error
	// Count returns the number of rows in the dataset.
	Count() (int, error)
	// Columns returns the column names of the dataset.
	Columns() ([]string, error)
	// ReadRecords returns rows ordered by trade date. When stockCode is set,
	// filtering happens in SQL; start and end narrow the date range.
	ReadRecords(stockCode optional.Option[int], start optional.Option[time.Time], end optional.Option[time.Time]) ([]types.PriceRecord, error)
	// Close releases the underlying database connection.
	Close() error
}

type DuckDBDataSource struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewDataSource creates a new in-memory DuckDB data source.
// This is distinct from Initialize() which loads a dataset file into the database.
func NewDataSource(logger *logger.Logger) (DataSource, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open DuckDB connection", err)
	}

	return &DuckDBDataSource{
		db:     db,
		logger: logger,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// Initialize implements DataSource.
func (d *DuckDBDataSource) Initialize(path string) error {
	d.logger.Debug("Initializing price data source", zap.String("path", path))

	if _, err := os.Stat(path); err != nil {
		return errors.Wrapf(errors.ErrCodeFileNotFound, err, "dataset file does not exist: %s", path)
	}

	// First drop the view if it exists
	_, err := d.db.Exec(`DROP VIEW IF EXISTS price_data;`)
	if err != nil {
		return fmt.Errorf("failed to drop existing view: %w", err)
	}

	// Create a view from the CSV file - using raw SQL as Squirrel doesn't support CREATE VIEW.
	// read_csv_auto infers column types, so trade_date text becomes a DATE column.
	query := fmt.Sprintf(`
		CREATE VIEW price_data AS
		SELECT * FROM read_csv_auto('%s');
	`, path)

	_, err = d.db.Exec(query)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to load dataset: %s", path)
	}

	return d.validateColumns(path)
}

// validateColumns checks that the dataset carries every required column.
func (d *DuckDBDataSource) validateColumns(path string) error {
	columns, err := d.Columns()
	if err != nil {
		return err
	}

	present := make(map[string]bool, len(columns))
	for _, column := range columns {
		present[column] = true
	}

	var missing []string

	for _, column := range requiredColumns {
		if !present[column] {
			missing = append(missing, column)
		}
	}

	if len(missing) > 0 {
		return errors.Newf(errors.ErrCodeMissingColumn, "dataset %s is missing required columns: %s", path, strings.Join(missing, ", "))
	}

	return nil
}

// Count implements DataSource.
func (d *DuckDBDataSource) Count() (int, error) {
	var count int

	err := d.db.QueryRow("SELECT COUNT(*) FROM price_data").Scan(&count)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count rows", err)
	}

	return count, nil
}

// Columns implements DataSource.
func (d *DuckDBDataSource) Columns() ([]string, error) {
	rows, err := d.db.Query(`
		SELECT column_name FROM information_schema.columns
		WHERE table_name = 'price_data'
		ORDER BY ordinal_position
	`)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to read dataset columns", err)
	}
	defer rows.Close()

	var columns []string

	for rows.Next() {
		var column string
		if err := rows.Scan(&column); err != nil {
			return nil, fmt.Errorf("failed to scan column name: %w", err)
		}

		columns = append(columns, column)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating columns: %w", err)
	}

	return columns, nil
}

// ReadRecords implements DataSource.
func (d *DuckDBDataSource) ReadRecords(stockCode optional.Option[int], start optional.Option[time.Time], end optional.Option[time.Time]) ([]types.PriceRecord, error) {
	d.logger.Debug("Reading price records",
		zap.Bool("filtered", stockCode.IsSome()))

	// Build query using squirrel. trade_date is cast back to text so parsing
	// stays in one place regardless of the type read_csv_auto inferred.
	builder := d.sq.
		Select("stock_code", "CAST(trade_date AS VARCHAR) AS trade_date", "close").
		From("price_data")

	var conditions squirrel.And

	if stockCode.IsSome() {
		conditions = append(conditions, squirrel.Eq{"stock_code": stockCode.Unwrap()})
	}

	if start.IsSome() {
		conditions = append(conditions, squirrel.GtOrEq{"trade_date": start.Unwrap()})
	}

	if end.IsSome() {
		conditions = append(conditions, squirrel.LtOrEq{"trade_date": end.Unwrap()})
	}

	if len(conditions) > 0 {
		builder = builder.Where(conditions)
	}

	// Qualified so ordering uses the typed column, not the VARCHAR alias
	query, args, err := builder.OrderBy("price_data.trade_date ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	stmt, err := d.db.Prepare(query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare query: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query(args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query price records", err)
	}
	defer rows.Close()

	result := make([]types.PriceRecord, 0, 256)

	for rows.Next() {
		var (
			code      int
			tradeDate string
			close     float64
		)

		if err := rows.Scan(&code, &tradeDate, &close); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		parsed, err := types.ParseTradeDate(tradeDate)
		if err != nil {
			return nil, err
		}

		result = append(result, types.PriceRecord{
			Id:        uuid.New().String(),
			StockCode: code,
			TradeDate: parsed,
			Close:     close,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return result, nil
}

// Close implements DataSource.
func (d *DuckDBDataSource) Close() error {
	if d.db != nil {
		return d.db.Close()
	}

	return nil
}
