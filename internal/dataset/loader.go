// internal/dataset/loader.go
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/opsintel/chainsight/internal/domain"
)

// Loader parses a tabular supply-chain dataset (CSV or XLSX) into a
// normalized domain.Table. Column names are trimmed; columns whose name
// contains "date" are coerced to dates, columns containing "price", "cost"
// or "quantity" are coerced to numbers. Values that fail coercion become
// nil rather than failing the load.
type Loader struct{}

// NewLoader creates a dataset loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the dataset file at path, dispatching on the file extension.
func (l *Loader) Load(path string) (*domain.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return l.loadXLSX(path)
	default:
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open dataset %s: %w", path, err)
		}
		defer file.Close()
		return l.LoadCSV(file)
	}
}

// LoadCSV parses delimited text from r into a table.
func (l *Loader) LoadCSV(r io.Reader) (*domain.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV record: %w", err)
		}
		rows = append(rows, record)
	}

	return buildTable(header, rows), nil
}

// loadXLSX reads the first sheet of an XLSX workbook as header + rows.
func (l *Loader) loadXLSX(path string) (*domain.Table, error) {
	header, rows, err := readFirstSheet(path)
	if err != nil {
		return nil, err
	}
	return buildTable(header, rows), nil
}

// buildTable normalizes the header, maps the canonical columns and coerces
// every row into a Record.
func buildTable(header []string, rows [][]string) *domain.Table {
	columns := make([]string, 0, len(header))
	colMap := make(map[string]int, len(header))
	for i, col := range header {
		name := strings.TrimSpace(col)
		if name == "" {
			continue
		}
		columns = append(columns, name)
		colMap[strings.ToLower(name)] = i
	}

	records := make([]domain.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, domain.Record{
			Supplier:         cellString(row, colMap, domain.ColSupplier),
			Product:          cellString(row, colMap, domain.ColProduct),
			Warehouse:        cellString(row, colMap, domain.ColWarehouse),
			LogisticsPartner: cellString(row, colMap, domain.ColLogisticsPartner),
			ShippingMethod:   cellString(row, colMap, domain.ColShippingMethod),
			UnitPrice:        cellNumber(row, colMap, domain.ColUnitPrice),
			Quantity:         cellNumber(row, colMap, domain.ColQuantity),
			TotalCost:        cellNumber(row, colMap, domain.ColTotalCost),
			DeliveryDate:     cellDate(row, colMap, domain.ColDeliveryDate),
			Status:           domain.ParseDeliveryStatus(cellString(row, colMap, domain.ColDeliveryStatus)),
		})
	}

	if len(records) == 0 {
		log.Debug().Int("columns", len(columns)).Msg("dataset has no data rows")
	}

	return domain.NewTable(records, columns...)
}

func cellString(row []string, colMap map[string]int, column string) string {
	idx, ok := colMap[strings.ToLower(column)]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func cellNumber(row []string, colMap map[string]int, column string) *float64 {
	raw := cellString(row, colMap, column)
	if raw == "" {
		return nil
	}
	cleaned := strings.ReplaceAll(strings.TrimPrefix(raw, "$"), ",", "")
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &value
}

var dateFormats = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"2/1/2006",
	"2/1/06 15:04",
	time.RFC3339,
}

func cellDate(row []string, colMap map[string]int, column string) *time.Time {
	raw := cellString(row, colMap, column)
	if raw == "" || raw == "0000-00-00 00:00:00" {
		return nil
	}
	for _, format := range dateFormats {
		if t, err := time.Parse(format, raw); err == nil {
			return &t
		}
	}
	return nil
}
