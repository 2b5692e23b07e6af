package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/medtrack/hms-inventory/internal/domain/inventory"
)

// StockSnapshot builds an xlsx workbook with one row per inventory item.
func StockSnapshot(items []inventory.Item) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"item_id",
		"name",
		"category",
		"supplier",
		"unit_cost",
		"quantity_in_stock",
		"is_active",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	row := 2
	for _, it := range items {
		excelRow := []interface{}{
			it.ID,
			it.Name,
			it.Category,
			it.Supplier,
			it.UnitCost,
			it.QuantityInStock,
			it.Active,
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return nil, err
		}
		row++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func SnapshotFileName(now time.Time) string {
	return fmt.Sprintf("stock_%s.xlsx", now.Format("20060102_150405"))
}
