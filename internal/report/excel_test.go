package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/medtrack/hms-inventory/internal/domain/inventory"
)

func TestStockSnapshot(t *testing.T) {
	data, err := StockSnapshot([]inventory.Item{
		{ID: 1, Name: "Door sensor", Category: "Door Systems", Supplier: "Acme", UnitCost: 10, QuantityInStock: 2, Active: true},
		{ID: 2, Name: "Gauze", Category: "Consumables", QuantityInStock: 40, Active: true},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	require.Equal(t, "item_id", rows[0][0])
	require.Equal(t, "quantity_in_stock", rows[0][5])

	require.Equal(t, "Door sensor", rows[1][1])
	require.Equal(t, "Acme", rows[1][3])
	require.Equal(t, "2", rows[1][5])

	require.Equal(t, "Gauze", rows[2][1])
	require.Equal(t, "40", rows[2][5])
}
