package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeXLSXFromCSV copies a CSV file into the first sheet of a new workbook.
func writeXLSXFromCSV(t *testing.T, csvPath, xlsxPath string) {
	t.Helper()

	in, err := os.Open(csvPath)
	require.NoError(t, err)
	defer in.Close()

	rows, err := csv.NewReader(in).ReadAll()
	require.NoError(t, err)

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		require.NoError(t, f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+1), &values))
	}
	require.NoError(t, f.SaveAs(xlsxPath))
}
