package taxtable_test

import (
	"testing"

	"github.com/Mthinuay/SingularXpress/internal/taxtable"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// sheetCell addresses one cell by 1-based row and column.
type sheetCell struct {
	row, col int
	value    string
}

func buildWorkbook(t *testing.T, cells []sheetCell) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for _, c := range cells {
		name, err := excelize.CoordinatesToCellName(c.col, c.row)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, name, c.value))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func leftGroup(row int, low, sep, high, annual, tax string) []sheetCell {
	return []sheetCell{
		{row, 1, low}, {row, 2, sep}, {row, 3, high}, {row, 4, annual}, {row, 5, tax},
	}
}

func rightGroup(row int, low, sep, high, annual, tax string) []sheetCell {
	return []sheetCell{
		{row, 8, low}, {row, 9, sep}, {row, 10, high}, {row, 11, annual}, {row, 12, tax},
	}
}

func TestParser_SingleLeftGroup(t *testing.T) {
	data := buildWorkbook(t, leftGroup(3, "1", "-", "100", "5000", "0"))

	parser := taxtable.NewParser(zap.NewNop())
	entries, err := parser.Parse(data)
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, "1-100", entries[0].Remuneration)
	assert.True(t, entries[0].AnnualEquivalent.Equal(decimal.NewFromInt(5000)))
	assert.True(t, entries[0].TaxUnder65.Equal(decimal.Zero))
}

func TestParser_CurrencyAndThousandsCleanup(t *testing.T) {
	data := buildWorkbook(t, leftGroup(3, "R 1", "-", "R 100,000", "R 50,000.50", ""))

	parser := taxtable.NewParser(zap.NewNop())
	entries, err := parser.Parse(data)
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, "1-100000", entries[0].Remuneration)
	assert.True(t, entries[0].AnnualEquivalent.Equal(decimal.RequireFromString("50000.50")))
	// Blank tax cell defaults to zero.
	assert.True(t, entries[0].TaxUnder65.Equal(decimal.Zero))
}

func TestParser_BothGroupsOnOneRow(t *testing.T) {
	cells := append(
		leftGroup(3, "1", "-", "100", "5000", "0"),
		rightGroup(3, "101", "-", "200", "10000", "18")...,
	)
	data := buildWorkbook(t, cells)

	parser := taxtable.NewParser(zap.NewNop())
	entries, err := parser.Parse(data)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, "1-100", entries[0].Remuneration)
	assert.Equal(t, "101-200", entries[1].Remuneration)
	assert.True(t, entries[1].TaxUnder65.Equal(decimal.NewFromInt(18)))
}

func TestParser_EnDashSeparatorRejected(t *testing.T) {
	data := buildWorkbook(t, leftGroup(3, "1", "–", "100", "5000", "0"))

	parser := taxtable.NewParser(zap.NewNop())
	entries, err := parser.Parse(data)
	require.NoError(t, err)

	assert.Empty(t, entries)
}

func TestParser_BlankFirstCellSkipsGroup(t *testing.T) {
	cells := append(
		leftGroup(3, "", "-", "100", "5000", "0"),
		rightGroup(3, "101", "-", "200", "10000", "0")...,
	)
	data := buildWorkbook(t, cells)

	parser := taxtable.NewParser(zap.NewNop())
	entries, err := parser.Parse(data)
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, "101-200", entries[0].Remuneration)
}

func TestParser_HeaderRowsIgnored(t *testing.T) {
	cells := append(
		leftGroup(1, "Remuneration", "-", "Bracket", "Annual", "Tax"),
		leftGroup(3, "1", "-", "100", "5000", "0")...,
	)
	data := buildWorkbook(t, cells)

	parser := taxtable.NewParser(zap.NewNop())
	entries, err := parser.Parse(data)
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, "1-100", entries[0].Remuneration)
}

func TestParser_InvalidAmountRejectsGroup(t *testing.T) {
	data := buildWorkbook(t, leftGroup(3, "1", "-", "100", "not a number", "0"))

	parser := taxtable.NewParser(zap.NewNop())
	entries, err := parser.Parse(data)
	require.NoError(t, err)

	assert.Empty(t, entries)
}

func TestParser_Idempotent(t *testing.T) {
	cells := append(
		leftGroup(3, "1", "-", "100", "5000", "0"),
		append(
			rightGroup(3, "101", "-", "200", "10000", "18"),
			leftGroup(4, "201", "-", "300", "15000", "36")...,
		)...,
	)
	data := buildWorkbook(t, cells)

	parser := taxtable.NewParser(zap.NewNop())
	first, err := parser.Parse(data)
	require.NoError(t, err)
	second, err := parser.Parse(data)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Remuneration, second[i].Remuneration)
		assert.True(t, first[i].AnnualEquivalent.Equal(second[i].AnnualEquivalent))
		assert.True(t, first[i].TaxUnder65.Equal(second[i].TaxUnder65))
	}
}

func TestParser_GarbageBytes(t *testing.T) {
	parser := taxtable.NewParser(zap.NewNop())
	_, err := parser.Parse([]byte("definitely not a workbook"))
	assert.Error(t, err)
}
