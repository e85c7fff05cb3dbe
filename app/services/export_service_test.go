package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/Rakhulsr/khayal-shop/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func TestExportProducts(t *testing.T) {
	f := newFixture(t)
	f.product(t, "Scarf", models.CategoryClothes, 10, 3)
	svc := NewExportService(f.orders, f.products)

	var buf bytes.Buffer
	require.NoError(t, svc.WriteProducts(context.Background(), &buf))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	assert.Equal(t, "Products", sheet.Name)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "Name", sheet.Rows[0].Cells[1].Value)
	assert.Equal(t, "Scarf", sheet.Rows[1].Cells[1].Value)
	assert.Equal(t, "clothes", sheet.Rows[1].Cells[2].Value)
}

func TestBuildOrdersWorkbook(t *testing.T) {
	file, err := BuildOrdersWorkbook([]models.Order{*sampleOrder()})
	require.NoError(t, err)

	sheet := file.Sheets[0]
	require.Len(t, sheet.Rows, 2)
	row := sheet.Rows[1]
	assert.Equal(t, "KH123456789", row.Cells[0].Value)
	assert.Equal(t, "3", row.Cells[6].Value)
	assert.Equal(t, "pending", row.Cells[8].Value)
}
