// Package exporter renders the daily sales table into a result workbook.
package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Jhonny97or/Skus-Diarios/internal/model"
)

// SheetName is the single sheet of the result workbook.
const SheetName = "Ventas Diarias"

// Filename is the download name of the result workbook.
const Filename = "ventas_diarias.xlsx"

// Output column order is fixed; downstream reports consume it positionally.
var headers = []string{
	"Dia",
	"Referencia",
	"Número de Catálogo de Fabricante",
	"Código de Barras",
	"Categoría",
	"Descripción artículo/serv.",
	"qty",
	"value",
}

// Exporter builds result workbooks.
type Exporter struct{}

// NewExporter creates an exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Build renders the records into a new workbook, one row per daily record,
// in the order given.
func (e *Exporter) Build(records []model.DailyRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", SheetName)

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(SheetName, cell, h)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	f.SetRowStyle(SheetName, 1, 1, headerStyle)

	for i, r := range records {
		row := i + 2
		f.SetCellValue(SheetName, fmt.Sprintf("A%d", row), r.Day)
		f.SetCellValue(SheetName, fmt.Sprintf("B%d", row), r.Reference)
		f.SetCellValue(SheetName, fmt.Sprintf("C%d", row), r.CatalogNumber)
		f.SetCellValue(SheetName, fmt.Sprintf("D%d", row), r.Barcode)
		f.SetCellValue(SheetName, fmt.Sprintf("E%d", row), r.Category)
		f.SetCellValue(SheetName, fmt.Sprintf("F%d", row), r.Description)
		f.SetCellValue(SheetName, fmt.Sprintf("G%d", row), r.Quantity)
		f.SetCellValue(SheetName, fmt.Sprintf("H%d", row), r.Value)
	}

	f.SetColWidth(SheetName, "A", "A", 12)
	f.SetColWidth(SheetName, "B", "F", 28)
	f.SetColWidth(SheetName, "G", "H", 10)

	return f, nil
}
