package exporter

import (
	"bytes"
	"reflect"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Jhonny97or/Skus-Diarios/internal/model"
)

func TestBuildWritesFixedColumnOrder(t *testing.T) {
	records := []model.DailyRecord{
		{
			Date:          time.Date(2025, 9, 21, 0, 0, 0, 0, time.UTC),
			Day:           "09/21/2025",
			Reference:     "SAP-1",
			CatalogNumber: "CAT-55",
			Barcode:       "7501031311309",
			Category:      "FRAGANCIAS",
			Description:   "Perfume 100ml",
			Quantity:      3,
			Value:         "$36.00",
		},
		{
			Day:      "09/22/2025",
			Quantity: 1,
			Value:    "$12.00",
		},
	}

	wb, err := NewExporter().Build(records)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	readBack, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}

	rows, err := readBack.GetRows(SheetName)
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if got, want := len(rows), 3; got != want {
		t.Fatalf("rows=%d, want %d", got, want)
	}

	wantHeader := []string{
		"Dia",
		"Referencia",
		"Número de Catálogo de Fabricante",
		"Código de Barras",
		"Categoría",
		"Descripción artículo/serv.",
		"qty",
		"value",
	}
	if !reflect.DeepEqual(rows[0], wantHeader) {
		t.Fatalf("header row=%v, want %v", rows[0], wantHeader)
	}

	wantFirst := []string{"09/21/2025", "SAP-1", "CAT-55", "7501031311309", "FRAGANCIAS", "Perfume 100ml", "3", "$36.00"}
	if !reflect.DeepEqual(rows[1], wantFirst) {
		t.Fatalf("first data row=%v, want %v", rows[1], wantFirst)
	}
}

func TestBuildEmptyRecords(t *testing.T) {
	wb, err := NewExporter().Build(nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	rows, err := wb.GetRows(SheetName)
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if got, want := len(rows), 1; got != want {
		t.Fatalf("rows=%d, want %d (header only)", got, want)
	}
}
