package model

import (
	"time"
)

// Descriptive field headers as they appear in the source spreadsheets.
const (
	FieldReference   = "NUEVO SAP"
	FieldCatalog     = "Número de catálogo de fabricante"
	FieldBarcode     = "Código de barras"
	FieldCategory    = "CATEGORIA"
	FieldDescription = "Descripción del artículo"
)

// DayFormat is the output date layout (MM/DD/YYYY).
const DayFormat = "01/02/2006"

// WeeklyQuantityRow is one product's quantity for one week, assembled right
// before distribution. Fields carries the descriptive columns verbatim,
// keyed by the canonical field headers above.
type WeeklyQuantityRow struct {
	Quantity  int
	WeekStart time.Time
	Fields    map[string]string
}

// DailyRecord is one output row: a single day's quantity and monetary value
// for one product. Records are immutable once emitted.
type DailyRecord struct {
	Date          time.Time `json:"-"`
	Day           string    `json:"dia"`
	Reference     string    `json:"referencia"`
	CatalogNumber string    `json:"numeroCatalogo"`
	Barcode       string    `json:"codigoBarras"`
	Category      string    `json:"categoria"`
	Description   string    `json:"descripcion"`
	Quantity      int       `json:"qty"`
	Value         string    `json:"value"`
}

// ResolvedWeek maps one week column to its calendar start date.
type ResolvedWeek struct {
	ColumnIndex int       `json:"columnIndex"`
	Header      string    `json:"header"`
	Start       time.Time `json:"start"`
}

// ConversionReport is the outcome of one conversion pass.
type ConversionReport struct {
	Records      []DailyRecord `json:"-"`
	SourceRows   int           `json:"sourceRows"`
	WeekColumns  int           `json:"weekColumns"`
	Distributed  int           `json:"distributed"`  // (row, week) pairs expanded
	SkippedCells int           `json:"skippedCells"` // negative or invalid quantities
	Duration     time.Duration `json:"duration"`
}
