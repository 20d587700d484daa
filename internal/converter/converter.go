// Package converter orchestrates one conversion pass: parse the workbook,
// resolve its week columns, then expand every (row, week) pair with a
// positive quantity into daily records.
package converter

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Jhonny97or/Skus-Diarios/internal/distributor"
	"github.com/Jhonny97or/Skus-Diarios/internal/model"
	"github.com/Jhonny97or/Skus-Diarios/internal/parser"
	"github.com/Jhonny97or/Skus-Diarios/internal/resolver"
)

// Options configures one conversion pass.
type Options struct {
	Profile   model.WeightProfile
	UnitPrice decimal.Decimal
	Weeks     resolver.Options
}

// Converter runs conversion passes. It holds no per-pass state; each Convert
// call is independent.
type Converter struct {
	log *zap.Logger
}

// New creates a converter.
func New(log *zap.Logger) *Converter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Converter{log: log}
}

// Convert reads the workbook and produces the flat daily table.
//
// Output order is row-major then column-major: rows as read from the source,
// week columns in resolved order. Cells holding a negative quantity abort
// only their own (row, week) pair; they are logged and counted in the
// report's SkippedCells.
func (c *Converter) Convert(reader io.Reader, opts Options) (*model.ConversionReport, error) {
	started := time.Now()

	if err := opts.Profile.Validate(); err != nil {
		return nil, err
	}

	p := parser.NewParser()
	if err := p.LoadFile(reader); err != nil {
		return nil, err
	}
	sheet, err := p.ParseFirstSheet()
	if err != nil {
		return nil, fmt.Errorf("parse workbook: %w", err)
	}

	weeks, err := resolver.Resolve(sheet.WeekHeaders, opts.Weeks, c.log)
	if err != nil {
		return nil, err
	}
	if len(weeks) == 0 {
		return nil, ErrNoWeekColumns
	}

	if !hasPositiveQuantity(sheet.Rows, weeks) {
		return nil, ErrNoSalesData
	}

	c.log.Info("converting workbook",
		zap.String("fileId", p.FileID()),
		zap.String("sheet", sheet.Name),
		zap.Int("rows", len(sheet.Rows)),
		zap.Int("weekColumns", len(weeks)))

	report := &model.ConversionReport{
		Records:     make([]model.DailyRecord, 0, len(sheet.Rows)*len(weeks)),
		SourceRows:  len(sheet.Rows),
		WeekColumns: len(weeks),
	}

	for ri, row := range sheet.Rows {
		if row.Empty() {
			continue
		}
		fields := descriptiveFields(row)

		for _, wk := range weeks {
			cell := row.Cell(wk.ColumnIndex)
			qty, ok := parser.ParseQuantity(cell)
			if !ok || qty == 0 {
				continue
			}
			if qty < 0 {
				// Skip-and-log: one bad cell must not sink the batch.
				c.log.Warn("skipping negative weekly quantity",
					zap.Int("row", ri+3),
					zap.String("week", wk.Header),
					zap.String("cell", cell))
				report.SkippedCells++
				continue
			}

			records, err := distributor.Distribute(model.WeeklyQuantityRow{
				Quantity:  qty,
				WeekStart: wk.Start,
				Fields:    fields,
			}, opts.Profile, opts.UnitPrice)
			if err != nil {
				c.log.Warn("skipping undistributable pair",
					zap.Int("row", ri+3),
					zap.String("week", wk.Header),
					zap.Error(err))
				report.SkippedCells++
				continue
			}

			report.Records = append(report.Records, records...)
			report.Distributed++
		}
	}

	report.Duration = time.Since(started)

	c.log.Info("conversion finished",
		zap.Int("records", len(report.Records)),
		zap.Int("distributed", report.Distributed),
		zap.Int("skippedCells", report.SkippedCells),
		zap.Duration("duration", report.Duration))

	return report, nil
}

// hasPositiveQuantity pre-scans the data so empty files are rejected before
// any distribution work begins.
func hasPositiveQuantity(rows []parser.SourceRow, weeks []model.ResolvedWeek) bool {
	for _, row := range rows {
		for _, wk := range weeks {
			if qty, ok := parser.ParseQuantity(row.Cell(wk.ColumnIndex)); ok && qty > 0 {
				return true
			}
		}
	}
	return false
}

func descriptiveFields(row parser.SourceRow) map[string]string {
	return map[string]string{
		model.FieldReference:   row.Get(model.FieldReference),
		model.FieldCatalog:     row.Get(model.FieldCatalog),
		model.FieldBarcode:     row.Get(model.FieldBarcode),
		model.FieldCategory:    row.Get(model.FieldCategory),
		model.FieldDescription: row.Get(model.FieldDescription),
	}
}
