// Package resolver maps week column headers to calendar start dates. The
// mapping policy is pluggable: explicit date-range labels, sequential offsets
// from a fixed origin, or "Semana N" prefixes.
package resolver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Jhonny97or/Skus-Diarios/internal/model"
)

// Strategy selects how week headers are resolved.
type Strategy string

const (
	// StrategyDateRange parses headers like "sep 21 - 27" into a start date
	// within the configured year.
	StrategyDateRange Strategy = "date_range"
	// StrategySequential assigns the k-th non-empty week header the origin
	// date plus k weeks.
	StrategySequential Strategy = "sequential"
	// StrategyPrefix parses headers like "Semana 3" as the origin date plus
	// two weeks.
	StrategyPrefix Strategy = "prefix"
)

// Known lists the selectable strategies.
func Known() []Strategy {
	return []Strategy{StrategyDateRange, StrategySequential, StrategyPrefix}
}

// Valid reports whether s names a known strategy.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyDateRange, StrategySequential, StrategyPrefix:
		return true
	}
	return false
}

// Options configures one resolution pass.
type Options struct {
	Strategy Strategy
	// Year anchors date-range headers, which carry no year of their own.
	Year int
	// Origin is the start date of the first week for the sequential and
	// prefix strategies.
	Origin time.Time
}

var (
	dateRangeRe = regexp.MustCompile(`^(\p{L}+)\.?\s+(\d{1,2})\s*[-–—]`)
	prefixRe    = regexp.MustCompile(`(?i)^semana\s+(\d+)\b`)
)

// Month abbreviations seen in the source files, Spanish and English.
var monthAbbrevs = map[string]time.Month{
	"ene": time.January, "jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"abr": time.April, "apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"ago": time.August, "aug": time.August,
	"sep": time.September, "set": time.September,
	"oct": time.October,
	"nov": time.November,
	"dic": time.December, "dec": time.December,
}

// Resolve walks the week header row and returns the resolvable week columns
// in column order. Headers the strategy cannot interpret are skipped with a
// log line rather than failing the pass.
func Resolve(weekHeaders []string, opts Options, log *zap.Logger) ([]model.ResolvedWeek, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if !opts.Strategy.Valid() {
		return nil, fmt.Errorf("unknown week strategy %q", opts.Strategy)
	}
	if opts.Strategy != StrategyDateRange && opts.Origin.IsZero() {
		return nil, fmt.Errorf("week strategy %q requires an origin date", opts.Strategy)
	}

	weeks := make([]model.ResolvedWeek, 0, len(weekHeaders))
	sequence := 0

	for idx, raw := range weekHeaders {
		header := strings.TrimSpace(raw)
		if header == "" {
			continue
		}

		var (
			start time.Time
			ok    bool
		)
		switch opts.Strategy {
		case StrategyDateRange:
			start, ok = parseDateRange(header, opts.Year)
		case StrategySequential:
			start, ok = opts.Origin.AddDate(0, 0, sequence*7), true
		case StrategyPrefix:
			start, ok = parsePrefix(header, opts.Origin)
		}
		if !ok {
			log.Debug("skipping unresolvable week header",
				zap.Int("column", idx),
				zap.String("header", header))
			continue
		}

		weeks = append(weeks, model.ResolvedWeek{
			ColumnIndex: idx,
			Header:      header,
			Start:       start,
		})
		sequence++
	}

	return weeks, nil
}

// parseDateRange interprets headers like "sep 21 - 27" or "Oct 5-11".
func parseDateRange(header string, year int) (time.Time, bool) {
	m := dateRangeRe.FindStringSubmatch(header)
	if m == nil {
		return time.Time{}, false
	}

	abbrev := strings.ToLower(m[1])
	if len(abbrev) > 3 {
		abbrev = abbrev[:3]
	}
	month, ok := monthAbbrevs[abbrev]
	if !ok {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(m[2])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
}

// parsePrefix interprets headers like "Semana 3" relative to the origin.
func parsePrefix(header string, origin time.Time) (time.Time, bool) {
	m := prefixRe.FindStringSubmatch(header)
	if m == nil {
		return time.Time{}, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return time.Time{}, false
	}
	return origin.AddDate(0, 0, (n-1)*7), true
}
