// Package indexsummary combines a scraped metric bundle with the static
// reference table to produce a descriptive snapshot of an index: stock
// counts per sector plus the scraped performance tables.
package indexsummary

import (
	"context"
	"fmt"
	"sort"

	"marketview-backend/lib/refdata"
	"marketview-backend/lib/scrapers/marketwatch"
	"marketview-backend/lib/textutil"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("marketview.services.indexsummary")

type Scraper interface {
	Scrape(ctx context.Context, index string) (marketwatch.Bundle, error)
}

type Service struct {
	scraper Scraper
	refdata map[string]refdata.Provider
}

// NewService wires the scraper to the reference data providers. The provider
// map is fixed at construction, one entry per supported index.
func NewService(scraper Scraper, providers map[string]refdata.Provider) Service {
	return Service{
		scraper: scraper,
		refdata: providers,
	}
}

type SectorCount struct {
	Sector string
	Stocks int
}

type Summary struct {
	Index        string
	SectorCounts []SectorCount
	Performance  marketwatch.PeriodMap
	Gainers      marketwatch.Table
	Decliners    marketwatch.Table
	// sector by ticker for the stocks appearing in Gainers and Decliners,
	// tickers missing from the reference table are absent
	PerformerSectors map[string]string
}

// Summary builds the full snapshot for an index. A failed scrape fails the
// whole call, there is no sector-counts-only fallback.
func (s Service) Summary(ctx context.Context, index string) (Summary, error) {
	ctx, span := tracer.Start(ctx, "service:Summary")
	defer span.End()
	span.SetAttributes(attribute.String("index", index))

	provider, ok := s.refdata[index]
	if !ok {
		span.SetStatus(codes.Error, "no reference data provider")
		return Summary{}, fmt.Errorf("no reference data registered for index %q", index)
	}

	stocks, err := provider.Stocks(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read reference data")
		return Summary{}, err
	}

	bundle, err := s.scraper.Scrape(ctx, index)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to scrape index page")
		return Summary{}, err
	}

	return Summary{
		Index:            index,
		SectorCounts:     countSectors(stocks),
		Performance:      bundle.Performance,
		Gainers:          bundle.Gainers,
		Decliners:        bundle.Decliners,
		PerformerSectors: performerSectors(stocks, bundle.Gainers, bundle.Decliners),
	}, nil
}

// tickerColumn finds the column holding ticker symbols, the site has
// renamed it between "Symbol" and "Ticker" before.
func tickerColumn(tbl marketwatch.Table) int {
	for i, col := range tbl.Columns {
		if textutil.MatchName(col, []string{"symbol", "ticker"}) {
			return i
		}
	}
	return -1
}

func performerSectors(stocks []refdata.Stock, tables ...marketwatch.Table) map[string]string {
	sectorByTicker := map[string]string{}
	for _, stock := range stocks {
		sectorByTicker[stock.Ticker] = stock.Sector
	}

	out := map[string]string{}
	for _, tbl := range tables {
		col := tickerColumn(tbl)
		if col < 0 {
			continue
		}
		for _, row := range tbl.Rows {
			ticker := row[col]
			if sector, ok := sectorByTicker[ticker]; ok {
				out[ticker] = sector
			}
		}
	}
	return out
}

func countSectors(stocks []refdata.Stock) []SectorCount {
	counts := map[string]int{}
	for _, stock := range stocks {
		counts[stock.Sector]++
	}

	out := make([]SectorCount, 0, len(counts))
	for sector, n := range counts {
		out = append(out, SectorCount{Sector: sector, Stocks: n})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Sector < out[j].Sector
	})
	return out
}
