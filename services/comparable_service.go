package services

import (
	"fmt"
	"io"

	"estatebackend/config"
	"estatebackend/types"
	"estatebackend/utils/helpers"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

var priceHeaderPatterns = []string{`(sale\s*)?price`, `sold\s*for`, `transaction\s*value`}

type ComparableServiceI interface {
	ParseComparablesXLSX(file io.Reader) ([]float64, error)
}

type comparableService struct{}

var ComparableService ComparableServiceI = &comparableService{}

// ParseComparablesXLSX pulls comparable sale prices out of an uploaded
// sheet. It locates the price column by header and reads every parsable
// amount below it; non-positive or malformed cells are skipped.
func (cs *comparableService) ParseComparablesXLSX(file io.Reader) ([]float64, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("error parsing XLSX file: %w", err)
	}
	defer f.Close()

	var prices []float64
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			zap.L().Error("Error reading rows from sheet", zap.String("sheet", sheet), zap.Error(err))
			continue
		}

		priceColumn := -1
		for _, row := range rows {
			if len(row) == 0 {
				continue
			}

			if priceColumn == -1 {
				for i, cell := range row {
					if helpers.MatchHeader(cell, priceHeaderPatterns) {
						priceColumn = i
						break
					}
				}
				continue
			}

			if priceColumn >= len(row) {
				continue
			}
			if price, ok := helpers.ParseAmount(row[priceColumn]); ok && price > 0 {
				prices = append(prices, price)
			}
		}
	}

	if len(prices) == 0 {
		return nil, fmt.Errorf("no comparable prices found in sheet")
	}
	return prices, nil
}

// Summarize reduces a comparable price list to min/max/avg. The second
// return value is false when no usable prices were supplied.
func Summarize(prices []float64) (types.MarketSummary, bool) {
	var summary types.MarketSummary
	count := 0
	for _, price := range prices {
		if price <= 0 {
			continue
		}
		if count == 0 || price < summary.Min {
			summary.Min = price
		}
		if price > summary.Max {
			summary.Max = price
		}
		summary.Avg += price
		count++
	}
	if count == 0 {
		return types.MarketSummary{}, false
	}
	summary.Avg /= float64(count)
	return summary, true
}

// SummarizeComparables is Summarize with the listed-price fallbacks used by
// the negotiation engine when no comparables are available.
func SummarizeComparables(prices []float64, listedPrice float64, policy config.NegotiationPolicy) types.MarketSummary {
	if summary, ok := Summarize(prices); ok {
		return summary
	}
	return types.MarketSummary{
		Min: listedPrice * policy.FallbackMarketMinFactor,
		Max: listedPrice * policy.FallbackMarketMaxFactor,
		Avg: listedPrice,
	}
}
