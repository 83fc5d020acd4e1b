package services

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"estatebackend/config"

	"github.com/xuri/excelize/v2"
)

func buildComparableSheet(t *testing.T, header string, cells []interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetCellValue(sheet, "A1", "Locality"); err != nil {
		t.Fatalf("error writing header: %v", err)
	}
	if err := f.SetCellValue(sheet, "B1", header); err != nil {
		t.Fatalf("error writing header: %v", err)
	}
	for i, cell := range cells {
		axis, _ := excelize.CoordinatesToCellName(2, i+2)
		if err := f.SetCellValue(sheet, axis, cell); err != nil {
			t.Fatalf("error writing cell: %v", err)
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("error serializing workbook: %v", err)
	}
	return buffer
}

func TestParseComparablesXLSX_ReadsPriceColumn(t *testing.T) {
	buffer := buildComparableSheet(t, "Sale Price", []interface{}{
		9500000,
		"₹85,00,000",
		"TBD",
	})

	prices, err := ComparableService.ParseComparablesXLSX(buffer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prices) != 2 {
		t.Fatalf("Expected 2 prices, got %d: %v", len(prices), prices)
	}
	if prices[0] != 9500000 || prices[1] != 8500000 {
		t.Errorf("Unexpected prices %v", prices)
	}
}

func TestParseComparablesXLSX_AlternateHeaders(t *testing.T) {
	for _, header := range []string{"Price", "Sold For", "Transaction Value"} {
		buffer := buildComparableSheet(t, header, []interface{}{7200000})
		prices, err := ComparableService.ParseComparablesXLSX(buffer)
		if err != nil {
			t.Errorf("Header %q: unexpected error: %v", header, err)
			continue
		}
		if len(prices) != 1 || prices[0] != 7200000 {
			t.Errorf("Header %q: unexpected prices %v", header, prices)
		}
	}
}

func TestParseComparablesXLSX_NoPriceColumn(t *testing.T) {
	buffer := buildComparableSheet(t, "Carpet Area", []interface{}{1200, 1450})
	_, err := ComparableService.ParseComparablesXLSX(buffer)
	if err == nil || !strings.Contains(err.Error(), "no comparable prices") {
		t.Errorf("Expected no-prices error, got %v", err)
	}
}

func TestParseComparablesXLSX_NotAWorkbook(t *testing.T) {
	_, err := ComparableService.ParseComparablesXLSX(strings.NewReader("listed_price,9500000"))
	if err == nil {
		t.Error("Expected an error for non-XLSX input")
	}
}

func TestSummarize(t *testing.T) {
	summary, ok := Summarize([]float64{9000000, 8000000, 10000000, -50, 0})
	if !ok {
		t.Fatal("Expected a usable summary")
	}
	if summary.Min != 8000000 || summary.Max != 10000000 || summary.Avg != 9000000 {
		t.Errorf("Unexpected summary %+v", summary)
	}

	if _, ok := Summarize(nil); ok {
		t.Error("Expected no summary for empty input")
	}
	if _, ok := Summarize([]float64{0, -1}); ok {
		t.Error("Expected no summary for non-positive prices")
	}
}

func TestSummarizeComparables_FallsBackToListedPrice(t *testing.T) {
	policy := config.Default().Negotiation
	summary := SummarizeComparables(nil, 1000000, policy)
	if summary.Min != 900000 {
		t.Errorf("Expected min 900000, got %v", summary.Min)
	}
	if math.Abs(summary.Max-1100000) > 1e-6 {
		t.Errorf("Expected max 1100000, got %v", summary.Max)
	}
	if summary.Avg != 1000000 {
		t.Errorf("Expected avg 1000000, got %v", summary.Avg)
	}
}

func TestSummarizeComparables_PrefersRealComparables(t *testing.T) {
	policy := config.Default().Negotiation
	summary := SummarizeComparables([]float64{800000, 1200000}, 1000000, policy)
	if summary.Min != 800000 || summary.Max != 1200000 || summary.Avg != 1000000 {
		t.Errorf("Unexpected summary %+v", summary)
	}
}
