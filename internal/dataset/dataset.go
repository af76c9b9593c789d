// Package dataset reads the historical sales dataset from CSV or Excel files.
package dataset

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kubev2v/profit-planner/internal/store/model"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	colSegment            = "segment"
	colCountry            = "country"
	colProduct            = "product"
	colDiscountBand       = "discount_band"
	colUnitsSold          = "units_sold"
	colManufacturingPrice = "manufacturing_price"
	colSalePrice          = "sale_price"
	colGrossSales         = "gross_sales"
	colDiscounts          = "discounts"
	colSales              = "sales"
	colCogs               = "cogs"
	colProfit             = "profit"
	colMonth              = "month"
	colMonthNumber        = "month_number"
	colYear               = "year"
)

// RequiredColumns must be present in every dataset; the remaining columns default to zero values.
var RequiredColumns = []string{colCountry, colUnitsSold, colSales, colProfit, colYear}

// Read loads the dataset at path, choosing the reader from the file extension.
func Read(path string) (model.SaleList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open dataset %s", path)
	}
	defer f.Close()

	sales, err := ReadFrom(filepath.Base(path), f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read dataset %s", path)
	}

	zap.S().Named("dataset").Infow("dataset loaded", "path", path, "records", len(sales))
	return sales, nil
}

// ReadFrom parses r with the reader matching the extension of filename.
func ReadFrom(filename string, r io.Reader) (model.SaleList, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		return ReadCSV(r)
	case ".xlsx":
		return ReadXLSX(r)
	default:
		return nil, NewErrUnsupportedFormat(ext)
	}
}

// ReadCSV parses a comma separated dataset with a header line.
func ReadCSV(r io.Reader) (model.SaleList, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return parseRows(rows)
}

// ReadXLSX parses the first sheet of an Excel workbook.
func ReadXLSX(r io.Reader) (model.SaleList, error) {
	excelFile, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "error opening Excel file")
	}
	defer excelFile.Close()

	sheets := excelFile.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheet")
	}

	rows, err := excelFile.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(err, "could not read sheet %s", sheets[0])
	}
	return parseRows(rows)
}

func parseRows(rows [][]string) (model.SaleList, error) {
	if len(rows) == 0 {
		return nil, errors.New("dataset is empty")
	}

	colMap := buildColumnMap(rows[0])
	for _, column := range RequiredColumns {
		if _, ok := colMap[column]; !ok {
			return nil, NewErrMissingColumn(column)
		}
	}
	monthColumn := colMonthNumber
	if _, ok := colMap[monthColumn]; !ok {
		monthColumn = colMonth
	}

	sales := make(model.SaleList, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		p := rowParser{row: row, colMap: colMap, line: i + 2}

		sale := model.Sale{
			Segment:            p.text(colSegment),
			Country:            p.text(colCountry),
			Product:            p.text(colProduct),
			DiscountBand:       p.text(colDiscountBand),
			UnitsSold:          p.number(colUnitsSold, true),
			ManufacturingPrice: p.number(colManufacturingPrice, false),
			SalePrice:          p.number(colSalePrice, false),
			GrossSales:         p.number(colGrossSales, false),
			Discounts:          p.number(colDiscounts, false),
			Sales:              p.number(colSales, true),
			Cogs:               p.number(colCogs, false),
			Profit:             p.number(colProfit, true),
			Month:              p.integer(monthColumn, false),
			Year:               p.integer(colYear, true),
		}
		if p.err == nil && sale.Country == "" {
			p.err = NewErrInvalidValue(p.line, colCountry, "")
		}
		if p.err != nil {
			return nil, p.err
		}
		sales = append(sales, sale)
	}
	return sales, nil
}

// rowParser extracts typed cells from one row, keeping the first error.
type rowParser struct {
	row    []string
	colMap map[string]int
	line   int
	err    error
}

func (p *rowParser) text(column string) string {
	if idx, exists := p.colMap[column]; exists && idx < len(p.row) {
		return strings.TrimSpace(p.row[idx])
	}
	return ""
}

func (p *rowParser) number(column string, required bool) float64 {
	if p.err != nil {
		return 0
	}
	raw := p.text(column)
	v, ok := parseNumber(raw)
	if !ok || (required && raw == "") {
		p.err = NewErrInvalidValue(p.line, column, raw)
		return 0
	}
	return v
}

func (p *rowParser) integer(column string, required bool) int {
	v := p.number(column, required)
	if p.err != nil {
		return 0
	}
	if v != float64(int(v)) {
		p.err = NewErrInvalidValue(p.line, column, p.text(column))
		return 0
	}
	return int(v)
}

// parseNumber accepts plain numbers and accounting formats: "$1,618.50", "(320.00)", "$-".
func parseNumber(raw string) (float64, bool) {
	s := strings.NewReplacer("$", "", ",", "", " ", "", "\u00a0", "").Replace(raw)
	if s == "" || s == "-" {
		return 0, true
	}
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	v, err := strconv.ParseFloat(s, 64)
	// ParseFloat accepts "NaN" and "Inf", which would poison every aggregate
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if negative {
		v = -v
	}
	return v, true
}

// buildColumnMap maps normalized header names (lower case, spaces and dashes as underscores) to their index.
func buildColumnMap(headers []string) map[string]int {
	colMap := make(map[string]int)
	for i, header := range headers {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header, "\ufeff")))
		key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
		if _, dup := colMap[key]; !dup {
			colMap[key] = i
		}
	}
	return colMap
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
