package interchange

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"

	"github.com/Spok95/supply-console/internal/domain/products"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"

	sheetName          = "Products"
	DefaultRowsPerPage = 30
)

var csvHeader = []string{"ID", "Name", "Category", "SKU", "Stock", "Min Stock", "Price", "Supplier", "Last Restocked", "Status"}

// jsonHeader: имена полей Product в порядке объявления.
var jsonHeader = []string{"_id", "id", "name", "category", "sku", "stock", "min_stock", "price", "supplier", "lastRestocked", "status"}

// FileName: products_2025-01-31.csv
func FileName(format string, now time.Time) string {
	return fmt.Sprintf("products_%s.%s", now.Format(time.DateOnly), format)
}

func csvRow(p products.Product) []string {
	return []string{
		p.ID,
		p.Name,
		string(p.Category),
		p.SKU,
		strconv.Itoa(p.Stock),
		strconv.Itoa(p.MinStock),
		formatNumber(p.Price),
		p.Supplier,
		p.LastRestocked,
		string(p.Status),
	}
}

// WriteCSV пишет каждое поле в кавычках, строки разделены \n, без завершающего перевода строки.
func WriteCSV(w io.Writer, items []products.Product) error {
	var b strings.Builder
	writeQuoted(&b, csvHeader)
	for _, p := range items {
		b.WriteByte('\n')
		writeQuoted(&b, csvRow(p))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeQuoted(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
}

// WriteXLSX пишет один лист Products с именами полей записи в заголовке.
func WriteXLSX(w io.Writer, items []products.Product) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(sheet, sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(jsonHeader))
	for i, h := range jsonHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := 2
	for _, p := range items {
		excelRow := []interface{}{
			p.InternalID,
			p.ID,
			p.Name,
			string(p.Category),
			p.SKU,
			p.Stock,
			p.MinStock,
			p.Price,
			p.Supplier,
			p.LastRestocked,
			string(p.Status),
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &excelRow); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
		row++
	}

	return f.Write(w)
}

// WritePDF: заголовок в (10,10), строка i на высоте 20 + i*8, не больше rowsPerPage строк на странице.
func WritePDF(w io.Writer, items []products.Product, rowsPerPage int) error {
	return renderPDF(items, rowsPerPage).Output(w)
}

func renderPDF(items []products.Product, rowsPerPage int) *fpdf.Fpdf {
	if rowsPerPage <= 0 {
		rowsPerPage = DefaultRowsPerPage
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Helvetica", "", 12)

	newPage := func() {
		pdf.AddPage()
		pdf.Text(10, 10, "Products")
	}
	newPage()

	for i, p := range items {
		if i > 0 && i%rowsPerPage == 0 {
			newPage()
		}
		y := 20 + float64(i%rowsPerPage)*8
		pdf.Text(10, y, tr(pdfLine(p)))
	}
	return pdf
}

func pdfLine(p products.Product) string {
	return strings.Join([]string{
		p.ID,
		p.Name,
		string(p.Category),
		p.SKU,
		strconv.Itoa(p.Stock),
		formatNumber(p.Price),
	}, " | ")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
