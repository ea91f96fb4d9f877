package interchange

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"

	"github.com/Spok95/supply-console/internal/domain/products"
)

var ErrUnsupportedFormat = errors.New("unsupported import format")

// Import разбирает файл по расширению. Результат: только локальный предпросмотр,
// в API он не отправляется.
func Import(filename string, r io.Reader) ([]products.Product, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ReadCSV(r)
	case ".xlsx", ".xlsm", ".xls":
		return ReadXLSX(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// ReadCSV пропускает строку заголовка. Колонки позиционные, порядок как в WriteCSV.
// Нечисловые stock/min_stock/price дают 0, строки без id пропускаются.
func ReadCSV(r io.Reader) ([]products.Product, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) < 2 {
		return []products.Product{}, nil
	}

	out := make([]products.Product, 0, len(rows)-1)
	for _, row := range rows[1:] {
		col := func(i int) string {
			if i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}
		p := products.Product{
			ID:            col(0),
			Name:          col(1),
			Category:      products.Category(col(2)),
			SKU:           col(3),
			Stock:         toInt(col(4)),
			MinStock:      toInt(col(5)),
			Price:         cast.ToFloat64(col(6)),
			Supplier:      col(7),
			LastRestocked: col(8),
		}
		if p.ID == "" {
			continue
		}
		p.Recompute()
		out = append(out, p)
	}
	return out, nil
}

// ReadXLSX берёт первый лист; строки сопоставляются с полями по заголовку.
func ReadXLSX(r io.Reader) ([]products.Product, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return []products.Product{}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return []products.Product{}, nil
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	out := make([]products.Product, 0, len(rows)-1)
	for i, row := range rows[1:] {
		record := make(map[string]interface{}, len(header))
		for j, h := range header {
			if h == "" || j >= len(row) {
				continue
			}
			record[h] = row[j]
		}
		if len(record) == 0 {
			continue
		}

		var p products.Product
		if err := decodeRecord(record, &p); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if p.ID == "" && p.InternalID == "" {
			continue
		}
		p.Recompute()
		out = append(out, p)
	}
	return out, nil
}

func decodeRecord(record map[string]interface{}, p *products.Product) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       numberHook,
		Result:           p,
	})
	if err != nil {
		return err
	}
	return dec.Decode(record)
}

// numberHook: ячейки приходят строками, "12.0" и "" тоже должны стать числами.
func numberHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	s := strings.TrimSpace(data.(string))
	switch to.Kind() {
	case reflect.Int, reflect.Int64:
		return toInt(s), nil
	case reflect.Float64:
		return cast.ToFloat64(s), nil
	default:
		return data, nil
	}
}

func toInt(s string) int {
	return int(cast.ToFloat64(s))
}
