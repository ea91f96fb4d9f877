package products

import "github.com/shopspring/decimal"

// TotalValue: сумма stock*price по всем товарам без накопления ошибки float.
func TotalValue(items []Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range items {
		total = total.Add(decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(p.Stock))))
	}
	return total.Round(2)
}
