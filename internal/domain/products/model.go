package products

import (
	"strings"

	"github.com/Spok95/supply-console/internal/domain"
)

type Category string

const (
	Electronics Category = "Electronics"
	Footwear    Category = "Footwear"
	Appliances  Category = "Appliances"
	Accessories Category = "Accessories"
)

var Categories = []Category{Electronics, Footwear, Appliances, Accessories}

type Status string

const (
	StatusInStock  Status = "In Stock"
	StatusLowStock Status = "Low Stock"
	StatusCritical Status = "Critical"
)

type Product struct {
	InternalID    string   `json:"_id,omitempty"`
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      Category `json:"category"`
	SKU           string   `json:"sku"`
	Stock         int      `json:"stock"`
	MinStock      int      `json:"min_stock"`
	Price         float64  `json:"price"`
	Supplier      string   `json:"supplier"`
	LastRestocked string   `json:"lastRestocked"`
	Status        Status   `json:"status"`
}

// StatusFor: stock <= min/2 -> Critical, stock <= min -> Low Stock, иначе In Stock.
func StatusFor(stock, minStock int) Status {
	switch {
	case 2*stock <= minStock:
		return StatusCritical
	case stock <= minStock:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// StorageID адресует PUT/DELETE по внутреннему _id, если он уже есть.
func (p Product) StorageID() string {
	if p.InternalID != "" {
		return p.InternalID
	}
	return p.ID
}

// Key: то, что видит пользователь в списках.
func (p Product) Key() string {
	if p.ID != "" {
		return p.ID
	}
	return p.InternalID
}

func (p Product) Matches(id string) bool {
	return id != "" && (p.ID == id || p.InternalID == id)
}

func (p *Product) Recompute() {
	p.Status = StatusFor(p.Stock, p.MinStock)
}

// Check проверяет схему ответа сервера. Категорию не проверяем, в данных бэкенда встречаются свои.
func (p Product) Check() error {
	switch {
	case p.ID == "" && p.InternalID == "":
		return &domain.SchemaError{Resource: "product", Field: "id", Msg: "missing"}
	case p.Stock < 0:
		return &domain.SchemaError{Resource: "product", Field: "stock", Msg: "negative"}
	case p.MinStock < 0:
		return &domain.SchemaError{Resource: "product", Field: "min_stock", Msg: "negative"}
	case p.Price < 0:
		return &domain.SchemaError{Resource: "product", Field: "price", Msg: "negative"}
	}
	return nil
}

// Validate: проверка формы перед отправкой.
func (p Product) Validate() error {
	var v domain.ValidationErrors
	v.Required("name", p.Name)
	v.Required("sku", p.SKU)
	v.Required("supplier", p.Supplier)
	if !domain.OneOf(p.Category, Categories...) {
		v.Add("category", "unknown category "+string(p.Category))
	}
	if p.Stock < 0 {
		v.Add("stock", "must be >= 0")
	}
	if p.MinStock < 0 {
		v.Add("min_stock", "must be >= 0")
	}
	if p.Price < 0 {
		v.Add("price", "must be >= 0")
	}
	return v.Err()
}

// Form: значения диалога по умолчанию.
func Form() Product {
	return Product{Category: Electronics}
}

// Counts: сводка по статусам, считается от stock/min_stock, а не от поля status.
type Counts struct {
	InStock  int
	LowStock int
	Critical int
}

func CountByStatus(items []Product) Counts {
	var c Counts
	for _, p := range items {
		switch StatusFor(p.Stock, p.MinStock) {
		case StatusCritical:
			c.Critical++
		case StatusLowStock:
			c.LowStock++
		default:
			c.InStock++
		}
	}
	return c
}

// Filter: поиск по имени/SKU и категории (пусто или "all" означает любую).
func Filter(items []Product, search string, category string) []Product {
	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]Product, 0, len(items))
	for _, p := range items {
		if category != "" && category != "all" && string(p.Category) != category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.SKU), search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// NameOf ищет товар по _id или id; если не найден, возвращает сам id.
func NameOf(items []Product, id string) string {
	for _, p := range items {
		if p.Matches(id) {
			return p.Name
		}
	}
	return id
}
