package views

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Spok95/supply-console/internal/domain/products"
	"github.com/Spok95/supply-console/internal/interchange"
	"github.com/Spok95/supply-console/internal/notify"
)

// ProductView добавляет к управлению товарами поиск, сводку и импорт/экспорт.
// Удаление товара требует подтверждения.
type ProductView struct {
	*Management[products.Product]

	rowsPerPage int
	now         func() time.Time

	mu      sync.Mutex
	alerted map[string]bool
}

func NewProducts(env Env, r Repos, rowsPerPage int) *ProductView {
	m := NewManagement(Config[products.Product]{
		Resource: products.Resource,
		Title:    "products",
		Store:    r.Products,
		Defaults: products.Form,
		ID:       products.Product.Key,
		Match:    products.Product.Matches,
		DeleteID: products.Product.StorageID,
		Carry: func(orig, form products.Product) products.Product {
			if form.InternalID == "" {
				form.InternalID = orig.InternalID
			}
			return form
		},
		Validate: products.Product.Validate,
		Row: func(p products.Product, _ Lookups) string {
			return fmt.Sprintf("%s | %s | %s | %s | stock %d/%d | %.2f | %s | %s | %s",
				p.Key(), p.Name, p.Category, p.SKU, p.Stock, p.MinStock, p.Price, p.Supplier, p.LastRestocked,
				products.StatusFor(p.Stock, p.MinStock))
		},
		Confirm: true,
	}, env)
	return &ProductView{Management: m, rowsPerPage: rowsPerPage, now: time.Now, alerted: map[string]bool{}}
}

func (v *ProductView) Mount(ctx context.Context) error {
	err := v.Management.Mount(ctx)
	v.alertCritical(ctx)
	return err
}

// Search: текущий список с фильтром по имени/SKU и категории.
func (v *ProductView) Search(search, category string) []products.Product {
	items, _ := v.Items()
	return products.Filter(items, search, category)
}

type Summary struct {
	Counts     products.Counts
	TotalValue decimal.Decimal
}

func (v *ProductView) Summary() Summary {
	items, _ := v.Items()
	return Summary{Counts: products.CountByStatus(items), TotalValue: products.TotalValue(items)}
}

func (v *ProductView) Render() string {
	s := v.Summary()
	head := fmt.Sprintf("In Stock: %d | Low Stock: %d | Critical: %d | Total value: %s",
		s.Counts.InStock, s.Counts.LowStock, s.Counts.Critical, s.TotalValue.StringFixed(2))
	return head + "\n" + v.Management.Render()
}

// Export пишет отфильтрованный список в выбранном формате, возвращает имя файла.
func (v *ProductView) Export(w io.Writer, format, search, category string) (string, error) {
	items := v.Search(search, category)
	var err error
	switch format {
	case interchange.FormatCSV:
		err = interchange.WriteCSV(w, items)
	case interchange.FormatXLSX:
		err = interchange.WriteXLSX(w, items)
	case interchange.FormatPDF:
		err = interchange.WritePDF(w, items, v.rowsPerPage)
	default:
		return "", fmt.Errorf("%w: %q", interchange.ErrUnsupportedFormat, format)
	}
	if err != nil {
		return "", fmt.Errorf("export %s: %w", format, err)
	}
	return interchange.FileName(format, v.now()), nil
}

// Import добавляет записи из файла в локальный кеш товаров. В API ничего не отправляется.
func (v *ProductView) Import(ctx context.Context, filename string, r io.Reader) (int, error) {
	imported, err := interchange.Import(filename, r)
	if err != nil {
		v.toast(ctx, notify.LevelError, "Import failed", err.Error())
		return 0, err
	}
	v.env.Cache.SetData(v.Key(), func(old any) any {
		prev, _ := old.([]products.Product)
		out := make([]products.Product, 0, len(prev)+len(imported))
		return append(append(out, prev...), imported...)
	})
	v.toast(ctx, notify.LevelInfo, "Import Successful", fmt.Sprintf("Imported %d products.", len(imported)))
	return len(imported), nil
}

// alertCritical сообщает о товарах, впервые ставших критичными.
func (v *ProductView) alertCritical(ctx context.Context) {
	items, _ := v.Items()

	v.mu.Lock()
	var fresh []string
	seen := make(map[string]bool, len(items))
	for _, p := range items {
		if products.StatusFor(p.Stock, p.MinStock) != products.StatusCritical {
			continue
		}
		seen[p.Key()] = true
		if !v.alerted[p.Key()] {
			fresh = append(fresh, fmt.Sprintf("%s %s: %d/%d", p.Key(), p.Name, p.Stock, p.MinStock))
		}
	}
	v.alerted = seen
	v.mu.Unlock()

	if len(fresh) == 0 {
		return
	}
	sort.Strings(fresh)
	v.toast(ctx, notify.LevelCritical, "Critical stock", strings.Join(fresh, "\n"))
}
