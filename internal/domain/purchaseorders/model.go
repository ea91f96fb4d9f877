package purchaseorders

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Spok95/supply-console/internal/domain"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusOrdered   Status = "ordered"
	StatusReceived  Status = "received"
	StatusCancelled Status = "cancelled"
)

var Statuses = []Status{StatusPending, StatusOrdered, StatusReceived, StatusCancelled}

type Item struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type PurchaseOrder struct {
	ID               string `json:"id,omitempty"`
	SupplierID       string `json:"supplier_id"`
	Items            []Item `json:"items"`
	Status           Status `json:"status"`
	OrderDate        string `json:"order_date"`
	ExpectedDelivery string `json:"expected_delivery"`
}

func (o PurchaseOrder) Check() error {
	switch {
	case o.ID == "":
		return &domain.SchemaError{Resource: "purchase_order", Field: "id", Msg: "missing"}
	case !domain.OneOf(o.Status, Statuses...):
		return &domain.SchemaError{Resource: "purchase_order", Field: "status", Msg: "unknown " + string(o.Status)}
	}
	return nil
}

// Validate: пустой список позиций допустим только во время редактирования, не при отправке.
func (o PurchaseOrder) Validate() error {
	var v domain.ValidationErrors
	v.Required("supplier_id", o.SupplierID)
	v.Required("order_date", o.OrderDate)
	v.Required("expected_delivery", o.ExpectedDelivery)
	if !domain.OneOf(o.Status, Statuses...) {
		v.Add("status", "unknown status "+string(o.Status))
	}
	if len(o.Items) == 0 {
		v.Add("items", "at least one item is required")
	}
	for i, it := range o.Items {
		f := fmt.Sprintf("items[%d]", i)
		v.Required(f+".product_id", it.ProductID)
		if it.Quantity < 1 {
			v.Add(f+".quantity", "must be >= 1")
		}
		if it.Price < 0 {
			v.Add(f+".price", "must be >= 0")
		}
	}
	return v.Err()
}

// Total: сумма позиций заказа, округлённая до копеек.
func (o PurchaseOrder) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum.Round(2)
}

func Form() PurchaseOrder {
	return PurchaseOrder{Items: []Item{}, Status: StatusPending}
}

// AddItem / RemoveItem: редактирование позиций в диалоге.
func (o *PurchaseOrder) AddItem() {
	o.Items = append(o.Items, Item{Quantity: 1})
}

func (o *PurchaseOrder) RemoveItem(idx int) {
	if idx < 0 || idx >= len(o.Items) {
		return
	}
	o.Items = append(o.Items[:idx:idx], o.Items[idx+1:]...)
}
