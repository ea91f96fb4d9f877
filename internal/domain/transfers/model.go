package transfers

import (
	"fmt"

	"github.com/Spok95/supply-console/internal/domain"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var Statuses = []Status{StatusPending, StatusCompleted, StatusCancelled}

type Item struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type StockTransfer struct {
	ID            string `json:"id,omitempty"`
	FromWarehouse string `json:"from_warehouse"`
	ToWarehouse   string `json:"to_warehouse"`
	Items         []Item `json:"items"`
	Status        Status `json:"status"`
	TransferDate  string `json:"transfer_date"`
}

func (t StockTransfer) Check() error {
	switch {
	case t.ID == "":
		return &domain.SchemaError{Resource: "stock_transfer", Field: "id", Msg: "missing"}
	case !domain.OneOf(t.Status, Statuses...):
		return &domain.SchemaError{Resource: "stock_transfer", Field: "status", Msg: "unknown " + string(t.Status)}
	}
	return nil
}

// Validate: сервер не проверяет from != to, поэтому проверяем здесь.
func (t StockTransfer) Validate() error {
	var v domain.ValidationErrors
	v.Required("from_warehouse", t.FromWarehouse)
	v.Required("to_warehouse", t.ToWarehouse)
	v.Required("transfer_date", t.TransferDate)
	if t.FromWarehouse != "" && t.FromWarehouse == t.ToWarehouse {
		v.Add("to_warehouse", "must differ from from_warehouse")
	}
	if !domain.OneOf(t.Status, Statuses...) {
		v.Add("status", "unknown status "+string(t.Status))
	}
	if len(t.Items) == 0 {
		v.Add("items", "at least one item is required")
	}
	for i, it := range t.Items {
		f := fmt.Sprintf("items[%d]", i)
		v.Required(f+".product_id", it.ProductID)
		if it.Quantity < 1 {
			v.Add(f+".quantity", "must be >= 1")
		}
	}
	return v.Err()
}

func Form() StockTransfer {
	return StockTransfer{Items: []Item{}, Status: StatusPending}
}

func (t *StockTransfer) AddItem() {
	t.Items = append(t.Items, Item{Quantity: 1})
}

func (t *StockTransfer) RemoveItem(idx int) {
	if idx < 0 || idx >= len(t.Items) {
		return
	}
	t.Items = append(t.Items[:idx:idx], t.Items[idx+1:]...)
}
