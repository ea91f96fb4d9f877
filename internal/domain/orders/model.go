package orders

import (
	"fmt"

	"github.com/Spok95/supply-console/internal/domain"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

var Statuses = []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}

type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Item struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type CustomerOrder struct {
	ID              string       `json:"id,omitempty"`
	CustomerInfo    CustomerInfo `json:"customer_info"`
	Items           []Item       `json:"items"`
	Status          Status       `json:"status"`
	DeliveryAddress string       `json:"delivery_address"`
	PlacedDate      string       `json:"placed_date"`
}

func (o CustomerOrder) Check() error {
	switch {
	case o.ID == "":
		return &domain.SchemaError{Resource: "order", Field: "id", Msg: "missing"}
	case !domain.OneOf(o.Status, Statuses...):
		return &domain.SchemaError{Resource: "order", Field: "status", Msg: "unknown " + string(o.Status)}
	}
	return nil
}

func (o CustomerOrder) Validate() error {
	var v domain.ValidationErrors
	v.Required("customer_info.name", o.CustomerInfo.Name)
	if o.CustomerInfo.Email != "" && !domain.ValidEmail(o.CustomerInfo.Email) {
		v.Add("customer_info.email", "malformed email")
	}
	v.Required("delivery_address", o.DeliveryAddress)
	v.Required("placed_date", o.PlacedDate)
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

func Form() CustomerOrder {
	return CustomerOrder{Items: []Item{}, Status: StatusPending}
}

func (o *CustomerOrder) AddItem() {
	o.Items = append(o.Items, Item{Quantity: 1})
}

func (o *CustomerOrder) RemoveItem(idx int) {
	if idx < 0 || idx >= len(o.Items) {
		return
	}
	o.Items = append(o.Items[:idx:idx], o.Items[idx+1:]...)
}

// CustomerNameOf возвращает имя клиента по id заказа, иначе сам id.
func CustomerNameOf(items []CustomerOrder, id string) string {
	for _, o := range items {
		if o.ID == id {
			return o.CustomerInfo.Name
		}
	}
	return id
}
