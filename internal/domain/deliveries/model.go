package deliveries

import "github.com/Spok95/supply-console/internal/domain"

type Status string

const (
	StatusPending        Status = "pending"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusFailed         Status = "failed"
	StatusCancelled      Status = "cancelled"
)

var Statuses = []Status{StatusPending, StatusOutForDelivery, StatusDelivered, StatusFailed, StatusCancelled}

type Delivery struct {
	ID              string  `json:"id,omitempty"`
	OrderID         string  `json:"order_id"`
	Status          Status  `json:"status"`
	DeliveryDate    string  `json:"delivery_date"`
	ProofOfDelivery *string `json:"proof_of_delivery"`
}

func (d Delivery) Check() error {
	switch {
	case d.ID == "":
		return &domain.SchemaError{Resource: "delivery", Field: "id", Msg: "missing"}
	case !domain.OneOf(d.Status, Statuses...):
		return &domain.SchemaError{Resource: "delivery", Field: "status", Msg: "unknown " + string(d.Status)}
	}
	return nil
}

func (d Delivery) Validate() error {
	var v domain.ValidationErrors
	v.Required("order_id", d.OrderID)
	v.Required("delivery_date", d.DeliveryDate)
	if !domain.OneOf(d.Status, Statuses...) {
		v.Add("status", "unknown status "+string(d.Status))
	}
	return v.Err()
}

func Form() Delivery { return Delivery{Status: StatusPending} }
