package shipments

import "github.com/Spok95/supply-console/internal/domain"

type Status string

const (
	StatusPending   Status = "pending"
	StatusInTransit Status = "in_transit"
	StatusReceived  Status = "received"
	StatusCancelled Status = "cancelled"
)

var Statuses = []Status{StatusPending, StatusInTransit, StatusReceived, StatusCancelled}

type Shipment struct {
	ID               string  `json:"id,omitempty"`
	PurchaseOrderID  string  `json:"purchase_order_id"`
	WarehouseID      string  `json:"warehouse_id"`
	Status           Status  `json:"status"`
	ExpectedDelivery string  `json:"expected_delivery"`
	ActualDelivery   *string `json:"actual_delivery"`
}

func (s Shipment) Check() error {
	switch {
	case s.ID == "":
		return &domain.SchemaError{Resource: "shipment", Field: "id", Msg: "missing"}
	case !domain.OneOf(s.Status, Statuses...):
		return &domain.SchemaError{Resource: "shipment", Field: "status", Msg: "unknown " + string(s.Status)}
	}
	return nil
}

func (s Shipment) Validate() error {
	var v domain.ValidationErrors
	v.Required("purchase_order_id", s.PurchaseOrderID)
	v.Required("warehouse_id", s.WarehouseID)
	v.Required("expected_delivery", s.ExpectedDelivery)
	if !domain.OneOf(s.Status, Statuses...) {
		v.Add("status", "unknown status "+string(s.Status))
	}
	return v.Err()
}

func Form() Shipment { return Shipment{Status: StatusPending} }
