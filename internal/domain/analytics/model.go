package analytics

import (
	"fmt"

	"github.com/Spok95/supply-console/internal/domain"
)

type Summary struct {
	TotalSuppliers     int `json:"total_suppliers"`
	TotalWarehouses    int `json:"total_warehouses"`
	TotalProducts      int `json:"total_products"`
	OpenPurchaseOrders int `json:"open_purchase_orders"`
	OpenCustomerOrders int `json:"open_customer_orders"`
	OpenDeliveries     int `json:"open_deliveries"`
	OpenShipments      int `json:"open_shipments"`
}

type ForecastAccuracy struct {
	Accuracy float64 `json:"accuracy"`
}

func (a ForecastAccuracy) Check() error {
	if a.Accuracy < 0 || a.Accuracy > 100 {
		return &domain.SchemaError{Resource: "forecast_accuracy", Field: "accuracy", Msg: "out of [0,100]"}
	}
	return nil
}

type CostSavings struct {
	Savings int64 `json:"savings"`
}

type Insight struct {
	Product        string `json:"product"`
	CurrentDemand  string `json:"currentDemand"`
	PredictedTrend string `json:"predictedTrend"`
	Seasonality    string `json:"seasonality"`
	Recommendation string `json:"recommendation"`
	Confidence     int    `json:"confidence"`
}

type StockMovement struct {
	Month     string  `json:"month"`
	InStock   float64 `json:"inStock"`
	Sold      float64 `json:"sold"`
	Restocked float64 `json:"restocked"`
}

type CategoryStock struct {
	Category string  `json:"category"`
	Current  float64 `json:"current"`
	Optimal  float64 `json:"optimal"`
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type ReorderRecommendation struct {
	ProductID      string   `json:"product_id"`
	Product        string   `json:"product"`
	CurrentStock   int      `json:"currentStock"`
	ReorderPoint   int      `json:"reorderPoint"`
	SuggestedOrder int      `json:"suggestedOrder"`
	Priority       Priority `json:"priority"`
}

type Optimization struct {
	ChartData              []CategoryStock         `json:"chart_data"`
	ReorderRecommendations []ReorderRecommendation `json:"reorder_recommendations"`
}

func (o Optimization) Check() error {
	for i, r := range o.ReorderRecommendations {
		if r.ProductID == "" {
			return &domain.SchemaError{Resource: "optimization", Field: fmt.Sprintf("reorder_recommendations[%d].product_id", i), Msg: "missing"}
		}
	}
	return nil
}

// ForecastPoint: actual пуст для будущих периодов.
type ForecastPoint struct {
	Period    string   `json:"period"`
	Actual    *float64 `json:"actual"`
	Predicted *float64 `json:"predicted"`
}

type ForecastRequest struct {
	ProductID string `json:"product_id"`
	Periods   int    `json:"periods"`
}

type Driver struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type LastMileDelivery struct {
	ID              string   `json:"id"`
	OrderID         string   `json:"orderId"`
	Driver          Driver   `json:"driver"`
	Status          string   `json:"status"`
	ETAMinutes      int      `json:"etaMinutes"`
	CurrentLocation Location `json:"currentLocation"`
}

func (d LastMileDelivery) Check() error {
	if d.ID == "" {
		return &domain.SchemaError{Resource: "last_mile_delivery", Field: "id", Msg: "missing"}
	}
	return nil
}
