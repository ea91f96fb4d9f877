package analytics

import (
	"context"

	"github.com/Spok95/supply-console/internal/domain"
	"github.com/Spok95/supply-console/internal/infra/apiclient"
)

// Repo: эндпоинты только для чтения плюс запрос прогноза.
type Repo struct {
	api *apiclient.Client
}

func NewRepo(api *apiclient.Client) *Repo { return &Repo{api: api} }

func (r *Repo) Summary(ctx context.Context) (*Summary, error) {
	var out Summary
	if err := r.api.Get(ctx, "/api/supply-chain-summary", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Repo) ForecastAccuracy(ctx context.Context) (*ForecastAccuracy, error) {
	var out ForecastAccuracy
	if err := r.api.Get(ctx, "/api/forecast-accuracy", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Repo) CostSavings(ctx context.Context) (*CostSavings, error) {
	var out CostSavings
	if err := r.api.Get(ctx, "/api/cost-savings", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Repo) Insights(ctx context.Context) ([]Insight, error) {
	out := []Insight{}
	if err := r.api.Get(ctx, "/api/insights", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) StockMovement(ctx context.Context) ([]StockMovement, error) {
	out := []StockMovement{}
	if err := r.api.Get(ctx, "/api/stock-movement", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) Optimization(ctx context.Context) (*Optimization, error) {
	var out Optimization
	if err := r.api.Get(ctx, "/api/optimize", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Repo) LastMileDeliveries(ctx context.Context) ([]LastMileDelivery, error) {
	out := []LastMileDelivery{}
	if err := r.api.Get(ctx, "/api/last-mile-deliveries", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Forecast: POST /api/forecast, из ответа берётся chart_data.
// Без выбранного товара запрос не отправляется.
func (r *Repo) Forecast(ctx context.Context, productID string, periods int) ([]ForecastPoint, error) {
	if productID == "" {
		return nil, &domain.ValidationError{Field: "product_id", Msg: "is required"}
	}
	if periods < 1 {
		return nil, &domain.ValidationError{Field: "periods", Msg: "must be >= 1"}
	}
	var out struct {
		ChartData []ForecastPoint `json:"chart_data"`
	}
	req := ForecastRequest{ProductID: productID, Periods: periods}
	if err := r.api.Post(ctx, "/api/forecast", req, &out); err != nil {
		return nil, err
	}
	if out.ChartData == nil {
		out.ChartData = []ForecastPoint{}
	}
	return out.ChartData, nil
}
