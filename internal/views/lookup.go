package views

import (
	"github.com/Spok95/supply-console/internal/domain/deliveries"
	"github.com/Spok95/supply-console/internal/domain/orders"
	"github.com/Spok95/supply-console/internal/domain/products"
	"github.com/Spok95/supply-console/internal/domain/purchaseorders"
	"github.com/Spok95/supply-console/internal/domain/shipments"
	"github.com/Spok95/supply-console/internal/domain/suppliers"
	"github.com/Spok95/supply-console/internal/domain/transfers"
	"github.com/Spok95/supply-console/internal/domain/warehouses"
	"github.com/Spok95/supply-console/internal/querycache"
)

var (
	KeyProducts       = querycache.K(products.Resource)
	KeySuppliers      = querycache.K(suppliers.Resource)
	KeyPurchaseOrders = querycache.K(purchaseorders.Resource)
	KeyWarehouses     = querycache.K(warehouses.Resource)
	KeyTransfers      = querycache.K(transfers.Resource)
	KeyShipments      = querycache.K(shipments.Resource)
	KeyOrders         = querycache.K(orders.Resource)
	KeyDeliveries     = querycache.K(deliveries.Resource)

	KeyOptimization     = querycache.K("optimizationData")
	KeySummary          = querycache.K("supply-chain-summary")
	KeyForecastAccuracy = querycache.K("forecast-accuracy")
	KeyCostSavings      = querycache.K("cost-savings")
	KeyInsights         = querycache.K("insights")
	KeyStockMovement    = querycache.K("stockMovement")
	KeyLastMile         = querycache.K("lastMileDeliveries")
)

// KeyForecast: прогноз зависит от товара и горизонта.
func KeyForecast(productID string, periods int) querycache.Key {
	return querycache.K("forecast", productID, periods)
}

// Lookups разрешает внешние ключи по закешированным спискам.
// Неизвестный id выводится как есть.
type Lookups struct {
	c *querycache.Cache
}

func (l Lookups) Supplier(id string) string {
	items, _ := querycache.Data[[]suppliers.Supplier](l.c, KeySuppliers)
	return suppliers.NameOf(items, id)
}

func (l Lookups) Product(id string) string {
	items, _ := querycache.Data[[]products.Product](l.c, KeyProducts)
	return products.NameOf(items, id)
}

func (l Lookups) Warehouse(id string) string {
	items, _ := querycache.Data[[]warehouses.Warehouse](l.c, KeyWarehouses)
	return warehouses.NameOf(items, id)
}

func (l Lookups) Customer(orderID string) string {
	items, _ := querycache.Data[[]orders.CustomerOrder](l.c, KeyOrders)
	return orders.CustomerNameOf(items, orderID)
}

func (l Lookups) findProduct(id string) (products.Product, bool) {
	items, _ := querycache.Data[[]products.Product](l.c, KeyProducts)
	for _, p := range items {
		if p.Matches(id) {
			return p, true
		}
	}
	return products.Product{}, false
}

func (l Lookups) supplierByName(name string) (suppliers.Supplier, bool) {
	items, _ := querycache.Data[[]suppliers.Supplier](l.c, KeySuppliers)
	for _, s := range items {
		if s.Name == name {
			return s, true
		}
	}
	return suppliers.Supplier{}, false
}
