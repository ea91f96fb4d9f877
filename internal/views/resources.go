package views

import (
	"fmt"
	"strings"

	"github.com/Spok95/supply-console/internal/domain/deliveries"
	"github.com/Spok95/supply-console/internal/domain/orders"
	"github.com/Spok95/supply-console/internal/domain/products"
	"github.com/Spok95/supply-console/internal/domain/purchaseorders"
	"github.com/Spok95/supply-console/internal/domain/shipments"
	"github.com/Spok95/supply-console/internal/domain/suppliers"
	"github.com/Spok95/supply-console/internal/domain/transfers"
	"github.com/Spok95/supply-console/internal/domain/warehouses"
)

// Repos: хранилища всех ресурсов; в проде это domain Repo поверх apiclient.
type Repos struct {
	Products       Store[products.Product]
	Suppliers      Store[suppliers.Supplier]
	PurchaseOrders Store[purchaseorders.PurchaseOrder]
	Warehouses     Store[warehouses.Warehouse]
	Transfers      Store[transfers.StockTransfer]
	Shipments      Store[shipments.Shipment]
	Orders         Store[orders.CustomerOrder]
	Deliveries     Store[deliveries.Delivery]
}

func NewSuppliers(env Env, r Repos) *Management[suppliers.Supplier] {
	return NewManagement(Config[suppliers.Supplier]{
		Resource: suppliers.Resource,
		Title:    "suppliers",
		Store:    r.Suppliers,
		Defaults: suppliers.Form,
		ID:       func(s suppliers.Supplier) string { return s.ID },
		Validate: suppliers.Supplier.Validate,
		Row: func(s suppliers.Supplier, _ Lookups) string {
			return fmt.Sprintf("%s | %s | %s | lead time %dd | reliability %.2f",
				s.ID, s.Name, s.ContactInfo, s.LeadTimeDays, s.ReliabilityScore)
		},
	}, env)
}

func NewWarehouses(env Env, r Repos) *Management[warehouses.Warehouse] {
	return NewManagement(Config[warehouses.Warehouse]{
		Resource: warehouses.Resource,
		Title:    "warehouses",
		Store:    r.Warehouses,
		Defaults: warehouses.Form,
		ID:       func(w warehouses.Warehouse) string { return w.ID },
		Validate: warehouses.Warehouse.Validate,
		Row: func(w warehouses.Warehouse, _ Lookups) string {
			return fmt.Sprintf("%s | %s | %s", w.ID, w.Name, w.Address)
		},
	}, env)
}

func NewPurchaseOrders(env Env, r Repos) *Management[purchaseorders.PurchaseOrder] {
	return NewManagement(Config[purchaseorders.PurchaseOrder]{
		Resource: purchaseorders.Resource,
		Title:    "purchase orders",
		Store:    r.PurchaseOrders,
		Defaults: purchaseorders.Form,
		ID:       func(o purchaseorders.PurchaseOrder) string { return o.ID },
		Validate: purchaseorders.PurchaseOrder.Validate,
		Deps:     []Dep{listDep(KeySuppliers, r.Suppliers), listDep(KeyProducts, r.Products)},
		Row: func(o purchaseorders.PurchaseOrder, l Lookups) string {
			items := make([]string, 0, len(o.Items))
			for _, it := range o.Items {
				items = append(items, fmt.Sprintf("%s x%d @ %.2f", l.Product(it.ProductID), it.Quantity, it.Price))
			}
			return fmt.Sprintf("%s | supplier: %s | %s | ordered %s | expected %s | total %s | items: %s",
				o.ID, l.Supplier(o.SupplierID), o.Status, o.OrderDate, o.ExpectedDelivery, o.Total().StringFixed(2), strings.Join(items, ", "))
		},
	}, env)
}

func NewTransfers(env Env, r Repos) *Management[transfers.StockTransfer] {
	return NewManagement(Config[transfers.StockTransfer]{
		Resource: transfers.Resource,
		Title:    "stock transfers",
		Store:    r.Transfers,
		Defaults: transfers.Form,
		ID:       func(t transfers.StockTransfer) string { return t.ID },
		Validate: transfers.StockTransfer.Validate,
		Deps:     []Dep{listDep(KeyWarehouses, r.Warehouses), listDep(KeyProducts, r.Products)},
		Row: func(t transfers.StockTransfer, l Lookups) string {
			items := make([]string, 0, len(t.Items))
			for _, it := range t.Items {
				items = append(items, fmt.Sprintf("%s x%d", l.Product(it.ProductID), it.Quantity))
			}
			return fmt.Sprintf("%s | %s -> %s | %s | %s | items: %s",
				t.ID, l.Warehouse(t.FromWarehouse), l.Warehouse(t.ToWarehouse), t.Status, t.TransferDate, strings.Join(items, ", "))
		},
	}, env)
}

func NewShipments(env Env, r Repos) *Management[shipments.Shipment] {
	return NewManagement(Config[shipments.Shipment]{
		Resource: shipments.Resource,
		Title:    "shipments",
		Store:    r.Shipments,
		Defaults: shipments.Form,
		ID:       func(s shipments.Shipment) string { return s.ID },
		Validate: shipments.Shipment.Validate,
		Deps:     []Dep{listDep(KeyWarehouses, r.Warehouses), listDep(KeyPurchaseOrders, r.PurchaseOrders)},
		Row: func(s shipments.Shipment, l Lookups) string {
			actual := "-"
			if s.ActualDelivery != nil && *s.ActualDelivery != "" {
				actual = *s.ActualDelivery
			}
			return fmt.Sprintf("%s | PO %s | warehouse: %s | %s | expected %s | actual %s",
				s.ID, s.PurchaseOrderID, l.Warehouse(s.WarehouseID), s.Status, s.ExpectedDelivery, actual)
		},
	}, env)
}

func NewOrders(env Env, r Repos) *Management[orders.CustomerOrder] {
	return NewManagement(Config[orders.CustomerOrder]{
		Resource: orders.Resource,
		Title:    "orders",
		Store:    r.Orders,
		Defaults: orders.Form,
		ID:       func(o orders.CustomerOrder) string { return o.ID },
		Validate: orders.CustomerOrder.Validate,
		Deps:     []Dep{listDep(KeyProducts, r.Products)},
		Row: func(o orders.CustomerOrder, l Lookups) string {
			items := make([]string, 0, len(o.Items))
			for _, it := range o.Items {
				items = append(items, fmt.Sprintf("%s x%d", l.Product(it.ProductID), it.Quantity))
			}
			return fmt.Sprintf("%s | %s <%s> | %s | placed %s | %s | items: %s",
				o.ID, o.CustomerInfo.Name, o.CustomerInfo.Email, o.Status, o.PlacedDate, o.DeliveryAddress, strings.Join(items, ", "))
		},
	}, env)
}

func NewDeliveries(env Env, r Repos) *Management[deliveries.Delivery] {
	return NewManagement(Config[deliveries.Delivery]{
		Resource: deliveries.Resource,
		Title:    "deliveries",
		Store:    r.Deliveries,
		Defaults: deliveries.Form,
		ID:       func(d deliveries.Delivery) string { return d.ID },
		Validate: deliveries.Delivery.Validate,
		Deps:     []Dep{listDep(KeyOrders, r.Orders)},
		Row: func(d deliveries.Delivery, l Lookups) string {
			proof := "-"
			if d.ProofOfDelivery != nil && *d.ProofOfDelivery != "" {
				proof = *d.ProofOfDelivery
			}
			return fmt.Sprintf("%s | order %s (%s) | %s | %s | proof %s",
				d.ID, d.OrderID, l.Customer(d.OrderID), d.Status, d.DeliveryDate, proof)
		},
	}, env)
}
