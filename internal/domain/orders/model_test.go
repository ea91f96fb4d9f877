package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/supply-console/internal/domain"
)

func validOrder() CustomerOrder {
	return CustomerOrder{
		CustomerInfo:    CustomerInfo{Name: "Ann", Email: "ann@example.com"},
		Items:           []Item{{ProductID: "P1", Quantity: 1, Price: 5}},
		Status:          StatusPending,
		DeliveryAddress: "Main 1",
		PlacedDate:      "2025-01-01",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(o *CustomerOrder)
		field string
	}{
		{"valid", func(*CustomerOrder) {}, ""},
		{"email optional", func(o *CustomerOrder) { o.CustomerInfo.Email = "" }, ""},
		{"malformed email", func(o *CustomerOrder) { o.CustomerInfo.Email = "ann.example.com" }, "customer_info.email"},
		{"no customer name", func(o *CustomerOrder) { o.CustomerInfo.Name = "" }, "customer_info.name"},
		{"no address", func(o *CustomerOrder) { o.DeliveryAddress = "" }, "delivery_address"},
		{"no placed date", func(o *CustomerOrder) { o.PlacedDate = "" }, "placed_date"},
		{"unknown status", func(o *CustomerOrder) { o.Status = "returned" }, "status"},
		{"empty items", func(o *CustomerOrder) { o.Items = nil }, "items"},
		{"negative price", func(o *CustomerOrder) { o.Items[0].Price = -3 }, "items[0].price"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := validOrder()
			tt.edit(&o)
			err := o.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestCheck(t *testing.T) {
	assert.NoError(t, CustomerOrder{ID: "O1", Status: StatusShipped}.Check())

	var se *domain.SchemaError
	assert.ErrorAs(t, CustomerOrder{Status: StatusShipped}.Check(), &se)
	assert.ErrorAs(t, CustomerOrder{ID: "O1", Status: "returned"}.Check(), &se)
}

func TestCustomerNameOf(t *testing.T) {
	items := []CustomerOrder{{ID: "O1", CustomerInfo: CustomerInfo{Name: "Ann"}}}
	assert.Equal(t, "Ann", CustomerNameOf(items, "O1"))
	assert.Equal(t, "O9", CustomerNameOf(items, "O9"))
}
