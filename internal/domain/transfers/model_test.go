package transfers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/supply-console/internal/domain"
)

func validTransfer() StockTransfer {
	return StockTransfer{
		FromWarehouse: "W1",
		ToWarehouse:   "W2",
		Items:         []Item{{ProductID: "P1", Quantity: 5}},
		Status:        StatusPending,
		TransferDate:  "2025-02-01",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(s *StockTransfer)
		field string
	}{
		{"valid", func(*StockTransfer) {}, ""},
		{"same warehouse", func(s *StockTransfer) { s.ToWarehouse = "W1" }, "to_warehouse"},
		{"no source", func(s *StockTransfer) { s.FromWarehouse = "" }, "from_warehouse"},
		{"no destination", func(s *StockTransfer) { s.ToWarehouse = "" }, "to_warehouse"},
		{"no date", func(s *StockTransfer) { s.TransferDate = "" }, "transfer_date"},
		{"unknown status", func(s *StockTransfer) { s.Status = "shipped" }, "status"},
		{"empty items", func(s *StockTransfer) { s.Items = nil }, "items"},
		{"zero quantity", func(s *StockTransfer) { s.Items[0].Quantity = 0 }, "items[0].quantity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validTransfer()
			tt.edit(&s)
			err := s.Validate()
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

func TestValidateSameWarehouseMessage(t *testing.T) {
	s := validTransfer()
	s.ToWarehouse = s.FromWarehouse
	assert.EqualError(t, s.Validate(), "to_warehouse: must differ from from_warehouse")
}

func TestCheck(t *testing.T) {
	assert.NoError(t, StockTransfer{ID: "T1", Status: StatusCompleted}.Check())

	var se *domain.SchemaError
	assert.ErrorAs(t, StockTransfer{Status: StatusPending}.Check(), &se)
	assert.ErrorAs(t, StockTransfer{ID: "T1", Status: "lost"}.Check(), &se)
	assert.Equal(t, "status", se.Field)
}
