package warehouses

import "github.com/Spok95/supply-console/internal/domain"

type Warehouse struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

func (w Warehouse) Check() error {
	if w.ID == "" {
		return &domain.SchemaError{Resource: "warehouse", Field: "id", Msg: "missing"}
	}
	return nil
}

func (w Warehouse) Validate() error {
	var v domain.ValidationErrors
	v.Required("name", w.Name)
	v.Required("address", w.Address)
	return v.Err()
}

func Form() Warehouse { return Warehouse{} }

// NameOf: имя склада по id; если не найден, возвращается сам id.
func NameOf(items []Warehouse, id string) string {
	for _, w := range items {
		if w.ID == id {
			return w.Name
		}
	}
	return id
}
